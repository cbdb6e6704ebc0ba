// dino is a Chrome-style endless runner for the terminal.
//
// Usage:
//
//	dino play                - Play straight away
//	dino menu                - Title menu with play and high scores
//	dino scores              - Print the high score and past runs
//	dino serve               - Start an SSH server for remote play
//	dino web                 - Serve the game over a websocket
//	dino config              - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.dino/scores.db)
//	--config <path>       - Load a custom YAML config
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Write logs to a file
//	--sound               - Enable sound effects
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dino/internal/audio"
	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/core"
	"github.com/vovakirdan/tui-dino/internal/platform/tui"
	"github.com/vovakirdan/tui-dino/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagSound      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dino",
	Short: "Dino Runner - the offline dinosaur game in your terminal",
	Long: `Dino Runner is an endless runner: jump over cacti, duck under birds,
and see how far you get before the speed catches up with you.

Available commands:
  play     - Start a run directly
  menu     - Title menu with play and high scores
  scores   - Print the high score and past runs
  serve    - Start an SSH server for remote play
  web      - Serve the game to browsers over a websocket
  config   - Print the effective configuration

Examples:
  dino play
  dino play --difficulty hard --sound
  dino menu
  dino serve --ssh :2222
  dino web --addr :8080`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (discarded when empty)")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Enable sound effects")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(configCmd)
}

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig reads the config file and applies --difficulty.
func loadConfig() (config.DinoConfig, error) {
	cfg, err := config.LoadDino(flagConfig)
	if err != nil {
		return config.DinoConfig{}, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return config.DinoConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyDinoPreset(&cfg, preset)
	}
	return cfg, nil
}

// interactiveLogger logs to --log-file so the alt screen stays clean.
// The returned closer must be called on exit.
func interactiveLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "dino",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}

// serverLogger logs to stderr for the network commands.
func serverLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// openStore opens the scores database. Play continues without
// persistence when it cannot be opened.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// openSound returns a sound player when --sound is set. The returned
// closer is always safe to call.
func openSound(logger *log.Logger) (tui.SoundPlayer, func()) {
	if !flagSound {
		return nil, func() {}
	}
	p := audio.Open(audio.Options{Volume: audio.DefaultVolume, Logger: logger})
	if !p.Enabled() {
		return nil, func() {}
	}
	return p, p.Close
}

// runtimeConfig sizes the first frame from the terminal.
func runtimeConfig() core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	if flagFPS > 0 {
		rt.TickRate = flagFPS
	}
	rt.Seed = flagSeed
	return rt
}
