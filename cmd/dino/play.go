package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dino/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start playing immediately.

Controls:
  Space/Up/W   - Jump (also starts and restarts)
  Down/S       - Duck; fast fall while airborne
  Mouse click  - Jump, or duck in the lower part of the screen
  R            - Restart after game over
  B/Esc        - Quit when not running
  Ctrl+S       - Save a screenshot to ~/.dino/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower start, lower top speed
  normal - Classic curve, 8 up to 20
  hard   - Faster start, higher top speed
  fixed  - No speed-up at all

Examples:
  dino play
  dino play --difficulty easy
  dino play --config ./my-dino.yaml --sound`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}

	logger, closeLog := interactiveLogger()
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	sound, closeSound := openSound(logger)
	defer closeSound()

	_, runErr := tui.Run(tui.GameOptions{
		Config:     cfg,
		Runtime:    runtimeConfig(),
		Store:      store,
		Sound:      sound,
		Logger:     logger,
		Standalone: true,
	})
	if runErr != nil {
		logger.Error("game exited", "error", runErr)
		closeSound()
		if store != nil {
			store.Close()
		}
		fatalf("running game: %v", runErr)
	}
}
