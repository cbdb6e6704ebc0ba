package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dino/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the title menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a run you return to the menu with B or Esc.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  dino menu
  dino menu --fps 30
  dino menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
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

	if err := tui.RunSession(tui.SessionOptions{
		Config:  cfg,
		Runtime: runtimeConfig(),
		Store:   store,
		Sound:   sound,
		Logger:  logger,
	}); err != nil {
		logger.Error("menu exited", "error", err)
		fatalf("%v", err)
	}
}
