package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dino/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a run would use, after the search order
and --difficulty are applied. The output is valid YAML and can be saved
as ~/.dino/configs/dino.yaml as a starting point.

Examples:
  dino config
  dino config --difficulty hard > ~/.dino/configs/dino.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}
	out, err := config.MarshalDino(cfg)
	if err != nil {
		fatalf("encoding config: %v", err)
	}
	_, _ = os.Stdout.Write(out)
}
