package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dino/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the game over a websocket",
	Long: `Start an HTTP server that runs the game for browser clients.

The server owns the simulation. A page connects to /ws, draws the JSON
snapshots it receives and sends intents back:

  {"intent":"jump"}                         start, restart or jump
  {"intent":"duck"} / {"intent":"duck_end"} hold and release duck
  {"intent":"touch","y":250,"height":300}   lower 40% ducks, else jumps
  {"intent":"resize","width":800,"height":300}

GET /healthz reports liveness.

Examples:
  dino web
  dino web --addr :9000 --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) {
	game, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}

	server := web.NewServer(web.ServerConfig{
		Address:  flagWebAddr,
		DBPath:   flagDBPath,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Game:     game,
	}, serverLogger("dino-web"))

	fmt.Printf("Starting Dino Runner web server on %s (websocket at /ws)\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatalf("server: %v", err)
	}
}
