package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dino/internal/games/dino"
	"github.com/vovakirdan/tui-dino/internal/storage"
)

var (
	flagScoresLimit int
	flagClearRuns   bool
	flagResetHigh   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score and past runs",
	Long: `Display the saved high score, the best runs and overall statistics.

Examples:
  dino scores
  dino scores --limit 20
  dino scores --clear          # Forget run history, keep the high score
  dino scores --reset-high     # Reset the high score to 0`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClearRuns, "clear", false, "Delete the run history")
	scoresCmd.Flags().BoolVar(&flagResetHigh, "reset-high", false, "Reset the high score")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening scores database: %v", err)
	}
	defer store.Close()

	if flagClearRuns {
		if err := store.ClearRuns(); err != nil {
			store.Close()
			fatalf("clearing runs: %v", err)
		}
		fmt.Println("Run history cleared.")
	}
	if flagResetHigh {
		if err := store.ResetHighScore(); err != nil {
			store.Close()
			fatalf("resetting high score: %v", err)
		}
		fmt.Println("High score reset.")
	}

	high, err := store.HighScore()
	if err != nil {
		store.Close()
		fatalf("reading high score: %v", err)
	}
	runs, err := store.TopRuns(flagScoresLimit)
	if err != nil {
		store.Close()
		fatalf("retrieving runs: %v", err)
	}
	stats, err := store.Stats()
	if err != nil {
		store.Close()
		fatalf("retrieving stats: %v", err)
	}

	fmt.Printf("High Scores - %s\n", dino.Title)
	fmt.Println()
	fmt.Printf("HI %s\n", dino.FormatScore(high))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dino play' to set the first score!")
		return
	}

	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}

	fmt.Printf("  %-4s  %-7s  %-6s  %s\n", "Rank", "Score", "Time", "Date")
	fmt.Printf("  %-4s  %-7s  %-6s  %s\n", "----", "-----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-7s  %-6s  %s\n",
			i+1,
			dino.FormatScore(r.Score),
			survival(r.Frames, fps),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Total: %d\n",
		stats.Runs, stats.BestRun, stats.AvgScore, stats.TotalScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Local().Format(time.RFC1123))
	}
}

// survival formats a frame count as m:ss.
func survival(frames uint64, fps int) string {
	d := time.Duration(frames) * time.Second / time.Duration(fps)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
