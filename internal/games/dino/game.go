// Package dino adapts the runner simulation to terminal play.
// Input frames from the platform become simulation intents; snapshots
// are drawn into a cell screen.
package dino

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/core"
	"github.com/vovakirdan/tui-dino/internal/games/dino/sim"
)

// Logical units covered by one terminal cell. An 80x24 terminal shows
// the classic 800x300 field.
const (
	UnitsPerCol = 10.0
	UnitsPerRow = 12.5
)

// Title is the display name.
const Title = "Dino Runner"

// Viewport returns the logical field size for a terminal size.
func Viewport(cols, rows int) (w, h float64) {
	return float64(cols) * UnitsPerCol, float64(rows) * UnitsPerRow
}

// Game drives one simulation from terminal input.
type Game struct {
	sim  *sim.Simulation
	cols int
	rows int
}

// New creates a game sized for the runtime screen.
func New(cfg config.DinoConfig, rt core.RuntimeConfig, store sim.HighScoreStore, logger *log.Logger) *Game {
	w, h := Viewport(rt.ScreenW, rt.ScreenH)
	return &Game{
		sim: sim.New(cfg, sim.Options{
			Store:  store,
			Logger: logger,
			Seed:   rt.Seed,
			Width:  w,
			Height: h,
		}),
		cols: rt.ScreenW,
		rows: rt.ScreenH,
	}
}

// Step applies the frame's actions in order, then advances one frame.
func (g *Game) Step(in core.InputFrame) sim.Events {
	var ev sim.Events
	for _, a := range in.Actions {
		if intent, ok := intentFor(a); ok {
			ev.Merge(g.sim.Apply(intent))
		}
	}
	ev.Merge(g.sim.Update())
	return ev
}

// intentFor maps a platform action to a simulation intent.
func intentFor(a core.Action) (sim.Intent, bool) {
	switch a {
	case core.ActionStart:
		return sim.IntentStart, true
	case core.ActionRestart:
		return sim.IntentRestart, true
	case core.ActionJump, core.ActionConfirm:
		return sim.IntentJump, true
	case core.ActionDuck:
		return sim.IntentDuckBegin, true
	case core.ActionDuckRelease:
		return sim.IntentDuckEnd, true
	}
	return 0, false
}

// SpawnTick runs one spawn attempt.
func (g *Game) SpawnTick() sim.Events {
	return g.sim.SpawnTick()
}

// Resize re-initialises the field for a new terminal size.
func (g *Game) Resize(cols, rows int) {
	if cols == g.cols && rows == g.rows {
		return
	}
	g.cols, g.rows = cols, rows
	g.sim.Resize(Viewport(cols, rows))
}

// Snapshot returns the current simulation snapshot.
func (g *Game) Snapshot() sim.Snapshot {
	return g.sim.Snapshot()
}

// Phase returns the current phase.
func (g *Game) Phase() sim.Phase {
	return g.sim.Phase()
}

// Score returns the displayed score.
func (g *Game) Score() int {
	return g.sim.World().DisplayScore()
}

// HighScore returns the best score known to the simulation.
func (g *Game) HighScore() int {
	return g.sim.World().HighScore
}

// Frames returns the number of frames in the current run.
func (g *Game) Frames() uint64 {
	return g.sim.World().FrameCount
}

// Render draws the current state into dst.
func (g *Game) Render(dst *core.Screen) {
	Draw(dst, g.sim.Snapshot())
}

// FormatScore pads a score to five digits, like the browser game.
func FormatScore(n int) string {
	if n < 0 {
		n = 0
	}
	return fmt.Sprintf("%05d", n)
}
