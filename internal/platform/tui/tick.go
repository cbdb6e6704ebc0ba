// Package tui provides the Bubble Tea integration for the runner.
// It handles the terminal UI loop, input mapping, the title menu,
// the scoreboard and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clockGen numbers game models so that timers armed by a finished game
// are ignored by the next one in the same program.
var clockGen atomic.Int64

// TickMsg is sent to trigger a simulation frame.
type TickMsg struct {
	At  time.Time
	Gen int64
}

// SpawnMsg is sent to trigger a spawn attempt. It runs on its own clock,
// independent of the frame rate.
type SpawnMsg struct {
	At  time.Time
	Gen int64
}

// duckReleaseMsg fires when no duck key repeat arrived within the hold
// window. seq identifies the press that armed it.
type duckReleaseMsg struct {
	gen int64
	seq int
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}

// spawnCmd schedules the next spawn attempt.
func spawnCmd(interval time.Duration, gen int64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return SpawnMsg{At: t, Gen: gen}
	})
}

// duckReleaseCmd schedules a duck release check.
func duckReleaseCmd(hold time.Duration, gen int64, seq int) tea.Cmd {
	return tea.Tick(hold, func(time.Time) tea.Msg {
		return duckReleaseMsg{gen: gen, seq: seq}
	})
}
