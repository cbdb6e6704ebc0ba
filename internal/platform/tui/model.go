package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/core"
	"github.com/vovakirdan/tui-dino/internal/games/dino"
	"github.com/vovakirdan/tui-dino/internal/games/dino/sim"
	"github.com/vovakirdan/tui-dino/internal/storage"
)

// SoundPlayer turns simulation events into sound.
type SoundPlayer interface {
	Play(ev sim.Events)
}

// GameOptions configures a GameModel.
type GameOptions struct {
	Config  config.DinoConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional
	Sound   SoundPlayer    // Optional
	Logger  *log.Logger    // Optional

	// Standalone makes the back key quit instead of returning to a menu.
	Standalone bool
}

// GameModel is the Bubble Tea model for a running game.
type GameModel struct {
	game       *dino.Game
	screen     *core.Screen
	store      *storage.Store
	sound      SoundPlayer
	logger     *log.Logger
	keyMapper  *KeyMapper
	config     core.RuntimeConfig
	spawnEvery time.Duration
	duckHold   time.Duration
	standalone bool
	gen        int64

	inputFrame core.InputFrame
	keyDucking bool // Duck held via keyboard repeats
	duckSeq    int
	mouseDuck  bool // Duck held via mouse button

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. A zero seed is replaced by the clock.
func NewGameModel(opts GameOptions) GameModel {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// A nil *storage.Store must not become a non-nil interface.
	var hs sim.HighScoreStore
	if opts.Store != nil {
		hs = opts.Store
	}

	return GameModel{
		game:       dino.New(opts.Config, rt, hs, logger),
		screen:     core.NewScreen(rt.ScreenW, rt.ScreenH),
		store:      opts.Store,
		sound:      opts.Sound,
		logger:     logger,
		keyMapper:  NewKeyMapper(),
		config:     rt,
		spawnEvery: opts.Config.Spawn.Interval,
		duckHold:   opts.Config.Input.DuckHold,
		standalone: opts.Standalone,
		gen:        clockGen.Add(1),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the frame clock and the spawn clock.
func (m GameModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate, m.gen), spawnCmd(m.spawnEvery, m.gen))
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		m.keyDucking, m.mouseDuck = false, false
		m.inputFrame.Clear()
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()

	case SpawnMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.handleEvents(m.game.SpawnTick())
		return m, spawnCmd(m.spawnEvery, m.gen)

	case duckReleaseMsg:
		if m.keyDucking && msg.gen == m.gen && msg.seq == m.duckSeq {
			m.keyDucking = false
			m.inputFrame.Set(core.ActionDuckRelease)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		// Leaving mid-run would throw the run away; only idle screens go back.
		if m.game.Phase() == sim.PhaseRunning {
			return m, nil
		}
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil

	case core.ActionDuck:
		// Terminals report no key-up. Key repeats keep re-arming the
		// release timer; the duck ends once they stop.
		if !m.keyDucking {
			m.inputFrame.Set(core.ActionDuck)
			m.keyDucking = true
		}
		m.duckSeq++
		return m, duckReleaseCmd(m.duckHold, m.gen, m.duckSeq)

	case core.ActionNone:
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleMouse maps clicks with the touch heuristic.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapMouse(msg, m.screen.Height()) {
	case core.ActionDuck:
		m.mouseDuck = true
		m.inputFrame.Set(core.ActionDuck)
	case core.ActionJump:
		m.inputFrame.Set(core.ActionJump)
	case core.ActionDuckRelease:
		if m.mouseDuck {
			m.mouseDuck = false
			m.inputFrame.Set(core.ActionDuckRelease)
		}
	}
	return m, nil
}

// handleTick runs one frame with the input gathered since the last one.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	ev := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.handleEvents(ev)
	return m, tickCmd(m.config.TickRate, m.gen)
}

// handleEvents plays sounds and records finished runs.
func (m GameModel) handleEvents(ev sim.Events) {
	if m.sound != nil {
		m.sound.Play(ev)
	}
	if !ev.GameOver {
		return
	}

	score := m.game.Score()
	m.logger.Info("run finished", "score", score, "high", m.game.HighScore(), "record", ev.NewHighScore)
	if m.store == nil || score == 0 {
		return
	}
	if _, err := m.store.SaveRun(score, m.game.Frames()); err != nil {
		m.logger.Warn("could not save run", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, config.AppDir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	filename := fmt.Sprintf("dino_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Game returns the underlying game.
func (m GameModel) Game() *dino.Game {
	return m.game
}

// Run starts a Bubble Tea program for one game. It reports whether the
// player asked to quit rather than go back to a menu.
func Run(opts GameOptions) (quit bool, err error) {
	model := NewGameModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return true, err
	}
	if m, ok := final.(GameModel); ok {
		return m.IsQuitting(), nil
	}
	return true, nil
}
