// Package sim is the runner's simulation core: world state, player
// physics, obstacle spawning, scrolling, collision and phase transitions.
//
// A Simulation is not safe for concurrent use. The frame driver and the
// spawn timer must call into it from one goroutine, or hold a lock.
package sim

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dino/internal/config"
)

// HighScoreStore persists the best score. It is read once when the
// simulation is built and written when a run beats it.
type HighScoreStore interface {
	HighScore() (int, error)
	SetHighScore(score int) error
}

// Intent is a semantic player input.
type Intent int

const (
	IntentStart Intent = iota
	IntentRestart
	IntentJump
	IntentDuckBegin
	IntentDuckEnd
)

// Options configures a Simulation.
type Options struct {
	Store  HighScoreStore // Optional
	Logger *log.Logger    // Optional; discards when nil
	Seed   int64

	// Viewport overrides the configured logical size when both are positive.
	Width  float64
	Height float64
}

// Simulation owns the world, the player and every entity.
type Simulation struct {
	cfg        config.DinoConfig
	difficulty *config.DifficultyManager
	store      HighScoreStore
	logger     *log.Logger
	rng        *rand.Rand

	world  World
	player Player
	ground []GroundObstacle
	flying []FlyingObstacle
	tiles  []GroundTile
	clouds []Cloud
}

// New builds a simulation in the NotStarted phase and loads the high score.
func New(cfg config.DinoConfig, opts Options) *Simulation {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Simulation{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		store:      opts.Store,
		logger:     logger,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		ground:     make([]GroundObstacle, 0, cfg.Obstacles.MaxActive),
		flying:     make([]FlyingObstacle, 0, 1),
	}

	width, height := cfg.Viewport.Width, cfg.Viewport.Height
	if cfg.Viewport.CheckSize(opts.Width, opts.Height) == nil {
		width, height = opts.Width, opts.Height
	}

	s.world.HighScore = s.loadHighScore()
	s.layout(width, height)
	return s
}

// loadHighScore reads the persisted best score. Any failure means 0.
func (s *Simulation) loadHighScore() int {
	if s.store == nil {
		return 0
	}
	score, err := s.store.HighScore()
	if err != nil {
		s.logger.Warn("could not read high score", "error", err)
		return 0
	}
	if score < 0 {
		return 0
	}
	return score
}

// layout fully re-initialises the world for a viewport size.
func (s *Simulation) layout(width, height float64) {
	s.world.Width = width
	s.world.Height = height
	s.world.GroundY = s.cfg.Viewport.GroundY(height)
	s.world.Phase = PhaseNotStarted
	s.resetRun()
	s.seedScenery()
}

// resetRun clears everything a run accumulates. Scenery and the high
// score survive.
func (s *Simulation) resetRun() {
	s.world.Speed = s.difficulty.InitialSpeed()
	s.world.Score = 0
	s.world.FrameCount = 0
	s.world.IsDaytime = true
	s.world.dayCycle = 0
	s.world.milestone = 0
	s.world.NewRecord = false
	s.player = newPlayer(s.cfg.Player, s.world.GroundY)
	s.ground = s.ground[:0]
	s.flying = s.flying[:0]
}

// Resize re-initialises the simulation for a new viewport. Any run in
// progress is discarded and the game returns to NotStarted. Sizes that
// DinoViewport.CheckSize rejects are ignored.
func (s *Simulation) Resize(width, height float64) {
	if s.cfg.Viewport.CheckSize(width, height) != nil {
		return
	}
	s.layout(width, height)
}

// Start leaves the NotStarted phase.
func (s *Simulation) Start() Events {
	if s.world.Phase != PhaseNotStarted {
		return Events{}
	}
	s.world.Phase = PhaseRunning
	return Events{Started: true}
}

// Restart begins a new run after game over. The high score is kept.
func (s *Simulation) Restart() Events {
	if s.world.Phase != PhaseGameOver {
		return Events{}
	}
	s.resetRun()
	s.refreshHighScore()
	s.world.Phase = PhaseRunning
	return Events{Restarted: true}
}

// Apply feeds one intent into the simulation. Jump doubles as start and
// restart, like the space bar in the browser game. Intents that make no
// sense in the current state are ignored.
func (s *Simulation) Apply(in Intent) Events {
	switch in {
	case IntentStart:
		return s.Start()
	case IntentRestart:
		return s.Restart()
	case IntentJump:
		switch s.world.Phase {
		case PhaseNotStarted:
			return s.Start()
		case PhaseGameOver:
			return s.Restart()
		}
		return Events{Jumped: s.player.jump(s.cfg.Physics)}
	case IntentDuckBegin:
		if s.world.Phase == PhaseRunning {
			s.player.duck(s.cfg.Physics, s.cfg.Player, s.world.GroundY)
		}
	case IntentDuckEnd:
		s.player.standUp(s.cfg.Player, s.world.GroundY)
	}
	return Events{}
}

// Update advances the simulation by one frame. Outside the Running
// phase it does nothing.
func (s *Simulation) Update() Events {
	var ev Events
	if s.world.Phase != PhaseRunning {
		return ev
	}

	w := &s.world
	w.FrameCount++
	w.Score += s.cfg.Scoring.PerFrame
	ev.DayNightFlip = s.updateDayNight()
	ev.Milestone = s.updateMilestone()
	w.Speed = s.difficulty.Speed(w.Score)

	ev.Landed = s.player.integrate(s.cfg.Physics, s.cfg.Player, w.GroundY)
	s.player.animate(w.FrameCount, s.cfg.Player.RunFrameEvery)

	s.scrollObstacles()
	s.scrollScenery()

	if s.collides() {
		ev.GameOver = true
		ev.NewHighScore = s.endRun()
	}

	s.pruneObstacles()
	s.recycleScenery()
	return ev
}

// updateDayNight re-derives the lighting whenever the number of whole
// intervals elapsed changes. Even counts are day, odd counts are night.
// Comparing counts rather than testing for an exact multiple means a
// frame that skips past a threshold still flips, and lingering on one
// never flips twice.
func (s *Simulation) updateDayNight() bool {
	interval := float64(s.cfg.Scoring.DayNightInterval)
	if interval <= 0 {
		return false
	}
	cycle := int(math.Floor(s.world.Score / interval))
	if cycle == s.world.dayCycle {
		return false
	}
	s.world.dayCycle = cycle
	day := cycle%2 == 0
	if day == s.world.IsDaytime {
		return false
	}
	s.world.IsDaytime = day
	return true
}

func (s *Simulation) updateMilestone() bool {
	every := float64(s.cfg.Scoring.MilestoneEvery)
	if every <= 0 {
		return false
	}
	m := int(math.Floor(s.world.Score / every))
	if m <= s.world.milestone {
		return false
	}
	s.world.milestone = m
	return true
}

// refreshHighScore picks up a better score saved by another session
// sharing the store.
func (s *Simulation) refreshHighScore() {
	if hs := s.loadHighScore(); hs > s.world.HighScore {
		s.world.HighScore = hs
	}
}

// endRun enters GameOver and persists the score if it is a new record.
func (s *Simulation) endRun() bool {
	s.world.Phase = PhaseGameOver
	s.refreshHighScore()

	final := s.world.DisplayScore()
	if final <= s.world.HighScore {
		return false
	}
	s.world.HighScore = final
	s.world.NewRecord = true
	if s.store != nil {
		if err := s.store.SetHighScore(final); err != nil {
			s.logger.Warn("could not save high score", "score", final, "error", err)
		}
	}
	return true
}

// Phase returns the current phase.
func (s *Simulation) Phase() Phase {
	return s.world.Phase
}

// World returns a copy of the world state.
func (s *Simulation) World() World {
	return s.world
}

// Player returns a copy of the player.
func (s *Simulation) Player() Player {
	return s.player
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() config.DinoConfig {
	return s.cfg
}
