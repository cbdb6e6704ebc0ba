package web

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/core"
	"github.com/vovakirdan/tui-dino/internal/games/dino/sim"
	"github.com/vovakirdan/tui-dino/internal/storage"
)

// Session is one browser's game. The frame and spawn tickers run on
// their own goroutines, so every access to the simulation holds mu.
type Session struct {
	mu     sync.Mutex
	sim    *sim.Simulation
	store  *storage.Store
	logger *log.Logger
	dirty  bool // A client message changed state since the last frame
}

// NewSession creates a session with its own simulation.
func NewSession(cfg config.DinoConfig, seed int64, store *storage.Store, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// A nil *storage.Store must not become a non-nil interface.
	var hs sim.HighScoreStore
	if store != nil {
		hs = store
	}

	return &Session{
		sim:    sim.New(cfg, sim.Options{Store: hs, Logger: logger, Seed: seed}),
		store:  store,
		logger: logger,
	}
}

// Handle applies one client message.
func (s *Session) Handle(m ClientMessage) (sim.Events, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, err := s.apply(m)
	if err == nil {
		s.dirty = true
	}
	return ev, err
}

func (s *Session) apply(m ClientMessage) (sim.Events, error) {
	switch m.Intent {
	case IntentStart:
		return s.sim.Apply(sim.IntentStart), nil
	case IntentRestart:
		return s.sim.Apply(sim.IntentRestart), nil
	case IntentJump:
		return s.sim.Apply(sim.IntentJump), nil
	case IntentDuck:
		return s.sim.Apply(sim.IntentDuckBegin), nil
	case IntentDuckEnd:
		return s.sim.Apply(sim.IntentDuckEnd), nil
	case IntentTouch:
		if core.ClassifyTouch(m.Y, m.Height) == core.ActionDuck {
			return s.sim.Apply(sim.IntentDuckBegin), nil
		}
		return s.sim.Apply(sim.IntentJump), nil
	case IntentResize:
		if err := s.sim.Config().Viewport.CheckSize(m.Width, m.Height); err != nil {
			return sim.Events{}, fmt.Errorf("web: resize: %w", err)
		}
		s.sim.Resize(m.Width, m.Height)
		return sim.Events{}, nil
	default:
		return sim.Events{}, fmt.Errorf("web: unknown intent %q", m.Intent)
	}
}

// Frame advances one frame. changed is false when nothing moved and no
// client message arrived, so idle screens are not re-sent.
func (s *Session) Frame() (snap sim.Snapshot, ev sim.Events, changed bool) {
	s.mu.Lock()
	running := s.sim.Phase() == sim.PhaseRunning
	ev = s.sim.Update()
	snap = s.sim.Snapshot()
	changed = running || s.dirty
	s.dirty = false
	s.mu.Unlock()

	s.finish(ev, snap)
	return snap, ev, changed
}

// Spawn runs one spawn attempt.
func (s *Session) Spawn() sim.Events {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.SpawnTick()
}

// Snapshot returns the current state.
func (s *Session) Snapshot() sim.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Snapshot()
}

// finish records a completed run.
func (s *Session) finish(ev sim.Events, snap sim.Snapshot) {
	if !ev.GameOver {
		return
	}
	s.logger.Info("run finished", "score", snap.Score, "frames", snap.FrameCount, "record", ev.NewHighScore)
	if s.store == nil || snap.Score <= 0 {
		return
	}
	if _, err := s.store.SaveRun(snap.Score, snap.FrameCount); err != nil {
		s.logger.Warn("could not save run", "error", err)
	}
}
