package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-dino/internal/games/dino/sim"
)

const (
	sampleRate = beep.SampleRate(48000)

	// DefaultVolume is the linear gain applied to every effect.
	DefaultVolume = 0.4
)

// Options configures a Player.
type Options struct {
	Volume float64
	Logger *log.Logger
}

// Player turns simulation events into sound effects. A Player whose
// speaker failed to open stays silent; Play is always safe to call.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	logger      *log.Logger
	initialized bool
}

// New creates a player. Call Init before any sound is heard.
func New(opts Options) *Player {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	vol := opts.Volume
	if vol < 0 {
		vol = 0
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: vol,
		logger: logger,
	}
}

// Open creates a player and initialises the speaker. On failure the
// error is logged and a silent player is returned.
func Open(opts Options) *Player {
	p := New(opts)
	if err := p.Init(); err != nil {
		p.logger.Warn("audio disabled", "error", err)
	}
	return p
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether the speaker is open.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play queues the effects for one batch of events.
func (p *Player) Play(ev sim.Events) {
	sounds := SoundsFor(ev)
	if len(sounds) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}

	speaker.Lock()
	for _, s := range sounds {
		if st := Effect(s, sampleRate, p.volume); st != nil {
			p.mixer.Add(st)
		}
	}
	speaker.Unlock()
}

// Close silences everything and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// SoundsFor picks the effects for a batch of events. A crash drowns
// out anything else that happened on the same frame.
func SoundsFor(ev sim.Events) []Sound {
	if ev.GameOver {
		if ev.NewHighScore {
			return []Sound{SoundHit, SoundRecord}
		}
		return []Sound{SoundHit}
	}

	var out []Sound
	if ev.Jumped {
		out = append(out, SoundJump)
	}
	if ev.Milestone {
		out = append(out, SoundMilestone)
	}
	return out
}
