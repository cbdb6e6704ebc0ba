// Package audio synthesises the runner's sound effects with beep and
// plays them through the system speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// Sound identifies a sound effect.
type Sound int

const (
	SoundJump Sound = iota
	SoundHit
	SoundMilestone
	SoundRecord
)

// String returns the sound name.
func (s Sound) String() string {
	switch s {
	case SoundJump:
		return "jump"
	case SoundHit:
		return "hit"
	case SoundMilestone:
		return "milestone"
	case SoundRecord:
		return "record"
	default:
		return "unknown"
	}
}

// oscillator generates a raw wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1.0
			if o.phase >= 0.5 {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/release envelope.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(0, total-att-rel),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if releaseStart := e.attackSamples + e.sustainSamples; e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. math.Log2(0) is -Inf, so zero
// volume is mapped to silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is an enveloped oscillator.
func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// Effect builds a fresh streamer for a sound at the given volume.
func Effect(s Sound, rate beep.SampleRate, vol float64) beep.Streamer {
	var stream beep.Streamer
	switch s {
	case SoundJump:
		// Short rising blip
		stream = beep.Seq(
			tone(523.25, 30*time.Millisecond, WaveSquare, rate),
			tone(783.99, 40*time.Millisecond, WaveSquare, rate),
		)
	case SoundHit:
		stream = tone(110, 250*time.Millisecond, WaveSaw, rate)
	case SoundMilestone:
		// Two-note chime, B5 then E6
		stream = beep.Seq(
			tone(987.77, 80*time.Millisecond, WaveSquare, rate),
			tone(1318.51, 160*time.Millisecond, WaveSquare, rate),
		)
	case SoundRecord:
		stream = beep.Seq(
			tone(659.25, 90*time.Millisecond, WaveSine, rate),
			tone(783.99, 90*time.Millisecond, WaveSine, rate),
			tone(1046.50, 220*time.Millisecond, WaveSine, rate),
		)
	default:
		return nil
	}
	return newVolume(stream, vol)
}
