package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-dino/internal/games/dino/sim"
)

// drain streams s to the end and returns the sample count and peak.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			for _, v := range buf[j] {
				if v < -1.0 || v > 1.0 {
					t.Fatalf("sample %d out of range: %f", total+j, v)
				}
				if v > peak {
					peak = v
				} else if -v > peak {
					peak = -v
				}
			}
		}
		total += n
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		t.Fatalf("unexpected stream error: %v", err)
	}
	return total, peak
}

func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, rate)

		samples := make([][2]float64, 100)
		n, ok := osc.Stream(samples)
		if !ok || n != 100 {
			t.Fatalf("wave %d: Stream() = %d, %v; want 100, true", wave, n, ok)
		}
		for i := 0; i < n; i++ {
			if samples[i][0] != samples[i][1] {
				t.Fatalf("wave %d: sample %d is not mono", wave, i)
			}
		}
	}
}

func TestOscillatorStopsAtDuration(t *testing.T) {
	rate := beep.SampleRate(48000)
	osc := NewOscillator(220, 10*time.Millisecond, WaveSquare, rate)

	n, _ := drain(t, osc)
	if want := rate.N(10 * time.Millisecond); n != want {
		t.Errorf("streamed %d samples, want %d", n, want)
	}

	buf := make([][2]float64, 16)
	if n, ok := osc.Stream(buf); n != 0 || ok {
		t.Errorf("exhausted oscillator Stream() = %d, %v; want 0, false", n, ok)
	}
}

func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	env := NewEnvelope(NewOscillator(0, 100*time.Millisecond, WaveSquare, rate),
		100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate)

	buf := make([][2]float64, 100)
	n, _ := env.Stream(buf)
	if n != 100 {
		t.Fatalf("streamed %d samples, want 100", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, want silence at attack start", buf[0][0])
	}
	if buf[50][0] != 1 {
		t.Errorf("sustain sample = %f, want 1", buf[50][0])
	}
	if buf[99][0] <= 0 || buf[99][0] >= buf[85][0] {
		t.Errorf("release not fading: s[85]=%f s[99]=%f", buf[85][0], buf[99][0])
	}
}

func TestEffectLengths(t *testing.T) {
	tests := []struct {
		sound Sound
		want  time.Duration
	}{
		{SoundJump, 70 * time.Millisecond},
		{SoundHit, 250 * time.Millisecond},
		{SoundMilestone, 240 * time.Millisecond},
		{SoundRecord, 400 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.sound.String(), func(t *testing.T) {
			n, peak := drain(t, Effect(tt.sound, sampleRate, DefaultVolume))
			if want := sampleRate.N(tt.want); n != want {
				t.Errorf("length = %d samples, want %d", n, want)
			}
			if peak == 0 || peak > DefaultVolume+1e-9 {
				t.Errorf("peak = %f, want in (0, %f]", peak, DefaultVolume)
			}
		})
	}
}

func TestEffectMuted(t *testing.T) {
	_, peak := drain(t, Effect(SoundJump, sampleRate, 0))
	if peak != 0 {
		t.Errorf("muted effect peak = %f, want 0", peak)
	}
	if Effect(Sound(99), sampleRate, 1) != nil {
		t.Error("unknown sound should have no streamer")
	}
}

func TestSoundsFor(t *testing.T) {
	tests := []struct {
		name string
		ev   sim.Events
		want []Sound
	}{
		{"nothing", sim.Events{}, nil},
		{"jump", sim.Events{Jumped: true}, []Sound{SoundJump}},
		{"milestone", sim.Events{Milestone: true}, []Sound{SoundMilestone}},
		{"jump and milestone", sim.Events{Jumped: true, Milestone: true}, []Sound{SoundJump, SoundMilestone}},
		{"crash", sim.Events{GameOver: true, Milestone: true}, []Sound{SoundHit}},
		{"record", sim.Events{GameOver: true, NewHighScore: true}, []Sound{SoundHit, SoundRecord}},
		{"ambient only", sim.Events{Landed: true, DayNightFlip: true, SpawnedGround: true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SoundsFor(tt.ev)
			if len(got) != len(tt.want) {
				t.Fatalf("SoundsFor() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SoundsFor()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPlayerWithoutSpeaker(t *testing.T) {
	p := New(Options{Volume: -1})
	if p.Enabled() {
		t.Fatal("player should start disabled")
	}
	p.Play(sim.Events{Jumped: true, GameOver: true})
	p.Close()
}
