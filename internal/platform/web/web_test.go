package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/games/dino/sim"
	"github.com/vovakirdan/tui-dino/internal/storage"
)

// wireState is the subset of a snapshot the tests read back.
type wireState struct {
	Phase   string  `json:"phase"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	GroundY float64 `json:"ground_y"`
	Frame   uint64  `json:"frame"`
	Player  struct {
		Y       float64 `json:"y"`
		Ducking bool    `json:"ducking"`
	} `json:"player"`
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(config.DefaultDinoConfig(), 1, nil, nil)
}

func TestDecodeClient(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    ClientMessage
		wantErr bool
	}{
		{"jump", `{"intent":"jump"}`, ClientMessage{Intent: IntentJump}, false},
		{"touch", `{"intent":"touch","y":250,"height":300}`, ClientMessage{Intent: IntentTouch, Y: 250, Height: 300}, false},
		{"resize", `{"intent":"resize","width":1024,"height":400}`, ClientMessage{Intent: IntentResize, Width: 1024, Height: 400}, false},
		{"empty", ``, ClientMessage{}, true},
		{"garbage", `{"intent":`, ClientMessage{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeClient([]byte(tt.in))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeClient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DecodeClient() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEncodeEnvelope(t *testing.T) {
	b, err := Encode(MsgError, ErrorPayload{Message: "nope"})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.T != MsgError || !strings.Contains(string(env.P), "nope") {
		t.Errorf("envelope = %s", b)
	}

	if _, err := Encode("", 1); err == nil {
		t.Error("expected error for empty type")
	}
}

func TestSessionIntents(t *testing.T) {
	s := newTestSession(t)

	ev, err := s.Handle(ClientMessage{Intent: IntentJump})
	if err != nil || !ev.Started {
		t.Fatalf("first jump: events %+v, err %v; want Started", ev, err)
	}
	if got := s.Snapshot().Phase; got != sim.PhaseRunning {
		t.Fatalf("phase = %v, want running", got)
	}

	if _, err := s.Handle(ClientMessage{Intent: IntentDuck}); err != nil {
		t.Fatal(err)
	}
	if !s.Snapshot().Player.Ducking {
		t.Error("duck intent should duck")
	}
	if _, err := s.Handle(ClientMessage{Intent: IntentDuckEnd}); err != nil {
		t.Fatal(err)
	}
	if s.Snapshot().Player.Ducking {
		t.Error("duck_end should stand up")
	}

	if _, err := s.Handle(ClientMessage{Intent: "fly"}); err == nil {
		t.Error("unknown intent should be rejected")
	}
}

func TestSessionTouch(t *testing.T) {
	tests := []struct {
		name     string
		y        float64
		wantDuck bool
		wantJump bool
	}{
		{"upper half jumps", 50, false, true},
		{"lower 40 percent ducks", 250, true, false},
		{"just inside the zone ducks", 181, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			if _, err := s.Handle(ClientMessage{Intent: IntentStart}); err != nil {
				t.Fatal(err)
			}

			ev, err := s.Handle(ClientMessage{Intent: IntentTouch, Y: tt.y, Height: 300})
			if err != nil {
				t.Fatal(err)
			}
			if ev.Jumped != tt.wantJump {
				t.Errorf("Jumped = %v, want %v", ev.Jumped, tt.wantJump)
			}
			if got := s.Snapshot().Player.Ducking; got != tt.wantDuck {
				t.Errorf("Ducking = %v, want %v", got, tt.wantDuck)
			}
		})
	}
}

func TestSessionResize(t *testing.T) {
	s := newTestSession(t)

	if _, err := s.Handle(ClientMessage{Intent: IntentResize, Width: 1200, Height: 400}); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if snap.Width != 1200 || snap.Height != 400 {
		t.Errorf("viewport = %gx%g, want 1200x400", snap.Width, snap.Height)
	}
	if snap.Phase != sim.PhaseNotStarted {
		t.Errorf("phase after resize = %v, want not_started", snap.Phase)
	}

	rejected := []struct {
		name          string
		width, height float64
	}{
		{"zero width", 0, 400},
		{"huge width", 1e17, 300},
		{"huge height", 800, 1e12},
		{"below ground line", 800, 30},
	}
	for _, tt := range rejected {
		done := make(chan error, 1)
		go func() {
			_, err := s.Handle(ClientMessage{Intent: IntentResize, Width: tt.width, Height: tt.height})
			done <- err
		}()
		select {
		case err := <-done:
			if err == nil {
				t.Errorf("%s: resize should be rejected", tt.name)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("%s: resize did not return", tt.name)
		}
		if snap := s.Snapshot(); snap.Width != 1200 || snap.Height != 400 {
			t.Errorf("%s: viewport changed to %gx%g", tt.name, snap.Width, snap.Height)
		}
	}
}

func TestSessionsShareHighScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	// Both sessions load the empty slot before either run ends.
	a := NewSession(config.DefaultDinoConfig(), 1, store, nil)
	b := NewSession(config.DefaultDinoConfig(), 2, store, nil)

	if ev := crashRun(t, a); !ev.NewHighScore {
		t.Error("first finished run should set the high score")
	}
	first, _ := store.HighScore()
	if first <= 0 {
		t.Fatalf("high score after first session = %d, want > 0", first)
	}

	// A third player posts a score neither session has seen.
	if err := store.SetHighScore(first + 5000); err != nil {
		t.Fatal(err)
	}
	want := first + 5000

	if ev := crashRun(t, b); ev.NewHighScore {
		t.Error("a run below the saved best must not be a record")
	}
	if got, _ := store.HighScore(); got != want {
		t.Errorf("saved high score = %d, want %d", got, want)
	}
	if got := b.Snapshot().HighScore; got != want {
		t.Errorf("second session shows high score %d, want %d", got, want)
	}
	if got, _ := store.HighScore(); got < first {
		t.Errorf("saved high score regressed from %d to %d", first, got)
	}
}

// crashRun starts a run and never jumps until an obstacle ends it.
func crashRun(t *testing.T, s *Session) sim.Events {
	t.Helper()
	if _, err := s.Handle(ClientMessage{Intent: IntentStart}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20000; i++ {
		if i%48 == 0 {
			s.Spawn()
		}
		if _, ev, _ := s.Frame(); ev.GameOver {
			return ev
		}
	}
	t.Fatal("run never ended")
	return sim.Events{}
}

func TestSessionFrameChanged(t *testing.T) {
	s := newTestSession(t)

	if _, _, changed := s.Frame(); changed {
		t.Error("idle frame should not report a change")
	}

	if _, err := s.Handle(ClientMessage{Intent: IntentStart}); err != nil {
		t.Fatal(err)
	}
	snap, _, changed := s.Frame()
	if !changed {
		t.Error("running frame should report a change")
	}
	if snap.FrameCount != 1 {
		t.Errorf("frame = %d, want 1", snap.FrameCount)
	}
}

func TestSessionSavesFinishedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	s := NewSession(config.DefaultDinoConfig(), 1, store, nil)
	if _, err := s.Handle(ClientMessage{Intent: IntentStart}); err != nil {
		t.Fatal(err)
	}

	// With no spawns nothing can be hit, so end the run by spawning
	// until a cactus arrives.
	over := false
	for i := 0; i < 20000 && !over; i++ {
		if i%48 == 0 {
			s.Spawn()
		}
		_, ev, _ := s.Frame()
		over = ev.GameOver
	}
	if !over {
		t.Fatal("run never ended")
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	hs, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() error: %v", err)
	}
	if hs != runs[0].Score {
		t.Errorf("high score = %d, want %d", hs, runs[0].Score)
	}
}

func TestHealthz(t *testing.T) {
	srv := NewServer(ServerConfig{TickRate: 60, Game: config.DefaultDinoConfig()}, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	return conn
}

// next reads envelopes until one of type t arrives.
func next(t *testing.T, conn *websocket.Conn, typ string) Envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			t.Fatalf("read %s: %v", typ, err)
		}
		if env.T == typ {
			return env
		}
	}
}

func TestWebsocketPlay(t *testing.T) {
	srv := NewServer(ServerConfig{TickRate: 60, Seed: 7, Game: config.DefaultDinoConfig()}, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	defer conn.Close()

	var st wireState
	if err := json.Unmarshal(next(t, conn, MsgState).P, &st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if st.Phase != "not_started" || st.Width != 800 || st.GroundY != 250 {
		t.Fatalf("initial state = %+v", st)
	}

	if err := conn.WriteJSON(ClientMessage{Intent: IntentJump}); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for st.Phase != "running" || st.Frame == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("never saw a running frame, last %+v", st)
		}
		if err := json.Unmarshal(next(t, conn, MsgState).P, &st); err != nil {
			t.Fatalf("decode state: %v", err)
		}
	}

	if err := conn.WriteJSON(ClientMessage{Intent: "teleport"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var perr ErrorPayload
	if err := json.Unmarshal(next(t, conn, MsgError).P, &perr); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !strings.Contains(perr.Message, "teleport") {
		t.Errorf("error message = %q", perr.Message)
	}
}

func TestWebsocketSessionsAreIndependent(t *testing.T) {
	srv := NewServer(ServerConfig{TickRate: 60, Game: config.DefaultDinoConfig()}, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	a := dial(t, ts)
	defer a.Close()
	b := dial(t, ts)
	defer b.Close()

	next(t, a, MsgState)
	next(t, b, MsgState)
	if got := srv.Sessions(); got != 2 {
		t.Errorf("Sessions() = %d, want 2", got)
	}

	if err := a.WriteJSON(ClientMessage{Intent: IntentResize, Width: 640, Height: 240}); err != nil {
		t.Fatal(err)
	}
	var st wireState
	if err := json.Unmarshal(next(t, a, MsgState).P, &st); err != nil {
		t.Fatal(err)
	}
	if st.Width != 640 {
		t.Errorf("resized width = %g, want 640", st.Width)
	}

	if err := b.WriteJSON(ClientMessage{Intent: IntentStart}); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(next(t, b, MsgState).P, &st); err != nil {
		t.Fatal(err)
	}
	if st.Width != 800 {
		t.Errorf("second session width = %g, want 800", st.Width)
	}
}
