package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-dino/internal/config"
)

// memStore is an in-memory HighScoreStore that records writes.
type memStore struct {
	score   int
	readErr error
	writes  []int
}

func (m *memStore) HighScore() (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	return m.score, nil
}

func (m *memStore) SetHighScore(score int) error {
	m.score = score
	m.writes = append(m.writes, score)
	return nil
}

func newTestSim(t *testing.T, store HighScoreStore) *Simulation {
	t.Helper()
	return New(config.DefaultDinoConfig(), Options{Store: store, Seed: 42})
}

func running(t *testing.T, store HighScoreStore) *Simulation {
	t.Helper()
	s := newTestSim(t, store)
	if ev := s.Start(); !ev.Started {
		t.Fatal("Start should report Started")
	}
	return s
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewInitialState(t *testing.T) {
	s := newTestSim(t, &memStore{score: 321})
	w := s.World()

	if w.Phase != PhaseNotStarted {
		t.Errorf("phase = %v, want not_started", w.Phase)
	}
	if w.Speed != 8 {
		t.Errorf("speed = %v, want 8", w.Speed)
	}
	if w.Score != 0 || w.FrameCount != 0 {
		t.Errorf("score/frame = %v/%d, want 0/0", w.Score, w.FrameCount)
	}
	if !w.IsDaytime {
		t.Error("should start in daytime")
	}
	if w.GroundY != 250 {
		t.Errorf("ground y = %v, want 250", w.GroundY)
	}
	if w.HighScore != 321 {
		t.Errorf("high score = %d, want 321", w.HighScore)
	}

	p := s.Player()
	if p.Y != 202 || p.Airborne || p.Posture != PostureStanding {
		t.Errorf("player = %+v, want standing on the ground at y=202", p)
	}
}

func TestNewHighScoreFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		store HighScoreStore
	}{
		{"no store", nil},
		{"read error", &memStore{readErr: errors.New("boom")}},
		{"negative", &memStore{score: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(t, tt.store)
			if got := s.World().HighScore; got != 0 {
				t.Errorf("high score = %d, want 0", got)
			}
		})
	}
}

func TestUpdateIdleOutsideRunning(t *testing.T) {
	s := newTestSim(t, nil)
	before := s.Snapshot()

	if ev := s.Update(); ev != (Events{}) {
		t.Errorf("Update in not_started returned %+v", ev)
	}
	after := s.Snapshot()
	if after.FrameCount != before.FrameCount || after.Score != before.Score {
		t.Error("Update should not advance a game that has not started")
	}
}

func TestJumpStartsAndRestarts(t *testing.T) {
	s := newTestSim(t, nil)

	ev := s.Apply(IntentJump)
	if !ev.Started || s.Phase() != PhaseRunning {
		t.Fatalf("jump should start the game, got %+v phase %v", ev, s.Phase())
	}
	if s.Player().Airborne {
		t.Error("the starting jump should not also launch the player")
	}

	s.world.Phase = PhaseGameOver
	ev = s.Apply(IntentJump)
	if !ev.Restarted || s.Phase() != PhaseRunning {
		t.Errorf("jump should restart after game over, got %+v phase %v", ev, s.Phase())
	}
}

func TestStartRestartGuards(t *testing.T) {
	s := running(t, nil)
	if ev := s.Start(); ev.Started {
		t.Error("Start while running should be ignored")
	}
	if ev := s.Restart(); ev.Restarted {
		t.Error("Restart while running should be ignored")
	}
	if ev := s.Apply(IntentRestart); ev.Restarted {
		t.Error("restart intent while running should be ignored")
	}
}

func TestJumpPhysics(t *testing.T) {
	s := running(t, nil)
	ground := s.Player().Y

	ev := s.Apply(IntentJump)
	if !ev.Jumped {
		t.Fatal("jump should be accepted on the ground")
	}
	p := s.Player()
	if p.VelocityY != -13 || !p.Airborne {
		t.Fatalf("after jump: velocity %v airborne %v", p.VelocityY, p.Airborne)
	}

	s.Update()
	p = s.Player()
	if !approx(p.VelocityY, -12.4) {
		t.Errorf("velocity after one frame = %v, want -12.4", p.VelocityY)
	}
	if !approx(p.Y, ground-12.4) {
		t.Errorf("y after one frame = %v, want %v", p.Y, ground-12.4)
	}

	landed := false
	for i := 0; i < 100 && !landed; i++ {
		landed = s.Update().Landed
	}
	if !landed {
		t.Fatal("player never landed")
	}
	p = s.Player()
	if p.Y != ground || p.VelocityY != 0 || p.Airborne {
		t.Errorf("after landing: %+v", p)
	}
}

func TestJumpIgnored(t *testing.T) {
	t.Run("airborne", func(t *testing.T) {
		s := running(t, nil)
		s.Apply(IntentJump)
		s.Update()
		v := s.Player().VelocityY
		if ev := s.Apply(IntentJump); ev.Jumped {
			t.Error("double jump should be ignored")
		}
		if s.Player().VelocityY != v {
			t.Error("ignored jump changed velocity")
		}
	})

	t.Run("ducking", func(t *testing.T) {
		s := running(t, nil)
		s.Apply(IntentDuckBegin)
		if ev := s.Apply(IntentJump); ev.Jumped {
			t.Error("jump while ducking should be ignored")
		}
		if s.Player().Airborne {
			t.Error("player left the ground while ducking")
		}
	})
}

func TestDuckOnGround(t *testing.T) {
	s := running(t, nil)
	s.Apply(IntentDuckBegin)

	p := s.Player()
	if p.Posture != PostureDucking {
		t.Fatal("duck should switch posture")
	}
	if p.Y != 250-28 {
		t.Errorf("ducking y = %v, want %v", p.Y, 250-28)
	}
	box := p.Bounds(s.Config().Player)
	if box.W != 58 || box.H != 28 {
		t.Errorf("ducking size = %vx%v, want 58x28", box.W, box.H)
	}

	s.Apply(IntentDuckEnd)
	p = s.Player()
	if p.Posture != PostureStanding || p.Y != 202 {
		t.Errorf("after standing up: %+v", p)
	}
}

func TestFastFall(t *testing.T) {
	s := running(t, nil)
	s.Apply(IntentJump)
	for i := 0; i < 5; i++ {
		s.Update()
	}

	s.Apply(IntentDuckBegin)
	p := s.Player()
	if p.VelocityY != 10 {
		t.Errorf("fast fall velocity = %v, want 10", p.VelocityY)
	}
	if p.Posture != PostureDucking {
		t.Error("duck in the air should still switch posture")
	}

	frames := 0
	for s.Player().Airborne && frames < 100 {
		s.Update()
		frames++
	}
	if s.Player().Y != 250-28 {
		t.Errorf("landed ducking at y = %v, want %v", s.Player().Y, 250-28)
	}
}

func TestDuckOnlyWhileRunning(t *testing.T) {
	s := newTestSim(t, nil)
	s.Apply(IntentDuckBegin)
	if s.Player().Posture == PostureDucking {
		t.Error("duck should be ignored before the game starts")
	}
}

func TestDuckEndAlwaysApplies(t *testing.T) {
	s := running(t, nil)
	s.Apply(IntentDuckBegin)
	s.world.Phase = PhaseGameOver

	s.Apply(IntentDuckEnd)
	if s.Player().Posture != PostureStanding {
		t.Error("releasing duck should clear the posture in any phase")
	}
}

func TestStandUpMidFallSnapsToGround(t *testing.T) {
	s := running(t, nil)
	s.Apply(IntentJump)
	s.Update()
	s.Apply(IntentDuckBegin)

	// Fall until the ducking sprite is below the standing floor.
	s.player.Y = 220
	s.Apply(IntentDuckEnd)

	p := s.Player()
	if p.Y != 202 || p.Airborne || p.VelocityY != 0 {
		t.Errorf("standing up below the floor should land: %+v", p)
	}
}

func TestPlayerStaysAboveGround(t *testing.T) {
	s := running(t, nil)
	cfg := s.Config().Player

	for i := 0; i < 2000; i++ {
		switch i % 37 {
		case 0:
			s.Apply(IntentJump)
		case 11:
			s.Apply(IntentDuckBegin)
		case 19:
			s.Apply(IntentDuckEnd)
		}
		s.Update()

		p := s.Player()
		floor := GroundClamp(cfg, p.Posture, s.World().GroundY)
		if p.Y > floor {
			t.Fatalf("frame %d: y %v below floor %v", i, p.Y, floor)
		}
		if !p.Airborne && p.Y != floor {
			t.Fatalf("frame %d: grounded but y %v != floor %v", i, p.Y, floor)
		}
	}
}

func TestScoreAndFrameAdvance(t *testing.T) {
	s := running(t, nil)
	for i := 0; i < 100; i++ {
		s.Update()
	}
	w := s.World()
	if w.FrameCount != 100 {
		t.Errorf("frame count = %d, want 100", w.FrameCount)
	}
	if !approx(w.Score, 15) {
		t.Errorf("score = %v, want 15", w.Score)
	}
}

func TestSpeedFollowsScore(t *testing.T) {
	tests := []struct {
		before float64
		want   float64
	}{
		{0, 8},
		{99.9, 8.5},
		{199.9, 9},
		{1999.9, 18},
		{2399.9, 20},
		{9000, 20},
	}
	for _, tt := range tests {
		s := running(t, nil)
		s.world.Score = tt.before
		s.Update()
		if got := s.World().Speed; got != tt.want {
			t.Errorf("score %v: speed = %v, want %v", s.World().Score, got, tt.want)
		}
	}
}

func TestDayNightFlip(t *testing.T) {
	s := running(t, nil)

	s.world.Score = 699.9
	if ev := s.Update(); !ev.DayNightFlip || s.World().IsDaytime {
		t.Fatalf("crossing 700 should turn to night, got %+v", ev)
	}
	if ev := s.Update(); ev.DayNightFlip {
		t.Error("lingering past 700 should not flip again")
	}

	s.world.Score = 1399.9
	if ev := s.Update(); !ev.DayNightFlip || !s.World().IsDaytime {
		t.Errorf("crossing 1400 should turn back to day, got %+v", ev)
	}
}

func TestDayNightSkippedThresholds(t *testing.T) {
	tests := []struct {
		name     string
		from     float64
		to       float64
		wantDay  bool
		wantFlip bool
	}{
		{"skip 700 and 1400", 699.8, 1400.5, true, false},
		{"skip to 2100", 0, 2100.5, false, true},
		{"skip to 2800", 0, 2800.5, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := running(t, nil)
			s.world.Score = tt.from
			s.Update()
			if !s.World().IsDaytime {
				t.Fatalf("score %v should still be day", tt.from)
			}

			s.world.Score = tt.to
			ev := s.Update()
			if ev.DayNightFlip != tt.wantFlip {
				t.Errorf("DayNightFlip = %v, want %v", ev.DayNightFlip, tt.wantFlip)
			}
			if got := s.World().IsDaytime; got != tt.wantDay {
				t.Errorf("IsDaytime = %v, want %v", got, tt.wantDay)
			}
			if ev := s.Update(); ev.DayNightFlip {
				t.Error("the next frame should not flip again")
			}
		})
	}
}

func TestDayNightFlipsOncePerInterval(t *testing.T) {
	s := running(t, nil)
	flips := 0
	// Keep the player clear of obstacles: there are none without spawns.
	for s.World().Score < 2200 {
		if s.Update().DayNightFlip {
			flips++
		}
	}
	if flips != 3 {
		t.Errorf("flips up to score 2200 = %d, want 3", flips)
	}
	if s.World().IsDaytime {
		t.Error("after three flips it should be night")
	}
}

func TestMilestone(t *testing.T) {
	s := running(t, nil)
	s.world.Score = 99.9
	if ev := s.Update(); !ev.Milestone {
		t.Error("crossing 100 should report a milestone")
	}
	if ev := s.Update(); ev.Milestone {
		t.Error("milestone reported twice")
	}
}

func TestSpawnRules(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		sample     float64
		ground     []GroundObstacle
		flying     []FlyingObstacle
		wantGround bool
		wantFlying bool
	}{
		{name: "ground on empty field", score: 0, sample: 0.5, wantGround: true},
		{name: "nothing above ground chance", score: 0, sample: 0.6},
		{name: "no flying before unlock", score: 200, sample: 0.1, wantGround: true},
		{name: "flying after unlock", score: 200.1, sample: 0.1, wantFlying: true},
		{
			name: "one flying at a time falls back to ground", score: 500, sample: 0.1,
			flying: []FlyingObstacle{{X: 400}}, wantGround: true,
		},
		{
			name: "ground too close to edge", score: 0, sample: 0.3,
			ground: []GroundObstacle{{X: 600}},
		},
		{
			name: "ground far enough", score: 0, sample: 0.3,
			ground: []GroundObstacle{{X: 599}}, wantGround: true,
		},
		{
			name: "ground at capacity", score: 0, sample: 0.3,
			ground: []GroundObstacle{{X: 10}, {X: 100}, {X: 200}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := running(t, nil)
			s.world.Score = tt.score
			s.ground = append(s.ground, tt.ground...)
			s.flying = append(s.flying, tt.flying...)

			ev := s.spawnWith(tt.sample)
			if ev.SpawnedGround != tt.wantGround {
				t.Errorf("spawned ground = %v, want %v", ev.SpawnedGround, tt.wantGround)
			}
			if ev.SpawnedFlying != tt.wantFlying {
				t.Errorf("spawned flying = %v, want %v", ev.SpawnedFlying, tt.wantFlying)
			}
			if tt.wantGround {
				o := s.ground[len(s.ground)-1]
				if o.X != 800 || o.Y+o.Height != 250 {
					t.Errorf("cactus at x=%v bottom=%v, want 800/250", o.X, o.Y+o.Height)
				}
			}
			if tt.wantFlying {
				o := s.flying[0]
				alt := 250 - o.Y
				if alt != 80 && alt != 50 && alt != 120 {
					t.Errorf("bird altitude %v not in {50,80,120}", alt)
				}
			}
		})
	}
}

func TestSpawnTickOnlyWhileRunning(t *testing.T) {
	s := newTestSim(t, nil)
	for i := 0; i < 50; i++ {
		s.SpawnTick()
	}
	if len(s.ground)+len(s.flying) != 0 {
		t.Error("spawner should be idle before the game starts")
	}

	s.world.Phase = PhaseGameOver
	for i := 0; i < 50; i++ {
		s.SpawnTick()
	}
	if len(s.ground)+len(s.flying) != 0 {
		t.Error("spawner should be idle after game over")
	}
}

func TestSpawnerLimitsHoldOverLongPlay(t *testing.T) {
	s := running(t, nil)

	for i := 0; i < 20000; i++ {
		if s.Phase() == PhaseGameOver {
			s.Restart()
		}
		// 800ms at 60 frames per second.
		if i%48 == 0 {
			s.SpawnTick()
		}
		if i%30 == 0 {
			s.Apply(IntentJump)
		}
		s.Update()

		if len(s.flying) > 1 {
			t.Fatalf("frame %d: %d birds", i, len(s.flying))
		}
		if len(s.ground) > 3 {
			t.Fatalf("frame %d: %d cacti", i, len(s.ground))
		}
		for _, o := range s.ground {
			if o.X+o.Width <= 0 {
				t.Fatalf("frame %d: off-screen cactus kept", i)
			}
		}
	}
}

func TestCollisionEndsRunOnce(t *testing.T) {
	store := &memStore{}
	s := running(t, store)
	s.world.Score = 150.5
	s.ground = append(s.ground, GroundObstacle{X: 100, Y: 210, Width: 20, Height: 40})

	ev := s.Update()
	if !ev.GameOver {
		t.Fatal("overlap should end the run")
	}
	if s.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game_over", s.Phase())
	}
	frame := s.World().FrameCount

	for i := 0; i < 10; i++ {
		if ev := s.Update(); ev.GameOver {
			t.Fatal("GameOver reported more than once")
		}
	}
	if s.World().FrameCount != frame {
		t.Error("simulation kept running after game over")
	}
	if len(store.writes) != 1 {
		t.Errorf("high score writes = %v, want one", store.writes)
	}
}

func TestHitboxInsetForgivesEdges(t *testing.T) {
	s := running(t, nil)
	// Sprite spans x 80..124; hitbox 85..119. A cactus touching the sprite
	// but not the hitbox must not end the run.
	s.ground = append(s.ground, GroundObstacle{X: 127, Y: 210, Width: 20, Height: 40})

	if ev := s.Update(); ev.GameOver {
		t.Error("a cactus grazing the sprite edge should not collide")
	}
}

func TestFlyingCollision(t *testing.T) {
	s := running(t, nil)
	// A low bird at ground level; the standing player runs into it.
	s.flying = append(s.flying, FlyingObstacle{X: 110, Y: 250 - 50, Width: 46, Height: 32})
	if ev := s.Update(); !ev.GameOver {
		t.Error("bird overlapping the player should end the run")
	}
}

func TestDuckUnderBird(t *testing.T) {
	// Bird spans y 185..217. Standing hitbox is 207..245, ducking 227..245.
	bird := FlyingObstacle{X: 110, Y: 185, Width: 46, Height: 32}

	s := running(t, nil)
	s.flying = append(s.flying, bird)
	if ev := s.Update(); !ev.GameOver {
		t.Error("standing player should hit the bird")
	}

	s = running(t, nil)
	s.Apply(IntentDuckBegin)
	s.flying = append(s.flying, bird)
	if ev := s.Update(); ev.GameOver {
		t.Error("ducking player should pass under the bird")
	}
}

func TestHighScorePersistence(t *testing.T) {
	tests := []struct {
		name      string
		prior     int
		score     float64
		wantHigh  int
		wantWrite bool
	}{
		{"beaten", 100, 150.5, 150, true},
		{"tied after floor", 150, 150.7, 150, false},
		{"lower", 300, 20, 300, false},
		{"first run", 0, 0.5, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{score: tt.prior}
			s := running(t, store)
			s.world.Score = tt.score
			s.ground = append(s.ground, GroundObstacle{X: 100, Y: 210, Width: 20, Height: 40})

			ev := s.Update()
			if !ev.GameOver {
				t.Fatal("expected game over")
			}
			if ev.NewHighScore != tt.wantWrite {
				t.Errorf("NewHighScore = %v, want %v", ev.NewHighScore, tt.wantWrite)
			}
			if got := s.Snapshot().NewRecord; got != tt.wantWrite {
				t.Errorf("snapshot NewRecord = %v, want %v", got, tt.wantWrite)
			}
			if got := s.World().HighScore; got != tt.wantHigh {
				t.Errorf("high score = %d, want %d", got, tt.wantHigh)
			}
			if wrote := len(store.writes) > 0; wrote != tt.wantWrite {
				t.Errorf("store written = %v, want %v", wrote, tt.wantWrite)
			}
		})
	}
}

func TestHighScoreSharedStore(t *testing.T) {
	store := &memStore{}
	s := running(t, store)

	// Another session sets a better score after this one loaded.
	store.score = 503

	s.world.Score = 117.5
	s.ground = append(s.ground, GroundObstacle{X: 100, Y: 210, Width: 20, Height: 40})
	ev := s.Update()
	if !ev.GameOver {
		t.Fatal("expected game over")
	}
	if ev.NewHighScore || s.Snapshot().NewRecord {
		t.Error("117 must not count as a record against 503")
	}
	if len(store.writes) != 0 {
		t.Errorf("store written %v, want no writes", store.writes)
	}
	if got := s.World().HighScore; got != 503 {
		t.Errorf("high score = %d, want 503", got)
	}

	store.score = 900
	s.Apply(IntentRestart)
	if got := s.World().HighScore; got != 900 {
		t.Errorf("high score after restart = %d, want 900", got)
	}
}

func TestRestartResetsRun(t *testing.T) {
	s := running(t, &memStore{})
	for i := 0; i < 10; i++ {
		s.SpawnTick()
		s.Update()
	}
	s.world.Score = 1234.5
	s.world.IsDaytime = false
	s.ground = append(s.ground, GroundObstacle{X: 100, Y: 210, Width: 20, Height: 40})
	s.Update()
	if s.Phase() != PhaseGameOver {
		t.Fatal("expected game over")
	}

	ev := s.Apply(IntentRestart)
	if !ev.Restarted {
		t.Fatal("restart not reported")
	}
	w := s.World()
	if w.Score != 0 || w.Speed != 8 || w.FrameCount != 0 || !w.IsDaytime {
		t.Errorf("world not reset: %+v", w)
	}
	if w.HighScore != 1234 {
		t.Errorf("high score = %d, want 1234", w.HighScore)
	}
	if len(s.ground) != 0 || len(s.flying) != 0 {
		t.Error("obstacles should be cleared on restart")
	}
	if s.Phase() != PhaseRunning {
		t.Errorf("phase = %v, want running", s.Phase())
	}
}

func TestObstacleScrollAndPrune(t *testing.T) {
	s := running(t, nil)
	s.ground = append(s.ground, GroundObstacle{X: -10, Y: 210, Width: 20, Height: 40})
	s.flying = append(s.flying, FlyingObstacle{X: 500, Y: 100, Width: 46, Height: 32})

	s.Update()
	if len(s.ground) != 1 || s.ground[0].X != -18 {
		t.Fatalf("cactus after one frame: %+v", s.ground)
	}
	if s.flying[0].X != 490 {
		t.Errorf("bird x = %v, want 490 (speed + 2)", s.flying[0].X)
	}

	s.Update()
	if len(s.ground) != 0 {
		t.Errorf("cactus fully off-screen should be removed, got %+v", s.ground)
	}
}

func TestWingFlap(t *testing.T) {
	s := running(t, nil)
	s.flying = append(s.flying, FlyingObstacle{X: 700, Y: 100, Width: 46, Height: 32})
	for i := 0; i < 8; i++ {
		s.Update()
	}
	if s.flying[0].WingFrame != 1 {
		t.Errorf("wing frame after 8 frames = %d, want 1", s.flying[0].WingFrame)
	}
}

func TestRunFrameAnimation(t *testing.T) {
	s := running(t, nil)
	for i := 0; i < 6; i++ {
		s.Update()
	}
	if s.Player().RunFrame != 1 {
		t.Errorf("run frame after 6 frames = %d, want 1", s.Player().RunFrame)
	}
}

func TestSceneryPoolIsStable(t *testing.T) {
	s := running(t, nil)
	tiles, clouds := len(s.tiles), len(s.clouds)
	if clouds != 4 {
		t.Fatalf("clouds = %d, want 4", clouds)
	}
	if tiles == 0 {
		t.Fatal("no ground tiles seeded")
	}

	for i := 0; i < 3000; i++ {
		s.Update()
		for _, tile := range s.tiles {
			if tile.X+tile.Width < 0 {
				t.Fatalf("frame %d: tile left on the far side", i)
			}
		}
		for _, c := range s.clouds {
			if c.Y < 20 || c.Y > 100 {
				t.Fatalf("frame %d: cloud y %v outside 20..100", i, c.Y)
			}
		}
	}
	if len(s.tiles) != tiles || len(s.clouds) != clouds {
		t.Errorf("pool size changed: tiles %d->%d clouds %d->%d", tiles, len(s.tiles), clouds, len(s.clouds))
	}
}

func TestResize(t *testing.T) {
	s := running(t, &memStore{score: 77})
	for i := 0; i < 20; i++ {
		s.Update()
	}

	s.Resize(1200, 400)
	w := s.World()
	if w.Phase != PhaseNotStarted {
		t.Errorf("phase = %v, want not_started", w.Phase)
	}
	if w.Width != 1200 || w.Height != 400 || w.GroundY != 350 {
		t.Errorf("viewport = %vx%v ground %v", w.Width, w.Height, w.GroundY)
	}
	if w.Score != 0 || w.HighScore != 77 {
		t.Errorf("score %v high %d", w.Score, w.HighScore)
	}
	if s.Player().Y != 350-48 {
		t.Errorf("player y = %v, want %v", s.Player().Y, 350-48)
	}

	invalid := []struct {
		name string
		w, h float64
	}{
		{"zero width", 0, 300},
		{"huge width", 1e17, 300},
		{"huge height", 800, 1e9},
		{"below ground offset", 800, 40},
		{"at ground offset", 800, 50},
	}
	for _, tt := range invalid {
		s.Resize(tt.w, tt.h)
		if w := s.World(); w.Width != 1200 || w.Height != 400 {
			t.Errorf("%s: viewport changed to %vx%v", tt.name, w.Width, w.Height)
		}
	}
	if n := len(s.tiles); n > 100 {
		t.Errorf("tile pool grew to %d", n)
	}
}

func TestNewRejectsBadViewportOverride(t *testing.T) {
	s := New(config.DefaultDinoConfig(), Options{Seed: 1, Width: 1e17, Height: 20})
	if w := s.World(); w.Width != 800 || w.Height != 300 || w.GroundY != 250 {
		t.Errorf("viewport = %vx%v ground %v, want configured 800x300 ground 250", w.Width, w.Height, w.GroundY)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := running(t, nil)
	s.ground = append(s.ground, GroundObstacle{X: 700, Y: 210, Width: 20, Height: 40})
	snap := s.Snapshot()

	snap.Ground[0].X = -1000
	snap.Tiles[0].X = -1000
	if s.ground[0].X == -1000 || s.tiles[0].X == -1000 {
		t.Error("mutating a snapshot changed the simulation")
	}

	s.Update()
	if snap.Ground[0].X != -1000 || snap.FrameCount != 0 {
		t.Error("updating the simulation changed an earlier snapshot")
	}
	if snap.Player.Width != 44 || snap.Player.Height != 48 {
		t.Errorf("player view size = %vx%v", snap.Player.Width, snap.Player.Height)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := running(t, nil)
		for i := 0; i < 3000; i++ {
			if i%48 == 0 {
				s.SpawnTick()
			}
			if i%25 == 0 {
				s.Apply(IntentJump)
			}
			s.Update()
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a.Score != b.Score || a.FrameCount != b.FrameCount || a.Phase != b.Phase {
		t.Errorf("same seed diverged: %d/%d/%v vs %d/%d/%v",
			a.Score, a.FrameCount, a.Phase, b.Score, b.FrameCount, b.Phase)
	}
	if len(a.Ground) != len(b.Ground) || len(a.Flying) != len(b.Flying) {
		t.Error("same seed produced different obstacles")
	}
}
