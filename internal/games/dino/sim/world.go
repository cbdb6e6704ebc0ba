package sim

// Phase is the top-level game state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseGameOver
)

// String returns the phase name as used on the wire.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// World holds the run-wide state. It is reset in place on restart.
type World struct {
	Width      float64 // Logical viewport width
	Height     float64 // Logical viewport height
	GroundY    float64
	Speed      float64
	Score      float64
	HighScore  int
	FrameCount uint64
	IsDaytime  bool
	Phase      Phase
	NewRecord  bool // The finished run beat the previous high score

	dayCycle  int // Whole day/night intervals elapsed
	milestone int // Whole milestones reached
}

// DisplayScore returns the score as shown to the player.
func (w World) DisplayScore() int {
	return int(w.Score)
}

// Events reports what happened during one call into the simulation.
// Platforms use it for sound and logging; it never feeds back into play.
type Events struct {
	Started       bool
	Restarted     bool
	Jumped        bool
	Landed        bool
	GameOver      bool
	NewHighScore  bool
	Milestone     bool
	DayNightFlip  bool
	SpawnedGround bool
	SpawnedFlying bool
}

// Merge ORs another event set into this one.
func (e *Events) Merge(o Events) {
	e.Started = e.Started || o.Started
	e.Restarted = e.Restarted || o.Restarted
	e.Jumped = e.Jumped || o.Jumped
	e.Landed = e.Landed || o.Landed
	e.GameOver = e.GameOver || o.GameOver
	e.NewHighScore = e.NewHighScore || o.NewHighScore
	e.Milestone = e.Milestone || o.Milestone
	e.DayNightFlip = e.DayNightFlip || o.DayNightFlip
	e.SpawnedGround = e.SpawnedGround || o.SpawnedGround
	e.SpawnedFlying = e.SpawnedFlying || o.SpawnedFlying
}
