package sim

// Snapshot is a read-only copy of everything a renderer needs to draw
// one frame. It shares no memory with the simulation.
type Snapshot struct {
	Phase      Phase            `json:"phase"`
	Width      float64          `json:"width"`
	Height     float64          `json:"height"`
	GroundY    float64          `json:"ground_y"`
	Speed      float64          `json:"speed"`
	Score      int              `json:"score"`
	HighScore  int              `json:"high_score"`
	NewRecord  bool             `json:"new_record"`
	FrameCount uint64           `json:"frame"`
	IsDaytime  bool             `json:"is_daytime"`
	Player     PlayerView       `json:"player"`
	Ground     []GroundObstacle `json:"ground"`
	Flying     []FlyingObstacle `json:"flying"`
	Tiles      []GroundTile     `json:"tiles"`
	Clouds     []Cloud          `json:"clouds"`
}

// PlayerView is the player as seen by a renderer, with the
// posture-dependent size already resolved.
type PlayerView struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Ducking  bool    `json:"ducking"`
	Airborne bool    `json:"airborne"`
	RunFrame int     `json:"run_frame"`
}

// Snapshot returns a deep copy of the current state.
func (s *Simulation) Snapshot() Snapshot {
	w, h := PostureSize(s.cfg.Player, s.player.Posture)
	return Snapshot{
		Phase:      s.world.Phase,
		Width:      s.world.Width,
		Height:     s.world.Height,
		GroundY:    s.world.GroundY,
		Speed:      s.world.Speed,
		Score:      s.world.DisplayScore(),
		HighScore:  s.world.HighScore,
		NewRecord:  s.world.NewRecord,
		FrameCount: s.world.FrameCount,
		IsDaytime:  s.world.IsDaytime,
		Player: PlayerView{
			X:        s.player.X,
			Y:        s.player.Y,
			Width:    w,
			Height:   h,
			Ducking:  s.player.Posture == PostureDucking,
			Airborne: s.player.Airborne,
			RunFrame: s.player.RunFrame,
		},
		Ground: append([]GroundObstacle(nil), s.ground...),
		Flying: append([]FlyingObstacle(nil), s.flying...),
		Tiles:  append([]GroundTile(nil), s.tiles...),
		Clouds: append([]Cloud(nil), s.clouds...),
	}
}
