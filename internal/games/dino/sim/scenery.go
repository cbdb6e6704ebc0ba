package sim

// GroundTile is a decorative dash under the ground line.
type GroundTile struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// Cloud is a decorative background cloud with its own drift speed.
type Cloud struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
	Speed float64 `json:"-"`
}

// seedScenery lays out the ground tiles across the viewport plus an
// overscan margin, and scatters the clouds.
func (s *Simulation) seedScenery() {
	sc := s.cfg.Scenery

	s.tiles = s.tiles[:0]
	for x := 0.0; x < s.world.Width+sc.TileOverscan; x += sc.TileSpacing {
		s.tiles = append(s.tiles, GroundTile{X: x, Width: s.tileWidth()})
	}

	s.clouds = s.clouds[:0]
	for i := 0; i < sc.Clouds; i++ {
		s.clouds = append(s.clouds, Cloud{
			X:     s.rng.Float64() * s.world.Width,
			Y:     s.cloudY(),
			Width: s.rng.Float64()*sc.CloudRangeWidth + sc.CloudMinWidth,
			Speed: sc.CloudMinSpeed + s.rng.Float64()*sc.CloudRangeSpeed,
		})
	}
}

func (s *Simulation) tileWidth() float64 {
	if s.rng.Float64() < s.cfg.Scenery.TileLongChance {
		return s.cfg.Scenery.TileLongWidth
	}
	return s.cfg.Scenery.TileShortWidth
}

func (s *Simulation) cloudY() float64 {
	return s.rng.Float64()*s.cfg.Scenery.CloudRangeY + s.cfg.Scenery.CloudMinY
}

// scrollScenery moves tiles with the world and clouds at their own speed.
func (s *Simulation) scrollScenery() {
	for i := range s.tiles {
		s.tiles[i].X -= s.world.Speed
	}
	for i := range s.clouds {
		s.clouds[i].X -= s.clouds[i].Speed
	}
}

// recycleScenery moves entities that left the screen back past the right
// edge. The pool never grows or shrinks.
func (s *Simulation) recycleScenery() {
	sc := s.cfg.Scenery
	for i := range s.tiles {
		t := &s.tiles[i]
		if t.X+t.Width < 0 {
			t.X = s.world.Width + s.rng.Float64()*sc.TileJitter
		}
	}
	for i := range s.clouds {
		c := &s.clouds[i]
		if c.X+c.Width < 0 {
			c.X = s.world.Width + s.rng.Float64()*sc.CloudJitter
			c.Y = s.cloudY()
		}
	}
}
