package sim

import "github.com/vovakirdan/tui-dino/internal/core"

// GroundObstacle is a cactus standing on the ground line.
type GroundObstacle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Shape  int     `json:"shape"` // Index into the configured shape templates
}

// Box returns the collision box.
func (o GroundObstacle) Box() core.Box {
	return core.NewBox(o.X, o.Y, o.Width, o.Height)
}

// FlyingObstacle is a bird flying at a fixed altitude.
type FlyingObstacle struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	WingFrame int     `json:"wing_frame"` // 0 = wings up, 1 = wings down
}

// Box returns the collision box.
func (o FlyingObstacle) Box() core.Box {
	return core.NewBox(o.X, o.Y, o.Width, o.Height)
}

// scrollObstacles moves every obstacle left. Flying obstacles move
// faster by extra and flap every wingEvery frames.
func (s *Simulation) scrollObstacles() {
	speed := s.world.Speed
	for i := range s.ground {
		s.ground[i].X -= speed
	}

	flap := s.cfg.Flying.WingFrameEvery > 0 && s.world.FrameCount%uint64(s.cfg.Flying.WingFrameEvery) == 0
	for i := range s.flying {
		s.flying[i].X -= speed + s.cfg.Flying.ExtraSpeed
		if flap {
			s.flying[i].WingFrame = (s.flying[i].WingFrame + 1) % 2
		}
	}
}

// pruneObstacles removes obstacles that are fully past the left edge.
// The slices are compacted in place so their backing arrays are reused.
func (s *Simulation) pruneObstacles() {
	ground := s.ground[:0]
	for _, o := range s.ground {
		if o.X+o.Width > 0 {
			ground = append(ground, o)
		}
	}
	s.ground = ground

	flying := s.flying[:0]
	for _, o := range s.flying {
		if o.X+o.Width > 0 {
			flying = append(flying, o)
		}
	}
	s.flying = flying
}

// collides reports whether the player's hitbox overlaps any obstacle.
func (s *Simulation) collides() bool {
	hit := s.player.Hitbox(s.cfg.Player)
	for _, o := range s.ground {
		if hit.Intersects(o.Box()) {
			return true
		}
	}
	for _, o := range s.flying {
		if hit.Intersects(o.Box()) {
			return true
		}
	}
	return false
}
