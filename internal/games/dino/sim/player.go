package sim

import (
	"github.com/vovakirdan/tui-dino/internal/config"
	"github.com/vovakirdan/tui-dino/internal/core"
)

// Posture is the player's stance.
type Posture int

const (
	PostureStanding Posture = iota
	PostureDucking
)

// String returns the posture name.
func (p Posture) String() string {
	if p == PostureDucking {
		return "ducking"
	}
	return "standing"
}

// Player is the runner. X is fixed; Y is the top edge of the sprite.
type Player struct {
	X         float64
	Y         float64
	VelocityY float64
	Posture   Posture
	Airborne  bool
	RunFrame  int // 0 or 1
}

// PostureSize returns the sprite size for a posture.
func PostureSize(cfg config.DinoPlayer, p Posture) (w, h float64) {
	if p == PostureDucking {
		return cfg.DuckWidth, cfg.DuckHeight
	}
	return cfg.Width, cfg.Height
}

// GroundClamp returns the lowest allowed Y for a posture: the player's
// feet touch the ground line.
func GroundClamp(cfg config.DinoPlayer, p Posture, groundY float64) float64 {
	_, h := PostureSize(cfg, p)
	return groundY - h
}

// Bounds returns the visual sprite box.
func (p Player) Bounds(cfg config.DinoPlayer) core.Box {
	w, h := PostureSize(cfg, p.Posture)
	return core.NewBox(p.X, p.Y, w, h)
}

// Hitbox returns the collision box, inset from the sprite on all sides.
func (p Player) Hitbox(cfg config.DinoPlayer) core.Box {
	return p.Bounds(cfg).Inset(cfg.HitboxInset)
}

func newPlayer(cfg config.DinoPlayer, groundY float64) Player {
	return Player{
		X:       cfg.X,
		Y:       GroundClamp(cfg, PostureStanding, groundY),
		Posture: PostureStanding,
	}
}

// integrate advances the player by one frame. Gravity applies
// unconditionally; the ground line is a floor. Reports whether the
// player touched down this frame after being airborne.
func (p *Player) integrate(phys config.DinoPhysics, cfg config.DinoPlayer, groundY float64) (landed bool) {
	p.VelocityY += phys.Gravity
	p.Y += p.VelocityY

	floor := GroundClamp(cfg, p.Posture, groundY)
	if p.Y >= floor {
		landed = p.Airborne
		p.Y = floor
		p.VelocityY = 0
		p.Airborne = false
	}
	return landed
}

// animate flips the run frame every n frames while on the ground.
func (p *Player) animate(frame uint64, n int) {
	if p.Airborne || n <= 0 {
		return
	}
	if frame%uint64(n) == 0 {
		p.RunFrame = (p.RunFrame + 1) % 2
	}
}

// jump starts a jump. Ignored while airborne or ducking.
func (p *Player) jump(phys config.DinoPhysics) bool {
	if p.Airborne || p.Posture == PostureDucking {
		return false
	}
	p.VelocityY = phys.JumpImpulse
	p.Airborne = true
	return true
}

// duck switches to the ducking posture. In the air it also forces a fast fall.
func (p *Player) duck(phys config.DinoPhysics, cfg config.DinoPlayer, groundY float64) {
	p.Posture = PostureDucking
	if p.Airborne {
		p.VelocityY = phys.FastFallSpeed
		return
	}
	p.Y = GroundClamp(cfg, p.Posture, groundY)
}

// standUp clears the ducking posture. Velocity is left alone.
func (p *Player) standUp(cfg config.DinoPlayer, groundY float64) {
	p.Posture = PostureStanding
	floor := GroundClamp(cfg, p.Posture, groundY)
	if !p.Airborne || p.Y > floor {
		// A taller posture can push the sprite through the floor mid-fall.
		p.Y = floor
		if p.Airborne {
			p.VelocityY = 0
			p.Airborne = false
		}
	}
}
