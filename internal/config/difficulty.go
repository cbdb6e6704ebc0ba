package config

import "math"

// DifficultyManager calculates the world speed from the score.
// Speed is a step function of score, not of elapsed time.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Every > 0 && d.cfg.Progression.Increment != 0
}

// InitialSpeed returns the speed of a fresh run.
func (d *DifficultyManager) InitialSpeed() float64 {
	return d.cfg.InitialSpeed
}

// MaxSpeed returns the speed ceiling.
func (d *DifficultyManager) MaxSpeed() float64 {
	return d.cfg.MaxSpeed
}

// Speed returns the scroll speed for a score:
// min(MaxSpeed, InitialSpeed + floor(score/Every) * Increment).
func (d *DifficultyManager) Speed(score float64) float64 {
	if !d.IsEnabled() || score <= 0 {
		return d.cfg.InitialSpeed
	}
	steps := math.Floor(score / d.cfg.Progression.Every)
	return math.Min(d.cfg.MaxSpeed, d.cfg.InitialSpeed+steps*d.cfg.Progression.Increment)
}

// Level returns how far the speed has progressed towards the ceiling,
// in [0, 1]. Used for the HUD.
func (d *DifficultyManager) Level(score float64) float64 {
	span := d.cfg.MaxSpeed - d.cfg.InitialSpeed
	if span <= 0 {
		return 0
	}
	return clampF((d.Speed(score)-d.cfg.InitialSpeed)/span, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
