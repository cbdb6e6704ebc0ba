// Package config provides YAML-based game configuration loading and
// difficulty management for the runner.
package config

import (
	"errors"
	"fmt"
	"time"
)

// DinoConfig contains all configuration for the Dino Runner game.
// Distances are logical world units; the renderer scales them to cells.
type DinoConfig struct {
	Viewport   DinoViewport     `yaml:"viewport"`
	Physics    DinoPhysics      `yaml:"physics"`
	Player     DinoPlayer       `yaml:"player"`
	Obstacles  DinoObstacles    `yaml:"obstacles"`
	Flying     DinoFlying       `yaml:"flying"`
	Spawn      DinoSpawn        `yaml:"spawn"`
	Scenery    DinoScenery      `yaml:"scenery"`
	Scoring    DinoScoring      `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Input      DinoInput        `yaml:"input"`
}

// DinoViewport defines the logical playfield.
type DinoViewport struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"` // Distance from the bottom edge to the ground line
}

// MaxViewport bounds each side of the logical viewport.
const MaxViewport = 20000.0

// CheckSize reports whether a width x height viewport can be played:
// both sides positive and at most MaxViewport, with room below the top
// for the ground line.
func (v DinoViewport) CheckSize(width, height float64) error {
	if !(width > 0 && width <= MaxViewport) || !(height > 0 && height <= MaxViewport) {
		return fmt.Errorf("viewport %vx%v outside (0, %v]", width, height, MaxViewport)
	}
	if height <= v.GroundOffset {
		return fmt.Errorf("viewport height %v leaves no room above ground_offset %v", height, v.GroundOffset)
	}
	return nil
}

// GroundY returns the y of the ground line for a viewport height.
func (v DinoViewport) GroundY(height float64) float64 {
	return height - v.GroundOffset
}

// DinoPhysics defines physics parameters for Dino Runner.
type DinoPhysics struct {
	Gravity       float64 `yaml:"gravity"`
	JumpImpulse   float64 `yaml:"jump_impulse"`
	FastFallSpeed float64 `yaml:"fast_fall_speed"`
}

// DinoPlayer defines player parameters for Dino Runner.
type DinoPlayer struct {
	X             float64 `yaml:"x"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	DuckWidth     float64 `yaml:"duck_width"`
	DuckHeight    float64 `yaml:"duck_height"`
	HitboxInset   float64 `yaml:"hitbox_inset"`
	RunFrameEvery int     `yaml:"run_frame_every"`
}

// ObstacleShape is one ground obstacle template.
type ObstacleShape struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DinoObstacles defines ground obstacle parameters.
type DinoObstacles struct {
	Shapes     []ObstacleShape `yaml:"shapes"`
	MaxActive  int             `yaml:"max_active"`
	MinSpacing float64         `yaml:"min_spacing"` // Required gap between the spawn edge and the last ground obstacle
}

// DinoFlying defines flying obstacle parameters.
type DinoFlying struct {
	Width          float64   `yaml:"width"`
	Height         float64   `yaml:"height"`
	ExtraSpeed     float64   `yaml:"extra_speed"`
	Altitudes      []float64 `yaml:"altitudes"` // Obstacle top, measured upwards from the ground line
	UnlockScore    float64   `yaml:"unlock_score"`
	WingFrameEvery int       `yaml:"wing_frame_every"`
}

// DinoSpawn defines the spawner cadence and probability bands.
type DinoSpawn struct {
	Interval     time.Duration `yaml:"interval"`
	FlyingChance float64       `yaml:"flying_chance"` // Sample below this may spawn a flying obstacle
	GroundChance float64       `yaml:"ground_chance"` // Sample below this may spawn a ground obstacle
}

// DinoScenery defines the decorative ground tiles and clouds.
type DinoScenery struct {
	TileSpacing     float64 `yaml:"tile_spacing"`
	TileLongChance  float64 `yaml:"tile_long_chance"`
	TileLongWidth   float64 `yaml:"tile_long_width"`
	TileShortWidth  float64 `yaml:"tile_short_width"`
	TileJitter      float64 `yaml:"tile_jitter"`
	TileOverscan    float64 `yaml:"tile_overscan"`
	Clouds          int     `yaml:"clouds"`
	CloudMinY       float64 `yaml:"cloud_min_y"`
	CloudRangeY     float64 `yaml:"cloud_range_y"`
	CloudMinWidth   float64 `yaml:"cloud_min_width"`
	CloudRangeWidth float64 `yaml:"cloud_range_width"`
	CloudMinSpeed   float64 `yaml:"cloud_min_speed"`
	CloudRangeSpeed float64 `yaml:"cloud_range_speed"`
	CloudJitter     float64 `yaml:"cloud_jitter"`
}

// DinoScoring defines score accumulation and score-driven events.
type DinoScoring struct {
	PerFrame         float64 `yaml:"per_frame"`
	DayNightInterval int     `yaml:"day_night_interval"`
	MilestoneEvery   int     `yaml:"milestone_every"`
}

// DinoInput defines platform input tuning.
type DinoInput struct {
	// DuckHold is how long a duck key stays held after its last press.
	// Terminals report no key-up events, so releases are inferred.
	DuckHold time.Duration `yaml:"duck_hold"`
}

// DifficultyConfig defines the score-driven speed progression:
// speed = min(MaxSpeed, InitialSpeed + floor(score/Every) * Increment).
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialSpeed float64           `yaml:"initial_speed"`
	MaxSpeed     float64           `yaml:"max_speed"`
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines the size of each speed step.
type ProgressionConfig struct {
	Every     float64 `yaml:"every"`     // Score points per step
	Increment float64 `yaml:"increment"` // Speed added per step
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Empty or unknown
// strings yield "" which means "use the config as loaded".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks that the config can drive a simulation.
func (c DinoConfig) Validate() error {
	var errs []error

	if c.Viewport.GroundOffset < 0 {
		errs = append(errs, fmt.Errorf("viewport.ground_offset %v must not be negative", c.Viewport.GroundOffset))
	}
	if err := c.Viewport.CheckSize(c.Viewport.Width, c.Viewport.Height); err != nil {
		errs = append(errs, err)
	}
	if c.Physics.Gravity <= 0 {
		errs = append(errs, errors.New("physics.gravity must be positive"))
	}
	if c.Physics.JumpImpulse >= 0 {
		errs = append(errs, errors.New("physics.jump_impulse must be negative (upwards)"))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 || c.Player.DuckWidth <= 0 || c.Player.DuckHeight <= 0 {
		errs = append(errs, errors.New("player sizes must be positive"))
	}
	if c.Player.RunFrameEvery <= 0 {
		errs = append(errs, errors.New("player.run_frame_every must be positive"))
	}
	if len(c.Obstacles.Shapes) == 0 {
		errs = append(errs, errors.New("obstacles.shapes must not be empty"))
	}
	for i, s := range c.Obstacles.Shapes {
		if s.Width <= 0 || s.Height <= 0 {
			errs = append(errs, fmt.Errorf("obstacles.shapes[%d] must have positive size", i))
		}
	}
	if c.Obstacles.MaxActive <= 0 {
		errs = append(errs, errors.New("obstacles.max_active must be positive"))
	}
	if len(c.Flying.Altitudes) == 0 {
		errs = append(errs, errors.New("flying.altitudes must not be empty"))
	}
	if c.Flying.WingFrameEvery <= 0 {
		errs = append(errs, errors.New("flying.wing_frame_every must be positive"))
	}
	if c.Spawn.Interval <= 0 {
		errs = append(errs, errors.New("spawn.interval must be positive"))
	}
	if c.Spawn.FlyingChance < 0 || c.Spawn.GroundChance > 1 || c.Spawn.FlyingChance > c.Spawn.GroundChance {
		errs = append(errs, errors.New("spawn chances must satisfy 0 <= flying_chance <= ground_chance <= 1"))
	}
	if c.Scenery.TileSpacing <= 0 {
		errs = append(errs, errors.New("scenery.tile_spacing must be positive"))
	}
	if c.Scoring.DayNightInterval <= 0 || c.Scoring.MilestoneEvery <= 0 {
		errs = append(errs, errors.New("scoring intervals must be positive"))
	}
	if c.Difficulty.InitialSpeed <= 0 || c.Difficulty.MaxSpeed < c.Difficulty.InitialSpeed {
		errs = append(errs, errors.New("difficulty speeds must satisfy 0 < initial_speed <= max_speed"))
	}
	if c.Difficulty.Progression.Every <= 0 {
		errs = append(errs, errors.New("difficulty.progression.every must be positive"))
	}
	if c.Input.DuckHold <= 0 {
		errs = append(errs, errors.New("input.duck_hold must be positive"))
	}

	return errors.Join(errs...)
}
