package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/dino.yaml
var defaultDinoYAML []byte

// DefaultDinoConfig returns the default Dino Runner configuration.
// It mirrors defaults/dino.yaml and is used when the embedded file
// cannot be parsed.
func DefaultDinoConfig() DinoConfig {
	return DinoConfig{
		Viewport: DinoViewport{
			Width:        800,
			Height:       300,
			GroundOffset: 50,
		},
		Physics: DinoPhysics{
			Gravity:       0.6,
			JumpImpulse:   -13,
			FastFallSpeed: 10,
		},
		Player: DinoPlayer{
			X:             80,
			Width:         44,
			Height:        48,
			DuckWidth:     58,
			DuckHeight:    28,
			HitboxInset:   5,
			RunFrameEvery: 6,
		},
		Obstacles: DinoObstacles{
			Shapes: []ObstacleShape{
				{Width: 20, Height: 40}, // Small
				{Width: 25, Height: 50}, // Medium
				{Width: 35, Height: 55}, // Large
				{Width: 50, Height: 45}, // Double
			},
			MaxActive:  3,
			MinSpacing: 200,
		},
		Flying: DinoFlying{
			Width:          46,
			Height:         32,
			ExtraSpeed:     2,
			Altitudes:      []float64{80, 50, 120},
			UnlockScore:    200,
			WingFrameEvery: 8,
		},
		Spawn: DinoSpawn{
			Interval:     800 * time.Millisecond,
			FlyingChance: 0.25,
			GroundChance: 0.6,
		},
		Scenery: DinoScenery{
			TileSpacing:     20,
			TileLongChance:  0.3,
			TileLongWidth:   15,
			TileShortWidth:  5,
			TileJitter:      20,
			TileOverscan:    100,
			Clouds:          4,
			CloudMinY:       20,
			CloudRangeY:     80,
			CloudMinWidth:   40,
			CloudRangeWidth: 40,
			CloudMinSpeed:   0.5,
			CloudRangeSpeed: 0.5,
			CloudJitter:     100,
		},
		Scoring: DinoScoring{
			PerFrame:         0.15,
			DayNightInterval: 700,
			MilestoneEvery:   100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialSpeed: 8,
			MaxSpeed:     20,
			Progression: ProgressionConfig{
				Every:     100,
				Increment: 0.5,
			},
		},
		Input: DinoInput{
			DuckHold: 180 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultDinoYAML
}
