package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory for configs, scores and logs.
const AppDir = ".dino"

// LoadDino loads Dino Runner configuration.
// Search order: customPath -> ~/.dino/configs/dino.yaml -> ./configs/dino.yaml -> embedded default.
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadDino(customPath string) (DinoConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DinoConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseDino(data)
		if err != nil {
			return DinoConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("dino.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseDino(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "dino.yaml")); err == nil {
		if cfg, err := ParseDino(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseDino(defaultDinoYAML)
	if err != nil {
		return DefaultDinoConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseDino decodes YAML over the hardcoded defaults and validates the result.
func ParseDino(data []byte) (DinoConfig, error) {
	cfg := DefaultDinoConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DinoConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return DinoConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// MarshalDino renders a config as YAML.
func MarshalDino(cfg DinoConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}

// ApplyDinoPreset modifies the speed curve based on a difficulty preset.
// Normal keeps the classic curve: 8 -> 20 in 0.5 steps every 100 points.
func ApplyDinoPreset(cfg *DinoConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialSpeed = 6
		cfg.Difficulty.MaxSpeed = 14
		cfg.Difficulty.Progression.Increment = 0.4
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialSpeed = 8
		cfg.Difficulty.MaxSpeed = 20
		cfg.Difficulty.Progression.Increment = 0.5
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialSpeed = 10
		cfg.Difficulty.MaxSpeed = 24
		cfg.Difficulty.Progression.Increment = 0.75
	}
}
