// Package config provides YAML-based configuration loading and difficulty
// presets for the tetris game.
package config

import "fmt"

// TetrisConfig contains all tunable parameters of the game.
type TetrisConfig struct {
	Gravity    GravityConfig    `yaml:"gravity"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GravityConfig defines the automatic fall timing, in seconds per row.
type GravityConfig struct {
	InitialDelay  float64 `yaml:"initial_delay"`   // Delay at level 1
	LevelStep     float64 `yaml:"level_step"`      // Subtracted per level above 1
	MinDelay      float64 `yaml:"min_delay"`       // Floor for the level-based delay
	SoftDropDelay float64 `yaml:"soft_drop_delay"` // Delay while soft drop is held
}

// DifficultyConfig records which preset produced the gravity values.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// Validate reports the first inconsistent value in the config.
func (c TetrisConfig) Validate() error {
	g := c.Gravity
	switch {
	case g.InitialDelay <= 0:
		return fmt.Errorf("config: gravity.initial_delay must be positive, got %v", g.InitialDelay)
	case g.MinDelay <= 0:
		return fmt.Errorf("config: gravity.min_delay must be positive, got %v", g.MinDelay)
	case g.SoftDropDelay <= 0:
		return fmt.Errorf("config: gravity.soft_drop_delay must be positive, got %v", g.SoftDropDelay)
	case g.LevelStep < 0:
		return fmt.Errorf("config: gravity.level_step must not be negative, got %v", g.LevelStep)
	case g.MinDelay > g.InitialDelay:
		return fmt.Errorf("config: gravity.min_delay %v exceeds initial_delay %v", g.MinDelay, g.InitialDelay)
	}
	if c.Difficulty.Preset != "" {
		if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
			return err
		}
	}
	return nil
}
