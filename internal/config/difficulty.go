package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialDelayForPreset returns the level 1 fall delay for a preset.
func InitialDelayForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.80
	case DifficultyHard:
		return 0.40
	default:
		return 0.60
	}
}

// IsFixedPreset returns true if the preset disables level speed-up.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyTetrisPreset modifies the gravity settings for a difficulty preset.
// The fixed preset keeps the configured initial delay and never speeds up.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
	if IsFixedPreset(preset) {
		cfg.Gravity.LevelStep = 0
		return
	}
	cfg.Gravity.InitialDelay = InitialDelayForPreset(preset)
	if cfg.Gravity.LevelStep == 0 {
		cfg.Gravity.LevelStep = DefaultTetrisConfig().Gravity.LevelStep
	}
	if cfg.Gravity.MinDelay > cfg.Gravity.InitialDelay {
		cfg.Gravity.MinDelay = cfg.Gravity.InitialDelay
	}
}
