package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the accepted presets in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset parses a preset name case-insensitively. An empty name is normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset adjusts enemy counts and the spawn safe distance for a preset.
// Normal leaves the configuration untouched.
func ApplyPreset(cfg *ShooterConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Spawn.BaseEnemies = 3
		cfg.Spawn.EnemiesPerLevel = 1
		cfg.Spawn.SafeDistance = 200
		cfg.Items.DropChance = 0.45
	case DifficultyHard:
		cfg.Spawn.BaseEnemies = 7
		cfg.Spawn.EnemiesPerLevel = 3
		cfg.Spawn.SafeDistance = 120
		cfg.Items.DropChance = 0.2
	}
}
