package config

import (
	_ "embed"
)

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

// DefaultShooterConfig returns the hardcoded configuration. It mirrors
// defaults/shooter.yaml and is used when the embedded file cannot be parsed.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		World: WorldConfig{
			FallbackWidth:  25,
			FallbackHeight: 20,
			TileSize:       32,
		},
		Player: PlayerConfig{
			Speed:            200,
			Size:             32,
			FireRateMs:       200,
			BulletSpeed:      400,
			BulletLifetimeMs: 1500,
			BulletOffset:     20,
			BulletSize:       8,
			BulletDamage:     20,
			MaxBullets:       10,
			DefaultSpawn:     Point{X: 400, Y: 300},
		},
		Spawn: SpawnConfig{
			SafeDistance:        150,
			MaxAttempts:         50,
			RelocateAttempts:    20,
			RelocateMaxDistance: 200,
			BaseEnemies:         5,
			EnemiesPerLevel:     2,
			Margin:              100,
		},
		Enemies: map[string]EnemyConfig{
			"basic":  {Health: 40, Speed: 80, ContactDamage: 20, ScoreValue: 10, Scale: 1.0},
			"fast":   {Health: 20, Speed: 150, ContactDamage: 10, ScoreValue: 15, Scale: 0.8},
			"strong": {Health: 80, Speed: 60, ContactDamage: 30, ScoreValue: 25, Scale: 1.2},
			"boss":   {Health: 200, Speed: 40, ContactDamage: 50, ScoreValue: 100, Scale: 2.0},
		},
		Items: ItemsConfig{
			Size:       16,
			DropChance: 0.3,
			Values: map[string]int{
				"coin":   10,
				"health": 20,
				"ammo":   10,
				"weapon": 1,
			},
		},
		Timing: TimingConfig{
			LevelCompleteMs: 3000,
			DeathDelayMs:    1000,
			GameOverMs:      3000,
			HitFlashMs:      100,
		},
		Campaign: CampaignConfig{
			MaxLevel: 3,
			Tileset:  "tiles",
			Maps:     []string{"level1", "level2", "level3"},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultShooterYAML
}
