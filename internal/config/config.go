// Package config provides YAML-based configuration for the shooter: world
// and player tuning, the enemy stat table, the drop economy, timer delays
// and difficulty presets.
package config

import "time"

// ShooterConfig contains all tunables of the simulation.
type ShooterConfig struct {
	World    WorldConfig            `yaml:"world"`
	Player   PlayerConfig           `yaml:"player"`
	Spawn    SpawnConfig            `yaml:"spawn"`
	Enemies  map[string]EnemyConfig `yaml:"enemies"`
	Items    ItemsConfig            `yaml:"items"`
	Timing   TimingConfig           `yaml:"timing"`
	Campaign CampaignConfig         `yaml:"campaign"`
}

// WorldConfig sizes the procedurally generated fallback map.
type WorldConfig struct {
	FallbackWidth  int `yaml:"fallback_width"`  // tiles
	FallbackHeight int `yaml:"fallback_height"` // tiles
	TileSize       int `yaml:"tile_size"`       // world units per tile
}

// PlayerConfig tunes the player and its bullets.
type PlayerConfig struct {
	Speed            float64 `yaml:"speed"`
	Size             float64 `yaml:"size"`
	FireRateMs       int     `yaml:"fire_rate_ms"`
	BulletSpeed      float64 `yaml:"bullet_speed"`
	BulletLifetimeMs int     `yaml:"bullet_lifetime_ms"`
	BulletOffset     float64 `yaml:"bullet_offset"`
	BulletSize       float64 `yaml:"bullet_size"`
	BulletDamage     int     `yaml:"bullet_damage"`
	MaxBullets       int     `yaml:"max_bullets"`
	DefaultSpawn     Point   `yaml:"default_spawn"`
}

// Point is a world position as written in YAML.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SpawnConfig tunes enemy placement.
type SpawnConfig struct {
	SafeDistance        float64 `yaml:"safe_distance"`
	MaxAttempts         int     `yaml:"max_attempts"`
	RelocateAttempts    int     `yaml:"relocate_attempts"`
	RelocateMaxDistance float64 `yaml:"relocate_max_distance"`
	BaseEnemies         int     `yaml:"base_enemies"`
	EnemiesPerLevel     int     `yaml:"enemies_per_level"`
	Margin              float64 `yaml:"margin"`
}

// EnemyConfig is one row of the enemy stat table.
type EnemyConfig struct {
	Health        int     `yaml:"health"`
	Speed         float64 `yaml:"speed"`
	ContactDamage int     `yaml:"damage"`
	ScoreValue    int     `yaml:"score"`
	Scale         float64 `yaml:"scale"`
}

// ItemsConfig tunes the drop economy.
type ItemsConfig struct {
	Size       float64        `yaml:"size"`
	DropChance float64        `yaml:"drop_chance"`
	Values     map[string]int `yaml:"values"`
}

// TimingConfig holds the cooperative timer delays in milliseconds.
type TimingConfig struct {
	LevelCompleteMs int `yaml:"level_complete_ms"`
	DeathDelayMs    int `yaml:"death_delay_ms"`
	GameOverMs      int `yaml:"game_over_ms"`
	HitFlashMs      int `yaml:"hit_flash_ms"`
}

// CampaignConfig lists the authored maps, one per level. Levels past the
// end of the list reuse the last map.
type CampaignConfig struct {
	MaxLevel int      `yaml:"max_level"`
	Tileset  string   `yaml:"tileset"`
	Maps     []string `yaml:"maps"`
}

// MapFor returns the authored map id for a 1-based level, or "" when the
// campaign has no maps.
func (c CampaignConfig) MapFor(level int) string {
	if len(c.Maps) == 0 {
		return ""
	}
	i := level - 1
	if i < 0 {
		i = 0
	}
	if i >= len(c.Maps) {
		i = len(c.Maps) - 1
	}
	return c.Maps[i]
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

func (p PlayerConfig) FireRate() time.Duration       { return ms(p.FireRateMs) }
func (p PlayerConfig) BulletLifetime() time.Duration { return ms(p.BulletLifetimeMs) }

func (t TimingConfig) LevelComplete() time.Duration { return ms(t.LevelCompleteMs) }
func (t TimingConfig) DeathDelay() time.Duration    { return ms(t.DeathDelayMs) }
func (t TimingConfig) GameOver() time.Duration      { return ms(t.GameOverMs) }
func (t TimingConfig) HitFlash() time.Duration      { return ms(t.HitFlashMs) }
