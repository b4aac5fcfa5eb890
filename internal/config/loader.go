package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the shooter configuration.
// Search order: customPath -> ~/.shooter/configs/shooter.yaml ->
// ./configs/shooter.yaml -> embedded default -> hardcoded default.
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names.
func Load(customPath string) (ShooterConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ShooterConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return ShooterConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("shooter.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "shooter.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	return Default(), nil
}

// Default returns the embedded default configuration, or the hardcoded one
// when the embedded file is unusable.
func Default() ShooterConfig {
	cfg, err := Parse(defaultShooterYAML)
	if err != nil {
		return DefaultShooterConfig()
	}
	return cfg
}

// Parse decodes YAML on top of the hardcoded defaults and validates the result.
func Parse(data []byte) (ShooterConfig, error) {
	cfg := DefaultShooterConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ShooterConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ShooterConfig{}, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c ShooterConfig) Validate() error {
	switch {
	case c.World.TileSize <= 0:
		return fmt.Errorf("config: world.tile_size must be positive, got %d", c.World.TileSize)
	case c.World.FallbackWidth < 3 || c.World.FallbackHeight < 3:
		return fmt.Errorf("config: fallback map must be at least 3x3 tiles, got %dx%d",
			c.World.FallbackWidth, c.World.FallbackHeight)
	case c.Items.DropChance < 0 || c.Items.DropChance > 1:
		return fmt.Errorf("config: items.drop_chance must be within [0, 1], got %g", c.Items.DropChance)
	case c.Spawn.MaxAttempts < 1:
		return fmt.Errorf("config: spawn.max_attempts must be at least 1, got %d", c.Spawn.MaxAttempts)
	case c.Campaign.MaxLevel < 1:
		return fmt.Errorf("config: campaign.max_level must be at least 1, got %d", c.Campaign.MaxLevel)
	case c.Player.MaxBullets < 1:
		return fmt.Errorf("config: player.max_bullets must be at least 1, got %d", c.Player.MaxBullets)
	}
	if _, ok := c.Enemies["basic"]; !ok {
		return fmt.Errorf("config: enemies table must define %q", "basic")
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shooter", "configs", filename)
}
