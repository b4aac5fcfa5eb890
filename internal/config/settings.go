package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Settings is the player's preference blob. The simulation never reads it;
// it is stored under its own key and only the difficulty feeds back into
// ApplyPreset when no flag overrides it.
type Settings struct {
	MusicVolume float64 `yaml:"music_volume"`
	SfxVolume   float64 `yaml:"sfx_volume"`
	Difficulty  string  `yaml:"difficulty"`
	Fullscreen  bool    `yaml:"fullscreen"`
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() Settings {
	return Settings{
		MusicVolume: 0.5,
		SfxVolume:   0.7,
		Difficulty:  string(DifficultyNormal),
	}
}

// DecodeSettings parses a stored blob. An empty blob yields the defaults.
func DecodeSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if len(data) == 0 {
		return s, nil
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("config: decode settings: %w", err)
	}
	return s, nil
}

// Encode serializes the settings for storage.
func (s Settings) Encode() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("config: encode settings: %w", err)
	}
	return data, nil
}

// Set assigns one setting by its YAML key from a string value.
func (s *Settings) Set(key, value string) error {
	var err error
	switch key {
	case "music_volume":
		err = yaml.Unmarshal([]byte(value), &s.MusicVolume)
	case "sfx_volume":
		err = yaml.Unmarshal([]byte(value), &s.SfxVolume)
	case "fullscreen":
		err = yaml.Unmarshal([]byte(value), &s.Fullscreen)
	case "difficulty":
		var p DifficultyPreset
		p, err = ParsePreset(value)
		s.Difficulty = string(p)
	default:
		return fmt.Errorf("config: unknown setting %q", key)
	}
	if err != nil {
		return fmt.Errorf("config: setting %s: %w", key, err)
	}
	return nil
}
