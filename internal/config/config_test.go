package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	def := DefaultShooterConfig()

	if cfg.World != def.World {
		t.Errorf("world = %+v, expected %+v", cfg.World, def.World)
	}
	if cfg.Player != def.Player {
		t.Errorf("player = %+v, expected %+v", cfg.Player, def.Player)
	}
	if cfg.Spawn != def.Spawn {
		t.Errorf("spawn = %+v, expected %+v", cfg.Spawn, def.Spawn)
	}
	if cfg.Timing != def.Timing {
		t.Errorf("timing = %+v, expected %+v", cfg.Timing, def.Timing)
	}
	for name, stats := range def.Enemies {
		if cfg.Enemies[name] != stats {
			t.Errorf("enemies[%s] = %+v, expected %+v", name, cfg.Enemies[name], stats)
		}
	}
	for name, v := range def.Items.Values {
		if cfg.Items.Values[name] != v {
			t.Errorf("items.values[%s] = %d, expected %d", name, cfg.Items.Values[name], v)
		}
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shooter.yaml")
	data := []byte("spawn:\n  base_enemies: 9\ntiming:\n  level_complete_ms: 500\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Spawn.BaseEnemies != 9 {
		t.Errorf("base_enemies = %d, expected 9", cfg.Spawn.BaseEnemies)
	}
	if cfg.Spawn.SafeDistance != 150 {
		t.Errorf("untouched safe_distance = %g, expected 150", cfg.Spawn.SafeDistance)
	}
	if cfg.Timing.LevelComplete() != 500*time.Millisecond {
		t.Errorf("level complete delay = %v", cfg.Timing.LevelComplete())
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("items:\n  drop_chance: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for drop_chance > 1")
	}
}

func TestMapFor(t *testing.T) {
	c := CampaignConfig{Maps: []string{"a", "b"}}
	tests := []struct {
		level int
		want  string
	}{
		{0, "a"}, {1, "a"}, {2, "b"}, {3, "b"},
	}
	for _, tc := range tests {
		if got := c.MapFor(tc.level); got != tc.want {
			t.Errorf("MapFor(%d) = %q, expected %q", tc.level, got, tc.want)
		}
	}
	if got := (CampaignConfig{}).MapFor(1); got != "" {
		t.Errorf("empty campaign MapFor = %q", got)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"Easy", DifficultyEasy, false},
		{" hard ", DifficultyHard, false},
		{"nightmare", "", true},
	}
	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, %v", tc.in, got, err)
		}
	}

	cfg := DefaultShooterConfig()
	ApplyPreset(&cfg, DifficultyNormal)
	if cfg.Spawn.BaseEnemies != 5 || cfg.Spawn.EnemiesPerLevel != 2 {
		t.Errorf("normal preset changed enemy counts: %+v", cfg.Spawn)
	}
	ApplyPreset(&cfg, DifficultyHard)
	if cfg.Spawn.BaseEnemies <= 5 {
		t.Errorf("hard preset should raise enemy count, got %d", cfg.Spawn.BaseEnemies)
	}
}

func TestSettingsRoundTripAndSet(t *testing.T) {
	s, err := DecodeSettings(nil)
	if err != nil {
		t.Fatal(err)
	}
	if s != DefaultSettings() {
		t.Errorf("empty blob = %+v, expected defaults", s)
	}

	if err := s.Set("difficulty", "HARD"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("music_volume", "0.25"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("volume", "1"); err == nil {
		t.Error("expected error for unknown key")
	}
	if err := s.Set("fullscreen", "maybe"); err == nil {
		t.Error("expected error for non-bool fullscreen")
	}

	blob, err := s.Encode()
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodeSettings(blob)
	if err != nil {
		t.Fatal(err)
	}
	if back.Difficulty != "hard" || back.MusicVolume != 0.25 || back.SfxVolume != 0.7 {
		t.Errorf("decoded = %+v", back)
	}
}
