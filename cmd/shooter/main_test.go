package main

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/games/shooter"
	"github.com/vovakirdan/tui-shooter/internal/tilemap"
)

func TestSimulateStopsAtBudget(t *testing.T) {
	logger := log.New(io.Discard)
	game := shooter.NewWithOptions(shooter.Options{
		Config:    config.DefaultShooterConfig(),
		Maps:      tilemap.DefaultLoader("", logger),
		Logger:    logger,
		Autopilot: true,
	})
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}

	sum := simulate(game, cfg, 300)
	if sum.Ticks < 1 || sum.Ticks > 300 {
		t.Fatalf("Ticks = %d, want 1..300", sum.Ticks)
	}
	if !sum.Finished && sum.Ticks != 300 {
		t.Errorf("unfinished run stopped after %d ticks", sum.Ticks)
	}
	if sum.Run.GameID != shooter.CampaignID {
		t.Errorf("GameID = %q", sum.Run.GameID)
	}
	if sum.Run.Level < 1 {
		t.Errorf("Level = %d", sum.Run.Level)
	}
	if sum.Elapsed != cfg.TickDuration()*time.Duration(sum.Ticks) {
		t.Errorf("Elapsed = %v for %d ticks", sum.Elapsed, sum.Ticks)
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"localhost:2222": "2222",
		"[::1]:22":       "22",
		"nohost":         "nohost",
	}
	for in, want := range tests {
		if got := portOf(in); got != want {
			t.Errorf("portOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	old := flagLogLevel
	defer func() { flagLogLevel = old }()

	flagLogLevel = "loud"
	if _, err := newLogger(io.Discard); err == nil {
		t.Error("newLogger accepted an unknown level")
	}
	flagLogLevel = "debug"
	logger, err := newLogger(io.Discard)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"list", "play", "menu", "sim", "scores", "settings", "serve"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
