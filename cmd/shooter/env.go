package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/games/shooter"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/progression"
	"github.com/vovakirdan/tui-shooter/internal/storage"
	"github.com/vovakirdan/tui-shooter/internal/tilemap"
)

// env is what every command shares: the logger, the optional store and the
// resolved game options.
type env struct {
	logger  *log.Logger
	logFile *os.File
	store   *storage.Store
	opts    shooter.Options
}

// newLogger builds a logger writing to w at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "shooter",
		Level:           level,
	}), nil
}

// setup resolves flags into an env. Interactive commands own the terminal,
// so they log to --log-file or nowhere; the others log to stderr.
// A database that cannot be opened is reported and play continues without it.
func setup(interactive bool) (*env, error) {
	e := &env{}
	var w io.Writer = os.Stderr
	if interactive {
		w = io.Discard
		if flagLogFile != "" {
			f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, fmt.Errorf("open log file: %w", err)
			}
			e.logFile = f
			w = f
		}
	}
	logger, err := newLogger(w)
	if err != nil {
		e.close()
		return nil, err
	}
	e.logger = logger

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
	} else {
		e.store = store
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		e.close()
		return nil, err
	}
	preset, err := e.difficulty()
	if err != nil {
		e.close()
		return nil, err
	}
	config.ApplyPreset(&cfg, preset)
	logger.Debug("configuration loaded", "difficulty", preset, "maps", flagMaps)

	e.opts = shooter.Options{
		Config: cfg,
		Maps:   tilemap.DefaultLoader(flagMaps, logger),
		Store:  e.highScores(),
		Logger: logger,
	}
	shooter.Configure(e.opts)
	return e, nil
}

// difficulty picks the --difficulty flag, then the stored setting.
func (e *env) difficulty() (config.DifficultyPreset, error) {
	if flagDifficulty != "" {
		return config.ParsePreset(flagDifficulty)
	}
	settings := e.settings()
	preset, err := config.ParsePreset(settings.Difficulty)
	if err != nil {
		e.logger.Warn("ignoring stored difficulty", "error", err)
		return config.DifficultyNormal, nil
	}
	return preset, nil
}

func (e *env) settings() config.Settings {
	if e.store == nil {
		return config.DefaultSettings()
	}
	blob, err := e.store.LoadSettings()
	if err != nil {
		e.logger.Warn("could not load settings", "error", err)
		return config.DefaultSettings()
	}
	s, err := config.DecodeSettings(blob)
	if err != nil {
		e.logger.Warn("stored settings are unreadable", "error", err)
	}
	return s
}

func (e *env) highScore() int {
	if e.store == nil {
		return 0
	}
	hs, err := e.store.LoadHighScore()
	if err != nil {
		e.logger.Warn("could not load high score", "error", err)
	}
	return hs
}

// highScores returns the store as a progression.HighScoreStore, or nil.
func (e *env) highScores() progression.HighScoreStore {
	if e.store == nil {
		return nil
	}
	return e.store
}

// runStore returns the store as a tui.RunStore, or nil.
func (e *env) runStore() tui.RunStore {
	if e.store == nil {
		return nil
	}
	return e.store
}

// runSource returns the store as a tui.RunSource, or nil.
func (e *env) runSource() tui.RunSource {
	if e.store == nil {
		return nil
	}
	return e.store
}

func (e *env) close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil && e.logger != nil {
			e.logger.Warn("closing database", "error", err)
		}
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
