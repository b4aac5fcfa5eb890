// Package shooter exposes the level orchestrator as an arcade game: it maps
// platform input onto the simulation, renders the world onto a character
// screen and summarizes finished runs for the scoreboard.
package shooter

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/events"
	"github.com/vovakirdan/tui-shooter/internal/level"
	"github.com/vovakirdan/tui-shooter/internal/physics"
	"github.com/vovakirdan/tui-shooter/internal/progression"
	"github.com/vovakirdan/tui-shooter/internal/registry"
	"github.com/vovakirdan/tui-shooter/internal/storage"
	"github.com/vovakirdan/tui-shooter/internal/tilemap"
)

const (
	CampaignID = "shooter"
	ArenaID    = "shooter_arena"
)

// Options are shared by every game the registry creates.
type Options struct {
	Config    config.ShooterConfig
	Maps      tilemap.Authored // nil plays generated maps only
	Store     progression.HighScoreStore
	Logger    *log.Logger
	Autopilot bool
}

var (
	optsMu   sync.RWMutex
	defaults = Options{Config: config.DefaultShooterConfig()}
)

// Configure sets the options used by games created afterwards.
func Configure(opts Options) {
	optsMu.Lock()
	defer optsMu.Unlock()
	defaults = opts
}

func currentOptions() Options {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return defaults
}

// Game runs one shooter session.
type Game struct {
	id    string
	title string
	arena bool

	opts    Options
	runtime core.RuntimeConfig
	orch    *level.Orchestrator
	fx      *effects
	sheet   *Sheet
	pilot   *Autopilot
	started bool
}

// New creates the campaign: authored maps for levels 1 to 3.
func New() *Game {
	return &Game{id: CampaignID, title: "Shooter", opts: currentOptions()}
}

// NewArena creates a game that always plays generated maps.
func NewArena() *Game {
	return &Game{id: ArenaID, title: "Shooter Arena", arena: true, opts: currentOptions()}
}

// NewWithOptions creates a campaign game with explicit options.
func NewWithOptions(opts Options) *Game {
	return &Game{id: CampaignID, title: "Shooter", opts: opts}
}

func (g *Game) ID() string    { return g.id }
func (g *Game) Title() string { return g.title }

// Description summarizes the mode for the game picker.
func (g *Game) Description() string {
	if g.arena {
		return "Generated rooms every level"
	}
	return "Three authored levels, boss at the end"
}

// Orchestrator returns the running orchestrator, or nil before Reset.
func (g *Game) Orchestrator() *level.Orchestrator { return g.orch }

// Reset builds a new session and starts level 1.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	logger := g.opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	maps := g.opts.Maps
	if g.arena {
		maps = nil
	}
	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g.sheet = NewSheet(nil, logger)
	g.fx = newEffects(g.sheet, g.opts.Config.Timing.HitFlash())
	g.orch = level.New(level.Options{
		Config:  g.opts.Config,
		Maps:    maps,
		Engine:  physics.NewSpace(logger),
		Store:   g.opts.Store,
		Bus:     events.NewBus(),
		Effects: g.fx,
		Rand:    rand.New(rand.NewSource(seed)),
		Logger:  logger.WithPrefix(g.id),
	})
	g.pilot = nil
	if g.opts.Autopilot {
		g.pilot = &Autopilot{}
	}
	g.orch.Bus().Subscribe(func(e events.Event) {
		if _, ok := e.(events.LevelComplete); ok {
			g.fx.Clear()
		}
	})
	g.orch.Start()
	g.started = true
}

// Step advances the session by one tick. With the autopilot enabled the
// player's input is merged with the pilot's.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if !g.started {
		g.Reset(g.runtime)
	}
	if g.pilot != nil {
		in = in.Merge(g.pilot.Input(g.orch))
	}
	dt := g.runtime.TickDuration()
	g.orch.Update(dt, in)
	if g.orch.Phase() != level.PhasePaused {
		g.fx.Advance(dt)
	}
	return core.StepResult{State: g.State()}
}

// State reports the platform view of the session. A run counts as over
// from game over until the player starts again from the menu.
func (g *Game) State() core.GameState {
	if g.orch == nil {
		return core.GameState{}
	}
	s := g.orch.State()
	phase := g.orch.Phase()
	return core.GameState{
		Score:    s.Score(),
		Level:    s.Level(),
		GameOver: s.GameOver() || phase.Terminal(),
		Victory:  phase == level.PhaseVictory,
		Paused:   phase == level.PhasePaused,
	}
}

// Run summarizes the current session for the scoreboard.
func (g *Game) Run() storage.RunRecord {
	if g.orch == nil {
		return storage.RunRecord{GameID: g.id}
	}
	snap := g.orch.State().Snapshot()
	outcome := storage.OutcomeAbandoned
	switch {
	case g.orch.Phase() == level.PhaseVictory:
		outcome = storage.OutcomeVictory
	case snap.GameOver:
		outcome = storage.OutcomeGameOver
	}
	return storage.RunRecord{
		GameID:          g.id,
		Score:           snap.Score,
		Level:           snap.Level,
		Outcome:         outcome,
		EnemiesDefeated: snap.Run.EnemiesDefeated,
		ItemsCollected:  snap.Run.ItemsCollected,
	}
}

func init() {
	registry.Register(CampaignID, func() registry.Game { return New() })
	registry.Register(ArenaID, func() registry.Game { return NewArena() })
}
