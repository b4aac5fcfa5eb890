// Package level runs a level: it builds the map, places entities, drives
// the per-tick update and moves between playing, paused, level complete,
// game over and victory.
package level

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/agent"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/dispatch"
	"github.com/vovakirdan/tui-shooter/internal/events"
	"github.com/vovakirdan/tui-shooter/internal/physics"
	"github.com/vovakirdan/tui-shooter/internal/progression"
	"github.com/vovakirdan/tui-shooter/internal/schedule"
	"github.com/vovakirdan/tui-shooter/internal/spawn"
	"github.com/vovakirdan/tui-shooter/internal/tilemap"
)

// Options wires an orchestrator to its collaborators.
type Options struct {
	Config  config.ShooterConfig
	Maps    tilemap.Authored // nil plays generated maps only
	Engine  physics.Engine
	Store   progression.HighScoreStore
	Bus     *events.Bus
	Effects dispatch.Effects
	Rand    core.Rand
	Logger  *log.Logger
}

// Orchestrator owns one session's progression state, entity table and
// timers. It is driven by Update from a single goroutine.
type Orchestrator struct {
	cfg    config.ShooterConfig
	logger *log.Logger
	rng    core.Rand
	engine physics.Engine
	bus    *events.Bus

	state      *progression.State
	sched      *schedule.Scheduler
	table      *agent.Table
	provider   *tilemap.Provider
	planner    *spawn.Planner
	dispatcher *dispatch.Dispatcher

	stats          agent.StatTable
	values         agent.ItemValues
	tuning         agent.PlayerTuning
	bulletLifetime time.Duration

	phase Phase
	world *tilemap.Map
}

// New creates an orchestrator in the menu phase. Call Start to play.
func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	bus := opts.Bus
	if bus == nil {
		bus = events.NewBus()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	cfg := opts.Config
	spawnAt := core.V(cfg.Player.DefaultSpawn.X, cfg.Player.DefaultSpawn.Y)

	o := &Orchestrator{
		cfg:    cfg,
		logger: logger,
		rng:    rng,
		engine: opts.Engine,
		bus:    bus,
		state:  progression.New(opts.Store, logger),
		sched:  schedule.New(),
		table:  agent.NewTable(),
		provider: &tilemap.Provider{
			Maps:           opts.Maps,
			Tileset:        cfg.Campaign.Tileset,
			FallbackWidth:  cfg.World.FallbackWidth,
			FallbackHeight: cfg.World.FallbackHeight,
			TileSize:       cfg.World.TileSize,
			Logger:         logger,
		},
		planner:        spawn.NewPlanner(cfg.Spawn, spawnAt, logger),
		stats:          agent.StatTableFrom(cfg.Enemies),
		values:         agent.ItemValuesFrom(cfg.Items.Values),
		tuning:         agent.PlayerTuningFrom(cfg.Player),
		bulletLifetime: cfg.Player.BulletLifetime(),
		phase:          PhaseMenu,
	}
	o.dispatcher = &dispatch.Dispatcher{
		Table:   o.table,
		State:   o.state,
		Bus:     bus,
		Host:    host{o},
		Effects: opts.Effects,
		Drops:   agent.DropTable{Chance: cfg.Items.DropChance},
		Rand:    rng,
		Damage:  cfg.Player.BulletDamage,
		Logger:  logger,
	}
	return o
}

func (o *Orchestrator) Phase() Phase                     { return o.phase }
func (o *Orchestrator) State() *progression.State        { return o.state }
func (o *Orchestrator) Table() *agent.Table              { return o.table }
func (o *Orchestrator) Map() *tilemap.Map                { return o.world }
func (o *Orchestrator) Bus() *events.Bus                 { return o.bus }
func (o *Orchestrator) Now() time.Duration               { return o.sched.Now() }
func (o *Orchestrator) PendingTimers() int               { return o.sched.Len() }
func (o *Orchestrator) Config() config.ShooterConfig     { return o.cfg }
func (o *Orchestrator) Dispatcher() *dispatch.Dispatcher { return o.dispatcher }

// Start begins a fresh game at level 1.
func (o *Orchestrator) Start() {
	o.Restart(RestartFresh)
}

// Restart reloads the current level. Pending timers never survive a
// restart. A fresh restart resets all progress; a level transition keeps
// score, level and weapon tier.
func (o *Orchestrator) Restart(mode RestartMode) {
	o.sched.Reset()
	switch mode {
	case RestartLevelTransition:
		o.state.ResetForLevelTransition()
	default:
		o.state.Reset()
	}
	o.logger.Info("starting level", "level", o.state.Level(), "mode", mode, "score", o.state.Score())
	o.load()
}

// ReturnToMenu tears the level down and enters the menu phase.
func (o *Orchestrator) ReturnToMenu() {
	o.sched.Reset()
	o.table.Clear()
	o.engine.Reset(core.Box{})
	o.state.SetPaused(false)
	o.world = nil
	o.setPhase(PhaseMenu)
}

// TogglePause switches between playing and paused. Other phases ignore it.
func (o *Orchestrator) TogglePause() {
	switch o.phase {
	case PhasePlaying:
		o.state.SetPaused(true)
		o.setPhase(PhasePaused)
	case PhasePaused:
		o.state.SetPaused(false)
		o.setPhase(PhasePlaying)
	}
}

func (o *Orchestrator) load() {
	o.setPhase(PhaseLoading)
	o.table.Clear()

	level := o.state.Level()
	o.world = o.provider.Provide(o.cfg.Campaign.MapFor(level), o.rng)
	o.engine.Reset(o.world.Bounds())
	walls := o.world.RegisterColliders(wallRegistrar{o})

	start := o.planner.PlacePlayer(o.world)
	player := o.table.AddPlayer(start, o.cfg.Player.Size)
	o.engine.AddBody(player.ID(), agent.KindPlayer, start, player.Size())

	spawns := o.planner.PlaceEnemies(o.world, start, level, o.rng)
	for _, s := range spawns {
		// Enemy bodies are sized relative to the player, then scaled per type.
		e := o.table.AddEnemy(s.Type, o.stats.Lookup(s.Type), s.Pos, o.cfg.Player.Size)
		o.engine.AddBody(e.ID(), agent.KindEnemy, s.Pos, e.Size())
		e.SetTarget(player.ID())
	}
	o.state.SetTotalEnemies(len(spawns))

	o.logger.Debug("level loaded",
		"level", level,
		"map", o.world.ID,
		"source", o.world.Source,
		"walls", walls,
		"enemies", len(spawns),
	)
	o.setPhase(PhasePlaying)
}

// Update runs one tick of delta simulated time. While paused nothing but
// the pause toggle and the way back to the menu is processed.
func (o *Orchestrator) Update(delta time.Duration, in core.InputFrame) {
	switch o.phase {
	case PhaseMenu:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
			o.Start()
		}
		return
	case PhaseVictory:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionBack) {
			o.ReturnToMenu()
		}
		return
	case PhaseLoading:
		return
	}

	if in.Has(core.ActionBack) {
		o.ReturnToMenu()
		return
	}
	if in.Has(core.ActionRestart) {
		o.Start()
		return
	}
	if in.Has(core.ActionPause) {
		o.TogglePause()
	}
	if o.phase == PhasePaused {
		return
	}

	o.sched.Advance(delta)
	if o.phase == PhaseMenu || o.phase == PhaseVictory {
		return
	}

	o.updatePlayer(in)
	o.updateEnemies()
	o.engine.Step(delta, o.dispatcher)
	o.sync()

	if o.phase == PhasePlaying && o.state.IsLevelComplete() && !o.state.GameOver() {
		o.completeLevel()
	}
}

func (o *Orchestrator) updatePlayer(in core.InputFrame) {
	p := o.table.Player()
	if p == nil {
		return
	}
	p.Steer(in.Direction(), o.tuning.Speed)
	o.engine.SetVelocity(p.ID(), p.Velocity())

	if !in.Has(core.ActionFire) {
		return
	}
	now := o.sched.Now()
	if !p.CanFire(now, o.tuning.FireRate) || o.table.ActiveBullets() >= o.tuning.MaxBullets {
		return
	}
	pos, vel := p.Muzzle(o.tuning.BulletOffset, o.tuning.BulletSpeed)
	b := o.table.AddBullet(pos, vel, o.tuning.BulletSize)
	o.engine.AddBody(b.ID(), agent.KindBullet, pos, b.Size())
	o.engine.SetVelocity(b.ID(), vel)
	p.MarkFired(now)

	h := b.ID()
	o.sched.After(o.bulletLifetime, func() { o.despawn(h) })
}

func (o *Orchestrator) updateEnemies() {
	for _, e := range o.table.Enemies() {
		e.Update(o.table, o.rng)
		o.engine.SetVelocity(e.ID(), e.Velocity())
	}
}

// sync copies engine positions back into the table.
func (o *Orchestrator) sync() {
	if p := o.table.Player(); p != nil {
		o.pull(p, true)
	}
	for _, e := range o.table.Enemies() {
		o.pull(e, true)
	}
	for _, b := range o.table.Bullets() {
		o.pull(b, false)
	}
}

func (o *Orchestrator) pull(b agent.Body, withVelocity bool) {
	if pos, ok := o.engine.Position(b.ID()); ok {
		b.SetPosition(pos)
	}
	if !withVelocity {
		return
	}
	if vel, ok := o.engine.Velocity(b.ID()); ok {
		b.SetVelocity(vel)
	}
}

func (o *Orchestrator) completeLevel() {
	level := o.state.Level()
	o.setPhase(PhaseLevelComplete)
	o.bus.Publish(events.LevelComplete{Level: level})
	o.sched.After(o.cfg.Timing.LevelComplete(), func() {
		if level < o.cfg.Campaign.MaxLevel {
			o.state.NextLevel()
			o.Restart(RestartLevelTransition)
			return
		}
		o.sched.Reset()
		o.setPhase(PhaseVictory)
		o.logger.Info("campaign complete", "score", o.state.Score(), "high_score", o.state.HighScore())
	})
}

func (o *Orchestrator) playerKilled() {
	p := o.table.Player()
	if p == nil || !p.Kill() {
		return
	}
	o.engine.SetVelocity(p.ID(), core.Vec{})
	o.sched.After(o.cfg.Timing.DeathDelay(), func() {
		o.bus.Publish(events.PlayerDied{})
		o.setPhase(PhaseGameOver)
		o.bus.Publish(events.GameOver{Score: o.state.Score(), HighScore: o.state.HighScore()})
		o.sched.After(o.cfg.Timing.GameOver(), o.ReturnToMenu)
	})
}

func (o *Orchestrator) despawn(h agent.Handle) {
	o.table.Remove(h)
	o.engine.Remove(h)
}

func (o *Orchestrator) setPhase(p Phase) {
	if o.phase == p {
		return
	}
	o.logger.Debug("phase", "from", o.phase, "to", p)
	o.phase = p
}

// host lets the dispatcher change the level without exporting those
// operations on Orchestrator.
type host struct{ o *Orchestrator }

func (h host) Despawn(id agent.Handle) { h.o.despawn(id) }
func (h host) PlayerKilled()           { h.o.playerKilled() }

func (h host) SpawnItem(typ agent.ItemType, pos core.Vec) {
	it := h.o.table.AddItem(typ, h.o.values[typ], pos, h.o.cfg.Items.Size)
	h.o.engine.AddBody(it.ID(), agent.KindItem, pos, it.Size())
}

type wallRegistrar struct{ o *Orchestrator }

func (w wallRegistrar) AddWall(box core.Box) {
	h := w.o.table.AddWall()
	w.o.engine.AddWall(h, box)
}
