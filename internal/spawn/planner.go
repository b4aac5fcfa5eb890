// Package spawn places the player and the enemies of a level.
//
// Synthesized enemies are drawn by rejection sampling: candidates closer to
// the player than the safe distance are rejected until the attempt budget
// runs out, after which the last candidate is accepted. Authored spawn
// points that are too close are relocated around their original position.
// Neither path checks walls.
package spawn

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/agent"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/tilemap"
)

// Terrain is the map geometry the planner reads. *tilemap.Map implements it.
type Terrain interface {
	Bounds() core.Box
	FindObjectsByType(tag string) []tilemap.Object
}

// Spawn is one resolved enemy placement.
type Spawn struct {
	Pos  core.Vec
	Type agent.EnemyType
	// Authored is set for placements that came from map markers.
	Authored bool
	// Compromised marks a placement left inside the safe distance after the
	// retry budget ran out.
	Compromised bool
}

// Planner resolves spawn placements.
type Planner struct {
	cfg          config.SpawnConfig
	defaultSpawn core.Vec
	logger       *log.Logger
}

// NewPlanner creates a planner from the spawn tunables. defaultSpawn is used
// when a map has no playerSpawn marker.
func NewPlanner(cfg config.SpawnConfig, defaultSpawn core.Vec, logger *log.Logger) *Planner {
	if logger == nil {
		logger = log.Default()
	}
	return &Planner{cfg: cfg, defaultSpawn: defaultSpawn, logger: logger}
}

// PlacePlayer returns the first playerSpawn marker, or the default position.
func (p *Planner) PlacePlayer(m Terrain) core.Vec {
	if spawns := m.FindObjectsByType(tilemap.ObjectPlayerSpawn); len(spawns) > 0 {
		return spawns[0].Pos()
	}
	return p.defaultSpawn
}

// EnemyCount is the number of enemies synthesized for a level without
// authored spawns.
func (p *Planner) EnemyCount(level int) int {
	return p.cfg.BaseEnemies + p.cfg.EnemiesPerLevel*level
}

// PlaceEnemies resolves the enemies of a level. Authored enemySpawn markers
// win when present; otherwise EnemyCount(level) basic enemies are sampled
// inside the map. The result always has exactly one entry per request.
func (p *Planner) PlaceEnemies(m Terrain, player core.Vec, level int, rng core.Rand) []Spawn {
	if markers := m.FindObjectsByType(tilemap.ObjectEnemySpawn); len(markers) > 0 {
		return p.placeAuthored(markers, player, rng)
	}
	return p.placeRandom(p.SpawnArea(m.Bounds()), player, p.EnemyCount(level), rng)
}

// SpawnArea is the region synthesized enemies are drawn from: the map bounds
// inset by the margin, never more than a quarter of the shorter side.
func (p *Planner) SpawnArea(bounds core.Box) core.Box {
	margin := math.Min(p.cfg.Margin, math.Min(bounds.W, bounds.H)/4)
	if margin < 0 {
		margin = 0
	}
	return bounds.Inset(margin)
}

func (p *Planner) placeRandom(area core.Box, player core.Vec, n int, rng core.Rand) []Spawn {
	out := make([]Spawn, 0, n)
	compromised := 0
	for i := 0; i < n; i++ {
		pos, ok := p.sample(area, player, rng)
		if !ok {
			compromised++
		}
		out = append(out, Spawn{Pos: pos, Type: agent.EnemyBasic, Compromised: !ok})
	}
	if compromised > 0 {
		p.logger.Warn("spawn attempts exhausted, using last candidates", "count", compromised, "of", n)
	}
	return out
}

// sample draws up to MaxAttempts candidates and returns the first one at a
// safe distance, or the last one drawn with ok=false.
func (p *Planner) sample(area core.Box, player core.Vec, rng core.Rand) (core.Vec, bool) {
	attempts := core.Max(p.cfg.MaxAttempts, 1)
	var c core.Vec
	for i := 0; i < attempts; i++ {
		c = core.V(area.X+rng.Float64()*area.W, area.Y+rng.Float64()*area.H)
		if c.Dist(player) >= p.cfg.SafeDistance {
			return c, true
		}
	}
	return c, false
}

func (p *Planner) placeAuthored(markers []tilemap.Object, player core.Vec, rng core.Rand) []Spawn {
	out := make([]Spawn, 0, len(markers))
	for _, o := range markers {
		name, _ := o.Property("type")
		typ, ok := agent.ParseEnemyType(name)
		if !ok && name != "" {
			p.logger.Warn("unknown enemy type on spawn marker", "marker", o.Name, "type", name)
		}

		s := Spawn{Pos: o.Pos(), Type: typ, Authored: true}
		if s.Pos.Dist(player) < p.cfg.SafeDistance {
			if pos, ok := p.relocate(s.Pos, player, rng); ok {
				p.logger.Debug("relocated spawn away from player", "marker", o.Name, "from", s.Pos, "to", pos)
				s.Pos = pos
			} else {
				p.logger.Warn("could not relocate spawn, keeping original", "marker", o.Name, "pos", s.Pos)
				s.Compromised = true
			}
		}
		out = append(out, s)
	}
	return out
}

// relocate tries RelocateAttempts points at a random angle and a distance in
// [SafeDistance, RelocateMaxDistance) from origin.
func (p *Planner) relocate(origin, player core.Vec, rng core.Rand) (core.Vec, bool) {
	span := math.Max(0, p.cfg.RelocateMaxDistance-p.cfg.SafeDistance)
	for i := 0; i < p.cfg.RelocateAttempts; i++ {
		angle := rng.Float64() * 2 * math.Pi
		dist := p.cfg.SafeDistance + rng.Float64()*span
		c := origin.Add(core.Polar(angle, dist))
		if c.Dist(player) >= p.cfg.SafeDistance {
			return c, true
		}
	}
	return origin, false
}
