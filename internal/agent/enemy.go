package agent

import (
	"math"
	"strings"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
)

// EnemyType is the tag that selects an enemy's stats.
type EnemyType int

const (
	EnemyBasic EnemyType = iota
	EnemyFast
	EnemyStrong
	EnemyBoss
)

// String returns the name used in config files and map properties.
func (t EnemyType) String() string {
	switch t {
	case EnemyFast:
		return "fast"
	case EnemyStrong:
		return "strong"
	case EnemyBoss:
		return "boss"
	default:
		return "basic"
	}
}

// ParseEnemyType maps a name to a type. Unknown or empty names are basic;
// ok reports whether the name was recognised.
func ParseEnemyType(s string) (t EnemyType, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return EnemyBasic, true
	case "fast":
		return EnemyFast, true
	case "strong":
		return EnemyStrong, true
	case "boss":
		return EnemyBoss, true
	default:
		return EnemyBasic, false
	}
}

// EnemyStats is one row of the stat table.
type EnemyStats struct {
	Health        int
	Speed         float64
	ContactDamage int
	ScoreValue    int
	Scale         float64
}

// StatTable maps enemy types to stats.
type StatTable map[EnemyType]EnemyStats

// DefaultStats returns the built-in stat table.
func DefaultStats() StatTable {
	return StatTable{
		EnemyBasic:  {Health: 40, Speed: 80, ContactDamage: 20, ScoreValue: 10, Scale: 1.0},
		EnemyFast:   {Health: 20, Speed: 150, ContactDamage: 10, ScoreValue: 15, Scale: 0.8},
		EnemyStrong: {Health: 80, Speed: 60, ContactDamage: 30, ScoreValue: 25, Scale: 1.2},
		EnemyBoss:   {Health: 200, Speed: 40, ContactDamage: 50, ScoreValue: 100, Scale: 2.0},
	}
}

// StatTableFrom builds a stat table from config rows on top of the defaults.
// Rows with unknown names are ignored.
func StatTableFrom(rows map[string]config.EnemyConfig) StatTable {
	table := DefaultStats()
	for name, row := range rows {
		t, ok := ParseEnemyType(name)
		if !ok {
			continue
		}
		table[t] = EnemyStats{
			Health:        row.Health,
			Speed:         row.Speed,
			ContactDamage: row.ContactDamage,
			ScoreValue:    row.ScoreValue,
			Scale:         row.Scale,
		}
	}
	return table
}

// Lookup returns the stats of t, falling back to basic.
func (st StatTable) Lookup(t EnemyType) EnemyStats {
	if s, ok := st[t]; ok {
		return s
	}
	return st[EnemyBasic]
}

// EnemyState is the behavior state of an enemy.
type EnemyState int

const (
	Wandering EnemyState = iota
	Pursuing
	Dead
)

func (s EnemyState) String() string {
	switch s {
	case Pursuing:
		return "pursuing"
	case Dead:
		return "dead"
	default:
		return "wandering"
	}
}

// TargetResolver looks up the current position of a handle.
type TargetResolver interface {
	Position(h Handle) (core.Vec, bool)
}

// wanderRerollChance is the per-tick chance a wandering enemy picks a new heading.
const wanderRerollChance = 0.01

// Enemy is a hostile agent. It wanders until given a target, then pursues
// it until killed.
type Enemy struct {
	body

	Type       EnemyType
	Stats      EnemyStats
	Health     int
	FacingLeft bool

	target Handle
	state  EnemyState
}

func newEnemy(h Handle, typ EnemyType, stats EnemyStats, pos core.Vec, size float64) *Enemy {
	return &Enemy{
		body:   body{handle: h, kind: KindEnemy, pos: pos, size: core.V(size, size)},
		Type:   typ,
		Stats:  stats,
		Health: stats.Health,
		state:  Wandering,
	}
}

// State returns the behavior state.
func (e *Enemy) State() EnemyState { return e.state }

// Alive reports whether the enemy has health left.
func (e *Enemy) Alive() bool { return e.state != Dead }

// Target returns the pursued handle, or NoHandle.
func (e *Enemy) Target() Handle { return e.target }

// SetTarget starts pursuing h. Dead enemies ignore it.
func (e *Enemy) SetTarget(h Handle) {
	if e.state == Dead || h == NoHandle {
		return
	}
	e.target = h
	e.state = Pursuing
}

// Update chooses this tick's velocity.
func (e *Enemy) Update(r TargetResolver, rng core.Rand) {
	switch e.state {
	case Dead:
		e.vel = core.Vec{}
	case Pursuing:
		e.pursue(r)
	default:
		e.wander(rng)
	}
}

func (e *Enemy) pursue(r TargetResolver) {
	target, ok := r.Position(e.target)
	if !ok {
		// Target gone; hold position.
		e.vel = core.Vec{}
		return
	}
	dir := target.Sub(e.pos)
	e.vel = dir.Normalize().Scale(e.Stats.Speed)
	e.face(dir.X)
}

func (e *Enemy) wander(rng core.Rand) {
	if e.vel.IsZero() || rng.Float64() < wanderRerollChance {
		angle := rng.Float64() * 2 * math.Pi
		e.vel = core.Polar(angle, e.Stats.Speed*0.5)
	}
	e.face(e.vel.X)
}

func (e *Enemy) face(dx float64) {
	if dx < 0 {
		e.FacingLeft = true
	} else if dx > 0 {
		e.FacingLeft = false
	}
}

// TakeDamage subtracts amount from health. It returns the score value on the
// killing hit and 0 otherwise, including for hits on an already dead enemy.
func (e *Enemy) TakeDamage(amount int) int {
	if e.state == Dead || amount <= 0 {
		return 0
	}
	e.Health -= amount
	if e.Health > 0 {
		return 0
	}
	e.Health = 0
	e.state = Dead
	e.vel = core.Vec{}
	return e.Stats.ScoreValue
}
