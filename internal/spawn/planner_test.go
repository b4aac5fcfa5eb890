package spawn

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/agent"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/tilemap"
)

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

// markers is a Terrain with hand-placed objects.
type markers struct {
	bounds  core.Box
	objects []tilemap.Object
}

func (m markers) Bounds() core.Box { return m.bounds }

func (m markers) FindObjectsByType(tag string) []tilemap.Object {
	var out []tilemap.Object
	for _, o := range m.objects {
		if o.Type == tag {
			out = append(out, o)
		}
	}
	return out
}

func newTestPlanner() *Planner {
	cfg := config.DefaultShooterConfig()
	d := cfg.Player.DefaultSpawn
	return NewPlanner(cfg.Spawn, core.V(d.X, d.Y), log.New(io.Discard))
}

func TestPlacePlayer(t *testing.T) {
	p := newTestPlanner()

	fallback := tilemap.GenerateFallback(25, 20, 32, rand.New(rand.NewSource(1)))
	if got := p.PlacePlayer(fallback); got != core.V(400, 300) {
		t.Errorf("fallback player = %+v, expected default (400,300)", got)
	}

	m := markers{objects: []tilemap.Object{
		{Name: "first", Type: tilemap.ObjectPlayerSpawn, X: 50, Y: 60},
		{Name: "second", Type: tilemap.ObjectPlayerSpawn, X: 70, Y: 80},
	}}
	if got := p.PlacePlayer(m); got != core.V(50, 60) {
		t.Errorf("authored player = %+v, expected first marker", got)
	}
}

func TestPlaceEnemiesCount(t *testing.T) {
	p := newTestPlanner()
	m := tilemap.GenerateFallback(25, 20, 32, rand.New(rand.NewSource(2)))
	area := p.SpawnArea(m.Bounds())
	rng := rand.New(rand.NewSource(3))

	for level := 1; level <= 3; level++ {
		got := p.PlaceEnemies(m, core.V(400, 300), level, rng)
		if want := 5 + 2*level; len(got) != want {
			t.Fatalf("level %d: %d enemies, expected %d", level, len(got), want)
		}
		for _, s := range got {
			if s.Type != agent.EnemyBasic || s.Authored {
				t.Errorf("synthesized spawn = %+v", s)
			}
			if !area.Contains(s.Pos) {
				t.Errorf("spawn %+v outside area %+v", s.Pos, area)
			}
		}
	}
}

func TestSpawnArea(t *testing.T) {
	p := newTestPlanner()

	tests := []struct {
		name   string
		bounds core.Box
		want   core.Box
	}{
		{"default margin", core.Box{W: 800, H: 600}, core.Box{X: 100, Y: 100, W: 600, H: 400}},
		{"small map clips margin", core.Box{W: 200, H: 160}, core.Box{X: 40, Y: 40, W: 120, H: 80}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.SpawnArea(tc.bounds); got != tc.want {
				t.Errorf("SpawnArea = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestSafeDistanceProperty(t *testing.T) {
	p := newTestPlanner()
	m := tilemap.GenerateFallback(25, 20, 32, rand.New(rand.NewSource(4)))
	b := m.Bounds()
	rng := rand.New(rand.NewSource(5))

	const players, perPlayer = 1000, 50
	safe, total := 0, 0
	for i := 0; i < players; i++ {
		player := core.V(b.X+rng.Float64()*b.W, b.Y+rng.Float64()*b.H)
		area := p.SpawnArea(b)
		for j := 0; j < perPlayer; j++ {
			pos, ok := p.sample(area, player, rng)
			total++
			if pos.Dist(player) >= 150 {
				safe++
			} else if ok {
				t.Fatalf("sample reported ok at distance %g", pos.Dist(player))
			}
		}
	}
	if ratio := float64(safe) / float64(total); ratio < 0.95 {
		t.Errorf("safe ratio = %.4f, expected >= 0.95", ratio)
	}
}

func TestPlaceRandomExhausted(t *testing.T) {
	p := newTestPlanner()
	m := markers{bounds: core.Box{W: 800, H: 600}}

	// Every candidate lands on the area center, which is the player.
	got := p.PlaceEnemies(m, core.V(400, 300), 1, constRand(0.5))
	if len(got) != 7 {
		t.Fatalf("got %d spawns, expected 7 even when exhausted", len(got))
	}
	for _, s := range got {
		if !s.Compromised || s.Pos != core.V(400, 300) {
			t.Errorf("spawn = %+v, expected compromised last candidate", s)
		}
	}
}

func TestPlaceAuthored(t *testing.T) {
	p := newTestPlanner()
	player := core.V(400, 300)
	m := markers{
		bounds: core.Box{W: 800, H: 640},
		objects: []tilemap.Object{
			{Name: "far", Type: tilemap.ObjectEnemySpawn, X: 80, Y: 80,
				Properties: []tilemap.Property{{Name: "type", Value: "fast"}}},
			{Name: "near", Type: tilemap.ObjectEnemySpawn, X: 460, Y: 330,
				Properties: []tilemap.Property{{Name: "type", Value: "Strong"}}},
			{Name: "untyped", Type: tilemap.ObjectEnemySpawn, X: 700, Y: 500},
			{Name: "odd", Type: tilemap.ObjectEnemySpawn, X: 100, Y: 500,
				Properties: []tilemap.Property{{Name: "type", Value: "dragon"}}},
		},
	}

	// angle 0, distance 150: the near marker moves to (610, 330).
	got := p.PlaceEnemies(m, player, 2, constRand(0))
	if len(got) != 4 {
		t.Fatalf("got %d spawns, expected one per marker", len(got))
	}

	want := []Spawn{
		{Pos: core.V(80, 80), Type: agent.EnemyFast, Authored: true},
		{Pos: core.V(610, 330), Type: agent.EnemyStrong, Authored: true},
		{Pos: core.V(700, 500), Type: agent.EnemyBasic, Authored: true},
		{Pos: core.V(100, 500), Type: agent.EnemyBasic, Authored: true},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("spawn %d = %+v, expected %+v", i, got[i], want[i])
		}
	}
}

func TestRelocationFallsBackToOriginal(t *testing.T) {
	cfg := config.DefaultShooterConfig().Spawn
	cfg.RelocateMaxDistance = cfg.SafeDistance
	p := NewPlanner(cfg, core.V(0, 0), log.New(io.Discard))

	origin := core.V(0, 0)
	player := core.V(100, 0)
	m := markers{objects: []tilemap.Object{{Name: "stuck", Type: tilemap.ObjectEnemySpawn, X: origin.X, Y: origin.Y}}}

	// Every try lands at (150, 0), 50 units from the player.
	got := p.PlaceEnemies(m, player, 1, constRand(0))
	if len(got) != 1 {
		t.Fatalf("got %d spawns", len(got))
	}
	if got[0].Pos != origin || !got[0].Compromised {
		t.Errorf("spawn = %+v, expected compromised original point", got[0])
	}
}

func TestRelocationIgnoresWalls(t *testing.T) {
	p := newTestPlanner()
	m := tilemap.GenerateFallback(25, 20, 32, rand.New(rand.NewSource(6)))
	player := core.V(100, 300)

	// Heading west 175 units leaves the map entirely; only distance counts.
	pos, ok := p.relocate(core.V(60, 300), player, constRand(0.5))
	if !ok {
		t.Fatal("relocation failed")
	}
	if !m.IsWallAt(pos.X, pos.Y) {
		t.Errorf("relocated point %+v expected outside the map", pos)
	}
}
