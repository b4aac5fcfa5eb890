package tilemap

import (
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

func quiet() *log.Logger { return log.New(io.Discard) }

const tinyMap = `
id: tiny
width: 4
height: 3
tile_size: 10
tilesets:
  - name: tiles
    tiles:
      " ": {id: -1}
      ".": {id: 1}
      "#": {id: 2}
      "o": {id: 9, collides: false}
layers:
  - name: GROUND
    rows: ["....", "....", "...."]
  - name: Walls
    rows: ["##  ", "  o ", "####"]
object_layers:
  - name: markers
    objects:
      - {name: p, type: playerSpawn, x: 15, y: 15}
      - {name: a, type: enemySpawn, x: 5, y: 5, properties: [{name: type, value: fast}]}
      - {name: b, type: EnemySpawn, x: 25, y: 5}
`

func TestLoadAuthored(t *testing.T) {
	l := NewLoader(quiet(), fstest.MapFS{"tiny.yaml": {Data: []byte(tinyMap)}})

	m, err := l.LoadAuthored("tiny", "tiles")
	if err != nil {
		t.Fatalf("LoadAuthored: %v", err)
	}
	if m.Source != SourceAuthored || m.Width != 4 || m.Height != 3 {
		t.Fatalf("map = %+v", m)
	}
	if m.Bounds() != (core.Box{W: 40, H: 30}) {
		t.Errorf("Bounds = %+v", m.Bounds())
	}

	walls := []struct {
		x, y float64
		want bool
	}{
		{5, 5, true},    // '#'
		{25, 5, false},  // ' '
		{25, 15, false}, // 'o' explicitly non-colliding
		{35, 25, true},  // bottom row
		{-1, 5, true},   // outside is wall
		{45, 5, true},
	}
	for _, w := range walls {
		if got := m.IsWallAt(w.x, w.y); got != w.want {
			t.Errorf("IsWallAt(%g, %g) = %v, expected %v", w.x, w.y, got, w.want)
		}
	}

	// Row runs merge: "##" and "####".
	if len(m.Colliders()) != 2 {
		t.Fatalf("colliders = %+v", m.Colliders())
	}
	if m.Colliders()[1] != (core.Box{X: 0, Y: 20, W: 40, H: 10}) {
		t.Errorf("bottom collider = %+v", m.Colliders()[1])
	}

	spawns := m.FindObjectsByType(ObjectEnemySpawn)
	if len(spawns) != 2 {
		t.Fatalf("enemy spawns = %d, expected 2 (case-insensitive)", len(spawns))
	}
	if v, ok := spawns[0].Property("type"); !ok || v != "fast" {
		t.Errorf("spawn type property = %q, %v", v, ok)
	}
	if _, ok := spawns[1].Property("type"); ok {
		t.Error("second spawn should have no type property")
	}
	if got := m.FindObjectsByType("treasure"); len(got) != 0 {
		t.Errorf("unknown tag returned %d objects", len(got))
	}
}

func TestLoadAuthoredErrors(t *testing.T) {
	badRows := strings.Replace(tinyMap, `["##  ", "  o ", "####"]`, `["##  ", "  o "]`, 1)
	badGlyph := strings.Replace(tinyMap, `"  o "`, `"  x "`, 1)
	badWidth := strings.Replace(tinyMap, `"####"]`, `"#####"]`, 1)

	fsys := fstest.MapFS{
		"tiny.yaml":      {Data: []byte(tinyMap)},
		"rows.yaml":      {Data: []byte(badRows)},
		"glyph.yaml":     {Data: []byte(badGlyph)},
		"width.yaml":     {Data: []byte(badWidth)},
		"garbage.yaml":   {Data: []byte("width: [")},
		"zero_size.yaml": {Data: []byte("width: 0\nheight: 3\ntile_size: 10\n")},
	}
	l := NewLoader(quiet(), fsys)

	tests := []struct {
		mapID, tileset string
		want           error
	}{
		{"missing", "tiles", ErrMapNotFound},
		{"../escape", "tiles", ErrMapNotFound},
		{"tiny", "dungeon", ErrTilesetMismatch},
		{"rows", "tiles", ErrMalformedLayer},
		{"glyph", "tiles", ErrMalformedLayer},
		{"width", "tiles", ErrMalformedLayer},
		{"garbage", "tiles", ErrMalformedMap},
		{"zero_size", "tiles", ErrMalformedMap},
	}

	for _, tc := range tests {
		t.Run(tc.mapID+"/"+tc.tileset, func(t *testing.T) {
			_, err := l.LoadAuthored(tc.mapID, tc.tileset)
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, expected %v", err, tc.want)
			}
			if Reason(err) != tc.want.Error() {
				t.Errorf("Reason = %q", Reason(err))
			}
			var me *MapError
			if !errors.As(err, &me) || me.MapID != tc.mapID {
				t.Errorf("error is not a *MapError for %q: %#v", tc.mapID, err)
			}
		})
	}
}

func TestLoaderRootsShadow(t *testing.T) {
	user := fstest.MapFS{"level1.yaml": {Data: []byte(tinyMap)}}
	l := NewLoader(quiet(), user, EmbeddedMaps())

	m, err := l.LoadAuthored("level1", "tiles")
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != "tiny" {
		t.Errorf("user root should shadow embedded map, got %q", m.ID)
	}
}

func TestEmbeddedMapsLoad(t *testing.T) {
	l := DefaultLoader("", quiet())

	for _, id := range []string{"level1", "level2", "level3"} {
		t.Run(id, func(t *testing.T) {
			m, err := l.LoadAuthored(id, "tiles")
			if err != nil {
				t.Fatalf("LoadAuthored(%s): %v", id, err)
			}
			players := m.FindObjectsByType(ObjectPlayerSpawn)
			if len(players) != 1 {
				t.Fatalf("player spawns = %d", len(players))
			}
			if m.IsWallAt(players[0].X, players[0].Y) {
				t.Error("player spawn inside a wall")
			}
			for _, o := range m.FindObjectsByType(ObjectEnemySpawn) {
				if m.IsWallAt(o.X, o.Y) {
					t.Errorf("enemy spawn %s inside a wall", o.Name)
				}
			}
			for x := 0; x < m.Width; x++ {
				if !m.IsWallTile(x, 0) || !m.IsWallTile(x, m.Height-1) {
					t.Fatalf("border open at column %d", x)
				}
			}
		})
	}
}

func TestGenerateFallback(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		m := GenerateFallback(25, 20, 32, rand.New(rand.NewSource(seed)))

		if m.Source != SourceFallback || len(m.Objects) != 0 {
			t.Fatalf("seed %d: fallback map = %+v", seed, m)
		}
		if m.Bounds() != (core.Box{W: 800, H: 640}) {
			t.Fatalf("seed %d: bounds = %+v", seed, m.Bounds())
		}

		// Closed border.
		for x := 0; x < m.Width; x++ {
			if !m.IsWallTile(x, 0) || !m.IsWallTile(x, m.Height-1) {
				t.Fatalf("seed %d: border open at column %d", seed, x)
			}
		}
		for y := 0; y < m.Height; y++ {
			if !m.IsWallTile(0, y) || !m.IsWallTile(m.Width-1, y) {
				t.Fatalf("seed %d: border open at row %d", seed, y)
			}
		}

		// 4 border boxes plus min(10, 500/20) = 10 segments, all inside.
		cols := m.Colliders()
		if len(cols) != 4+FallbackSegmentCount(25, 20) {
			t.Fatalf("seed %d: %d colliders, expected 14", seed, len(cols))
		}
		inner := core.Box{X: 32, Y: 32, W: 800 - 64, H: 640 - 64}
		for _, c := range cols[4:] {
			if c.X < inner.X || c.Y < inner.Y || c.Right() > inner.Right() || c.Bottom() > inner.Bottom() {
				t.Errorf("seed %d: segment %+v leaves the interior", seed, c)
			}
			long := c.W
			if c.H > long {
				long = c.H
			}
			if long < 3*32 || long > 7*32 {
				t.Errorf("seed %d: segment length %g outside 3..7 tiles", seed, long/32)
			}
		}
	}
}

func TestGenerateFallbackDeterministic(t *testing.T) {
	a := GenerateFallback(25, 20, 32, rand.New(rand.NewSource(7)))
	b := GenerateFallback(25, 20, 32, rand.New(rand.NewSource(7)))
	if len(a.Colliders()) != len(b.Colliders()) {
		t.Fatal("same seed produced different maps")
	}
	for i := range a.Colliders() {
		if a.Colliders()[i] != b.Colliders()[i] {
			t.Fatalf("collider %d differs: %+v vs %+v", i, a.Colliders()[i], b.Colliders()[i])
		}
	}
}

func TestFallbackSegmentCount(t *testing.T) {
	tests := []struct{ w, h, want int }{
		{25, 20, 10},
		{10, 10, 5},
		{4, 4, 0},
	}
	for _, tc := range tests {
		if got := FallbackSegmentCount(tc.w, tc.h); got != tc.want {
			t.Errorf("FallbackSegmentCount(%d, %d) = %d, expected %d", tc.w, tc.h, got, tc.want)
		}
	}
}

type registrar struct{ boxes []core.Box }

func (r *registrar) AddWall(b core.Box) { r.boxes = append(r.boxes, b) }

func TestProvideFallsBack(t *testing.T) {
	p := &Provider{
		Maps:           NewLoader(quiet(), fstest.MapFS{}),
		Tileset:        "tiles",
		FallbackWidth:  25,
		FallbackHeight: 20,
		TileSize:       32,
		Logger:         quiet(),
	}

	m := p.Provide("level1", rand.New(rand.NewSource(1)))
	if m.Source != SourceFallback {
		t.Fatalf("expected fallback map, got %v", m.Source)
	}

	var r registrar
	if n := m.RegisterColliders(&r); n != len(r.boxes) || n != len(m.Colliders()) {
		t.Errorf("RegisterColliders = %d, registrar got %d", n, len(r.boxes))
	}

	p.Maps = DefaultLoader("", quiet())
	if m := p.Provide("level1", rand.New(rand.NewSource(1))); m.Source != SourceAuthored {
		t.Errorf("expected authored map, got %v", m.Source)
	}
	if m := p.Provide("", rand.New(rand.NewSource(1))); m.Source != SourceFallback {
		t.Errorf("empty map id should fall back, got %v", m.Source)
	}
}
