// Package tilemap provides level geometry: authored maps loaded from YAML
// and a procedurally generated fallback used when loading fails.
package tilemap

import (
	"math"
	"strings"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Source tells where a map came from.
type Source int

const (
	SourceAuthored Source = iota
	SourceFallback
)

func (s Source) String() string {
	if s == SourceFallback {
		return "fallback"
	}
	return "authored"
}

// Object markers placed in authored maps.
const (
	ObjectPlayerSpawn = "playerSpawn"
	ObjectEnemySpawn  = "enemySpawn"
)

// Property is a named string value attached to an object.
type Property struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Object is a typed point marker in world units.
type Object struct {
	Name       string     `yaml:"name"`
	Type       string     `yaml:"type"`
	X          float64    `yaml:"x"`
	Y          float64    `yaml:"y"`
	Properties []Property `yaml:"properties"`
}

// Pos returns the marker position.
func (o Object) Pos() core.Vec { return core.V(o.X, o.Y) }

// Property returns the value of a named property.
func (o Object) Property(name string) (string, bool) {
	for _, p := range o.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Map is the geometry of one level. Width and Height are in tiles.
type Map struct {
	ID       string
	Name     string
	Source   Source
	Width    int
	Height   int
	TileSize int
	Objects  []Object

	walls     []bool
	decor     []bool
	colliders []core.Box
}

func newMap(id string, src Source, w, h, tileSize int) *Map {
	return &Map{
		ID:       id,
		Source:   src,
		Width:    w,
		Height:   h,
		TileSize: tileSize,
		walls:    make([]bool, w*h),
		decor:    make([]bool, w*h),
	}
}

// Bounds returns the world rectangle covered by the map.
func (m *Map) Bounds() core.Box {
	return core.Box{W: float64(m.Width * m.TileSize), H: float64(m.Height * m.TileSize)}
}

// Colliders returns the static wall boxes in world units.
func (m *Map) Colliders() []core.Box { return m.colliders }

// IsWallTile reports whether tile (tx, ty) blocks movement. Tiles outside
// the map are walls.
func (m *Map) IsWallTile(tx, ty int) bool {
	if tx < 0 || ty < 0 || tx >= m.Width || ty >= m.Height {
		return true
	}
	return m.walls[ty*m.Width+tx]
}

// IsDecorTile reports whether tile (tx, ty) carries a decoration.
func (m *Map) IsDecorTile(tx, ty int) bool {
	if tx < 0 || ty < 0 || tx >= m.Width || ty >= m.Height {
		return false
	}
	return m.decor[ty*m.Width+tx]
}

// IsWallAt reports whether the world point (x, y) lies in a wall tile.
func (m *Map) IsWallAt(x, y float64) bool {
	ts := float64(m.TileSize)
	return m.IsWallTile(int(math.Floor(x/ts)), int(math.Floor(y/ts)))
}

// FindObjectsByType returns the markers with the given type tag in map
// order. Matching is case-insensitive; fallback maps have no markers.
func (m *Map) FindObjectsByType(tag string) []Object {
	var out []Object
	for _, o := range m.Objects {
		if strings.EqualFold(o.Type, tag) {
			out = append(out, o)
		}
	}
	return out
}

// ColliderRegistrar receives static geometry, typically the physics engine.
type ColliderRegistrar interface {
	AddWall(box core.Box)
}

// RegisterColliders hands every wall box to r and returns how many it gave.
func (m *Map) RegisterColliders(r ColliderRegistrar) int {
	for _, b := range m.colliders {
		r.AddWall(b)
	}
	return len(m.colliders)
}

func (m *Map) setWall(tx, ty int) {
	if tx >= 0 && ty >= 0 && tx < m.Width && ty < m.Height {
		m.walls[ty*m.Width+tx] = true
	}
}

// tileBox converts a run of tiles to a world box.
func (m *Map) tileBox(tx, ty, tw, th int) core.Box {
	ts := float64(m.TileSize)
	return core.Box{X: float64(tx) * ts, Y: float64(ty) * ts, W: float64(tw) * ts, H: float64(th) * ts}
}

// buildRowColliders merges horizontal runs of wall tiles into boxes.
func (m *Map) buildRowColliders() {
	m.colliders = m.colliders[:0]
	for ty := 0; ty < m.Height; ty++ {
		start := -1
		for tx := 0; tx <= m.Width; tx++ {
			wall := tx < m.Width && m.walls[ty*m.Width+tx]
			switch {
			case wall && start < 0:
				start = tx
			case !wall && start >= 0:
				m.colliders = append(m.colliders, m.tileBox(start, ty, tx-start, 1))
				start = -1
			}
		}
	}
}
