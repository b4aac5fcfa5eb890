package tilemap

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlMap is the on-disk layout of an authored map.
type yamlMap struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Width        int               `yaml:"width"`
	Height       int               `yaml:"height"`
	TileSize     int               `yaml:"tile_size"`
	Tilesets     []yamlTileset     `yaml:"tilesets"`
	Layers       []yamlLayer       `yaml:"layers"`
	ObjectLayers []yamlObjectLayer `yaml:"object_layers"`
}

type yamlTileset struct {
	Name  string              `yaml:"name"`
	Tiles map[string]yamlTile `yaml:"tiles"`
}

type yamlTile struct {
	ID       int   `yaml:"id"`
	Collides *bool `yaml:"collides"`
}

type yamlLayer struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

type yamlObjectLayer struct {
	Name    string   `yaml:"name"`
	Objects []Object `yaml:"objects"`
}

// Tile ids that never collide unless the tileset says otherwise.
var nonColliding = map[int]bool{-1: true, 0: true, 1: true, 3: true}

func (t yamlTile) collides() bool {
	if t.Collides != nil {
		return *t.Collides
	}
	return !nonColliding[t.ID]
}

// Layer roles, matched case-insensitively against layer names.
const (
	roleNone = iota
	roleFloor
	roleWalls
	roleDecor
)

func layerRole(name string) int {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "floor", "ground":
		return roleFloor
	case "walls":
		return roleWalls
	case "objects", "decorations":
		return roleDecor
	default:
		return roleNone
	}
}

// parseMap decodes an authored map and builds its geometry using the named
// tileset.
func parseMap(mapID string, data []byte, tilesetID string) (*Map, []string, error) {
	var ym yamlMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, nil, mapErr(mapID, ErrMalformedMap, "%v", err)
	}
	if ym.Width <= 0 || ym.Height <= 0 || ym.TileSize <= 0 {
		return nil, nil, mapErr(mapID, ErrMalformedMap, "invalid size %dx%d tile %d", ym.Width, ym.Height, ym.TileSize)
	}

	var tileset *yamlTileset
	names := make([]string, 0, len(ym.Tilesets))
	for i := range ym.Tilesets {
		names = append(names, ym.Tilesets[i].Name)
		if ym.Tilesets[i].Name == tilesetID {
			tileset = &ym.Tilesets[i]
		}
	}
	if tileset == nil {
		return nil, nil, mapErr(mapID, ErrTilesetMismatch, "want %q, map has %v", tilesetID, names)
	}

	id := ym.ID
	if id == "" {
		id = mapID
	}
	m := newMap(id, SourceAuthored, ym.Width, ym.Height, ym.TileSize)
	m.Name = ym.Name

	seen := make(map[int]bool)
	for _, layer := range ym.Layers {
		role := layerRole(layer.Name)
		if role == roleNone {
			continue
		}
		grid, err := decodeRows(ym.Width, ym.Height, layer.Rows, tileset.Tiles)
		if err != nil {
			return nil, nil, &MapError{MapID: mapID, Layer: layer.Name, Err: err}
		}
		seen[role] = true
		for i, tile := range grid {
			switch role {
			case roleWalls:
				if tile.collides() {
					m.walls[i] = true
				}
			case roleDecor:
				if tile.ID > 0 {
					m.decor[i] = true
				}
			}
		}
	}

	var missing []string
	if !seen[roleFloor] {
		missing = append(missing, "floor")
	}
	if !seen[roleWalls] {
		missing = append(missing, "walls")
	}
	if !seen[roleDecor] {
		missing = append(missing, "objects")
	}

	for _, ol := range ym.ObjectLayers {
		m.Objects = append(m.Objects, ol.Objects...)
	}

	m.buildRowColliders()
	return m, missing, nil
}

// decodeRows turns glyph rows into tiles through the tileset legend.
func decodeRows(w, h int, rows []string, legend map[string]yamlTile) ([]yamlTile, error) {
	if len(rows) != h {
		return nil, errorf(ErrMalformedLayer, "%d rows, want %d", len(rows), h)
	}
	grid := make([]yamlTile, 0, w*h)
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != w {
			return nil, errorf(ErrMalformedLayer, "row %d has %d tiles, want %d", y, len(runes), w)
		}
		for x, r := range runes {
			tile, ok := legend[string(r)]
			if !ok {
				return nil, errorf(ErrMalformedLayer, "unknown tile %q at %d,%d", r, x, y)
			}
			grid = append(grid, tile)
		}
	}
	return grid, nil
}
