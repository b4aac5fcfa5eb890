package tilemap

import (
	"embed"
	"errors"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
)

//go:embed maps/*.yaml
var embeddedMaps embed.FS

// EmbeddedMaps returns the maps compiled into the binary.
func EmbeddedMaps() fs.FS {
	sub, err := fs.Sub(embeddedMaps, "maps")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return sub
}

// Loader reads authored maps from one or more roots. Earlier roots shadow
// later ones, so a user directory can override the embedded maps.
type Loader struct {
	roots  []fs.FS
	logger *log.Logger
}

// NewLoader creates a loader over the given roots.
func NewLoader(logger *log.Logger, roots ...fs.FS) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{roots: roots, logger: logger}
}

// DefaultLoader searches dir (when non-empty) before the embedded maps.
func DefaultLoader(dir string, logger *log.Logger) *Loader {
	var roots []fs.FS
	if dir != "" {
		roots = append(roots, os.DirFS(dir))
	}
	roots = append(roots, EmbeddedMaps())
	return NewLoader(logger, roots...)
}

// LoadAuthored loads map mapID and builds it with tileset tilesetID.
// Failures are *MapError values wrapping ErrMapNotFound, ErrMalformedMap,
// ErrTilesetMismatch or ErrMalformedLayer. Missing optional layers are
// logged, not returned.
func (l *Loader) LoadAuthored(mapID, tilesetID string) (*Map, error) {
	data, err := l.read(mapID)
	if err != nil {
		return nil, err
	}
	m, missing, err := parseMap(mapID, data, tilesetID)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		l.logger.Warn("map is missing layers", "map", mapID, "layers", missing)
	}
	return m, nil
}

func (l *Loader) read(mapID string) ([]byte, error) {
	if mapID == "" || !fs.ValidPath(mapID) {
		return nil, mapErr(mapID, ErrMapNotFound, "invalid map id")
	}
	for _, root := range l.roots {
		for _, ext := range []string{".yaml", ".yml"} {
			data, err := fs.ReadFile(root, mapID+ext)
			if err == nil {
				return data, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, mapErr(mapID, ErrMapNotFound, "%v", err)
			}
		}
	}
	return nil, mapErr(mapID, ErrMapNotFound, "no such file in %d roots", len(l.roots))
}
