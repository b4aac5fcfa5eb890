package tilemap

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// Authored loads authored maps. *Loader implements it.
type Authored interface {
	LoadAuthored(mapID, tilesetID string) (*Map, error)
}

// Provider hands out the map for a level: the authored one when it loads,
// the generated fallback otherwise.
type Provider struct {
	Maps           Authored // nil means fallback only
	Tileset        string
	FallbackWidth  int
	FallbackHeight int
	TileSize       int
	Logger         *log.Logger
}

// Provide returns the map for mapID. It never fails: a load error is logged
// and recovered by generating the fallback map from rng.
func (p *Provider) Provide(mapID string, rng core.Rand) *Map {
	logger := p.Logger
	if logger == nil {
		logger = log.Default()
	}

	if p.Maps != nil && mapID != "" {
		m, err := p.Maps.LoadAuthored(mapID, p.Tileset)
		if err == nil {
			logger.Debug("loaded authored map", "map", m.ID, "colliders", len(m.Colliders()), "objects", len(m.Objects))
			return m
		}
		logger.Warn("authored map unavailable, generating fallback", "map", mapID, "reason", Reason(err), "error", err)
	}

	m := GenerateFallback(p.FallbackWidth, p.FallbackHeight, p.TileSize, rng)
	logger.Debug("generated fallback map", "width", m.Width, "height", m.Height, "colliders", len(m.Colliders()))
	return m
}
