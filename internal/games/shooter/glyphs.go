package shooter

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// ErrAssetMissing is returned when a sprite has no glyph in the sheet.
var ErrAssetMissing = errors.New("asset missing")

// Glyph is the terminal stand-in for a sprite.
type Glyph struct {
	Rune  rune
	Color core.Color
}

var fallbackGlyph = Glyph{Rune: '?', Color: core.ColorMagenta}

// defaultSheet maps sprite keys to glyphs.
var defaultSheet = map[string]Glyph{
	"player":       {'@', core.ColorBrightGreen},
	"player-left":  {'<', core.ColorBrightGreen},
	"player-right": {'>', core.ColorBrightGreen},
	"player-dead":  {'x', core.ColorRed},
	"player-hit":   {'@', core.ColorBrightWhite},

	"enemy-basic":  {'e', core.ColorRed},
	"enemy-fast":   {'f', core.ColorOrange},
	"enemy-strong": {'S', core.ColorBrightRed},
	"enemy-boss":   {'B', core.ColorMagenta},
	"enemy-hit":    {'*', core.ColorBrightWhite},

	"item-coin":   {'$', core.ColorBrightYellow},
	"item-health": {'+', core.ColorBrightGreen},
	"item-ammo":   {'=', core.ColorCyan},
	"item-weapon": {'^', core.ColorBrightCyan},

	"bullet": {'•', core.ColorYellow},
	"burst":  {'✶', core.ColorOrange},
	"wall":   {'█', core.ColorGray},
	"decor":  {'·', core.ColorDarkGray},
}

// Sheet resolves sprite keys to glyphs. A missing key resolves to a single
// fallback glyph and is reported once.
type Sheet struct {
	glyphs   map[string]Glyph
	reported map[string]bool
	logger   *log.Logger
}

// NewSheet returns a sheet over glyphs, or the built-in sheet when nil.
func NewSheet(glyphs map[string]Glyph, logger *log.Logger) *Sheet {
	if glyphs == nil {
		glyphs = defaultSheet
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Sheet{glyphs: glyphs, reported: make(map[string]bool), logger: logger}
}

// Lookup returns the glyph for key and an ErrAssetMissing error when the
// fallback had to be used.
func (s *Sheet) Lookup(key string) (Glyph, error) {
	if g, ok := s.glyphs[key]; ok {
		return g, nil
	}
	if !s.reported[key] {
		s.reported[key] = true
		s.logger.Warn("missing glyph, using fallback", "sprite", key)
	}
	return fallbackGlyph, fmt.Errorf("shooter: sprite %q: %w", key, ErrAssetMissing)
}

// Glyph is Lookup without the error.
func (s *Sheet) Glyph(key string) Glyph {
	g, _ := s.Lookup(key)
	return g
}
