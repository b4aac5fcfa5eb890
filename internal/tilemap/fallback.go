package tilemap

import (
	"math"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// FallbackID is the id given to generated maps.
const FallbackID = "fallback"

// Internal wall segments are 3 to 7 tiles long.
const (
	minSegment   = 3
	segmentRange = 5
	maxSegments  = 10
)

// GenerateFallback builds a bordered map of width x height tiles with up to
// ten random internal wall segments, each fully inside the border. The same
// rng sequence always yields the same map.
func GenerateFallback(width, height, tileSize int, rng core.Rand) *Map {
	m := newMap(FallbackID, SourceFallback, width, height, tileSize)
	w := float64(width * tileSize)
	h := float64(height * tileSize)
	ts := float64(tileSize)

	// Border: full-width top and bottom, sides between them.
	m.colliders = append(m.colliders,
		core.Box{X: 0, Y: 0, W: w, H: ts},
		core.Box{X: 0, Y: h - ts, W: w, H: ts},
		core.Box{X: 0, Y: ts, W: ts, H: h - 2*ts},
		core.Box{X: w - ts, Y: ts, W: ts, H: h - 2*ts},
	)
	for x := 0; x < width; x++ {
		m.setWall(x, 0)
		m.setWall(x, height-1)
	}
	for y := 0; y < height; y++ {
		m.setWall(0, y)
		m.setWall(width-1, y)
	}

	n := FallbackSegmentCount(width, height)
	for i := 0; i < n; i++ {
		horizontal := rng.Float64() > 0.5
		length := int(math.Floor(rng.Float64()*segmentRange)) + minSegment

		if horizontal {
			x := floorRange(rng, width-length-2) + 1
			y := floorRange(rng, height-4) + 2
			if x < 1 || x+length > width-1 {
				continue
			}
			m.colliders = append(m.colliders, m.tileBox(x, y, length, 1))
			for j := 0; j < length; j++ {
				m.setWall(x+j, y)
			}
		} else {
			x := floorRange(rng, width-4) + 2
			y := floorRange(rng, height-length-2) + 1
			if y < 1 || y+length > height-1 {
				continue
			}
			m.colliders = append(m.colliders, m.tileBox(x, y, 1, length))
			for j := 0; j < length; j++ {
				m.setWall(x, y+j)
			}
		}
	}
	return m
}

// FallbackSegmentCount is the number of internal segments a width x height
// fallback map attempts: min(10, width*height/20).
func FallbackSegmentCount(width, height int) int {
	return core.Min(maxSegments, width*height/20)
}

// floorRange returns floor(rng * n); n below 1 yields 0 without drawing
// a negative offset.
func floorRange(rng core.Rand, n int) int {
	v := int(math.Floor(rng.Float64() * float64(n)))
	if v < 0 {
		return 0
	}
	return v
}
