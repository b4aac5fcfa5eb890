package tilemap

import (
	"errors"
	"fmt"
)

// Reasons an authored map cannot be used.
var (
	ErrMapNotFound     = errors.New("map not found")
	ErrMalformedMap    = errors.New("malformed map")
	ErrTilesetMismatch = errors.New("tileset mismatch")
	ErrMalformedLayer  = errors.New("malformed layer")
)

// MapError reports why loading an authored map failed. It wraps one of the
// Err* sentinels.
type MapError struct {
	MapID string
	Layer string
	Err   error
}

func (e *MapError) Error() string {
	if e.Layer != "" {
		return fmt.Sprintf("tilemap: %s: layer %q: %v", e.MapID, e.Layer, e.Err)
	}
	return fmt.Sprintf("tilemap: %s: %v", e.MapID, e.Err)
}

func (e *MapError) Unwrap() error { return e.Err }

// Reason returns the short name of the sentinel err wraps, or "unknown".
func Reason(err error) string {
	for _, s := range []error{ErrMapNotFound, ErrMalformedMap, ErrTilesetMismatch, ErrMalformedLayer} {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "unknown"
}

func errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}

func mapErr(mapID string, sentinel error, format string, args ...any) *MapError {
	return &MapError{MapID: mapID, Err: errorf(sentinel, format, args...)}
}
