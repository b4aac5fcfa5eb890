// Package core provides the value types shared by the simulation and the
// terminal front-end. It has no dependencies on Bubble Tea or the physics
// engine so the simulation stays pure and testable.
package core

import "math"

// Vec is a point or direction in world units (map pixels).
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Polar returns the vector of length r pointing at angle (radians).
func Polar(angle, r float64) Vec {
	return Vec{X: math.Cos(angle) * r, Y: math.Sin(angle) * r}
}

func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale multiplies both components by k.
func (v Vec) Scale(k float64) Vec { return Vec{X: v.X * k, Y: v.Y * k} }

// Len returns the Euclidean length.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between two points.
func (v Vec) Dist(o Vec) float64 { return v.Sub(o).Len() }

// IsZero reports whether both components are exactly zero.
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalize returns the unit vector in the direction of v, or the zero
// vector when v has no length.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// Box is an axis-aligned rectangle in world units, anchored at its top-left.
type Box struct {
	X, Y float64
	W, H float64
}

// BoxAt returns a box of size (w, h) centered on c.
func BoxAt(c Vec, w, h float64) Box {
	return Box{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (b Box) Right() float64  { return b.X + b.W }
func (b Box) Bottom() float64 { return b.Y + b.H }

// Center returns the midpoint of the box.
func (b Box) Center() Vec {
	return Vec{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Contains reports whether p lies inside the box (right/bottom exclusive).
func (b Box) Contains(p Vec) bool {
	return p.X >= b.X && p.X < b.Right() && p.Y >= b.Y && p.Y < b.Bottom()
}

// Intersects reports whether two boxes overlap. Touching edges do not count.
func (b Box) Intersects(o Box) bool {
	if b.X >= o.Right() || o.X >= b.Right() {
		return false
	}
	if b.Y >= o.Bottom() || o.Y >= b.Bottom() {
		return false
	}
	return true
}

// Inset shrinks the box by d on every side. The result never has a negative
// size; an over-inset box collapses onto its center.
func (b Box) Inset(d float64) Box {
	c := b.Center()
	w := math.Max(0, b.W-2*d)
	h := math.Max(0, b.H-2*d)
	return BoxAt(c, w, h)
}

// ClampPoint moves p to the nearest point inside the box.
func (b Box) ClampPoint(p Vec) Vec {
	return Vec{X: ClampF(p.X, b.X, b.Right()), Y: ClampF(p.Y, b.Y, b.Bottom())}
}

// Rect is an integer rectangle in screen cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
