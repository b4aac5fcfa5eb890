package core

import (
	"math"
	"testing"
)

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping", Box{0, 0, 10, 10}, Box{5, 5, 10, 10}, true},
		{"disjoint horizontal", Box{0, 0, 10, 10}, Box{15, 0, 10, 10}, false},
		{"disjoint vertical", Box{0, 0, 10, 10}, Box{0, 15, 10, 10}, false},
		{"touching edge", Box{0, 0, 10, 10}, Box{10, 0, 10, 10}, false},
		{"contained", Box{0, 0, 20, 20}, Box{5, 5, 5, 5}, true},
		{"fractional overlap", Box{0, 0, 10, 10}, Box{9.5, 9.5, 10, 10}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxContains(t *testing.T) {
	b := Box{X: 10, Y: 10, W: 20, H: 15}

	tests := []struct {
		name     string
		p        Vec
		expected bool
	}{
		{"inside", V(15, 15), true},
		{"top-left corner", V(10, 10), true},
		{"bottom-right edge (exclusive)", V(30, 25), false},
		{"outside left", V(5, 15), false},
		{"outside bottom", V(15, 30), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestBoxInset(t *testing.T) {
	b := Box{X: 0, Y: 0, W: 800, H: 640}
	in := b.Inset(100)
	if in.X != 100 || in.Y != 100 || in.W != 600 || in.H != 440 {
		t.Errorf("Inset(100) = %+v", in)
	}

	collapsed := Box{X: 0, Y: 0, W: 50, H: 50}.Inset(100)
	if collapsed.W != 0 || collapsed.H != 0 || collapsed.Center() != V(25, 25) {
		t.Errorf("over-inset box = %+v, expected zero size at center", collapsed)
	}
}

func TestVecOps(t *testing.T) {
	if d := V(0, 0).Dist(V(3, 4)); d != 5 {
		t.Errorf("Dist = %f, expected 5", d)
	}

	n := V(10, 0).Normalize()
	if n != V(1, 0) {
		t.Errorf("Normalize = %v, expected (1,0)", n)
	}
	if !V(0, 0).Normalize().IsZero() {
		t.Error("Normalize of zero vector should be zero")
	}

	p := Polar(math.Pi/2, 2)
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y-2) > 1e-9 {
		t.Errorf("Polar(pi/2, 2) = %v", p)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampPoint(t *testing.T) {
	b := Box{X: 0, Y: 0, W: 100, H: 50}
	if got := b.ClampPoint(V(-5, 70)); got != V(0, 50) {
		t.Errorf("ClampPoint = %v, expected (0,50)", got)
	}
}
