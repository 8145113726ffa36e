package canvas

import (
	"math"
	"testing"
)

func TestEMU(t *testing.T) {
	tests := []struct {
		inches float64
		want   int64
	}{
		{1, 914400},
		{0, 0},
		{13.333, 12191695},
		{0.5, 457200},
	}

	for _, tt := range tests {
		if got := EMU(tt.inches); got != tt.want {
			t.Errorf("EMU(%v) = %d, want %d", tt.inches, got, tt.want)
		}
	}
}

func TestPointsEMU(t *testing.T) {
	tests := []struct {
		pt   float64
		want int64
	}{
		{1, 12700},
		{1.5, 19050},
		{28, 355600},
	}

	for _, tt := range tests {
		if got := PointsEMU(tt.pt); got != tt.want {
			t.Errorf("PointsEMU(%v) = %d, want %d", tt.pt, got, tt.want)
		}
	}
}

func TestContentArea(t *testing.T) {
	c := Content()
	if c.X != 0.6 || c.Y != 1.7 {
		t.Errorf("content origin = (%v, %v), want (0.6, 1.7)", c.X, c.Y)
	}
	if math.Abs(c.W-12.133) > 1e-9 {
		t.Errorf("content width = %v, want 12.133", c.W)
	}
	if math.Abs(c.H-5.3) > 1e-9 {
		t.Errorf("content height = %v, want 5.3", c.H)
	}
	if !c.Inside(SafeArea()) {
		t.Error("content area must lie inside the safe area")
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlap", Rect{0, 0, 2, 2}, Rect{1, 1, 2, 2}, true},
		{"touching edges", Rect{0, 0, 1, 1}, Rect{1, 0, 1, 1}, false},
		{"disjoint", Rect{0, 0, 1, 1}, Rect{5, 5, 1, 1}, false},
		{"contained", Rect{0, 0, 4, 4}, Rect{1, 1, 1, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}
