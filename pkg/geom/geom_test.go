package geom

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -3, 0, 10, 0},
		{"above", 42, 0, 10, 10},
		{"at lower bound", 0, 0, 10, 0},
		{"at upper bound", 10, 0, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%g, %g, %g) = %g, want %g", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestPolylineLength(t *testing.T) {
	tests := []struct {
		name string
		pts  []Vec
		want float64
	}{
		{"empty", nil, 0},
		{"single point", []Vec{V(1, 2, 0)}, 0},
		{"straight run", []Vec{V(0, 0, 0), V(100, 0, 0)}, 100},
		{"L shape", []Vec{V(0, 0, 0), V(30, 0, 0), V(30, 40, 0)}, 70},
		{"diagonal", []Vec{V(0, 0, 0), V(3, 4, 0)}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PolylineLength(tt.pts); math.Abs(got-tt.want) > Eps {
				t.Errorf("PolylineLength = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestProjectOntoSegment2D(t *testing.T) {
	tests := []struct {
		name    string
		p, s, e Vec
		want    Vec
	}{
		{"perpendicular foot", V(5, 7, 0), V(0, 0, 0), V(10, 0, 0), V(5, 0, 0)},
		{"clamped to start", V(-4, 3, 0), V(0, 0, 0), V(10, 0, 0), V(0, 0, 0)},
		{"clamped to end", V(15, -2, 0), V(0, 0, 0), V(10, 0, 0), V(10, 0, 0)},
		{"oblique segment", V(0, 10, 0), V(0, 0, 0), V(10, 10, 0), V(5, 5, 0)},
		{"degenerate segment", V(3, 3, 0), V(1, 1, 0), V(1, 1, 0), V(1, 1, 0)},
		{"ignores z", V(5, 7, 99), V(0, 0, 12), V(10, 0, -12), V(5, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectOntoSegment2D(tt.p, tt.s, tt.e)
			if !Eq(got, tt.want) {
				t.Errorf("ProjectOntoSegment2D = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEq(t *testing.T) {
	if !Eq(V(1, 2, 3), V(1, 2, 3)) {
		t.Error("identical points should be equal")
	}
	if Eq(V(1, 2, 3), V(1, 2, 3.001)) {
		t.Error("points 1e-3 apart should not be equal")
	}
}
