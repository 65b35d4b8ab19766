package geom

import (
	"math"
	"testing"
)

func TestSolve3x3(t *testing.T) {
	tests := []struct {
		name string
		a    [3][3]float64
		b    [3]float64
		want Vec
	}{
		{
			"identity",
			[3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			[3]float64{4, -2, 7},
			V(4, -2, 7),
		},
		{
			"dense",
			[3][3]float64{{2, 1, -1}, {-3, -1, 2}, {-2, 1, 2}},
			[3]float64{8, -11, -3},
			V(2, 3, -1),
		},
		{
			"needs pivoting",
			[3][3]float64{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}},
			[3]float64{3, 4, 5},
			V(3, 2, 1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Solve3x3(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Solve3x3 returned error: %v", err)
			}
			if math.Abs(got.X-tt.want.X) > 1e-9 ||
				math.Abs(got.Y-tt.want.Y) > 1e-9 ||
				math.Abs(got.Z-tt.want.Z) > 1e-9 {
				t.Errorf("Solve3x3 = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSolve3x3Singular(t *testing.T) {
	a := [3][3]float64{{1, 2, 3}, {2, 4, 6}, {1, 1, 1}}
	if _, err := Solve3x3(a, [3]float64{1, 2, 3}); err != ErrSingular {
		t.Errorf("expected ErrSingular, got %v", err)
	}
}
