package geom

import (
	"errors"
	"math"
)

// ErrSingular is returned when a linear system has no unique solution.
var ErrSingular = errors.New("geom: singular system")

// Solve3x3 solves the linear system a·x = b by Gaussian elimination with
// partial pivoting and returns the solution as a vector.
func Solve3x3(a [3][3]float64, b [3]float64) (Vec, error) {
	for i := 0; i < 3; i++ {
		// Pivot on the largest remaining coefficient in column i.
		pivot := i
		for k := i + 1; k < 3; k++ {
			if math.Abs(a[k][i]) > math.Abs(a[pivot][i]) {
				pivot = k
			}
		}
		if math.Abs(a[pivot][i]) < Eps {
			return Vec{}, ErrSingular
		}
		if pivot != i {
			a[i], a[pivot] = a[pivot], a[i]
			b[i], b[pivot] = b[pivot], b[i]
		}
		for k := i + 1; k < 3; k++ {
			coef := a[k][i] / a[i][i]
			a[k][i] = 0
			for j := i + 1; j < 3; j++ {
				a[k][j] -= a[i][j] * coef
			}
			b[k] -= b[i] * coef
		}
	}
	z := b[2] / a[2][2]
	y := (b[1] - a[1][2]*z) / a[1][1]
	x := (b[0] - a[0][1]*y - a[0][2]*z) / a[0][0]
	return V(x, y, z), nil
}
