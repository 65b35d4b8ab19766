// Package geom provides the geometric vocabulary shared by the corridor
// graph and the pipe track: 3D vectors in millimetres, planar helpers,
// and a dense 3x3 linear solve.
package geom

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Eps is the length-comparison tolerance in mm.
const Eps = 1e-9

// Vec is a point or direction in 3D space. Coordinates are millimetres.
// Values are immutable; every operation returns a new vector.
type Vec = v3.Vec

// V returns the vector (x, y, z).
func V(x, y, z float64) Vec {
	return Vec{X: x, Y: y, Z: z}
}

// Flat returns p with the Z coordinate dropped. Routing is planar; track
// points are compared and connected in the Oxy plane.
func Flat(p Vec) Vec {
	return Vec{X: p.X, Y: p.Y}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vec) float64 {
	return b.Sub(a).Length()
}

// Eq reports whether a and b coincide within Eps.
func Eq(a, b Vec) bool {
	return b.Sub(a).Length() < Eps
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PolylineLength sums the segment lengths of the polyline pts.
func PolylineLength(pts []Vec) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += Dist(pts[i-1], pts[i])
	}
	return total
}

// ProjectOntoSegment2D returns the point of the segment [s, e] closest to
// p in the Oxy plane: the perpendicular projection of p onto the segment's
// line, clamped to the segment. Z coordinates are ignored and the result
// has Z = 0. A degenerate segment yields s.
func ProjectOntoSegment2D(p, s, e Vec) Vec {
	s, e, p = Flat(s), Flat(e), Flat(p)
	d := e.Sub(s)
	len2 := d.Dot(d)
	if len2 < Eps*Eps {
		return s
	}
	t := Clamp(p.Sub(s).Dot(d)/len2, 0, 1)
	return s.Add(d.MulScalar(t))
}
