package track

import (
	"math"

	"drainroute/pkg/geom"
)

// runIntersectsRect tests a segment extruded to the given width against
// an axis-aligned rectangle. Axis-aligned runs reduce to a strict
// rectangle overlap; oblique runs get a coarse reject on the enlarged
// bounding box and then an edge-pair crossing test. Tangency never
// counts as intersection.
func runIntersectsRect(start, end geom.Vec, width float64, left, right, bottom, top float64) bool {
	half := width / 2

	if start.X == end.X {
		lo, hi := math.Min(start.Y, end.Y), math.Max(start.Y, end.Y)
		return rectsOverlap(start.X-half, start.X+half, lo, hi, left, right, bottom, top)
	}
	if start.Y == end.Y {
		lo, hi := math.Min(start.X, end.X), math.Max(start.X, end.X)
		return rectsOverlap(lo, hi, start.Y-half, start.Y+half, left, right, bottom, top)
	}

	// Coarse reject: run's bounding box grown by the full width.
	if !rectsOverlap(
		math.Min(start.X, end.X)-width, math.Max(start.X, end.X)+width,
		math.Min(start.Y, end.Y)-width, math.Max(start.Y, end.Y)+width,
		left, right, bottom, top) {
		return false
	}

	// Oriented box corners of the extruded run.
	perp := geom.V(start.Y-end.Y, end.X-start.X, 0).Normalize().MulScalar(half)
	a := start.Add(perp)
	b := end.Add(perp)
	c := end.Sub(perp)
	d := start.Sub(perp)
	box := [4][2]geom.Vec{{a, b}, {b, c}, {c, d}, {d, a}}
	rect := [4][2]geom.Vec{
		{geom.V(left, bottom, 0), geom.V(right, bottom, 0)},
		{geom.V(right, bottom, 0), geom.V(right, top, 0)},
		{geom.V(right, top, 0), geom.V(left, top, 0)},
		{geom.V(left, top, 0), geom.V(left, bottom, 0)},
	}
	for _, be := range box {
		for _, re := range rect {
			if segmentsCross(be[0], be[1], re[0], re[1]) {
				return true
			}
		}
	}
	return false
}

// rectsOverlap reports whether the two rectangles share positive area.
func rectsOverlap(l1, r1, b1, t1, l2, r2, b2, t2 float64) bool {
	return l1 < r2 && r1 > l2 && b1 < t2 && t1 > b2
}

// segmentsCross reports whether the open segments (p1, p2) and (q1, q2)
// cross at an interior point of both. Parallel segments never cross.
func segmentsCross(p1, p2, q1, q2 geom.Vec) bool {
	u := p2.Sub(p1)
	v := q2.Sub(q1)
	denom := u.X*v.Y - u.Y*v.X
	if math.Abs(denom) < geom.Eps {
		return false
	}
	w := q1.Sub(p1)
	s := (w.X*v.Y - w.Y*v.X) / denom
	t := (w.X*u.Y - w.Y*u.X) / denom
	return s > 0 && s < 1 && t > 0 && t < 1
}
