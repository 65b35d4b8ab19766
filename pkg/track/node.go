// Package track holds the pipe track being built: the laid components,
// their placement, and the topology links that make the track a tree
// draining into the stack.
package track

import (
	"drainroute/pkg/catalog"
	"drainroute/pkg/geom"
)

// Node is one laid component. Start and End bound the component's base
// run; Center is its reference point. The direction vectors are unit
// length, zero when the slot is unused (a straight pipe has only
// BaseDir).
//
// Links point along the flow: Next is the downstream neighbor, the
// *Prev links are the upstream inlets by connection slot.
type Node struct {
	Object *catalog.Object

	Center geom.Vec
	Start  geom.Vec
	End    geom.Vec

	BaseDir   geom.Vec
	SecondDir geom.Vec
	ThirdDir  geom.Vec

	Next       *Node
	BasePrev   *Node
	SecondPrev *Node
	ThirdPrev  *Node
}

// Diameter returns the node's principal connection diameter.
func (n *Node) Diameter() uint {
	return n.Object.Diameter()
}

// Cost returns the node's cost: per-millimetre times run length for
// straight pipes, per-item for fittings.
func (n *Node) Cost() float64 {
	switch n.Object.Kind {
	case catalog.Direct, catalog.Fan:
		return n.Object.Cost * geom.Dist(n.Start, n.End)
	default:
		return n.Object.Cost
	}
}

// NearestCenterPoint2D returns the point of the node's center line
// nearest to p on the 2D plan. For straight runs this is the
// perpendicular projection of p onto the run, clamped to it; fittings
// answer with their center.
func (n *Node) NearestCenterPoint2D(p geom.Vec) geom.Vec {
	switch n.Object.Kind {
	case catalog.Direct, catalog.Fan, catalog.Reduction:
		return geom.ProjectOntoSegment2D(p, n.Start, n.End)
	default:
		return geom.Flat(n.Center)
	}
}

// IntersectsRect reports whether the node's outer-wall footprint on the
// 2D plan overlaps the rectangle with positive area. Touching does not
// count.
func (n *Node) IntersectsRect(left, right, bottom, top float64) bool {
	for _, run := range n.footprintRuns() {
		if runIntersectsRect(run.start, run.end, run.width, left, right, bottom, top) {
			return true
		}
	}
	return false
}

type footprintRun struct {
	start, end geom.Vec
	width      float64
}

// footprintRuns decomposes the component into extruded segments: the
// base run plus one segment per extra inlet arm.
func (n *Node) footprintRuns() []footprintRun {
	base := footprintRun{
		start: geom.Flat(n.Start),
		end:   geom.Flat(n.End),
		width: float64(n.Object.External(n.Diameter())),
	}
	runs := []footprintRun{base}

	arm := func(dir geom.Vec, length float64, diameter uint) {
		if length <= 0 || dir.Length() < geom.Eps {
			return
		}
		c := geom.Flat(n.Center)
		runs = append(runs, footprintRun{
			start: c,
			end:   c.Add(geom.Flat(dir).MulScalar(length)),
			width: float64(n.Object.External(diameter)),
		})
	}

	switch s := n.Object.Spec.(type) {
	case catalog.AngleSpec:
		arm(n.SecondDir, s.MLength, s.Diameter)
	case catalog.TeeSpec:
		arm(n.SecondDir, s.ExtraMLength, s.ExtraDiameter)
	case catalog.CrossSpec:
		arm(n.SecondDir, s.SecondMLength, s.SecondDiameter)
		arm(n.ThirdDir, s.ThirdMLength, s.ThirdDiameter)
	}
	return runs
}
