// Package corridor models the admissible pipe space of the plan as a
// graph of axis-aligned rectangles. Pipes may run only inside nodes;
// edges record which nodes share a border wide enough to route through.
package corridor

import (
	"fmt"

	"drainroute/pkg/connections"
	"drainroute/pkg/geom"
)

// SourceEntry is a water source attached to a node together with the
// point where its pipe enters the corridor.
type SourceEntry struct {
	Source *connections.Source
	Entry  geom.Vec
}

// Node is one axis-aligned corridor rectangle. Bounds satisfy
// Left < Right and Bottom < Top. Adjacency is directional and symmetric:
// b in a.RightNeighbors implies a in b.LeftNeighbors.
type Node struct {
	ID uint

	Left, Right, Bottom, Top float64

	LeftNeighbors   []*Node
	RightNeighbors  []*Node
	BottomNeighbors []*Node
	TopNeighbors    []*Node

	// Sources attached to this node with their entry points.
	Sources []SourceEntry

	// Destination is the attached stack, nil for all but one node.
	Destination *connections.Destination
}

// SizeX returns the node's horizontal extent.
func (n *Node) SizeX() float64 {
	return n.Right - n.Left
}

// SizeY returns the node's vertical extent.
func (n *Node) SizeY() float64 {
	return n.Top - n.Bottom
}

// Adjacent returns all neighbors in left, right, bottom, top order. The
// route builder depends on this order for deterministic enumeration.
func (n *Node) Adjacent() []*Node {
	out := make([]*Node, 0,
		len(n.LeftNeighbors)+len(n.RightNeighbors)+len(n.BottomNeighbors)+len(n.TopNeighbors))
	out = append(out, n.LeftNeighbors...)
	out = append(out, n.RightNeighbors...)
	out = append(out, n.BottomNeighbors...)
	out = append(out, n.TopNeighbors...)
	return out
}

// Position renders the node's bounds for messages.
func (n *Node) Position() string {
	return fmt.Sprintf("(left: %g, right: %g, bottom: %g, top: %g)",
		n.Left, n.Right, n.Bottom, n.Top)
}

// ClosestPoint returns the point of the node's closed rectangle nearest
// to p, in the Oxy plane. Z is dropped.
func (n *Node) ClosestPoint(p geom.Vec) geom.Vec {
	return geom.V(
		geom.Clamp(p.X, n.Left, n.Right),
		geom.Clamp(p.Y, n.Bottom, n.Top),
		0,
	)
}

// ContainsPoint reports whether p lies in the node's closed rectangle,
// ignoring Z.
func (n *Node) ContainsPoint(p geom.Vec) bool {
	return p.X >= n.Left && p.X <= n.Right && p.Y >= n.Bottom && p.Y <= n.Top
}

// ContainsRect reports whether the rectangle lies fully inside the node.
func (n *Node) ContainsRect(left, right, bottom, top float64) bool {
	return left >= n.Left && right <= n.Right && bottom >= n.Bottom && top <= n.Top
}

// Touches reports whether the closed rectangles of n and o intersect.
func (n *Node) Touches(o *Node) bool {
	return n.Left <= o.Right && n.Right >= o.Left && n.Bottom <= o.Top && n.Top >= o.Bottom
}

// OverlapsInterior reports whether n and o share interior area.
func (n *Node) OverlapsInterior(o *Node) bool {
	return n.Left < o.Right && n.Right > o.Left && n.Bottom < o.Top && n.Top > o.Bottom
}

func contains(nodes []*Node, target *Node) bool {
	for _, n := range nodes {
		if n == target {
			return true
		}
	}
	return false
}

func replace(nodes []*Node, old, new *Node) {
	for i, n := range nodes {
		if n == old {
			nodes[i] = new
		}
	}
}
