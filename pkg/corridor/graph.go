package corridor

import (
	"math"

	"drainroute/pkg/config"
	"drainroute/pkg/fault"
	"drainroute/pkg/geom"
	"drainroute/pkg/tabular"
)

// Catalog is the slice of the component catalog the corridor graph
// needs: outer wall diameters for clearance around entry points.
type Catalog interface {
	ExternalDiameter(diameter uint) (uint, error)
}

// Graph is the corridor graph. Node ids are assigned monotonically from
// 1 and never reused; Nodes preserves insertion order, which downstream
// enumeration depends on.
type Graph struct {
	catalog Catalog
	params  config.Parameters

	lastID uint
	Nodes  []*Node
	byID   map[uint]*Node

	destNode *Node
}

// NewGraph returns an empty graph.
func NewGraph(catalog Catalog, params config.Parameters) *Graph {
	return &Graph{
		catalog: catalog,
		params:  params,
		byID:    make(map[uint]*Node),
	}
}

// NodeByID returns the node with the given id, or nil.
func (g *Graph) NodeByID(id uint) *Node {
	return g.byID[id]
}

// DestinationNode returns the node the stack is attached to, or nil
// before attachment.
func (g *Graph) DestinationNode() *Node {
	return g.destNode
}

// AddNode adds a corridor rectangle and returns its id. The rectangle
// must be non-degenerate and must not share interior area with an
// existing node; shared borders are allowed.
func (g *Graph) AddNode(left, right, bottom, top float64) (uint, error) {
	if left >= right || bottom >= top {
		return 0, fault.Geometryf(
			"corridor rectangle (left: %g, right: %g, bottom: %g, top: %g) is degenerate",
			left, right, bottom, top)
	}
	candidate := &Node{Left: left, Right: right, Bottom: bottom, Top: top}
	for _, n := range g.Nodes {
		if n.OverlapsInterior(candidate) {
			return 0, fault.Geometryf(
				"corridor rectangle %s overlaps node %d %s",
				candidate.Position(), n.ID, n.Position())
		}
	}
	g.lastID++
	candidate.ID = g.lastID
	g.Nodes = append(g.Nodes, candidate)
	g.byID[candidate.ID] = candidate
	return candidate.ID, nil
}

// Load reads corridor rectangles from the location sheet. Row layout:
// left; right; bottom; top.
func (g *Graph) Load(path string) error {
	return tabular.ForEach(path, func(r *tabular.Row) error {
		left, err := r.TakeFloat("left")
		if err != nil {
			return err
		}
		right, err := r.TakeFloat("right")
		if err != nil {
			return err
		}
		bottom, err := r.TakeFloat("bottom")
		if err != nil {
			return err
		}
		top, err := r.TakeFloat("top")
		if err != nil {
			return err
		}
		_, err = g.AddNode(left, right, bottom, top)
		return err
	})
}

// ConnectLeftRight records adjacency between leftID and rightID where
// rightID's node sits to the right: the nodes must share the vertical
// border line and overlap on a segment of positive length.
func (g *Graph) ConnectLeftRight(leftID, rightID uint) error {
	left, right, err := g.connectable(leftID, rightID)
	if err != nil {
		return err
	}
	if left.Right != right.Left {
		return fault.Geometryf(
			"nodes %d and %d do not share a vertical border", leftID, rightID)
	}
	if math.Min(left.Top, right.Top) <= math.Max(left.Bottom, right.Bottom) {
		return fault.Geometryf(
			"nodes %d and %d share no vertical border of positive length", leftID, rightID)
	}
	left.RightNeighbors = append(left.RightNeighbors, right)
	right.LeftNeighbors = append(right.LeftNeighbors, left)
	return nil
}

// ConnectBottomTop records adjacency between bottomID and topID where
// topID's node sits above: the nodes must share the horizontal border
// line and overlap on a segment of positive length.
func (g *Graph) ConnectBottomTop(bottomID, topID uint) error {
	bottom, top, err := g.connectable(bottomID, topID)
	if err != nil {
		return err
	}
	if bottom.Top != top.Bottom {
		return fault.Geometryf(
			"nodes %d and %d do not share a horizontal border", bottomID, topID)
	}
	if math.Min(bottom.Right, top.Right) <= math.Max(bottom.Left, top.Left) {
		return fault.Geometryf(
			"nodes %d and %d share no horizontal border of positive length", bottomID, topID)
	}
	bottom.TopNeighbors = append(bottom.TopNeighbors, top)
	top.BottomNeighbors = append(top.BottomNeighbors, bottom)
	return nil
}

func (g *Graph) connectable(aID, bID uint) (*Node, *Node, error) {
	a := g.byID[aID]
	if a == nil {
		return nil, nil, fault.Geometryf("no corridor node with id %d", aID)
	}
	b := g.byID[bID]
	if b == nil {
		return nil, nil, fault.Geometryf("no corridor node with id %d", bID)
	}
	if aID == bID {
		return nil, nil, fault.Geometryf("node %d cannot neighbor itself", aID)
	}
	if contains(a.Adjacent(), b) {
		return nil, nil, fault.Geometryf("nodes %d and %d are already connected", aID, bID)
	}
	return a, b, nil
}

// AutoConnect derives all adjacency from geometry. It must run on a
// graph with no edges: every pair of nodes whose closed rectangles touch
// without sharing interior area gets connected along the touching side.
func (g *Graph) AutoConnect() error {
	for _, n := range g.Nodes {
		if len(n.Adjacent()) > 0 {
			return fault.Geometryf(
				"auto-connection requires a graph without edges; node %d already has neighbors", n.ID)
		}
	}
	for i, a := range g.Nodes {
		for _, b := range g.Nodes[i+1:] {
			if !a.Touches(b) || a.OverlapsInterior(b) {
				continue
			}
			verticalOverlap := math.Min(a.Top, b.Top) > math.Max(a.Bottom, b.Bottom)
			horizontalOverlap := math.Min(a.Right, b.Right) > math.Max(a.Left, b.Left)
			var err error
			switch {
			// A corner-only touch matches no case and stays unconnected.
			case a.Right == b.Left && verticalOverlap:
				err = g.ConnectLeftRight(a.ID, b.ID)
			case b.Right == a.Left && verticalOverlap:
				err = g.ConnectLeftRight(b.ID, a.ID)
			case a.Top == b.Bottom && horizontalOverlap:
				err = g.ConnectBottomTop(a.ID, b.ID)
			case b.Top == a.Bottom && horizontalOverlap:
				err = g.ConnectBottomTop(b.ID, a.ID)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// ClosestPoint returns the point of the corridor space nearest to p and
// the node holding it. The first node at minimum distance wins.
func (g *Graph) ClosestPoint(p geom.Vec) (geom.Vec, *Node) {
	var (
		best     geom.Vec
		bestNode *Node
		bestDist = math.Inf(1)
	)
	flat := geom.Flat(p)
	for _, n := range g.Nodes {
		candidate := n.ClosestPoint(flat)
		if d := geom.Dist(flat, candidate); d < bestDist {
			best, bestNode, bestDist = candidate, n, d
		}
	}
	return best, bestNode
}

// Clone deep-copies the graph. Nodes are fresh; adjacency, source
// entries and the destination reference are rewired onto the copies.
// Connection objects themselves stay shared, the graph does not own
// them.
func (g *Graph) Clone() *Graph {
	out := &Graph{
		catalog: g.catalog,
		params:  g.params,
		lastID:  g.lastID,
		byID:    make(map[uint]*Node, len(g.byID)),
	}
	copies := make(map[*Node]*Node, len(g.Nodes))
	for _, n := range g.Nodes {
		c := &Node{
			ID:          n.ID,
			Left:        n.Left,
			Right:       n.Right,
			Bottom:      n.Bottom,
			Top:         n.Top,
			Sources:     append([]SourceEntry(nil), n.Sources...),
			Destination: n.Destination,
		}
		copies[n] = c
		out.Nodes = append(out.Nodes, c)
		out.byID[c.ID] = c
	}
	rewire := func(nodes []*Node) []*Node {
		if nodes == nil {
			return nil
		}
		mapped := make([]*Node, len(nodes))
		for i, n := range nodes {
			mapped[i] = copies[n]
		}
		return mapped
	}
	for _, n := range g.Nodes {
		c := copies[n]
		c.LeftNeighbors = rewire(n.LeftNeighbors)
		c.RightNeighbors = rewire(n.RightNeighbors)
		c.BottomNeighbors = rewire(n.BottomNeighbors)
		c.TopNeighbors = rewire(n.TopNeighbors)
	}
	if g.destNode != nil {
		out.destNode = copies[g.destNode]
	}
	return out
}
