// Package route builds the drainage trace: it connects every water
// source to the growing pipe track with the cheapest clearance-respecting
// polyline through the corridor graph.
package route

import (
	"fmt"
	"math"
	"sort"

	"drainroute/pkg/catalog"
	"drainroute/pkg/config"
	"drainroute/pkg/connections"
	"drainroute/pkg/corridor"
	"drainroute/pkg/decision"
	"drainroute/pkg/fault"
	"drainroute/pkg/geom"
	"drainroute/pkg/track"
	"drainroute/pkg/view"
)

// Finder runs the routing pipeline over a prepared corridor graph.
type Finder struct {
	cfg    config.Config
	set    *connections.Set
	bag    *catalog.Bag
	graph  *corridor.Graph
	sink   view.Sink
	oracle *decision.Maker
}

// NewFinder wires the pipeline inputs together.
func NewFinder(cfg config.Config, set *connections.Set, bag *catalog.Bag,
	graph *corridor.Graph, sink view.Sink, oracle *decision.Maker) *Finder {
	return &Finder{
		cfg:    cfg,
		set:    set,
		bag:    bag,
		graph:  graph,
		sink:   sink,
		oracle: oracle,
	}
}

// ComputeTrack attaches the connection objects, separates crowded
// corridor nodes, and routes the sources one by one, widest connection
// first. Each source commits the shortest feasible polyline before the
// next source is considered.
func (f *Finder) ComputeTrack() (*track.Track, error) {
	f.sink.Info("attaching water connections to the corridor")
	if err := f.graph.Attach(f.set); err != nil {
		return nil, err
	}
	f.sink.Info("separating corridor nodes with several sources")
	if err := f.graph.SeparateSources(); err != nil {
		return nil, err
	}

	sources := make([]*connections.Source, len(f.set.Sources))
	for i := range f.set.Sources {
		sources[i] = &f.set.Sources[i]
	}
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Diameter > sources[j].Diameter
	})

	t := track.New(f.sink)
	for _, src := range sources {
		f.sink.Info(fmt.Sprintf("routing source %q (diameter %d)", src.Name, src.Diameter))
		if err := f.connectSource(t, src); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// candidate is one feasible way to land a source: the polyline from the
// entry point to the landing point, and the track node it lands on (nil
// when it lands on the stack).
type candidate struct {
	points []geom.Vec
	end    *track.Node
	length float64
}

func (f *Finder) connectSource(t *track.Track, src *connections.Source) error {
	// Which laid components protrude into which corridor nodes. The
	// track may cross nodes far from where it was committed, so the
	// full product is checked.
	trackForLoc := make(map[*corridor.Node][]*track.Node)
	for _, ln := range f.graph.Nodes {
		for _, tn := range t.Nodes {
			if tn.IntersectsRect(ln.Left, ln.Right, ln.Bottom, ln.Top) {
				trackForLoc[ln] = append(trackForLoc[ln], tn)
			}
		}
	}

	var (
		sourceNode *corridor.Node
		entry      geom.Vec
	)
	for _, ln := range f.graph.Nodes {
		for _, se := range ln.Sources {
			if se.Source == src {
				sourceNode, entry = ln, se.Entry
			}
		}
	}
	if sourceNode == nil {
		return fault.Routingf("source %q is not attached to the corridor", src.Name)
	}

	ext, err := f.bag.ExternalDiameter(src.Diameter)
	if err != nil {
		return err
	}
	r := float64(ext) / 2

	paths := f.enumeratePaths(sourceNode, trackForLoc)

	var cands []candidate
	for _, path := range paths {
		points, end := f.polylineForPath(path, entry, r, trackForLoc)
		length := math.Inf(1)
		if len(points) > 0 {
			length = geom.PolylineLength(points)
		}
		cands = append(cands, candidate{points: points, end: end, length: length})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].length < cands[j].length })

	feasible := cands[:0]
	for _, c := range cands {
		if len(c.points) > 0 {
			feasible = append(feasible, c)
		}
	}
	if len(feasible) == 0 {
		return fault.Routingf(
			"cannot route source %q: no feasible polyline reaches the track or the stack", src.Name)
	}

	best := feasible[0]
	ties := 1
	for ties < len(feasible) && feasible[ties].length-best.length < geom.Eps {
		ties++
	}
	if ties > 1 {
		alts := make([]decision.Alternative, ties)
		for i := 0; i < ties; i++ {
			alts[i] = decision.Alternative{
				ID:          uint(i + 1),
				Description: fmt.Sprintf("polyline %d (length %.1f mm)", i+1, feasible[i].length),
			}
		}
		chosen := f.oracle.Choose(
			fmt.Sprintf("several shortest polylines for source %q", src.Name), alts)
		best = feasible[chosen-1]
	}

	return f.commit(t, src, best)
}

// enumeratePaths walks all simple corridor paths from the source node
// and records every prefix whose last node can land the route: it holds
// laid components or it is the stack's node. Recording does not stop the
// walk, longer paths through the same node stay candidates.
func (f *Finder) enumeratePaths(sourceNode *corridor.Node, trackForLoc map[*corridor.Node][]*track.Node) [][]*corridor.Node {
	dest := f.graph.DestinationNode()

	var paths [][]*corridor.Node
	visited := make(map[*corridor.Node]bool)
	var prefix []*corridor.Node

	var walk func(n *corridor.Node)
	walk = func(n *corridor.Node) {
		visited[n] = true
		prefix = append(prefix, n)
		if len(trackForLoc[n]) > 0 || n == dest {
			paths = append(paths, append([]*corridor.Node(nil), prefix...))
		}
		for _, nb := range n.Adjacent() {
			if !visited[nb] {
				walk(nb)
			}
		}
		prefix = prefix[:len(prefix)-1]
		visited[n] = false
	}
	walk(sourceNode)
	return paths
}

// polylineForPath lays a zigzag along the corridor path: starting at the
// source's entry point, it crosses every border at the nearest point the
// clearance allows and finally lands on the nearest laid run or the
// stack inside the last node. An empty result means the path is
// infeasible for this clearance.
func (f *Finder) polylineForPath(path []*corridor.Node, entry geom.Vec, r float64,
	trackForLoc map[*corridor.Node][]*track.Node) ([]geom.Vec, *track.Node) {

	points := []geom.Vec{entry}
	cur := entry
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		var next geom.Vec
		switch {
		case containsNode(a.LeftNeighbors, b):
			lo, hi := math.Max(a.Bottom, b.Bottom), math.Min(a.Top, b.Top)
			if hi-lo < 2*r {
				return nil, nil
			}
			next = geom.V(a.Left-r, geom.Clamp(cur.Y, lo+r, hi-r), 0)
		case containsNode(a.RightNeighbors, b):
			lo, hi := math.Max(a.Bottom, b.Bottom), math.Min(a.Top, b.Top)
			if hi-lo < 2*r {
				return nil, nil
			}
			next = geom.V(a.Right+r, geom.Clamp(cur.Y, lo+r, hi-r), 0)
		case containsNode(a.BottomNeighbors, b):
			lo, hi := math.Max(a.Left, b.Left), math.Min(a.Right, b.Right)
			if hi-lo < 2*r {
				return nil, nil
			}
			next = geom.V(geom.Clamp(cur.X, lo+r, hi-r), a.Bottom-r, 0)
		case containsNode(a.TopNeighbors, b):
			lo, hi := math.Max(a.Left, b.Left), math.Min(a.Right, b.Right)
			if hi-lo < 2*r {
				return nil, nil
			}
			next = geom.V(geom.Clamp(cur.X, lo+r, hi-r), a.Top+r, 0)
		default:
			return nil, nil
		}
		points = append(points, next)
		cur = next
	}

	tail := path[len(path)-1]
	bestDist := math.Inf(1)
	var (
		endPoint geom.Vec
		endNode  *track.Node
		found    bool
	)
	for _, tn := range trackForLoc[tail] {
		if tn.Object.Kind != catalog.Direct && tn.Object.Kind != catalog.Fan {
			continue
		}
		p := tn.NearestCenterPoint2D(cur)
		if !tail.ContainsPoint(p) {
			continue
		}
		if d := geom.Dist(cur, p); d < bestDist {
			bestDist, endPoint, endNode, found = d, p, tn, true
		}
	}
	if tail.Destination != nil {
		p := geom.Flat(tail.Destination.Point)
		if d := geom.Dist(cur, p); d < bestDist {
			endPoint, endNode, found = p, nil, true
		}
	}
	if !found {
		return nil, nil
	}
	return append(points, endPoint), endNode
}

// commit lays the chosen polyline as a chain of straight pipes of the
// source's diameter, starting at the source's outlet projected onto the
// plan. A zero-length leading segment is skipped.
func (f *Finder) commit(t *track.Track, src *connections.Source, c candidate) error {
	obj, err := f.bag.DirectPipe(src.Diameter)
	if err != nil {
		return err
	}
	prev := geom.Flat(src.Point)
	var prevNode *track.Node
	for _, p := range c.points {
		if geom.Eq(prev, p) {
			continue
		}
		n := t.AppendDirect(obj, prev, p)
		if prevNode != nil {
			prevNode.Next = n
			n.BasePrev = prevNode
		}
		prev, prevNode = p, n
	}
	if prevNode != nil && c.end != nil {
		prevNode.Next = c.end
	}
	return nil
}

func containsNode(nodes []*corridor.Node, target *corridor.Node) bool {
	for _, n := range nodes {
		if n == target {
			return true
		}
	}
	return false
}
