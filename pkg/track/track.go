package track

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"drainroute/pkg/catalog"
	"drainroute/pkg/geom"
	"drainroute/pkg/view"
)

// Track is the collection of laid components. Nodes preserves insertion
// order; the per-node links carry the flow topology.
type Track struct {
	sink  view.Sink
	Nodes []*Node
}

// New returns an empty track.
func New(sink view.Sink) *Track {
	return &Track{sink: sink}
}

// NewNode lays a component and returns its node. Direction vectors are
// normalized; zero vectors stay zero.
func (t *Track) NewNode(obj *catalog.Object, center, start, end, baseDir, secondDir, thirdDir geom.Vec) *Node {
	n := &Node{
		Object:    obj,
		Center:    center,
		Start:     start,
		End:       end,
		BaseDir:   normalizeOrZero(baseDir),
		SecondDir: normalizeOrZero(secondDir),
		ThirdDir:  normalizeOrZero(thirdDir),
	}
	t.Nodes = append(t.Nodes, n)
	return n
}

// AppendDirect lays a straight pipe between start and end.
func (t *Track) AppendDirect(obj *catalog.Object, start, end geom.Vec) *Node {
	center := start.Add(end).DivScalar(2)
	return t.NewNode(obj, center, start, end, end.Sub(start), geom.Vec{}, geom.Vec{})
}

// Remove unlays a node: it leaves the node list and every link to it is
// cleared.
func (t *Track) Remove(n *Node) {
	kept := t.Nodes[:0]
	for _, m := range t.Nodes {
		if m == n {
			continue
		}
		if m.Next == n {
			m.Next = nil
		}
		if m.BasePrev == n {
			m.BasePrev = nil
		}
		if m.SecondPrev == n {
			m.SecondPrev = nil
		}
		if m.ThirdPrev == n {
			m.ThirdPrev = nil
		}
		kept = append(kept, m)
	}
	t.Nodes = kept
	n.Next, n.BasePrev, n.SecondPrev, n.ThirdPrev = nil, nil, nil, nil
}

// Cost returns the total cost of the laid components.
func (t *Track) Cost() float64 {
	var total float64
	for _, n := range t.Nodes {
		total += n.Cost()
	}
	return total
}

// Clone deep-copies the track. Nodes are fresh with links rewired onto
// the copies; catalog objects stay shared.
func (t *Track) Clone() *Track {
	out := &Track{sink: t.sink}
	copies := make(map[*Node]*Node, len(t.Nodes))
	for _, n := range t.Nodes {
		c := &Node{}
		*c = *n
		copies[n] = c
		out.Nodes = append(out.Nodes, c)
	}
	remap := func(n *Node) *Node {
		if n == nil {
			return nil
		}
		return copies[n]
	}
	for _, c := range out.Nodes {
		c.Next = remap(c.Next)
		c.BasePrev = remap(c.BasePrev)
		c.SecondPrev = remap(c.SecondPrev)
		c.ThirdPrev = remap(c.ThirdPrev)
	}
	return out
}

// Print2D writes an aligned table of the laid runs to the sink.
func (t *Track) Print2D() {
	t.sink.Info(fmt.Sprintf("%-28s %-28s %10s %9s", "start", "end", "length", "diameter"))
	for _, n := range t.Nodes {
		t.sink.Info(fmt.Sprintf("%-28s %-28s %10.1f %9d",
			fmt.Sprintf("(%g, %g)", n.Start.X, n.Start.Y),
			fmt.Sprintf("(%g, %g)", n.End.X, n.End.Y),
			geom.Dist(n.Start, n.End),
			n.Diameter()))
	}
	t.sink.Info(fmt.Sprintf("total cost: %.2f", t.Cost()))
}

// Write2D emits the plan in the plotting format: a header line with the
// node count, then one line per node with start, end and diameter.
// Straight pipes report their diameter, everything else reports 1.
func (t *Track) Write2D(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d 0\n", len(t.Nodes)); err != nil {
		return err
	}
	for _, n := range t.Nodes {
		d := uint(1)
		if n.Object.Kind == catalog.Direct {
			d = n.Diameter()
		}
		_, err := fmt.Fprintf(w, "%s %s %s %s %d\n",
			ftoa(n.Start.X), ftoa(n.Start.Y), ftoa(n.End.X), ftoa(n.End.Y), d)
		if err != nil {
			return err
		}
	}
	return nil
}

// Write2DFile writes the plan format to a file.
func (t *Track) Write2DFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := t.Write2D(f); err != nil {
		return err
	}
	return f.Close()
}

const svgMargin = 50

// WriteSVG renders the plan as SVG, one line per run with the stroke
// width matching the pipe's outer diameter. The Y axis is flipped into
// screen coordinates.
func (t *Track) WriteSVG(w io.Writer) error {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range t.Nodes {
		for _, p := range []geom.Vec{n.Start, n.End} {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if len(t.Nodes) == 0 {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}

	width := int(maxX-minX) + 2*svgMargin
	height := int(maxY-minY) + 2*svgMargin
	tx := func(x float64) int { return int(x-minX) + svgMargin }
	ty := func(y float64) int { return height - (int(y-minY) + svgMargin) }

	canvas := svg.New(w)
	canvas.Start(width, height)
	for _, n := range t.Nodes {
		ext := n.Object.External(n.Diameter())
		canvas.Line(tx(n.Start.X), ty(n.Start.Y), tx(n.End.X), ty(n.End.Y),
			fmt.Sprintf("stroke:black;stroke-width:%d;stroke-linecap:round;stroke-opacity:0.6", ext))
	}
	canvas.End()
	return nil
}

// WriteSVGFile renders the plan SVG to a file.
func (t *Track) WriteSVGFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := t.WriteSVG(f); err != nil {
		return err
	}
	return f.Close()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func normalizeOrZero(v geom.Vec) geom.Vec {
	if v.Length() < geom.Eps {
		return geom.Vec{}
	}
	return v.Normalize()
}
