package corridor

import "sort"

// SeparateSources splits corridor nodes that hold several source entry
// points, so that each source later gets its own room to route. A node
// is cut midway between two adjacent entry coordinates when the entries
// are far enough apart, the cut is short enough, and the cut does not
// run through the stack's clearance box. Vertical cuts are preferred
// over horizontal ones. The loop restarts after every split and stops at
// a fixpoint.
func (g *Graph) SeparateSources() error {
	for {
		split, err := g.separateOnce()
		if err != nil {
			return err
		}
		if !split {
			return nil
		}
	}
}

func (g *Graph) separateOnce() (bool, error) {
	for _, n := range g.Nodes {
		if len(n.Sources) < 2 {
			continue
		}
		xs, ys := entryCoordinates(n.Sources)

		if len(xs) >= 2 && n.SizeY() <= g.params.MaxNodeWidthToSeparate {
			for i := 1; i < len(xs); i++ {
				if xs[i]-xs[i-1] < g.params.MinSourceDistanceToSeparate {
					continue
				}
				sep := (xs[i-1] + xs[i]) / 2
				ok, err := g.cutClearsDestination(n, sep, true)
				if err != nil {
					return false, err
				}
				if !ok {
					continue
				}
				g.splitX(n, sep)
				return true, nil
			}
		}

		if len(ys) >= 2 && n.SizeX() <= g.params.MaxNodeWidthToSeparate {
			for i := 1; i < len(ys); i++ {
				if ys[i]-ys[i-1] < g.params.MinSourceDistanceToSeparate {
					continue
				}
				sep := (ys[i-1] + ys[i]) / 2
				ok, err := g.cutClearsDestination(n, sep, false)
				if err != nil {
					return false, err
				}
				if !ok {
					continue
				}
				g.splitY(n, sep)
				return true, nil
			}
		}
	}
	return false, nil
}

// entryCoordinates returns the sorted distinct entry point coordinates
// of the node's sources, per axis.
func entryCoordinates(sources []SourceEntry) (xs, ys []float64) {
	seenX := make(map[float64]bool)
	seenY := make(map[float64]bool)
	for _, s := range sources {
		if !seenX[s.Entry.X] {
			seenX[s.Entry.X] = true
			xs = append(xs, s.Entry.X)
		}
		if !seenY[s.Entry.Y] {
			seenY[s.Entry.Y] = true
			ys = append(ys, s.Entry.Y)
		}
	}
	sort.Float64s(xs)
	sort.Float64s(ys)
	return xs, ys
}

// cutClearsDestination reports whether a cut at sep keeps the stack's
// clearance box whole. Nodes without the stack always clear.
func (g *Graph) cutClearsDestination(n *Node, sep float64, vertical bool) (bool, error) {
	if n.Destination == nil {
		return true, nil
	}
	ext, err := g.catalog.ExternalDiameter(n.Destination.Diameter)
	if err != nil {
		return false, err
	}
	r := float64(ext) / 2
	center := n.Destination.Point.X
	if !vertical {
		center = n.Destination.Point.Y
	}
	return sep <= center-r || sep >= center+r, nil
}

// splitX cuts n at the vertical line x = sep. n keeps the left half; a
// new node takes the right half. Adjacency stays symmetric: a neighbor
// straddling the cut ends up adjacent to both halves.
func (g *Graph) splitX(n *Node, sep float64) {
	g.lastID++
	fresh := &Node{
		ID:     g.lastID,
		Left:   sep,
		Right:  n.Right,
		Bottom: n.Bottom,
		Top:    n.Top,
	}
	g.Nodes = append(g.Nodes, fresh)
	g.byID[fresh.ID] = fresh

	// Right-side neighbors move wholesale to the new half.
	fresh.RightNeighbors = n.RightNeighbors
	n.RightNeighbors = nil
	for _, nb := range fresh.RightNeighbors {
		replace(nb.LeftNeighbors, n, fresh)
	}

	var keptBottom []*Node
	for _, nb := range n.BottomNeighbors {
		overlapsOld := nb.Left < sep
		overlapsFresh := nb.Right > sep
		if overlapsOld {
			keptBottom = append(keptBottom, nb)
		}
		if overlapsFresh {
			fresh.BottomNeighbors = append(fresh.BottomNeighbors, nb)
			if overlapsOld {
				nb.TopNeighbors = append(nb.TopNeighbors, fresh)
			} else {
				replace(nb.TopNeighbors, n, fresh)
			}
		}
	}
	n.BottomNeighbors = keptBottom

	var keptTop []*Node
	for _, nb := range n.TopNeighbors {
		overlapsOld := nb.Left < sep
		overlapsFresh := nb.Right > sep
		if overlapsOld {
			keptTop = append(keptTop, nb)
		}
		if overlapsFresh {
			fresh.TopNeighbors = append(fresh.TopNeighbors, nb)
			if overlapsOld {
				nb.BottomNeighbors = append(nb.BottomNeighbors, fresh)
			} else {
				replace(nb.BottomNeighbors, n, fresh)
			}
		}
	}
	n.TopNeighbors = keptTop

	kept := n.Sources[:0]
	for _, s := range n.Sources {
		if s.Entry.X > sep {
			fresh.Sources = append(fresh.Sources, s)
		} else {
			kept = append(kept, s)
		}
	}
	n.Sources = kept

	if n.Destination != nil && n.Destination.Point.X > sep {
		fresh.Destination = n.Destination
		n.Destination = nil
		g.destNode = fresh
	}

	n.Right = sep
	n.RightNeighbors = []*Node{fresh}
	fresh.LeftNeighbors = []*Node{n}
}

// splitY cuts n at the horizontal line y = sep. n keeps the bottom half;
// a new node takes the top half.
func (g *Graph) splitY(n *Node, sep float64) {
	g.lastID++
	fresh := &Node{
		ID:     g.lastID,
		Left:   n.Left,
		Right:  n.Right,
		Bottom: sep,
		Top:    n.Top,
	}
	g.Nodes = append(g.Nodes, fresh)
	g.byID[fresh.ID] = fresh

	fresh.TopNeighbors = n.TopNeighbors
	n.TopNeighbors = nil
	for _, nb := range fresh.TopNeighbors {
		replace(nb.BottomNeighbors, n, fresh)
	}

	var keptLeft []*Node
	for _, nb := range n.LeftNeighbors {
		overlapsOld := nb.Bottom < sep
		overlapsFresh := nb.Top > sep
		if overlapsOld {
			keptLeft = append(keptLeft, nb)
		}
		if overlapsFresh {
			fresh.LeftNeighbors = append(fresh.LeftNeighbors, nb)
			if overlapsOld {
				nb.RightNeighbors = append(nb.RightNeighbors, fresh)
			} else {
				replace(nb.RightNeighbors, n, fresh)
			}
		}
	}
	n.LeftNeighbors = keptLeft

	var keptRight []*Node
	for _, nb := range n.RightNeighbors {
		overlapsOld := nb.Bottom < sep
		overlapsFresh := nb.Top > sep
		if overlapsOld {
			keptRight = append(keptRight, nb)
		}
		if overlapsFresh {
			fresh.RightNeighbors = append(fresh.RightNeighbors, nb)
			if overlapsOld {
				nb.LeftNeighbors = append(nb.LeftNeighbors, fresh)
			} else {
				replace(nb.LeftNeighbors, n, fresh)
			}
		}
	}
	n.RightNeighbors = keptRight

	kept := n.Sources[:0]
	for _, s := range n.Sources {
		if s.Entry.Y > sep {
			fresh.Sources = append(fresh.Sources, s)
		} else {
			kept = append(kept, s)
		}
	}
	n.Sources = kept

	if n.Destination != nil && n.Destination.Point.Y > sep {
		fresh.Destination = n.Destination
		n.Destination = nil
		g.destNode = fresh
	}

	n.Top = sep
	n.TopNeighbors = []*Node{fresh}
	fresh.BottomNeighbors = []*Node{n}
}
