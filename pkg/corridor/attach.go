package corridor

import (
	"drainroute/pkg/connections"
	"drainroute/pkg/fault"
)

// Attach places every water connection object into the corridor. Each
// source gets an entry point: the corridor point nearest to its outlet,
// pushed off the node borders by the pipe's outer radius so the pipe
// wall stays inside the corridor. The stack requires full clearance
// around its point inside a single node.
//
// Attach must run once, before source separation.
func (g *Graph) Attach(set *connections.Set) error {
	if g.destNode != nil {
		return fault.Attachf("connection objects are already attached")
	}
	if len(g.Nodes) == 0 {
		return fault.Attachf("the corridor graph has no nodes")
	}

	for i := range set.Sources {
		src := &set.Sources[i]
		ext, err := g.catalog.ExternalDiameter(src.Diameter)
		if err != nil {
			return err
		}
		r := float64(ext) / 2

		entry, node := g.ClosestPoint(src.Point)
		if entry.X == node.Left {
			entry.X += r
		} else if entry.X == node.Right {
			entry.X -= r
		}
		if entry.Y == node.Bottom {
			entry.Y += r
		} else if entry.Y == node.Top {
			entry.Y -= r
		}
		node.Sources = append(node.Sources, SourceEntry{Source: src, Entry: entry})
	}

	dest := &set.Destination
	ext, err := g.catalog.ExternalDiameter(dest.Diameter)
	if err != nil {
		return err
	}
	r := float64(ext) / 2
	_, node := g.ClosestPoint(dest.Point)
	if !node.ContainsRect(dest.Point.X-r, dest.Point.X+r, dest.Point.Y-r, dest.Point.Y+r) {
		return fault.Attachf(
			"stack %q needs %g mm of clearance around (%g, %g), which node %d %s cannot provide",
			dest.Name, r, dest.Point.X, dest.Point.Y, node.ID, node.Position())
	}
	node.Destination = dest
	g.destNode = node
	return nil
}
