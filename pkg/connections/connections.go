// Package connections holds the water connection objects of the model:
// the sources feeding the trace and the single destination (stack) the
// whole trace drains into.
package connections

import (
	"strconv"
	"strings"

	"drainroute/pkg/fault"
	"drainroute/pkg/geom"
	"drainroute/pkg/tabular"
)

// Source is one water input. Point is the fixed 3D outlet; Diameter is
// the nominal connection diameter; SlopeSin overrides the configured
// minimum slope for this source's pipes when non-zero.
type Source struct {
	Name     string
	Point    geom.Vec
	Diameter uint
	SlopeSin float64
}

// Destination is the stack. Its pipe must arrive with clearance, so the
// attachment step checks the outer-wall footprint around Point.
type Destination struct {
	Name     string
	Point    geom.Vec
	Diameter uint
}

// Set holds the loaded connection objects: at least one source and
// exactly one destination.
type Set struct {
	Sources     []Source
	Destination Destination
}

// Load reads the connections sheet. Row layout:
// kind (source|stack); name; x; y; z; diameter; slopeSin.
func Load(path string) (*Set, error) {
	set := &Set{}
	haveDestination := false
	err := tabular.ForEach(path, func(r *tabular.Row) error {
		kind := strings.ToLower(r.TakeString())
		name := r.TakeString()
		if name == "" {
			return r.Failf("name", "connection name must not be empty")
		}
		x, err := r.TakeFloat("x")
		if err != nil {
			return err
		}
		y, err := r.TakeFloat("y")
		if err != nil {
			return err
		}
		z, err := r.TakeFloat("z")
		if err != nil {
			return err
		}
		diameter, err := r.TakeUint("diameter")
		if err != nil {
			return err
		}
		if diameter == 0 {
			return r.Failf("diameter", "diameter must be positive")
		}
		slopeField := r.TakeString()

		switch kind {
		case "source":
			var slopeSin float64
			if slopeField != "" {
				slopeSin, err = parseSlope(r, slopeField)
				if err != nil {
					return err
				}
			}
			set.Sources = append(set.Sources, Source{
				Name:     name,
				Point:    geom.V(x, y, z),
				Diameter: diameter,
				SlopeSin: slopeSin,
			})
		case "stack":
			if haveDestination {
				return r.Failf("kind", "more than one stack; %q is the second", name)
			}
			if slopeField != "" {
				return r.Failf("slopeSin", "a stack has no slope override")
			}
			haveDestination = true
			set.Destination = Destination{
				Name:     name,
				Point:    geom.V(x, y, z),
				Diameter: diameter,
			}
		default:
			return r.Failf("kind", "unknown connection kind %q", kind)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(set.Sources) == 0 {
		return nil, fault.Validationf("%s: no water sources", path)
	}
	if !haveDestination {
		return nil, fault.Validationf("%s: no stack", path)
	}
	return set, nil
}

func parseSlope(r *tabular.Row, field string) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, r.Failf("slopeSin", "expected a number, got %q", field)
	}
	if v < 0 || v >= 1 {
		return 0, r.Failf("slopeSin", "slope sine must be in [0, 1), got %g", v)
	}
	return v, nil
}
