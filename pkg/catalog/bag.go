package catalog

import (
	"math"
	"sort"
	"strings"

	"drainroute/pkg/config"
	"drainroute/pkg/fault"
	"drainroute/pkg/tabular"
)

// Bag holds the loaded catalog, indexed the way the route builder asks
// for it: straight pipes by diameter, fittings grouped and sorted per
// principal diameter.
type Bag struct {
	cfg config.Config

	diameters []uint // ascending
	ext       ExternalDiameters

	direct     map[uint]*Object
	fan        map[uint]*Object
	reductions map[uint][]*Object // by f-diameter, ascending m-diameter
	angles     map[uint][]*Object // by diameter, ascending angle
	tees       map[uint][]*Object // by base diameter, ascending extra diameter
	crosses    map[uint][]*Object // by base diameter, ascending second diameter
}

// NewBag returns an empty bag. The configuration feeds the projected
// angle precomputation for angle fittings.
func NewBag(cfg config.Config) *Bag {
	return &Bag{
		cfg:        cfg,
		ext:        make(ExternalDiameters),
		direct:     make(map[uint]*Object),
		fan:        make(map[uint]*Object),
		reductions: make(map[uint][]*Object),
		angles:     make(map[uint][]*Object),
		tees:       make(map[uint][]*Object),
		crosses:    make(map[uint][]*Object),
	}
}

// Load reads the external diameter sheet and the materials sheet, then
// verifies every catalog diameter has an external diameter. On error the
// bag state is unspecified.
func (b *Bag) Load(externalDiametersPath, materialsPath string) error {
	if err := b.loadExternalDiameters(externalDiametersPath); err != nil {
		return err
	}
	if err := b.loadObjects(materialsPath); err != nil {
		return err
	}
	for _, d := range b.diameters {
		if _, ok := b.ext[d]; !ok {
			return fault.Validationf(
				"no external diameter for diameter %d, which the materials sheet uses", d)
		}
	}
	return nil
}

// Diameters returns the available diameters in ascending order.
func (b *Bag) Diameters() []uint {
	return b.diameters
}

// ExternalDiameter returns the outer wall diameter for a nominal
// connection diameter.
func (b *Bag) ExternalDiameter(diameter uint) (uint, error) {
	ext, ok := b.ext[diameter]
	if !ok {
		return 0, fault.Validationf("no external diameter for diameter %d", diameter)
	}
	return ext, nil
}

// DirectPipe returns the straight pipe of the given diameter.
func (b *Bag) DirectPipe(diameter uint) (*Object, error) {
	o, ok := b.direct[diameter]
	if !ok {
		return nil, fault.Validationf("no direct pipe of diameter %d in the catalog", diameter)
	}
	return o, nil
}

// FanPipe returns the fan pipe of the given diameter, or nil.
func (b *Bag) FanPipe(diameter uint) *Object {
	return b.fan[diameter]
}

// Reductions returns the reductions with the given wide-side diameter,
// ascending by narrow-side diameter. Nil when none exist.
func (b *Bag) Reductions(fDiameter uint) []*Object {
	return b.reductions[fDiameter]
}

// Angles returns the angle fittings of the given diameter, ascending by
// bend angle. Nil when none exist.
func (b *Bag) Angles(diameter uint) []*Object {
	return b.angles[diameter]
}

// Tees returns the tees with the given base diameter, ascending by extra
// inlet diameter. Nil when none exist.
func (b *Bag) Tees(baseDiameter uint) []*Object {
	return b.tees[baseDiameter]
}

// Crosses returns the crosses with the given base diameter, ascending by
// second inlet diameter. Nil when none exist.
func (b *Bag) Crosses(baseDiameter uint) []*Object {
	return b.crosses[baseDiameter]
}

func (b *Bag) loadExternalDiameters(path string) error {
	return tabular.ForEach(path, func(r *tabular.Row) error {
		diameter, err := r.TakeUint("diameter")
		if err != nil {
			return err
		}
		external, err := r.TakeUint("externalDiameter")
		if err != nil {
			return err
		}
		if external < diameter {
			return r.Failf("externalDiameter",
				"external diameter %d is smaller than diameter %d", external, diameter)
		}
		b.ext[diameter] = external
		return nil
	})
}

// materials sheet layout:
// type; id; name; d1; d2; d3; angle; L1; L2; L3; L4; crossType; reductionAlignment; cost
func (b *Bag) loadObjects(path string) error {
	used := make(map[uint]bool)

	err := tabular.ForEach(path, func(r *tabular.Row) error {
		kind, err := parseKind(r)
		if err != nil {
			return err
		}

		id, err := r.TakeUint("id")
		if err != nil {
			return err
		}
		name := r.TakeString()

		d1, err := r.TakeUint("diameter1")
		if err != nil {
			return err
		}
		if d1 < 1 {
			return r.Failf("diameter1", "diameter 1 must be positive")
		}

		d2field := kind == Reduction || kind == Tee || kind == Cross
		d2, err := takeIf(r, d2field, "diameter2")
		if err != nil {
			return err
		}
		if d2field {
			if d2 < 1 {
				return r.Failf("diameter2", "diameter 2 must be positive")
			}
			if kind == Reduction && d2 >= d1 {
				return r.Failf("diameter2", "a reduction's diameter 2 must be smaller than diameter 1")
			}
			if kind != Reduction && d2 > d1 {
				return r.Failf("diameter2", "a tee's or cross's diameter 2 must not exceed diameter 1")
			}
		}

		d3, err := takeIf(r, kind == Cross, "diameter3")
		if err != nil {
			return err
		}
		if kind == Cross && d3 < 1 {
			return r.Failf("diameter3", "diameter 3 must be positive")
		}

		angleField := kind == Angle || kind == Tee || kind == Cross
		angle, err := takeIf(r, angleField, "angle")
		if err != nil {
			return err
		}
		if angleField && (angle < 1 || angle > 90) {
			return r.Failf("angle", "angle must be in [1, 90] degrees, got %d", angle)
		}

		l1, err := takeIf(r, kind != Direct && kind != Fan, "length1")
		if err != nil {
			return err
		}
		if kind != Direct && kind != Fan && l1 < 1 {
			return r.Failf("length1", "length 1 must be positive")
		}

		l2, err := takeIf(r, angleField, "length2")
		if err != nil {
			return err
		}
		if angleField && l2 < 1 {
			return r.Failf("length2", "length 2 must be positive")
		}

		l3, err := takeIf(r, kind == Tee || kind == Cross, "length3")
		if err != nil {
			return err
		}
		if (kind == Tee || kind == Cross) && l3 < 1 {
			return r.Failf("length3", "length 3 must be positive")
		}

		l4, err := takeIf(r, kind == Cross, "length4")
		if err != nil {
			return err
		}
		if kind == Cross && l4 < 1 {
			return r.Failf("length4", "length 4 must be positive")
		}

		crossTypeStr := strings.ToLower(r.TakeString())
		var crossType CrossType
		if kind == Cross {
			switch crossTypeStr {
			case "left":
				crossType = CrossLeft
			case "right":
				crossType = CrossRight
			case "":
				crossType = CrossUsual
			default:
				return r.Failf("crossType", "unknown cross type %q", crossTypeStr)
			}
		}

		alignmentStr := strings.ToLower(r.TakeString())
		var alignment ReductionAlignment
		if kind == Reduction {
			switch alignmentStr {
			case "center":
				alignment = AlignCenter
			case "edge":
				alignment = AlignEdge
			default:
				return r.Failf("reductionAlignment", "unknown reduction alignment %q", alignmentStr)
			}
		}

		cost, err := r.TakeFloat("cost")
		if err != nil {
			return err
		}

		obj := &Object{Kind: kind, ID: int(id), Name: name, Cost: cost, Ext: b.ext}
		switch kind {
		case Direct:
			used[d1] = true
			obj.Spec = DirectSpec{Diameter: d1}
			b.direct[d1] = obj
		case Fan:
			used[d1] = true
			obj.Spec = FanSpec{Diameter: d1}
			b.fan[d1] = obj
		case Reduction:
			used[d1], used[d2] = true, true
			obj.Spec = ReductionSpec{
				FDiameter: d1, MDiameter: d2,
				Length: float64(l1), Alignment: alignment,
			}
			b.reductions[d1] = append(b.reductions[d1], obj)
		case Angle:
			used[d1] = true
			spec := AngleSpec{
				Diameter: d1, Angle: angle,
				FLength: float64(l1), MLength: float64(l2),
			}
			spec.ProjectedAngle, spec.ProjectedAngleSin, spec.ProjectedAngleCos =
				projectAngle(angle, b.cfg.MinSlopeAngleSin)
			obj.Spec = spec
			b.angles[d1] = append(b.angles[d1], obj)
		case Tee:
			used[d1], used[d2] = true, true
			obj.Spec = TeeSpec{
				BaseDiameter: d1, ExtraDiameter: d2, Angle: angle,
				FLength: float64(l1), BaseMLength: float64(l2), ExtraMLength: float64(l3),
			}
			b.tees[d1] = append(b.tees[d1], obj)
		case Cross:
			used[d1], used[d2], used[d3] = true, true, true
			obj.Spec = CrossSpec{
				BaseDiameter: d1, SecondDiameter: d2, ThirdDiameter: d3,
				Type: crossType, Angle: angle,
				FLength: float64(l1), BaseMLength: float64(l2),
				SecondMLength: float64(l3), ThirdMLength: float64(l4),
			}
			b.crosses[d1] = append(b.crosses[d1], obj)
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.diameters = b.diameters[:0]
	for d := range used {
		b.diameters = append(b.diameters, d)
	}
	sort.Slice(b.diameters, func(i, j int) bool { return b.diameters[i] < b.diameters[j] })

	for _, objs := range b.reductions {
		sort.SliceStable(objs, func(i, j int) bool {
			return objs[i].Spec.(ReductionSpec).MDiameter < objs[j].Spec.(ReductionSpec).MDiameter
		})
	}
	for _, objs := range b.angles {
		sort.SliceStable(objs, func(i, j int) bool {
			return objs[i].Spec.(AngleSpec).Angle < objs[j].Spec.(AngleSpec).Angle
		})
	}
	for _, objs := range b.tees {
		sort.SliceStable(objs, func(i, j int) bool {
			return objs[i].Spec.(TeeSpec).ExtraDiameter < objs[j].Spec.(TeeSpec).ExtraDiameter
		})
	}
	for _, objs := range b.crosses {
		sort.SliceStable(objs, func(i, j int) bool {
			return objs[i].Spec.(CrossSpec).SecondDiameter < objs[j].Spec.(CrossSpec).SecondDiameter
		})
	}
	return nil
}

func parseKind(r *tabular.Row) (Kind, error) {
	s := strings.ToLower(r.TakeString())
	switch s {
	case "pipe":
		return Direct, nil
	case "fan pipe":
		return Fan, nil
	case "reduction":
		return Reduction, nil
	case "angle":
		return Angle, nil
	case "tee":
		return Tee, nil
	case "cross":
		return Cross, nil
	default:
		return 0, r.Failf("type", "unknown object type %q", s)
	}
}

// takeIf consumes the next column unconditionally (the sheet is
// positional) but parses it only when the kind needs it.
func takeIf(r *tabular.Row, needed bool, column string) (uint, error) {
	if !needed {
		r.TakeString()
		return 0, nil
	}
	return r.TakeUint(column)
}

// projectAngle computes the bend angle as seen on the 2D plan when the
// two legs run at the minimum allowed slope against the horizontal.
func projectAngle(angle uint, minSlopeAngleSin float64) (deg, sin, cos float64) {
	sin2 := minSlopeAngleSin * minSlopeAngleSin
	cos2 := 1 - sin2
	alfa := (180 - float64(angle)) / 2
	alfaSin := math.Sin(alfa * math.Pi / 180)
	deg = 180 - 2*math.Asin(math.Sqrt((alfaSin*alfaSin-sin2)/cos2))*180/math.Pi
	return deg, math.Sin(deg * math.Pi / 180), math.Cos(deg * math.Pi / 180)
}
