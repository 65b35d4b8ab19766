// Package catalog stores the drainage components available for routing:
// direct pipes, fan pipes, reductions, angles, tees and crosses, together
// with the outer-wall diameter of every connection size.
package catalog

import "fmt"

// Kind identifies a component family.
type Kind int

const (
	Direct Kind = iota
	Fan
	Reduction
	Angle
	Tee
	Cross
)

func (k Kind) String() string {
	switch k {
	case Direct:
		return "pipe"
	case Fan:
		return "fan pipe"
	case Reduction:
		return "reduction"
	case Angle:
		return "angle"
	case Tee:
		return "tee"
	case Cross:
		return "cross"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ExternalDiameters maps a nominal connection diameter to the outer wall
// diameter used for clearance checks. Millimetres.
type ExternalDiameters map[uint]uint

// Object is one catalog entry. Spec carries the per-kind geometry.
type Object struct {
	Kind Kind
	ID   int
	Name string
	// Cost is per millimetre for direct and fan pipes, per item for
	// fittings.
	Cost float64
	// Ext is the shared external-diameter table of the owning bag.
	Ext ExternalDiameters

	Spec Spec
}

// External returns the outer wall diameter for a nominal diameter of this
// object. Loading guarantees the table covers every catalog diameter.
func (o *Object) External(diameter uint) uint {
	return o.Ext[diameter]
}

// Spec is the per-kind geometry of a catalog object. Exactly one of the
// *Spec types below is stored per object, matched by Kind.
type Spec interface {
	spec()
}

// DirectSpec describes a straight pipe cut to length at install time.
type DirectSpec struct {
	Diameter uint
}

// FanSpec describes a fan (vent) pipe, geometrically a straight pipe.
type FanSpec struct {
	Diameter uint
}

// ReductionAlignment tells how a reduction's two bores line up.
type ReductionAlignment int

const (
	AlignCenter ReductionAlignment = iota
	AlignEdge
)

// ReductionSpec describes a diameter change. FDiameter is the wide
// (female) side, MDiameter the narrow (male) side, MDiameter < FDiameter.
type ReductionSpec struct {
	FDiameter uint
	MDiameter uint
	// Length is the center-to-male-inlet distance of the connected
	// neighbor, mm.
	Length    float64
	Alignment ReductionAlignment
}

// AngleSpec describes a bend with one inlet and one outlet.
type AngleSpec struct {
	Diameter uint
	// Angle is the nominal bend in degrees, in [1, 90].
	Angle uint
	// FLength and MLength are center-to-connection distances, mm.
	FLength float64
	MLength float64

	// Projected values describe the bend as seen on the 2D plan when the
	// pipe runs at the minimum allowed slope. Precomputed at load.
	ProjectedAngle    float64
	ProjectedAngleSin float64
	ProjectedAngleCos float64
}

// TeeSpec describes a straight run with one extra inlet.
type TeeSpec struct {
	BaseDiameter  uint
	ExtraDiameter uint
	Angle         uint
	FLength       float64
	BaseMLength   float64
	ExtraMLength  float64
}

// CrossType distinguishes the handedness of a cross fitting.
type CrossType int

const (
	CrossUsual CrossType = iota
	CrossLeft
	CrossRight
)

// CrossSpec describes a straight run with two extra inlets.
type CrossSpec struct {
	BaseDiameter   uint
	SecondDiameter uint
	ThirdDiameter  uint
	Type           CrossType
	Angle          uint
	FLength        float64
	BaseMLength    float64
	SecondMLength  float64
	ThirdMLength   float64
}

func (DirectSpec) spec()    {}
func (FanSpec) spec()       {}
func (ReductionSpec) spec() {}
func (AngleSpec) spec()     {}
func (TeeSpec) spec()       {}
func (CrossSpec) spec()     {}

// Diameter returns the object's principal connection diameter: the pipe
// diameter for straight pipes and angles, the wide side for reductions,
// the base run for tees and crosses.
func (o *Object) Diameter() uint {
	switch s := o.Spec.(type) {
	case DirectSpec:
		return s.Diameter
	case FanSpec:
		return s.Diameter
	case ReductionSpec:
		return s.FDiameter
	case AngleSpec:
		return s.Diameter
	case TeeSpec:
		return s.BaseDiameter
	case CrossSpec:
		return s.BaseDiameter
	default:
		return 0
	}
}
