// Package fault defines the single user-visible error currency of the
// router: a kind plus a message. Every failure in the pipeline surfaces
// as one of these; there is no local recovery.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	Parse      Kind = iota // malformed or missing input field
	Validation             // out-of-range value, inconsistent counts
	Geometry               // overlapping nodes, invalid adjacency
	Attachment             // connection object cannot be placed
	Routing                // no feasible polyline for a source
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse"
	case Validation:
		return "validation"
	case Geometry:
		return "geometry"
	case Attachment:
		return "attachment"
	case Routing:
		return "routing"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a failure with a message ready to show the user.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Parsef builds a parse error.
func Parsef(format string, args ...any) *Error { return newf(Parse, format, args...) }

// Validationf builds a validation error.
func Validationf(format string, args ...any) *Error { return newf(Validation, format, args...) }

// Geometryf builds a geometry error.
func Geometryf(format string, args ...any) *Error { return newf(Geometry, format, args...) }

// Attachf builds an attachment error.
func Attachf(format string, args ...any) *Error { return newf(Attachment, format, args...) }

// Routingf builds a routing error.
func Routingf(format string, args ...any) *Error { return newf(Routing, format, args...) }

// KindOf extracts the kind from err, if err is (or wraps) a fault error.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}
