package femerr

import "fmt"

// Kind classifies a failure so callers can react to the category rather
// than to the message text.
type Kind int

const (
	// KindValue is a value out of its domain (negative gravity, mode count
	// outside 1..10, non-positive physical property, degenerate geometry).
	KindValue Kind = iota + 1
	// KindTopology is a structural invariant violation of a model (DOF
	// mismatch, duplicate beam, chain discontinuity, foreign node).
	KindTopology
	// KindCapability is raised when a beam lacks a capability required by
	// the requested theory order.
	KindCapability
	// KindSolution prevents a solve from producing a result.
	KindSolution
	// KindLookup is a failed search by coordinate, DOF or node.
	KindLookup
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "invalid value"
	case KindTopology:
		return "invalid topology"
	case KindCapability:
		return "missing capability"
	case KindSolution:
		return "solution error"
	case KindLookup:
		return "lookup error"
	}
	return "unknown error"
}

// Error represents a failure of the finite element core
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	if e.msg == "" {
		return e.Kind.String()
	}
	return e.msg
}

// Is reports a match against the kind sentinels, so that
// errors.Is(err, femerr.ErrSolution) works through wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.msg == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is
var (
	ErrValue      = &Error{Kind: KindValue}
	ErrTopology   = &Error{Kind: KindTopology}
	ErrCapability = &Error{Kind: KindCapability}
	ErrSolution   = &Error{Kind: KindSolution}
	ErrLookup     = &Error{Kind: KindLookup}
)

func newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Valuef returns a value-domain error.
func Valuef(format string, args ...any) error { return newf(KindValue, format, args...) }

// Topologyf returns a structural invariant error.
func Topologyf(format string, args ...any) error { return newf(KindTopology, format, args...) }

// Capabilityf returns a capability error.
func Capabilityf(format string, args ...any) error { return newf(KindCapability, format, args...) }

// Solutionf returns a solution error.
func Solutionf(format string, args ...any) error { return newf(KindSolution, format, args...) }

// Lookupf returns a lookup error.
func Lookupf(format string, args ...any) error { return newf(KindLookup, format, args...) }
