package dof

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gotower/internal/femerr"
)

// Axis is an axis of the global coordinate system.
// X runs along the beam chain (tower height), Z is the lateral direction.
type Axis int

const (
	X Axis = iota // axial
	Y             // vertical
	Z             // horizontal
)

// AllAxes lists all axes in order X, Y, Z
var AllAxes = [...]Axis{X, Y, Z}

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Valid reports whether a is one of X, Y, Z
func (a Axis) Valid() bool {
	return a >= X && a <= Z
}

// Description is the long name of the axis as applied to beams
func (a Axis) Description() string {
	switch a {
	case X:
		return "axial"
	case Y:
		return "vertical"
	case Z:
		return "horizontal"
	}
	return "undefined"
}

// Type is the type of a degree of freedom
type Type int

const (
	Displacement Type = iota + 1
	Rotation
)

func (t Type) String() string {
	switch t {
	case Displacement:
		return "displacement"
	case Rotation:
		return "rotation"
	}
	return "undefined"
}

// short designator: 'd' or 'r'
func (t Type) short() string {
	if t == Rotation {
		return "r"
	}
	return "d"
}

// DOF is a scalar degree of freedom of a node
type DOF int

const (
	U   DOF = iota + 1 // axial displacement
	W                  // lateral displacement
	PHI                // rotation around y
)

var all = []DOF{U, W, PHI}

// All returns every supported DOF in declaration order
func All() []DOF {
	return append([]DOF(nil), all...)
}

// Type returns displacement or rotation
func (d DOF) Type() Type {
	switch d {
	case U, W:
		return Displacement
	case PHI:
		return Rotation
	}
	return 0
}

// Axis returns the global axis the DOF acts on
func (d DOF) Axis() Axis {
	switch d {
	case W:
		return Z
	case PHI:
		return Y
	}
	return X
}

// Name is the enum name, e.g. "PHI"
func (d DOF) Name() string {
	switch d {
	case U:
		return "U"
	case W:
		return "W"
	case PHI:
		return "PHI"
	}
	return fmt.Sprintf("DOF(%d)", int(d))
}

func (d DOF) Description() string {
	switch d {
	case U:
		return "axial displacement"
	case W:
		return "lateral displacement"
	case PHI:
		return "rotation around y"
	}
	return "undefined"
}

// Short compiles type and axis into a designator like "dx", "dz", "ry"
func (d DOF) Short() string {
	return d.Type().short() + d.Axis().String()
}

func (d DOF) String() string { return d.Short() }

// Valid reports whether d is one of the closed set of DOF
func (d DOF) Valid() bool {
	return d >= U && d <= PHI
}

// Axes maps a sequence of DOF to their axes
func Axes(dofs []DOF) []Axis {
	axes := make([]Axis, len(dofs))
	for i, d := range dofs {
		axes[i] = d.Axis()
	}
	return axes
}

// ByType returns all DOF of a specific type
func ByType(t Type) []DOF {
	var dofs []DOF
	for _, d := range all {
		if d.Type() == t {
			dofs = append(dofs, d)
		}
	}
	return dofs
}

// Index returns the position of d in dofs or -1
func Index(dofs []DOF, d DOF) int {
	for i, v := range dofs {
		if v == d {
			return i
		}
	}
	return -1
}

// Contains reports whether d is in dofs
func Contains(dofs []DOF, d DOF) bool {
	return Index(dofs, d) >= 0
}

// HasDuplicates reports whether any DOF appears twice
func HasDuplicates(dofs []DOF) bool {
	seen := make(map[DOF]bool, len(dofs))
	for _, d := range dofs {
		if seen[d] {
			return true
		}
		seen[d] = true
	}
	return false
}

// Equal compares two DOF sequences including order
func Equal(a, b []DOF) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Names joins the short designators, e.g. "(dz, ry)"
func Names(dofs []DOF) string {
	parts := make([]string, len(dofs))
	for i, d := range dofs {
		parts[i] = d.Short()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Parse resolves an identifier like "w", "PHI" or "DOF.W"
func Parse(identifier string) (DOF, error) {
	id := strings.ToUpper(strings.TrimSpace(identifier))
	id = strings.TrimPrefix(id, "DOF.")
	for _, d := range all {
		if d.Name() == id {
			return d, nil
		}
	}
	return 0, femerr.Lookupf("invalid DOF identifier %q", identifier)
}
