package beam

import (
	"strings"

	"github.com/alexiusacademia/gotower/internal/dof"
	"github.com/alexiusacademia/gotower/internal/femerr"
)

// Kind identifies a beam element formulation
type Kind int

const (
	// Bernoulli2 is a Bernoulli beam with lateral and rotational DOF (w, phi)
	Bernoulli2 Kind = iota + 1
	// Bernoulli3 adds the axial DOF (u, w, phi)
	Bernoulli3
	// Bernoulli2PDelta is Bernoulli2 with geometric stiffness from axial force
	Bernoulli2PDelta
)

var kindNames = map[Kind]string{
	Bernoulli2:       "B_2DOF",
	Bernoulli3:       "B_3DOF",
	Bernoulli2PDelta: "B_2DOF_II",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Description returns a human readable summary of the formulation
func (k Kind) Description() string {
	switch k {
	case Bernoulli2:
		return "Bernoulli, 2DOF, no p-Delta"
	case Bernoulli3:
		return "Bernoulli, 3DOF, no p-Delta"
	case Bernoulli2PDelta:
		return "Bernoulli, 2DOF, with p-Delta"
	default:
		return "unknown"
	}
}

// DOFs returns the DOF each node of the element must expose, in matrix order
func (k Kind) DOFs() []dof.DOF {
	switch k {
	case Bernoulli2, Bernoulli2PDelta:
		return []dof.DOF{dof.W, dof.PHI}
	case Bernoulli3:
		return []dof.DOF{dof.U, dof.W, dof.PHI}
	default:
		return nil
	}
}

// Order returns the highest theory order the formulation supports
func (k Kind) Order() int {
	if k == Bernoulli2PDelta {
		return 2
	}
	return 1
}

// Valid reports whether k is a known formulation
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind resolves names like "B_2DOF", "b_3dof" or "B_2DOF_pDelta"
func ParseKind(s string) (Kind, error) {
	id := strings.ToUpper(strings.TrimSpace(s))
	switch id {
	case "B_2DOF", "BEAMB_2DOF":
		return Bernoulli2, nil
	case "B_3DOF", "BEAMB_3DOF":
		return Bernoulli3, nil
	case "B_2DOF_II", "B_2DOF_PDELTA", "BEAMB_2DOF_II":
		return Bernoulli2PDelta, nil
	}
	return 0, femerr.Lookupf("unknown beam type %q, supported are B_2DOF, B_3DOF, B_2DOF_II", s)
}
