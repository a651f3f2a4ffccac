package entry

import (
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gotower/internal/dof"
	"github.com/alexiusacademia/gotower/internal/femerr"
)

// Spring holds linear translational [F/L] or rotational [M/rad] spring
// stiffness per DOF.
type Spring struct {
	values map[dof.DOF]float64
}

// NewSpring creates a spring without any stiffness
func NewSpring() *Spring {
	return &Spring{values: make(map[dof.DOF]float64)}
}

// SetValue sets the stiffness of d, value must be > 0
func (s *Spring) SetValue(d dof.DOF, value float64) error {
	if value <= 0 {
		return femerr.Valuef("invalid spring value %g for %s, allowed is > 0.0", value, d.Name())
	}
	s.values[d] = value
	return nil
}

// Value returns the stiffness of d
func (s *Spring) Value(d dof.DOF) (float64, error) {
	v, ok := s.values[d]
	if !ok {
		return 0, femerr.Lookupf("no spring value registered for DOF %s", d.Name())
	}
	return v, nil
}

// DOFs lists the DOF with stiffness values
func (s *Spring) DOFs() []dof.DOF {
	return definedDOFs(s.values)
}

// Has reports whether a stiffness is set for d
func (s *Spring) Has(d dof.DOF) bool {
	_, ok := s.values[d]
	return ok
}

// K returns the diagonal element stiffness matrix in the order of order.
func (s *Spring) K(order []dof.DOF) (*mat.Dense, error) {
	return diagonal(s.values, order)
}

// Clone returns a deep copy
func (s *Spring) Clone() *Spring {
	return &Spring{values: cloneValues(s.values)}
}
