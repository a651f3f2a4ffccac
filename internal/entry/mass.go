package entry

import (
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gotower/internal/dof"
	"github.com/alexiusacademia/gotower/internal/femerr"
)

// Mass is a lumped mass defined by values per DOF.
//
// Values of displacement DOF are the mass [M], values of rotational DOF the
// mass moment of inertia [M*L^2].
type Mass struct {
	values map[dof.DOF]float64
}

// NewMass creates an empty mass
func NewMass() *Mass {
	return &Mass{values: make(map[dof.DOF]float64)}
}

// SetMass sets value on every displacement DOF
func (m *Mass) SetMass(value float64) error {
	if value < 0 {
		return femerr.Valuef("invalid mass value %g, allowed is >= 0.0", value)
	}
	for _, d := range dof.ByType(dof.Displacement) {
		m.values[d] = value
	}
	return nil
}

// SetMMOI sets the mass moment of inertia of a rotational DOF
func (m *Mass) SetMMOI(d dof.DOF, value float64) error {
	if d.Type() != dof.Rotation {
		return femerr.Valuef("invalid DOF type %s of %s for MMOI", d.Type(), d.Name())
	}
	if value < 0 {
		return femerr.Valuef("invalid value %g for MMOI %s, allowed is >= 0.0", value, d.Name())
	}
	m.values[d] = value
	return nil
}

// Value returns the mass (displacement DOF) or MMOI (rotational DOF)
func (m *Mass) Value(d dof.DOF) (float64, error) {
	v, ok := m.values[d]
	if !ok {
		return 0, femerr.Lookupf("no mass value registered for DOF %s", d.Name())
	}
	return v, nil
}

// Values returns a value for every DOF, unset ones as def
func (m *Mass) Values(def float64) map[dof.DOF]float64 {
	out := make(map[dof.DOF]float64)
	for _, d := range dof.All() {
		v, ok := m.values[d]
		if !ok {
			v = def
		}
		out[d] = v
	}
	return out
}

// DOFs lists the DOF with registered values in DOF declaration order
func (m *Mass) DOFs() []dof.DOF {
	return definedDOFs(m.values)
}

// Has reports whether a value is registered for d
func (m *Mass) Has(d dof.DOF) bool {
	_, ok := m.values[d]
	return ok
}

// M returns the diagonal mass matrix in the order of order.
// DOF not in order are ignored.
func (m *Mass) M(order []dof.DOF) (*mat.Dense, error) {
	return diagonal(m.values, order)
}

// Clone returns a deep copy
func (m *Mass) Clone() *Mass {
	return &Mass{values: cloneValues(m.values)}
}

func definedDOFs(values map[dof.DOF]float64) []dof.DOF {
	var dofs []dof.DOF
	for _, d := range dof.All() {
		if _, ok := values[d]; ok {
			dofs = append(dofs, d)
		}
	}
	return dofs
}

func cloneValues(values map[dof.DOF]float64) map[dof.DOF]float64 {
	c := make(map[dof.DOF]float64, len(values))
	for d, v := range values {
		c[d] = v
	}
	return c
}

// diagonal places each defined value at its index in order
func diagonal(values map[dof.DOF]float64, order []dof.DOF) (*mat.Dense, error) {
	if len(order) == 0 {
		return nil, femerr.Valuef("empty DOF order")
	}
	if dof.HasDuplicates(order) {
		return nil, femerr.Topologyf("duplicate DOF in %s", dof.Names(order))
	}
	n := len(order)
	d := mat.NewDense(n, n, nil)
	for i, o := range order {
		if v, ok := values[o]; ok {
			d.Set(i, i, v)
		}
	}
	return d, nil
}
