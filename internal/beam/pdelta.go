package beam

import (
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gotower/internal/femerr"
	"github.com/alexiusacademia/gotower/internal/node"
)

// Bernoulli2DOFPDelta is a 2DOF Bernoulli beam with a geometric stiffness
// term driven by its axial force
type Bernoulli2DOFPDelta struct {
	Bernoulli2DOF
	forceX float64
}

// NewBernoulli2PDelta creates a second order 2DOF beam without axial force
func NewBernoulli2PDelta(start, end *node.Node, p Properties) (*Bernoulli2DOFPDelta, error) {
	b, err := newBase(Bernoulli2PDelta, start, end, p)
	if err != nil {
		return nil, err
	}
	return &Bernoulli2DOFPDelta{Bernoulli2DOF: Bernoulli2DOF{base: b}}, nil
}

// AxialForce returns the axial force, compression is negative
func (b *Bernoulli2DOFPDelta) AxialForce() float64 { return b.forceX }

// SetAxialForce sets the axial force, compression is negative
func (b *Bernoulli2DOFPDelta) SetAxialForce(force float64) { b.forceX = force }

// K1 is the linear stiffness matrix
func (b *Bernoulli2DOFPDelta) K1() (*mat.Dense, error) {
	return b.Bernoulli2DOF.K(1)
}

// K2 is the geometric stiffness matrix N/(30L) * G
func (b *Bernoulli2DOFPDelta) K2() (*mat.Dense, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	l := b.Length()
	l2 := l * l
	k := mat.NewDense(4, 4, []float64{
		36, 3 * l, -36, 3 * l,
		3 * l, 4 * l2, -3 * l, -l2,
		-36, -3 * l, 36, -3 * l,
		3 * l, -l2, -3 * l, 4 * l2,
	})
	k.Scale(b.forceX/(30*l), k)
	return k, nil
}

// K returns K1 for order 1 and K1 + K2 for order 2
func (b *Bernoulli2DOFPDelta) K(order int) (*mat.Dense, error) {
	switch order {
	case 1:
		return b.K1()
	case 2:
		k1, err := b.K1()
		if err != nil {
			return nil, err
		}
		k2, err := b.K2()
		if err != nil {
			return nil, err
		}
		k1.Add(k1, k2)
		return k1, nil
	}
	return nil, femerr.Valuef("invalid order %d, supported are 1 or 2", order)
}

func (b *Bernoulli2DOFPDelta) clone(start, end *node.Node) Beam {
	c := *b
	c.start, c.end = start, end
	return &c
}
