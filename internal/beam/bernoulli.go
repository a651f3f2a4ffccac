package beam

import (
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gotower/internal/femerr"
	"github.com/alexiusacademia/gotower/internal/node"
)

// Bernoulli2DOF is a Bernoulli beam with DOF (w, phi) per node
type Bernoulli2DOF struct {
	base
}

// NewBernoulli2 creates a 2DOF beam, both nodes must expose exactly (W, PHI)
func NewBernoulli2(start, end *node.Node, p Properties) (*Bernoulli2DOF, error) {
	b, err := newBase(Bernoulli2, start, end, p)
	if err != nil {
		return nil, err
	}
	return &Bernoulli2DOF{base: b}, nil
}

// K returns the 4x4 stiffness matrix in order w1, phi1, w2, phi2
func (b *Bernoulli2DOF) K(order int) (*mat.Dense, error) {
	if err := b.checkOrder(order); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return bendingK(b.props.EModulus*b.props.AreaMOI, b.Length()), nil
}

// M returns the 4x4 consistent mass matrix in order w1, phi1, w2, phi2
func (b *Bernoulli2DOF) M() (*mat.Dense, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return bendingM(b.props.Mass, b.Length()), nil
}

func (b *Bernoulli2DOF) clone(start, end *node.Node) Beam {
	c := *b
	c.start, c.end = start, end
	return &c
}

// Bernoulli3DOF is a Bernoulli beam with DOF (u, w, phi) per node
type Bernoulli3DOF struct {
	base
}

// NewBernoulli3 creates a 3DOF beam, both nodes must expose exactly (U, W, PHI)
func NewBernoulli3(start, end *node.Node, p Properties) (*Bernoulli3DOF, error) {
	b, err := newBase(Bernoulli3, start, end, p)
	if err != nil {
		return nil, err
	}
	return &Bernoulli3DOF{base: b}, nil
}

// Validate additionally requires a cross section > 0
func (b *Bernoulli3DOF) Validate() error {
	if err := b.base.Validate(); err != nil {
		return err
	}
	if b.props.Area <= 0 {
		return femerr.Valuef("invalid cross section: %g <= 0.0", b.props.Area)
	}
	return nil
}

// K returns the 6x6 stiffness matrix in order u1, w1, phi1, u2, w2, phi2
func (b *Bernoulli3DOF) K(order int) (*mat.Dense, error) {
	if err := b.checkOrder(order); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	l := b.Length()
	ea := b.props.EModulus * b.props.Area / l

	k := mat.NewDense(6, 6, nil)
	k.Set(0, 0, ea)
	k.Set(0, 3, -ea)
	k.Set(3, 0, -ea)
	k.Set(3, 3, ea)
	scatter(k, bendingK(b.props.EModulus*b.props.AreaMOI, l))
	return k, nil
}

// M returns the 6x6 consistent mass matrix in order u1, w1, phi1, u2, w2, phi2
func (b *Bernoulli3DOF) M() (*mat.Dense, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	f := b.props.Mass / 420.0

	m := mat.NewDense(6, 6, nil)
	m.Set(0, 0, 140*f)
	m.Set(0, 3, 70*f)
	m.Set(3, 0, 70*f)
	m.Set(3, 3, 140*f)
	scatter(m, bendingM(b.props.Mass, b.Length()))
	return m, nil
}

func (b *Bernoulli3DOF) clone(start, end *node.Node) Beam {
	c := *b
	c.start, c.end = start, end
	return &c
}

// bendingIdx maps the 4x4 bending block onto rows w1, phi1, w2, phi2 of
// the 6x6 matrices
var bendingIdx = [4]int{1, 2, 4, 5}

func scatter(dst *mat.Dense, bending *mat.Dense) {
	for i, r := range bendingIdx {
		for j, c := range bendingIdx {
			dst.Set(r, c, bending.At(i, j))
		}
	}
}

// bendingK is the Euler-Bernoulli stiffness matrix
func bendingK(ei, l float64) *mat.Dense {
	c := ei / l
	b := c / l
	a := b / l
	return mat.NewDense(4, 4, []float64{
		12 * a, 6 * b, -12 * a, 6 * b,
		6 * b, 4 * c, -6 * b, 2 * c,
		-12 * a, -6 * b, 12 * a, -6 * b,
		6 * b, 2 * c, -6 * b, 4 * c,
	})
}

// bendingM is the consistent mass matrix
func bendingM(mass, l float64) *mat.Dense {
	f := mass / 420.0
	l2 := l * l
	return mat.NewDense(4, 4, []float64{
		156 * f, 22 * l * f, 54 * f, -13 * l * f,
		22 * l * f, 4 * l2 * f, 13 * l * f, -3 * l2 * f,
		54 * f, 13 * l * f, 156 * f, -22 * l * f,
		-13 * l * f, -3 * l2 * f, -22 * l * f, 4 * l2 * f,
	})
}
