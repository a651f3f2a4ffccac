package beam

import (
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gotower/internal/dof"
	"github.com/alexiusacademia/gotower/internal/femerr"
	"github.com/alexiusacademia/gotower/internal/node"
)

// Properties holds the section and material values of a beam element
type Properties struct {
	Area     float64 `json:"area" yaml:"area"`         // cross section [L^2]
	AreaMOI  float64 `json:"area_moi" yaml:"area_moi"` // second moment of area [L^4]
	EModulus float64 `json:"e_modul" yaml:"e_modul"`   // elastic modulus [F/L^2]
	Mass     float64 `json:"mass" yaml:"mass"`         // total element mass [M]
}

// Beam is a two node element of a chained beam model.
//
// K and M validate the element before computing and return the closed form
// element matrices in the DOF order of Kind().DOFs() for node 1 followed by
// node 2.
type Beam interface {
	Kind() Kind
	Start() *node.Node
	End() *node.Node
	Properties() Properties
	SetProperties(p Properties)
	Length() float64
	Order() int
	DOFs() []dof.DOF
	Validate() error
	K(order int) (*mat.Dense, error)
	M() (*mat.Dense, error)

	clone(start, end *node.Node) Beam
}

// AxialLoaded is implemented by beams carrying an axial force for second
// order theory. Compression is negative.
type AxialLoaded interface {
	AxialForce() float64
	SetAxialForce(force float64)
}

// New creates a beam of kind k between start and end
func New(k Kind, start, end *node.Node, p Properties) (Beam, error) {
	switch k {
	case Bernoulli2:
		return NewBernoulli2(start, end, p)
	case Bernoulli3:
		return NewBernoulli3(start, end, p)
	case Bernoulli2PDelta:
		return NewBernoulli2PDelta(start, end, p)
	}
	return nil, femerr.Valuef("unsupported beam kind %d", int(k))
}

// Clone copies b onto the given nodes, keeping properties and axial force
func Clone(b Beam, start, end *node.Node) Beam {
	return b.clone(start, end)
}

// base carries the state shared by all formulations
type base struct {
	kind  Kind
	start *node.Node
	end   *node.Node
	props Properties
}

func newBase(k Kind, start, end *node.Node, p Properties) (base, error) {
	if start == nil || end == nil {
		return base{}, femerr.Valuef("undefined node of %s beam", k)
	}
	if start == end {
		return base{}, femerr.Valuef("start and end node are the same")
	}
	want := k.DOFs()
	if !dof.Equal(start.DOFs(), want) {
		return base{}, femerr.Topologyf("invalid DOF %s for start node of %s beam, expected %s",
			dof.Names(start.DOFs()), k, dof.Names(want))
	}
	if !dof.Equal(end.DOFs(), want) {
		return base{}, femerr.Topologyf("invalid DOF %s for end node of %s beam, expected %s",
			dof.Names(end.DOFs()), k, dof.Names(want))
	}
	return base{kind: k, start: start, end: end, props: p}, nil
}

func (b *base) Kind() Kind                 { return b.kind }
func (b *base) Start() *node.Node          { return b.start }
func (b *base) End() *node.Node            { return b.end }
func (b *base) Properties() Properties     { return b.props }
func (b *base) SetProperties(p Properties) { b.props = p }
func (b *base) Order() int                 { return b.kind.Order() }
func (b *base) DOFs() []dof.DOF            { return b.kind.DOFs() }

// Length is the distance between both nodes
func (b *base) Length() float64 {
	return b.start.Distance(b.end)
}

// Validate checks the properties shared by all formulations
func (b *base) Validate() error {
	p := b.props
	if p.EModulus <= 0 {
		return femerr.Valuef("invalid elastic modulus: %g <= 0.0", p.EModulus)
	}
	if l := b.Length(); l <= 0 {
		return femerr.Valuef("invalid length: %g <= 0.0", l)
	}
	if p.Area < 0 {
		return femerr.Valuef("invalid cross section: %g < 0.0", p.Area)
	}
	if p.Mass <= 0 {
		return femerr.Valuef("invalid mass: %g <= 0.0", p.Mass)
	}
	if p.AreaMOI <= 0 {
		return femerr.Valuef("invalid area moment of inertia: %g <= 0.0", p.AreaMOI)
	}
	return nil
}

func (b *base) checkOrder(order int) error {
	if order != 1 {
		return femerr.Valuef("unsupported order %d for %s beam, supported is only 1", order, b.kind)
	}
	return nil
}
