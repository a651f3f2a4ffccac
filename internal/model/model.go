package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gotower/internal/beam"
	"github.com/alexiusacademia/gotower/internal/dof"
	"github.com/alexiusacademia/gotower/internal/entry"
	"github.com/alexiusacademia/gotower/internal/femerr"
	"github.com/alexiusacademia/gotower/internal/matrix"
	"github.com/alexiusacademia/gotower/internal/node"
)

// DefaultTolerance is the symmetric coordinate tolerance for node lookups
const DefaultTolerance = 1.0e-4

// Model is a chain of beams of one kind, e.g. a tower.
//
// Beam i spans nodes[i] to nodes[i+1]. Point masses (n per node) and
// springs (one per node) are keyed by node index. The model owns its
// containers: read accessors return copies, the handle accessors Node,
// StartNode, EndNode and Beam return live values for setting boundary
// conditions or properties.
type Model struct {
	beams   []beam.Beam
	nodes   []*node.Node
	masses  map[int][]*entry.Mass
	springs map[int]*entry.Spring
}

// New creates an empty model
func New() *Model {
	return &Model{
		masses:  make(map[int][]*entry.Mass),
		springs: make(map[int]*entry.Spring),
	}
}

// IsEmpty reports whether the model has no beams
func (m *Model) IsEmpty() bool {
	return len(m.beams) == 0
}

// Count returns the number of beams
func (m *Model) Count() int {
	return len(m.beams)
}

// NodeCount returns the number of nodes, 0 for an empty model
func (m *Model) NodeCount() int {
	return len(m.nodes)
}

// Kind returns the beam kind of the chain, 0 if empty
func (m *Model) Kind() beam.Kind {
	if m.IsEmpty() {
		return 0
	}
	return m.beams[0].Kind()
}

// DOFs returns the DOF of every node in matrix order
func (m *Model) DOFs() []dof.DOF {
	if m.IsEmpty() {
		return nil
	}
	return m.beams[0].DOFs()
}

// DOFNum returns the number of DOF per node
func (m *Model) DOFNum() int {
	return len(m.DOFs())
}

// Order returns the highest theory order of the beams, 0 if empty
func (m *Model) Order() int {
	if m.IsEmpty() {
		return 0
	}
	return m.beams[0].Order()
}

// Add appends b to the chain.
//
// The first beam defines the kind of the model. Any further beam must be
// of the same kind, must not be in the model yet and must start at the
// current end node.
func (m *Model) Add(b beam.Beam) error {
	if b == nil {
		return femerr.Valuef("undefined beam")
	}
	if !b.Kind().Valid() {
		return femerr.Topologyf("cannot add beam of kind %s", b.Kind())
	}
	if m.IsEmpty() {
		m.beams = append(m.beams, b)
		m.nodes = append(m.nodes, b.Start(), b.End())
		return nil
	}
	if k := m.Kind(); b.Kind() != k {
		return femerr.Topologyf("invalid beam kind %s: expected %s, beam kinds cannot be mixed", b.Kind(), k)
	}
	for _, existing := range m.beams {
		if existing == b {
			return femerr.Topologyf("the beam exists in the model")
		}
	}
	if b.Start() != m.EndNodeOrNil() {
		return femerr.Topologyf("start node %s is not the end node of the model", b.Start())
	}
	for _, n := range m.nodes {
		if n == b.End() {
			return femerr.Topologyf("end node %s exists in the model", b.End())
		}
	}
	m.beams = append(m.beams, b)
	m.nodes = append(m.nodes, b.End())
	return nil
}

// AddAll adds beams in order and stops at the first failure
func (m *Model) AddAll(beams ...beam.Beam) error {
	for _, b := range beams {
		if err := m.Add(b); err != nil {
			return err
		}
	}
	return nil
}

// Append adds a beam of the model's kind starting at the end node and
// reaching length along X
func (m *Model) Append(length float64, p beam.Properties) error {
	if m.IsEmpty() {
		return femerr.Valuef("empty model cannot append beam")
	}
	if length <= 0 {
		return femerr.Valuef("invalid beam length = %g, allowed is length > 0.0", length)
	}
	start := m.EndNodeOrNil()
	end, err := node.ByOffset(start, map[dof.Axis]float64{dof.X: length})
	if err != nil {
		return err
	}
	b, err := beam.New(m.Kind(), start, end, p)
	if err != nil {
		return err
	}
	return m.Add(b)
}

// Beam returns the live beam at index i
func (m *Model) Beam(i int) (beam.Beam, error) {
	if i < 0 || i >= len(m.beams) {
		return nil, femerr.Lookupf("beam index %d out of range [0, %d)", i, len(m.beams))
	}
	return m.beams[i], nil
}

// Node returns the live node at index i
func (m *Model) Node(i int) (*node.Node, error) {
	if i < 0 || i >= len(m.nodes) {
		return nil, femerr.Lookupf("node index %d out of range [0, %d)", i, len(m.nodes))
	}
	return m.nodes[i], nil
}

// StartNode returns the first node of the chain
func (m *Model) StartNode() (*node.Node, error) {
	if m.IsEmpty() {
		return nil, femerr.Solutionf("undefined start node, model is empty")
	}
	return m.nodes[0], nil
}

// EndNode returns the last node of the chain
func (m *Model) EndNode() (*node.Node, error) {
	if m.IsEmpty() {
		return nil, femerr.Solutionf("undefined end node, model is empty")
	}
	return m.nodes[len(m.nodes)-1], nil
}

// EndNodeOrNil returns the last node or nil for an empty model
func (m *Model) EndNodeOrNil() *node.Node {
	if m.IsEmpty() {
		return nil
	}
	return m.nodes[len(m.nodes)-1]
}

// NodeIndex returns the arena index of n
func (m *Model) NodeIndex(n *node.Node) (int, error) {
	for i, v := range m.nodes {
		if v == n {
			return i, nil
		}
	}
	return -1, femerr.Topologyf("node %s does not exist in the model", n)
}

// Coords returns the coordinate of every node on axis
func (m *Model) Coords(axis dof.Axis) []float64 {
	coords := make([]float64, len(m.nodes))
	for i, n := range m.nodes {
		coords[i] = n.Coord(axis)
	}
	return coords
}

// Offset moves every node by vector
func (m *Model) Offset(vector map[dof.Axis]float64) error {
	if len(vector) == 0 {
		return femerr.Valuef("empty offset vector")
	}
	for _, n := range m.nodes {
		if err := n.Offset(vector); err != nil {
			return err
		}
	}
	return nil
}

// Length is the sum of all beam lengths
func (m *Model) Length() float64 {
	var l float64
	for _, b := range m.beams {
		l += b.Length()
	}
	return l
}

// BeamMass is the mass of all beams, point masses excluded
func (m *Model) BeamMass() float64 {
	var total float64
	for _, b := range m.beams {
		total += b.Properties().Mass
	}
	return total
}

// PointMass is the total lateral mass of all point masses
func (m *Model) PointMass() float64 {
	var total float64
	for _, ms := range m.masses {
		for _, mass := range ms {
			total += mass.Values(0)[dof.W]
		}
	}
	return total
}

// Mass is the total mass of beams and point masses
func (m *Model) Mass() float64 {
	return m.BeamMass() + m.PointMass()
}

// Beams returns copies of all beams, chained on copies of the nodes
func (m *Model) Beams() []beam.Beam {
	return m.Clone().beams
}

// Nodes returns copies of all nodes in chain order
func (m *Model) Nodes() []*node.Node {
	nodes := make([]*node.Node, len(m.nodes))
	for i, n := range m.nodes {
		nodes[i] = n.Clone()
	}
	return nodes
}

// Clone returns a deep copy whose beams share the cloned node arena
func (m *Model) Clone() *Model {
	c := New()
	c.nodes = make([]*node.Node, len(m.nodes))
	for i, n := range m.nodes {
		c.nodes[i] = n.Clone()
	}
	c.beams = make([]beam.Beam, len(m.beams))
	for i, b := range m.beams {
		c.beams[i] = beam.Clone(b, c.nodes[i], c.nodes[i+1])
	}
	for i, ms := range m.masses {
		c.masses[i] = cloneMasses(ms)
	}
	for i, s := range m.springs {
		c.springs[i] = s.Clone()
	}
	return c
}

// K returns the system stiffness matrix including springs
func (m *Model) K(order int) (*mat.Dense, error) {
	if m.IsEmpty() {
		return nil, femerr.Solutionf("empty model, unable to generate stiffness matrix")
	}
	locals := make([]mat.Matrix, len(m.beams))
	for i, b := range m.beams {
		k, err := b.K(order)
		if err != nil {
			return nil, err
		}
		locals[i] = k
	}
	sys, err := matrix.Assemble(locals)
	if err != nil {
		return nil, err
	}

	dofs := m.DOFs()
	for i, s := range m.springs {
		k, err := s.K(dofs)
		if err != nil {
			return nil, err
		}
		matrix.AddBlock(sys, k, i*len(dofs))
	}
	return sys, nil
}

// M returns the system mass matrix including point masses
func (m *Model) M() (*mat.Dense, error) {
	if m.IsEmpty() {
		return nil, femerr.Solutionf("empty model, unable to generate mass matrix")
	}
	locals := make([]mat.Matrix, len(m.beams))
	for i, b := range m.beams {
		mm, err := b.M()
		if err != nil {
			return nil, err
		}
		locals[i] = mm
	}
	sys, err := matrix.Assemble(locals)
	if err != nil {
		return nil, err
	}

	dofs := m.DOFs()
	for i, ms := range m.masses {
		for _, mass := range ms {
			mm, err := mass.M(dofs)
			if err != nil {
				return nil, err
			}
			matrix.AddBlock(sys, mm, i*len(dofs))
		}
	}
	return sys, nil
}
