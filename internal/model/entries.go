package model

import (
	"math"
	"sort"

	"github.com/alexiusacademia/gotower/internal/dof"
	"github.com/alexiusacademia/gotower/internal/entry"
	"github.com/alexiusacademia/gotower/internal/femerr"
	"github.com/alexiusacademia/gotower/internal/matrix"
	"github.com/alexiusacademia/gotower/internal/node"
)

// NodeByHeight returns the unique node whose X coordinate equals x within tol
func (m *Model) NodeByHeight(x, tol float64) (*node.Node, error) {
	var found []*node.Node
	for _, n := range m.nodes {
		if matrix.IsEqual(x, n.Coord(dof.X), tol) {
			found = append(found, n)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return nil, femerr.Lookupf("no node exists at height = %g", x)
	}
	return nil, femerr.Lookupf("ambiguous height = %g, %d nodes match", x, len(found))
}

// AddMass adds a copy of mass to n, a node may carry several masses
func (m *Model) AddMass(n *node.Node, mass *entry.Mass) error {
	if mass == nil {
		return femerr.Valuef("undefined mass")
	}
	idx, err := m.NodeIndex(n)
	if err != nil {
		return err
	}
	m.masses[idx] = append(m.masses[idx], mass.Clone())
	return nil
}

// AssignMass adds mass to the node nearest to x.
//
// A node matching x within tol wins. Otherwise the nearer of the nodes
// directly below and above x is used, the lower one on a tie.
func (m *Model) AssignMass(mass *entry.Mass, x, tol float64) error {
	if len(m.nodes) < 2 {
		return femerr.Valuef("insufficient nodes to assign mass: found %d, required are 2", len(m.nodes))
	}
	low := m.nodes[0].Coord(dof.X)
	high := m.nodes[len(m.nodes)-1].Coord(dof.X)
	if !matrix.IsEqual(x, low, tol) && x < low {
		return femerr.Valuef("invalid x-coordinate = %g < %g (start node)", x, low)
	}
	if !matrix.IsEqual(x, high, tol) && x > high {
		return femerr.Valuef("invalid x-coordinate = %g > %g (end node)", x, high)
	}

	for _, n := range m.nodes {
		if matrix.IsEqual(n.Coord(dof.X), x, tol) {
			return m.AddMass(n, mass)
		}
	}

	var below, above *node.Node
	for _, n := range m.nodes {
		c := n.Coord(dof.X)
		if c < x && (below == nil || c > below.Coord(dof.X)) {
			below = n
		}
		if c > x && (above == nil || c < above.Coord(dof.X)) {
			above = n
		}
	}
	if below == nil || above == nil {
		return femerr.Lookupf("no enclosing nodes for x-coordinate = %g", x)
	}
	if math.Abs(x-below.Coord(dof.X)) <= math.Abs(above.Coord(dof.X)-x) {
		return m.AddMass(below, mass)
	}
	return m.AddMass(above, mass)
}

// HasMass reports whether node index i carries at least one mass
func (m *Model) HasMass(i int) bool {
	return len(m.masses[i]) > 0
}

// MassesOf returns copies of the masses at node index i
func (m *Model) MassesOf(i int) ([]*entry.Mass, error) {
	ms, ok := m.masses[i]
	if !ok {
		return nil, femerr.Lookupf("no mass defined for node index %d", i)
	}
	return cloneMasses(ms), nil
}

// MassCount returns the number of masses of all nodes
func (m *Model) MassCount() int {
	var count int
	for _, ms := range m.masses {
		count += len(ms)
	}
	return count
}

// NodeMasses returns copies of all masses keyed by node index
func (m *Model) NodeMasses() map[int][]*entry.Mass {
	out := make(map[int][]*entry.Mass, len(m.masses))
	for i, ms := range m.masses {
		out[i] = cloneMasses(ms)
	}
	return out
}

// MassNodes returns the indices of nodes carrying masses in ascending order
func (m *Model) MassNodes() []int {
	return sortedKeys(m.masses)
}

// AttachSpring attaches a copy of spring to n, replacing any prior spring
func (m *Model) AttachSpring(n *node.Node, spring *entry.Spring) error {
	if spring == nil {
		return femerr.Valuef("undefined spring")
	}
	idx, err := m.NodeIndex(n)
	if err != nil {
		return err
	}
	for _, d := range spring.DOFs() {
		if !n.Supports(d) {
			return femerr.Topologyf("spring has DOF %s which is not supported by %s", d.Name(), n)
		}
	}
	m.springs[idx] = spring.Clone()
	return nil
}

// HasSpring reports whether node index i has a spring
func (m *Model) HasSpring(i int) bool {
	_, ok := m.springs[i]
	return ok
}

// SpringOf returns a copy of the spring at node index i
func (m *Model) SpringOf(i int) (*entry.Spring, error) {
	s, ok := m.springs[i]
	if !ok {
		return nil, femerr.Lookupf("no spring attached to node index %d", i)
	}
	return s.Clone(), nil
}

// SpringCount returns the number of attached springs
func (m *Model) SpringCount() int {
	return len(m.springs)
}

// Springs returns copies of all springs keyed by node index
func (m *Model) Springs() map[int]*entry.Spring {
	out := make(map[int]*entry.Spring, len(m.springs))
	for i, s := range m.springs {
		out[i] = s.Clone()
	}
	return out
}

// SpringNodes returns the indices of nodes with springs in ascending order
func (m *Model) SpringNodes() []int {
	return sortedKeys(m.springs)
}

func cloneMasses(ms []*entry.Mass) []*entry.Mass {
	out := make([]*entry.Mass, len(ms))
	for i, mass := range ms {
		out[i] = mass.Clone()
	}
	return out
}

func sortedKeys[V any](values map[int]V) []int {
	keys := make([]int, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
