package forces

import (
	"github.com/alexiusacademia/gotower/internal/beam"
	"github.com/alexiusacademia/gotower/internal/dof"
	"github.com/alexiusacademia/gotower/internal/femerr"
	"github.com/alexiusacademia/gotower/internal/model"
)

// Solver computes dead load axial forces of a vertical beam chain whose
// first node is the base. Compression is negative.
//
// The solver works on the live beams of its model: SetAxialForces changes
// the model passed to NewSolver.
type Solver struct {
	model *model.Model
}

// NewSolver creates a solver for m, which must not be empty
func NewSolver(m *model.Model) (*Solver, error) {
	if m == nil || m.IsEmpty() {
		return nil, femerr.Solutionf("model is empty")
	}
	return &Solver{model: m}, nil
}

// BeamsDeadWeight returns the self weight force of each beam in chain order.
// With accumulate, each beam also carries the weight of all beams above.
func (s *Solver) BeamsDeadWeight(gravity float64, accumulate bool) ([]float64, error) {
	if err := checkGravity(gravity); err != nil {
		return nil, err
	}
	n := s.model.Count()
	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		b, err := s.model.Beam(i)
		if err != nil {
			return nil, err
		}
		weights[i] = -b.Properties().Mass * gravity
	}
	if accumulate {
		cumulateDown(weights)
	}
	return weights, nil
}

// BeamsNormalForces returns the normal force of each beam from its self
// weight plus the point masses at its upper node. With accumulate, each
// beam also carries every load above it.
func (s *Solver) BeamsNormalForces(gravity float64, accumulate bool) ([]float64, error) {
	weights, err := s.BeamsDeadWeight(gravity, false)
	if err != nil {
		return nil, err
	}
	nodeForces := s.nodeForces(gravity)

	out := make([]float64, len(weights))
	for i, w := range weights {
		out[i] = nodeForces[i+1] + w
	}
	if accumulate {
		cumulateDown(out)
	}
	return out, nil
}

// NodeForces returns the point mass weight at each node in chain order
func (s *Solver) NodeForces(gravity float64) ([]float64, error) {
	if err := checkGravity(gravity); err != nil {
		return nil, err
	}
	return s.nodeForces(gravity), nil
}

// nodeForces sums the axial mass values per node, unset values count as 0
func (s *Solver) nodeForces(gravity float64) []float64 {
	forces := make([]float64, s.model.NodeCount())
	for i, masses := range s.model.NodeMasses() {
		var total float64
		for _, m := range masses {
			total += m.Values(0)[dof.U]
		}
		forces[i] = -total * gravity
	}
	return forces
}

// SetAxialForces assigns forces to the beams in chain order. A single
// value is applied to every beam.
func (s *Solver) SetAxialForces(forces []float64) error {
	if s.model.IsEmpty() {
		return femerr.Solutionf("model is empty, unable to set axial forces")
	}
	if len(forces) == 0 {
		return femerr.Valuef("empty vector of axial forces")
	}
	n := s.model.Count()
	if len(forces) != 1 && len(forces) != n {
		return femerr.Valuef("got %d axial forces for %d beams", len(forces), n)
	}

	loaded := make([]beam.AxialLoaded, n)
	for i := 0; i < n; i++ {
		b, err := s.model.Beam(i)
		if err != nil {
			return err
		}
		al, ok := b.(beam.AxialLoaded)
		if !ok {
			return femerr.Capabilityf("beam %d of kind %s does not support axial forces", i, b.Kind())
		}
		loaded[i] = al
	}

	for i, al := range loaded {
		if len(forces) == 1 {
			al.SetAxialForce(forces[0])
		} else {
			al.SetAxialForce(forces[i])
		}
	}
	return nil
}

func checkGravity(gravity float64) error {
	if gravity < 0 {
		return femerr.Valuef("invalid gravity = %g, required: gravity >= 0.0", gravity)
	}
	return nil
}

// cumulateDown sums from the last element back to the first in place
func cumulateDown(values []float64) {
	for i := len(values) - 2; i >= 0; i-- {
		values[i] += values[i+1]
	}
}
