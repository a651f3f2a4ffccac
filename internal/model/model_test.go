package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gotower/internal/beam"
	"github.com/alexiusacademia/gotower/internal/dof"
	"github.com/alexiusacademia/gotower/internal/entry"
	"github.com/alexiusacademia/gotower/internal/femerr"
	"github.com/alexiusacademia/gotower/internal/matrix"
	"github.com/alexiusacademia/gotower/internal/node"
)

var props = beam.Properties{
	Area:     0.25,
	AreaMOI:  0.1,
	EModulus: 2.1e11,
	Mass:     1000,
}

// newChain builds count beams of length 1.0 each
func newChain(t *testing.T, k beam.Kind, count int) *Model {
	t.Helper()
	n1, n2, err := node.ByAxialLength(k.DOFs(), 1.0)
	require.NoError(t, err)
	b, err := beam.New(k, n1, n2, props)
	require.NoError(t, err)

	m := New()
	require.NoError(t, m.Add(b))
	for i := 1; i < count; i++ {
		require.NoError(t, m.Append(1.0, props))
	}
	return m
}

func TestAddRejectsInvalidBeams(t *testing.T) {
	m := newChain(t, beam.Bernoulli2, 1)
	end := m.EndNodeOrNil()

	assert.ErrorIs(t, m.Add(nil), femerr.ErrValue)

	first, err := m.Beam(0)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Add(first), femerr.ErrTopology)

	// other kind
	n2, err := node.ByOffset(end, map[dof.Axis]float64{dof.X: 1})
	require.NoError(t, err)
	pd, err := beam.NewBernoulli2PDelta(end, n2, props)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Add(pd), femerr.ErrTopology)

	// not chained by identity, although coordinates match
	loose, err := node.New(end.DOFs(), end.Coords())
	require.NoError(t, err)
	n3, err := node.ByOffset(loose, map[dof.Axis]float64{dof.X: 1})
	require.NoError(t, err)
	b, err := beam.NewBernoulli2(loose, n3, props)
	require.NoError(t, err)
	assert.ErrorIs(t, m.Add(b), femerr.ErrTopology)

	assert.Equal(t, 1, m.Count())
}

func TestAppend(t *testing.T) {
	assert.ErrorIs(t, New().Append(1.0, props), femerr.ErrValue)

	m := newChain(t, beam.Bernoulli3, 3)
	assert.ErrorIs(t, m.Append(0, props), femerr.ErrValue)

	assert.Equal(t, 3, m.Count())
	assert.Equal(t, 4, m.NodeCount())
	assert.Equal(t, beam.Bernoulli3, m.Kind())
	assert.Equal(t, 3, m.DOFNum())
	assert.Equal(t, []float64{0, 1, 2, 3}, m.Coords(dof.X))
	assert.InDelta(t, 3.0, m.Length(), 1e-12)
	assert.InDelta(t, 3000.0, m.BeamMass(), 1e-9)

	for i := 0; i < m.Count(); i++ {
		b, err := m.Beam(i)
		require.NoError(t, err)
		n, err := m.Node(i)
		require.NoError(t, err)
		assert.Same(t, n, b.Start())
	}
}

func TestMatrixSize(t *testing.T) {
	for _, k := range []beam.Kind{beam.Bernoulli2, beam.Bernoulli3, beam.Bernoulli2PDelta} {
		t.Run(k.String(), func(t *testing.T) {
			n := 5
			m := newChain(t, k, n)
			size := (n + 1) * len(k.DOFs())

			kk, err := m.K(1)
			require.NoError(t, err)
			r, c := kk.Dims()
			assert.Equal(t, size, r)
			assert.Equal(t, size, c)
			assert.True(t, matrix.IsSymmetric(kk, 1e-3))

			mm, err := m.M()
			require.NoError(t, err)
			r, c = mm.Dims()
			assert.Equal(t, size, r)
			assert.Equal(t, size, c)
			assert.True(t, matrix.IsSymmetric(mm, 1e-9))
		})
	}
}

func TestEmptyModel(t *testing.T) {
	m := New()
	_, err := m.K(1)
	assert.ErrorIs(t, err, femerr.ErrSolution)
	_, err = m.M()
	assert.ErrorIs(t, err, femerr.ErrSolution)
	_, err = m.StartNode()
	assert.ErrorIs(t, err, femerr.ErrSolution)
	assert.ErrorIs(t, m.AssignMass(entry.NewMass(), 0, DefaultTolerance), femerr.ErrValue)
	assert.Equal(t, 0, m.Order())
	assert.Nil(t, m.DOFs())
}

func TestNodeByHeight(t *testing.T) {
	m := newChain(t, beam.Bernoulli2, 4)

	n, err := m.NodeByHeight(2.00001, DefaultTolerance)
	require.NoError(t, err)
	assert.Equal(t, 2.0, n.Coord(dof.X))

	_, err = m.NodeByHeight(2.5, DefaultTolerance)
	assert.ErrorIs(t, err, femerr.ErrLookup)

	// a tolerance spanning two nodes is ambiguous
	_, err = m.NodeByHeight(2.5, 0.6)
	assert.ErrorIs(t, err, femerr.ErrLookup)
}

func TestAssignMass(t *testing.T) {
	mass := entry.NewMass()
	require.NoError(t, mass.SetMass(10))

	tests := []struct {
		name string
		x    float64
		want int
	}{
		{"exact", 2.0, 2},
		{"within tolerance", 3.00005, 3},
		{"midpoint goes to lower node", 1.5, 1},
		{"nearer upper node", 1.7, 2},
		{"nearer lower node", 1.2, 1},
		{"start", 0, 0},
		{"end", 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newChain(t, beam.Bernoulli2, 4)
			require.NoError(t, m.AssignMass(mass, tt.x, DefaultTolerance))
			assert.True(t, m.HasMass(tt.want))
			assert.Equal(t, 1, m.MassCount())
		})
	}

	m := newChain(t, beam.Bernoulli2, 4)
	assert.ErrorIs(t, m.AssignMass(mass, -0.1, DefaultTolerance), femerr.ErrValue)
	assert.ErrorIs(t, m.AssignMass(mass, 4.1, DefaultTolerance), femerr.ErrValue)
}

func TestMassesEnterSystemMatrix(t *testing.T) {
	m := newChain(t, beam.Bernoulli2, 2)
	plain, err := m.M()
	require.NoError(t, err)

	mass := entry.NewMass()
	require.NoError(t, mass.SetMass(500))
	require.NoError(t, mass.SetMMOI(dof.PHI, 20))
	end := m.EndNodeOrNil()
	require.NoError(t, m.AddMass(end, mass))
	require.NoError(t, m.AddMass(end, mass))

	// stored as copy
	require.NoError(t, mass.SetMass(1))
	assert.InDelta(t, 1000.0, m.PointMass(), 1e-12)
	assert.InDelta(t, 3000.0, m.Mass(), 1e-9)

	got, err := m.M()
	require.NoError(t, err)
	var diff mat.Dense
	diff.Sub(got, plain)
	assert.InDelta(t, 1000.0, diff.At(4, 4), 1e-9)
	assert.InDelta(t, 40.0, diff.At(5, 5), 1e-9)
	assert.InDelta(t, 0.0, diff.At(2, 2), 1e-9)

	ms, err := m.MassesOf(2)
	require.NoError(t, err)
	assert.Len(t, ms, 2)
	_, err = m.MassesOf(0)
	assert.ErrorIs(t, err, femerr.ErrLookup)
	assert.Equal(t, []int{2}, m.MassNodes())

	stranger, err := node.New(end.DOFs(), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, m.AddMass(stranger, mass), femerr.ErrTopology)
}

func TestSpringsEnterSystemMatrix(t *testing.T) {
	m := newChain(t, beam.Bernoulli2, 2)
	plain, err := m.K(1)
	require.NoError(t, err)

	s := entry.NewSpring()
	require.NoError(t, s.SetValue(dof.W, 3.1e8))
	start := m.nodes[0]
	require.NoError(t, m.AttachSpring(start, s))

	got, err := m.K(1)
	require.NoError(t, err)
	assert.InDelta(t, plain.At(0, 0)+3.1e8, got.At(0, 0), 1e-3)
	assert.InDelta(t, plain.At(1, 1), got.At(1, 1), 1e-9)
	assert.True(t, m.HasSpring(0))
	assert.Equal(t, 1, m.SpringCount())
	assert.Equal(t, []int{0}, m.SpringNodes())

	axial := entry.NewSpring()
	require.NoError(t, axial.SetValue(dof.U, 1))
	assert.ErrorIs(t, m.AttachSpring(start, axial), femerr.ErrTopology)
}

func TestCloneIsIndependent(t *testing.T) {
	m := newChain(t, beam.Bernoulli2PDelta, 3)
	mass := entry.NewMass()
	require.NoError(t, mass.SetMass(10))
	require.NoError(t, m.AssignMass(mass, 3, DefaultTolerance))
	start, err := m.StartNode()
	require.NoError(t, err)
	require.NoError(t, start.SetDOF(dof.W, 0))

	c := m.Clone()
	assert.Equal(t, m.Coords(dof.X), c.Coords(dof.X))
	assert.Equal(t, 1, c.MassCount())

	// clone beams are chained on the clone arena
	for i := 0; i < c.Count(); i++ {
		b, err := c.Beam(i)
		require.NoError(t, err)
		assert.Same(t, c.nodes[i], b.Start())
		assert.Same(t, c.nodes[i+1], b.End())
		assert.NotSame(t, m.nodes[i], b.Start())
	}

	cb, err := c.Beam(0)
	require.NoError(t, err)
	cb.(beam.AxialLoaded).SetAxialForce(-100)
	mb, err := m.Beam(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mb.(beam.AxialLoaded).AxialForce())

	require.NoError(t, c.Offset(map[dof.Axis]float64{dof.X: 10}))
	assert.Equal(t, 0.0, start.Coord(dof.X))
	assert.True(t, c.nodes[0].IsSet(dof.W))

	// read accessors hand out copies
	nodes := m.Nodes()
	require.NoError(t, nodes[0].SetCoord(dof.X, 99))
	assert.Equal(t, 0.0, start.Coord(dof.X))
	beams := m.Beams()
	assert.Len(t, beams, 3)
	assert.NotSame(t, start, beams[0].Start())
}
