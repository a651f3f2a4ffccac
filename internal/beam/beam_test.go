package beam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gotower/internal/dof"
	"github.com/alexiusacademia/gotower/internal/femerr"
	"github.com/alexiusacademia/gotower/internal/matrix"
	"github.com/alexiusacademia/gotower/internal/node"
)

var testProps = Properties{
	Area:     0.268920331147286,
	AreaMOI:  0.234,
	EModulus: 2.1e11,
	Mass:     2345.8787,
}

func newBeam(t *testing.T, k Kind, length float64, p Properties) Beam {
	t.Helper()
	n1, n2, err := node.ByAxialLength(k.DOFs(), length)
	require.NoError(t, err)
	b, err := New(k, n1, n2, p)
	require.NoError(t, err)
	return b
}

func TestBernoulli2Basics(t *testing.T) {
	b := newBeam(t, Bernoulli2, 2.34, testProps)

	assert.Equal(t, 1, b.Order())
	assert.InDelta(t, 2.34, b.Length(), 1e-12)
	assert.Equal(t, []dof.DOF{dof.W, dof.PHI}, b.DOFs())

	_, ok := b.(AxialLoaded)
	assert.False(t, ok)
}

func TestConstructorRejectsInvalidNodes(t *testing.T) {
	n1, n2, err := node.ByAxialLength([]dof.DOF{dof.W, dof.PHI}, 1.0)
	require.NoError(t, err)
	n3, _, err := node.ByAxialLength([]dof.DOF{dof.U, dof.W, dof.PHI}, 1.0)
	require.NoError(t, err)

	_, err = NewBernoulli2(n1, n1, testProps)
	assert.ErrorIs(t, err, femerr.ErrValue)

	_, err = NewBernoulli2(n1, n3, testProps)
	assert.ErrorIs(t, err, femerr.ErrTopology)

	_, err = NewBernoulli3(n1, n2, testProps)
	assert.ErrorIs(t, err, femerr.ErrTopology)

	_, err = New(Kind(99), n1, n2, testProps)
	assert.ErrorIs(t, err, femerr.ErrValue)
}

func TestMatricesAreSymmetric(t *testing.T) {
	for _, k := range []Kind{Bernoulli2, Bernoulli3, Bernoulli2PDelta} {
		t.Run(k.String(), func(t *testing.T) {
			b := newBeam(t, k, 2.9, testProps)
			if al, ok := b.(AxialLoaded); ok {
				al.SetAxialForce(-1.5e6)
			}

			kk, err := b.K(b.Order())
			require.NoError(t, err)
			mm, err := b.M()
			require.NoError(t, err)

			n := 2 * len(k.DOFs())
			r, c := kk.Dims()
			assert.Equal(t, n, r)
			assert.Equal(t, n, c)
			assert.True(t, matrix.IsSymmetric(kk, 1e-6))
			assert.True(t, matrix.IsSymmetric(mm, 1e-9))
		})
	}
}

func TestStiffnessScalesWithModulus(t *testing.T) {
	b := newBeam(t, Bernoulli3, 2.34, testProps)
	k, err := b.K(1)
	require.NoError(t, err)

	var back mat.Dense
	back.Scale(1/testProps.EModulus, k)
	back.Scale(testProps.EModulus, &back)
	assert.True(t, mat.EqualApprox(k, &back, 1e-6))
}

func TestBernoulli2Matrices(t *testing.T) {
	p := Properties{AreaMOI: 2, EModulus: 3, Mass: 420}
	b := newBeam(t, Bernoulli2, 1.0, p)

	k, err := b.K(1)
	require.NoError(t, err)
	want := mat.NewDense(4, 4, []float64{
		72, 36, -72, 36,
		36, 24, -36, 12,
		-72, -36, 72, -36,
		36, 12, -36, 24,
	})
	assert.True(t, mat.EqualApprox(want, k, 1e-12))

	m, err := b.M()
	require.NoError(t, err)
	wantM := mat.NewDense(4, 4, []float64{
		156, 22, 54, -13,
		22, 4, 13, -3,
		54, 13, 156, -22,
		-13, -3, -22, 4,
	})
	assert.True(t, mat.EqualApprox(wantM, m, 1e-12))

	_, err = b.K(2)
	assert.ErrorIs(t, err, femerr.ErrValue)
}

func TestBernoulli3AxialBlock(t *testing.T) {
	p := Properties{Area: 5, AreaMOI: 2, EModulus: 3, Mass: 420}
	b := newBeam(t, Bernoulli3, 1.0, p)

	k, err := b.K(1)
	require.NoError(t, err)
	assert.Equal(t, 15.0, k.At(0, 0))
	assert.Equal(t, -15.0, k.At(0, 3))
	assert.Equal(t, 0.0, k.At(0, 1))
	assert.InDelta(t, 72.0, k.At(1, 1), 1e-12)
	assert.InDelta(t, 12.0, k.At(2, 5), 1e-12)

	m, err := b.M()
	require.NoError(t, err)
	assert.InDelta(t, 140.0, m.At(0, 0), 1e-12)
	assert.InDelta(t, 70.0, m.At(3, 0), 1e-12)
	assert.InDelta(t, 156.0, m.At(4, 4), 1e-12)

	b.SetProperties(Properties{Area: 0, AreaMOI: 2, EModulus: 3, Mass: 420})
	_, err = b.K(1)
	assert.ErrorIs(t, err, femerr.ErrValue)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		props Properties
	}{
		{"modulus", Properties{AreaMOI: 1, EModulus: 0, Mass: 1}},
		{"area", Properties{Area: -1, AreaMOI: 1, EModulus: 1, Mass: 1}},
		{"mass", Properties{AreaMOI: 1, EModulus: 1, Mass: 0}},
		{"area moi", Properties{AreaMOI: 0, EModulus: 1, Mass: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBeam(t, Bernoulli2, 1.0, tt.props)
			assert.ErrorIs(t, b.Validate(), femerr.ErrValue)
			_, err := b.M()
			assert.ErrorIs(t, err, femerr.ErrValue)
		})
	}

	b := newBeam(t, Bernoulli2, 1.0, Properties{AreaMOI: 1, EModulus: 1, Mass: 1})
	require.NoError(t, b.End().SetCoord(dof.X, 0))
	assert.ErrorIs(t, b.Validate(), femerr.ErrValue)
}

func TestPDeltaStiffness(t *testing.T) {
	b := newBeam(t, Bernoulli2PDelta, 2.0, testProps)
	assert.Equal(t, 2, b.Order())
	assert.Equal(t, Bernoulli2PDelta, b.Kind())

	al, ok := b.(AxialLoaded)
	require.True(t, ok)
	pd := b.(*Bernoulli2DOFPDelta)

	k1, err := pd.K1()
	require.NoError(t, err)
	k, err := b.K(2)
	require.NoError(t, err)
	assert.True(t, mat.Equal(k1, k), "no axial force, no geometric stiffness")

	al.SetAxialForce(-60.0)
	k2, err := pd.K2()
	require.NoError(t, err)
	// -60 / (30*2) = -1
	assert.InDelta(t, -36.0, k2.At(0, 0), 1e-12)
	assert.InDelta(t, -6.0, k2.At(0, 1), 1e-12)
	assert.InDelta(t, 4.0, k2.At(1, 3), 1e-12)

	k, err = b.K(2)
	require.NoError(t, err)
	assert.Less(t, k.At(0, 0), k1.At(0, 0))

	k, err = b.K(1)
	require.NoError(t, err)
	assert.True(t, mat.Equal(k1, k))

	_, err = b.K(3)
	assert.ErrorIs(t, err, femerr.ErrValue)
}

func TestCloneKeepsStateOnNewNodes(t *testing.T) {
	b := newBeam(t, Bernoulli2PDelta, 2.0, testProps)
	b.(AxialLoaded).SetAxialForce(-10)

	n1, n2 := b.Start().Clone(), b.End().Clone()
	c := Clone(b, n1, n2)

	assert.Same(t, n1, c.Start())
	assert.Same(t, n2, c.End())
	assert.Equal(t, -10.0, c.(AxialLoaded).AxialForce())

	c.(AxialLoaded).SetAxialForce(-20)
	assert.Equal(t, -10.0, b.(AxialLoaded).AxialForce())
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"B_2DOF":        Bernoulli2,
		"b_3dof":        Bernoulli3,
		"B_2DOF_II":     Bernoulli2PDelta,
		"B_2DOF_pDelta": Bernoulli2PDelta,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseKind("timoshenko")
	assert.ErrorIs(t, err, femerr.ErrLookup)
	assert.Equal(t, "B_2DOF_II", Bernoulli2PDelta.String())
	assert.False(t, Kind(0).Valid())
}
