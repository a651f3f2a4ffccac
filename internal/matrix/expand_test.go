package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gotower/internal/femerr"
)

func ones(n int) *mat.Dense {
	d := make([]float64, n*n)
	for i := range d {
		d[i] = 1
	}
	return mat.NewDense(n, n, d)
}

func TestExpandOverlapsHalfBlock(t *testing.T) {
	sys := mat.NewDense(4, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	})

	got, err := Expand(sys, ones(4), true)
	require.NoError(t, err)

	want := mat.NewDense(6, 6, []float64{
		1, 2, 3, 4, 0, 0,
		5, 6, 7, 8, 0, 0,
		9, 10, 12, 13, 1, 1,
		13, 14, 16, 17, 1, 1,
		0, 0, 1, 1, 1, 1,
		0, 0, 1, 1, 1, 1,
	})
	assert.True(t, mat.Equal(want, got), "\n%v", mat.Formatted(got))

	// the input is untouched
	assert.Equal(t, 11.0, sys.At(2, 2))
}

func TestExpandValidation(t *testing.T) {
	tests := []struct {
		name   string
		global mat.Matrix
		local  mat.Matrix
	}{
		{"small system", mat.NewDense(1, 1, []float64{1}), ones(2)},
		{"asymmetric element", ones(4), mat.NewDense(2, 4, nil)},
		{"small element", ones(4), mat.NewDense(1, 1, []float64{1})},
		{"odd element", ones(4), ones(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(tt.global, tt.local, true)
			assert.ErrorIs(t, err, femerr.ErrValue)
		})
	}
}

func TestAssembleMatchesStepwiseExpand(t *testing.T) {
	a := mat.NewDense(4, 4, []float64{
		4, 1, 0, 2,
		1, 3, 1, 0,
		0, 1, 5, 1,
		2, 0, 1, 6,
	})
	b := ones(4)
	c := mat.NewDense(4, 4, nil)
	c.Scale(2, a)

	step, err := Expand(a, b, true)
	require.NoError(t, err)
	step, err = Expand(step, c, true)
	require.NoError(t, err)

	batch, err := Assemble([]mat.Matrix{a, b, c})
	require.NoError(t, err)

	r, cols := batch.Dims()
	assert.Equal(t, 8, r)
	assert.Equal(t, 8, cols)
	assert.True(t, mat.Equal(step, batch))

	_, err = Assemble(nil)
	assert.ErrorIs(t, err, femerr.ErrValue)
}

func TestAddBlock(t *testing.T) {
	a := mat.NewDense(4, 4, nil)
	AddBlock(a, ones(2), 2)
	AddBlock(a, ones(2), 2)

	assert.Equal(t, 2.0, a.At(3, 3))
	assert.Equal(t, 0.0, a.At(1, 1))
}

func TestDropLeading(t *testing.T) {
	a := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})

	got, err := DropLeading(a, 1)
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{5, 6, 8, 9}), got))

	_, err = DropLeading(a, 3)
	assert.ErrorIs(t, err, femerr.ErrValue)
}

func TestSymmetryHelpers(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 2.0000001, 1})

	assert.True(t, IsSymmetric(a, 1e-6))
	assert.False(t, IsSymmetric(a, 1e-9))
	assert.False(t, IsSymmetric(mat.NewDense(2, 3, nil), 1))

	s := Symmetrize(a)
	assert.InDelta(t, 2.00000005, s.At(0, 1), 1e-12)
	assert.Equal(t, s.At(0, 1), s.At(1, 0))
	assert.True(t, IsEqual(1.0, 1.0+1e-13, 1e-12))
}
