package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gotower/internal/femerr"
)

// Expand adds local into the lower right corner of global with half height
// and width overlap and returns the new, larger matrix.
//
// The result is larger than global by n/2 in each dimension where n is the
// size of local. Values are summed where both matrices overlap, which
// couples the shared node of two consecutive elements. This requires that
// global was built by Expand from element matrices of the same shape, in
// chain order.
func Expand(global, local mat.Matrix, symmetric bool) (*mat.Dense, error) {
	gr, gc := global.Dims()
	lr, lc := local.Dims()

	if gr < 2 || gc < 2 {
		return nil, femerr.Valuef("insufficient sized system matrix: %dx%d", gr, gc)
	}
	if symmetric && lr != lc {
		return nil, femerr.Valuef("element matrix has asymmetric shape: %dx%d", lr, lc)
	}
	if lr < 2 || lc < 2 {
		return nil, femerr.Valuef("insufficient sized element matrix: %dx%d", lr, lc)
	}
	if lr%2 != 0 || lc%2 != 0 {
		return nil, femerr.Valuef("odd sized element matrix: %dx%d", lr, lc)
	}

	r, c := gr+lr/2, gc+lc/2
	out := mat.NewDense(r, c, nil)
	out.Slice(0, gr, 0, gc).(*mat.Dense).Copy(global)

	block := out.Slice(gr-lr/2, r, gc-lc/2, c).(*mat.Dense)
	block.Add(block, local)
	return out, nil
}

// Assemble folds a sequence of element matrices in chain order into a
// single system matrix.
func Assemble(locals []mat.Matrix) (*mat.Dense, error) {
	if len(locals) == 0 {
		return nil, femerr.Valuef("no element matrices to assemble")
	}
	r, c := locals[0].Dims()
	sys := mat.NewDense(r, c, nil)
	sys.Copy(locals[0])

	for _, local := range locals[1:] {
		var err error
		sys, err = Expand(sys, local, true)
		if err != nil {
			return nil, err
		}
	}
	return sys, nil
}

// AddBlock adds block into a at row and column offset idx
func AddBlock(a *mat.Dense, block mat.Matrix, idx int) {
	br, bc := block.Dims()
	dst := a.Slice(idx, idx+br, idx, idx+bc).(*mat.Dense)
	dst.Add(dst, block)
}

// DropLeading returns a copy of a without its first n rows and columns
func DropLeading(a mat.Matrix, n int) (*mat.Dense, error) {
	r, c := a.Dims()
	if n < 0 || n >= r || n >= c {
		return nil, femerr.Valuef("cannot drop %d leading rows and columns of %dx%d matrix", n, r, c)
	}
	out := mat.NewDense(r-n, c-n, nil)
	for i := n; i < r; i++ {
		for j := n; j < c; j++ {
			out.Set(i-n, j-n, a.At(i, j))
		}
	}
	return out, nil
}

// IsEqual evaluates val1 == val2 with absolute tolerance atol
func IsEqual(val1, val2, atol float64) bool {
	return math.Abs(val1-val2) <= atol
}

// IsSymmetric reports whether a is square and a == a^T within tol
func IsSymmetric(a mat.Matrix, tol float64) bool {
	r, c := a.Dims()
	if r != c {
		return false
	}
	return mat.EqualApprox(a, a.T(), tol)
}

// Symmetrize returns (a + a^T)/2 as a symmetric matrix
func Symmetrize(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	return s
}
