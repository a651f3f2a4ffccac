package eigen

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gotower/internal/femerr"
)

// Result holds the outcome of FlexSolver.Solve
type Result struct {
	// Frequencies [Hz] in ascending order, one per mode
	Frequencies []float64
	// ModeShapes has one row per node. Column 0 is the X coordinate,
	// column i the lateral deflection of mode i.
	ModeShapes *mat.Dense
	Support    Support
	Order      int
}

// ModeCount returns the number of modes
func (r *Result) ModeCount() int {
	return len(r.Frequencies)
}

// Coords returns the X coordinate of each node
func (r *Result) Coords() []float64 {
	return mat.Col(nil, 0, r.ModeShapes)
}

// Mode returns the lateral deflections of mode i, starting at 1
func (r *Result) Mode(i int) ([]float64, error) {
	if i < 1 || i > r.ModeCount() {
		return nil, femerr.Lookupf("mode %d out of range [1, %d]", i, r.ModeCount())
	}
	return mat.Col(nil, i, r.ModeShapes), nil
}

// Periods returns 1/f for each frequency
func (r *Result) Periods() []float64 {
	periods := make([]float64, len(r.Frequencies))
	for i, f := range r.Frequencies {
		if f > 0 {
			periods[i] = 1 / f
		}
	}
	return periods
}

// ModeNames returns "mode1", "mode2", ...
func (r *Result) ModeNames() []string {
	names := make([]string, r.ModeCount())
	for i := range names {
		names[i] = fmt.Sprintf("mode%d", i+1)
	}
	return names
}
