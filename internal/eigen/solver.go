package eigen

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gotower/internal/config"
	"github.com/alexiusacademia/gotower/internal/dof"
	"github.com/alexiusacademia/gotower/internal/femerr"
	"github.com/alexiusacademia/gotower/internal/forces"
	"github.com/alexiusacademia/gotower/internal/matrix"
	"github.com/alexiusacademia/gotower/internal/model"
	"github.com/alexiusacademia/gotower/internal/node"
)

const (
	// dofTolerance decides whether a prescribed start node DOF is zero
	dofTolerance = 1.0e-12
	// negativeTolerance is the relative size below which negative
	// eigenvalues are treated as round-off of a zero eigenvalue
	negativeTolerance = 1.0e-9
)

// Support is the boundary condition found at the start node
type Support int

const (
	// Fixed means every DOF of the start node is prescribed as 0.0
	Fixed Support = iota + 1
	// Elastic means a spring covers every DOF of the start node
	Elastic
)

func (s Support) String() string {
	switch s {
	case Fixed:
		return "fixed"
	case Elastic:
		return "spring"
	default:
		return "undefined"
	}
}

// FlexSolver finds the lowest flexural eigenfrequencies and mode shapes of
// a beam chain model.
//
// The lowest modes are assumed to be the flexural ones. With an extremely
// soft axial support other modes may be returned instead.
type FlexSolver struct {
	model          *model.Model
	order          int
	modeCount      int
	normalize      bool
	preferPositive bool
	gravity        float64
	logger         *zap.Logger
}

// NewFlexSolver creates a solver with order 1, 3 modes, normalized shapes
// and gravity 9.81
func NewFlexSolver() *FlexSolver {
	return &FlexSolver{
		order:     1,
		modeCount: 3,
		normalize: true,
		gravity:   9.81,
		logger:    zap.NewNop(),
	}
}

// SetModel sets the model to solve; it is cloned on every Solve
func (s *FlexSolver) SetModel(m *model.Model) error {
	if m == nil {
		return femerr.Valuef("unable to set undefined model")
	}
	s.model = m
	return nil
}

// SetOrder sets the theory order, 2 includes p-Delta effects
func (s *FlexSolver) SetOrder(order int) error {
	if order != 1 && order != 2 {
		return femerr.Valuef("unsupported order (of theory): %d, allowed are: 1 or 2", order)
	}
	s.order = order
	return nil
}

// SetModeCount sets the number of lowest modes to return
func (s *FlexSolver) SetModeCount(count int) error {
	if count < config.MinModes || count > config.MaxModes {
		return femerr.Valuef("invalid mode count %d, valid is: %d <= mode_count <= %d",
			count, config.MinModes, config.MaxModes)
	}
	s.modeCount = count
	return nil
}

// SetNormalizeShapes scales each mode to a maximum absolute value of 1.0.
// Without normalization mode shapes are mass normalized.
func (s *FlexSolver) SetNormalizeShapes(normalize bool) {
	s.normalize = normalize
}

// SetPreferPositiveLateral flips all modes if the first mode ends negative
func (s *FlexSolver) SetPreferPositiveLateral(prefer bool) {
	s.preferPositive = prefer
}

// SetGravity sets the earth acceleration for second order axial forces
func (s *FlexSolver) SetGravity(gravity float64) error {
	if gravity < 0 {
		return femerr.Valuef("invalid gravity = %g, required: gravity >= 0.0", gravity)
	}
	s.gravity = gravity
	return nil
}

// SetLogger sets the logger, nil disables logging
func (s *FlexSolver) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.logger = logger
}

// Configure applies run parameters
func (s *FlexSolver) Configure(p config.Parameters) error {
	if err := s.SetOrder(p.Order()); err != nil {
		return err
	}
	if err := s.SetModeCount(p.NumberOfModes); err != nil {
		return err
	}
	if err := s.SetGravity(p.Gravity); err != nil {
		return err
	}
	s.SetNormalizeShapes(p.NormalizeModeShapes)
	s.SetPreferPositiveLateral(p.PreferPositiveLateralModes)
	return nil
}

// Order returns the configured theory order
func (s *FlexSolver) Order() int { return s.order }

// ModeCount returns the configured number of modes
func (s *FlexSolver) ModeCount() int { return s.modeCount }

// Gravity returns the configured earth acceleration
func (s *FlexSolver) Gravity() float64 { return s.gravity }

// Solve computes frequencies [Hz] and lateral mode shapes. The caller's
// model is never changed.
func (s *FlexSolver) Solve() (*Result, error) {
	if s.model == nil {
		return nil, femerr.Solutionf("unable to solve without model")
	}
	if s.model.IsEmpty() {
		return nil, femerr.Solutionf("model is empty")
	}
	if s.order > s.model.Order() {
		return nil, femerr.Solutionf("order of solution is set to %d but model only supports %d for %s",
			s.order, s.model.Order(), s.model.Kind())
	}

	m := s.model.Clone()
	dofs := m.DOFs()
	dofNum := len(dofs)
	log := s.logger.With(
		zap.Int("order", s.order),
		zap.Int("modes", s.modeCount),
		zap.Int("beams", m.Count()),
		zap.Stringer("beam_type", m.Kind()),
	)
	log.Debug("solving eigenvalue problem")

	if s.order == 2 {
		if err := s.applyAxialForces(m); err != nil {
			return nil, err
		}
	}

	sysM, err := m.M()
	if err != nil {
		return nil, err
	}
	sysK, err := m.K(s.order)
	if err != nil {
		return nil, err
	}

	support, err := supportOf(m)
	if err != nil {
		return nil, err
	}
	log.Debug("boundary condition", zap.Stringer("support", support))

	if support == Fixed {
		if sysM, err = matrix.DropLeading(sysM, dofNum); err != nil {
			return nil, err
		}
		if sysK, err = matrix.DropLeading(sysK, dofNum); err != nil {
			return nil, err
		}
	}
	size, _ := sysM.Dims()
	if s.modeCount > size {
		return nil, femerr.Solutionf("mode count %d exceeds the %d DOF of the system", s.modeCount, size)
	}
	log.Debug("system matrices assembled", zap.Int("size", size))

	values, vectors, err := generalizedEigen(sysK, sysM)
	if err != nil {
		return nil, err
	}

	freqs, idx, err := frequencies(values)
	if err != nil {
		return nil, err
	}
	freqs, idx = freqs[:s.modeCount], idx[:s.modeCount]

	lat := dof.Index(dofs, dof.W)
	rows := size / dofNum
	offset := 0
	if support == Fixed {
		offset = 1
	}
	coords := m.Coords(dof.X)
	shapes := mat.NewDense(rows+offset, 1+s.modeCount, nil)
	for i, x := range coords {
		shapes.Set(i, 0, x)
	}
	for j, col := range idx {
		for r := 0; r < rows; r++ {
			shapes.Set(r+offset, j+1, vectors.At(r*dofNum+lat, col))
		}
	}

	if s.normalize {
		normalizeColumns(shapes)
	}
	if s.preferPositive && shapes.At(rows+offset-1, 1) < 0 {
		flipModes(shapes)
	}

	log.Info("eigenvalue problem solved", zap.Float64s("frequencies", freqs))
	return &Result{
		Frequencies: freqs,
		ModeShapes:  shapes,
		Support:     support,
		Order:       s.order,
	}, nil
}

// applyAxialForces loads the beams of m with accumulated dead load
func (s *FlexSolver) applyAxialForces(m *model.Model) error {
	fs, err := forces.NewSolver(m)
	if err != nil {
		return err
	}
	normal, err := fs.BeamsNormalForces(s.gravity, true)
	if err != nil {
		return err
	}
	s.logger.Debug("axial forces", zap.Float64s("normal_forces", normal))
	return fs.SetAxialForces(normal)
}

// supportOf detects the boundary condition at the start node. Exactly one
// of a full spring or all DOF fixed to 0.0 must be present.
func supportOf(m *model.Model) (Support, error) {
	start, err := m.StartNode()
	if err != nil {
		return 0, err
	}
	dofs := m.DOFs()

	elastic := false
	if spring, err := m.SpringOf(0); err == nil {
		elastic = true
		for _, d := range dofs {
			if !spring.Has(d) {
				elastic = false
			}
		}
	}
	fixed := allZero(start, dofs)

	switch {
	case elastic && fixed:
		return 0, femerr.Solutionf("ambiguous boundary conditions, start node has a spring and all DOF set to 0.0")
	case elastic:
		return Elastic, nil
	case fixed:
		return Fixed, nil
	}
	return 0, femerr.Solutionf("insufficient boundary conditions, set spring or 0.0 for all DOF of start node")
}

func allZero(n *node.Node, dofs []dof.DOF) bool {
	for _, d := range dofs {
		v, err := n.DOF(d)
		if err != nil || !matrix.IsEqual(0, v, dofTolerance) {
			return false
		}
	}
	return true
}

// generalizedEigen solves K x = lambda M x for symmetric K and symmetric
// positive definite M. With M = L L^T the problem becomes the standard
// symmetric problem (L^-1 K L^-T) y = lambda y, x = L^-T y.
func generalizedEigen(k, m mat.Matrix) ([]float64, *mat.Dense, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(matrix.Symmetrize(m)); !ok {
		return nil, nil, femerr.Solutionf("system mass matrix is not positive definite")
	}
	var l mat.TriDense
	chol.LTo(&l)

	var linv mat.TriDense
	if err := linv.InverseTri(&l); err != nil {
		return nil, nil, femerr.Solutionf("unable to invert mass matrix factor: %v", err)
	}

	var tmp, a mat.Dense
	tmp.Mul(&linv, k)
	a.Mul(&tmp, linv.T())

	var es mat.EigenSym
	if ok := es.Factorize(matrix.Symmetrize(&a), true); !ok {
		return nil, nil, femerr.Solutionf("eigen decomposition failed")
	}
	values := es.Values(nil)
	var y mat.Dense
	es.VectorsTo(&y)

	var x mat.Dense
	x.Mul(linv.T(), &y)
	return values, &x, nil
}

// frequencies converts eigenvalues to frequencies [Hz] sorted ascending
// and returns the eigenvalue index of each
func frequencies(values []float64) ([]float64, []int, error) {
	scale := 0.0
	for _, v := range values {
		scale = math.Max(scale, math.Abs(v))
	}

	freqs := make([]float64, len(values))
	for i, v := range values {
		if v < 0 {
			if -v > negativeTolerance*scale {
				return nil, nil, femerr.Solutionf("negative eigenvalue %g, system is unstable", v)
			}
			v = 0
		}
		freqs[i] = math.Sqrt(v) / (2 * math.Pi)
	}
	idx := make([]int, len(freqs))
	floats.Argsort(freqs, idx)
	return freqs, idx, nil
}

// normalizeColumns scales mode columns 1..n to max |value| = 1.0
func normalizeColumns(shapes *mat.Dense) {
	r, c := shapes.Dims()
	for j := 1; j < c; j++ {
		col := mat.Col(nil, j, shapes)
		absMax := 0.0
		for _, v := range col {
			absMax = math.Max(absMax, math.Abs(v))
		}
		if absMax == 0 {
			continue
		}
		for i := 0; i < r; i++ {
			shapes.Set(i, j, col[i]/absMax)
		}
	}
}

// flipModes negates every mode column, the coordinate column is kept
func flipModes(shapes *mat.Dense) {
	r, c := shapes.Dims()
	for i := 0; i < r; i++ {
		for j := 1; j < c; j++ {
			shapes.Set(i, j, -shapes.At(i, j))
		}
	}
}
