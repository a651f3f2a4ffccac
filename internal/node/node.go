package node

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gotower/internal/dof"
	"github.com/alexiusacademia/gotower/internal/femerr"
)

// Node is a point in 3D space carrying a fixed, ordered set of DOF.
//
// A DOF without a value is free and will be computed by solvers; a DOF with
// a value is prescribed, e.g. W = 0.0 at a fixed base. Beams are chained by
// node identity, not by coordinate equality.
type Node struct {
	dofs   []dof.DOF
	values map[dof.DOF]float64
	coords [3]float64
}

// New creates a node supporting dofs, located at coords (missing axes are 0.0)
func New(dofs []dof.DOF, coords map[dof.Axis]float64) (*Node, error) {
	if dofs == nil {
		return nil, femerr.Valuef("undefined set of DOF")
	}
	if len(dofs) == 0 {
		return nil, femerr.Valuef("empty set of DOF")
	}
	if dof.HasDuplicates(dofs) {
		return nil, femerr.Valuef("duplicate DOF in %s", dof.Names(dofs))
	}
	for _, d := range dofs {
		if !d.Valid() {
			return nil, femerr.Valuef("undefined DOF %v", d)
		}
	}

	if err := checkAxes(coords); err != nil {
		return nil, err
	}

	n := &Node{
		dofs:   append([]dof.DOF(nil), dofs...),
		values: make(map[dof.DOF]float64),
	}
	for axis, v := range coords {
		n.coords[axis] = v
	}
	return n, nil
}

// ByAxialLength creates a pair of nodes, the first at the origin and the
// second length away along the X axis.
func ByAxialLength(dofs []dof.DOF, length float64) (*Node, *Node, error) {
	if length <= 0 {
		return nil, nil, femerr.Valuef("invalid length = %g, allowed is length > 0.0", length)
	}
	n1, err := New(dofs, nil)
	if err != nil {
		return nil, nil, err
	}
	n2, err := New(dofs, map[dof.Axis]float64{dof.X: length})
	if err != nil {
		return nil, nil, err
	}
	return n1, n2, nil
}

// ByOffset creates a new node with the DOF set of n, offset by vector.
// DOF values are not copied.
func ByOffset(n *Node, vector map[dof.Axis]float64) (*Node, error) {
	nn, err := New(n.dofs, n.Coords())
	if err != nil {
		return nil, err
	}
	if err := nn.Offset(vector); err != nil {
		return nil, err
	}
	return nn, nil
}

// DOFs returns the supported DOF in order
func (n *Node) DOFs() []dof.DOF {
	return append([]dof.DOF(nil), n.dofs...)
}

// DOFNum is the number of supported DOF
func (n *Node) DOFNum() int {
	return len(n.dofs)
}

// Supports reports whether d is one of the node's DOF
func (n *Node) Supports(d dof.DOF) bool {
	return dof.Contains(n.dofs, d)
}

// Coord returns the coordinate on axis, NaN for an undefined axis
func (n *Node) Coord(axis dof.Axis) float64 {
	if !axis.Valid() {
		return math.NaN()
	}
	return n.coords[axis]
}

// SetCoord sets a single coordinate
func (n *Node) SetCoord(axis dof.Axis, value float64) error {
	if !axis.Valid() {
		return femerr.Valuef("undefined axis %v", axis)
	}
	n.coords[axis] = value
	return nil
}

// SetCoords sets the coordinates present in coords. Nothing is changed if
// one of the axes is undefined.
func (n *Node) SetCoords(coords map[dof.Axis]float64) error {
	if coords == nil {
		return femerr.Valuef("undefined coordinates")
	}
	if err := checkAxes(coords); err != nil {
		return err
	}
	for axis, v := range coords {
		n.coords[axis] = v
	}
	return nil
}

// Coords returns a copy of all coordinates by axis
func (n *Node) Coords() map[dof.Axis]float64 {
	c := make(map[dof.Axis]float64, len(dof.AllAxes))
	for _, axis := range dof.AllAxes {
		c[axis] = n.coords[axis]
	}
	return c
}

// Offset moves the node by vector
func (n *Node) Offset(vector map[dof.Axis]float64) error {
	if len(vector) == 0 {
		return femerr.Valuef("empty offset vector")
	}
	if err := checkAxes(vector); err != nil {
		return err
	}
	for axis, v := range vector {
		n.coords[axis] += v
	}
	return nil
}

// SetDOF prescribes the value of a supported DOF
func (n *Node) SetDOF(d dof.DOF, value float64) error {
	if !n.Supports(d) {
		return femerr.Valuef("unsupported DOF %s for %s", d.Name(), n)
	}
	n.values[d] = value
	return nil
}

// DOF returns the prescribed value of d. It fails for a free DOF, which
// keeps "free" distinguishable from "zero".
func (n *Node) DOF(d dof.DOF) (float64, error) {
	v, ok := n.values[d]
	if !ok {
		return 0, femerr.Lookupf("no value set for DOF %s of %s", d.Name(), n)
	}
	return v, nil
}

// IsSet reports whether d has a prescribed value
func (n *Node) IsSet(d dof.DOF) bool {
	_, ok := n.values[d]
	return ok
}

// SetDOFs lists the DOF with values, in node DOF order
func (n *Node) SetDOFs() []dof.DOF {
	var set []dof.DOF
	for _, d := range n.dofs {
		if n.IsSet(d) {
			set = append(set, d)
		}
	}
	return set
}

// HasSetDOFs reports whether any DOF has a value
func (n *Node) HasSetDOFs() bool {
	return len(n.values) > 0
}

// Distance is the Euclidean distance to other across all axes
func (n *Node) Distance(other *Node) float64 {
	dx := other.coords[dof.X] - n.coords[dof.X]
	dy := other.coords[dof.Y] - n.coords[dof.Y]
	dz := other.coords[dof.Z] - n.coords[dof.Z]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Clone returns a deep copy including DOF values
func (n *Node) Clone() *Node {
	c := &Node{
		dofs:   append([]dof.DOF(nil), n.dofs...),
		values: make(map[dof.DOF]float64, len(n.values)),
		coords: n.coords,
	}
	for d, v := range n.values {
		c.values[d] = v
	}
	return c
}

func (n *Node) String() string {
	parts := make([]string, len(dof.AllAxes))
	for i, axis := range dof.AllAxes {
		parts[i] = fmt.Sprintf("%s=%g", strings.ToUpper(axis.String()), n.coords[axis])
	}
	return "Node[" + strings.Join(parts, ", ") + "]"
}

func checkAxes(coords map[dof.Axis]float64) error {
	for axis := range coords {
		if !axis.Valid() {
			return femerr.Valuef("undefined axis %v", axis)
		}
	}
	return nil
}
