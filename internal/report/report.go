// Package report compiles models, parameters and eigen results into tables
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gotower/internal/config"
	"github.com/alexiusacademia/gotower/internal/dof"
	"github.com/alexiusacademia/gotower/internal/eigen"
	"github.com/alexiusacademia/gotower/internal/model"
)

// Report is an ordered set of tables
type Report struct {
	Tables []*Table
}

// Compile collects all tables of a solved run. Empty header and missing
// result are skipped.
func Compile(header map[string]any, p config.Parameters, m *model.Model, r *eigen.Result) *Report {
	rep := &Report{}
	if len(header) > 0 {
		rep.Tables = append(rep.Tables, HeaderTable(header))
	}
	rep.Tables = append(rep.Tables,
		ParameterTable(p),
		ModelTable(m),
		MassTable(m),
		BoundaryTable(m),
		SpringTable(m),
	)
	if r != nil {
		rep.Tables = append(rep.Tables, FrequencyTable(r), ModeShapeTable(r))
	}
	return rep
}

// Table returns the table with the given title
func (r *Report) Table(title string) (*Table, bool) {
	for _, t := range r.Tables {
		if t.Title == title {
			return t, true
		}
	}
	return nil, false
}

// Render writes all tables
func (r *Report) Render(w io.Writer) error {
	for _, t := range r.Tables {
		if err := t.Render(w); err != nil {
			return err
		}
	}
	return nil
}

// HeaderTable lists the free-form header entries sorted by key
func HeaderTable(header map[string]any) *Table {
	t := &Table{Title: "header", Columns: []string{"key", "value"}}
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		t.Append(k, fmt.Sprint(header[k]))
	}
	return t
}

// ParameterTable lists the run parameters
func ParameterTable(p config.Parameters) *Table {
	t := &Table{Title: "parameters", Columns: []string{"parameter", "value"}}
	t.Append("gravity", Num(p.Gravity))
	t.Append("p_delta", strconv.FormatBool(p.PDelta))
	t.Append("normalize_mode_shapes", strconv.FormatBool(p.NormalizeModeShapes))
	t.Append("number_of_modes", strconv.Itoa(p.NumberOfModes))
	t.Append("prefer_positive_lateral_mode_shape_values", strconv.FormatBool(p.PreferPositiveLateralModes))
	return t
}

// ModelTable has one row per beam
func ModelTable(m *model.Model) *Table {
	t := &Table{
		Title:   "model",
		Columns: []string{"type", "x1", "x2", "length", "area", "area_moi", "e_modul", "mass"},
	}
	for _, b := range m.Beams() {
		p := b.Properties()
		t.Append(
			b.Kind().String(),
			Num(b.Start().Coord(dof.X)),
			Num(b.End().Coord(dof.X)),
			Num(b.Length()),
			Num(p.Area),
			Num(p.AreaMOI),
			Num(p.EModulus),
			Num(p.Mass),
		)
	}
	return t
}

// MassTable has one row per lumped mass, unset DOF values show "-"
func MassTable(m *model.Model) *Table {
	t := &Table{Title: "node masses", Columns: nodeColumns(m)}
	if m.IsEmpty() {
		return t
	}
	masses := m.NodeMasses()
	for _, i := range m.MassNodes() {
		n, _ := m.Node(i)
		for _, mass := range masses[i] {
			row := []string{strconv.Itoa(i), Num(n.Coord(dof.X))}
			for _, d := range m.DOFs() {
				v, err := mass.Value(d)
				row = append(row, cell(v, err == nil))
			}
			t.Append(row...)
		}
	}
	return t
}

// BoundaryTable lists every node with at least one prescribed DOF
func BoundaryTable(m *model.Model) *Table {
	t := &Table{Title: "boundary conditions", Columns: nodeColumns(m)}
	if m.IsEmpty() {
		return t
	}
	for i := 0; i < m.NodeCount(); i++ {
		n, _ := m.Node(i)
		if !n.HasSetDOFs() {
			continue
		}
		row := []string{strconv.Itoa(i), Num(n.Coord(dof.X))}
		for _, d := range m.DOFs() {
			v, err := n.DOF(d)
			row = append(row, cell(v, err == nil))
		}
		t.Append(row...)
	}
	return t
}

// SpringTable has one row per elastic support
func SpringTable(m *model.Model) *Table {
	t := &Table{Title: "springs", Columns: nodeColumns(m)}
	if m.IsEmpty() {
		return t
	}
	springs := m.Springs()
	for _, i := range m.SpringNodes() {
		n, _ := m.Node(i)
		row := []string{strconv.Itoa(i), Num(n.Coord(dof.X))}
		for _, d := range m.DOFs() {
			v, err := springs[i].Value(d)
			row = append(row, cell(v, err == nil))
		}
		t.Append(row...)
	}
	return t
}

// FrequencyTable lists frequency and period per mode
func FrequencyTable(r *eigen.Result) *Table {
	t := &Table{Title: "frequencies", Columns: []string{"mode", "f [Hz]", "T [s]"}}
	periods := r.Periods()
	for i, f := range r.Frequencies {
		t.Append(strconv.Itoa(i+1), Num(f), Num(periods[i]))
	}
	return t
}

// ModeShapeTable lists the lateral deflection of every mode per node
func ModeShapeTable(r *eigen.Result) *Table {
	t := &Table{Title: "mode shapes", Columns: append([]string{"x"}, r.ModeNames()...)}
	rows, cols := r.ModeShapes.Dims()
	for i := 0; i < rows; i++ {
		row := make([]string, cols)
		for j := 0; j < cols; j++ {
			row[j] = Num(r.ModeShapes.At(i, j))
		}
		t.Append(row...)
	}
	return t
}

func nodeColumns(m *model.Model) []string {
	cols := []string{"node", "x"}
	if m.IsEmpty() {
		return cols
	}
	for _, d := range m.DOFs() {
		cols = append(cols, strings.ToLower(d.Name()))
	}
	return cols
}

func cell(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return Num(v)
}
