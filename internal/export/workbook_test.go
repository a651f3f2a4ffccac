package export

import (
	"io/fs"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gotower/internal/config"
	"github.com/alexiusacademia/gotower/internal/eigen"
	"github.com/alexiusacademia/gotower/internal/input"
	"github.com/alexiusacademia/gotower/internal/report"
)

func sample(t *testing.T) (*report.Report, *eigen.Result) {
	t.Helper()
	run, err := input.Example().Build()
	require.NoError(t, err)

	n := run.Model.NodeCount()
	shapes := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		shapes.Set(i, 0, x*31)
		shapes.Set(i, 1, x*x)
		shapes.Set(i, 2, x*x-x)
	}
	r := &eigen.Result{
		Frequencies: []float64{0.987654321, 4.5},
		ModeShapes:  shapes,
		Support:     eigen.Fixed,
		Order:       1,
	}
	return report.Compile(run.Header, config.Default(), run.Model, r), r
}

func TestWorkbook(t *testing.T) {
	rep, r := sample(t)
	path := filepath.Join(t.TempDir(), "out", "result.xlsx")

	runID, err := Workbook(path, rep, r, Options{Source: "example.yaml"})
	require.NoError(t, err)
	_, err = uuid.Parse(runID)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		SheetInfo, "header", "parameters", "model", "node masses",
		"boundary conditions", "springs", SheetFrequencies, SheetModes,
	}, f.GetSheetList())

	id, err := f.GetCellValue(SheetInfo, "B1")
	require.NoError(t, err)
	assert.Equal(t, runID, id)

	freq, err := f.GetCellValue(SheetFrequencies, "B2")
	require.NoError(t, err)
	v, err := strconv.ParseFloat(freq, 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.987654321, v, 1e-9, "full precision in the numeric sheet")

	rows, err := f.GetRows(SheetModes)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "mode1", "mode2"}, rows[0])
	nodes, _ := r.ModeShapes.Dims()
	assert.Len(t, rows, nodes+1)

	beamType, err := f.GetCellValue("model", "A2")
	require.NoError(t, err)
	assert.Equal(t, "B_2DOF", beamType)
}

func TestWorkbookRefusesOverwrite(t *testing.T) {
	rep, r := sample(t)
	path := filepath.Join(t.TempDir(), "result.xlsx")

	_, err := Workbook(path, rep, r, Options{RunID: "first"})
	require.NoError(t, err)

	_, err = Workbook(path, rep, r, Options{})
	assert.ErrorIs(t, err, fs.ErrExist)

	id, err := Workbook(path, rep, r, Options{Overwrite: true, RunID: "second"})
	require.NoError(t, err)
	assert.Equal(t, "second", id)
}

func TestWorkbookWithoutResult(t *testing.T) {
	rep, _ := sample(t)
	path := filepath.Join(t.TempDir(), "model.xlsx")

	_, err := Workbook(path, rep, nil, Options{})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.NotContains(t, f.GetSheetList(), SheetModes)
}

func TestWorkbookExtension(t *testing.T) {
	rep, r := sample(t)
	_, err := Workbook(filepath.Join(t.TempDir(), "result.csv"), rep, r, Options{})
	assert.Error(t, err)
}

func TestToRow(t *testing.T) {
	row := toRow([]string{"B_2DOF", "2.1e+11", "-", "NaN", "3"}, true)
	assert.Equal(t, []any{"B_2DOF", 2.1e11, "-", "NaN", 3.0}, row)

	row = toRow([]string{"1"}, false)
	assert.Equal(t, []any{"1"}, row)
}
