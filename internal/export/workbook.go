// Package export writes run results to files
package export

import (
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gotower/internal/eigen"
	"github.com/alexiusacademia/gotower/internal/report"
	"github.com/alexiusacademia/gotower/internal/version"
)

// Sheet names of the result workbook
const (
	SheetInfo        = "info"
	SheetFrequencies = "frequencies"
	SheetModes       = "modes"
)

// Options control how a workbook is written
type Options struct {
	Overwrite bool   // replace an existing file
	RunID     string // identifier stored in the info sheet, generated if empty
	Source    string // input file of the run
}

// Workbook writes the report tables as detail sheets plus numeric
// frequency and mode shape sheets with a scatter chart of all modes.
// It returns the run identifier stored in the workbook.
func Workbook(path string, rep *report.Report, r *eigen.Result, opts Options) (string, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".xlsx" {
		return "", fmt.Errorf("unsupported workbook extension %q, expected .xlsx", ext)
	}
	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", &fs.PathError{Op: "export", Path: path, Err: fs.ErrExist}
		}
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetInfo); err != nil {
		return "", err
	}
	if err := writeInfo(f, runID, opts.Source, r); err != nil {
		return "", err
	}

	for _, t := range rep.Tables {
		if t.Title == "frequencies" || t.Title == "mode shapes" {
			continue
		}
		if err := writeTable(f, t); err != nil {
			return "", fmt.Errorf("sheet %q: %w", t.Title, err)
		}
	}

	if r != nil {
		if err := writeFrequencies(f, r); err != nil {
			return "", err
		}
		if err := writeModes(f, r); err != nil {
			return "", err
		}
	}

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:      "Eigenfrequency analysis",
		Creator:    "gotower " + version.Version,
		Identifier: runID,
		Created:    time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return runID, nil
}

func writeInfo(f *excelize.File, runID, source string, r *eigen.Result) error {
	rows := [][]any{
		{"run_id", runID},
		{"source", source},
		{"program", "gotower " + version.Version},
	}
	if r != nil {
		rows = append(rows,
			[]any{"support", r.Support.String()},
			[]any{"order", r.Order},
			[]any{"modes", r.ModeCount()},
		)
	}
	return setRows(f, SheetInfo, rows)
}

func writeTable(f *excelize.File, t *report.Table) error {
	sheet := t.Title
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	rows := make([][]any, 0, len(t.Rows)+1)
	rows = append(rows, toRow(t.Columns, false))
	for _, r := range t.Rows {
		rows = append(rows, toRow(r, true))
	}
	return setRows(f, sheet, rows)
}

func writeFrequencies(f *excelize.File, r *eigen.Result) error {
	if _, err := f.NewSheet(SheetFrequencies); err != nil {
		return err
	}
	rows := [][]any{{"mode", "f [Hz]", "T [s]"}}
	periods := r.Periods()
	for i, freq := range r.Frequencies {
		rows = append(rows, []any{i + 1, freq, periods[i]})
	}
	return setRows(f, SheetFrequencies, rows)
}

func writeModes(f *excelize.File, r *eigen.Result) error {
	if _, err := f.NewSheet(SheetModes); err != nil {
		return err
	}

	nodes, cols := r.ModeShapes.Dims()
	header := []any{"x"}
	for _, name := range r.ModeNames() {
		header = append(header, name)
	}
	rows := [][]any{header}
	for i := 0; i < nodes; i++ {
		row := make([]any, cols)
		for j := 0; j < cols; j++ {
			row[j] = r.ModeShapes.At(i, j)
		}
		rows = append(rows, row)
	}
	if err := setRows(f, SheetModes, rows); err != nil {
		return err
	}

	// x runs upwards, deflections horizontally
	xRange, err := columnRange(SheetModes, 1, 2, nodes+1)
	if err != nil {
		return err
	}
	chart := &excelize.Chart{
		Type:      excelize.Scatter,
		Title:     []excelize.RichTextRun{{Text: "Mode shapes"}},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{Width: 480, Height: 640},
		XAxis: excelize.ChartAxis{
			MajorGridLines: true,
			Title:          []excelize.RichTextRun{{Text: "lateral deflection"}},
		},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
			Title:          []excelize.RichTextRun{{Text: "x"}},
		},
	}
	for j := 1; j < cols; j++ {
		name, err := excelize.CoordinatesToCellName(j+1, 1, true)
		if err != nil {
			return err
		}
		values, err := columnRange(SheetModes, j+1, 2, nodes+1)
		if err != nil {
			return err
		}
		chart.Series = append(chart.Series, excelize.ChartSeries{
			Name:       SheetModes + "!" + name,
			Categories: values,
			Values:     xRange,
			Line:       excelize.ChartLine{Width: 1.5},
			Marker:     excelize.ChartMarker{Symbol: "circle", Size: 5},
		})
	}

	anchor, err := excelize.CoordinatesToCellName(cols+2, 2)
	if err != nil {
		return err
	}
	return f.AddChart(SheetModes, anchor, chart)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// toRow converts numeric cells to floats so they stay numbers in the sheet
func toRow(cells []string, numeric bool) []any {
	row := make([]any, len(cells))
	for i, c := range cells {
		row[i] = c
		if !numeric {
			continue
		}
		if v, err := strconv.ParseFloat(c, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			row[i] = v
		}
	}
	return row
}

func columnRange(sheet string, col, first, last int) (string, error) {
	from, err := excelize.CoordinatesToCellName(col, first, true)
	if err != nil {
		return "", err
	}
	to, err := excelize.CoordinatesToCellName(col, last, true)
	if err != nil {
		return "", err
	}
	return sheet + "!" + from + ":" + to, nil
}
