package diagram

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"

	"github.com/alexiusacademia/gotower/internal/eigen"
)

// ModeShapeData holds the curves of a modal analysis
type ModeShapeData struct {
	Coords      []float64   // X of each node, ascending
	Modes       [][]float64 // lateral deflection per mode, one value per node
	Frequencies []float64   // Hz, one per mode
}

// FromResult extracts the mode shape curves of a solved model
func FromResult(r *eigen.Result) ModeShapeData {
	data := ModeShapeData{
		Coords:      r.Coords(),
		Frequencies: append([]float64(nil), r.Frequencies...),
	}
	for i := 1; i <= r.ModeCount(); i++ {
		mode, _ := r.Mode(i)
		data.Modes = append(data.Modes, mode)
	}
	return data
}

// Validate checks that every curve matches the coordinates
func (d ModeShapeData) Validate() error {
	if len(d.Coords) < 2 {
		return fmt.Errorf("mode shapes need at least 2 nodes, got %d", len(d.Coords))
	}
	if !sort.Float64sAreSorted(d.Coords) {
		return fmt.Errorf("node coordinates must be ascending")
	}
	if len(d.Modes) == 0 {
		return fmt.Errorf("no mode shapes")
	}
	if len(d.Frequencies) != len(d.Modes) {
		return fmt.Errorf("%d frequencies for %d modes", len(d.Frequencies), len(d.Modes))
	}
	for i, m := range d.Modes {
		if len(m) != len(d.Coords) {
			return fmt.Errorf("mode %d has %d values for %d nodes", i+1, len(m), len(d.Coords))
		}
	}
	return nil
}

// Legends returns "mode1 (0.473 Hz)", ...
func (d ModeShapeData) Legends() []string {
	out := make([]string, len(d.Modes))
	for i := range d.Modes {
		out[i] = fmt.Sprintf("mode%d (%.3f Hz)", i+1, d.Frequencies[i])
	}
	return out
}

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Magenta,
	asciigraph.Orange,
}

// DrawASCIIModeShapes plots all modes over the height of the model, X runs
// from left to right. Unequal node spacing is resampled onto width columns.
func DrawASCIIModeShapes(data ModeShapeData, width, height int) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}
	if width < 2 || height < 1 {
		return "", fmt.Errorf("invalid plot size %dx%d", width, height)
	}

	series := make([][]float64, len(data.Modes))
	colors := make([]asciigraph.AnsiColor, len(data.Modes))
	for i, m := range data.Modes {
		series[i] = resample(data.Coords, m, width)
		colors[i] = seriesColors[i%len(seriesColors)]
	}

	x0, x1 := data.Coords[0], data.Coords[len(data.Coords)-1]
	graph := asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(data.Legends()...),
		asciigraph.Caption(fmt.Sprintf("lateral deflection over x = %g ... %g", x0, x1)),
	)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("  MODE SHAPES\n")
	sb.WriteString("  ───────────\n\n")
	sb.WriteString(graph)
	sb.WriteString("\n")
	return sb.String(), nil
}

// resample interpolates values linearly onto n equidistant points between
// the first and last coordinate
func resample(coords, values []float64, n int) []float64 {
	grid := floats.Span(make([]float64, n), coords[0], coords[len(coords)-1])
	out := make([]float64, n)
	for i, x := range grid {
		j := sort.SearchFloat64s(coords, x)
		switch {
		case j == 0:
			out[i] = values[0]
		case j >= len(coords):
			out[i] = values[len(values)-1]
		default:
			x0, x1 := coords[j-1], coords[j]
			t := (x - x0) / (x1 - x0)
			out[i] = values[j-1] + t*(values[j]-values[j-1])
		}
	}
	return out
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
