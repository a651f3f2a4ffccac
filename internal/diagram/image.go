package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ExportModeShapes draws all mode shapes with the model axis upright and
// saves the image. The format follows the extension (.png, .svg, .pdf),
// any other name gets ".png" appended. It returns the written path.
func ExportModeShapes(data ModeShapeData, title, filename string) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}

	p := plot.New()
	p.Title.Text = "Mode Shapes"
	if title != "" {
		p.Title.Text += " - " + title
	}
	p.X.Label.Text = "Lateral deflection"
	p.Y.Label.Text = "x"
	p.Legend.Top = true
	p.Legend.Left = true

	x0, x1 := data.Coords[0], data.Coords[len(data.Coords)-1]

	// Undeformed axis
	axis, err := plotter.NewLine(plotter.XYs{{X: 0, Y: x0}, {X: 0, Y: x1}})
	if err != nil {
		return "", err
	}
	axis.LineStyle.Width = vg.Points(1)
	axis.LineStyle.Color = color.Gray{Y: 128}
	axis.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(axis)

	legends := data.Legends()
	for i, mode := range data.Modes {
		pts := make(plotter.XYs, len(mode))
		for j, v := range mode {
			pts[j] = plotter.XY{X: v, Y: data.Coords[j]}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", fmt.Errorf("mode %d: %w", i+1, err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = plotutil.Color(i)
		line.LineStyle.Dashes = plotutil.Dashes(i)

		nodes, err := plotter.NewScatter(pts)
		if err != nil {
			return "", fmt.Errorf("mode %d: %w", i+1, err)
		}
		nodes.GlyphStyle.Color = plotutil.Color(i)
		nodes.GlyphStyle.Radius = vg.Points(2.5)
		nodes.GlyphStyle.Shape = draw.CircleGlyph{}

		p.Add(line, nodes)
		p.Legend.Add(legends[i], line)
	}

	width := 6 * vg.Inch
	height := 8 * vg.Inch

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	if err := p.Save(width, height, filename); err != nil {
		return "", err
	}
	return filename, nil
}
