package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotower/internal/section"
)

var (
	sectionFile     string
	sectionDiameter float64
	sectionWall     float64
	sectionDensity  float64
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Geometric properties of a beam cross section",
	Long: `Calculate area and second moments of area of a cross section.

The section is either a circular tube given by flags or a polygon
defined in a JSON file. Polygons may contain holes. The bending
stiffness of the tower uses the moment about Y (area_moi).

Example JSON file structure:
{
  "name": "Box 2x1",
  "shape": "polygon",
  "vertices": [
    {"y": 0, "z": 0},
    {"y": 2, "z": 0},
    {"y": 2, "z": 1},
    {"y": 0, "z": 1}
  ],
  "holes": [
    [{"y": 0.1, "z": 0.1}, {"y": 1.9, "z": 0.1}, {"y": 1.9, "z": 0.9}, {"y": 0.1, "z": 0.9}]
  ]
}

Examples:
  gotower section --tube 4.3 --wall 0.03 --density 7850
  gotower section -f box.json`,
	RunE: runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)

	sectionCmd.Flags().StringVarP(&sectionFile, "file", "f", "", "Path to section JSON file")
	sectionCmd.Flags().Float64Var(&sectionDiameter, "tube", 0, "Outer diameter of a circular tube")
	sectionCmd.Flags().Float64Var(&sectionWall, "wall", 0, "Wall thickness of the tube")
	sectionCmd.Flags().Float64Var(&sectionDensity, "density", 0, "Material density for the mass per length")
	sectionCmd.MarkFlagsMutuallyExclusive("file", "tube")
	sectionCmd.MarkFlagsOneRequired("file", "tube")
}

func runSection(cmd *cobra.Command, args []string) error {
	var sec *section.Section
	if sectionFile != "" {
		var err error
		sec, err = section.LoadFromFile(sectionFile)
		if err != nil {
			return fmt.Errorf("loading section: %w", err)
		}
	} else {
		sec = section.NewTube(sectionDiameter, sectionWall)
	}

	props, err := sec.CalculateProperties()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(w, "     CROSS SECTION PROPERTIES")
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(w)

	if sec.Name != "" {
		fmt.Fprintf(w, "  Section: %s\n", sec.Name)
	}
	if sec.Description != "" {
		fmt.Fprintf(w, "  Description: %s\n", sec.Description)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SECTION GEOMETRY:")
	fmt.Fprintln(w, "───────────────────────────────────────────────────────────────")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Shape:\t%s\n", shapeOf(sec))
	fmt.Fprintf(tw, "  Width (Y):\t%g\n", props.Width)
	fmt.Fprintf(tw, "  Height (Z):\t%g\n", props.Height)
	if sec.Shape != section.ShapeTube {
		fmt.Fprintf(tw, "  Vertices:\t%d points\n", len(sec.Vertices))
		fmt.Fprintf(tw, "  Holes:\t%d\n", len(sec.Holes))
		fmt.Fprintf(tw, "  Centroid (y, z):\t(%g, %g)\n", props.CentroidY, props.CentroidZ)
	}
	tw.Flush()
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SECTION PROPERTIES:")
	fmt.Fprintln(w, "───────────────────────────────────────────────────────────────")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  area:\t%.6g\n", props.Area)
	fmt.Fprintf(tw, "  area_moi (about Y):\t%.6g\n", props.AreaMOI)
	fmt.Fprintf(tw, "  area moment about Z:\t%.6g\n", props.AreaMOIZ)
	if sectionDensity > 0 {
		fmt.Fprintf(tw, "  mass per length:\t%.6g\n", props.MassPerLength(sectionDensity))
	}
	tw.Flush()
	fmt.Fprintln(w)
	return nil
}

func shapeOf(s *section.Section) string {
	if s.Shape == "" {
		return section.ShapePolygon
	}
	return s.Shape
}
