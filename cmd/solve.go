package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotower/internal/config"
	"github.com/alexiusacademia/gotower/internal/diagram"
	"github.com/alexiusacademia/gotower/internal/run"
)

var (
	solveFile      string
	solveOutput    string
	solveImage     string
	solveDefaults  string
	solveOverwrite bool
	solveDiagram   bool
	solveQuiet     bool

	// Parameter overrides
	solveModes    int
	solvePDelta   bool
	solveGravity  float64
	solvePositive bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Compute eigenfrequencies and mode shapes of a run file",
	Long: `Read a model from a JSON or YAML run file, solve the flexural
eigenvalue problem and print frequencies and mode shapes.

Parameters missing in the run file are taken from the defaults file
(--defaults, GOTOWER_* environment variables) and may be overridden
with flags.

Examples:
  gotower solve --file tower.yaml
  gotower solve -f tower.json -o tower.xlsx --overwrite
  gotower solve -f tower.yaml --p-delta --modes 4 --diagram
  gotower solve -f tower.yaml --image modes.png`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "Run file (.json, .yaml, .yml) [required]")
	solveCmd.Flags().StringVarP(&solveOutput, "output", "o", "", "Excel workbook for the results (.xlsx)")
	solveCmd.Flags().StringVar(&solveImage, "image", "", "Export mode shapes to image (png, svg, pdf)")
	solveCmd.Flags().StringVar(&solveDefaults, "defaults", "", "YAML file with default parameters")
	solveCmd.Flags().BoolVar(&solveOverwrite, "overwrite", false, "Overwrite existing output files")
	solveCmd.Flags().BoolVar(&solveDiagram, "diagram", false, "Show ASCII mode shape diagram")
	solveCmd.Flags().BoolVarP(&solveQuiet, "quiet", "q", false, "Only print the frequency summary")

	solveCmd.Flags().IntVarP(&solveModes, "modes", "m", config.Default().NumberOfModes, "Number of modes")
	solveCmd.Flags().BoolVar(&solvePDelta, "p-delta", false, "Second order theory with dead load")
	solveCmd.Flags().Float64Var(&solveGravity, "gravity", config.Default().Gravity, "Earth acceleration")
	solveCmd.Flags().BoolVar(&solvePositive, "prefer-positive", false, "Flip modes so the top of mode 1 is positive")

	solveCmd.MarkFlagRequired("file")
}

// overrides collects the parameter flags set on the command line
func overrides(cmd *cobra.Command) run.Option {
	flags := cmd.Flags()
	return run.WithOverride(func(p *config.Parameters) {
		if flags.Changed("modes") {
			p.NumberOfModes = solveModes
		}
		if flags.Changed("p-delta") {
			p.PDelta = solvePDelta
		}
		if flags.Changed("gravity") {
			p.Gravity = solveGravity
		}
		if flags.Changed("prefer-positive") {
			p.PreferPositiveLateralModes = solvePositive
		}
	})
}

func runSolve(cmd *cobra.Command, args []string) error {
	defaults, err := config.Load(solveDefaults)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	r, err := run.New(solveFile, solveOutput,
		run.WithLogger(logger),
		run.WithDefaults(defaults),
		run.WithOverwrite(solveOverwrite),
		run.WithImage(solveImage),
		run.WithNotifier(func(msg string) { fmt.Fprintf(w, "   %s\n", msg) }),
		overrides(cmd),
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Input: %s\n", solveFile)
	if solveOutput != "" {
		fmt.Fprintf(w, "Excel output: %s\n", solveOutput)
	}
	fmt.Fprintln(w, "Executing:")

	outcome, err := r.Execute(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(w)

	if !solveQuiet {
		if err := outcome.Report.Render(w); err != nil {
			return err
		}
	}
	printFrequencySummary(w, outcome)

	if solveDiagram {
		plot, err := diagram.DrawASCIIModeShapes(diagram.FromResult(outcome.Result), 60, 15)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, plot)
	}
	if outcome.Image != "" {
		fmt.Fprintf(w, "  Mode shapes exported to: %s\n\n", outcome.Image)
	}
	return nil
}

func printFrequencySummary(w io.Writer, outcome *run.Outcome) {
	res := outcome.Result
	lines := []string{
		fmt.Sprintf("Support: %s, order of theory: %d", res.Support, res.Order),
	}
	periods := res.Periods()
	for i, f := range res.Frequencies {
		lines = append(lines, fmt.Sprintf("f%d = %.4f Hz   T%d = %.4f s", i+1, f, i+1, periods[i]))
	}
	fmt.Fprint(w, diagram.DrawSummaryBox("EIGENFREQUENCIES", lines))
	fmt.Fprintln(w)
}
