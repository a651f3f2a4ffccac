package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/alexiusacademia/gotower/internal/beam"
	"github.com/alexiusacademia/gotower/internal/dof"
	"github.com/alexiusacademia/gotower/internal/node"
)

var (
	elementType   string
	elementLength float64
	elementProps  beam.Properties
	elementForce  float64
	elementOrder  int
)

var elementCmd = &cobra.Command{
	Use:   "element",
	Short: "Print stiffness and mass matrix of a single beam",
	Long: `Print the local stiffness and consistent mass matrix of a single
beam element in node DOF order.

Beam types:
  B_2DOF     - Bernoulli beam, (w, phi) per node
  B_3DOF     - Bernoulli beam, (u, w, phi) per node
  B_2DOF_II  - Bernoulli beam with p-Delta stiffness (--order 2)

Examples:
  gotower element --type B_2DOF --length 2.9 --area 0.27 --moi 0.62 --e 2.1e11 --mass 6122
  gotower element -t B_2DOF_II -l 5 --area 1 --moi 0.1 --e 3e10 --mass 12000 --force -2e6 --order 2`,
	RunE: runElement,
}

func init() {
	rootCmd.AddCommand(elementCmd)

	elementCmd.Flags().StringVarP(&elementType, "type", "t", beam.Bernoulli2.String(), "Beam type")
	elementCmd.Flags().Float64VarP(&elementLength, "length", "l", 0, "Beam length [required]")
	elementCmd.Flags().Float64Var(&elementProps.Area, "area", 0, "Cross section area")
	elementCmd.Flags().Float64Var(&elementProps.AreaMOI, "moi", 0, "Second moment of area")
	elementCmd.Flags().Float64Var(&elementProps.EModulus, "e", 0, "Young's modulus")
	elementCmd.Flags().Float64Var(&elementProps.Mass, "mass", 0, "Total mass of the beam")
	elementCmd.Flags().Float64Var(&elementForce, "force", 0, "Axial force for p-Delta, negative is compression")
	elementCmd.Flags().IntVar(&elementOrder, "order", 1, "Order of theory (1 or 2)")

	elementCmd.MarkFlagRequired("length")
}

func runElement(cmd *cobra.Command, args []string) error {
	kind, err := beam.ParseKind(elementType)
	if err != nil {
		return err
	}
	n1, n2, err := node.ByAxialLength(kind.DOFs(), elementLength)
	if err != nil {
		return err
	}
	b, err := beam.New(kind, n1, n2, elementProps)
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if elementForce != 0 {
		loaded, ok := b.(beam.AxialLoaded)
		if !ok {
			return fmt.Errorf("%s does not take axial forces", kind)
		}
		loaded.SetAxialForce(elementForce)
	}

	k, err := b.K(elementOrder)
	if err != nil {
		return err
	}
	m, err := b.M()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(w, "     %s - %s\n", kind, kind.Description())
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PROPERTIES:")
	fmt.Fprintln(w, "───────────────────────────────────────────────────────────────")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Length:\t%g\n", b.Length())
	fmt.Fprintf(tw, "  Area:\t%g\n", elementProps.Area)
	fmt.Fprintf(tw, "  Area MOI:\t%g\n", elementProps.AreaMOI)
	fmt.Fprintf(tw, "  E modulus:\t%g\n", elementProps.EModulus)
	fmt.Fprintf(tw, "  Mass:\t%g\n", elementProps.Mass)
	if elementForce != 0 {
		fmt.Fprintf(tw, "  Axial force:\t%g\n", elementForce)
	}
	fmt.Fprintf(tw, "  DOF per node:\t%s\n", dof.Names(b.DOFs()))
	tw.Flush()
	fmt.Fprintln(w)

	printMatrix(w, fmt.Sprintf("STIFFNESS MATRIX K (order %d):", elementOrder), k)
	printMatrix(w, "MASS MATRIX M:", m)
	return nil
}

func printMatrix(w io.Writer, title string, a mat.Matrix) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "───────────────────────────────────────────────────────────────")
	fmt.Fprintf(w, "  %.6g\n\n", mat.Formatted(a, mat.Prefix("  "), mat.Squeeze()))
}
