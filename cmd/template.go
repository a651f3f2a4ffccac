package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotower/internal/config"
	"github.com/alexiusacademia/gotower/internal/input"
)

var (
	templateFormat     string
	templateOutput     string
	templateParameters bool
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print an example run file",
	Long: `Print an example run file of a wind tower with a top mass on a
fixed base. Use it as a starting point for own models.

With --parameters only the default parameters are written, suitable
for the --defaults flag of solve and batch.

Examples:
  gotower template > tower.yaml
  gotower template --format json -o tower.json
  gotower template --parameters -o defaults.yaml`,
	RunE: runTemplate,
}

func init() {
	rootCmd.AddCommand(templateCmd)

	templateCmd.Flags().StringVar(&templateFormat, "format", input.FormatYAML, "Output format (yaml or json)")
	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", "", "Write to file instead of stdout")
	templateCmd.Flags().BoolVar(&templateParameters, "parameters", false, "Write default parameters only (YAML)")
}

func runTemplate(cmd *cobra.Command, args []string) error {
	if templateParameters {
		if templateOutput == "" {
			return fmt.Errorf("--parameters requires --output")
		}
		if err := config.Default().Save(templateOutput); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Default parameters written to: %s\n", templateOutput)
		return nil
	}

	format := templateFormat
	var w io.Writer = cmd.OutOrStdout()
	if templateOutput != "" {
		var err error
		if format, err = input.FormatOf(templateOutput); err != nil {
			return err
		}
		fh, err := os.Create(templateOutput)
		if err != nil {
			return err
		}
		defer fh.Close()
		w = fh
	}
	return input.Encode(w, input.Example(), format)
}
