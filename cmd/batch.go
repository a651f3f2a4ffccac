package cmd

import (
	"fmt"
	"runtime"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotower/internal/config"
	"github.com/alexiusacademia/gotower/internal/run"
)

var (
	batchOutDir    string
	batchJobs      int
	batchDefaults  string
	batchOverwrite bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [run files...]",
	Short: "Solve several run files concurrently",
	Long: `Solve every given run file and write one Excel workbook per file.
Workbooks are named after the run file and written next to it or into
--out-dir. A failing file does not stop the others.

Examples:
  gotower batch towers/*.yaml
  gotower batch a.json b.yaml --out-dir results --jobs 2 --overwrite`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchOutDir, "out-dir", "d", "", "Directory for the workbooks")
	batchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", runtime.NumCPU(), "Number of concurrent runs")
	batchCmd.Flags().StringVar(&batchDefaults, "defaults", "", "YAML file with default parameters")
	batchCmd.Flags().BoolVar(&batchOverwrite, "overwrite", false, "Overwrite existing workbooks")
}

func runBatch(cmd *cobra.Command, args []string) error {
	defaults, err := config.Load(batchDefaults)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	var mu sync.Mutex
	notify := func(msg string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "   %s\n", msg)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Executing %d runs, %d at a time:\n", len(args), batchJobs)
	results, batchErr := run.Batch(cmd.Context(), run.Jobs(args, batchOutDir), batchJobs,
		run.WithLogger(logger),
		run.WithDefaults(defaults),
		run.WithOverwrite(batchOverwrite),
		run.WithNotifier(notify),
	)
	run.LogSummary(logger, results)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "BATCH SUMMARY:")
	fmt.Fprintln(w, "───────────────────────────────────────────────────────────────")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Input\tStatus\tf1 [Hz]\tOutput\n")
	fmt.Fprintf(tw, "  ─────\t──────\t───────\t──────\n")
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(tw, "  %s\tfailed\t-\t%v\n", res.Input, res.Err)
			continue
		}
		fmt.Fprintf(tw, "  %s\tok\t%.4f\t%s\n", res.Input, res.Outcome.Result.Frequencies[0], res.Outcome.Output)
	}
	tw.Flush()
	fmt.Fprintln(w)

	return batchErr
}
