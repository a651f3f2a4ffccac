package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexiusacademia/gotower/internal/version"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "gotower",
	Short: "Flexural eigenfrequencies of tower-like beam chains",
	Long: `gotower - Eigenfrequency Solver for Beam Chains

A CLI tool to compute the flexural eigenfrequencies and mode shapes of
towers and other slender structures modelled as a chain of Bernoulli
beams with lumped masses and elastic or fixed supports.

This tool supports:
  - Bernoulli beams with 2 DOF (w, phi) or 3 DOF (u, w, phi) per node
  - Second order theory (p-Delta) from dead load
  - Cross sections from polygons or circular tubes
  - Reports, Excel workbooks and mode shape plots`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gotower v%-47s║\n", version.Version)
		fmt.Println("  ║   Eigenfrequency Solver for Beam Chains                   ║")
		fmt.Printf("  ║   %s ©  %-40s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Computes flexural frequencies and mode shapes of towers")
		fmt.Println("  modelled as chains of Bernoulli beams.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Run files in JSON or YAML, see 'gotower template'")
		fmt.Println("    • First and second order (p-Delta) theory")
		fmt.Println("    • Fixed or spring supported base")
		fmt.Println("    • Excel workbook, image and terminal output")
		fmt.Println("    • Concurrent batch runs")
		fmt.Println()
		fmt.Println("  Use 'gotower --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
