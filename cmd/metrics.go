package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hpcneuro/longstat/core"
	"github.com/hpcneuro/longstat/internal/contract"
)

// metricsCmd displays the formal definitions of all emitted columns.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display definitions for all emitted statistics and QC metrics",
	Long: `Show the formal definitions of every column longstat emits.

Covers the trend statistics (slope, r-squared, p-value, standard error),
the delta columns, and the QC metrics with their outlier directions and
active thresholds.

No input data is read - this is purely informational.

Examples:
  # Show column definitions
  longstat metrics

  # View with threshold overrides from a config file
  longstat metrics --config .longstat.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
