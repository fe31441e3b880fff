package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hpcneuro/longstat/core"
	"github.com/hpcneuro/longstat/internal/contract"
)

// deltasCmd computes consecutive timepoint-to-timepoint changes.
var deltasCmd = &cobra.Command{
	Use:   "deltas [input-path]",
	Short: "Compute consecutive timepoint-to-timepoint changes.",
	Long: `Report the absolute and percent change between each pair of consecutive
timepoints in every subject's measurement series.

Unlike trends, deltas make no model assumption: each row is the raw change
between two adjacent sessions. Pairs with a missing value on either side
are skipped, as are pairs whose starting value is zero (percent change
would be undefined).

Examples:
  # All consecutive deltas from a CSV export
  longstat deltas measurements.csv

  # Thickness deltas for one structure family
  longstat deltas measurements.csv --measure thickness --structure hippocampus

  # Machine-readable output
  longstat deltas measurements.csv --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDeltas(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot compute deltas", err)
		}
	},
}
