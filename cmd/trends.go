package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hpcneuro/longstat/core"
	"github.com/hpcneuro/longstat/internal/contract"
)

// trendsCmd estimates per-series longitudinal trends.
var trendsCmd = &cobra.Command{
	Use:   "trends [input-path]",
	Short: "Estimate per-structure longitudinal trends with OLS.",
	Long: `Fit an ordinary least squares line through each subject's measurement series
and rank the results.

For every (subject, structure, measure type) series with enough timepoints,
longstat reports:
- Slope, intercept, and standard error of the fit
- Coefficient of determination (r-squared)
- Two-sided p-value of the slope against zero
- Baseline, final, absolute, and percent change

Timepoints are ordered by the ordinal parsed from session or timepoint
markers in the subject ID (e.g. sub-001_ses-02). Null and NaN values are
skipped rather than failing the series.

Examples:
  # Estimate trends from a CSV export
  longstat trends measurements.csv

  # Volume-only trends for one subject
  longstat trends measurements.csv --measure volume --subject sub-001

  # Tighter significance and longer series only
  longstat trends measurements.csv --alpha 0.01 --min-timepoints 4

  # Export all trends to Parquet for downstream analytics
  longstat trends measurements.csv --output parquet --output-file trends.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrends(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot estimate trends", err)
		}
	},
}
