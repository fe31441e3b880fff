package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hpcneuro/longstat/core"
	"github.com/hpcneuro/longstat/internal/contract"
)

// aggregateCmd builds cross-sectional tables from per-subject atlas documents.
var aggregateCmd = &cobra.Command{
	Use:   "aggregate [input-path]",
	Short: "Build cross-sectional tables from per-subject atlas documents.",
	Long: `Combine per-subject atlas JSON documents into one cross-sectional table.

Three table shapes are available:
  thickness - one row per subject/atlas/region with mean cortical thickness
  volumes   - subjects as rows, structures as columns, volumes as cells
  summary   - subjects as rows, whole-brain summary measures as columns

Subjects missing a structure or summary key produce empty cells rather
than failing the table.

Examples:
  # Region thickness rows from a directory of atlas documents
  longstat aggregate atlas_docs/ --table thickness

  # Wide volume matrix as CSV
  longstat aggregate atlas_docs/ --table volumes --output csv --output-file volumes.csv

  # Whole-brain summary measures
  longstat aggregate atlas_docs/ --table summary`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAggregate(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot build aggregate table", err)
		}
	},
}
