package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hpcneuro/longstat/core"
	"github.com/hpcneuro/longstat/internal/contract"
)

// qcCmd aggregates image-quality metrics from MRIQC documents.
var qcCmd = &cobra.Command{
	Use:   "qc [input-path]",
	Short: "Aggregate MRIQC image-quality metrics and flag outliers.",
	Long: `Read MRIQC-style JSON documents and summarize image quality across the cohort.

For each subject/session document, longstat extracts the key quality
metrics (cnr, snr_total, fber, efc, qi_2, cjv, wm2max), flags values that
cross the configured thresholds, and computes per-metric z-scores against
the loaded cohort.

Thresholds default to MRIQC recommendations and can be overridden in
.longstat.yaml under 'thresholds:' or per invocation with
--thresholds-override.

Examples:
  # Summarize a directory of MRIQC outputs
  longstat qc mriqc_output/

  # Tighten the contrast-to-noise floor for this run
  longstat qc mriqc_output/ --thresholds-override 'cnr=2.5,efc=0.65'

  # Full metric dump as CSV
  longstat qc mriqc_output/ --output csv --output-file qc.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteQC(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot aggregate QC metrics", err)
		}
	},
}
