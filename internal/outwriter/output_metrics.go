package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/schema"
)

// PrintMetricDefinitions displays the formal definitions of all emitted columns.
// This is a static display that does not require any input data.
func PrintMetricDefinitions(cfg *contract.Config) error {
	renderModel := buildMetricsRenderModel(cfg.Thresholds)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, renderModel)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVMetrics(w, renderModel)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsText(w, renderModel)
		}, "Wrote text")
	}
}

// writeMetricsText displays metric definitions in human-readable text format.
func writeMetricsText(w io.Writer, renderModel *schema.MetricsRenderModel) error {
	if _, err := fmt.Fprintf(w, "%s\n", renderModel.Title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "========================\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", renderModel.Description); err != nil {
		return err
	}

	lastMode := ""
	for _, col := range renderModel.Columns {
		if col.Mode != lastMode {
			if _, err := fmt.Fprintf(w, "[%s]\n", col.Mode); err != nil {
				return err
			}
			lastMode = col.Mode
		}
		if _, err := fmt.Fprintf(w, "  %-16s %s\n", col.Name, col.Definition); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\n[qc] outlier flags against active thresholds\n"); err != nil {
		return err
	}
	for _, m := range renderModel.QCMetrics {
		if _, err := fmt.Fprintf(w, "  %-10s %s %g  %s\n", m.Name, m.Direction, m.Threshold, m.Meaning); err != nil {
			return err
		}
	}

	return nil
}

// writeCSVMetrics displays metric definitions in CSV format.
func writeCSVMetrics(w io.Writer, renderModel *schema.MetricsRenderModel) error {
	header := []string{"name", "mode", "definition", "direction", "threshold"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, col := range renderModel.Columns {
			if err := cw.Write([]string{col.Name, col.Mode, col.Definition, "", ""}); err != nil {
				return err
			}
		}
		for _, m := range renderModel.QCMetrics {
			row := []string{m.Name, "qc", m.Meaning, m.Direction, strconv.FormatFloat(m.Threshold, 'g', -1, 64)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// buildMetricsRenderModel constructs the complete render model.
func buildMetricsRenderModel(th schema.QCThresholds) *schema.MetricsRenderModel {
	columns := []schema.MetricColumn{
		{Name: "n_timepoints", Mode: "trends", Definition: "Usable (non-null, non-NaN) timepoints in the series"},
		{Name: "slope", Mode: "trends", Definition: "OLS slope of value over timepoint ordinal"},
		{Name: "intercept", Mode: "trends", Definition: "OLS intercept at ordinal zero"},
		{Name: "r_squared", Mode: "trends", Definition: "Squared Pearson correlation of the fit"},
		{Name: "p_value", Mode: "trends", Definition: "Two-sided p-value of the slope (Student's t, n-2 df)"},
		{Name: "std_error", Mode: "trends", Definition: "Standard error of the slope estimate"},
		{Name: "baseline_value", Mode: "trends", Definition: "First usable value in timepoint order"},
		{Name: "final_value", Mode: "trends", Definition: "Last usable value in timepoint order"},
		{Name: "absolute_change", Mode: "trends", Definition: "final_value - baseline_value"},
		{Name: "percent_change", Mode: "trends", Definition: "100 * absolute_change / baseline_value (null when baseline is zero)"},
		{Name: "timepoint_span", Mode: "trends", Definition: "Ordinal distance between first and last usable timepoints"},
		{Name: "value_from", Mode: "deltas", Definition: "Value at the earlier of two consecutive timepoints"},
		{Name: "value_to", Mode: "deltas", Definition: "Value at the later of two consecutive timepoints"},
		{Name: "absolute_change", Mode: "deltas", Definition: "value_to - value_from"},
		{Name: "percent_change", Mode: "deltas", Definition: "100 * absolute_change / value_from (pair skipped when value_from is zero)"},
		{Name: "z_score", Mode: "qc", Definition: "Standard score of a metric against the loaded cohort"},
	}

	qcMetrics := []schema.QCMetricDefinition{
		{Name: "cnr", Direction: "below", Threshold: th.MinCNR, Meaning: "Contrast-to-noise ratio between tissue classes"},
		{Name: "snr_total", Direction: "below", Threshold: th.MinSNRTotal, Meaning: "Total signal-to-noise ratio"},
		{Name: "fber", Direction: "below", Threshold: th.MinFBER, Meaning: "Foreground-background energy ratio"},
		{Name: "efc", Direction: "above", Threshold: th.MaxEFC, Meaning: "Entropy focus criterion (ghosting, blurring)"},
		{Name: "qi_2", Direction: "above", Threshold: th.MaxQI2, Meaning: "Goodness of fit of noise distribution in the air mask"},
		{Name: "cjv", Direction: "above", Threshold: th.MaxCJV, Meaning: "Coefficient of joint variation of WM and GM"},
		{Name: "wm2max", Direction: "above", Threshold: th.MaxWM2Max, Meaning: "White matter to maximum intensity ratio"},
	}

	return &schema.MetricsRenderModel{
		Title:       "Longstat Emitted Columns",
		Description: "Definitions of the statistics emitted by each computation mode",
		Columns:     columns,
		QCMetrics:   qcMetrics,
	}
}
