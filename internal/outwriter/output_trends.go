package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/internal/parquet"
	"github.com/hpcneuro/longstat/schema"
)

// PrintTrendResults outputs the trend results, dispatching based on the output format configured.
func PrintTrendResults(output *schema.TrendOutput, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, fmtOpt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeTrendJSONResults(output, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeTrendCSVResults(output, cfg, fmtFloat, fmtOpt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := requireOutputFile(cfg, "parquet"); err != nil {
			return err
		}
		if err := parquet.WriteTrendsParquet(output.Trends, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendTable(output, cfg, fmtFloat, fmtOpt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeTrendJSONResults handles opening the file and calling the JSON writer.
func writeTrendJSONResults(output *schema.TrendOutput, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, output)
	}, "Wrote JSON")
}

// writeTrendCSVResults handles opening the file and calling the CSV writer.
func writeTrendCSVResults(output *schema.TrendOutput, cfg *contract.Config, fmtFloat func(float64) string, fmtOpt func(*float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVResultsForTrends(w, output.Trends, cfg.Alpha, fmtFloat, fmtOpt)
	}, "Wrote CSV")
}

// writeTrendTable generates and writes the human-readable table.
// Text output shows at most cfg.ResultLimit rows; CSV, JSON and Parquet
// always carry the full result set.
func writeTrendTable(output *schema.TrendOutput, cfg *contract.Config, fmtFloat func(float64) string, fmtOpt func(*float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Subject", "Measure", "Structure", "N", "Slope", "R2", "P-Value", "Signal", "Change%"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	shown := min(cfg.ResultLimit, len(output.Trends))
	maxStructure := GetMaxStructureWidth(cfg)
	var data [][]string
	for _, tr := range output.Trends[:shown] {
		label := contract.GetPlainLabel(tr.PValue, cfg.Alpha)
		if cfg.UseColors {
			label = contract.GetColorLabel(tr.PValue, cfg.Alpha)
		}
		data = append(data, []string{
			tr.BaseSubject,
			string(tr.MeasureType),
			contract.TruncateName(tr.Structure, maxStructure),
			strconv.Itoa(tr.NTimepoints),
			fmtFloat(tr.Slope),
			fmtFloat(tr.RSquared),
			fmtFloat(tr.PValue),
			label,
			fmtOpt(tr.PercentChange),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// 5. Summary footer
	s := output.Summary
	if _, err := fmt.Fprintf(writer, "Showing %d of %d trends across %d subjects and %d structures (%d significant at alpha=%g, mean r2: %s)\n",
		shown, s.Trends, s.Subjects, s.Structures, s.Significant, s.Alpha, fmtFloat(s.MeanRSquared)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Computation completed in %v with %d workers. Run backend: %s\n", duration, cfg.Workers, cfg.RunBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForTrends writes the trend results in CSV format.
func writeCSVResultsForTrends(w io.Writer, trends []schema.TrendResult, alpha float64, fmtFloat func(float64) string, fmtOpt func(*float64) string) error {
	header := []string{
		"base_subject",
		"measure_type",
		"structure",
		"n_timepoints",
		"baseline_value",
		"final_value",
		"slope",
		"intercept",
		"r_squared",
		"p_value",
		"std_error",
		"absolute_change",
		"percent_change",
		"timepoint_span",
		"label",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, tr := range trends {
			rec := []string{
				tr.BaseSubject,
				string(tr.MeasureType),
				tr.Structure,
				strconv.Itoa(tr.NTimepoints),
				fmtFloat(tr.BaselineValue),
				fmtFloat(tr.FinalValue),
				fmtFloat(tr.Slope),
				fmtFloat(tr.Intercept),
				fmtFloat(tr.RSquared),
				fmtFloat(tr.PValue),
				fmtFloat(tr.StdError),
				fmtFloat(tr.AbsoluteChange),
				fmtOpt(tr.PercentChange),
				strconv.Itoa(tr.TimepointSpan),
				contract.GetPlainLabel(tr.PValue, alpha),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
