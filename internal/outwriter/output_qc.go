package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/schema"
)

// PrintQCResults outputs the QC aggregation, dispatching based on the output format configured.
// QC has no Parquet layout; parquet requests fall back to JSON.
func PrintQCResults(output *schema.QCOutput, cfg *contract.Config, duration time.Duration) error {
	_, fmtOpt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut, schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, output)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForQC(w, output.Results, fmtOpt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeQCTable(output, cfg, fmtOpt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeQCTable generates and writes the human-readable table plus the
// outlier report footer.
func writeQCTable(output *schema.QCOutput, cfg *contract.Config, fmtOpt func(*float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Subject", "Session", "CNR", "SNR", "EFC", "CJV", "Flags"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	shown := min(cfg.ResultLimit, len(output.Results))
	var data [][]string
	for _, r := range output.Results[:shown] {
		flags := strings.Join(r.FlaggedMetrics(), "|")
		if flags == "" {
			flags = "-"
		} else if cfg.UseColors {
			flags = contract.TrendingColor.Sprint(flags)
		}
		data = append(data, []string{
			r.SubjectID,
			r.Session,
			fmtOpt(r.CNR),
			fmtOpt(r.SNRTotal),
			fmtOpt(r.EFC),
			fmtOpt(r.CJV),
			flags,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d of %d scans (%d flagged as outliers)\n",
		shown, output.Subjects, output.Outliers); err != nil {
		return err
	}

	// Outlier report: name every flagged scan with its tripped metrics.
	for _, r := range output.Results {
		if !r.OutlierAny {
			continue
		}
		scan := r.SubjectID
		if r.Session != "" {
			scan += " " + r.Session
		}
		if _, err := fmt.Fprintf(writer, "  outlier: %s (%s)\n", scan, strings.Join(r.FlaggedMetrics(), ", ")); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(writer, "Aggregation completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForQC writes the QC results in CSV format.
func writeCSVResultsForQC(w io.Writer, results []schema.QCResult, fmtOpt func(*float64) string) error {
	header := []string{
		"subject_id",
		"session",
		"cnr",
		"snr_total",
		"snr_gm",
		"snr_wm",
		"snr_csf",
		"fber",
		"efc",
		"qi_1",
		"qi_2",
		"cjv",
		"wm2max",
		"inu_range",
		"inu_med",
		"outlier_any",
		"outlier_count",
		"flagged_metrics",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range results {
			rec := []string{
				r.SubjectID,
				r.Session,
				fmtOpt(r.CNR),
				fmtOpt(r.SNRTotal),
				fmtOpt(r.SNRGM),
				fmtOpt(r.SNRWM),
				fmtOpt(r.SNRCSF),
				fmtOpt(r.FBER),
				fmtOpt(r.EFC),
				fmtOpt(r.QI1),
				fmtOpt(r.QI2),
				fmtOpt(r.CJV),
				fmtOpt(r.WM2Max),
				fmtOpt(r.INURange),
				fmtOpt(r.INUMed),
				strconv.FormatBool(r.OutlierAny),
				strconv.Itoa(r.OutlierCount),
				strings.Join(r.FlaggedMetrics(), "|"),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
