package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/schema"
)

// PrintAggregateResults outputs a cross-sectional table, dispatching based on
// the output format configured. The aggregate tables have no Parquet layout;
// parquet requests fall back to JSON.
func PrintAggregateResults(output *schema.AggregateOutput, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, fmtOpt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut, schema.ParquetOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, output)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForAggregate(w, output, fmtFloat, fmtOpt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAggregateTable(output, cfg, fmtFloat, fmtOpt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeAggregateTable generates and writes the human-readable table for the
// selected cross-sectional view.
func writeAggregateTable(output *schema.AggregateOutput, cfg *contract.Config, fmtFloat func(float64) string, fmtOpt func(*float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var total, shown int
	switch output.Table {
	case schema.VolumesTable:
		if output.Volumes == nil {
			return fmt.Errorf("no volume table computed")
		}
		headers := append([]string{"Subject"}, output.Volumes.Structures...)
		table.Header(headers)
		total = len(output.Volumes.Subjects)
		shown = min(cfg.ResultLimit, total)
		var data [][]string
		for _, subject := range output.Volumes.Subjects[:shown] {
			row := []string{subject}
			for _, structure := range output.Volumes.Structures {
				row = append(row, fmtOpt(output.Volumes.Rows[subject][structure]))
			}
			data = append(data, row)
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
	case schema.SummaryTable:
		headers := append([]string{"Subject"}, output.SummaryKeys...)
		table.Header(headers)
		total = len(output.Summaries)
		shown = min(cfg.ResultLimit, total)
		var data [][]string
		for _, row := range output.Summaries[:shown] {
			cells := []string{row.SubjectID}
			for _, k := range output.SummaryKeys {
				if v, ok := row.Metrics[k]; ok {
					cells = append(cells, fmtFloat(v))
				} else {
					cells = append(cells, "")
				}
			}
			data = append(data, cells)
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
	default: // thickness
		maxRegion := GetMaxStructureWidth(cfg)
		table.Header([]string{"Subject", "Atlas", "Region", "Thickness", "StdDev", "Area", "GrayVol"})
		total = len(output.Thickness)
		shown = min(cfg.ResultLimit, total)
		var data [][]string
		for _, row := range output.Thickness[:shown] {
			data = append(data, []string{
				row.SubjectID,
				row.Atlas,
				contract.TruncateName(row.Region, maxRegion),
				fmtFloat(row.ThicknessMM),
				fmtOpt(row.ThicknessStdMM),
				fmtOpt(row.SurfaceAreaMM2),
				fmtOpt(row.GrayVolumeMM3),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
	}

	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d of %d rows from the %s table\n", shown, total, output.Table); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Aggregation completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForAggregate writes the selected table in CSV format.
func writeCSVResultsForAggregate(w io.Writer, output *schema.AggregateOutput, fmtFloat func(float64) string, fmtOpt func(*float64) string) error {
	switch output.Table {
	case schema.VolumesTable:
		if output.Volumes == nil {
			return fmt.Errorf("no volume table computed")
		}
		header := append([]string{"subject_id"}, output.Volumes.Structures...)
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, subject := range output.Volumes.Subjects {
				rec := []string{subject}
				for _, structure := range output.Volumes.Structures {
					rec = append(rec, fmtOpt(output.Volumes.Rows[subject][structure]))
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	case schema.SummaryTable:
		header := append([]string{"subject_id"}, output.SummaryKeys...)
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, row := range output.Summaries {
				rec := []string{row.SubjectID}
				for _, k := range output.SummaryKeys {
					if v, ok := row.Metrics[k]; ok {
						rec = append(rec, fmtFloat(v))
					} else {
						rec = append(rec, "")
					}
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	default: // thickness
		header := []string{
			"subject_id",
			"atlas",
			"region",
			"thickness_mm",
			"thickness_std_mm",
			"surface_area_mm2",
			"gray_volume_mm3",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, row := range output.Thickness {
				rec := []string{
					row.SubjectID,
					row.Atlas,
					row.Region,
					fmtFloat(row.ThicknessMM),
					fmtOpt(row.ThicknessStdMM),
					fmtOpt(row.SurfaceAreaMM2),
					fmtOpt(row.GrayVolumeMM3),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}
}
