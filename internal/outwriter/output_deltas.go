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

// PrintDeltaResults outputs the delta results, dispatching based on the output format configured.
func PrintDeltaResults(output *schema.DeltaOutput, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, output)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForDeltas(w, output.Deltas, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := requireOutputFile(cfg, "parquet"); err != nil {
			return err
		}
		if err := parquet.WriteDeltasParquet(output.Deltas, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDeltaTable(output, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeDeltaTable generates and writes the human-readable table.
func writeDeltaTable(output *schema.DeltaOutput, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Subject", "Measure", "Structure", "From", "To", "Value From", "Value To", "Change", "Change%"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	shown := min(cfg.ResultLimit, len(output.Deltas))
	maxStructure := GetMaxStructureWidth(cfg)
	var data [][]string
	for _, d := range output.Deltas[:shown] {
		data = append(data, []string{
			d.BaseSubject,
			string(d.MeasureType),
			contract.TruncateName(d.Structure, maxStructure),
			deltaEndpoint(d.TimepointFrom, d.OrdinalFrom),
			deltaEndpoint(d.TimepointTo, d.OrdinalTo),
			fmtFloat(d.ValueFrom),
			fmtFloat(d.ValueTo),
			fmtFloat(d.AbsoluteChange),
			fmtFloat(d.PercentChange),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d of %d consecutive deltas\n", shown, len(output.Deltas)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Computation completed in %v with %d workers. Run backend: %s\n", duration, cfg.Workers, cfg.RunBackend); err != nil {
		return err
	}
	return nil
}

// deltaEndpoint renders a timepoint endpoint, falling back to the ordinal
// when the record carried no timepoint label.
func deltaEndpoint(label string, ordinal int) string {
	if label == "" {
		return strconv.Itoa(ordinal)
	}
	return label
}

// writeCSVResultsForDeltas writes the delta results in CSV format.
func writeCSVResultsForDeltas(w io.Writer, deltas []schema.DeltaResult, fmtFloat func(float64) string) error {
	header := []string{
		"base_subject",
		"measure_type",
		"structure",
		"timepoint_from",
		"timepoint_to",
		"ordinal_from",
		"ordinal_to",
		"value_from",
		"value_to",
		"absolute_change",
		"percent_change",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, d := range deltas {
			rec := []string{
				d.BaseSubject,
				string(d.MeasureType),
				d.Structure,
				d.TimepointFrom,
				d.TimepointTo,
				strconv.Itoa(d.OrdinalFrom),
				strconv.Itoa(d.OrdinalTo),
				fmtFloat(d.ValueFrom),
				fmtFloat(d.ValueTo),
				fmtFloat(d.AbsoluteChange),
				fmtFloat(d.PercentChange),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
