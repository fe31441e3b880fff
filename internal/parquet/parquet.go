// Package parquet provides data structures and functions for reading
// measurement records from and exporting longstat data to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/hpcneuro/longstat/schema"
)

// MeasurementRow is the on-disk Parquet layout of one raw measurement record.
type MeasurementRow struct {
	// SubjectID is the raw, unresolved subject identifier
	SubjectID string `parquet:"subject_id,snappy"`

	// MeasureType is "volume" or "thickness"
	MeasureType string `parquet:"measure_type,snappy"`

	// Structure is the anatomical structure name
	Structure string `parquet:"structure,snappy"`

	// Value is the measurement value (nullable)
	Value *float64 `parquet:"value,optional,snappy"`
}

// TrendRow is the on-disk Parquet layout of one trend result.
// Undefined statistics are stored as nulls rather than NaN so downstream
// column engines treat them as missing.
type TrendRow struct {
	BaseSubject    string   `parquet:"base_subject,snappy"`
	MeasureType    string   `parquet:"measure_type,snappy"`
	Structure      string   `parquet:"structure,snappy"`
	NTimepoints    int32    `parquet:"n_timepoints,snappy"`
	BaselineValue  float64  `parquet:"baseline_value,snappy"`
	FinalValue     float64  `parquet:"final_value,snappy"`
	Slope          *float64 `parquet:"slope,optional,snappy"`
	Intercept      *float64 `parquet:"intercept,optional,snappy"`
	RSquared       *float64 `parquet:"r_squared,optional,snappy"`
	PValue         *float64 `parquet:"p_value,optional,snappy"`
	StdError       *float64 `parquet:"std_error,optional,snappy"`
	AbsoluteChange float64  `parquet:"absolute_change,snappy"`
	PercentChange  *float64 `parquet:"percent_change,optional,snappy"`
	TimepointSpan  int32    `parquet:"timepoint_span,snappy"`
}

// DeltaRow is the on-disk Parquet layout of one consecutive delta.
type DeltaRow struct {
	BaseSubject    string  `parquet:"base_subject,snappy"`
	MeasureType    string  `parquet:"measure_type,snappy"`
	Structure      string  `parquet:"structure,snappy"`
	TimepointFrom  string  `parquet:"timepoint_from,snappy"`
	TimepointTo    string  `parquet:"timepoint_to,snappy"`
	OrdinalFrom    int32   `parquet:"ordinal_from,snappy"`
	OrdinalTo      int32   `parquet:"ordinal_to,snappy"`
	ValueFrom      float64 `parquet:"value_from,snappy"`
	ValueTo        float64 `parquet:"value_to,snappy"`
	AbsoluteChange float64 `parquet:"absolute_change,snappy"`
	PercentChange  float64 `parquet:"percent_change,snappy"`
}

// RunRow represents a single tracked computation run with metadata.
// This struct maps to the longstat_runs database table.
type RunRow struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// TotalGroups is the number of longitudinal series in this run
	TotalGroups int32 `parquet:"total_groups,snappy"`

	// TotalRows is the number of output rows produced by this run
	TotalRows int32 `parquet:"total_rows,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RunSummaryRow represents one per-measure-type trend summary of a run.
// This struct maps to the longstat_trend_summaries database table.
type RunSummaryRow struct {
	RunID        int64    `parquet:"run_id,snappy"`
	MeasureType  string   `parquet:"measure_type,snappy"`
	Trends       int32    `parquet:"trends,snappy"`
	Significant  int32    `parquet:"significant,snappy"`
	MeanRSquared *float64 `parquet:"mean_r_squared,optional,snappy"`
	Alpha        float64  `parquet:"alpha,snappy"`
}

// optNum converts an undefined statistic to a null Parquet cell.
func optNum(v float64) *float64 {
	if schema.IsUndefined(v) {
		return nil
	}
	return &v
}

// FromTrendResult flattens a trend result into its Parquet layout.
func FromTrendResult(tr schema.TrendResult) TrendRow {
	return TrendRow{
		BaseSubject:    tr.BaseSubject,
		MeasureType:    string(tr.MeasureType),
		Structure:      tr.Structure,
		NTimepoints:    int32(tr.NTimepoints),
		BaselineValue:  tr.BaselineValue,
		FinalValue:     tr.FinalValue,
		Slope:          optNum(tr.Slope),
		Intercept:      optNum(tr.Intercept),
		RSquared:       optNum(tr.RSquared),
		PValue:         optNum(tr.PValue),
		StdError:       optNum(tr.StdError),
		AbsoluteChange: tr.AbsoluteChange,
		PercentChange:  tr.PercentChange,
		TimepointSpan:  int32(tr.TimepointSpan),
	}
}

// FromDeltaResult flattens a delta result into its Parquet layout.
func FromDeltaResult(d schema.DeltaResult) DeltaRow {
	return DeltaRow{
		BaseSubject:    d.BaseSubject,
		MeasureType:    string(d.MeasureType),
		Structure:      d.Structure,
		TimepointFrom:  d.TimepointFrom,
		TimepointTo:    d.TimepointTo,
		OrdinalFrom:    int32(d.OrdinalFrom),
		OrdinalTo:      int32(d.OrdinalTo),
		ValueFrom:      d.ValueFrom,
		ValueTo:        d.ValueTo,
		AbsoluteChange: d.AbsoluteChange,
		PercentChange:  d.PercentChange,
	}
}

// ConvertRunRecords converts run records to their Parquet layout.
func ConvertRunRecords(records []schema.RunRecord) []RunRow {
	rows := make([]RunRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, RunRow{
			RunID:         r.RunID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			TotalGroups:   int32(r.TotalGroups),
			TotalRows:     int32(r.TotalRows),
			ConfigParams:  r.ConfigParams,
		})
	}
	return rows
}

// ConvertRunSummaryRecords converts run summaries to their Parquet layout.
func ConvertRunSummaryRecords(records []schema.RunSummaryRecord) []RunSummaryRow {
	rows := make([]RunSummaryRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, RunSummaryRow{
			RunID:        r.RunID,
			MeasureType:  string(r.MeasureType),
			Trends:       int32(r.Trends),
			Significant:  int32(r.Significant),
			MeanRSquared: optNum(r.MeanRSquared),
			Alpha:        r.Alpha,
		})
	}
	return rows
}

// ReadMeasurements reads raw measurement records from a Parquet file.
func ReadMeasurements(path string) ([]schema.RawRecord, error) {
	rows, err := parquet.ReadFile[MeasurementRow](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file %s: %w", path, err)
	}
	records := make([]schema.RawRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, schema.RawRecord{
			SubjectID:   row.SubjectID,
			MeasureType: schema.MeasureType(row.MeasureType),
			Structure:   row.Structure,
			Value:       row.Value,
		})
	}
	return records, nil
}

// WriteTrendsParquet writes trend results to a Parquet file.
func WriteTrendsParquet(trends []schema.TrendResult, outputPath string) error {
	rows := make([]TrendRow, 0, len(trends))
	for _, tr := range trends {
		rows = append(rows, FromTrendResult(tr))
	}
	return writeRows(rows, outputPath)
}

// WriteDeltasParquet writes delta results to a Parquet file.
func WriteDeltasParquet(deltas []schema.DeltaResult, outputPath string) error {
	rows := make([]DeltaRow, 0, len(deltas))
	for _, d := range deltas {
		rows = append(rows, FromDeltaResult(d))
	}
	return writeRows(rows, outputPath)
}

// WriteRunsParquet writes a slice of RunRow structs to a Parquet file.
func WriteRunsParquet(data []RunRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteRunSummariesParquet writes a slice of RunSummaryRow structs to a Parquet file.
func WriteRunSummariesParquet(data []RunSummaryRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// writeRows writes any row slice to a Parquet file using struct schema inference.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the row struct tags
	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
