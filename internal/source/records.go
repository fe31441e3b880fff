package source

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/internal/parquet"
	"github.com/hpcneuro/longstat/schema"
)

// Column names expected in CSV record files. Column order is free; the
// header row decides.
const (
	colSubjectID   = "subject_id"
	colMeasureType = "measure_type"
	colStructure   = "structure"
	colValue       = "value"
)

// FileRecordSource reads raw measurement records from a single file in the
// configured format.
type FileRecordSource struct {
	cfg *contract.Config
}

// NewRecordSource creates a record source for the configured input.
func NewRecordSource(cfg *contract.Config) contract.RecordSource {
	return &FileRecordSource{cfg: cfg}
}

// LoadRecords reads every raw measurement record from the input file.
// Records with missing or non-numeric values load with a nil value; only
// structural problems (unreadable file, missing columns) are errors.
func (s *FileRecordSource) LoadRecords(ctx context.Context) ([]schema.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch s.cfg.InputFormat {
	case schema.CSVFormat:
		return loadCSVRecords(s.cfg.InputPath)
	case schema.JSONFormat:
		return loadJSONRecords(s.cfg.InputPath)
	case schema.ParquetFormat:
		return parquet.ReadMeasurements(s.cfg.InputPath)
	default:
		return nil, fmt.Errorf("unsupported input format '%s'", s.cfg.InputFormat)
	}
}

// loadCSVRecords reads long-format measurement records from a CSV file.
func loadCSVRecords(path string) ([]schema.RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header from %s: %w", path, err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colSubjectID, colMeasureType, colStructure, colValue} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("CSV file %s is missing required column '%s'", path, required)
		}
	}

	var records []schema.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row from %s: %w", path, err)
		}
		records = append(records, schema.RawRecord{
			SubjectID:   row[cols[colSubjectID]],
			MeasureType: schema.MeasureType(strings.ToLower(row[cols[colMeasureType]])),
			Structure:   row[cols[colStructure]],
			Value:       parseOptionalFloat(row[cols[colValue]]),
		})
	}
	return records, nil
}

// loadJSONRecords reads measurement records from a JSON array file.
func loadJSONRecords(path string) ([]schema.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var records []schema.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON records from %s: %w", path, err)
	}
	for i := range records {
		records[i].MeasureType = schema.MeasureType(strings.ToLower(string(records[i].MeasureType)))
	}
	return records, nil
}

// parseOptionalFloat parses a measurement cell. Empty or unparsable cells
// load as nil rather than failing the whole file.
func parseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
