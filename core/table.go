package core

import (
	"strings"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/schema"
)

// ResolveRecords resolves the subject identifier of every raw record into a
// measurement record. Records pass through one-to-one; nothing is dropped
// here, even records with nil values, so the table builder sees every
// observation the source produced.
func ResolveRecords(raw []schema.RawRecord) []schema.MeasurementRecord {
	records := make([]schema.MeasurementRecord, 0, len(raw))
	for _, r := range raw {
		id := ResolveSubject(r.SubjectID)
		records = append(records, schema.MeasurementRecord{
			BaseSubject:      id.BaseSubject,
			TimepointLabel:   id.TimepointLabel,
			TimepointOrdinal: id.TimepointOrdinal,
			MeasureType:      r.MeasureType,
			Structure:        r.Structure,
			Value:            r.Value,
		})
	}
	return records
}

// BuildTable groups resolved records into per-series time series, keyed by
// (base subject, measure type, structure). Observations keep their arrival
// order within each series; duplicate ordinals are preserved as distinct
// points. The estimators sort and filter, the table never does.
func BuildTable(records []schema.MeasurementRecord) map[schema.SeriesKey]*schema.TimeSeries {
	table := make(map[schema.SeriesKey]*schema.TimeSeries)
	for _, rec := range records {
		key := schema.SeriesKey{
			BaseSubject: rec.BaseSubject,
			MeasureType: rec.MeasureType,
			Structure:   rec.Structure,
		}
		series, ok := table[key]
		if !ok {
			series = &schema.TimeSeries{}
			table[key] = series
		}
		series.Append(schema.TimePoint{
			Ordinal: rec.TimepointOrdinal,
			Label:   rec.TimepointLabel,
			Value:   rec.Value,
		})
	}
	return table
}

// filterRecords applies the config's measure, subject and structure filters
// before grouping. Filters are conjunctive; empty filters match everything.
func filterRecords(cfg *contract.Config, records []schema.MeasurementRecord) []schema.MeasurementRecord {
	if cfg.Measure == "" && cfg.Subject == "" && cfg.Structure == "" {
		return records
	}
	kept := make([]schema.MeasurementRecord, 0, len(records))
	for _, rec := range records {
		if cfg.Measure != "" && rec.MeasureType != cfg.Measure {
			continue
		}
		if cfg.Subject != "" && rec.BaseSubject != cfg.Subject {
			continue
		}
		if cfg.Structure != "" && !strings.Contains(strings.ToLower(rec.Structure), strings.ToLower(cfg.Structure)) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}
