package core

import (
	"github.com/hpcneuro/longstat/schema"
)

// ConsecutiveDeltas computes the change between each pair of chronologically
// adjacent timepoints within one series. A pair only yields a row when both
// endpoint values are usable and the "from" value is non-zero; a bad pair is
// skipped without bridging, so a gap never pairs its two neighbors with each
// other. Series with fewer than two ordinal-bearing points yield nothing.
func ConsecutiveDeltas(key schema.SeriesKey, series *schema.TimeSeries) []schema.DeltaResult {
	points := sortedPoints(series)
	if len(points) < 2 {
		return nil
	}

	var deltas []schema.DeltaResult
	for i := 0; i < len(points)-1; i++ {
		from, to := points[i], points[i+1]
		if !usableValue(from) || !usableValue(to) {
			continue
		}
		if *from.Value == 0 {
			continue
		}

		absChange := *to.Value - *from.Value
		deltas = append(deltas, schema.DeltaResult{
			BaseSubject:    key.BaseSubject,
			MeasureType:    key.MeasureType,
			Structure:      key.Structure,
			TimepointFrom:  from.Label,
			TimepointTo:    to.Label,
			OrdinalFrom:    *from.Ordinal,
			OrdinalTo:      *to.Ordinal,
			ValueFrom:      *from.Value,
			ValueTo:        *to.Value,
			AbsoluteChange: absChange,
			PercentChange:  absChange / *from.Value * 100.0,
		})
	}
	return deltas
}
