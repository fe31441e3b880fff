package core

import (
	"math"
	"sort"

	"github.com/hpcneuro/longstat/core/algo"
	"github.com/hpcneuro/longstat/schema"
)

// sortedPoints returns the points of a series in chronological order,
// keeping only points that carry a numeric ordinal. The sort is stable so
// duplicate ordinals keep their arrival order; duplicates are legal input
// and every copy participates in the fit.
func sortedPoints(series *schema.TimeSeries) []schema.TimePoint {
	points := make([]schema.TimePoint, 0, len(series.Points))
	for _, p := range series.Points {
		if p.Ordinal != nil {
			points = append(points, p)
		}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return *points[i].Ordinal < *points[j].Ordinal
	})
	return points
}

// usableValue reports whether a point carries a value a fit can consume.
func usableValue(p schema.TimePoint) bool {
	return p.Value != nil && !math.IsNaN(*p.Value)
}

// EstimateTrend fits a least-squares line through one series and reports the
// trend statistics. Points without an ordinal or without a usable value are
// skipped. Series with fewer than minPoints usable observations produce no
// row; the second return value is false. The fit itself never fails: a
// degenerate series yields NaN statistics, not an error.
func EstimateTrend(key schema.SeriesKey, series *schema.TimeSeries, minPoints int) (schema.TrendResult, bool) {
	points := sortedPoints(series)

	valid := points[:0:0]
	for _, p := range points {
		if usableValue(p) {
			valid = append(valid, p)
		}
	}
	if len(valid) < minPoints || len(valid) < 2 {
		return schema.TrendResult{}, false
	}

	x := make([]float64, len(valid))
	y := make([]float64, len(valid))
	for i, p := range valid {
		x[i] = float64(*p.Ordinal)
		y[i] = *p.Value
	}

	fit := algo.Linregress(x, y)

	first, last := valid[0], valid[len(valid)-1]
	baseline := *first.Value
	final := *last.Value

	var pctChange *float64
	if baseline != 0 {
		pctChange = schema.Float64Ptr((final - baseline) / baseline * 100.0)
	}

	return schema.TrendResult{
		BaseSubject:    key.BaseSubject,
		MeasureType:    key.MeasureType,
		Structure:      key.Structure,
		NTimepoints:    len(valid),
		BaselineValue:  baseline,
		FinalValue:     final,
		Slope:          fit.Slope,
		Intercept:      fit.Intercept,
		RSquared:       fit.RSquared,
		PValue:         fit.PValue,
		StdError:       fit.StdError,
		AbsoluteChange: final - baseline,
		PercentChange:  pctChange,
		TimepointSpan:  *last.Ordinal - *first.Ordinal,
	}, true
}
