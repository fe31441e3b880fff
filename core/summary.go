package core

import (
	"math"

	"github.com/hpcneuro/longstat/schema"
)

// SummarizeTrends aggregates a slice of trend rows into cohort-level counts.
// Significance counts rows with p < alpha; undefined p-values never count.
// The mean r-squared skips undefined values, and is NaN when every fit was
// degenerate or the slice is empty.
func SummarizeTrends(trends []schema.TrendResult, alpha float64) schema.TrendSummary {
	subjects := make(map[string]struct{})
	structures := make(map[string]struct{})

	significant := 0
	r2Sum := 0.0
	r2Count := 0
	for _, tr := range trends {
		subjects[tr.BaseSubject] = struct{}{}
		structures[tr.Structure] = struct{}{}
		if tr.PValue < alpha {
			significant++
		}
		if !schema.IsUndefined(tr.RSquared) {
			r2Sum += tr.RSquared
			r2Count++
		}
	}

	meanR2 := math.NaN()
	if r2Count > 0 {
		meanR2 = r2Sum / float64(r2Count)
	}

	return schema.TrendSummary{
		Subjects:     len(subjects),
		Structures:   len(structures),
		Trends:       len(trends),
		Significant:  significant,
		MeanRSquared: meanR2,
		Alpha:        alpha,
	}
}

// summarizeByMeasure splits trend rows by measure type and summarizes each
// bucket separately for run tracking.
func summarizeByMeasure(trends []schema.TrendResult, alpha float64) map[schema.MeasureType]schema.TrendSummary {
	buckets := make(map[schema.MeasureType][]schema.TrendResult)
	for _, tr := range trends {
		buckets[tr.MeasureType] = append(buckets[tr.MeasureType], tr)
	}
	out := make(map[schema.MeasureType]schema.TrendSummary, len(buckets))
	for mt, rows := range buckets {
		out[mt] = SummarizeTrends(rows, alpha)
	}
	return out
}
