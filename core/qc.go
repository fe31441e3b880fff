package core

import (
	"gonum.org/v1/gonum/stat"

	"github.com/hpcneuro/longstat/schema"
)

// qcMetric binds a metric name to its accessor so the z-score pass and the
// outlier pass iterate the same set.
type qcMetric struct {
	name string
	get  func(*schema.QCRecord) *float64
}

var qcMetrics = []qcMetric{
	{"cnr", func(r *schema.QCRecord) *float64 { return r.CNR }},
	{"snr_total", func(r *schema.QCRecord) *float64 { return r.SNRTotal }},
	{"fber", func(r *schema.QCRecord) *float64 { return r.FBER }},
	{"efc", func(r *schema.QCRecord) *float64 { return r.EFC }},
	{"qi_2", func(r *schema.QCRecord) *float64 { return r.QI2 }},
	{"cjv", func(r *schema.QCRecord) *float64 { return r.CJV }},
	{"wm2max", func(r *schema.QCRecord) *float64 { return r.WM2Max }},
}

// AggregateQC flags threshold outliers on every QC record and computes
// cohort z-scores for the key metrics. A record missing a metric is never
// flagged on it and gets no z-score for it; a metric with zero variance
// across the cohort gets z-scores of zero, matching the convention that a
// constant cohort has no outliers by distance.
func AggregateQC(records []schema.QCRecord, th schema.QCThresholds) schema.QCOutput {
	results := make([]schema.QCResult, len(records))
	for i, rec := range records {
		results[i] = flagOutliers(rec, th)
	}

	attachZScores(records, results)

	outliers := 0
	for _, r := range results {
		if r.OutlierAny {
			outliers++
		}
	}

	return schema.QCOutput{
		Results:  results,
		Subjects: len(results),
		Outliers: outliers,
	}
}

// flagOutliers applies the thresholds to one record.
func flagOutliers(rec schema.QCRecord, th schema.QCThresholds) schema.QCResult {
	res := schema.QCResult{QCRecord: rec}

	below := func(v *float64, cutoff float64) bool { return v != nil && *v < cutoff }
	above := func(v *float64, cutoff float64) bool { return v != nil && *v > cutoff }

	res.OutlierCNR = below(rec.CNR, th.MinCNR)
	res.OutlierSNR = below(rec.SNRTotal, th.MinSNRTotal)
	res.OutlierFBER = below(rec.FBER, th.MinFBER)
	res.OutlierEFC = above(rec.EFC, th.MaxEFC)
	res.OutlierQI2 = above(rec.QI2, th.MaxQI2)
	res.OutlierCJV = above(rec.CJV, th.MaxCJV)
	res.OutlierWM2Max = above(rec.WM2Max, th.MaxWM2Max)

	for _, hit := range []bool{
		res.OutlierCNR, res.OutlierSNR, res.OutlierFBER, res.OutlierEFC,
		res.OutlierQI2, res.OutlierCJV, res.OutlierWM2Max,
	} {
		if hit {
			res.OutlierCount++
		}
	}
	res.OutlierAny = res.OutlierCount > 0

	return res
}

// attachZScores computes per-metric cohort z-scores and stores them on the
// result rows. Metrics need at least two present values for a spread.
func attachZScores(records []schema.QCRecord, results []schema.QCResult) {
	for i := range results {
		results[i].ZScores = make(map[string]float64)
	}

	for _, m := range qcMetrics {
		values := make([]float64, 0, len(records))
		indices := make([]int, 0, len(records))
		for i := range records {
			if v := m.get(&records[i]); v != nil {
				values = append(values, *v)
				indices = append(indices, i)
			}
		}
		if len(values) < 2 {
			continue
		}

		mean := stat.Mean(values, nil)
		std := stat.StdDev(values, nil)
		for j, idx := range indices {
			if std == 0 {
				results[idx].ZScores[m.name] = 0
			} else {
				results[idx].ZScores[m.name] = (values[j] - mean) / std
			}
		}
	}
}
