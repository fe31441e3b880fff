// Package schema has configs, models and shared constants for all parts of longstat.
package schema

// RawRecord is a measurement record as delivered by a record source,
// before the subject identifier has been resolved into base subject and
// timepoint. One record exists per (subject-timepoint, structure) pair.
type RawRecord struct {
	SubjectID   string      `json:"subject_id"`
	MeasureType MeasureType `json:"measure_type"`
	Structure   string      `json:"structure"`
	Value       *float64    `json:"value"` // nil when the source had no usable value
}

// SubjectIdentity is the result of resolving a raw subject identifier.
type SubjectIdentity struct {
	BaseSubject      string // stable subject identifier with timepoint suffix removed
	TimepointLabel   string // e.g. "ses-02" or "tp3"; empty when no marker present
	TimepointOrdinal *int   // nil when no numeric timepoint could be extracted
}

// MeasurementRecord is a fully resolved measurement record. Immutable after
// creation; the table builder only groups these, it never rewrites them.
type MeasurementRecord struct {
	BaseSubject      string      `json:"base_subject"`
	TimepointLabel   string      `json:"timepoint_label"`
	TimepointOrdinal *int        `json:"timepoint_ordinal"`
	MeasureType      MeasureType `json:"measure_type"`
	Structure        string      `json:"structure"`
	Value            *float64    `json:"value"`
}

// SeriesKey identifies one longitudinal group: all measurements of a single
// structure, of a single measure type, for a single base subject.
type SeriesKey struct {
	BaseSubject string      `json:"base_subject"`
	MeasureType MeasureType `json:"measure_type"`
	Structure   string      `json:"structure"`
}

// TimePoint is a single (ordinal, value) observation within a TimeSeries.
// The label is carried along so delta rows can name their endpoints.
type TimePoint struct {
	Ordinal *int
	Label   string
	Value   *float64
}

// TimeSeries holds the observations for one SeriesKey in arrival order.
// Duplicate ordinals are kept as-is; the estimator and delta calculator
// sort (stably) before use but never merge or deduplicate entries.
type TimeSeries struct {
	Points []TimePoint
}

// Append adds an observation to the series, preserving arrival order.
func (ts *TimeSeries) Append(p TimePoint) {
	ts.Points = append(ts.Points, p)
}

// TrendResult is one output row of the trend estimator: the least-squares
// linear fit of a measurement against ordinal time for one series key.
// Undefined statistics (degenerate fits, n=2 error terms) are NaN;
// PercentChange is nil when the baseline value is exactly zero.
type TrendResult struct {
	BaseSubject    string      `json:"base_subject"`
	MeasureType    MeasureType `json:"measure_type"`
	Structure      string      `json:"structure"`
	NTimepoints    int         `json:"n_timepoints"`
	BaselineValue  float64     `json:"baseline_value"`
	FinalValue     float64     `json:"final_value"`
	Slope          float64     `json:"slope"`
	Intercept      float64     `json:"intercept"`
	RSquared       float64     `json:"r_squared"`
	PValue         float64     `json:"p_value"`
	StdError       float64     `json:"std_error"`
	AbsoluteChange float64     `json:"absolute_change"`
	PercentChange  *float64    `json:"percent_change"`
	TimepointSpan  int         `json:"timepoint_span"`
}

// DeltaResult is one output row of the delta calculator: the change between
// two chronologically adjacent timepoints within one series. Rows are only
// emitted when both endpoint values are present and the "from" value is
// non-zero, so AbsoluteChange and PercentChange are always defined.
type DeltaResult struct {
	BaseSubject    string      `json:"base_subject"`
	MeasureType    MeasureType `json:"measure_type"`
	Structure      string      `json:"structure"`
	TimepointFrom  string      `json:"timepoint_from"`
	TimepointTo    string      `json:"timepoint_to"`
	OrdinalFrom    int         `json:"ordinal_from"`
	OrdinalTo      int         `json:"ordinal_to"`
	ValueFrom      float64     `json:"value_from"`
	ValueTo        float64     `json:"value_to"`
	AbsoluteChange float64     `json:"absolute_change"`
	PercentChange  float64     `json:"percent_change"`
}

// TrendSummary aggregates one trend run for reporting and run tracking.
type TrendSummary struct {
	Subjects     int     `json:"subjects"`
	Structures   int     `json:"structures"`
	Trends       int     `json:"trends"`
	Significant  int     `json:"significant"` // trends with p < Alpha
	MeanRSquared float64 `json:"mean_r_squared"`
	Alpha        float64 `json:"alpha"`
}

// TrendOutput bundles trend rows with their summary for the writers.
type TrendOutput struct {
	Trends  []TrendResult `json:"trends"`
	Summary TrendSummary  `json:"summary"`
}

// DeltaOutput holds the delta rows for the writers.
type DeltaOutput struct {
	Deltas []DeltaResult `json:"deltas"`
}
