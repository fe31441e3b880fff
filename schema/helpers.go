package schema

import (
	"fmt"
	"math"
)

// Float64Ptr returns a pointer to v. Convenience for building records.
func Float64Ptr(v float64) *float64 { return &v }

// IntPtr returns a pointer to v. Convenience for building records.
func IntPtr(v int) *int { return &v }

// IsUndefined reports whether a statistic came out undefined (NaN or Inf).
// Undefined statistics are legal output; they render as empty cells in
// tables and CSV, and as null in JSON and Parquet.
func IsUndefined(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// FormatFloat renders a float at the given precision, with undefined
// statistics rendered as the empty string.
func FormatFloat(v float64, precision int) string {
	if IsUndefined(v) {
		return ""
	}
	return fmt.Sprintf("%.*f", precision, v)
}

// FormatFloatPtr renders an optional float, with nil rendered as the
// empty string.
func FormatFloatPtr(v *float64, precision int) string {
	if v == nil {
		return ""
	}
	return FormatFloat(*v, precision)
}

// Key returns the series key of a trend row.
func (t TrendResult) Key() SeriesKey {
	return SeriesKey{BaseSubject: t.BaseSubject, MeasureType: t.MeasureType, Structure: t.Structure}
}

// Key returns the series key of a delta row.
func (d DeltaResult) Key() SeriesKey {
	return SeriesKey{BaseSubject: d.BaseSubject, MeasureType: d.MeasureType, Structure: d.Structure}
}

// Less orders series keys by subject, then measure type, then structure.
// Writers sort on this so column output is stable across runs even though
// groups are computed concurrently.
func (k SeriesKey) Less(o SeriesKey) bool {
	if k.BaseSubject != o.BaseSubject {
		return k.BaseSubject < o.BaseSubject
	}
	if k.MeasureType != o.MeasureType {
		return k.MeasureType < o.MeasureType
	}
	return k.Structure < o.Structure
}
