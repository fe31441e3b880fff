package schema

import "encoding/json"

// nullable converts an undefined statistic to a null JSON cell. The stdlib
// encoder rejects NaN and Inf outright, so every float that can come out of
// a degenerate fit goes through this.
func nullable(v float64) *float64 {
	if IsUndefined(v) {
		return nil
	}
	return &v
}

// MarshalJSON renders undefined statistics as null.
func (t TrendResult) MarshalJSON() ([]byte, error) {
	type jsonTrendResult struct {
		BaseSubject    string      `json:"base_subject"`
		MeasureType    MeasureType `json:"measure_type"`
		Structure      string      `json:"structure"`
		NTimepoints    int         `json:"n_timepoints"`
		BaselineValue  float64     `json:"baseline_value"`
		FinalValue     float64     `json:"final_value"`
		Slope          *float64    `json:"slope"`
		Intercept      *float64    `json:"intercept"`
		RSquared       *float64    `json:"r_squared"`
		PValue         *float64    `json:"p_value"`
		StdError       *float64    `json:"std_error"`
		AbsoluteChange float64     `json:"absolute_change"`
		PercentChange  *float64    `json:"percent_change"`
		TimepointSpan  int         `json:"timepoint_span"`
	}
	return json.Marshal(jsonTrendResult{
		BaseSubject:    t.BaseSubject,
		MeasureType:    t.MeasureType,
		Structure:      t.Structure,
		NTimepoints:    t.NTimepoints,
		BaselineValue:  t.BaselineValue,
		FinalValue:     t.FinalValue,
		Slope:          nullable(t.Slope),
		Intercept:      nullable(t.Intercept),
		RSquared:       nullable(t.RSquared),
		PValue:         nullable(t.PValue),
		StdError:       nullable(t.StdError),
		AbsoluteChange: t.AbsoluteChange,
		PercentChange:  t.PercentChange,
		TimepointSpan:  t.TimepointSpan,
	})
}

// MarshalJSON renders an undefined mean r-squared as null.
func (s TrendSummary) MarshalJSON() ([]byte, error) {
	type jsonTrendSummary struct {
		Subjects     int      `json:"subjects"`
		Structures   int      `json:"structures"`
		Trends       int      `json:"trends"`
		Significant  int      `json:"significant"`
		MeanRSquared *float64 `json:"mean_r_squared"`
		Alpha        float64  `json:"alpha"`
	}
	return json.Marshal(jsonTrendSummary{
		Subjects:     s.Subjects,
		Structures:   s.Structures,
		Trends:       s.Trends,
		Significant:  s.Significant,
		MeanRSquared: nullable(s.MeanRSquared),
		Alpha:        s.Alpha,
	})
}
