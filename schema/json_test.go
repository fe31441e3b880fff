package schema_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcneuro/longstat/schema"
)

func TestTrendResultMarshalJSON(t *testing.T) {
	pct := -2.4
	tr := schema.TrendResult{
		BaseSubject:    "sub-001",
		MeasureType:    schema.VolumeMeasure,
		Structure:      "Left-Hippocampus",
		NTimepoints:    3,
		BaselineValue:  4200,
		FinalValue:     4100,
		Slope:          -50,
		Intercept:      4250,
		RSquared:       0.98,
		PValue:         math.NaN(),
		StdError:       math.Inf(1),
		AbsoluteChange: -100,
		PercentChange:  &pct,
		TimepointSpan:  2,
	}

	data, err := json.Marshal(tr)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "sub-001", decoded["base_subject"])
	assert.Equal(t, -50.0, decoded["slope"])
	assert.Equal(t, -2.4, decoded["percent_change"])

	// NaN and Inf render as null instead of breaking the encoder
	assert.Nil(t, decoded["p_value"])
	assert.Nil(t, decoded["std_error"])
}

func TestTrendSummaryMarshalJSON(t *testing.T) {
	data, err := json.Marshal(schema.TrendSummary{
		Subjects:     2,
		Structures:   3,
		Trends:       6,
		Significant:  1,
		MeanRSquared: math.NaN(),
		Alpha:        0.05,
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, 6.0, decoded["trends"])
	assert.Nil(t, decoded["mean_r_squared"])
	assert.Equal(t, 0.05, decoded["alpha"])
}
