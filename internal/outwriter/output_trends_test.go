package outwriter

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/schema"
)

func sampleTrends() []schema.TrendResult {
	return []schema.TrendResult{
		{
			BaseSubject:    "sub-001",
			MeasureType:    schema.VolumeMeasure,
			Structure:      "Left-Hippocampus",
			NTimepoints:    4,
			BaselineValue:  4200,
			FinalValue:     4050,
			Slope:          -50.0,
			Intercept:      4250.0,
			RSquared:       0.98,
			PValue:         0.012,
			StdError:       5.2,
			AbsoluteChange: -150,
			PercentChange:  schema.Float64Ptr(-3.5714),
			TimepointSpan:  3,
		},
		{
			BaseSubject:    "sub-002",
			MeasureType:    schema.VolumeMeasure,
			Structure:      "Left-Hippocampus",
			NTimepoints:    2,
			BaselineValue:  3900,
			FinalValue:     3880,
			Slope:          -20.0,
			RSquared:       1.0,
			PValue:         math.NaN(),
			StdError:       math.NaN(),
			AbsoluteChange: -20,
			PercentChange:  nil,
			TimepointSpan:  1,
		},
	}
}

func trendOutput() *schema.TrendOutput {
	trends := sampleTrends()
	return &schema.TrendOutput{
		Trends: trends,
		Summary: schema.TrendSummary{
			Subjects:     2,
			Structures:   1,
			Trends:       2,
			Significant:  1,
			MeanRSquared: 0.99,
			Alpha:        0.05,
		},
	}
}

func TestWriteCSVResultsForTrends(t *testing.T) {
	fmtFloat, fmtOpt := createFormatters(4)

	var buf bytes.Buffer
	err := writeCSVResultsForTrends(&buf, sampleTrends(), 0.05, fmtFloat, fmtOpt)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows

	assert.Contains(t, lines[0], "base_subject")
	assert.Contains(t, lines[0], "p_value")
	assert.Contains(t, lines[0], "label")

	assert.Contains(t, lines[1], "sub-001")
	assert.Contains(t, lines[1], "-50.0000")
	assert.Contains(t, lines[1], "Significant")

	// NaN p-value and nil percent change render as empty cells, label None.
	assert.Contains(t, lines[2], "sub-002")
	assert.Contains(t, lines[2], ",,")
	assert.Contains(t, lines[2], "None")
}

func TestWriteCSVResultsForTrendsEmpty(t *testing.T) {
	fmtFloat, fmtOpt := createFormatters(2)

	var buf bytes.Buffer
	err := writeCSVResultsForTrends(&buf, nil, 0.05, fmtFloat, fmtOpt)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "base_subject")
}

func TestWriteTrendTable(t *testing.T) {
	cfg := &contract.Config{
		Output:      schema.TextOut,
		Precision:   4,
		ResultLimit: 50,
		Workers:     4,
		Alpha:       0.05,
		RunBackend:  schema.NoneBackend,
		Width:       120,
	}
	fmtFloat, fmtOpt := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeTrendTable(trendOutput(), cfg, fmtFloat, fmtOpt, 100*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "sub-001")
	assert.Contains(t, out, "Left-Hippocampus")
	assert.Contains(t, out, "-50.0000")
	assert.Contains(t, out, "Significant")
	assert.Contains(t, out, "Showing 2 of 2 trends across 2 subjects and 1 structures")
	assert.Contains(t, out, "1 significant at alpha=0.05")
	assert.Contains(t, out, "Computation completed in 100ms with 4 workers")
}

func TestWriteTrendTableRespectsResultLimit(t *testing.T) {
	cfg := &contract.Config{
		Output:      schema.TextOut,
		Precision:   2,
		ResultLimit: 1,
		Workers:     1,
		Alpha:       0.05,
		RunBackend:  schema.NoneBackend,
		Width:       120,
	}
	fmtFloat, fmtOpt := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeTrendTable(trendOutput(), cfg, fmtFloat, fmtOpt, time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "sub-001")
	assert.NotContains(t, out, "sub-002", "text output truncates at the result limit")
	assert.Contains(t, out, "Showing 1 of 2 trends")
}

func TestPrintTrendResultsJSON(t *testing.T) {
	output := trendOutput()

	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, output))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	trends, ok := decoded["trends"].([]any)
	require.True(t, ok)
	require.Len(t, trends, 2)

	second := trends[1].(map[string]any)
	assert.Nil(t, second["p_value"], "undefined statistics serialize as null")
	assert.Nil(t, second["percent_change"])
}
