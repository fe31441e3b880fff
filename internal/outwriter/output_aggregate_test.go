package outwriter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/schema"
)

func aggregateConfig() *contract.Config {
	return &contract.Config{
		Output:      schema.TextOut,
		Precision:   2,
		ResultLimit: 50,
		Width:       120,
	}
}

func thicknessOutput() *schema.AggregateOutput {
	return &schema.AggregateOutput{
		Table: schema.ThicknessTable,
		Thickness: []schema.ThicknessRow{
			{
				SubjectID:      "sub-001",
				Atlas:          "desikan_killiany",
				Region:         "lh_precentral",
				ThicknessMM:    2.5,
				ThicknessStdMM: schema.Float64Ptr(0.4),
				SurfaceAreaMM2: schema.Float64Ptr(4800),
			},
			{
				SubjectID:   "sub-002",
				Atlas:       "desikan_killiany",
				Region:      "lh_precentral",
				ThicknessMM: 2.4,
			},
		},
	}
}

func volumesOutput() *schema.AggregateOutput {
	return &schema.AggregateOutput{
		Table: schema.VolumesTable,
		Volumes: &schema.VolumeTable{
			Structures: []string{"Left-Hippocampus", "Right-Hippocampus"},
			Subjects:   []string{"sub-001", "sub-002"},
			Rows: map[string]map[string]*float64{
				"sub-001": {
					"Left-Hippocampus":  schema.Float64Ptr(4200),
					"Right-Hippocampus": schema.Float64Ptr(4300),
				},
				"sub-002": {
					"Left-Hippocampus": schema.Float64Ptr(3900),
				},
			},
		},
	}
}

func summaryOutput() *schema.AggregateOutput {
	return &schema.AggregateOutput{
		Table:       schema.SummaryTable,
		SummaryKeys: []string{"etiv_mm3", "total_gray_mm3"},
		Summaries: []schema.SummaryRow{
			{SubjectID: "sub-001", Metrics: map[string]float64{"etiv_mm3": 1510000, "total_gray_mm3": 620000}},
			{SubjectID: "sub-002", Metrics: map[string]float64{"etiv_mm3": 1480000}},
		},
	}
}

func TestWriteAggregateTableThickness(t *testing.T) {
	fmtFloat, fmtOpt := createFormatters(2)

	var buf bytes.Buffer
	err := writeAggregateTable(thicknessOutput(), aggregateConfig(), fmtFloat, fmtOpt, 20*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "sub-001")
	assert.Contains(t, out, "desikan_killiany")
	assert.Contains(t, out, "2.50")
	assert.Contains(t, out, "Showing 2 of 2 rows from the thickness table")
	assert.Contains(t, out, "Aggregation completed in 20ms")
}

func TestWriteAggregateTableVolumes(t *testing.T) {
	fmtFloat, fmtOpt := createFormatters(2)

	var buf bytes.Buffer
	err := writeAggregateTable(volumesOutput(), aggregateConfig(), fmtFloat, fmtOpt, time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Left-Hippocampus")
	assert.Contains(t, out, "4200.00")
	assert.Contains(t, out, "Showing 2 of 2 rows from the volumes table")
}

func TestWriteAggregateTableVolumesMissing(t *testing.T) {
	fmtFloat, fmtOpt := createFormatters(2)

	output := &schema.AggregateOutput{Table: schema.VolumesTable}

	var buf bytes.Buffer
	err := writeAggregateTable(output, aggregateConfig(), fmtFloat, fmtOpt, time.Millisecond, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no volume table computed")
}

func TestWriteCSVResultsForAggregateThickness(t *testing.T) {
	fmtFloat, fmtOpt := createFormatters(2)

	var buf bytes.Buffer
	err := writeCSVResultsForAggregate(&buf, thicknessOutput(), fmtFloat, fmtOpt)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "subject_id,atlas,region,thickness_mm,thickness_std_mm,surface_area_mm2,gray_volume_mm3", lines[0])
	assert.Contains(t, lines[1], "sub-001")
	assert.Contains(t, lines[2], "sub-002")
	assert.True(t, strings.HasSuffix(lines[2], ",,,"), "missing optional metrics leave empty cells")
}

func TestWriteCSVResultsForAggregateVolumes(t *testing.T) {
	fmtFloat, fmtOpt := createFormatters(2)

	var buf bytes.Buffer
	err := writeCSVResultsForAggregate(&buf, volumesOutput(), fmtFloat, fmtOpt)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "subject_id,Left-Hippocampus,Right-Hippocampus", lines[0])
	assert.Equal(t, "sub-001,4200.00,4300.00", lines[1])
	assert.Equal(t, "sub-002,3900.00,", lines[2])
}

func TestWriteCSVResultsForAggregateSummary(t *testing.T) {
	fmtFloat, fmtOpt := createFormatters(2)

	var buf bytes.Buffer
	err := writeCSVResultsForAggregate(&buf, summaryOutput(), fmtFloat, fmtOpt)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "subject_id,etiv_mm3,total_gray_mm3", lines[0])
	assert.Equal(t, "sub-001,1510000.00,620000.00", lines[1])
	assert.Equal(t, "sub-002,1480000.00,", lines[2])
}
