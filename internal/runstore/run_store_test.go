package runstore

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcneuro/longstat/schema"
)

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return 0 for NoneBackend
	runID, err := store.BeginRun(time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other operations should not error
	assert.NoError(t, store.EndRun(1, time.Now(), 2, 10))
	assert.NoError(t, store.RecordTrendSummary(schema.RunSummaryRecord{RunID: 1}))

	runs, err := store.ListRuns(10)
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestRunStore_SQLite(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	startTime := time.Now()
	configParams := map[string]any{
		"input":   "/data/measurements.csv",
		"measure": "volume",
		"workers": 4,
	}
	runID, err := store.BeginRun(startTime, configParams)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	summary := schema.RunSummaryRecord{
		RunID:        runID,
		MeasureType:  schema.VolumeMeasure,
		Trends:       12,
		Significant:  3,
		MeanRSquared: 0.81,
		Alpha:        0.05,
	}
	require.NoError(t, store.RecordTrendSummary(summary))

	require.NoError(t, store.EndRun(runID, startTime.Add(250*time.Millisecond), 12, 12))

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, 12, run.TotalGroups)
	assert.Equal(t, 12, run.TotalRows)
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int64(250), *run.RunDurationMs)
	require.NotNil(t, run.ConfigParams)
	assert.Contains(t, *run.ConfigParams, "measurements.csv")

	summaries, err := store.ListTrendSummaries(runID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, schema.VolumeMeasure, summaries[0].MeasureType)
	assert.Equal(t, 12, summaries[0].Trends)
	assert.Equal(t, 3, summaries[0].Significant)
	assert.Equal(t, 0.81, summaries[0].MeanRSquared)
}

func TestRunStore_UndefinedMeanRSquaredRoundTrips(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)

	summary := schema.RunSummaryRecord{
		RunID:        runID,
		MeasureType:  schema.ThicknessMeasure,
		Trends:       1,
		MeanRSquared: math.NaN(),
		Alpha:        0.05,
	}
	require.NoError(t, store.RecordTrendSummary(summary))

	summaries, err := store.ListTrendSummaries(runID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.True(t, math.IsNaN(summaries[0].MeanRSquared), "NULL mean r-squared loads back as NaN")
}

func TestRunStore_MultipleRuns(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	var runIDs []int64
	for i := range 3 {
		id, err := store.BeginRun(time.Now(), map[string]any{"run": i})
		require.NoError(t, err)
		runIDs = append(runIDs, id)
		require.NoError(t, store.EndRun(id, time.Now(), i+1, (i+1)*10))
	}

	assert.NotEqual(t, runIDs[0], runIDs[1])
	assert.NotEqual(t, runIDs[1], runIDs[2])

	// Newest first.
	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, runIDs[2], runs[0].RunID)
	assert.Equal(t, runIDs[0], runs[2].RunID)

	// Limit applies.
	runs, err = store.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunStore_ListRunsInFlight(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.BeginRun(time.Now(), nil)
	require.NoError(t, err)

	// A run without EndRun has NULL totals and end time.
	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
	assert.Equal(t, 0, runs[0].TotalGroups)
}

func TestRunStore_GetStatus(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty store
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(0), status.TotalRuns)

	// After two completed runs
	first, err := store.BeginRun(time.Now().Add(-time.Hour), nil)
	require.NoError(t, err)
	require.NoError(t, store.EndRun(first, time.Now().Add(-time.Hour), 2, 20))

	second, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.EndRun(second, time.Now(), 3, 30))
	require.NoError(t, store.RecordTrendSummary(schema.RunSummaryRecord{RunID: second, MeasureType: schema.VolumeMeasure, Alpha: 0.05}))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalRuns)
	assert.Equal(t, second, status.LastRunID)
	assert.Equal(t, int64(50), status.TotalRowsSaved)
	assert.True(t, status.OldestRunTime.Before(status.LastRunTime))
	assert.Equal(t, int64(2), status.TableSizes[runsTable])
	assert.Equal(t, int64(1), status.TableSizes[trendSummariesTable])
}

func TestRunStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRunStore("oracle", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestValidateTableName(t *testing.T) {
	assert.NoError(t, validateTableName("longstat_runs"))
	assert.NoError(t, validateTableName("_private"))
	assert.Error(t, validateTableName(""))
	assert.Error(t, validateTableName("drop table"))
	assert.Error(t, validateTableName("1table"))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, `"longstat_runs"`, quoteTableName("longstat_runs", schema.SQLiteBackend))
	assert.Equal(t, "`longstat_runs`", quoteTableName("longstat_runs", schema.MySQLBackend))
	assert.Equal(t, `"longstat_runs"`, quoteTableName("longstat_runs", schema.PostgreSQLBackend))
}
