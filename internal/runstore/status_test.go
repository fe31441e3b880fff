package runstore

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcneuro/longstat/schema"
)

func TestPrintRunList(t *testing.T) {
	durationMs := int64(120)
	config := `{"measure":"volume"}`

	store := &MockRunStore{}
	store.On("ListRuns", 5).Return([]schema.RunRecord{
		{
			RunID:         2,
			StartTime:     time.Now(),
			RunDurationMs: &durationMs,
			TotalGroups:   4,
			TotalRows:     4,
			ConfigParams:  &config,
		},
		{RunID: 1, StartTime: time.Now().Add(-time.Hour)},
	}, nil)
	store.On("ListTrendSummaries", int64(2)).Return([]schema.RunSummaryRecord{
		{RunID: 2, MeasureType: schema.VolumeMeasure, Trends: 4, Significant: 1, MeanRSquared: 0.7, Alpha: 0.05},
		{RunID: 2, MeasureType: schema.ThicknessMeasure, Trends: 2, MeanRSquared: math.NaN(), Alpha: 0.05},
	}, nil)
	store.On("ListTrendSummaries", int64(1)).Return(nil, nil)

	err := PrintRunList(store, 5)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestPrintRunListEmpty(t *testing.T) {
	store := &MockRunStore{}
	store.On("ListRuns", 10).Return(nil, nil)

	err := PrintRunList(store, 10)
	require.NoError(t, err)
	store.AssertNotCalled(t, "ListTrendSummaries")
}

func TestPrintRunListErrors(t *testing.T) {
	t.Run("list runs fails", func(t *testing.T) {
		store := &MockRunStore{}
		store.On("ListRuns", 10).Return(nil, errors.New("boom"))

		err := PrintRunList(store, 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list runs")
	})

	t.Run("list summaries fails", func(t *testing.T) {
		store := &MockRunStore{}
		store.On("ListRuns", 10).Return([]schema.RunRecord{{RunID: 3, StartTime: time.Now()}}, nil)
		store.On("ListTrendSummaries", int64(3)).Return(nil, errors.New("boom"))

		err := PrintRunList(store, 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list trend summaries for run 3")
	})
}

func TestPrintRunStatus(t *testing.T) {
	// Smoke test: printing must handle both connected and disconnected stores.
	PrintRunStatus(schema.RunStatus{Backend: schema.NoneBackend, Connected: false})
	PrintRunStatus(schema.RunStatus{
		Backend:        schema.SQLiteBackend,
		Connected:      true,
		TotalRuns:      2,
		LastRunID:      2,
		LastRunTime:    time.Now(),
		OldestRunTime:  time.Now().Add(-time.Hour),
		TotalRowsSaved: 40,
		TableSizes:     map[string]int64{runsTable: 2, trendSummariesTable: 3},
	})
}
