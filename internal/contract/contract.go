// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/hpcneuro/longstat/schema"
)

// RecordSource delivers raw measurement records from a backing store.
// This allows the core computation to be tested without files on disk.
type RecordSource interface {
	// LoadRecords reads every raw measurement record from the source.
	LoadRecords(ctx context.Context) ([]schema.RawRecord, error)
}

// QCSource delivers image-quality records extracted from MRIQC documents.
type QCSource interface {
	// LoadQCRecords reads every QC record from the source.
	LoadQCRecords(ctx context.Context) ([]schema.QCRecord, error)
}

// AtlasSource delivers per-subject atlas documents for cross-sectional tables.
type AtlasSource interface {
	// LoadAtlasDocuments reads every atlas document from the source.
	LoadAtlasDocuments(ctx context.Context) ([]schema.AtlasDocument, error)
}

// RunManager defines the interface for accessing the run-tracking store.
// This allows the tracking layer to be mocked for testing.
type RunManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for tracking computation runs.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalGroups, totalRows int) error

	// RecordTrendSummary stores a per-measure-type trend summary for a run
	RecordTrendSummary(summary schema.RunSummaryRecord) error

	// ListRuns returns the most recent runs, newest first
	ListRuns(limit int) ([]schema.RunRecord, error)

	// ListTrendSummaries returns the summaries attached to a run
	ListTrendSummaries(runID int64) ([]schema.RunSummaryRecord, error)

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// Close closes the underlying connection
	Close() error
}
