package schema

import "time"

// RunStatus reports the state of the run-tracking store.
type RunStatus struct {
	Backend        DatabaseBackend  `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalRuns      int64            `json:"total_runs"`
	LastRunID      int64            `json:"last_run_id"`
	LastRunTime    time.Time        `json:"last_run_time"`
	OldestRunTime  time.Time        `json:"oldest_run_time"`
	TotalRowsSaved int64            `json:"total_rows_saved"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}

// RunRecord is one tracked computation run, as stored and exported.
type RunRecord struct {
	RunID         int64      `json:"run_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	RunDurationMs *int64     `json:"run_duration_ms"`
	TotalGroups   int        `json:"total_groups"`
	TotalRows     int        `json:"total_rows"`
	ConfigParams  *string    `json:"config_params"`
}

// RunSummaryRecord is one per-measure-type trend summary attached to a run.
type RunSummaryRecord struct {
	RunID        int64       `json:"run_id"`
	MeasureType  MeasureType `json:"measure_type"`
	Trends       int         `json:"trends"`
	Significant  int         `json:"significant"`
	MeanRSquared float64     `json:"mean_r_squared"`
	Alpha        float64     `json:"alpha"`
}
