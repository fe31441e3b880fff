// Package core has core logic for resolving subjects, building longitudinal
// tables, and estimating trends and deltas.
package core

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/internal/outwriter"
	"github.com/hpcneuro/longstat/internal/source"
	"github.com/hpcneuro/longstat/schema"
)

// ExecutorFunc defines the function signature for executing different computation modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error

// ExecuteTrends runs the longitudinal trend estimation and prints results.
// It serves as the main entry point for the 'trends' mode.
func ExecuteTrends(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	start := time.Now()
	src := source.NewRecordSource(cfg)
	output, err := GetTrendOutput(ctx, cfg, src, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintTrendResults(output, cfg, duration)
}

// ExecuteDeltas runs the consecutive-delta calculation and prints results.
// It serves as the main entry point for the 'deltas' mode.
func ExecuteDeltas(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	start := time.Now()
	src := source.NewRecordSource(cfg)
	output, err := GetDeltaOutput(ctx, cfg, src, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintDeltaResults(output, cfg, duration)
}

// ExecuteQC runs the image-quality aggregation and prints results.
// It serves as the main entry point for the 'qc' mode.
func ExecuteQC(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	start := time.Now()
	src := source.NewQCSource(cfg)
	output, err := GetQCOutput(ctx, cfg, src)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintQCResults(output, cfg, duration)
}

// ExecuteAggregate builds one cross-sectional table from atlas documents and
// prints it. It serves as the main entry point for the 'aggregate' mode.
func ExecuteAggregate(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	start := time.Now()
	src := source.NewAtlasSource(cfg)
	output, err := GetAggregateOutput(ctx, cfg, src)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintAggregateResults(output, cfg, duration)
}

// GetTrendOutput loads records, builds the longitudinal table, and estimates
// a trend per series. Series that fall below the minimum timepoint count are
// skipped silently; an input that yields no table at all is an error.
func GetTrendOutput(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.RunManager) (*schema.TrendOutput, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogRunHeader("trends", cfg)
	}

	runID, runStore := beginRun(cfg, mgr)

	table, err := buildFilteredTable(ctx, cfg, src)
	if err != nil {
		return nil, err
	}

	trends := estimateAllTrends(cfg, table)
	sort.Slice(trends, func(i, j int) bool { return trends[i].Key().Less(trends[j].Key()) })

	output := &schema.TrendOutput{
		Trends:  trends,
		Summary: SummarizeTrends(trends, cfg.Alpha),
	}

	if runStore != nil && runID > 0 {
		for mt, summary := range summarizeByMeasure(trends, cfg.Alpha) {
			rec := schema.RunSummaryRecord{
				RunID:        runID,
				MeasureType:  mt,
				Trends:       summary.Trends,
				Significant:  summary.Significant,
				MeanRSquared: summary.MeanRSquared,
				Alpha:        summary.Alpha,
			}
			if err := runStore.RecordTrendSummary(rec); err != nil {
				contract.LogWarn("Failed to record trend summary", err)
			}
		}
		endRun(runStore, runID, len(table), len(trends))
	}

	return output, nil
}

// GetDeltaOutput loads records, builds the longitudinal table, and computes
// consecutive deltas per series.
func GetDeltaOutput(ctx context.Context, cfg *contract.Config, src contract.RecordSource, mgr contract.RunManager) (*schema.DeltaOutput, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogRunHeader("deltas", cfg)
	}

	runID, runStore := beginRun(cfg, mgr)

	table, err := buildFilteredTable(ctx, cfg, src)
	if err != nil {
		return nil, err
	}

	deltas := computeAllDeltas(cfg, table)
	sort.Slice(deltas, func(i, j int) bool {
		ki, kj := deltas[i].Key(), deltas[j].Key()
		if ki != kj {
			return ki.Less(kj)
		}
		return deltas[i].OrdinalFrom < deltas[j].OrdinalFrom
	})

	if runStore != nil && runID > 0 {
		endRun(runStore, runID, len(table), len(deltas))
	}

	return &schema.DeltaOutput{Deltas: deltas}, nil
}

// GetQCOutput loads MRIQC records and aggregates outlier flags and z-scores.
func GetQCOutput(ctx context.Context, cfg *contract.Config, src contract.QCSource) (*schema.QCOutput, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogRunHeader("qc", cfg)
	}

	records, err := src.LoadQCRecords(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no QC records found")
	}

	output := AggregateQC(records, cfg.Thresholds)
	return &output, nil
}

// GetAggregateOutput loads atlas documents and builds the configured table.
func GetAggregateOutput(ctx context.Context, cfg *contract.Config, src contract.AtlasSource) (*schema.AggregateOutput, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogRunHeader("aggregate", cfg)
	}

	docs, err := src.LoadAtlasDocuments(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, errors.New("no atlas documents found")
	}

	output := BuildAggregate(docs, cfg.Table)
	return &output, nil
}

// ExecuteMetrics displays the formal definitions of all emitted columns.
// This is a static display that does not require any input data.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.RunManager) error {
	return outwriter.PrintMetricDefinitions(cfg)
}

// buildFilteredTable performs the shared Load, Resolve, Filter and Group steps.
func buildFilteredTable(ctx context.Context, cfg *contract.Config, src contract.RecordSource) (map[schema.SeriesKey]*schema.TimeSeries, error) {
	// --- 1. Load Phase ---
	raw, err := src.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}

	// --- 2. Resolve and Filter ---
	records := filterRecords(cfg, ResolveRecords(raw))
	if len(records) == 0 {
		return nil, errors.New("no measurement records found")
	}

	// --- 3. Group into series ---
	return BuildTable(records), nil
}

// estimateAllTrends fits every series in parallel using a worker pool.
// It spawns cfg.Workers goroutines and collects one trend row per series
// that meets the minimum timepoint count.
func estimateAllTrends(cfg *contract.Config, table map[schema.SeriesKey]*schema.TimeSeries) []schema.TrendResult {
	type job struct {
		key    schema.SeriesKey
		series *schema.TimeSeries
	}
	jobCh := make(chan job, len(table))
	resultCh := make(chan schema.TrendResult, len(table))
	var wg sync.WaitGroup

	// Start worker pool
	for range cfg.Workers {
		wg.Go(func() {
			for j := range jobCh {
				if trend, ok := EstimateTrend(j.key, j.series, cfg.MinTimepoints); ok {
					resultCh <- trend
				}
			}
		})
	}

	// Send series to worker channel
	for key, series := range table {
		jobCh <- job{key: key, series: series}
	}
	close(jobCh)

	// Wait for all workers to finish processing
	wg.Wait()
	close(resultCh)

	results := make([]schema.TrendResult, 0, len(table))
	for r := range resultCh {
		results = append(results, r)
	}
	return results
}

// computeAllDeltas computes consecutive deltas for every series in parallel.
func computeAllDeltas(cfg *contract.Config, table map[schema.SeriesKey]*schema.TimeSeries) []schema.DeltaResult {
	type job struct {
		key    schema.SeriesKey
		series *schema.TimeSeries
	}
	jobCh := make(chan job, len(table))
	resultCh := make(chan []schema.DeltaResult, len(table))
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for j := range jobCh {
				if deltas := ConsecutiveDeltas(j.key, j.series); len(deltas) > 0 {
					resultCh <- deltas
				}
			}
		})
	}

	for key, series := range table {
		jobCh <- job{key: key, series: series}
	}
	close(jobCh)

	wg.Wait()
	close(resultCh)

	var results []schema.DeltaResult
	for rs := range resultCh {
		results = append(results, rs...)
	}
	return results
}

// beginRun starts run tracking when a store is configured. A tracking
// failure degrades to a warning, never to a failed computation.
func beginRun(cfg *contract.Config, mgr contract.RunManager) (int64, contract.RunStore) {
	runStore := mgr.GetRunStore()
	if runStore == nil {
		return 0, nil
	}
	configParams := map[string]any{
		"input":          cfg.InputPath,
		"format":         string(cfg.InputFormat),
		"measure":        string(cfg.Measure),
		"workers":        cfg.Workers,
		"alpha":          cfg.Alpha,
		"min_timepoints": cfg.MinTimepoints,
	}
	runID, err := runStore.BeginRun(time.Now(), configParams)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return 0, runStore
	}
	return runID, runStore
}

// endRun finalizes run tracking.
func endRun(runStore contract.RunStore, runID int64, totalGroups, totalRows int) {
	if err := runStore.EndRun(runID, time.Now(), totalGroups, totalRows); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}
