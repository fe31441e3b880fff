package runstore

import (
	"errors"
	"fmt"
	"math"

	"github.com/hpcneuro/longstat/internal/parquet"
	"github.com/hpcneuro/longstat/schema"
)

// ExecuteRunExport performs the actual export of run history to Parquet files.
func ExecuteRunExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run store
	store := Manager.GetRunStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total trend summaries: %d\n", status.TableSizes[trendSummariesTable])

	// Retrieve every tracked run
	limit := status.TotalRuns
	if limit > math.MaxInt32 {
		limit = math.MaxInt32
	}
	runs, err := store.ListRuns(int(limit))
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Collect the trend summaries attached to each run
	var summaries []schema.RunSummaryRecord
	for _, run := range runs {
		runSummaries, err := store.ListTrendSummaries(run.RunID)
		if err != nil {
			return fmt.Errorf("failed to retrieve trend summaries for run %d: %w", run.RunID, err)
		}
		summaries = append(summaries, runSummaries...)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetSummaries := parquet.ConvertRunSummaryRecords(summaries)

	// Write runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	// Write trend summaries to Parquet
	summariesFile := outputFile + ".trend_summaries.parquet"
	if err := parquet.WriteRunSummariesParquet(parquetSummaries, summariesFile); err != nil {
		return fmt.Errorf("failed to write trend summaries: %w", err)
	}
	fmt.Printf("Exported %d trend summary records to: %s\n", len(parquetSummaries), summariesFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
