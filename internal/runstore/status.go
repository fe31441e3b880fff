package runstore

import (
	"fmt"
	"math"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/schema"
)

// PrintRunList prints the most recent runs with their trend summaries.
func PrintRunList(store contract.RunStore, limit int) error {
	runs, err := store.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("Run %d: started %s", run.RunID, run.StartTime.Format("2006-01-02 15:04:05"))
		if run.RunDurationMs != nil {
			fmt.Printf(", took %dms", *run.RunDurationMs)
		}
		fmt.Printf(" (%d series, %d rows)\n", run.TotalGroups, run.TotalRows)
		if run.ConfigParams != nil {
			fmt.Printf("  config: %s\n", *run.ConfigParams)
		}

		summaries, err := store.ListTrendSummaries(run.RunID)
		if err != nil {
			return fmt.Errorf("failed to list trend summaries for run %d: %w", run.RunID, err)
		}
		for _, s := range summaries {
			meanR2 := "n/a"
			if !math.IsNaN(s.MeanRSquared) {
				meanR2 = fmt.Sprintf("%.4f", s.MeanRSquared)
			}
			fmt.Printf("  %s: %d trends, %d significant at alpha=%g, mean r2 %s\n",
				s.MeasureType, s.Trends, s.Significant, s.Alpha, meanR2)
		}
	}

	return nil
}

// PrintRunStatus prints run tracking status information.
func PrintRunStatus(status schema.RunStatus) {
	fmt.Printf("Run Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Run: %s\n", status.OldestRunTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Total Rows Produced: %d\n", status.TotalRowsSaved)
	}
	fmt.Println("Table Sizes:")
	for table, size := range status.TableSizes {
		fmt.Printf("  %s: %d rows\n", table, size)
	}
}
