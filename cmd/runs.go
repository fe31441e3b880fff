package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/internal/runstore"
	"github.com/hpcneuro/longstat/schema"
)

// runsSetup loads minimal configuration needed for run-tracking operations.
// This is used by commands that need store access without full shared setup.
func runsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get run-tracking config values
	backendStr := viper.GetString("run-backend")
	connStr := viper.GetString("run-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := runstore.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run tracking: %w", err)
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func runsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get run-tracking config values
	backendStr := viper.GetString("run-backend")
	connStr := viper.GetString("run-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetRunDBFilePath()
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr

	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for the migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd focused on run history management.
//
// Note: Runs subcommands use minimal initialization (runsSetup) instead of
// the full sharedSetup used by computation commands. This avoids input path
// validation and complex config processing for simple store operations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage tracked computation runs and exports",
	Long: `Manage the run history recorded by trend and delta computations.

When enabled, longstat tracks every computation run, storing:
- Run metadata (timestamp, configuration, duration)
- Series and output row counts
- Per-measure-type trend summaries (counts, significance, mean r-squared)

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run tracking statistics
  list    - Show recent runs and their summaries
  export  - Export run history to Parquet for analytics
  clear   - Remove all run history
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  longstat runs status

  # Export for analysis in pandas/DuckDB
  longstat runs export --output-file run-history.parquet`,
}

// runsStatusCmd shows run tracking status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about the run tracking store.

Displays:
- Backend type and connection status
- Total number of runs stored
- Last and oldest run timestamps
- Total output rows across all runs
- Database table sizes

Examples:
  # Check run tracking status
  longstat runs status`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := runstore.Manager.GetRunStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run status", err)
		}
		runstore.PrintRunStatus(status)
	},
}

// runsListCmd lists recent runs with their trend summaries.
var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent runs and their per-measure trend summaries",
	Long: `List the most recent tracked runs, newest first.

Each run prints its timing, configuration, and output counts, followed by
the per-measure-type trend summaries recorded for it.

Examples:
  # Show the 10 most recent runs
  longstat runs list --limit 10`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		limit := viper.GetInt("limit")
		if limit <= 0 {
			limit = contract.DefaultResultLimit
		}
		if err := runstore.PrintRunList(runstore.Manager.GetRunStore(), limit); err != nil {
			contract.LogFatal("Failed to list runs", err)
		}
	},
}

// runsClearCmd clears the run history.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all tracked run history",
	Long: `Delete all stored runs and trend summaries.

WARNING: This action cannot be undone. Consider exporting data first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the run tables

Examples:
  # Export before clearing
  longstat runs export --output-file backup.parquet
  longstat runs clear`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.ClearRuns(cfg.RunBackend, cfg.RunDBConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// runsExportCmd exports run history to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all stored run history to Parquet format for use with analytics tools.

Exports two datasets:
- Runs - metadata about each computation run
- Trend summaries - per-measure-type significance summaries per run

Requires: --output-file parameter

Examples:
  # Export all run history
  longstat runs export --output-file run-history.parquet

  # Use with DuckDB for analysis
  longstat runs export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.runs.parquet') LIMIT 10"`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.ExecuteRunExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run tracking store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  longstat runs migrate

  # Migrate to specific version
  longstat runs migrate --target-version 1

  # Rollback to initial state
  longstat runs migrate --target-version 0`,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.MigrateRuns(cfg.RunBackend, cfg.RunDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
