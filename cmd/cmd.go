// Package cmd defines the command-line interface for longstat.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(deltasCmd)
	rootCmd.AddCommand(qcCmd)
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(runsCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("format", string(schema.AutoFormat), "Input format: auto or csv or json or parquet")
	rootCmd.PersistentFlags().StringP("measure", "m", "", "Restrict to one measure type: volume or thickness")
	rootCmd.PersistentFlags().StringP("subject", "s", "", "Restrict to one base subject ID")
	rootCmd.PersistentFlags().String("structure", "", "Filter structures by case-insensitive substring")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("run-backend", string(schema.NoneBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of trendsCmd to Viper
	trendsCmd.Flags().Float64("alpha", contract.DefaultAlpha, "Significance level for the trend summary")
	trendsCmd.Flags().Int("min-timepoints", contract.DefaultMinPoints, "Minimum usable timepoints per series")
	if err := viper.BindPFlags(trendsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding trends flags", err)
	}

	// Bind all flags of qcCmd to Viper
	qcCmd.Flags().String("thresholds-override", "", "QC threshold overrides (format: 'cnr=2.5,efc=0.65')")
	if err := viper.BindPFlags(qcCmd.Flags()); err != nil {
		contract.LogFatal("Error binding qc flags", err)
	}

	// Bind all flags of aggregateCmd to Viper
	aggregateCmd.Flags().StringP("table", "t", string(schema.ThicknessTable), "Cross-sectional table: thickness or volumes or summary")
	if err := viper.BindPFlags(aggregateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding aggregate flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
