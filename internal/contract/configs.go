package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/hpcneuro/longstat/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 50
	MaxResultLimit     = 10000
	DefaultPrecision   = 4
	MaxPrecision       = 8
	DefaultAlpha       = 0.05
	DefaultMinPoints   = 2
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a computation.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath   string
	InputFormat schema.InputFormat
	Measure     schema.MeasureType // empty means all measure types
	Subject     string             // base-subject filter, empty means all
	Structure   string             // structure substring filter, empty means all
	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	Alpha         float64
	MinTimepoints int

	Thresholds schema.QCThresholds

	Table schema.AggregateTable

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Format       string `mapstructure:"format"`
	Measure      string `mapstructure:"measure"`
	Subject      string `mapstructure:"subject"`
	Structure    string `mapstructure:"structure"`
	OutputFile   string `mapstructure:"output-file"`
	Limit        int    `mapstructure:"limit"`
	Workers      int    `mapstructure:"workers"`
	Precision    int    `mapstructure:"precision"`
	Output       string `mapstructure:"output"`
	Width        int    `mapstructure:"width"`
	RunBackend   string `mapstructure:"run-backend"`
	RunDBConnect string `mapstructure:"run-db-connect"`
	Emoji        string `mapstructure:"emoji"`
	Color        string `mapstructure:"color"`

	// --- Fields from trendsCmd.Flags() ---
	Alpha         float64 `mapstructure:"alpha"`
	MinTimepoints int     `mapstructure:"min-timepoints"`

	// --- Fields from qcCmd.Flags() ---
	ThresholdsStr string `mapstructure:"thresholds-override"`

	// --- Fields from aggregateCmd.Flags() ---
	Table string `mapstructure:"table"`

	// --- QC thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`
}

// ThresholdsRawInput holds QC threshold definitions from the YAML config file.
// Use float64 pointers so absent keys fall back to the defaults.
type ThresholdsRawInput struct {
	CNR    *float64 `mapstructure:"cnr"`
	SNR    *float64 `mapstructure:"snr"`
	FBER   *float64 `mapstructure:"fber"`
	EFC    *float64 `mapstructure:"efc"`
	QI2    *float64 `mapstructure:"qi2"`
	CJV    *float64 `mapstructure:"cjv"`
	WM2Max *float64 `mapstructure:"wm2max"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTrendParams(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	if err := resolveInputPath(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Subject = input.Subject
	cfg.Structure = input.Structure
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Measure Validation ---
	if input.Measure != "" {
		cfg.Measure = schema.MeasureType(strings.ToLower(input.Measure))
		if _, ok := schema.ValidMeasureTypes[cfg.Measure]; !ok {
			return fmt.Errorf("invalid measure '%s'. must be volume, thickness", input.Measure)
		}
	}

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 5. Table Validation ---
	if input.Table != "" {
		cfg.Table = schema.AggregateTable(strings.ToLower(input.Table))
		if _, ok := schema.ValidAggregateTables[cfg.Table]; !ok {
			return fmt.Errorf("invalid table '%s'. must be thickness, volumes, summary", input.Table)
		}
	}

	// --- 6. Backend Validation ---
	cfg.RunBackend = schema.DatabaseBackend(strings.ToLower(input.RunBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.RunBackend]; !ok {
		return fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", input.RunBackend)
	}
	cfg.RunDBConnect = input.RunDBConnect
	if err := ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect); err != nil {
		return err
	}

	return nil
}

// processTrendParams validates the statistical knobs of the trend estimator.
func processTrendParams(cfg *Config, input *ConfigRawInput) error {
	if input.Alpha <= 0 || input.Alpha >= 1 {
		return fmt.Errorf("alpha must be between 0 and 1 exclusive (received %g)", input.Alpha)
	}
	cfg.Alpha = input.Alpha

	if input.MinTimepoints < DefaultMinPoints {
		return fmt.Errorf("min-timepoints must be at least %d (received %d)", DefaultMinPoints, input.MinTimepoints)
	}
	cfg.MinTimepoints = input.MinTimepoints

	return nil
}

// processThresholds merges QC threshold overrides from the config file and the
// --thresholds-override flag on top of the defaults. Flag beats file.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	th := schema.DefaultQCThresholds()

	// --- File overrides ---
	if v := input.Thresholds.CNR; v != nil {
		th.MinCNR = *v
	}
	if v := input.Thresholds.SNR; v != nil {
		th.MinSNRTotal = *v
	}
	if v := input.Thresholds.FBER; v != nil {
		th.MinFBER = *v
	}
	if v := input.Thresholds.EFC; v != nil {
		th.MaxEFC = *v
	}
	if v := input.Thresholds.QI2; v != nil {
		th.MaxQI2 = *v
	}
	if v := input.Thresholds.CJV; v != nil {
		th.MaxCJV = *v
	}
	if v := input.Thresholds.WM2Max; v != nil {
		th.MaxWM2Max = *v
	}

	// --- Flag overrides: "cnr=2.5,efc=0.65" ---
	if input.ThresholdsStr != "" {
		for pair := range strings.SplitSeq(input.ThresholdsStr, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			name, valStr, found := strings.Cut(pair, "=")
			if !found {
				return fmt.Errorf("invalid threshold override '%s' (expected metric=value)", pair)
			}
			val, err := strconv.ParseFloat(strings.TrimSpace(valStr), 64)
			if err != nil {
				return fmt.Errorf("invalid threshold value in '%s': %w", pair, err)
			}
			switch strings.ToLower(strings.TrimSpace(name)) {
			case "cnr":
				th.MinCNR = val
			case "snr":
				th.MinSNRTotal = val
			case "fber":
				th.MinFBER = val
			case "efc":
				th.MaxEFC = val
			case "qi2":
				th.MaxQI2 = val
			case "cjv":
				th.MaxCJV = val
			case "wm2max":
				th.MaxWM2Max = val
			default:
				return fmt.Errorf("unknown threshold metric '%s'. must be cnr, snr, fber, efc, qi2, cjv, wm2max", name)
			}
		}
	}

	cfg.Thresholds = th
	return nil
}

// resolveInputPath validates the input path and resolves the input format.
func resolveInputPath(cfg *Config, input *ConfigRawInput) error {
	if input.InputPathStr == "" {
		return fmt.Errorf("input path is required")
	}
	abs, err := filepath.Abs(input.InputPathStr)
	if err != nil {
		return fmt.Errorf("invalid input path '%s': %w", input.InputPathStr, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("input path '%s' is not accessible: %w", input.InputPathStr, err)
	}
	cfg.InputPath = abs

	format := schema.InputFormat(strings.ToLower(input.Format))
	if _, ok := schema.ValidInputFormats[format]; !ok {
		return fmt.Errorf("invalid input format '%s'. must be auto, csv, json, parquet", input.Format)
	}
	if format == schema.AutoFormat {
		resolved, err := ResolveFormatByExtension(abs)
		if err != nil {
			return err
		}
		format = resolved
	}
	cfg.InputFormat = format

	return nil
}

// RevalidateInput re-resolves the input path and format when a tool call
// overrides the configured input. An empty format falls back to auto-detection.
func RevalidateInput(cfg *Config, pathStr, formatStr string) error {
	if formatStr == "" {
		formatStr = string(schema.AutoFormat)
	}
	input := &ConfigRawInput{InputPathStr: pathStr, Format: formatStr}
	return resolveInputPath(cfg, input)
}

// RevalidateTrendParams re-validates the statistical knobs when a tool call
// overrides them.
func RevalidateTrendParams(cfg *Config, alpha float64, minTimepoints int) error {
	input := &ConfigRawInput{Alpha: alpha, MinTimepoints: minTimepoints}
	return processTrendParams(cfg, input)
}

// ResolveFormatByExtension maps a file extension to an input format.
// Directories resolve to JSON since document sources are per-subject files.
func ResolveFormatByExtension(path string) (schema.InputFormat, error) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return schema.JSONFormat, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return schema.CSVFormat, nil
	case ".json":
		return schema.JSONFormat, nil
	case ".parquet":
		return schema.ParquetFormat, nil
	default:
		return "", fmt.Errorf("cannot infer input format from '%s'; pass --format explicitly", filepath.Base(path))
	}
}
