package schema

// Custom string types for type safety.
type (
	// MeasureType distinguishes the kinds of structural measurements.
	MeasureType string

	// OutputMode represents the format of the output.
	OutputMode string

	// InputFormat represents the on-disk format of a record source.
	InputFormat string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string

	// AggregateTable selects which cross-sectional table to emit.
	AggregateTable string
)

// All measure types supported.
const (
	VolumeMeasure    MeasureType = "volume"
	ThicknessMeasure MeasureType = "thickness"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All input formats supported. AutoFormat picks by file extension.
const (
	AutoFormat    InputFormat = "auto" // default
	CSVFormat     InputFormat = "csv"
	JSONFormat    InputFormat = "json"
	ParquetFormat InputFormat = "parquet"
)

// All run-tracking backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All cross-sectional aggregate tables supported.
const (
	ThicknessTable AggregateTable = "thickness" // default
	VolumesTable   AggregateTable = "volumes"
	SummaryTable   AggregateTable = "summary"
)

// ValidMeasureTypes lists all valid measure types.
var ValidMeasureTypes = map[MeasureType]struct{}{
	VolumeMeasure:    {},
	ThicknessMeasure: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidInputFormats lists all valid input formats.
var ValidInputFormats = map[InputFormat]struct{}{
	AutoFormat:    {},
	CSVFormat:     {},
	JSONFormat:    {},
	ParquetFormat: {},
}

// ValidDatabaseBackends lists all valid run-tracking backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidAggregateTables lists all valid aggregate tables.
var ValidAggregateTables = map[AggregateTable]struct{}{
	ThicknessTable: {},
	VolumesTable:   {},
	SummaryTable:   {},
}
