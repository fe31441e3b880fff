package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Significance label constants.
const (
	StrongValue      = "Strong"      // p-value below the strong cutoff
	SignificantValue = "Significant" // p-value below alpha
	TrendingValue    = "Trending"    // p-value below the trending cutoff
	NoneValue        = "None"        // not significant, or p-value undefined
)

// StrongCutoff is the p-value below which a trend is labeled Strong
// regardless of alpha.
const StrongCutoff = 0.001

// TrendingCutoff is the p-value below which a non-significant trend is
// still labeled Trending.
const TrendingCutoff = 0.1

// Color variables for console output.
var (
	StrongColor      = color.New(color.FgGreen, color.Bold) // strongColor marks the clearest longitudinal signal.
	SignificantColor = color.New(color.FgCyan, color.Bold)  // significantColor marks a trend past alpha.
	TrendingColor    = color.New(color.FgYellow)            // trendingColor marks a near-miss worth a look.
	NoneColor        = color.New(color.FgWhite)             // noneColor marks noise.
)

// GetPlainLabel returns a plain text label indicating how strong the
// statistical evidence for a trend is. This is the core logic used for
// CSV, JSON, and table printing. An undefined p-value maps to None.
func GetPlainLabel(pValue, alpha float64) string {
	switch {
	case pValue < StrongCutoff:
		return StrongValue
	case pValue < alpha:
		return SignificantValue
	case pValue < TrendingCutoff:
		return TrendingValue
	default:
		return NoneValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(pValue, alpha float64) string {
	text := GetPlainLabel(pValue, alpha)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case SignificantValue:
		return SignificantColor.Sprint(text)
	case TrendingValue:
		return TrendingColor.Sprint(text)
	default: // "None"
		return NoneColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".longstat_runs.db"
	}
	return filepath.Join(homeDir, ".longstat_runs.db")
}

// TruncateName truncates a structure or subject name to a maximum width with
// ellipsis suffix. Requires maxWidth > 3 so there is room for the ellipsis.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
