// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteTrends prints trend results using the configured output format.
func (ow *OutWriter) WriteTrends(output *schema.TrendOutput, cfg *contract.Config, duration time.Duration) error {
	return PrintTrendResults(output, cfg, duration)
}

// WriteDeltas prints delta results using the configured output format.
func (ow *OutWriter) WriteDeltas(output *schema.DeltaOutput, cfg *contract.Config, duration time.Duration) error {
	return PrintDeltaResults(output, cfg, duration)
}

// WriteQC prints QC results using the configured output format.
func (ow *OutWriter) WriteQC(output *schema.QCOutput, cfg *contract.Config, duration time.Duration) error {
	return PrintQCResults(output, cfg, duration)
}

// WriteAggregate prints a cross-sectional table using the configured output format.
func (ow *OutWriter) WriteAggregate(output *schema.AggregateOutput, cfg *contract.Config, duration time.Duration) error {
	return PrintAggregateResults(output, cfg, duration)
}

// LogRunHeader prints a concise, 2-line header for each computation phase.
func LogRunHeader(mode string, cfg *contract.Config) {
	inputName := filepath.Base(cfg.InputPath)
	if inputName == "" || inputName == "." {
		inputName = "current"
	}

	if cfg.UseEmojis {
		// Line 1: The input summary (Input and Mode)
		fmt.Printf("🧠 Input: %s (Mode: %s, Format: %s)\n", inputName, mode, cfg.InputFormat)
		// Line 2: The active filters
		fmt.Printf("🔎 Filters: measure=%s subject=%s structure=%s\n",
			orAll(string(cfg.Measure)), orAll(cfg.Subject), orAll(cfg.Structure))
	} else {
		fmt.Printf("Input: %s (Mode: %s, Format: %s)\n", inputName, mode, cfg.InputFormat)
		fmt.Printf("Filters: measure=%s subject=%s structure=%s\n",
			orAll(string(cfg.Measure)), orAll(cfg.Subject), orAll(cfg.Structure))
	}
}

// orAll renders an empty filter as "all".
func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
