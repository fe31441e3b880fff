// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/hpcneuro/longstat/internal/contract"
)

// GetMaxStructureWidth calculates the maximum width for structure names in
// table output based on terminal width.
func GetMaxStructureWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns: subject, measure, the numeric
	// statistics, and the significance label, plus borders and padding.
	baseWidth := 72

	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable structure width
		return 12
	}
	if available > 40 {
		// Maximum structure width to keep tables compact
		return 40
	}
	return available
}
