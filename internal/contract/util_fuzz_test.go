package contract

import (
	"testing"
)

// FuzzParseBoolString fuzzes the boolean flag parser with arbitrary strings.
func FuzzParseBoolString(f *testing.F) {
	seeds := []string{"yes", "no", "TRUE", "0", "", "maybe", "y e s"}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, s string) {
		_, _ = ParseBoolString(s)
	})
}

// FuzzTruncateName fuzzes name truncation with random names and widths.
func FuzzTruncateName(f *testing.F) {
	seeds := []struct {
		name  string
		width int
	}{
		{"Left-Hippocampus", 10},
		{"ctx-lh-rostralanteriorcingulate", 20},
		{"", 0},
		{"日本語のテスト", 5},
		{"x", -1},
	}
	for _, seed := range seeds {
		f.Add(seed.name, seed.width)
	}

	f.Fuzz(func(t *testing.T, name string, width int) {
		out := TruncateName(name, width)
		if width > 3 && len([]rune(out)) > width {
			t.Errorf("TruncateName(%q, %d) = %q exceeds width", name, width, out)
		}
	})
}
