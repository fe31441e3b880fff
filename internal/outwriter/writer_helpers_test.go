package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/schema"
)

func TestCreateFormatters(t *testing.T) {
	fmtFloat, fmtOpt := createFormatters(2)

	assert.Equal(t, "3.14", fmtFloat(3.14159))
	assert.Equal(t, "", fmtFloat(math.NaN()), "undefined statistics render as empty cells")
	assert.Equal(t, "", fmtFloat(math.Inf(1)))

	assert.Equal(t, "2.50", fmtOpt(schema.Float64Ptr(2.5)))
	assert.Equal(t, "", fmtOpt(nil))
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "2"})
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a,b", lines[0])
	assert.Equal(t, "1,2", lines[1])
}

func TestWriteWithFileToDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := writeWithFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("hello\n"))
		return err
	}, "Wrote text")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestRequireOutputFile(t *testing.T) {
	cfg := &contract.Config{}
	err := requireOutputFile(cfg, "parquet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parquet output requires --output-file")

	cfg.OutputFile = "out.parquet"
	assert.NoError(t, requireOutputFile(cfg, "parquet"))
}

func TestGetMaxStructureWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"narrow terminal clamps to minimum", 80, 12},
		{"wide terminal clamps to maximum", 200, 40},
		{"mid-range width passes through", 100, 28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.want, GetMaxStructureWidth(cfg))
		})
	}
}
