package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/schema"
)

func qcSourceFor(path string) contract.QCSource {
	return NewQCSource(&contract.Config{InputPath: path})
}

func TestLoadQCRecordsDir(t *testing.T) {
	dir := t.TempDir()

	withMeta := `{
  "bids_meta": {"subject_id": "sub-001", "session_id": "ses-01"},
  "cnr": 3.2, "snr_total": 14.1, "efc": 0.45
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(withMeta), 0o644))

	// No bids_meta: subject and session come from the filename.
	noMeta := `{"cnr": 1.5}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub-002_ses-03_T1w.json"), []byte(noMeta), 0o644))

	// Non-JSON entries are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	records, err := qcSourceFor(dir).LoadQCRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Files load in sorted order.
	assert.Equal(t, "sub-001", records[0].SubjectID)
	assert.Equal(t, "ses-01", records[0].Session)
	require.NotNil(t, records[0].CNR)
	assert.Equal(t, 3.2, *records[0].CNR)
	assert.Nil(t, records[0].QI2, "absent metrics stay nil")

	assert.Equal(t, "sub-002", records[1].SubjectID)
	assert.Equal(t, "ses-03", records[1].Session, "session parsed from BIDS filename")
}

func TestLoadQCRecordsDirSkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{truncated"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.json"), []byte(`{"bids_meta":{"subject_id":"sub-001"},"cnr":2.9}`), 0o644))

	records, err := qcSourceFor(dir).LoadQCRecords(context.Background())
	require.NoError(t, err, "one bad document does not sink the cohort")
	require.Len(t, records, 1)
	assert.Equal(t, "sub-001", records[0].SubjectID)
}

func TestLoadQCRecordsFile(t *testing.T) {
	path := writeTempFile(t, "qc.json", `[
  {"subject_id": "sub-001", "session": "ses-01", "cnr": 3.0},
  {"subject_id": "sub-002", "session": "ses-01", "efc": 0.8}
]`)

	records, err := qcSourceFor(path).LoadQCRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 3.0, *records[0].CNR)
	assert.Equal(t, 0.8, *records[1].EFC)
}

func TestLoadQCRecordsFileMalformed(t *testing.T) {
	path := writeTempFile(t, "qc.json", `{"subject_id": "sub-001"}`)

	_, err := qcSourceFor(path).LoadQCRecords(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse QC records")
}

func TestSubjectFromFilename(t *testing.T) {
	tests := []struct {
		path        string
		wantSubject string
		wantSession string
	}{
		{"/data/sub-001_ses-02_T1w.json", "sub-001", "ses-02"},
		{"/data/sub-001_T1w.json", "sub-001", ""},
		{"/data/sub-001.json", "sub-001", ""},
		{"/data/subject42_ses-01.json", "subject42", "ses-01"},
	}
	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			subject, session := subjectFromFilename(tt.path)
			assert.Equal(t, tt.wantSubject, subject)
			assert.Equal(t, tt.wantSession, session)
		})
	}
}

func TestLoadQCRecordsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewQCSource(&contract.Config{InputPath: t.TempDir(), InputFormat: schema.JSONFormat}).LoadQCRecords(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
