package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcneuro/longstat/internal/contract"
)

func atlasSourceFor(path string) contract.AtlasSource {
	return NewAtlasSource(&contract.Config{InputPath: path})
}

func TestLoadAtlasDocumentsDir(t *testing.T) {
	dir := t.TempDir()

	doc := `{
  "subject_id": "sub-001",
  "desikan_killiany": {"lh_precentral": {"thickness_avg_mm": 2.5, "surface_area_mm2": 4800}},
  "subcortical": {"Left-Hippocampus": {"volume_mm3": 4200}},
  "summary": {"etiv_mm3": 1510000}
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "first.json"), []byte(doc), 0o644))

	// Document without subject_id takes it from the filename.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub-002.json"), []byte(`{"summary":{"etiv_mm3":1480000}}`), 0o644))

	docs, err := atlasSourceFor(dir).LoadAtlasDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "sub-001", docs[0].SubjectID)
	region := docs[0].DesikanKilliany["lh_precentral"]
	require.NotNil(t, region.ThicknessAvgMM)
	assert.Equal(t, 2.5, *region.ThicknessAvgMM)
	assert.Equal(t, 4200.0, *docs[0].Subcortical["Left-Hippocampus"].VolumeMM3)

	assert.Equal(t, "sub-002", docs[1].SubjectID, "subject derived from filename")
}

func TestLoadAtlasDocumentsDirSkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("[not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.json"), []byte(`{"subject_id":"sub-001"}`), 0o644))

	docs, err := atlasSourceFor(dir).LoadAtlasDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "sub-001", docs[0].SubjectID)
}

func TestLoadAtlasDocumentsFile(t *testing.T) {
	path := writeTempFile(t, "atlas.json", `[
  {"subject_id": "sub-001", "summary": {"etiv_mm3": 1510000}},
  {"subject_id": "sub-002", "summary": {"etiv_mm3": 1480000}}
]`)

	docs, err := atlasSourceFor(path).LoadAtlasDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, 1510000.0, docs[0].Summary["etiv_mm3"])
}

func TestLoadAtlasDocumentsFileMalformed(t *testing.T) {
	path := writeTempFile(t, "atlas.json", `{"subject_id": "sub-001"}`)

	_, err := atlasSourceFor(path).LoadAtlasDocuments(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse atlas documents")
}

func TestLoadAtlasDocumentsEmptyDir(t *testing.T) {
	docs, err := atlasSourceFor(t.TempDir()).LoadAtlasDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}
