package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpcneuro/longstat/internal/contract"
	"github.com/hpcneuro/longstat/schema"
)

// DirAtlasSource reads per-subject atlas JSON documents from a directory,
// or a JSON array of documents from a single file.
type DirAtlasSource struct {
	cfg *contract.Config
}

// NewAtlasSource creates an atlas source for the configured input.
func NewAtlasSource(cfg *contract.Config) contract.AtlasSource {
	return &DirAtlasSource{cfg: cfg}
}

// LoadAtlasDocuments reads every atlas document from the input path.
func (s *DirAtlasSource) LoadAtlasDocuments(ctx context.Context) ([]schema.AtlasDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if isDir(s.cfg) {
		return loadAtlasDir(s.cfg.InputPath)
	}
	return loadAtlasFile(s.cfg.InputPath)
}

// loadAtlasDir reads one atlas document per JSON file in the directory.
// A document without a subject_id field takes its subject from the filename.
func loadAtlasDir(dir string) ([]schema.AtlasDocument, error) {
	files, err := listJSONFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list atlas documents in %s: %w", dir, err)
	}
	docs := make([]schema.AtlasDocument, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			contract.LogWarn("Skipping unreadable atlas document", err)
			continue
		}
		var doc schema.AtlasDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			contract.LogWarn("Skipping malformed atlas document", fmt.Errorf("%s: %w", path, err))
			continue
		}
		if doc.SubjectID == "" {
			doc.SubjectID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// loadAtlasFile reads a JSON array of atlas documents from one file.
func loadAtlasFile(path string) ([]schema.AtlasDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var docs []schema.AtlasDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse atlas documents from %s: %w", path, err)
	}
	return docs, nil
}
