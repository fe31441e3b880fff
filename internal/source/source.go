// Package source has record loaders for the supported input formats.
package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hpcneuro/longstat/internal/contract"
)

// listJSONFiles returns the sorted .json files directly under dir.
func listJSONFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// isDir reports whether the configured input path is a directory.
func isDir(cfg *contract.Config) bool {
	info, err := os.Stat(cfg.InputPath)
	return err == nil && info.IsDir()
}
