// Package registry discovers corpus documents in the playground data dir.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"playd/internal/common/fsutil"
	"playd/pkg/types"
)

// LoadDir scans a directory for *.txt and *.md corpus documents and builds a
// registry from filenames. ID is the full filename (including extension);
// Path is the absolute file path.
func LoadDir(dir string) ([]types.Document, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var docs []types.Document
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".txt" && ext != ".md" {
			continue
		}
		var size int64
		if info, err := e.Info(); err == nil {
			size = info.Size()
		}
		docs = append(docs, types.Document{
			ID:        name,
			Path:      filepath.Join(abs, name),
			Source:    "local",
			SizeBytes: size,
		})
	}
	return docs, nil
}
