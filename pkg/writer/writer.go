// Package writer persists generated diagram text under a target directory.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter writes diagram text below a target directory. Text files are
// kept in a txt/ subdirectory so rendered artifacts can sit alongside them
// without mixing.
type FileWriter struct{}

// NewFileWriter creates a file writer.
func NewFileWriter() *FileWriter {
	return &FileWriter{}
}

// Write stores content as <dir>/txt/<name>.<ext> and returns the paths it
// wrote. An empty ext writes <name> without a trailing dot. Missing
// directories are created.
func (w *FileWriter) Write(content, name, ext, dir string) ([]string, error) {
	target := filepath.Join(dir, "txt")
	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", target, err)
	}

	filename := name
	if ext != "" {
		filename = name + "." + ext
	}
	path := filepath.Join(target, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return []string{path}, nil
}
