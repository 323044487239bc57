package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/archmap/archmap/pkg/metadata"
)

// FileLoader walks source roots and loads every metadata file matching the
// fixed names. Files are visited in lexical walk order, so repeated runs
// over the same tree yield identically ordered collections.
type FileLoader struct {
	roots []string
}

// NewFileLoader creates a loader over the given source roots. Each root
// must exist when a Load method runs; a missing root is an error, not an
// empty result.
func NewFileLoader(roots ...string) *FileLoader {
	return &FileLoader{roots: roots}
}

// Roots returns the configured source roots.
func (l *FileLoader) Roots() []string { return l.roots }

// LoadProjects walks all roots and parses every build metadata file.
func (l *FileLoader) LoadProjects(ctx context.Context) ([]metadata.Project, error) {
	var projects []metadata.Project
	err := l.walkMatching(ctx, ProjectFile, func(path string) error {
		p, err := ReadProjectFile(path)
		if err != nil {
			return err
		}
		projects = append(projects, p)
		return nil
	})
	return projects, err
}

// LoadAPIs walks all roots and parses every API metadata file.
func (l *FileLoader) LoadAPIs(ctx context.Context) ([]metadata.API, error) {
	var apis []metadata.API
	err := l.walkMatching(ctx, APIFile, func(path string) error {
		a, err := ReadAPIFile(path)
		if err != nil {
			return err
		}
		apis = append(apis, a)
		return nil
	})
	return apis, err
}

// walkMatching visits every file named name below every root.
func (l *FileLoader) walkMatching(ctx context.Context, name string, visit func(path string) error) error {
	for _, root := range l.roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if d.IsDir() || d.Name() != name {
				return nil
			}
			return visit(path)
		})
		if err != nil {
			return fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return nil
}

// ReadProject decodes one build metadata unit from r.
func ReadProject(r io.Reader) (metadata.Project, error) {
	var p metadata.Project
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return metadata.Project{}, fmt.Errorf("decode: %w", err)
	}
	return p, nil
}

// ReadProjectFile reads the build metadata file at path.
// Errors wrap the underlying cause with the file path for context.
func ReadProjectFile(path string) (metadata.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return metadata.Project{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	p, err := ReadProject(f)
	if err != nil {
		return metadata.Project{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ReadAPI decodes one API metadata unit from r.
func ReadAPI(r io.Reader) (metadata.API, error) {
	var a metadata.API
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return metadata.API{}, fmt.Errorf("decode: %w", err)
	}
	return a, nil
}

// ReadAPIFile reads the API metadata file at path.
// Errors wrap the underlying cause with the file path for context.
func ReadAPIFile(path string) (metadata.API, error) {
	f, err := os.Open(path)
	if err != nil {
		return metadata.API{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	a, err := ReadAPI(f)
	if err != nil {
		return metadata.API{}, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Ensure FileLoader implements Loader.
var _ Loader = (*FileLoader)(nil)
