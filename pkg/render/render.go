// Package render converts generated diagram text into image artifacts.
//
// # Overview
//
// [Renderer] is the contract shared by the rendering backends:
//
//   - plantuml: remote rendering through a PlantUML server (in [plantuml] subpackage)
//   - graphviz: local in-process rendering via Graphviz (in [graphviz] subpackage)
//
// [Cached] wraps any Renderer with artifact caching keyed by the diagram
// text, and [ToDir] renders a whole diagram set into a directory tree.
//
// # Choosing a backend
//
// The PlantUML backend renders the diagram text exactly as a PlantUML
// server would, including skinparam styling, but needs network access.
// The Graphviz backend understands only the package/arrow subset this
// project emits and renders it locally as plain clusters and edges; it is
// the offline fallback.
//
// [plantuml]: github.com/archmap/archmap/pkg/render/plantuml
// [graphviz]: github.com/archmap/archmap/pkg/render/graphviz
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Renderer converts diagram text into an image artifact.
type Renderer interface {
	// Name identifies the backend, e.g. "plantuml" or "graphviz".
	Name() string

	// Format reports the artifact format produced, e.g. "svg".
	Format() string

	// Render converts one diagram text into an artifact.
	Render(ctx context.Context, text string) ([]byte, error)
}

// ToDir renders every diagram in the map and writes the artifacts below
// dir, one file per diagram under a subdirectory named after the format.
// The artifact file name is the output key with its extension replaced by
// the renderer's format. Keys are processed in sorted order so repeated
// runs write files in the same sequence.
func ToDir(ctx context.Context, r Renderer, diagrams map[string]string, dir string) ([]string, error) {
	target := filepath.Join(dir, r.Format())
	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", target, err)
	}

	var keys []string
	for key := range diagrams {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var files []string
	for _, key := range keys {
		data, err := r.Render(ctx, diagrams[key])
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", key, err)
		}
		base, _, _ := strings.Cut(key, ".")
		path := filepath.Join(target, base+"."+r.Format())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		files = append(files, path)
	}
	return files, nil
}
