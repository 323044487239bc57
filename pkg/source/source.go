// Package source discovers and loads collected metadata from the
// filesystem.
//
// Analysis collectors leave two kinds of JSON files behind: build metadata
// describing one analyzed unit ([ProjectFile]) and API metadata describing
// one service's HTTP surface ([APIFile]). A [Loader] gathers those files
// into the typed collections consumed by the diagram builders. [FileLoader]
// walks one or more source roots on disk; [StaticLoader] serves fixed
// in-memory collections for tests and embedding.
package source

import (
	"context"

	"github.com/archmap/archmap/pkg/metadata"
)

// File names the collectors emit. Discovery matches on the base name, so
// metadata files may sit anywhere below a source root.
const (
	// ProjectFile is the fixed name of a build metadata file.
	ProjectFile = "maven-metadata.json"

	// APIFile is the fixed name of an API metadata file.
	APIFile = "api-metadata.json"
)

// Loader supplies collected metadata to the diagram generator.
type Loader interface {
	// LoadProjects returns all build metadata units found by the loader.
	// An empty slice is a valid result meaning nothing was collected.
	LoadProjects(ctx context.Context) ([]metadata.Project, error)

	// LoadAPIs returns all API metadata units found by the loader.
	// An empty slice is a valid result meaning nothing was collected.
	LoadAPIs(ctx context.Context) ([]metadata.API, error)
}

// StaticLoader serves fixed collections. It backs tests and callers that
// already hold parsed metadata, such as the HTTP server replaying a stored
// run.
type StaticLoader struct {
	Projects []metadata.Project
	APIs     []metadata.API
}

// LoadProjects returns the configured projects.
func (l *StaticLoader) LoadProjects(ctx context.Context) ([]metadata.Project, error) {
	return l.Projects, nil
}

// LoadAPIs returns the configured APIs.
func (l *StaticLoader) LoadAPIs(ctx context.Context) ([]metadata.API, error) {
	return l.APIs, nil
}

// Ensure StaticLoader implements Loader.
var _ Loader = (*StaticLoader)(nil)
