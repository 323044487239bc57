// Package generator orchestrates metadata aggregation into diagram text.
//
// This package implements the complete load → connect → build pipeline that
// both the CLI and the HTTP server drive. Centralizing it keeps the two entry
// points byte-compatible: the same inputs produce the same diagram text
// whether results are written to disk or kept in memory.
//
// # Architecture
//
// A run consists of up to five stages:
//
//  1. Load: collect project and API metadata from the configured sources
//  2. Connect: derive cross-service call dependencies from the API metadata
//  3. Build: generate the four diagram flavors and merge them into one set
//  4. Write: persist diagram text below the target directory (file mode)
//  5. Render: produce image artifacts through the configured renderer
//
// Write runs only when a target directory is set, render only when the
// visualize option is set. The first three stages always run and always
// produce the same diagram text for the same inputs.
//
// # Usage
//
// Create a Generator and run it:
//
//	gen := generator.NewGenerator(nil, renderer, nil, logger)
//	opts := generator.Options{
//	    SourceRoots: []string{"./services"},
//	    TargetDir:   "./build/diagrams",
//	    Visualize:   true,
//	}
//	result, err := gen.Run(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range result.Files {
//	    fmt.Println(f)
//	}
//
// Keep everything in memory instead:
//
//	result, err := gen.Run(ctx, generator.Options{SourceRoots: roots})
//	text := result.Diagrams["services.txt"]
package generator

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/archmap/archmap/pkg/metadata"
)

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options contains all configuration for one generation run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// SourceRoots are the directories scanned recursively for metadata
	// files. Used when the generator has no explicit source loader.
	SourceRoots []string `json:"source_roots,omitempty"`

	// TargetDir is the directory output files are written beneath, diagram
	// text under txt/ and rendered artifacts under a per-format
	// subdirectory. Empty keeps all results in memory.
	TargetDir string `json:"target_dir,omitempty"`

	// Visualize renders an image artifact for every generated diagram.
	Visualize bool `json:"visualize,omitempty"`

	// ExternalService overrides the display name for call targets outside
	// the analyzed system. Empty selects [metadata.DefaultExternalService].
	ExternalService string `json:"external_service,omitempty"`

	// Refresh bypasses cached artifacts so every diagram is rendered anew.
	// Fresh artifacts still land in the cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks option consistency and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.ExternalService == "" {
		o.ExternalService = metadata.DefaultExternalService
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result and Stats
// =============================================================================

// Result contains the outputs of a generation run.
type Result struct {
	// Diagrams is the generated diagram text keyed by output key,
	// for example "services.txt" or "inv_plantUML_modules.txt".
	Diagrams map[string]string

	// Files lists the paths written below the target directory, diagram
	// text first, then any rendered artifacts. Empty in in-memory mode.
	Files []string

	// Artifacts holds rendered images keyed by artifact file name, for
	// example "services.svg". Populated only in in-memory mode when
	// visualize is set.
	Artifacts map[string][]byte

	// Stats contains counts and stage timings.
	Stats Stats
}

// Stats contains generation run statistics.
type Stats struct {
	Projects         int           `json:"projects" bson:"projects"`
	APIs             int           `json:"apis" bson:"apis"`
	CallDependencies int           `json:"call_dependencies" bson:"call_dependencies"`
	Diagrams         int           `json:"diagrams" bson:"diagrams"`
	LoadTime         time.Duration `json:"load_time" bson:"load_time"`
	BuildTime        time.Duration `json:"build_time" bson:"build_time"`
	WriteTime        time.Duration `json:"write_time,omitempty" bson:"write_time,omitempty"`
	RenderTime       time.Duration `json:"render_time,omitempty" bson:"render_time,omitempty"`
}
