// Package pkg provides the core libraries for Archmap architecture diagrams.
//
// # Overview
//
// Archmap turns the metadata that services publish about themselves into
// PlantUML diagrams of the whole landscape. The pkg directory is organized
// into four main areas:
//
//  1. [metadata] - Domain model (projects, APIs, call dependencies)
//  2. [plantuml] - Diagram text assembly at four granularities
//  3. [generator] - Orchestration (load → connect → build → write → render)
//  4. [render] - Image rendering backends (PlantUML server, Graphviz)
//
// # Architecture
//
// The typical data flow through Archmap:
//
//	maven-metadata.json + api-metadata.json
//	         ↓
//	    [source] package (collect metadata from source roots)
//	         ↓
//	    [connector] package (derive cross-service call dependencies)
//	         ↓
//	    [plantuml] package (assemble diagram text per flavor)
//	         ↓
//	    [writer] / [render] / [store] (txt files, image artifacts, run records)
//
// # Quick Start
//
// Generate diagrams and render them to SVG:
//
//	import (
//	    "context"
//	    "github.com/archmap/archmap/pkg/generator"
//	    "github.com/archmap/archmap/pkg/render/plantuml"
//	)
//
//	// 1. Pick a rendering backend
//	renderer, _ := plantuml.NewClient(plantuml.Options{})
//
//	// 2. Create the generator
//	gen := generator.NewGenerator(nil, renderer, nil, nil)
//
//	// 3. Run the pipeline
//	result, _ := gen.Run(context.Background(), generator.Options{
//	    SourceRoots: []string{"./services"},
//	    TargetDir:   "./build/diagrams",
//	    Visualize:   true,
//	})
//
//	// 4. Inspect the outputs
//	fmt.Println(result.Diagrams["services.txt"])
//
// # Main Packages
//
// ## Domain Model
//
// [metadata] - Project and API metadata types, the grouping index that
// organizes units by system and service, and shared name resolution rules
// (split keys, external-service sentinel).
//
// [source] - Metadata collection. FileLoader walks source roots for
// maven-metadata.json and api-metadata.json files; StaticLoader serves
// preloaded units for tests and embedded use.
//
// [connector] - Derives one call-dependency edge per consumed endpoint by
// matching consumers against the providing services of the same collection.
//
// ## Diagram Assembly
//
// [plantuml] - Emits diagram text for the four flavors: per-project module
// diagrams, component diagrams with resolved cross-service calls, the
// system overview, and the service call graph. Pure text assembly with no
// I/O.
//
// ## Orchestration
//
// [generator] - The load → connect → build → write → render pipeline shared
// by the CLI and the HTTP server. Produces a Result with diagram text,
// written file paths, rendered artifacts, and run statistics.
//
// [writer] - Writes diagram text below a target directory, one file per
// output key.
//
// ## Rendering
//
// [render] - The Renderer contract, the caching decorator, and directory
// output. Two backends: [render/plantuml] encodes diagram text for a
// PlantUML server over HTTP, [render/graphviz] renders the package/arrow
// subset locally through Graphviz.
//
// ## Infrastructure
//
// [cache] - Artifact caching with file, Redis, and null backends plus the
// key derivation scheme.
//
// [store] - Generation run records with memory and MongoDB backends.
//
// [config] - TOML configuration file loading and validation.
//
// [httputil] - Shared HTTP client helpers: retrying client with backoff and
// a TTL response cache.
//
// [errors] - Typed errors with codes, HTTP status mapping, and validation
// error collection.
//
// [observability] - Optional hooks for generator, cache, and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/plantuml/...   # Specific package
//	go test -run Example         # Examples only
//
// [metadata]: https://pkg.go.dev/github.com/archmap/archmap/pkg/metadata
// [source]: https://pkg.go.dev/github.com/archmap/archmap/pkg/source
// [connector]: https://pkg.go.dev/github.com/archmap/archmap/pkg/connector
// [plantuml]: https://pkg.go.dev/github.com/archmap/archmap/pkg/plantuml
// [generator]: https://pkg.go.dev/github.com/archmap/archmap/pkg/generator
// [writer]: https://pkg.go.dev/github.com/archmap/archmap/pkg/writer
// [render]: https://pkg.go.dev/github.com/archmap/archmap/pkg/render
// [render/plantuml]: https://pkg.go.dev/github.com/archmap/archmap/pkg/render/plantuml
// [render/graphviz]: https://pkg.go.dev/github.com/archmap/archmap/pkg/render/graphviz
// [cache]: https://pkg.go.dev/github.com/archmap/archmap/pkg/cache
// [store]: https://pkg.go.dev/github.com/archmap/archmap/pkg/store
// [config]: https://pkg.go.dev/github.com/archmap/archmap/pkg/config
// [httputil]: https://pkg.go.dev/github.com/archmap/archmap/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/archmap/archmap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/archmap/archmap/pkg/observability
package pkg
