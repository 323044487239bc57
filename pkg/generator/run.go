package generator

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/archmap/archmap/pkg/cache"
	"github.com/archmap/archmap/pkg/connector"
	"github.com/archmap/archmap/pkg/metadata"
	"github.com/archmap/archmap/pkg/observability"
	"github.com/archmap/archmap/pkg/plantuml"
	"github.com/archmap/archmap/pkg/render"
	"github.com/archmap/archmap/pkg/source"
	"github.com/archmap/archmap/pkg/writer"
)

// Connector derives cross-service call dependencies from API metadata.
type Connector interface {
	Connect(ctx context.Context, apis []metadata.API) ([]metadata.CallDependency, error)
}

// Writer persists one diagram text and reports the paths it wrote.
type Writer interface {
	Write(content, name, ext, dir string) ([]string, error)
}

// Generator runs the aggregation pipeline. All collaborators are optional:
// a nil Source is replaced per run by a file loader over the option roots,
// a nil Connector by the default service connector, a nil Writer by a plain
// file writer, a nil Cache disables artifact caching, and a nil Keyer
// selects the default artifact key scheme. Only Renderer has no default; it
// is required when the visualize option is set.
//
// The Generator is stateless except for its collaborators - it doesn't
// store run results. Multiple goroutines can safely use the same Generator
// with different options.
type Generator struct {
	Source    source.Loader
	Connector Connector
	Writer    Writer
	Renderer  render.Renderer
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger
}

// NewGenerator creates a generator with the given source and renderer.
// If cache is nil, a NullCache is used (artifact caching disabled).
// If logger is nil, the default logger is used.
func NewGenerator(src source.Loader, r render.Renderer, c cache.Cache, logger *log.Logger) *Generator {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{
		Source:   src,
		Renderer: r,
		Cache:    c,
		Logger:   logger,
	}
}

// Run executes the load → connect → build pipeline, then writes files and
// renders artifacts as the options request.
func (g *Generator) Run(ctx context.Context, opts Options) (*Result, error) {
	g.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if opts.Visualize && g.Renderer == nil {
		return nil, fmt.Errorf("invalid options: visualize requires a renderer")
	}

	src := g.Source
	if src == nil {
		if len(opts.SourceRoots) == 0 {
			return nil, fmt.Errorf("invalid options: source roots are required")
		}
		src = source.NewFileLoader(opts.SourceRoots...)
	}

	result := &Result{
		Diagrams: make(map[string]string),
	}
	hooks := observability.Generator()

	// Stage 1: load metadata
	loadStart := time.Now()
	hooks.OnLoadStart(ctx, opts.SourceRoots)
	projects, err := src.LoadProjects(ctx)
	if err != nil {
		hooks.OnLoadComplete(ctx, 0, 0, time.Since(loadStart), err)
		return nil, fmt.Errorf("load projects: %w", err)
	}
	apis, err := src.LoadAPIs(ctx)
	if err != nil {
		hooks.OnLoadComplete(ctx, len(projects), 0, time.Since(loadStart), err)
		return nil, fmt.Errorf("load apis: %w", err)
	}
	result.Stats.Projects = len(projects)
	result.Stats.APIs = len(apis)
	result.Stats.LoadTime = time.Since(loadStart)
	hooks.OnLoadComplete(ctx, len(projects), len(apis), result.Stats.LoadTime, nil)

	opts.Logger.Info("loaded metadata",
		"projects", len(projects),
		"apis", len(apis),
		"duration", result.Stats.LoadTime)

	// Stage 2: derive service connections
	var deps []metadata.CallDependency
	if len(apis) > 0 {
		conn := g.Connector
		if conn == nil {
			conn = connector.NewServiceConnector(connector.Options{
				ExternalService: opts.ExternalService,
				Logger:          opts.Logger,
			})
		}
		deps, err = conn.Connect(ctx, apis)
		if err != nil {
			return nil, fmt.Errorf("connect services: %w", err)
		}
	}
	result.Stats.CallDependencies = len(deps)
	if len(deps) == 0 {
		opts.Logger.Info("no dependencies between services found")
	}

	// Stage 3: build diagram text, one pass per flavor
	buildStart := time.Now()
	popts := plantuml.Options{
		ExternalService: opts.ExternalService,
		Logger:          opts.Logger,
	}
	build := func(diagramType string, fn func() map[string]string) {
		start := time.Now()
		hooks.OnBuildStart(ctx, diagramType, len(projects))
		opts.Logger.Debug("creating diagrams", "type", diagramType)
		built := fn()
		hooks.OnBuildComplete(ctx, diagramType, len(built), time.Since(start), nil)
		maps.Copy(result.Diagrams, built)
	}
	build(plantuml.TypeModules, func() map[string]string {
		return plantuml.BuildModules(projects, popts)
	})
	build(plantuml.TypeComponents, func() map[string]string {
		return plantuml.BuildComponents(projects, deps, popts)
	})
	build(plantuml.TypeSystems, func() map[string]string {
		return plantuml.BuildSystems(projects)
	})
	build(plantuml.TypeServices, func() map[string]string {
		return plantuml.BuildServices(projects, deps, popts)
	})
	result.Stats.Diagrams = len(result.Diagrams)
	result.Stats.BuildTime = time.Since(buildStart)

	opts.Logger.Info("built diagrams",
		"count", len(result.Diagrams),
		"duration", result.Stats.BuildTime)

	var keys []string
	for key := range result.Diagrams {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	// Stage 4: write diagram text files
	if opts.TargetDir != "" {
		w := g.Writer
		if w == nil {
			w = writer.NewFileWriter()
		}
		writeStart := time.Now()
		for _, key := range keys {
			name, ext := plantuml.SplitKey(key)
			files, err := w.Write(result.Diagrams[key], name, ext, opts.TargetDir)
			if err != nil {
				return nil, fmt.Errorf("write %s: %w", key, err)
			}
			result.Files = append(result.Files, files...)
		}
		result.Stats.WriteTime = time.Since(writeStart)

		opts.Logger.Info("wrote diagram files",
			"count", len(result.Files),
			"dir", opts.TargetDir,
			"duration", result.Stats.WriteTime)
	}

	// Stage 5: render artifacts
	if opts.Visualize {
		cached := render.NewCached(g.Renderer, g.Cache, g.Keyer)
		cached.Refresh = opts.Refresh

		renderStart := time.Now()
		hooks.OnRenderStart(ctx, keys)
		if opts.TargetDir != "" {
			files, err := render.ToDir(ctx, cached, result.Diagrams, opts.TargetDir)
			if err != nil {
				hooks.OnRenderComplete(ctx, keys, time.Since(renderStart), err)
				return nil, fmt.Errorf("render: %w", err)
			}
			result.Files = append(result.Files, files...)
		} else {
			result.Artifacts = make(map[string][]byte, len(result.Diagrams))
			for _, key := range keys {
				data, err := cached.Render(ctx, result.Diagrams[key])
				if err != nil {
					hooks.OnRenderComplete(ctx, keys, time.Since(renderStart), err)
					return nil, fmt.Errorf("render %s: %w", key, err)
				}
				name, _ := plantuml.SplitKey(key)
				result.Artifacts[name+"."+cached.Format()] = data
			}
		}
		result.Stats.RenderTime = time.Since(renderStart)
		hooks.OnRenderComplete(ctx, keys, result.Stats.RenderTime, nil)

		opts.Logger.Info("rendered diagrams",
			"backend", cached.Name(),
			"format", cached.Format(),
			"duration", result.Stats.RenderTime)
	}

	return result, nil
}

// applyLogger fills the option logger from the generator when unset.
func (g *Generator) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = g.Logger
	}
}
