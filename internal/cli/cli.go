// Package cli implements the archmap command-line interface.
//
// The CLI drives the same generation pipeline as the HTTP server. The main
// commands are:
//   - generate: aggregate metadata and produce PlantUML diagram text
//   - browse: pick a generated diagram interactively and print it
//   - serve: run the HTTP API server
//   - cache: manage the local render cache
//
// All commands read an optional TOML configuration file (--config, or
// archmap.toml in the working directory); flags override file values. The
// --verbose (-v) flag switches logging to debug level.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/archmap/archmap/pkg/buildinfo"
	"github.com/archmap/archmap/pkg/cache"
	"github.com/archmap/archmap/pkg/config"
	"github.com/archmap/archmap/pkg/generator"
	"github.com/archmap/archmap/pkg/httputil"
	"github.com/archmap/archmap/pkg/render"
	"github.com/archmap/archmap/pkg/render/graphviz"
	"github.com/archmap/archmap/pkg/render/plantuml"
	"github.com/archmap/archmap/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "archmap"

	// httpCacheTTL bounds how long raw render server responses are reused.
	httpCacheTTL = 24 * time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Archmap generates architecture diagrams from service metadata",
		Long:         `Archmap aggregates project and API metadata from service repositories and generates PlantUML architecture diagrams at module, component, system and service granularity.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig resolves the effective configuration. An explicit path must
// exist; otherwise archmap.toml in the working directory is used when
// present, and the built-in defaults when not.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(config.DefaultPath); err == nil {
		return config.Load(config.DefaultPath)
	}
	return config.Default(), nil
}

// =============================================================================
// Component Factories
// =============================================================================

// newGenerator assembles a generator from the configuration. The renderer
// backend is constructed only when the run will visualize.
func (c *CLI) newGenerator(ctx context.Context, cfg *config.Config, visualize, noCache bool) (*generator.Generator, error) {
	var r render.Renderer
	if visualize {
		var err error
		r, err = newRenderer(cfg, noCache)
		if err != nil {
			return nil, err
		}
	}
	artifacts, err := newArtifactCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	gen := generator.NewGenerator(nil, r, artifacts, c.Logger)
	gen.Keyer = newCacheKeyer(cfg)
	return gen, nil
}

// newRenderer selects the renderer backend from the configuration.
func newRenderer(cfg *config.Config, noCache bool) (render.Renderer, error) {
	switch cfg.Render.Backend {
	case config.BackendGraphviz:
		return graphviz.NewRenderer(), nil
	case config.BackendPlantUML:
		return plantuml.NewClient(plantuml.Options{
			Server: cfg.Render.PlantumlServer,
			Cache:  newResponseCache(cfg, noCache),
		})
	default:
		return nil, fmt.Errorf("unknown render backend: %q", cfg.Render.Backend)
	}
}

// newResponseCache builds the HTTP response cache for the PlantUML client.
// Failures degrade to no caching rather than blocking the run.
func newResponseCache(cfg *config.Config, noCache bool) *httputil.Cache {
	if noCache || !cfg.Cache.Enabled {
		return nil
	}
	dir, err := cacheRoot(cfg)
	if err != nil {
		return nil
	}
	hc, err := httputil.NewCache(filepath.Join(dir, "http"), httpCacheTTL)
	if err != nil {
		return nil
	}
	return hc.Namespace("plantuml:")
}

// newCacheKeyer returns the artifact key scheme, scoped by the configured
// prefix. A nil return selects the default scheme.
func newCacheKeyer(cfg *config.Config) cache.Keyer {
	if cfg.Cache.KeyPrefix == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, cfg.Cache.KeyPrefix+":")
}

// newArtifactCache selects the artifact cache backend from the
// configuration. A missing cache directory degrades to no caching.
func newArtifactCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache || !cfg.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.RedisURL != "" {
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	}
	dir, err := cacheRoot(cfg)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(filepath.Join(dir, "artifacts"))
}

// newStore selects the run archive backend from the configuration.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Store.MongoURI != "" {
		return store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.Database)
	}
	return store.NewMemoryStore(), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheRoot returns the cache directory, honoring the configured override.
func cacheRoot(cfg *config.Config) (string, error) {
	if cfg != nil && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/archmap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
