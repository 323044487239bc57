package cli

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/archmap/archmap/internal/server"
	"github.com/archmap/archmap/pkg/config"
	"github.com/archmap/archmap/pkg/generator"
	"github.com/archmap/archmap/pkg/render"
)

// shutdownTimeout bounds how long in-flight requests may finish on exit.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server exposes the generation pipeline over HTTP: POST /api/runs
triggers a run over the configured source roots and archives the result,
GET endpoints list runs and return diagram text, and the /svg endpoint
renders single diagrams on demand. Runs are archived in MongoDB when
store.mongo_uri is configured, otherwise in process memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default archmap.toml if present)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")

	return cmd
}

// runServe wires the server from the configuration and blocks until the
// context is cancelled or the listener fails.
func (c *CLI) runServe(ctx context.Context, cfg *config.Config) error {
	// Server runs keep diagram text in memory; rendering happens per
	// diagram on demand, so the generator itself needs no renderer.
	gen := generator.NewGenerator(nil, nil, nil, c.Logger)

	backend, err := newRenderer(cfg, false)
	if err != nil {
		return err
	}
	artifacts, err := newArtifactCache(ctx, cfg, false)
	if err != nil {
		return err
	}

	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	srv := server.New(server.Options{
		Addr:      cfg.Server.Addr,
		Generator: gen,
		Store:     st,
		Renderer:  render.NewCached(backend, artifacts, newCacheKeyer(cfg)),
		Roots:     cfg.Sources.Roots,
		Logger:    c.Logger,
	})

	printKeyValue("address", cfg.Server.Addr)
	printKeyValue("renderer", backend.Name())
	printKeyValue("store", storeKind(cfg))
	printKeyValue("cache", cacheKind(cfg))
	printInfo("Serving at %s", StyleLink.Render(listenURL(cfg.Server.Addr)))

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// listenURL turns a listen address into something clickable.
func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// storeKind names the archive backend selected by the configuration.
func storeKind(cfg *config.Config) string {
	if cfg.Store.MongoURI != "" {
		return "mongodb"
	}
	return "memory"
}

// cacheKind names the cache backend selected by the configuration.
func cacheKind(cfg *config.Config) string {
	switch {
	case !cfg.Cache.Enabled:
		return "disabled"
	case cfg.Cache.RedisURL != "":
		return "redis"
	default:
		return "file"
	}
}
