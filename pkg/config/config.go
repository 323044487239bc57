// Package config loads TOML configuration for the CLI and server.
//
// Configuration is optional: [Default] returns a complete working setup and
// [Load] layers file values over it, so a config file only needs the keys it
// changes. CLI flags override file values in turn.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	apperrors "github.com/archmap/archmap/pkg/errors"
	"github.com/archmap/archmap/pkg/metadata"
	"github.com/archmap/archmap/pkg/render/plantuml"
)

// DefaultPath is the config file looked up in the working directory when no
// explicit path is given.
const DefaultPath = "archmap.toml"

// Renderer backend names accepted in the render section.
const (
	BackendPlantUML = "plantuml"
	BackendGraphviz = "graphviz"
)

// ValidBackends is the set of supported renderer backends.
var ValidBackends = map[string]bool{
	BackendPlantUML: true,
	BackendGraphviz: true,
}

// Config is the root configuration.
type Config struct {
	Sources SourcesConfig `toml:"sources"`
	Output  OutputConfig  `toml:"output"`
	Diagram DiagramConfig `toml:"diagram"`
	Render  RenderConfig  `toml:"render"`
	Cache   CacheConfig   `toml:"cache"`
	Store   StoreConfig   `toml:"store"`
	Server  ServerConfig  `toml:"server"`
}

// SourcesConfig locates the metadata to aggregate.
type SourcesConfig struct {
	// Roots are the directories scanned recursively for metadata files.
	Roots []string `toml:"roots"`
}

// OutputConfig controls where results go.
type OutputConfig struct {
	// TargetDir is where generated files are written. Empty keeps results
	// in memory, which only makes sense for the server.
	TargetDir string `toml:"target_dir"`

	// Visualize renders an image artifact for every diagram.
	Visualize bool `toml:"visualize"`
}

// DiagramConfig tunes diagram content.
type DiagramConfig struct {
	// ExternalService is the display name for call targets outside the
	// analyzed system.
	ExternalService string `toml:"external_service"`
}

// RenderConfig selects and configures the renderer backend.
type RenderConfig struct {
	// Backend is "plantuml" (remote server) or "graphviz" (local).
	Backend string `toml:"backend"`

	// PlantumlServer is the base URL of the PlantUML server.
	PlantumlServer string `toml:"plantuml_server"`
}

// CacheConfig configures response and artifact caching.
type CacheConfig struct {
	// Enabled toggles caching entirely.
	Enabled bool `toml:"enabled"`

	// Dir overrides the on-disk cache location. Empty selects the user
	// cache directory.
	Dir string `toml:"dir"`

	// RedisURL switches artifact caching to Redis when set, for server
	// deployments with more than one instance.
	RedisURL string `toml:"redis_url"`

	// KeyPrefix scopes artifact cache keys, isolating deployments that
	// share one Redis instance.
	KeyPrefix string `toml:"key_prefix"`
}

// StoreConfig configures the server's run archive.
type StoreConfig struct {
	// MongoURI switches the archive to MongoDB when set. Empty keeps runs
	// in process memory.
	MongoURI string `toml:"mongo_uri"`

	// Database is the MongoDB database name.
	Database string `toml:"database"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Diagram: DiagramConfig{
			ExternalService: metadata.DefaultExternalService,
		},
		Render: RenderConfig{
			Backend:        BackendPlantUML,
			PlantumlServer: plantuml.DefaultServer,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Store: StoreConfig{
			Database: "archmap",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads a TOML file and layers it over the defaults. Keys absent from
// the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value constraints the TOML syntax cannot express.
func (c *Config) Validate() error {
	if !ValidBackends[c.Render.Backend] {
		return fmt.Errorf("invalid render backend: %q (must be one of: plantuml, graphviz)", c.Render.Backend)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr must not be empty")
	}
	if c.Diagram.ExternalService != "" {
		if err := apperrors.ValidateServiceName(c.Diagram.ExternalService); err != nil {
			return fmt.Errorf("diagram external_service: %w", err)
		}
	}
	return nil
}
