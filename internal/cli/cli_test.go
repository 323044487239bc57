package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/archmap/archmap/pkg/cache"
	"github.com/archmap/archmap/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	want := filepath.Join("/tmp/custom-cache", appName)
	if dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestCacheRootConfigOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = "/var/cache/archmap"

	dir, err := cacheRoot(cfg)
	if err != nil {
		t.Fatalf("cacheRoot() error: %v", err)
	}
	if dir != "/var/cache/archmap" {
		t.Errorf("cacheRoot() = %q, want configured dir", dir)
	}
}

func TestNewArtifactCacheDisabled(t *testing.T) {
	cfg := config.Default()

	c, err := newArtifactCache(context.Background(), cfg, true)
	if err != nil {
		t.Fatalf("newArtifactCache(noCache) error: %v", err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("newArtifactCache(noCache) = %T, want *cache.NullCache", c)
	}

	cfg.Cache.Enabled = false
	c, err = newArtifactCache(context.Background(), cfg, false)
	if err != nil {
		t.Fatalf("newArtifactCache(disabled) error: %v", err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("newArtifactCache(disabled) = %T, want *cache.NullCache", c)
	}
}

func TestNewArtifactCacheFile(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()

	c, err := newArtifactCache(context.Background(), cfg, false)
	if err != nil {
		t.Fatalf("newArtifactCache() error: %v", err)
	}
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("newArtifactCache() = %T, want *cache.FileCache", c)
	}
}

func TestNewCacheKeyer(t *testing.T) {
	cfg := config.Default()
	if k := newCacheKeyer(cfg); k != nil {
		t.Errorf("newCacheKeyer without prefix = %T, want nil", k)
	}

	cfg.Cache.KeyPrefix = "staging"
	k := newCacheKeyer(cfg)
	if k == nil {
		t.Fatal("newCacheKeyer with prefix returned nil")
	}
	key := k.ArtifactKey("hash123", cache.ArtifactKeyOpts{Format: "svg"})
	if len(key) < 8 || key[:8] != "staging:" {
		t.Errorf("scoped key = %q, want staging: prefix", key)
	}
}

func TestNewRendererBackends(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Enabled = false

	r, err := newRenderer(cfg, false)
	if err != nil {
		t.Fatalf("newRenderer(plantuml) error: %v", err)
	}
	if r.Name() != "plantuml" {
		t.Errorf("Name() = %q, want %q", r.Name(), "plantuml")
	}

	cfg.Render.Backend = config.BackendGraphviz
	r, err = newRenderer(cfg, false)
	if err != nil {
		t.Fatalf("newRenderer(graphviz) error: %v", err)
	}
	if r.Name() != "graphviz" {
		t.Errorf("Name() = %q, want %q", r.Name(), "graphviz")
	}

	cfg.Render.Backend = "imagemagick"
	if _, err := newRenderer(cfg, false); err == nil {
		t.Error("newRenderer with unknown backend expected error")
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("loadConfig with missing explicit path expected error")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Render.Backend != config.BackendPlantUML {
		t.Errorf("Backend = %q, want %q", cfg.Render.Backend, config.BackendPlantUML)
	}
}

func TestLoadConfigWorkingDirFile(t *testing.T) {
	dir := t.TempDir()
	content := "[render]\nbackend = \"graphviz\"\n"
	if err := os.WriteFile(filepath.Join(dir, config.DefaultPath), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Render.Backend != config.BackendGraphviz {
		t.Errorf("Backend = %q, want %q", cfg.Render.Backend, config.BackendGraphviz)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"generate", "browse", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}
