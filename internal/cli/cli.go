// Package cli implements the labelsheet command-line interface.
//
// The CLI reads specimen records from a JSON, TOML or CSV file (or a MongoDB
// catalog), lays them out as printable label sheets and writes PDF, PNG and
// JSON artifacts. It is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - build: Lay out records and write label sheets
//   - config: Print the effective configuration as TOML
//   - ids: Generate fresh six-digit identifiers
//   - cache: Manage the raster and artifact cache
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports cache and catalog events.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labelsheet/pkg/buildinfo"
	"github.com/matzehuels/labelsheet/pkg/cache"
	"github.com/matzehuels/labelsheet/pkg/observability"
	"github.com/matzehuels/labelsheet/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = buildinfo.Name

	// defaultOutput is the base name of written artifacts.
	defaultOutput = "labels"
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
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheOpts selects the cache backend of a runner.
type cacheOpts struct {
	disabled bool   // no caching at all
	redisURL string // shared redis cache instead of the local file cache
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, opts cacheOpts) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, opts)
	if err != nil {
		return nil, err
	}
	if c.Logger.GetLevel() <= log.DebugLevel {
		hooks := logHooks{logger: c.Logger}
		observability.SetCacheHooks(hooks)
		observability.SetStoreHooks(hooks)
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, opts cacheOpts) (cache.Cache, error) {
	if opts.disabled {
		return cache.NewNullCache(), nil
	}
	if opts.redisURL != "" {
		return cache.NewRedisCache(ctx, opts.redisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/labelsheet/).
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
