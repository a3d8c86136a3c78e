// Package cli implements the kaoto command-line interface.
//
// # Commands
//
//   - graph: build the visualization tree of a route definition
//   - render: export a route graph as DOT, SVG, PNG, PDF or JSON
//   - links: fold the correlations of a data mapping onto its documents
//   - browse: explore a mapping interactively, collapsing containers
//   - new: print the default definition of a step kind
//   - serve: expose graph and link extraction over HTTP with metrics
//   - cache: inspect and clear the artifact cache
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/kaoto/config.toml or the file
// named by --config. Flags override the file.
//
// # Logging
//
// All commands log to stderr through charmbracelet/log; --verbose switches
// to debug level.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Ortofta/kaoto/internal/config"
	"github.com/Ortofta/kaoto/pkg/buildinfo"
	"github.com/Ortofta/kaoto/pkg/cache"
	"github.com/Ortofta/kaoto/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "kaoto"

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
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Kaoto turns integration routes into visual graphs",
		Long: `Kaoto builds visualization graphs from integration route definitions and
links the fields of data mappings between source and target documents.`,
		Version:           buildinfo.Get().Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/kaoto/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.graphCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.linksCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.newCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and applies the log level before any command
// runs. --verbose wins over the configured level.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	switch {
	case c.verbose:
		c.SetLogLevel(LogDebug)
	case cfg.Log.Level != "":
		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		c.SetLogLevel(level)
	}
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, "v"+strings.TrimPrefix(buildinfo.Get().Version, "v")+":")
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache opens the configured cache backend. A cache that cannot be opened
// degrades to no caching rather than failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache || cfg.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}

	var (
		cc  cache.Cache
		err error
	)
	switch cfg.Backend {
	case config.BackendRedis:
		cc, err = cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.RedisAddr})
	default:
		var dir string
		if dir, err = c.cacheDir(); err == nil {
			cc, err = cache.NewFileCache(dir)
		}
	}
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "backend", cfg.Backend, "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.Observe(cache.CapTTL(cc, cfg.TTL.Duration)), nil
}

// pipelineOptions fills the fields every pipeline run takes from config.
func (c *CLI) pipelineOptions(opts *pipeline.Options) {
	opts.Logger = c.Logger
	if opts.Icons == nil {
		opts.Icons = c.Config.IconResolver()
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/kaoto/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
