// Package cli implements the shrubbery command-line interface.
//
// Commands grow shrubs from presets, print the default preset, step through
// growth interactively and manage the voxel cache. The CLI is built with
// cobra; logging goes through charmbracelet/log and --verbose switches it to
// debug level.
//
// # Commands
//
//   - grow: Run a preset and write the voxels as JSON or a summary
//   - preset: Print the default preset for editing
//   - step: Grow, bend and voxelize a shrub one key press at a time
//   - cache: Clear the voxel cache or print its location
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/TanTanDev/shrubbery/pkg/buildinfo"
	"github.com/TanTanDev/shrubbery/pkg/cache"
	"github.com/TanTanDev/shrubbery/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "shrubbery"

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

// New creates a new CLI instance logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Shrubbery grows voxel shrubs with space colonization",
		Long:         `Shrubbery grows branching shrub skeletons toward clouds of attractor points, bends them, and voxelizes the result into branch and greenery voxels.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.growCommand())
	root.AddCommand(c.presetCommand())
	root.AddCommand(c.stepCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the cache backend for commands that run the pipeline.
type cacheFlags struct {
	noCache bool
	redis   string
	prefix  string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the voxel cache")
	cmd.Flags().StringVar(&f.redis, "redis", "", "use the Redis server at this address instead of the file cache")
	cmd.Flags().StringVar(&f.prefix, "cache-prefix", "", "namespace cache keys, e.g. per user on a shared Redis")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, c.Logger)
	if f.prefix != "" {
		runner.Keyer = cache.NewScopedKeyer(runner.Keyer, f.prefix)
	}
	return runner, nil
}

// newCache picks the backend: none, Redis, or the file cache. A missing home
// directory silently disables caching.
func (c *CLI) newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	switch {
	case f.noCache:
		return cache.NewNullCache(), nil
	case f.redis != "":
		rc, err := cache.NewRedisCache(ctx, &redis.Options{Addr: f.redis})
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/shrubbery/).
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
