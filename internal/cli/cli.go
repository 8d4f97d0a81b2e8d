package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomscatter/pkg/buildinfo"
	"github.com/matzehuels/roomscatter/pkg/cache"
	"github.com/matzehuels/roomscatter/pkg/config"
	"github.com/matzehuels/roomscatter/pkg/scatter"
	"github.com/matzehuels/roomscatter/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "roomscatter"
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
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "roomscatter",
		Short:        "Roomscatter populates floor regions with scattered objects",
		Long:         `Roomscatter is a procedural placement engine that fills rectangular floor regions with objects, honoring boundary and separation constraints with graceful relaxation when space gets tight.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a placement runner backed by the given scene.
func (c *CLI) newRunner(sc *scene.StaticScene, noCache bool) (*scatter.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return scatter.NewRunner(sc, sc, store, nil, c.Logger), nil
}

// newScene builds the in-memory scene backend from a configuration.
func newScene(cfg *config.Config) *scene.StaticScene {
	sc := scene.NewStaticScene(cfg.Seed)
	sc.MeasureJitter = cfg.Scene.MeasureJitter
	return sc
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/roomscatter/).
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
