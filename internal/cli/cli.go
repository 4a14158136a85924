// Package cli implements the boundlayout command-line interface.
package cli

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boundlayout/pkg/buildinfo"
	"github.com/matzehuels/boundlayout/pkg/cache"
	"github.com/matzehuels/boundlayout/pkg/pipeline"
	"github.com/matzehuels/boundlayout/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "boundlayout"

	// Environment variables selecting shared backends.
	envRedisURL = "BOUNDLAYOUT_REDIS_URL"
	envMongoURI = "BOUNDLAYOUT_MONGO_URI"
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

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Boundlayout lays out graphs inside boundary regions",
		Long: `Boundlayout computes force-directed layouts in which every node stays inside
the region its category names and outside every other region that overlaps it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.partitionCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// backendFlags selects cache and store backends. Empty URLs fall back to
// the environment.
type backendFlags struct {
	noCache  bool
	redisURL string
	mongoURI string
	storeDir string
}

func (b *backendFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&b.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&b.redisURL, "redis-url", "", "Redis cache URL (default: $"+envRedisURL+", else file cache)")
	cmd.Flags().StringVar(&b.mongoURI, "mongo-uri", "", "MongoDB URI to store layouts in (default: $"+envMongoURI+")")
	cmd.Flags().StringVar(&b.storeDir, "store-dir", "", "directory to store layouts in as <run id>.json")
}

// newRunner creates a pipeline runner with the selected cache.
func (c *CLI) newRunner(ctx context.Context, b backendFlags) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, b)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, b backendFlags) (cache.Cache, error) {
	if b.noCache {
		return cache.NewNullCache(), nil
	}
	redisURL := firstNonEmpty(b.redisURL, os.Getenv(envRedisURL))
	if redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, redisURL, appName+":")
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "url", redactURL(redisURL))
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStores opens the stores the flags ask for. Callers close them.
func (c *CLI) newStores(ctx context.Context, b backendFlags) ([]store.Store, error) {
	var stores []store.Store
	if b.storeDir != "" {
		fs, err := store.NewFileStore(b.storeDir)
		if err != nil {
			return nil, err
		}
		stores = append(stores, fs)
	}
	if uri := firstNonEmpty(b.mongoURI, os.Getenv(envMongoURI)); uri != "" {
		ms, err := store.NewMongoStore(ctx, uri, "", "")
		if err != nil {
			return nil, err
		}
		stores = append(stores, ms)
	}
	return stores, nil
}

func closeStores(ctx context.Context, stores []store.Store) {
	for _, s := range stores {
		_ = s.Close(ctx)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/boundlayout/).
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

// =============================================================================
// Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// redactURL hides the password of a URL for logging.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	return u.Redacted()
}
