package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sillydeps/internal/config"
	"github.com/matzehuels/sillydeps/pkg/buildinfo"
	"github.com/matzehuels/sillydeps/pkg/cache"
	"github.com/matzehuels/sillydeps/pkg/catalog"
	"github.com/matzehuels/sillydeps/pkg/history"
	"github.com/matzehuels/sillydeps/pkg/integrations/npm"
	"github.com/matzehuels/sillydeps/pkg/pipeline"
	"github.com/matzehuels/sillydeps/pkg/retry"
)

// redisKeyPrefix scopes keys in a Redis instance shared with other tools.
const redisKeyPrefix = "sillydeps:"

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
	Logger  *log.Logger
	Config  *config.Config
	verbose bool
}

// New creates a new CLI instance. A nil cfg is read from the environment
// when the first command runs.
func New(w io.Writer, level log.Level, cfg *config.Config) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: cfg,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "sillydeps",
		Short:        "sillydeps finds trivial npm dependencies",
		Long:         `sillydeps audits a JavaScript project's direct and transitive dependencies against a catalog of trivial packages and suggests inline replacements.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			if c.Config == nil {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				c.Config = cfg
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "verbose output and debug logging")

	root.AddCommand(c.auditCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

type runnerOptions struct {
	catalogPath string
	noCache     bool
	noHistory   bool
}

// newRunner creates a pipeline runner for CLI use. Unreachable Redis or
// MongoDB backends degrade to the local file backends.
func (c *CLI) newRunner(ctx context.Context, opts runnerOptions) (*pipeline.Runner, error) {
	cat, err := c.loadCatalog(opts.catalogPath)
	if err != nil {
		return nil, err
	}
	ch, shared, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return nil, err
	}
	store, err := c.newHistory(ctx, opts.noHistory)
	if err != nil {
		ch.Close()
		return nil, err
	}

	r := pipeline.NewRunner(cat, ch, store, c.Logger)
	r.Trees = npm.NewLister(npm.Options{Timeout: c.Config.NPMTimeout})
	if shared {
		r.Keyer = cache.NewScopedKeyer(r.Keyer, redisKeyPrefix)
	}
	return r, nil
}

// loadCatalog reads path, falling back to SILLYDEPS_CATALOG and then the
// bundled catalog.
func (c *CLI) loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		path = c.Config.Catalog
	}
	if path == "" {
		return catalog.Default()
	}
	c.Logger.Debug("loading catalog", "path", path)
	return catalog.LoadFile(path)
}

// newCache returns the configured cache and whether it is shared (Redis).
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, bool, error) {
	if noCache {
		return cache.NewNullCache(), false, nil
	}
	if c.Config.Redis.Addr != "" {
		var rc cache.Cache
		err := retry.Connect(ctx, func(ctx context.Context) error {
			var err error
			rc, err = cache.NewRedisCache(ctx, cache.RedisConfig{
				Addr:     c.Config.Redis.Addr,
				Password: c.Config.Redis.Password,
				DB:       c.Config.Redis.DB,
			})
			return err
		})
		if err == nil {
			return rc, true, nil
		}
		c.Logger.Warn("redis unavailable, using file cache", "addr", c.Config.Redis.Addr, "error", err)
	}
	if c.Config.CacheDir == "" {
		return cache.NewNullCache(), false, nil
	}
	fc, err := cache.NewFileCache(c.Config.CacheDir)
	if err != nil {
		return nil, false, err
	}
	return fc, false, nil
}

func (c *CLI) newHistory(ctx context.Context, noHistory bool) (history.Store, error) {
	if noHistory {
		return history.NewNullStore(), nil
	}
	if c.Config.Mongo.URI != "" {
		var ms *history.MongoStore
		err := retry.Connect(ctx, func(ctx context.Context) error {
			var err error
			ms, err = history.NewMongoStore(ctx, history.MongoConfig{
				URI:      c.Config.Mongo.URI,
				Database: c.Config.Mongo.Database,
			})
			return err
		})
		if err == nil {
			return ms, nil
		}
		c.Logger.Warn("mongodb unavailable, using history file", "error", err)
	}
	if c.Config.HistoryFile == "" {
		return history.NewNullStore(), nil
	}
	return history.NewFileStore(c.Config.HistoryFile)
}
