// Package cli implements the newshub command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sidx05/NewsHub/pkg/buildinfo"
	"github.com/sidx05/NewsHub/pkg/cache"
	"github.com/sidx05/NewsHub/pkg/newsapi"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "newshub"

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

	// Persistent flags, bound by RootCommand.
	configPath string
	host       string
	timeout    time.Duration
	noCache    bool

	// cfg is the resolved configuration, loaded before every command.
	cfg *Config

	// cacheHit records whether the current command was served from
	// cache; see hooks.go.
	cacheHit atomic.Bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:  newLogger(w, level),
		timeout: defaultTimeout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "newshub",
		Short:        "NewsHub reads the NewsHub feed from the terminal",
		Long:         `NewsHub is a CLI client for the NewsHub content API. It lists and searches articles, browses categories, and shows trending stories and market tickers, caching responses locally for snappy repeat queries.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/newshub/config.toml)")
	root.PersistentFlags().StringVar(&c.host, "host", "", "backend host, e.g. https://newshub.example.com")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", defaultTimeout, "per-request timeout")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the response cache")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return c.initConfig(cmd)
	}

	// Register all subcommands
	root.AddCommand(c.articlesCommand())
	root.AddCommand(c.articleCommand())
	root.AddCommand(c.categoriesCommand())
	root.AddCommand(c.categoryCommand())
	root.AddCommand(c.trendingCommand())
	root.AddCommand(c.tickersCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.stubCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// initConfig loads the configuration and overlays persistent flags.
// Flags beat environment variables, which beat the file.
func (c *CLI) initConfig(cmd *cobra.Command) error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	if c.host != "" {
		cfg.Host = c.host
	}
	if !cmd.Flags().Changed("timeout") && cfg.Timeout != "" {
		c.timeout = cfg.TimeoutDuration()
	}
	c.cfg = cfg
	c.installHooks()
	return nil
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient builds the API client from the resolved configuration. The
// host is fixed for the client's lifetime, one command execution. Cache
// entries are scoped by that host, so fixed keys like the categories
// list never leak between backends sharing the file cache.
func (c *CLI) newClient() (*newsapi.Client, error) {
	store, err := c.newCache()
	if err != nil {
		return nil, err
	}
	host := newsapi.ResolveHost(newsapi.HostConfig{
		ConfiguredHost: c.cfg.Host,
		SiteURL:        c.cfg.SiteURL,
		DeployHost:     c.cfg.DeployHost,
	})
	return newsapi.New(newsapi.Options{
		Host:  host,
		Cache: cache.NewScoped(store, host+"|"),
	}), nil
}

// newCache picks the cache backend from config; --no-cache always wins.
func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case "", CacheBackendFile:
		dir, err := c.fileCacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case CacheBackendMemory:
		return cache.NewMemoryCache(), nil
	case CacheBackendRedis:
		return cache.NewRedisCache(cache.RedisOptions{
			Addr:     c.cfg.Cache.Redis.Addr,
			Password: c.cfg.Cache.Redis.Password,
			DB:       c.cfg.Cache.Redis.DB,
		}), nil
	case CacheBackendNone:
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", c.cfg.Cache.Backend)
	}
}

// requestContext bounds one fetch operation with the configured timeout.
func (c *CLI) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/newshub/).
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

// fileCacheDir is the directory the file backend writes to, honoring
// the config override.
func (c *CLI) fileCacheDir() (string, error) {
	if c.cfg != nil && c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cacheDir()
}
