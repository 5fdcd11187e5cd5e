// Package cli implements the featclose command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/varun-a1/odlparent/pkg/buildinfo"
	"github.com/varun-a1/odlparent/pkg/cache"
	"github.com/varun-a1/odlparent/pkg/closure"
	"github.com/varun-a1/odlparent/pkg/repo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "featclose"

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
	Logger   *log.Logger
	Settings *Settings
}

// New creates a new CLI instance with a default logger and default settings.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		Settings: DefaultSettings(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          appName,
		Short:        "Featclose resolves the transitive closure of Karaf feature descriptors",
		Long:         `Featclose reads Karaf feature descriptor files, follows their repository references transitively, and reports every descriptor and artifact coordinate reachable from the roots.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := LoadSettings(configPath)
			if err != nil {
				return err
			}
			c.Settings = settings
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.config/featclose/config.toml)")

	root.AddCommand(c.closureCommand())
	root.AddCommand(c.coordsCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Resolver Factory
// =============================================================================

// newResolver builds the descriptor loader from the configured repositories
// and wraps it in a closure resolver.
func (c *CLI) newResolver(ctx context.Context, noCache bool) (*closure.Resolver, error) {
	artifacts, err := c.newArtifactResolver(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return closure.NewResolver(closure.NewArtifactLoader(artifacts), c.Logger), nil
}

// newArtifactResolver chains the configured local repositories before the
// remote ones, so locally installed artifacts never hit the network.
func (c *CLI) newArtifactResolver(ctx context.Context, noCache bool) (repo.Resolver, error) {
	s := c.Settings

	var resolvers []repo.Resolver
	if len(s.LocalRepos) > 0 {
		resolvers = append(resolvers, repo.NewLocal(s.LocalRepos...))
	}

	if len(s.RemoteURLs) > 0 {
		store, err := c.newCache(ctx, noCache)
		if err != nil {
			return nil, err
		}
		resolvers = append(resolvers, repo.NewRemote(s.RemoteURLs, s.DownloadDir, store, s.Cache.TTL()))
	}

	if len(resolvers) == 1 {
		return resolvers[0], nil
	}
	return repo.NewChain(resolvers...), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Settings.Cache.Backend {
	case CacheBackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Settings.Redis.Addr,
			Password: c.Settings.Redis.Password,
			DB:       c.Settings.Redis.DB,
			Prefix:   appName,
		})
	case CacheBackendNone:
		return cache.NewNullCache(), nil
	default:
		dir := c.Settings.Cache.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/featclose/).
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
