// Package cli implements the openlens command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/guleriaakshit/open-lens/internal/config"
	"github.com/guleriaakshit/open-lens/pkg/buildinfo"
	"github.com/guleriaakshit/open-lens/pkg/fetch"
	"github.com/guleriaakshit/open-lens/pkg/github"
	"github.com/guleriaakshit/open-lens/pkg/state"
	"github.com/guleriaakshit/open-lens/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "openlens"

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
	cfg    config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "openlens",
		Short:        "Openlens browses GitHub repositories and issues from the terminal",
		Long:         `Openlens is a terminal client for exploring GitHub: trending repositories, filtered search, open issues, and user profiles, with a local response cache so repeat lookups stay fast and gentle on rate limits.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.trendingCommand())
	root.AddCommand(c.issuesCommand())
	root.AddCommand(c.repoCommand())
	root.AddCommand(c.userCommand())
	root.AddCommand(c.authCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Service Factory
// =============================================================================

// newService wires a fetch service for CLI use. The returned cleanup closes
// the cache backend.
func (c *CLI) newService(ctx context.Context, noCache bool) (*fetch.Service, func(), error) {
	creds, err := c.credentials()
	if err != nil {
		return nil, nil, err
	}

	token := creds.Get
	if c.cfg.Token != "" {
		token = func() string { return c.cfg.Token }
	}

	st := c.newStore(ctx, noCache)
	api := github.NewClient(token, c.Logger, github.WithBaseURL(c.cfg.APIBaseURL))
	trending := github.NewTrendingClient(c.cfg.TrendingURL, c.Logger)

	svc := fetch.NewService(st, api, trending, c.Logger, c.cfg.PerPage)
	return svc, func() { _ = st.Close() }, nil
}

func (c *CLI) newStore(ctx context.Context, noCache bool) store.Store {
	if noCache || c.cfg.Cache.Backend == config.BackendNone {
		return store.NewNullStore()
	}

	if c.cfg.Cache.Backend == config.BackendRedis {
		rs, err := store.NewRedisStore(ctx, c.cfg.Cache.RedisAddr, appName, c.Logger)
		if err == nil {
			return rs
		}
		c.Logger.Warn("redis unavailable, caching disabled", "addr", c.cfg.Cache.RedisAddr, "error", err)
		return store.NewNullStore()
	}

	dir := c.cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return store.NewNullStore()
		}
	}
	fs, err := store.NewFileStore(dir, c.Logger)
	if err != nil {
		c.Logger.Warn("cache directory unusable, caching disabled", "dir", dir, "error", err)
		return store.NewNullStore()
	}
	return fs
}

// stateStore opens the session state store under the config directory.
func (c *CLI) stateStore() (*state.Store, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return state.NewStore(dir, c.Logger)
}

// credentials opens the credential slot under the config directory.
func (c *CLI) credentials() (*state.Credentials, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return state.NewCredentials(dir)
}

// savedSnapshot loads the last browsed page for an offline first paint.
func (c *CLI) savedSnapshot() (state.Snapshot, bool) {
	states, err := c.stateStore()
	if err != nil {
		return state.Snapshot{}, false
	}
	return states.LoadSnapshot()
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/openlens/).
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

// configDir returns the config directory using XDG standard (~/.config/openlens/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
