// Package config loads the openlens configuration.
//
// Settings come from a TOML file in the XDG config directory, with
// environment variables taking precedence over file values. A missing config
// file is not an error; everything has a usable default.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/guleriaakshit/open-lens/pkg/github"
)

// Environment variable overrides.
const (
	EnvToken        = "OPENLENS_TOKEN"
	EnvCacheBackend = "OPENLENS_CACHE_BACKEND"
	EnvRedisAddr    = "OPENLENS_REDIS_ADDR"
	EnvListenAddr   = "OPENLENS_ADDR"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full application configuration.
type Config struct {
	// Token is an API token override. When empty, the token stored by
	// `openlens auth login` is used.
	Token string `toml:"token"`

	// APIBaseURL is the REST API base, overridable for GitHub Enterprise.
	APIBaseURL string `toml:"api_base_url"`

	// TrendingURL is the trending feed endpoint.
	TrendingURL string `toml:"trending_url"`

	// PerPage is the page size requested from upstream listings.
	PerPage int `toml:"per_page"`

	Cache CacheConfig `toml:"cache"`
	Serve ServeConfig `toml:"serve"`
}

// CacheConfig selects and parameterizes the durable cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
}

// ServeConfig parameterizes the HTTP façade.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBaseURL:  github.DefaultBaseURL,
		TrendingURL: github.DefaultTrendingURL,
		PerPage:     30,
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns the config file location under the XDG config dir.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "openlens", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "openlens", "config.toml"), nil
}

// Load reads the config file at path, layered over Default and under
// environment overrides. A missing file yields defaults plus environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv(EnvCacheBackend); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv(EnvListenAddr); v != "" {
		cfg.Serve.Addr = v
	}
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return fmt.Errorf("unknown cache backend %q (want %s, %s, or %s)",
			c.Cache.Backend, BackendFile, BackendRedis, BackendNone)
	}
	if c.PerPage <= 0 || c.PerPage > 100 {
		return fmt.Errorf("per_page must be 1-100, got %d", c.PerPage)
	}
	return nil
}
