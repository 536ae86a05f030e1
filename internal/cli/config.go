package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sidx05/NewsHub/pkg/newsapi"
)

// Environment variables consulted on top of the config file. Host
// resolution variables live in pkg/newsapi.
const (
	// EnvCacheBackend selects the cache backend (file, memory, redis, none).
	EnvCacheBackend = "NEWSHUB_CACHE_BACKEND"

	// EnvRedisAddr points the redis backend at a host:port.
	EnvRedisAddr = "NEWSHUB_REDIS_ADDR"
)

// Cache backends selectable via config or NEWSHUB_CACHE_BACKEND.
const (
	CacheBackendFile   = "file"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// defaultTimeout bounds a single fetch operation unless the config file
// or --timeout says otherwise.
const defaultTimeout = 30 * time.Second

// Config is the on-disk CLI configuration, read from
// $XDG_CONFIG_HOME/newshub/config.toml. Flags override environment
// variables, which override the file, which overrides defaults.
type Config struct {
	// Host is the backend host, e.g. "https://newshub.example.com".
	Host string `toml:"host"`

	// SiteURL and DeployHost feed the host fallback chain when Host is
	// empty; see newsapi.ResolveHost.
	SiteURL    string `toml:"site_url"`
	DeployHost string `toml:"deploy_host"`

	// Timeout bounds one fetch operation, as a Go duration string
	// ("30s", "2m").
	Timeout string `toml:"timeout"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the response cache backend.
type CacheConfig struct {
	// Backend is one of file (default), memory, redis or none.
	Backend string `toml:"backend"`

	// Dir overrides the file backend's directory.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

func defaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{Backend: CacheBackendFile},
	}
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default file is not an error; a missing
// explicit file is. Environment overrides are applied on top.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if path == "" {
		p, err := configPath()
		if err != nil {
			cfg.applyEnv()
			return cfg, nil
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !os.IsNotExist(err) || explicit {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables onto the file settings.
func (c *Config) applyEnv() {
	if v := os.Getenv(newsapi.EnvAPIHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(newsapi.EnvSiteURL); v != "" {
		c.SiteURL = v
	}
	if v := os.Getenv(newsapi.EnvDeployHost); v != "" {
		c.DeployHost = v
	}
	if v := os.Getenv(EnvCacheBackend); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.Redis.Addr = v
	}
}

// TimeoutDuration parses the configured timeout, falling back to the
// default when unset or unparsable.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

// configDir returns the config directory using the XDG convention
// (~/.config/newshub/).
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

// configPath returns the default config file location.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
