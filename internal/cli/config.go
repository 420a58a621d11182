package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/dynsig/dynsig/pkg/cache"
)

// Config is the on-disk CLI configuration, read from
// ~/.config/dynsig/config.toml (or $XDG_CONFIG_HOME/dynsig/config.toml).
// All fields have working defaults, so the file is optional.
//
// Example:
//
//	[cache]
//	backend = "redis"
//
//	[cache.redis]
//	addr = "localhost:6379"
type Config struct {
	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the pipeline cache backend.
type CacheConfig struct {
	// Backend is one of "file" (default), "redis", "mongo", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file backend's directory (default ~/.cache/dynsig).
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the mongo cache backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// connectTimeout bounds backend connection attempts so a dead redis or
// mongo endpoint fails fast instead of hanging the CLI.
const connectTimeout = 5 * time.Second

// configPath returns the config file location following XDG conventions.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads and parses the config file at path.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the config file if it exists and falls back
// to defaults otherwise. Parse errors are surfaced on stderr but do not
// prevent startup.
func LoadConfigOrDefault() *Config {
	path, err := configPath()
	if err != nil {
		return defaultConfig()
	}
	if _, err := os.Stat(path); err != nil {
		return defaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring config: %v\n", err)
		return defaultConfig()
	}
	return cfg
}

func defaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend: "file",
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   appName,
				Collection: "cache",
			},
		},
	}
}

// OpenCache opens the configured cache backend.
func (c *Config) OpenCache() (cache.Cache, error) {
	switch c.Cache.Backend {
	case "", "file":
		dir := c.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		return cache.NewRedisCache(ctx, c.Cache.Redis.Addr, c.Cache.Redis.Password, c.Cache.Redis.DB)
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		return cache.NewMongoCache(ctx, c.Cache.Mongo.URI, c.Cache.Mongo.Database, c.Cache.Mongo.Collection)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %q (must be file, redis, mongo, or none)", c.Cache.Backend)
	}
}
