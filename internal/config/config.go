// Package config handles application configuration from environment variables
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds all application configuration
type Config struct {
	Port          string         `env:"PORT" envDefault:"8080"`
	Log           LogConfig      `envPrefix:"LOG_"`
	Upstream      UpstreamConfig `envPrefix:"UPSTREAM_"`
	Cache         CacheConfig    `envPrefix:"CACHE_"`
	FavoritesFile string         `env:"FAVORITES_FILE" envDefault:"favorites.json"`
	DatabaseURL   string         `env:"DATABASE_URL"`
	RedisAddr     string         `env:"REDIS_ADDR"`
	AdminToken    string         `env:"ADMIN_TOKEN"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"` // json or console
}

// UpstreamConfig configures the PokeAPI client
type UpstreamConfig struct {
	BaseURL   string        `env:"BASE_URL" envDefault:"https://pokeapi.co/api/v2"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"10s"`
	UserAgent string        `env:"USER_AGENT" envDefault:"pokedex/1.0"`
	HTTPCache bool          `env:"HTTP_CACHE" envDefault:"false"`
}

// CacheConfig configures the aggregate cache and fan-out
type CacheConfig struct {
	TTL         time.Duration `env:"TTL" envDefault:"1h"`
	FanoutLimit int           `env:"FANOUT_LIMIT" envDefault:"0"` // 0 = unbounded
	Coalesce    bool          `env:"COALESCE" envDefault:"false"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}

// HasDatabase returns true if favorites should be stored in PostgreSQL
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// HasRedis returns true if background jobs are enabled
func (c *Config) HasRedis() bool {
	return c.RedisAddr != ""
}

// HasAdminToken returns true if cache administration requires a token
func (c *Config) HasAdminToken() bool {
	return c.AdminToken != ""
}

// Validate checks value ranges the environment parser cannot express
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil || c.Log.Level == "" {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Log.Level))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Log.Format))
	}
	if u, err := url.Parse(c.Upstream.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("UPSTREAM_BASE_URL %q is not an http(s) URL", c.Upstream.BaseURL))
	}
	if c.Upstream.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", c.Upstream.Timeout))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be positive, got %s", c.Cache.TTL))
	}
	if c.Cache.FanoutLimit < 0 {
		errs = append(errs, fmt.Errorf("CACHE_FANOUT_LIMIT must not be negative, got %d", c.Cache.FanoutLimit))
	}

	return errors.Join(errs...)
}
