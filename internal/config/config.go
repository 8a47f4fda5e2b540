// Package config provides configuration management for the equity screener.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Watchlist WatchlistConfig `mapstructure:"watchlist" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Screener  ScreenerConfig  `mapstructure:"screener" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// WatchlistConfig describes where the watchlist CSV lives and how it is
// refreshed. Source is a local path or an HTTP(S) URL.
type WatchlistConfig struct {
	Source              string `mapstructure:"source" validate:"required"`
	ReloadCron          string `mapstructure:"reload_cron" validate:"omitempty,cronexpr"`
	FetchTimeoutSeconds int    `mapstructure:"fetch_timeout_seconds" validate:"required,gt=0"`
	FetchMaxRetries     int    `mapstructure:"fetch_max_retries" validate:"gte=0"`
	FetchRateLimit      float64 `mapstructure:"fetch_rate_limit" validate:"required,gt=0"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Host               string  `mapstructure:"host"`
	Port               int     `mapstructure:"port" validate:"required,min=1,max=65535"`
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	RateLimitBurst     int     `mapstructure:"rate_limit_burst" validate:"required,gt=0"`
	TemplatesGlob      string  `mapstructure:"templates_glob" validate:"required"`
}

// ScreenerConfig represents screening behavior configuration
type ScreenerConfig struct {
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	DefaultSort     string `mapstructure:"default_sort" validate:"required"`
	DefaultOrder    string `mapstructure:"default_order" validate:"required,oneof=asc desc"`
	SearchLimit     int    `mapstructure:"search_limit" validate:"required,gt=0"`
}

// MetricsConfig represents metrics exposure configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// CacheTTL returns the screen cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Screener.CacheTTLSeconds) * time.Second
}

// FetchTimeout returns the watchlist fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Watchlist.FetchTimeoutSeconds) * time.Second
}
