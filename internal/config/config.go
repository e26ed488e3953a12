// Package config loads server and CLI settings from environment variables.
// Every field has a default, so an empty environment yields a working setup
// backed by a local bbolt file. Validate runs on every Load.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Import   ImportConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Catalog  CatalogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`

	// RequestTimeout bounds each request in the middleware chain (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// StorageConfig selects where the catalog document lives.
type StorageConfig struct {
	// Driver is bolt, postgres or memory (default: bolt)
	Driver string `env:"STORAGE_DRIVER" default:"bolt"`

	// Path is the bbolt file (default: data/stock.db)
	Path string `env:"STORAGE_PATH" default:"data/stock.db"`

	// DatabaseURL is the PostgreSQL connection string, used by the postgres driver.
	// Supports both DATABASE_URL and DB_URL.
	DatabaseURL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the PostgreSQL pool size (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// Key is the document key (default: super_stock_v1)
	Key string `env:"STORAGE_KEY" default:"super_stock_v1"`
}

// ImportConfig holds CSV import limits.
type ImportConfig struct {
	// MaxFileSize accepts plain bytes or a KB/MB/GB suffix (default: 10MB)
	MaxFileSize ByteSize `env:"IMPORT_MAX_FILE_SIZE" default:"10MB"`

	// MaxConcurrent is the number of imports processed at once (default: 2)
	MaxConcurrent int `env:"IMPORT_MAX_CONCURRENT" default:"2"`

	// MaxWaitTime is how long an import waits for a free slot (default: 10s)
	MaxWaitTime time.Duration `env:"IMPORT_MAX_WAIT_TIME" default:"10s"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default limit per IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`

	// ImportLimit is the per-minute limit for import endpoints (default: 10)
	ImportLimit int `env:"RATE_LIMIT_IMPORT" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of proxy CIDRs whose
	// X-Forwarded-For / X-Real-IP headers are believed.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// CatalogConfig holds catalog behavior settings.
type CatalogConfig struct {
	// Seed fills an empty catalog with example products on startup (default: true)
	Seed bool `env:"CATALOG_SEED" default:"true"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
