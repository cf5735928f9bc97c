package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultAddr        = ":1933"
	defaultDatabaseURL = "data/cabinet.db"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Session  SessionConfig
	Seed     SeedConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr      string `env:"SERVER_ADDR"`
	StaticDir string `env:"STATIC_DIR" envDefault:"web/static"`
}

// DatabaseConfig contains the database connection settings. URL is either a
// sqlite path / file: DSN or a postgres:// connection string.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME"`
	ConnMaxIdleTime time.Duration `env:"DATABASE_CONN_MAX_IDLE_TIME"`
	UseMock         bool          `env:"DATABASE_USE_MOCK"`
}

// LoggingConfig selects the minimum log level.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// SessionConfig controls the cookie session that remembers drink filters.
type SessionConfig struct {
	Lifetime     time.Duration `env:"SESSION_LIFETIME" envDefault:"720h"`
	CookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"cabinet_session"`
	CookieDomain string        `env:"SESSION_COOKIE_DOMAIN"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE"`
}

// SeedConfig controls reference data bootstrapping on startup.
type SeedConfig struct {
	Disabled bool   `env:"SEED_DISABLED"`
	File     string `env:"SEED_FILE"`
}

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Server.Addr = firstNonEmpty(
		cfg.Server.Addr,
		os.Getenv("ADDR"),
		portAddr(os.Getenv("PORT")),
		defaultAddr,
	)

	cfg.Database.URL = firstNonEmpty(
		cfg.Database.URL,
		os.Getenv("DB_URL"),
		defaultDatabaseURL,
	)

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}

	return cfg, nil
}

func portAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ""
	}
	return ":" + port
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
