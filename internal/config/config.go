// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" env-default:"8080"`

	// LogLevel controls the minimum log level: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins OriginList `env:"CORS_ORIGINS" env-default:"http://localhost:5173"`

	// MaxBodyBytes caps the size of request bodies.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" env-default:"1048576"`

	// AutoMigrate applies the embedded migrations before serving.
	AutoMigrate bool `env:"AUTO_MIGRATE" env-default:"false"`

	// DatabaseURL is the Postgres connection string. When empty it is
	// assembled from the DB_* variables in DB.
	DatabaseURL string `env:"DATABASE_URL"`

	DB Database
}

// Database holds the discrete connection settings and pool sizing.
type Database struct {
	Host     string `env:"DB_HOST"`
	Port     string `env:"DB_PORT" env-default:"5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"`
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`

	MaxConns        int32         `env:"DB_MAX_CONNECTIONS" env-default:"10"`
	MinConns        int32         `env:"DB_MIN_CONNECTIONS" env-default:"0"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" env-default:"3m"`
}

// OriginList is a comma-separated list of origins. It implements
// cleanenv.Setter so entries are trimmed and empty entries dropped.
type OriginList []string

// SetValue parses a comma-separated origin list.
func (o *OriginList) SetValue(s string) error {
	*o = splitCSV(s)
	return nil
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing the database variables that are missing when
// neither DATABASE_URL nor the DB_* parts are set.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	if cfg.DatabaseURL != "" {
		return cfg, nil
	}

	var missing []string
	if cfg.DB.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if cfg.DB.User == "" {
		missing = append(missing, "DB_USER")
	}
	if cfg.DB.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: DATABASE_URL or %s", strings.Join(missing, ", "))
	}

	cfg.DatabaseURL = cfg.DB.URL()
	return cfg, nil
}

// URL assembles a postgres:// connection string from the discrete settings.
// User and password are escaped.
func (d Database) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u.String()
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
