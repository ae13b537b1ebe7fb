// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all application-level configuration loaded from environment variables.
type AppConfig struct {
	// Port is the HTTP server port. Defaults to 8990.
	Port int `envconfig:"PORT" default:"8990"`

	// DataDir is the root data directory. Defaults to ~/.backoffice.
	DataDir string `envconfig:"BACKOFFICE_DATA_DIR"`

	// LogLevel sets the minimum log level (debug, info, warn, error). Defaults to info.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// StudioName appears in outbound e-mail copy.
	StudioName string `envconfig:"STUDIO_NAME" default:"Júpiter Frito"`

	// OperatorEmail receives the operator-facing copy of booking and quote mails.
	OperatorEmail string `envconfig:"OPERATOR_EMAIL" default:"operador@orcana.hub"`

	// SMTP transport settings.
	SMTPHost       string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort       int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername   string `envconfig:"SMTP_USERNAME"`
	SMTPPassword   string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom       string `envconfig:"SMTP_FROM" default:"no-reply@orcana.hub"`
	SMTPEncryption string `envconfig:"SMTP_ENCRYPTION" default:"starttls"` // "none", "starttls", "ssl_tls"

	// StockScanAt is the local wall-clock time ("HH:MM") of the daily stock scan.
	StockScanAt string `envconfig:"STOCK_SCAN_AT" default:"07:00"`

	// TimeZone is the IANA zone the studio operates in. The stock scan
	// schedule and the formatted dates in e-mails use it.
	TimeZone string `envconfig:"STUDIO_TIMEZONE" default:"America/Sao_Paulo"`
}

// Load reads AppConfig from environment variables using envconfig.
// DataDir defaults to ~/.backoffice if not set.
func Load() (*AppConfig, error) {
	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		c.DataDir = filepath.Join(home, ".backoffice")
	}
	return &c, nil
}

// LogDir returns the directory log files are written to.
func (c *AppConfig) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// DBPath returns the SQLite database file path.
func (c *AppConfig) DBPath() string {
	return filepath.Join(c.DataDir, "backoffice.db")
}

// Location resolves the configured studio time zone.
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
