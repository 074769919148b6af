// Package config loads stationq's config file (YAML or JSON) and, for the
// resident daemon, watches it for changes.
//
// The station's operational settings (measurement window, manual flag,
// email account) live in the database; this file only configures the
// process itself: where the database is, how to log, and the daemon's
// schedule.
package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Storage StorageConfig `json:"storage"`
	Logging LoggingConfig `json:"logging"`
	Daemon  DaemonConfig  `json:"daemon"`
}

type StorageConfig struct {
	Driver      string `json:"driver,omitempty"` // "sqlite" (default) or "memory"
	Path        string `json:"path,omitempty"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // Go duration string
}

type LoggingConfig struct {
	Level   string          `json:"level,omitempty"`
	Console bool            `json:"console"`
	File    LogFileConfig   `json:"file,omitempty"`
	Email   EmailSinkConfig `json:"email,omitempty"`
}

type LogFileConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

// EmailSinkConfig tunes the email log sink. The recipient, relay and
// credentials come from email_* settings in the database; enabling the
// sink here without email_enabled=1 in the database sends nothing.
type EmailSinkConfig struct {
	Enabled    bool   `json:"enabled"`
	MinLevel   string `json:"min_level,omitempty"`    // default: "warn"
	RatePerSec int    `json:"rate_per_sec,omitempty"` // default: 1
}

// DaemonConfig controls `stationq run`.
//
// Schedule accepts robfig/cron expressions including descriptors
// ("@hourly", "@every 1h"). Timezone is an IANA name; empty means the
// system's local zone.
type DaemonConfig struct {
	Schedule string `json:"schedule,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Normalize fills defaults in place and validates duration fields.
func (c *Config) Normalize() error {
	if strings.TrimSpace(c.Storage.Driver) == "" {
		c.Storage.Driver = "sqlite"
	}
	if strings.TrimSpace(c.Storage.Path) == "" && c.Storage.Driver != "memory" {
		c.Storage.Path = "./stationq.db"
	}
	if bt := strings.TrimSpace(c.Storage.BusyTimeout); bt != "" {
		if _, err := time.ParseDuration(bt); err != nil {
			return fmt.Errorf("storage.busy_timeout: %w", err)
		}
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = "info"
	}
	if strings.TrimSpace(c.Daemon.Schedule) == "" {
		c.Daemon.Schedule = "@hourly"
	}
	return nil
}

// BusyTimeout returns the parsed storage busy timeout (0 when unset).
// Normalize has already rejected malformed values.
func (c *Config) BusyTimeout() time.Duration {
	d, _ := time.ParseDuration(strings.TrimSpace(c.Storage.BusyTimeout))
	return d
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	c := &Config{}
	c.Logging.Console = true
	_ = c.Normalize()
	return c
}
