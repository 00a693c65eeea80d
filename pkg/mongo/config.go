package mongo

import (
	"fmt"
	"os"
	"time"
)

// Env maps environment variable names for MongoDB configuration.
type Env struct {
	URI         string
	Database    string
	ConnTimeout string
	PingTimeout string
}

// Config contains MongoDB connection configuration. The URI is passed
// through to the driver unchanged.
type Config struct {
	URI         string `toml:"uri"`
	Database    string `toml:"database"`
	ConnTimeout string `toml:"conn_timeout"`
	PingTimeout string `toml:"ping_timeout"`
}

// ConnTimeoutDuration parses and returns the connection timeout as a time.Duration.
func (c *Config) ConnTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnTimeout)
	return d
}

// PingTimeoutDuration parses and returns the ping timeout as a time.Duration.
func (c *Config) PingTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.PingTimeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	c.loadEnv(env)
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.URI != "" {
		c.URI = overlay.URI
	}
	if overlay.Database != "" {
		c.Database = overlay.Database
	}
	if overlay.ConnTimeout != "" {
		c.ConnTimeout = overlay.ConnTimeout
	}
	if overlay.PingTimeout != "" {
		c.PingTimeout = overlay.PingTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.URI == "" {
		c.URI = "mongodb://localhost:27017"
	}
	if c.ConnTimeout == "" {
		c.ConnTimeout = "10s"
	}
	if c.PingTimeout == "" {
		c.PingTimeout = "5s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env == nil {
		return
	}
	if v := os.Getenv(env.URI); v != "" {
		c.URI = v
	}
	if v := os.Getenv(env.Database); v != "" {
		c.Database = v
	}
	if v := os.Getenv(env.ConnTimeout); v != "" {
		c.ConnTimeout = v
	}
	if v := os.Getenv(env.PingTimeout); v != "" {
		c.PingTimeout = v
	}
}

func (c *Config) validate() error {
	if c.Database == "" {
		return fmt.Errorf("database required")
	}
	if _, err := time.ParseDuration(c.ConnTimeout); err != nil {
		return fmt.Errorf("invalid conn_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.PingTimeout); err != nil {
		return fmt.Errorf("invalid ping_timeout: %w", err)
	}
	return nil
}
