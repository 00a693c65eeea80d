// Package config composes the service configuration for the reference
// server from the per-package configuration sections.
package config

import (
	"fmt"

	"github.com/pmaterna/apibase/pkg/config"
	"github.com/pmaterna/apibase/pkg/logging"
	"github.com/pmaterna/apibase/pkg/middleware"
	"github.com/pmaterna/apibase/pkg/mongo"
	"github.com/pmaterna/apibase/pkg/pagination"
	"github.com/pmaterna/apibase/pkg/postgres"
	"github.com/pmaterna/apibase/pkg/server"
)

var (
	serverEnv = &server.Env{
		Host:            "SERVER_HOST",
		Port:            "SERVER_PORT",
		ReadTimeout:     "SERVER_READ_TIMEOUT",
		WriteTimeout:    "SERVER_WRITE_TIMEOUT",
		IdleTimeout:     "SERVER_IDLE_TIMEOUT",
		ShutdownTimeout: "SERVER_SHUTDOWN_TIMEOUT",
		MaxBodySize:     "SERVER_MAX_BODY_SIZE",
	}

	loggingEnv = &logging.Env{
		Level:  "LOG_LEVEL",
		Format: "LOG_FORMAT",
	}

	corsEnv = &middleware.CORSEnv{
		Origins:          "CORS_ORIGINS",
		AllowedMethods:   "CORS_ALLOWED_METHODS",
		AllowedHeaders:   "CORS_ALLOWED_HEADERS",
		AllowCredentials: "CORS_ALLOW_CREDENTIALS",
		MaxAge:           "CORS_MAX_AGE",
	}

	paginationEnv = &pagination.Env{
		DefaultLimit: "PAGINATION_DEFAULT_LIMIT",
		MaxLimit:     "PAGINATION_MAX_LIMIT",
	}

	mongoEnv = &mongo.Env{
		URI:         "MONGO_URI",
		Database:    "MONGO_DATABASE",
		ConnTimeout: "MONGO_CONN_TIMEOUT",
		PingTimeout: "MONGO_PING_TIMEOUT",
	}

	postgresEnv = &postgres.Env{
		Host:            "POSTGRES_HOST",
		Port:            "POSTGRES_PORT",
		Name:            "POSTGRES_NAME",
		User:            "POSTGRES_USER",
		Password:        "POSTGRES_PASSWORD",
		MaxOpenConns:    "POSTGRES_MAX_OPEN_CONNS",
		MaxIdleConns:    "POSTGRES_MAX_IDLE_CONNS",
		ConnMaxLifetime: "POSTGRES_CONN_MAX_LIFETIME",
		ConnTimeout:     "POSTGRES_CONN_TIMEOUT",
	}
)

// ServicesConfig holds the per-service configuration sections, one table
// per registered service.
type ServicesConfig struct {
	Mongo    mongo.Config    `toml:"mongo"`
	Postgres postgres.Config `toml:"postgres"`
}

// Merge applies values from the overlay service sections.
func (c *ServicesConfig) Merge(overlay *ServicesConfig) {
	c.Mongo.Merge(&overlay.Mongo)
	c.Postgres.Merge(&overlay.Postgres)
}

// Config is the root configuration for the reference server.
type Config struct {
	Server     server.Config         `toml:"server"`
	Logging    logging.Config        `toml:"logging"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
	Services   ServicesConfig        `toml:"services"`
}

// Load reads the configuration from dir, applying any environment overlay.
func Load(dir string) (*Config, error) {
	return config.Load[Config](dir)
}

// Finalize applies defaults, environment overrides, and validation to every
// section. The configuration is read-only after this call.
func (c *Config) Finalize() error {
	if err := c.Server.Finalize(serverEnv); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.Services.Mongo.Finalize(mongoEnv); err != nil {
		return fmt.Errorf("services.mongo: %w", err)
	}
	if c.PostgresEnabled() {
		if err := c.Services.Postgres.Finalize(postgresEnv); err != nil {
			return fmt.Errorf("services.postgres: %w", err)
		}
	}
	return nil
}

// PostgresEnabled reports whether a relational store is configured.
// The section is optional; an empty database name means the service is
// not registered.
func (c *Config) PostgresEnabled() bool {
	return c.Services.Postgres.Name != ""
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.Services.Merge(&overlay.Services)
}
