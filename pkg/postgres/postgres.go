// Package postgres provides the PostgreSQL service for the application
// registry, for deployments that pair the scaffolding with a relational
// store. It opens a database/sql pool over the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ServiceName is the registry name the scaffolding conventions use for the
// PostgreSQL connection.
const ServiceName = "postgres"

// Service holds a verified PostgreSQL connection pool.
type Service struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates and pings a PostgreSQL connection pool with the configured
// limits. Connection parameters pass through to the driver unchanged.
func Open(ctx context.Context, cfg *Config, logger *slog.Logger) (*Service, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnTimeoutDuration())
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("postgres connected", "database", cfg.Name)

	return &Service{
		db:     db,
		logger: logger.With("system", "postgres"),
	}, nil
}

// DB returns the underlying connection pool.
func (s *Service) DB() *sql.DB {
	return s.db
}

// Close shuts down the connection pool.
func (s *Service) Close(ctx context.Context) error {
	s.logger.Info("postgres closing")
	return s.db.Close()
}
