package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pmaterna/apibase/internal/config"
	"github.com/pmaterna/apibase/internal/notes"
	"github.com/pmaterna/apibase/pkg/app"
	"github.com/pmaterna/apibase/pkg/logging"
	"github.com/pmaterna/apibase/pkg/mongo"
	"github.com/pmaterna/apibase/pkg/postgres"
)

func main() {
	base := flag.String("base", ".", "Base path containing config.toml")
	flag.Parse()

	// Bootstrap logger until the configured one is available.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*base)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := cfg.Finalize(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger = logging.New(&cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := build(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	if err := application.Start(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.Application, error) {
	builder := app.New(&app.Config{
		Server: cfg.Server,
		CORS:   cfg.CORS,
	}, logger)

	builder.RegisterAsyncService(mongo.ServiceName, mongo.Factory(&cfg.Services.Mongo, logger))

	if cfg.PostgresEnabled() {
		pg, err := postgres.Open(ctx, &cfg.Services.Postgres, logger)
		if err != nil {
			return nil, err
		}
		builder.RegisterService(postgres.ServiceName, pg)
	}

	noteHandler := notes.NewHandler(
		notes.New(builder.Services(), logger),
		logger,
		cfg.Pagination,
	)
	builder.AddGroup(noteHandler.Routes())

	return builder.Build()
}
