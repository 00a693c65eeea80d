// Package mongo provides the MongoDB service for the application registry.
// It wraps the official driver with configuration, a verified connection at
// startup, and sort-document translation for paginated queries.
package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pmaterna/apibase/pkg/pagination"
	"github.com/pmaterna/apibase/pkg/services"
)

// ServiceName is the registry name the scaffolding conventions use for the
// MongoDB connection.
const ServiceName = "mongo"

// Service holds a verified MongoDB client and its configured database.
type Service struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// Connect establishes and pings a MongoDB connection. The returned service
// is ready for use; applications register it asynchronously so the ping
// completes before requests are served.
func Connect(ctx context.Context, cfg *Config, logger *slog.Logger) (*Service, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnTimeoutDuration())
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeoutDuration())
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.Info("mongodb connected", "database", cfg.Database)

	return &Service{
		client: client,
		db:     client.Database(cfg.Database),
		logger: logger.With("system", "mongo"),
	}, nil
}

// Factory returns an async service factory for the registry.
func Factory(cfg *Config, logger *slog.Logger) services.Factory {
	return func(ctx context.Context) (any, error) {
		return Connect(ctx, cfg, logger)
	}
}

// Database returns the configured database handle.
func (s *Service) Database() *mongo.Database {
	return s.db
}

// Collection returns a collection handle in the configured database.
func (s *Service) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Close disconnects the underlying client.
func (s *Service) Close(ctx context.Context) error {
	s.logger.Info("mongodb disconnecting")
	return s.client.Disconnect(ctx)
}

// SortDocument translates a page request into a driver sort document.
// Requests without a sort field return nil so callers can skip the option.
func SortDocument(req pagination.PageRequest) bson.D {
	if req.Sort == "" {
		return nil
	}

	direction := 1
	if req.Order == pagination.OrderDesc {
		direction = -1
	}

	return bson.D{{Key: req.Sort, Value: direction}}
}
