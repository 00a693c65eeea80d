// Package app wires routing, configuration, and the named service registry
// into a runnable application. A Builder collects routes, services, and
// middleware; Build validates and freezes them; Start constructs every
// pending service before the HTTP listener accepts its first request.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pmaterna/apibase/pkg/lifecycle"
	"github.com/pmaterna/apibase/pkg/middleware"
	"github.com/pmaterna/apibase/pkg/routes"
	"github.com/pmaterna/apibase/pkg/server"
	"github.com/pmaterna/apibase/pkg/services"
)

// Config carries the application-level configuration sections.
type Config struct {
	Server server.Config         `toml:"server"`
	CORS   middleware.CORSConfig `toml:"cors"`
}

// Middleware wraps an http.Handler with cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Builder collects the parts of an application before Build freezes them.
// It replaces chainable registration: every method reports its error
// directly and Build refuses an invalid configuration.
type Builder struct {
	cfg      *Config
	logger   *slog.Logger
	registry *services.Registry
	table    routes.System
	chain    []Middleware
	buildErr error
}

// New creates a Builder for the given configuration and logger.
func New(cfg *Config, logger *slog.Logger) *Builder {
	return &Builder{
		cfg:      cfg,
		logger:   logger,
		registry: services.New(logger),
		table:    routes.New(logger),
	}
}

// RegisterService stores an eagerly constructed service under name.
// A duplicate name is a fatal configuration error surfaced by Build.
func (b *Builder) RegisterService(name string, instance any) {
	if err := b.registry.Register(name, instance); err != nil {
		b.fail(err)
	}
}

// RegisterAsyncService schedules factory to construct the service during
// Start, before the application serves requests.
func (b *Builder) RegisterAsyncService(name string, factory services.Factory) {
	if err := b.registry.RegisterAsync(name, factory); err != nil {
		b.fail(err)
	}
}

// AddRoute appends a route to the application route table.
func (b *Builder) AddRoute(route routes.Route) {
	b.table.RegisterRoute(route)
}

// AddGroup appends a route group to the application route table.
func (b *Builder) AddGroup(group routes.Group) {
	b.table.RegisterGroup(group)
}

// Use appends user middleware, applied inside the standard stack.
func (b *Builder) Use(mw Middleware) {
	b.chain = append(b.chain, mw)
}

// Services exposes the registry so handlers can resolve dependencies by name.
func (b *Builder) Services() *services.Registry {
	return b.registry
}

func (b *Builder) fail(err error) {
	if b.buildErr == nil {
		b.buildErr = err
	}
}

// Build validates the collected configuration, merges the default
// maintenance routes into the table, and assembles the handler stack.
func (b *Builder) Build() (*Application, error) {
	if b.buildErr != nil {
		return nil, b.buildErr
	}

	lc := lifecycle.New()
	b.registerMaintenanceRoutes(lc)

	handler := b.table.Build()
	for i := len(b.chain) - 1; i >= 0; i-- {
		handler = b.chain[i](handler)
	}
	for _, mw := range []Middleware{
		middleware.MaxBody(b.cfg.Server.MaxBodySizeBytes()),
		middleware.TrimSlash(),
		middleware.CORS(&b.cfg.CORS),
		middleware.Logger(b.logger),
		middleware.RequestID(),
		middleware.Recover(b.logger),
	} {
		handler = mw(handler)
	}

	app := &Application{
		logger:          b.logger,
		registry:        b.registry,
		lifecycle:       lc,
		handler:         handler,
		server:          server.New(&b.cfg.Server, handler, b.logger),
		shutdownTimeout: b.cfg.Server.ShutdownTimeoutDuration(),
	}

	lc.OnShutdown(b.registry.Close)
	return app, nil
}

// registerMaintenanceRoutes adds the fixed maintenance routes present in
// every application: liveness and readiness probes.
func (b *Builder) registerMaintenanceRoutes(lc *lifecycle.Coordinator) {
	b.table.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/healthz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		},
	})

	b.table.RegisterRoute(routes.Route{
		Method:  "GET",
		Pattern: "/readyz",
		Handler: func(w http.ResponseWriter, r *http.Request) {
			if !lc.Ready() {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("NOT READY"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("READY"))
		},
	})
}

// Application is a built, immutable application ready to serve.
type Application struct {
	logger          *slog.Logger
	registry        *services.Registry
	lifecycle       *lifecycle.Coordinator
	handler         http.Handler
	server          *server.Server
	shutdownTimeout time.Duration
}

// Services returns the service registry.
func (a *Application) Services() *services.Registry {
	return a.registry
}

// Handler returns the fully assembled handler stack.
func (a *Application) Handler() http.Handler {
	return a.handler
}

// Ready reports whether startup has completed.
func (a *Application) Ready() bool {
	return a.lifecycle.Ready()
}

// Start constructs all pending async services, then binds the HTTP listener
// and blocks until ctx is cancelled. Requests are never served before every
// service factory has completed.
func (a *Application) Start(ctx context.Context) error {
	if err := a.registry.Start(ctx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}

	a.lifecycle.SetReady()
	a.logger.Info("application ready", "services", a.registry.Names())

	serveErr := a.server.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	if err := a.lifecycle.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("shutdown error", "error", err)
	}

	return serveErr
}
