// Package services implements the named service registry: a mapping from
// service name to a singleton instance, built from user-supplied
// constructors. Synchronous services are registered as ready instances;
// asynchronous services are registered as factories that run to completion
// during Start, before the application begins serving.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Factory constructs a service asynchronously. Factories run during
// Registry.Start and must complete before the application serves requests.
type Factory func(ctx context.Context) (any, error)

// Closer is implemented by services that hold external resources.
// The registry closes such services in reverse registration order.
type Closer interface {
	Close(ctx context.Context) error
}

// ErrDuplicateService is returned when two services are registered under
// the same name. This is a fatal configuration error raised at build time.
var ErrDuplicateService = errors.New("duplicate service name")

// ErrNotStarted is returned when a deferred service is fetched before Start.
var ErrNotStarted = errors.New("service registry not started")

type entry struct {
	name     string
	instance any
	factory  Factory
}

// Registry holds named service singletons. It is mutable during application
// build and treated as immutable once Start has run.
type Registry struct {
	order   []string
	entries map[string]*entry
	logger  *slog.Logger
	started bool
}

// New creates an empty service registry.
func New(logger *slog.Logger) *Registry {
	return &Registry{
		entries: map[string]*entry{},
		logger:  logger,
	}
}

// Register stores an eagerly constructed service under name.
// Registering a name twice is an error.
func (r *Registry) Register(name string, instance any) error {
	return r.add(&entry{name: name, instance: instance})
}

// RegisterAsync schedules factory to construct the service during Start.
func (r *Registry) RegisterAsync(name string, factory Factory) error {
	return r.add(&entry{name: name, factory: factory})
}

func (r *Registry) add(e *entry) error {
	if e.name == "" {
		return errors.New("service name required")
	}
	if _, exists := r.entries[e.name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateService, e.name)
	}
	r.entries[e.name] = e
	r.order = append(r.order, e.name)
	return nil
}

// Start runs every pending factory in registration order. It returns the
// first factory error; the application must not serve requests if Start
// fails. Start is a no-op when called twice.
func (r *Registry) Start(ctx context.Context) error {
	if r.started {
		return nil
	}

	for _, name := range r.order {
		e := r.entries[name]
		if e.factory == nil {
			continue
		}

		instance, err := e.factory(ctx)
		if err != nil {
			return fmt.Errorf("start service %q: %w", name, err)
		}
		e.instance = instance
		e.factory = nil
		r.logger.Info("service started", "service", name)
	}

	r.started = true
	return nil
}

// Get returns the service registered under name. Deferred services are
// available only after Start.
func (r *Registry) Get(name string) (any, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("no service registered under %q", name)
	}
	if e.instance == nil {
		return nil, fmt.Errorf("service %q: %w", name, ErrNotStarted)
	}
	return e.instance, nil
}

// Names returns the registered service names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Close shuts down services implementing Closer in reverse registration
// order. Every closer runs; errors are joined.
func (r *Registry) Close(ctx context.Context) error {
	var errs []error
	for i := len(r.order) - 1; i >= 0; i-- {
		e := r.entries[r.order[i]]
		closer, ok := e.instance.(Closer)
		if !ok {
			continue
		}
		if err := closer.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close service %q: %w", e.name, err))
		} else {
			r.logger.Info("service closed", "service", e.name)
		}
	}
	return errors.Join(errs...)
}

// Resolve fetches the service registered under name and asserts its type.
func Resolve[T any](r *Registry, name string) (T, error) {
	var zero T

	instance, err := r.Get(name)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("service %q is %T, not %T", name, instance, zero)
	}
	return typed, nil
}
