// Package lifecycle coordinates subsystem startup and shutdown.
// A Coordinator tracks readiness and runs registered shutdown hooks in
// reverse order, so dependencies close after their dependents.
package lifecycle

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// Hook performs cleanup for a single subsystem during shutdown.
type Hook func(ctx context.Context) error

// Coordinator tracks service readiness and owns the shutdown sequence.
type Coordinator struct {
	mu    sync.Mutex
	hooks []Hook
	ready atomic.Bool
	done  atomic.Bool
}

// New creates a Coordinator in the not-ready state.
func New() *Coordinator {
	return &Coordinator{}
}

// Ready reports whether startup has completed.
func (c *Coordinator) Ready() bool {
	return c.ready.Load()
}

// SetReady marks startup as complete. Readiness probes flip to healthy
// after this call.
func (c *Coordinator) SetReady() {
	c.ready.Store(true)
}

// OnShutdown registers a hook to run during Shutdown. Hooks run in
// reverse registration order.
func (c *Coordinator) OnShutdown(hook Hook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, hook)
}

// Shutdown marks the coordinator not ready and runs all registered hooks.
// Every hook runs even if earlier ones fail; errors are joined. Shutdown
// is idempotent.
func (c *Coordinator) Shutdown(ctx context.Context) error {
	if !c.done.CompareAndSwap(false, true) {
		return nil
	}
	c.ready.Store(false)

	c.mu.Lock()
	hooks := make([]Hook, len(c.hooks))
	copy(hooks, c.hooks)
	c.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
