package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/pmaterna/apibase/pkg/services"
)

func newRegistry() *services.Registry {
	return services.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeStore struct {
	name   string
	closed *[]string
}

func (f *fakeStore) Close(ctx context.Context) error {
	*f.closed = append(*f.closed, f.name)
	return nil
}

func TestRegister_DuplicateName(t *testing.T) {
	r := newRegistry()

	if err := r.Register("db", "first"); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	err := r.Register("db", "second")
	if !errors.Is(err, services.ErrDuplicateService) {
		t.Errorf("Register() error = %v, want ErrDuplicateService", err)
	}

	err = r.RegisterAsync("db", func(ctx context.Context) (any, error) {
		return "third", nil
	})
	if !errors.Is(err, services.ErrDuplicateService) {
		t.Errorf("RegisterAsync() error = %v, want ErrDuplicateService", err)
	}
}

func TestRegister_EmptyName(t *testing.T) {
	r := newRegistry()

	if err := r.Register("", "anonymous"); err == nil {
		t.Error("Register() succeeded with empty name, want error")
	}
}

func TestStart_RunsFactoriesInRegistrationOrder(t *testing.T) {
	r := newRegistry()

	var started []string
	factory := func(name string) services.Factory {
		return func(ctx context.Context) (any, error) {
			started = append(started, name)
			return name, nil
		}
	}

	if err := r.RegisterAsync("cache", factory("cache")); err != nil {
		t.Fatalf("RegisterAsync() failed: %v", err)
	}
	if err := r.Register("clock", "clock"); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if err := r.RegisterAsync("store", factory("store")); err != nil {
		t.Fatalf("RegisterAsync() failed: %v", err)
	}

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if len(started) != 2 || started[0] != "cache" || started[1] != "store" {
		t.Errorf("factory order = %v, want [cache store]", started)
	}
}

func TestStart_FactoryErrorAborts(t *testing.T) {
	r := newRegistry()

	boom := errors.New("connection refused")
	if err := r.RegisterAsync("store", func(ctx context.Context) (any, error) {
		return nil, boom
	}); err != nil {
		t.Fatalf("RegisterAsync() failed: %v", err)
	}

	err := r.Start(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("Start() error = %v, want wrapped factory error", err)
	}
}

func TestGet_DeferredBeforeStart(t *testing.T) {
	r := newRegistry()

	if err := r.RegisterAsync("store", func(ctx context.Context) (any, error) {
		return "connected", nil
	}); err != nil {
		t.Fatalf("RegisterAsync() failed: %v", err)
	}

	if _, err := r.Get("store"); !errors.Is(err, services.ErrNotStarted) {
		t.Errorf("Get() before Start error = %v, want ErrNotStarted", err)
	}

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	instance, err := r.Get("store")
	if err != nil {
		t.Fatalf("Get() after Start failed: %v", err)
	}
	if instance != "connected" {
		t.Errorf("Get() = %v, want %q", instance, "connected")
	}
}

func TestGet_Unregistered(t *testing.T) {
	r := newRegistry()

	if _, err := r.Get("ghost"); err == nil {
		t.Error("Get() succeeded for unregistered name, want error")
	}
}

func TestResolve(t *testing.T) {
	r := newRegistry()

	closed := []string{}
	if err := r.Register("store", &fakeStore{name: "store", closed: &closed}); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	store, err := services.Resolve[*fakeStore](r, "store")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if store.name != "store" {
		t.Errorf("resolved name = %q, want %q", store.name, "store")
	}

	if _, err := services.Resolve[string](r, "store"); err == nil {
		t.Error("Resolve() succeeded with wrong type, want error")
	}
}

func TestClose_ReverseRegistrationOrder(t *testing.T) {
	r := newRegistry()

	closed := []string{}
	for _, name := range []string{"first", "second", "third"} {
		if err := r.Register(name, &fakeStore{name: name, closed: &closed}); err != nil {
			t.Fatalf("Register(%q) failed: %v", name, err)
		}
	}

	if err := r.Close(context.Background()); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	want := []string{"third", "second", "first"}
	if len(closed) != len(want) {
		t.Fatalf("closed = %v, want %v", closed, want)
	}
	for i := range want {
		if closed[i] != want[i] {
			t.Errorf("closed[%d] = %q, want %q", i, closed[i], want[i])
		}
	}
}

func TestNames(t *testing.T) {
	r := newRegistry()

	if err := r.Register("alpha", 1); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if err := r.Register("beta", 2); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("Names() = %v, want [alpha beta]", names)
	}
}
