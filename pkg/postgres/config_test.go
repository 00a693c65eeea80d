package postgres_test

import (
	"testing"
	"time"

	"github.com/pmaterna/apibase/pkg/postgres"
)

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := &postgres.Config{Name: "app", User: "app"}

	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Host != "localhost" {
		t.Errorf("Host = %q, want %q", cfg.Host, "localhost")
	}
	if cfg.Port != 5432 {
		t.Errorf("Port = %d, want 5432", cfg.Port)
	}
	if cfg.MaxOpenConns != 25 {
		t.Errorf("MaxOpenConns = %d, want 25", cfg.MaxOpenConns)
	}
	if got := cfg.ConnMaxLifetimeDuration(); got != 15*time.Minute {
		t.Errorf("ConnMaxLifetimeDuration() = %v, want 15m", got)
	}
}

func TestConfig_Finalize_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		cfg  postgres.Config
	}{
		{"missing name", postgres.Config{User: "app"}},
		{"missing user", postgres.Config{Name: "app"}},
		{"malformed lifetime", postgres.Config{Name: "app", User: "app", ConnMaxLifetime: "forever"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("Finalize() succeeded, want error")
			}
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := postgres.Config{
		Host:     "db.internal",
		Port:     5433,
		Name:     "app",
		User:     "svc",
		Password: "secret",
	}

	want := "host=db.internal port=5433 dbname=app user=svc password=secret sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestConfig_Merge(t *testing.T) {
	base := postgres.Config{Host: "localhost", Port: 5432, Name: "app", User: "app"}
	overlay := postgres.Config{Host: "db.staging", Password: "rotated"}

	base.Merge(&overlay)

	if base.Host != "db.staging" {
		t.Errorf("Host = %q, want %q", base.Host, "db.staging")
	}
	if base.Port != 5432 {
		t.Errorf("Port = %d, want base value preserved", base.Port)
	}
	if base.Password != "rotated" {
		t.Errorf("Password = %q, want %q", base.Password, "rotated")
	}
}
