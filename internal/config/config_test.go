package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pmaterna/apibase/internal/config"
	"github.com/pmaterna/apibase/pkg/logging"
)

const baseConfig = `
[server]
port = 8081

[logging]
level = "debug"

[pagination]
default_limit = 10

[services.mongo]
uri = "mongodb://localhost:27017"
database = "app"
`

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadAndFinalize(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Server.Port != 8081 {
		t.Errorf("Server.Port = %d, want 8081", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
	if cfg.Logging.Level != logging.LevelDebug {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Pagination.DefaultLimit != 10 {
		t.Errorf("Pagination.DefaultLimit = %d, want 10", cfg.Pagination.DefaultLimit)
	}
	if cfg.Pagination.MaxLimit != 100 {
		t.Errorf("Pagination.MaxLimit = %d, want default 100", cfg.Pagination.MaxLimit)
	}
	if cfg.Services.Mongo.Database != "app" {
		t.Errorf("Mongo.Database = %q, want %q", cfg.Services.Mongo.Database, "app")
	}
	if cfg.PostgresEnabled() {
		t.Error("PostgresEnabled() = true with no postgres section")
	}
}

func TestLoad_OverlayBySERVICEEnv(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", `
[server]
port = 9090

[services.mongo]
database = "app_staging"
`)

	t.Setenv("SERVICE_ENV", "staging")

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090 (overlay)", cfg.Server.Port)
	}
	if cfg.Services.Mongo.Database != "app_staging" {
		t.Errorf("Mongo.Database = %q, want overlay value", cfg.Services.Mongo.Database)
	}
	if cfg.Services.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("Mongo.URI = %q, want base value preserved", cfg.Services.Mongo.URI)
	}
}

func TestPostgresEnabled(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig+`
[services.postgres]
name = "app"
user = "svc"
`)

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !cfg.PostgresEnabled() {
		t.Error("PostgresEnabled() = false with configured section")
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}
	if cfg.Services.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port = %d, want default 5432", cfg.Services.Postgres.Port)
	}
}

func TestFinalize_InvalidSection(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", `
[logging]
level = "verbose"

[services.mongo]
database = "app"
`)

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := cfg.Finalize(); err == nil {
		t.Error("Finalize() succeeded with invalid log level, want error")
	}
}
