package pagination_test

import (
	"os"
	"testing"

	"github.com/pmaterna/apibase/pkg/pagination"
)

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := &pagination.Config{}

	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.DefaultLimit != 20 {
		t.Errorf("DefaultLimit = %d, want 20", cfg.DefaultLimit)
	}
	if cfg.MaxLimit != 100 {
		t.Errorf("MaxLimit = %d, want 100", cfg.MaxLimit)
	}
}

func TestConfig_Finalize_EnvOverrides(t *testing.T) {
	os.Setenv("TEST_PAGINATION_DEFAULT_LIMIT", "15")
	os.Setenv("TEST_PAGINATION_MAX_LIMIT", "75")
	defer func() {
		os.Unsetenv("TEST_PAGINATION_DEFAULT_LIMIT")
		os.Unsetenv("TEST_PAGINATION_MAX_LIMIT")
	}()

	cfg := &pagination.Config{}
	env := &pagination.Env{
		DefaultLimit: "TEST_PAGINATION_DEFAULT_LIMIT",
		MaxLimit:     "TEST_PAGINATION_MAX_LIMIT",
	}

	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.DefaultLimit != 15 {
		t.Errorf("DefaultLimit = %d, want 15 (env override)", cfg.DefaultLimit)
	}
	if cfg.MaxLimit != 75 {
		t.Errorf("MaxLimit = %d, want 75 (env override)", cfg.MaxLimit)
	}
}

func TestConfig_Finalize_DefaultExceedsMax(t *testing.T) {
	cfg := &pagination.Config{DefaultLimit: 50, MaxLimit: 25}

	if err := cfg.Finalize(nil); err == nil {
		t.Error("Finalize() succeeded, want error")
	}
}

func TestConfig_Merge(t *testing.T) {
	tests := []struct {
		name             string
		base             pagination.Config
		overlay          pagination.Config
		wantDefaultLimit int
		wantMaxLimit     int
	}{
		{
			name:             "overlay overrides base",
			base:             pagination.Config{DefaultLimit: 20, MaxLimit: 100},
			overlay:          pagination.Config{DefaultLimit: 10, MaxLimit: 50},
			wantDefaultLimit: 10,
			wantMaxLimit:     50,
		},
		{
			name:             "zero values do not override",
			base:             pagination.Config{DefaultLimit: 20, MaxLimit: 100},
			overlay:          pagination.Config{},
			wantDefaultLimit: 20,
			wantMaxLimit:     100,
		},
		{
			name:             "partial overlay",
			base:             pagination.Config{DefaultLimit: 20, MaxLimit: 100},
			overlay:          pagination.Config{MaxLimit: 200},
			wantDefaultLimit: 20,
			wantMaxLimit:     200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.base.Merge(&tt.overlay)

			if tt.base.DefaultLimit != tt.wantDefaultLimit {
				t.Errorf("DefaultLimit = %d, want %d", tt.base.DefaultLimit, tt.wantDefaultLimit)
			}
			if tt.base.MaxLimit != tt.wantMaxLimit {
				t.Errorf("MaxLimit = %d, want %d", tt.base.MaxLimit, tt.wantMaxLimit)
			}
		})
	}
}
