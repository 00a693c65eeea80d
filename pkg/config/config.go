// Package config loads TOML configuration with support for
// environment-specific overlay files. Applications define their own root
// configuration struct composed of the per-package Config sections and load
// it once at process start; the result is read-only thereafter.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvServiceEnv specifies the environment name for configuration overlays.
	EnvServiceEnv = "SERVICE_ENV"
)

// Load reads and parses config.toml from dir and applies any
// environment-specific overlay selected by SERVICE_ENV. The configuration
// type supplies overlay semantics through its Merge method.
func Load[T any, PT interface {
	*T
	Merge(PT)
}](dir string) (PT, error) {
	cfg := PT(new(T))
	if err := read(filepath.Join(dir, BaseConfigFile), cfg); err != nil {
		return nil, err
	}

	if path := overlayPath(dir); path != "" {
		overlay := PT(new(T))
		if err := read(path, overlay); err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	return cfg, nil
}

func read(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	return nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvServiceEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
