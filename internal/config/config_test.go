package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestDefaultValid(t *testing.T) {
	t.Parallel()

	if err := Default().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "map.yaml")
	raw := []byte(`map_dir: /data/map
workers: 4
steps:
  prefab: 16
log:
  level: debug
defer: false
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.MapDir != "/data/map" || cfg.Workers != 4 || cfg.Defer {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.Steps.Prefab != 16 {
		t.Fatalf("prefab steps=%d want 16", cfg.Steps.Prefab)
	}
	if cfg.Steps.Road != 2 || cfg.Steps.HighRes != 512 {
		t.Fatalf("defaults lost: %+v", cfg.Steps)
	}
	if cfg.MatchTolerance != 2 || cfg.MaxSolutions != 64 {
		t.Fatalf("defaults lost: tol=%v max=%d", cfg.MatchTolerance, cfg.MaxSolutions)
	}
	if cfg.Level() != logrus.DebugLevel {
		t.Fatalf("level=%v want debug", cfg.Level())
	}
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		edit func(c *Config)
	}{
		{name: "workers", edit: func(c *Config) { c.Workers = 0 }},
		{name: "road_steps", edit: func(c *Config) { c.Steps.Road = 1 }},
		{name: "high_res", edit: func(c *Config) { c.Steps.HighRes = 0 }},
		{name: "tolerance", edit: func(c *Config) { c.MatchTolerance = 0 }},
		{name: "solutions", edit: func(c *Config) { c.MaxSolutions = 0 }},
		{name: "level", edit: func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.edit(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("err=%v want ErrInvalid", err)
			}
		})
	}
}

func TestLevelFallback(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Log.Level = "?"
	if cfg.Level() != logrus.InfoLevel {
		t.Fatalf("level=%v want info", cfg.Level())
	}
}
