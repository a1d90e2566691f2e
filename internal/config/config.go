// Package config holds the settings of the map tool.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/invopop/yaml"
	"github.com/sirupsen/logrus"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config is the tool configuration as read from yaml or json.
type Config struct {
	Log            Log     `json:"log"`               // diagnostics
	MapDir         string  `json:"map_dir,omitempty"`   // directory with sector files
	Catalogue      string  `json:"catalogue,omitempty"` // catalogue file (yaml/json)
	Steps          Steps   `json:"steps"`               // sample counts
	MatchTolerance float64 `json:"match_tolerance"`     // endpoint distance that still matches
	Workers        int     `json:"workers"`             // sectors decoded concurrently
	MaxSolutions   int     `json:"max_solutions"`       // cap on enumerated lane solutions
	Defer          bool    `json:"defer"`               // retry unresolved links in other sectors
}

// Steps are sample counts per element.
type Steps struct {
	Road    int `json:"road"`     // coarse road options
	Prefab  int `json:"prefab"`   // coarse prefab options
	HighRes int `json:"high_res"` // chosen solutions
}

// Log configures diagnostics.
type Log struct {
	Level string `json:"level"` // logrus level name
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:            Log{Level: "info"},
		Steps:          Steps{Road: 2, Prefab: 4, HighRes: 512},
		MatchTolerance: 2,
		Workers:        1,
		MaxSolutions:   64,
		Defer:          true,
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d < 1", ErrInvalid, c.Workers)
	case c.Steps.Road < 2 || c.Steps.Prefab < 2 || c.Steps.HighRes < 2:
		return fmt.Errorf("%w: steps must be at least 2", ErrInvalid)
	case c.MatchTolerance <= 0:
		return fmt.Errorf("%w: match tolerance %v", ErrInvalid, c.MatchTolerance)
	case c.MaxSolutions < 1:
		return fmt.Errorf("%w: max solutions %d < 1", ErrInvalid, c.MaxSolutions)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// Level returns the configured log level, info when unparsable.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}

	return lvl
}
