package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/invopop/yaml"
	"github.com/sirupsen/logrus"

	"github.com/woozymasta/trucksim-map/internal/catalog"
	"github.com/woozymasta/trucksim-map/internal/config"
	"github.com/woozymasta/trucksim-map/internal/sector"
	"github.com/woozymasta/trucksim-map/internal/world"
)

// MapOptions are shared by the commands that decode a map.
type MapOptions struct {
	Config    string `short:"c" long:"config" description:"Config file (yaml/json)"`
	Catalogue string `short:"C" long:"catalogue" description:"Catalogue file (yaml/json)"`
	Workers   int    `short:"w" long:"workers" description:"Sectors decoded concurrently"`
	NoDefer   bool   `long:"no-defer" description:"Do not resolve links across sectors"`
	Verbose   bool   `short:"v" long:"verbose" description:"Verbose per-sector output"`
	Format    string `short:"f" long:"format" choice:"yaml" choice:"json" default:"yaml" description:"Output format"`
	Output    string `short:"o" long:"output" description:"Output file (default: stdout)"`
}

// settings merges the config file and the command line. Flags win.
func (o MapOptions) settings(dir string) (config.Config, error) {
	cfg := config.Default()
	if o.Config != "" {
		var err error
		if cfg, err = config.Load(o.Config); err != nil {
			return cfg, err
		}
	}

	if dir != "" {
		cfg.MapDir = dir
	}
	if o.Catalogue != "" {
		cfg.Catalogue = o.Catalogue
	}
	if o.Workers > 0 {
		cfg.Workers = o.Workers
	}
	if o.NoDefer {
		cfg.Defer = false
	}
	if o.Verbose {
		cfg.Log.Level = logrus.DebugLevel.String()
	}

	if cfg.MapDir == "" {
		return cfg, errors.New("no map directory given")
	}

	return cfg, cfg.Validate()
}

// newLogger returns a stderr logger at the configured level.
func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(cfg.Level())
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	return log
}

// loadCatalogue reads the catalogue when one is configured. The returned
// interface is nil otherwise.
func loadCatalogue(path string, log logrus.FieldLogger) (sector.Catalogue, error) {
	if path == "" {
		log.Warn("no catalogue, road looks and prefab definitions stay unresolved")
		return nil, nil
	}

	cat, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}

	looks, cities, companies, prefabs := cat.Counts()
	log.WithFields(logrus.Fields{
		"road_looks": looks,
		"cities":     cities,
		"companies":  companies,
		"prefabs":    prefabs,
	}).Debug("catalogue loaded")

	return cat, nil
}

// decodeMap loads and decodes every sector of cfg.MapDir.
func decodeMap(cfg config.Config, log logrus.FieldLogger) (*world.Mapper, error) {
	cat, err := loadCatalogue(cfg.Catalogue, log)
	if err != nil {
		return nil, err
	}

	m := world.NewMapper(world.Options{
		Catalogue:    cat,
		Log:          log,
		Workers:      cfg.Workers,
		SkipDeferred: !cfg.Defer,
	})

	if err := m.LoadDir(cfg.MapDir); err != nil {
		return nil, err
	}

	stats := m.Parse()
	log.WithFields(logrus.Fields{
		"sectors":    stats.Sectors,
		"nodes":      stats.Nodes,
		"items":      stats.Items,
		"unresolved": stats.Unresolved,
	}).Info("map decoded")

	return m, nil
}

// encodeOutput encodes v in format.
func encodeOutput(v any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "yaml":
		return yaml.Marshal(v)
	case "json":
		return json.MarshalIndent(v, "", "  ")
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// writeOutput encodes v and writes it to path, or to stdout when path is
// empty.
func writeOutput(v any, format, path string) error {
	out, err := encodeOutput(v, format)
	if err != nil {
		return err
	}

	if path == "" {
		_, err = os.Stdout.Write(out)
		return err
	}

	return os.WriteFile(path, out, 0o600)
}

// parseUID accepts decimal or 0x-prefixed hexadecimal identifiers.
func parseUID(s string) (uint64, error) {
	uid, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("bad uid %q: %w", s, err)
	}

	return uid, nil
}

// hexUID formats an identifier the way the logs print it.
func hexUID(uid uint64) string {
	return fmt.Sprintf("%016x", uid)
}
