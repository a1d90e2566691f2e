package main

import (
	"github.com/woozymasta/trucksim-map/internal/world"
)

type decodeCmd struct {
	MapOptions

	Args struct {
		MapDir string `positional-arg-name:"DIR" description:"Directory with sector files (default: map_dir from config)"`
	} `positional-args:"true"`
}

// decodeReport is the output of the decode command.
type decodeReport struct {
	MapDir string         `json:"map_dir"`
	Stats  world.Stats    `json:"stats"`
	Kinds  map[string]int `json:"kinds"`
}

// Execute decodes the map and prints the statistics.
func (c *decodeCmd) Execute(_ []string) error {
	cfg, err := c.settings(c.Args.MapDir)
	if err != nil {
		return err
	}

	m, err := decodeMap(cfg, newLogger(cfg))
	if err != nil {
		return err
	}

	report := decodeReport{
		MapDir: cfg.MapDir,
		Stats:  m.Stats(),
		Kinds:  map[string]int{},
	}
	for _, it := range m.Registry().Items(0) {
		report.Kinds[it.Kind.String()]++
	}

	return writeOutput(report, c.Format, c.Output)
}
