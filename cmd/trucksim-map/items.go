package main

import (
	"fmt"

	"github.com/woozymasta/trucksim-map/internal/sector"
)

type itemsCmd struct {
	MapOptions

	Kind   string `short:"k" long:"kind" description:"Only items of this kind (road, prefab, city, ...)"`
	Sector string `short:"s" long:"sector" description:"Only items found in this sector (e.g. sec+0012-0003)"`

	Args struct {
		MapDir string `positional-arg-name:"DIR" description:"Directory with sector files (default: map_dir from config)"`
	} `positional-args:"true"`
}

// itemView is the printed form of an item.
type itemView struct {
	UID        string   `json:"uid"`
	Kind       string   `json:"kind"`
	Sector     string   `json:"sector"`
	Nodes      []string `json:"nodes"`
	Spots      []string `json:"spots,omitempty"`
	RoadLook   string   `json:"road_look,omitempty"`
	Prefab     string   `json:"prefab,omitempty"`
	City       string   `json:"city,omitempty"`
	Company    string   `json:"company,omitempty"`
	Color      string   `json:"color,omitempty"`
	Unresolved []string `json:"unresolved,omitempty"`
	Offset     int      `json:"offset"`
	BlockSize  int      `json:"block_size"`
	Stamps     int      `json:"stamps,omitempty"`
	Origin     uint8    `json:"origin,omitempty"`
	Hidden     bool     `json:"hidden,omitempty"`
}

// Execute decodes the map and lists the items.
func (c *itemsCmd) Execute(_ []string) error {
	var kind sector.Kind
	if c.Kind != "" {
		k, ok := sector.ParseKind(c.Kind)
		if !ok {
			return fmt.Errorf("unknown item kind: %s", c.Kind)
		}
		kind = k
	}

	cfg, err := c.settings(c.Args.MapDir)
	if err != nil {
		return err
	}

	m, err := decodeMap(cfg, newLogger(cfg))
	if err != nil {
		return err
	}

	var out []itemView
	for _, it := range m.Registry().Items(kind) {
		if c.Sector != "" && it.Sector != c.Sector {
			continue
		}
		out = append(out, viewItem(it))
	}

	return writeOutput(out, c.Format, c.Output)
}

func viewItem(it *sector.Item) itemView {
	v := itemView{
		UID:        hexUID(it.UID),
		Kind:       it.Kind.String(),
		Sector:     it.Sector,
		Offset:     it.Offset,
		BlockSize:  it.BlockSize,
		Stamps:     it.StampCount,
		Origin:     it.Origin,
		Hidden:     it.Hidden,
		City:       it.CityName,
		Company:    it.CompanyName,
		Unresolved: it.Unresolved,
	}

	for _, id := range it.NodeIDs {
		v.Nodes = append(v.Nodes, hexUID(id))
	}
	for _, id := range it.SpotNodeIDs {
		v.Spots = append(v.Spots, hexUID(id))
	}

	if it.Kind == sector.Road {
		style := it.RoadLook.Style()
		if it.Hidden {
			style = style.Dim()
		}
		v.Color = style.Fill.Hex()
	}
	if it.RoadLook != nil {
		v.RoadLook = it.RoadLook.Name
	}
	if it.Prefab != nil {
		v.Prefab = it.Prefab.Name
	}

	return v
}
