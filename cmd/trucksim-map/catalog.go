package main

import (
	"github.com/woozymasta/trucksim-map/internal/catalog"
)

type catalogCmd struct {
	Format string `short:"f" long:"format" choice:"yaml" choice:"json" default:"yaml" description:"Output format"`

	Args struct {
		Input string `positional-arg-name:"FILE" required:"true" description:"Catalogue file (yaml/json)"`
	} `positional-args:"true"`
}

type catalogReport struct {
	RoadLooks int `json:"road_looks"`
	Cities    int `json:"cities"`
	Companies int `json:"companies"`
	Prefabs   int `json:"prefabs"`
}

// Execute loads and validates the catalogue and prints its size.
func (c *catalogCmd) Execute(_ []string) error {
	cat, err := catalog.Load(c.Args.Input)
	if err != nil {
		return err
	}

	var r catalogReport
	r.RoadLooks, r.Cities, r.Companies, r.Prefabs = cat.Counts()

	return writeOutput(r, c.Format, "")
}
