// Command trucksim-map decodes truck simulator map sectors and plans lane
// geometry through them.
package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/woozymasta/trucksim-map/internal/vars"
)

type rootCmd struct {
	Version versionCmd `command:"version" description:"Show version information"`
	Decode  decodeCmd  `command:"decode" description:"Decode a map directory and print statistics"`
	Items   itemsCmd   `command:"items" description:"List decoded items"`
	Route   routeCmd   `command:"route" description:"Plan lanes along a path of road and prefab items"`
	Catalog catalogCmd `command:"catalog" description:"Validate a catalogue file"`
}

func main() {
	var root rootCmd
	parser := flags.NewParser(&root, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

type versionCmd struct{}

// Execute prints the version information.
func (c *versionCmd) Execute(_ []string) error {
	vars.Print()
	return nil
}
