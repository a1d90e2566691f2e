package main

import (
	"errors"
	"fmt"

	"github.com/woozymasta/trucksim-map/internal/geom"
	"github.com/woozymasta/trucksim-map/internal/nav"
	"github.com/woozymasta/trucksim-map/internal/sector"
)

type routeCmd struct {
	MapOptions

	MapDir string `short:"m" long:"map" description:"Directory with sector files (default: map_dir from config)"`
	Limit  int    `short:"n" long:"limit" default:"1" description:"Solutions printed with high resolution points"`

	Args struct {
		Items []string `positional-arg-name:"UID" required:"1" description:"Road and prefab item ids in travel order (decimal or 0x hex)"`
	} `positional-args:"true"`
}

type routeReport struct {
	Segments  []segmentView  `json:"segments"`
	Solutions []solutionView `json:"solutions"`
}

type segmentView struct {
	Kind             string `json:"kind"`
	Entry            string `json:"entry"`
	Exit             string `json:"exit"`
	Options          int    `json:"options"`
	ReversedChain    bool   `json:"reversed_chain,omitempty"`
	ReversedElements bool   `json:"reversed_elements,omitempty"`
}

type solutionView struct {
	Lanes  []laneView   `json:"lanes"`
	Points []geom.Point `json:"points,omitempty"`
}

type laneView struct {
	Entry int  `json:"entry"`
	Exit  int  `json:"exit"`
	Left  bool `json:"left,omitempty"`
}

// Execute decodes the map, plans the lanes along the given items and prints
// the solutions.
func (c *routeCmd) Execute(_ []string) error {
	cfg, err := c.settings(c.MapDir)
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	m, err := decodeMap(cfg, log)
	if err != nil {
		return err
	}

	path := make([]*sector.Item, 0, len(c.Args.Items))
	for _, arg := range c.Args.Items {
		uid, err := parseUID(arg)
		if err != nil {
			return err
		}

		it, ok := m.Item(uid)
		if !ok {
			return fmt.Errorf("item %s not decoded", hexUID(uid))
		}
		path = append(path, it)
	}

	r, err := nav.Build(path, m.Registry(), nav.Config{
		Log:          log,
		RoadSteps:    cfg.Steps.Road,
		PrefabSteps:  cfg.Steps.Prefab,
		HighRes:      cfg.Steps.HighRes,
		Tolerance:    cfg.MatchTolerance,
		MaxSolutions: cfg.MaxSolutions,
	})
	if err != nil {
		return err
	}

	sols := r.Plan()
	if len(sols) == 0 {
		return errors.New("no continuous lane solution")
	}

	var report routeReport
	for _, s := range r.Segments {
		report.Segments = append(report.Segments, segmentView{
			Kind:             s.Kind.String(),
			Entry:            hexUID(s.EntryNode),
			Exit:             hexUID(s.ExitNode),
			Options:          len(s.Options),
			ReversedChain:    s.ReversedChain,
			ReversedElements: s.ReversedElements,
		})
	}

	for i, sol := range sols {
		var v solutionView
		for k, j := range sol {
			o := r.Segments[k].Options[j]
			v.Lanes = append(v.Lanes, laneView{Entry: o.EntryLane, Exit: o.ExitLane, Left: o.Left})
		}

		if i < c.Limit {
			if v.Points, err = r.HighResolution(sol); err != nil {
				return err
			}
		}

		report.Solutions = append(report.Solutions, v)
	}

	return writeOutput(report, c.Format, c.Output)
}
