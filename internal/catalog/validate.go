package catalog

import (
	"fmt"
	"strings"
)

// Validate checks a catalogue file for duplicate identifiers, negative lane
// counts and dangling prefab curve indices. It runs on Load to catch broken
// lookup tables before any sector is decoded.
func Validate(f File) error {
	looks := map[uint32]string{}
	for _, l := range f.RoadLooks {
		if prev, ok := looks[l.ID]; ok {
			return fmt.Errorf("duplicate road look id %d: %q and %q", l.ID, prev, l.Name)
		}
		looks[l.ID] = l.Name

		if l.LanesLeft < 0 || l.LanesRight < 0 {
			return fmt.Errorf("road look %q: negative lane count", l.Name)
		}
		if l.LaneWidth < 0 {
			return fmt.Errorf("road look %q: negative lane width", l.Name)
		}
	}

	if err := validateNames("city", f.Cities); err != nil {
		return err
	}
	if err := validateNames("company", f.Companies); err != nil {
		return err
	}

	prefabs := map[uint32]string{}
	for i := range f.Prefabs {
		d := &f.Prefabs[i]
		if prev, ok := prefabs[d.ID]; ok {
			return fmt.Errorf("duplicate prefab id %d: %q and %q", d.ID, prev, d.Name)
		}
		prefabs[d.ID] = d.Name

		if err := d.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func validateNames(kind string, names []Name) error {
	seen := map[uint64]string{}
	for _, n := range names {
		if strings.TrimSpace(n.Name) == "" {
			return fmt.Errorf("%s %d: empty name", kind, n.ID)
		}
		if prev, ok := seen[n.ID]; ok {
			return fmt.Errorf("duplicate %s id %d: %q and %q", kind, n.ID, prev, n.Name)
		}
		seen[n.ID] = n.Name
	}

	return nil
}
