package sector

import "fmt"

// Kind is the tag stored in the first four bytes of an item record.
type Kind uint32

// Known item kinds.
const (
	Building    Kind = 0x01
	Road        Kind = 0x02
	Prefab      Kind = 0x03
	Model       Kind = 0x04
	Company     Kind = 0x05
	Service     Kind = 0x06
	CutPlane    Kind = 0x07
	Dunno       Kind = 0x08
	City        Kind = 0x0B
	MapOverlay  Kind = 0x11
	Ferry       Kind = 0x12
	Garage      Kind = 0x15
	FuelPump    Kind = 0x17
	Sign        Kind = 0x1C
	BusStop     Kind = 0x1D
	TrafficRule Kind = 0x1E
	Trigger     Kind = 0x22
)

// maxKindTag bounds the tags considered while scanning for items.
const maxKindTag = 0x40

var kindNames = map[Kind]string{
	Building:    "building",
	Road:        "road",
	Prefab:      "prefab",
	Model:       "model",
	Company:     "company",
	Service:     "service",
	CutPlane:    "cut_plane",
	Dunno:       "dunno",
	City:        "city",
	MapOverlay:  "map_overlay",
	Ferry:       "ferry",
	Garage:      "garage",
	FuelPump:    "fuel_pump",
	Sign:        "sign",
	BusStop:     "bus_stop",
	TrafficRule: "traffic_rule",
	Trigger:     "trigger",
}

// Known reports whether k is one of the supported kinds.
func (k Kind) Known() bool {
	_, ok := kindNames[k]
	return ok
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}

	return fmt.Sprintf("kind(0x%02x)", uint32(k))
}

// Kinds returns all supported kinds in tag order.
func Kinds() []Kind {
	return []Kind{
		Building, Road, Prefab, Model, Company, Service, CutPlane, Dunno, City,
		MapOverlay, Ferry, Garage, FuelPump, Sign, BusStop, TrafficRule, Trigger,
	}
}

// ParseKind resolves a kind by name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}

	return 0, false
}

// plausibleTag reports whether tag may start an item record.
func plausibleTag(tag uint32) bool {
	return tag > 0 && tag < maxKindTag
}
