package sector

import (
	"fmt"

	"github.com/woozymasta/trucksim-map/internal/catalog"
	"github.com/woozymasta/trucksim-map/internal/prefab"
)

// maxNodeRefs is the largest node count accepted in variable-length records.
const maxNodeRefs = 32

// itemUIDOffset is where the item identifier follows the kind tag.
const itemUIDOffset = 4

// NodeLookup resolves node identifiers to decoded nodes.
type NodeLookup interface {
	Node(uid uint64) (*Node, bool)
}

// Catalogue resolves catalogue identifiers stored in item records.
type Catalogue interface {
	RoadLook(id uint32) (*catalog.RoadLook, bool)
	CityName(id uint64) (string, bool)
	CompanyName(id uint64) (string, bool)
	Prefab(id uint32) (*prefab.Definition, bool)
}

// Env is what item decoding consults besides the raw bytes.
type Env struct {
	Nodes     NodeLookup // known nodes, required for validity
	Catalogue Catalogue  // optional; unresolved lookups leave attributes empty
	Sector    []*Node    // nodes of the owning sector, used by companies
}

// Item is a decoded item record.
type Item struct {
	RoadLook *catalog.RoadLook  // road cross-section (roads)
	Prefab   *prefab.Definition // interchange definition (prefabs)

	Sector      string   // owning sector name
	CityName    string   // resolved city name (cities)
	CompanyName string   // resolved company name (companies)
	Unresolved  []string // catalogue lookups that failed
	NodeIDs     []uint64 // mandatory node references, in record order
	SpotNodeIDs []uint64 // optional company spot nodes

	UID          uint64 // unique identifier
	CityID       uint64 // city token (cities)
	CompanyID    uint64 // company token (companies)
	PrefabLinkID uint64 // prefab item a company sits in (companies)
	Offset       int    // record offset in the sector file
	BlockSize    int    // bytes occupied by the record
	StampCount   int    // trailing 24-byte stamps (roads)
	Kind         Kind   // record kind
	RoadLookID   uint32 // catalogue id (roads)
	PrefabID     uint32 // catalogue id (prefabs)
	Origin       uint8  // definition node anchored on NodeIDs[0] (prefabs)
	Hidden       bool   // hidden from the UI map
	Valid        bool   // every check passed and every node reference resolved
}

// StartNodeID returns the first node reference, or 0.
func (it *Item) StartNodeID() uint64 {
	if len(it.NodeIDs) == 0 {
		return 0
	}

	return it.NodeIDs[0]
}

// EndNodeID returns the last node reference, or 0.
func (it *Item) EndNodeID() uint64 {
	if len(it.NodeIDs) == 0 {
		return 0
	}

	return it.NodeIDs[len(it.NodeIDs)-1]
}

// HasNode reports whether uid is one of the mandatory node references.
func (it *Item) HasNode(uid uint64) bool {
	return it.NodeIndex(uid) >= 0
}

// NodeIndex returns the position of uid among the node references, or -1.
func (it *Item) NodeIndex(uid uint64) int {
	for i, id := range it.NodeIDs {
		if id == uid {
			return i
		}
	}

	return -1
}

// String implements fmt.Stringer.
func (it *Item) String() string {
	return fmt.Sprintf("%s %016x @%s+%d", it.Kind, it.UID, it.Sector, it.Offset)
}

// DecodeItem decodes the record of kind at offset. It never panics on
// malformed input: any failed bound, count or reference check leaves Valid
// false. BlockSize is set whenever the counts were readable so a linear scan
// can skip the record.
func DecodeItem(data []byte, kind Kind, offset int, env Env) *Item {
	it := &Item{Kind: kind, Offset: offset}

	dec, ok := decoders[kind]
	if !ok {
		return it
	}

	v := newView(data, offset)
	if !v.ok {
		return it
	}

	if tag := v.u32(0); tag != uint32(kind) {
		return it
	}
	it.UID = v.u64(itemUIDOffset)

	if !dec(v, it, env) || !v.ok {
		return it
	}

	if it.BlockSize <= 0 || !v.fits(0, it.BlockSize) {
		return it
	}

	for _, id := range it.NodeIDs {
		if id == 0 || env.Nodes == nil {
			return it
		}
		if _, ok := env.Nodes.Node(id); !ok {
			return it
		}
	}

	it.Valid = true
	return it
}

// decoder fills kind specific fields. It returns false when a structural
// check fails.
type decoder func(v *view, it *Item, env Env) bool

var decoders = map[Kind]decoder{
	Road:        decodeRoad,
	Prefab:      decodePrefab,
	Company:     decodeCompany,
	City:        decodeCity,
	Building:    fixed(97, 73, 65),
	Sign:        fixed(153, 65),
	Model:       fixed(101, 81),
	MapOverlay:  fixed(73, 65),
	Ferry:       fixed(93, 73),
	BusStop:     fixed(81, 73),
	Garage:      fixed(85, 69),
	FuelPump:    fixed(73, 57),
	Service:     fixed(73, 57),
	CutPlane:    nodeList(61),
	TrafficRule: nodeList(73),
	Trigger:     nodeList(117),
	Dunno:       decodeDunno,
}
