// Package nav turns a path of decoded road and prefab items into drivable
// lane geometry. The path is grouped into segments, every segment gets its
// lane options, and options of neighbouring segments are matched by the
// distance between their endpoints.
package nav

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/woozymasta/trucksim-map/internal/geom"
	"github.com/woozymasta/trucksim-map/internal/prefab"
	"github.com/woozymasta/trucksim-map/internal/sector"
)

var (
	// ErrEmptyPath is returned for a path without items.
	ErrEmptyPath = errors.New("empty path")
	// ErrNotAdjacent is returned when consecutive path items share no node.
	ErrNotAdjacent = errors.New("path items are not adjacent")
	// ErrUnsupportedItem is returned for invalid items and kinds other than
	// roads and prefabs.
	ErrUnsupportedItem = errors.New("unsupported path item")
	// ErrUnknownNode is returned when a node of the path cannot be looked up.
	ErrUnknownNode = errors.New("unknown node")
)

// HighResolution is the default sample count per element of a chosen solution.
const HighResolution = 512

// Config tunes option generation and matching.
type Config struct {
	Log          logrus.FieldLogger // diagnostics; defaults to the standard logger
	RoadSteps    int                // samples per road element for coarse options
	PrefabSteps  int                // samples per prefab curve for coarse options
	HighRes      int                // samples per element for chosen solutions
	Tolerance    float64            // largest endpoint distance that still matches
	MaxSolutions int                // cap on enumerated solutions
}

// DefaultConfig returns the settings used when a field is left zero.
func DefaultConfig() Config {
	return Config{
		RoadSteps:    2,
		PrefabSteps:  4,
		HighRes:      HighResolution,
		Tolerance:    2,
		MaxSolutions: 64,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Log == nil {
		c.Log = logrus.StandardLogger()
	}
	if c.RoadSteps < 2 {
		c.RoadSteps = def.RoadSteps
	}
	if c.PrefabSteps < 2 {
		c.PrefabSteps = def.PrefabSteps
	}
	if c.HighRes < 2 {
		c.HighRes = def.HighRes
	}
	if c.Tolerance <= 0 {
		c.Tolerance = def.Tolerance
	}
	if c.MaxSolutions <= 0 {
		c.MaxSolutions = def.MaxSolutions
	}

	return c
}

// SegmentKind tells road runs from interchanges.
type SegmentKind int

const (
	// RoadSegment is a chain of road items.
	RoadSegment SegmentKind = iota
	// PrefabSegment is one prefab item.
	PrefabSegment
)

// String implements fmt.Stringer.
func (k SegmentKind) String() string {
	if k == PrefabSegment {
		return "prefab"
	}

	return "road"
}

// Element is one road item of a chain.
type Element struct {
	Item     *sector.Item
	Reversed bool // travelled from its end node to its start node
}

// Segment is one hop of the path between two boundary nodes.
type Segment struct {
	Prefab   *sector.Item // interchange item (prefab segments)
	Elements []Element    // road items in travel order (road segments)
	Options  []*Option    // lane options; after Match only the matched ones

	EntryNode uint64 // boundary node entered through; 0 when the path starts inside a prefab
	ExitNode  uint64 // boundary node left through; 0 when the path ends inside a prefab

	Kind SegmentKind

	// ReversedChain is set when the path lists the road chain from its far
	// end, so the elements were reordered to follow the travel direction.
	ReversedChain bool
	// ReversedElements is set when every road item of the chain runs against
	// the travel direction.
	ReversedElements bool
}

// String implements fmt.Stringer.
func (s *Segment) String() string {
	return fmt.Sprintf("%s %016x->%016x (%d options)", s.Kind, s.EntryNode, s.ExitNode, len(s.Options))
}

// touches reports whether a neighbour may attach to the segment at uid.
func (s *Segment) touches(uid uint64) bool {
	if s.Kind == PrefabSegment {
		return s.Prefab.HasNode(uid)
	}

	return uid == s.EntryNode || uid == s.ExitNode
}

// Option is one lane choice through a segment.
type Option struct {
	Route  *prefab.Route // curve chain (prefab options)
	Points []geom.Point  // coarse centerline in travel order

	prev []int // matched options of the previous segment
	next []int // matched options of the next segment

	EntryLane int  // lane entered on; -1 until matched for prefab options
	ExitLane  int  // lane left on; -1 until matched for prefab options
	Left      bool // lane belongs to the left-hand group of the road look
	Valid     bool // both ends matched to a neighbour or to the path end

	entryMatched bool
	exitMatched  bool
}

// Entry returns the first point of the option.
func (o *Option) Entry() geom.Point {
	if len(o.Points) == 0 {
		return geom.Point{}
	}

	return o.Points[0]
}

// Exit returns the last point of the option.
func (o *Option) Exit() geom.Point {
	if len(o.Points) == 0 {
		return geom.Point{}
	}

	return o.Points[len(o.Points)-1]
}

// Route is a path grouped into segments.
type Route struct {
	nodes    sector.NodeLookup
	Segments []*Segment
	cfg      Config
}

// Build groups path into segments and orients them. Consecutive road items
// form one chain; every prefab item is a segment of its own.
func Build(path []*sector.Item, nodes sector.NodeLookup, cfg Config) (*Route, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}

	r := &Route{nodes: nodes, cfg: cfg.withDefaults()}

	var chain []*sector.Item
	flush := func() {
		if len(chain) > 0 {
			r.Segments = append(r.Segments, &Segment{Kind: RoadSegment, Elements: elements(chain)})
			chain = nil
		}
	}

	for i, it := range path {
		if it == nil || !it.Valid {
			return nil, fmt.Errorf("path item %d: %w", i, ErrUnsupportedItem)
		}

		switch it.Kind {
		case sector.Road:
			chain = append(chain, it)
		case sector.Prefab:
			flush()
			r.Segments = append(r.Segments, &Segment{Kind: PrefabSegment, Prefab: it})
		default:
			return nil, fmt.Errorf("path item %d is a %s: %w", i, it.Kind, ErrUnsupportedItem)
		}
	}
	flush()

	for i, s := range r.Segments {
		if s.Kind == RoadSegment {
			if err := r.orientChain(i); err != nil {
				return nil, err
			}
		}
	}

	for i, s := range r.Segments {
		if s.Kind == PrefabSegment {
			if err := r.attachPrefab(i); err != nil {
				return nil, err
			}
		}
	}

	if err := r.checkNodes(); err != nil {
		return nil, err
	}

	return r, nil
}

func elements(items []*sector.Item) []Element {
	out := make([]Element, len(items))
	for i, it := range items {
		out[i] = Element{Item: it}
	}

	return out
}

func (r *Route) neighbours(i int) (prev, next *Segment) {
	if i > 0 {
		prev = r.Segments[i-1]
	}
	if i+1 < len(r.Segments) {
		next = r.Segments[i+1]
	}

	return prev, next
}

// orientChain orders the road chain of segment i in travel order and sets
// its boundary nodes and orientation flags.
func (r *Route) orientChain(i int) error {
	s := r.Segments[i]
	first, last, err := chainEnds(s.Elements)
	if err != nil {
		return err
	}

	prev, next := r.neighbours(i)
	reversed := false
	switch {
	case prev != nil && prev.touches(first):
	case prev != nil && prev.touches(last):
		reversed = true
	case prev != nil:
		return fmt.Errorf("road %016x does not attach to %s: %w", s.Elements[0].Item.UID, prev.Kind, ErrNotAdjacent)
	case next != nil && next.touches(last):
	case next != nil && next.touches(first):
		reversed = true
	case next != nil:
		return fmt.Errorf("road %016x does not attach to %s: %w", s.Elements[0].Item.UID, next.Kind, ErrNotAdjacent)
	}

	if reversed {
		for lo, hi := 0, len(s.Elements)-1; lo < hi; lo, hi = lo+1, hi-1 {
			s.Elements[lo], s.Elements[hi] = s.Elements[hi], s.Elements[lo]
		}
		first, last = last, first
	}

	if prev != nil && next != nil && !next.touches(last) {
		return fmt.Errorf("road chain ending at %016x does not attach to %s: %w", last, next.Kind, ErrNotAdjacent)
	}

	cur := first
	all := true
	for k := range s.Elements {
		e := &s.Elements[k]
		switch cur {
		case e.Item.StartNodeID():
			cur = e.Item.EndNodeID()
		case e.Item.EndNodeID():
			e.Reversed = true
			cur = e.Item.StartNodeID()
		default:
			return fmt.Errorf("road %016x: %w", e.Item.UID, ErrNotAdjacent)
		}
		all = all && e.Reversed
	}

	s.EntryNode, s.ExitNode = first, last
	s.ReversedChain = reversed
	s.ReversedElements = all

	return nil
}

// chainEnds returns the outer nodes of a chain listed in path order.
func chainEnds(es []Element) (first, last uint64, err error) {
	head := es[0].Item
	if len(es) == 1 {
		return head.StartNodeID(), head.EndNodeID(), nil
	}

	for k := 1; k < len(es); k++ {
		a, b := es[k-1].Item, es[k].Item
		if !b.HasNode(a.StartNodeID()) && !b.HasNode(a.EndNodeID()) {
			return 0, 0, fmt.Errorf("road %016x and %016x: %w", a.UID, b.UID, ErrNotAdjacent)
		}
	}

	first = head.StartNodeID()
	if es[1].Item.HasNode(first) {
		first = head.EndNodeID()
	}

	tail := es[len(es)-1].Item
	last = tail.EndNodeID()
	if es[len(es)-2].Item.HasNode(last) {
		last = tail.StartNodeID()
	}

	return first, last, nil
}

// attachPrefab sets the boundary nodes of prefab segment i from its
// neighbours.
func (r *Route) attachPrefab(i int) error {
	s := r.Segments[i]
	prev, next := r.neighbours(i)

	if prev != nil {
		id, ok := shared(prev, s)
		if !ok {
			return fmt.Errorf("prefab %016x: entry: %w", s.Prefab.UID, ErrNotAdjacent)
		}
		s.EntryNode = id
	}

	if next != nil {
		id, ok := shared(s, next)
		if !ok {
			return fmt.Errorf("prefab %016x: exit: %w", s.Prefab.UID, ErrNotAdjacent)
		}
		s.ExitNode = id
	}

	return nil
}

// shared returns the node where a hands over to b.
func shared(a, b *Segment) (uint64, bool) {
	switch {
	case a.Kind == RoadSegment:
		return a.ExitNode, b.touches(a.ExitNode)
	case b.Kind == RoadSegment:
		return b.EntryNode, a.touches(b.EntryNode)
	}

	for _, id := range a.Prefab.NodeIDs {
		if b.Prefab.HasNode(id) {
			return id, true
		}
	}

	return 0, false
}

// checkNodes verifies that every node the geometry needs can be looked up.
func (r *Route) checkNodes() error {
	if r.nodes == nil {
		return ErrUnknownNode
	}

	for _, s := range r.Segments {
		var ids []uint64
		if s.Kind == PrefabSegment {
			ids = []uint64{s.Prefab.StartNodeID()}
		}
		for _, e := range s.Elements {
			ids = append(ids, e.Item.StartNodeID(), e.Item.EndNodeID())
		}

		for _, id := range ids {
			if _, ok := r.nodes.Node(id); !ok {
				return fmt.Errorf("node %016x: %w", id, ErrUnknownNode)
			}
		}
	}

	return nil
}

// position returns the world position of a node checked by Build.
func (r *Route) position(uid uint64) geom.Point {
	n, _ := r.nodes.Node(uid)
	if n == nil {
		return geom.Point{}
	}

	return n.Position
}
