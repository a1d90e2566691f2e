// Package world owns the global node and item maps built from many sector
// files and drives the multi-pass decode of a whole map.
package world

import (
	"sort"
	"sync"

	"github.com/woozymasta/trucksim-map/internal/sector"
)

// pending is a node link queued for cross-sector resolution.
type pending struct {
	node   *sector.Node
	itemID uint64
	dir    sector.Direction
}

// Registry is the single owner of decoded nodes and items. Inserts are
// serialized and keep the first record stored under an identifier.
type Registry struct {
	nodes map[uint64]*sector.Node
	items map[uint64]*sector.Item
	queue []pending
	mu    sync.RWMutex
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes: map[uint64]*sector.Node{},
		items: map[uint64]*sector.Item{},
	}
}

// RegisterNode stores n unless a node with the same UID exists. It returns
// the canonical node and whether n was inserted.
func (r *Registry) RegisterNode(n *sector.Node) (*sector.Node, bool) {
	if n == nil || n.UID == 0 {
		return n, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.nodes[n.UID]; ok {
		return prev, false
	}
	r.nodes[n.UID] = n

	return n, true
}

// Node returns the node with uid.
func (r *Registry) Node(uid uint64) (*sector.Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.nodes[uid]
	return n, ok
}

// RegisterItem stores it unless an item with the same UID exists. It returns
// the canonical item and whether it was inserted. Invalid items are refused.
func (r *Registry) RegisterItem(it *sector.Item) (*sector.Item, bool) {
	if it == nil || !it.Valid || it.UID == 0 {
		return it, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.items[it.UID]; ok {
		return prev, false
	}
	r.items[it.UID] = it

	return it, true
}

// Item returns the item with uid.
func (r *Registry) Item(uid uint64) (*sector.Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[uid]
	return it, ok
}

// Defer queues the link of node n in direction d to item itemID.
func (r *Registry) Defer(n *sector.Node, itemID uint64, d sector.Direction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queue = append(r.queue, pending{node: n, itemID: itemID, dir: d})
}

// Pending returns the number of queued links.
func (r *Registry) Pending() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.queue)
}

// takePending empties the queue and returns its contents.
func (r *Registry) takePending() []pending {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := r.queue
	r.queue = nil

	return q
}

// Counts returns the number of registered nodes and items.
func (r *Registry) Counts() (nodes, items int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.nodes), len(r.items)
}

// Items returns registered items of kind sorted by UID. Kind 0 returns all.
func (r *Registry) Items(kind sector.Kind) []*sector.Item {
	r.mu.RLock()
	out := make([]*sector.Item, 0, len(r.items))
	for _, it := range r.items {
		if kind == 0 || it.Kind == kind {
			out = append(out, it)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out
}

// Nodes returns all registered nodes sorted by UID.
func (r *Registry) Nodes() []*sector.Node {
	r.mu.RLock()
	out := make([]*sector.Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, n)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out
}
