package sector

// Registry is the global store of nodes and items shared by all sectors.
// Registration is insert-if-absent: the first record stored under an
// identifier stays canonical and is returned to later callers.
type Registry interface {
	NodeLookup
	RegisterNode(n *Node) (*Node, bool)
	Item(uid uint64) (*Item, bool)
	RegisterItem(it *Item) (*Item, bool)
	Defer(n *Node, itemID uint64, d Direction)
}

// ItemStats summarizes one item pass over a sector.
type ItemStats struct {
	Linked   int `json:"linked"`   // node links resolved
	Deferred int `json:"deferred"` // links queued for cross-sector resolution
	Missing  int `json:"missing"`  // links left unresolved without deferral
}

// RegisterNodes stores the sector's nodes in reg and swaps in the canonical
// instance for nodes another sector registered first. It returns the number
// of newly registered nodes.
func (s *Sector) RegisterNodes(reg Registry) int {
	added := 0
	for i, n := range s.Nodes {
		canonical, inserted := reg.RegisterNode(n)
		if inserted {
			added++
		}
		s.Nodes[i] = canonical
	}

	return added
}

// Resolve returns the item uid from the registry or, failing that, from this
// sector's bytes. Items found in the sector are registered.
func (s *Sector) Resolve(uid uint64, reg Registry, cat Catalogue) *Item {
	if uid == 0 {
		return nil
	}

	if it, ok := reg.Item(uid); ok {
		return it
	}

	it := s.FindItem(uid, Env{Nodes: reg, Catalogue: cat})
	if it == nil {
		return nil
	}

	canonical, _ := reg.RegisterItem(it)
	return canonical
}

// ParseItems resolves the forward and backward item of every node. Links
// that cannot be resolved in this sector are deferred to the registry when
// deferMissing is set. Sectors without a footer are skipped.
func (s *Sector) ParseItems(reg Registry, cat Catalogue, deferMissing bool) ItemStats {
	var stats ItemStats
	if !s.Usable() {
		return stats
	}

	for _, n := range s.Nodes {
		for _, d := range []Direction{Forward, Backward} {
			id := n.ItemID(d)
			if id == 0 || n.Item(d) != nil {
				continue
			}

			if it := s.Resolve(id, reg, cat); it != nil {
				n.Apply(d, it)
				stats.Linked++
				continue
			}

			if deferMissing {
				reg.Defer(n, id, d)
				stats.Deferred++
				continue
			}
			stats.Missing++
		}
	}

	return stats
}
