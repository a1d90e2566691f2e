package world

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/woozymasta/trucksim-map/internal/secname"
	"github.com/woozymasta/trucksim-map/internal/sector"
)

// Options configures a Mapper.
type Options struct {
	Catalogue    sector.Catalogue   // lookup tables; nil leaves catalogue attributes empty
	Log          logrus.FieldLogger // diagnostics; defaults to the standard logger
	Workers      int                // sectors decoded concurrently; <= 1 is sequential
	SkipDeferred bool               // do not retry links across sectors
}

// Stats summarizes a decode run.
type Stats struct {
	Sectors      int `json:"sectors"`       // sector files accepted
	Duplicates   int `json:"duplicates"`    // files skipped with identical contents
	Empty        int `json:"empty"`         // sectors too short to hold nodes
	NoFooter     int `json:"no_footer"`     // sectors whose node table was not terminated
	Nodes        int `json:"nodes"`         // distinct nodes registered
	Items        int `json:"items"`         // distinct valid items registered
	Linked       int `json:"linked"`        // node links resolved in the owning sector
	Deferred     int `json:"deferred"`      // node links queued for other sectors
	ResolvedLate int `json:"resolved_late"` // deferred links resolved in another sector
	Unresolved   int `json:"unresolved"`    // links never resolved
	Lookups      int `json:"lookups"`       // catalogue identifiers that did not resolve
}

// Mapper decodes a set of sector files into one registry.
type Mapper struct {
	reg     *Registry
	log     logrus.FieldLogger
	seen    map[uint64]string
	home    map[uint64]*sector.Sector
	grid    map[*sector.Sector]secname.Parsed
	sectors []*sector.Sector
	stats   Stats
	opts    Options
}

// NewMapper returns a mapper with an empty registry.
func NewMapper(opts Options) *Mapper {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Mapper{
		reg:  NewRegistry(),
		log:  log,
		opts: opts,
		seen: map[uint64]string{},
		home: map[uint64]*sector.Sector{},
		grid: map[*sector.Sector]secname.Parsed{},
	}
}

// Registry returns the registry filled by Parse.
func (m *Mapper) Registry() *Registry { return m.reg }

// Sectors returns the accepted sectors in load order.
func (m *Mapper) Sectors() []*sector.Sector { return m.sectors }

// Stats returns the counters of the last Parse.
func (m *Mapper) Stats() Stats { return m.stats }

// Node returns the registered node with uid.
func (m *Mapper) Node(uid uint64) (*sector.Node, bool) { return m.reg.Node(uid) }

// Item returns the registered item with uid.
func (m *Mapper) Item(uid uint64) (*sector.Item, bool) { return m.reg.Item(uid) }

// Add queues a sector buffer for decoding. Buffers identical to one already
// added are skipped and Add reports false.
func (m *Mapper) Add(name string, data []byte) bool {
	s := sector.New(name, data)

	fp := s.Fingerprint()
	if prev, ok := m.seen[fp]; ok {
		m.stats.Duplicates++
		m.log.WithFields(logrus.Fields{"sector": name, "same_as": prev}).Debug("skip duplicate sector")
		return false
	}
	m.seen[fp] = name

	if p, ok := secname.ParseBase(name); ok {
		m.grid[s] = p
	}

	m.sectors = append(m.sectors, s)
	m.stats.Sectors++

	return true
}

// LoadDir adds every base sector file under dir in name order.
func (m *Mapper) LoadDir(dir string) error {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			m.log.WithField("path", path).Debug("skip: walk error")
			return nil
		}
		if d.IsDir() {
			return nil
		}

		p, ok := secname.ParseFile(path)
		if !ok || p.Kind != secname.Base {
			m.log.WithField("path", path).Debug("skip: not a base sector")
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		return fmt.Errorf("no sector files in %s", dir)
	}

	sort.Strings(paths)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		base := filepath.Base(path)
		m.Add(base[:len(base)-len(filepath.Ext(base))], data)
	}

	return nil
}

// Parse runs the three decode passes: node tables, items reachable from the
// nodes of their own sector, then the deferred cross-sector links.
func (m *Mapper) Parse() Stats {
	errs := make([]error, len(m.sectors))
	m.each(func(i int, s *sector.Sector) {
		errs[i] = s.ParseNodes()
	})

	for i, s := range m.sectors {
		switch {
		case errors.Is(errs[i], sector.ErrNoFooter):
			m.stats.NoFooter++
			m.log.WithFields(logrus.Fields{"sector": s.Name, "size": len(s.Data)}).Warn("node table footer not found, items skipped")
		case s.Empty():
			m.stats.Empty++
			m.log.WithField("sector", s.Name).Debug("empty sector")
		}
	}

	m.each(func(_ int, s *sector.Sector) {
		s.RegisterNodes(m.reg)
	})

	for _, s := range m.sectors {
		for _, n := range s.Nodes {
			if _, ok := m.home[n.UID]; !ok {
				m.home[n.UID] = s
			}
		}
	}

	results := make([]sector.ItemStats, len(m.sectors))
	m.each(func(i int, s *sector.Sector) {
		results[i] = s.ParseItems(m.reg, m.opts.Catalogue, !m.opts.SkipDeferred)
	})

	for i, r := range results {
		m.stats.Linked += r.Linked
		m.stats.Deferred += r.Deferred
		m.stats.Unresolved += r.Missing

		m.log.WithFields(logrus.Fields{
			"sector":   m.sectors[i].Name,
			"nodes":    len(m.sectors[i].Nodes),
			"linked":   r.Linked,
			"deferred": r.Deferred,
		}).Debug("sector decoded")
	}

	m.drain()

	for _, it := range m.reg.Items(0) {
		for _, ref := range it.Unresolved {
			m.stats.Lookups++
			m.log.WithFields(logrus.Fields{"uid": fmt.Sprintf("%016x", it.UID), "kind": it.Kind.String(), "ref": ref}).Warn("unresolved catalogue reference")
		}
	}

	m.stats.Nodes, m.stats.Items = m.reg.Counts()
	return m.stats
}

// drain retries every deferred link against all sectors, nearest first.
func (m *Mapper) drain() {
	for _, p := range m.reg.takePending() {
		if p.node.Item(p.dir) != nil {
			m.stats.ResolvedLate++
			continue
		}

		it := m.resolveAnywhere(p)
		if it == nil {
			m.stats.Unresolved++
			m.log.WithFields(logrus.Fields{
				"node":      fmt.Sprintf("%016x", p.node.UID),
				"item":      fmt.Sprintf("%016x", p.itemID),
				"direction": p.dir.String(),
			}).Warn("unresolved item reference")
			continue
		}

		p.node.Apply(p.dir, it)
		m.stats.ResolvedLate++
	}
}

func (m *Mapper) resolveAnywhere(p pending) *sector.Item {
	if it, ok := m.reg.Item(p.itemID); ok {
		return it
	}

	home := m.home[p.node.UID]
	for _, s := range m.byDistance(home) {
		if s == home {
			continue
		}
		if it := s.Resolve(p.itemID, m.reg, m.opts.Catalogue); it != nil {
			return it
		}
	}

	return nil
}

// byDistance orders sectors by grid distance from origin. Sectors without
// grid coordinates keep load order after the others.
func (m *Mapper) byDistance(origin *sector.Sector) []*sector.Sector {
	out := append([]*sector.Sector(nil), m.sectors...)

	from, ok := m.grid[origin]
	if !ok {
		return out
	}

	rank := func(s *sector.Sector) int {
		p, ok := m.grid[s]
		if !ok {
			return int(^uint(0) >> 1)
		}

		return secname.Distance(from, p)
	}

	sort.SliceStable(out, func(i, j int) bool { return rank(out[i]) < rank(out[j]) })
	return out
}

// each runs fn for every sector on the configured number of workers.
func (m *Mapper) each(fn func(i int, s *sector.Sector)) {
	workers := m.opts.Workers
	if workers <= 1 || len(m.sectors) < 2 {
		for i, s := range m.sectors {
			fn(i, s)
		}
		return
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i, m.sectors[i])
			}
		}()
	}

	for i := range m.sectors {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}
