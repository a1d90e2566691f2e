package sector_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/woozymasta/trucksim-map/internal/catalog"
	"github.com/woozymasta/trucksim-map/internal/prefab"
	"github.com/woozymasta/trucksim-map/internal/sector"
	"github.com/woozymasta/trucksim-map/internal/sector/sectortest"
)

func TestCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		uid  uint64
		want []int
	}{
		{name: "none", data: make([]byte, 32), uid: 7, want: nil},
		{name: "single", data: append(append(make([]byte, 3), 7, 0, 0, 0, 0, 0, 0, 0), 1), uid: 7, want: []int{3}},
		{name: "overlapping", data: bytes.Repeat([]byte{1}, 10), uid: 0x0101010101010101, want: []int{0, 1, 2}},
		{name: "short", data: []byte{7, 0, 0}, uid: 7, want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sector.Candidates(tt.data, tt.uid)
			if len(got) != len(tt.want) {
				t.Fatalf("candidates=%v want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("candidates=%v want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFindItemSkipsImplausibleCandidates(t *testing.T) {
	t.Parallel()

	const road = 0x0102030405060708

	b := sectortest.New()
	// the road uid is embedded in a city record first; the bytes before it
	// are not a kind tag
	b.Record(uint32(sector.City), 0x56, 81, func(rec []byte) {
		binary.LittleEndian.PutUint64(rec[61:], road)
	})
	off := b.Road(road, 1, 2, 0, 0)
	b.Node(sectortest.Node{UID: 1, Forward: road})
	b.Node(sectortest.Node{UID: 2, Backward: road})
	s, reg := load(t, b)

	it := s.FindItem(road, sector.Env{Nodes: reg})
	if it == nil {
		t.Fatalf("road not found")
	}
	if it.Kind != sector.Road || it.Offset != off {
		t.Fatalf("found %s at %d want road at %d", it.Kind, it.Offset, off)
	}
	if it.Sector != s.Name {
		t.Fatalf("sector=%q want %q", it.Sector, s.Name)
	}
	if again := s.FindItem(road, sector.Env{Nodes: reg}); again != it {
		t.Fatalf("second lookup decoded again")
	}
}

// A structurally valid record that merely contains the identifier shadows
// the real record when it comes first in the buffer.
func TestFindItemFirstValidWins(t *testing.T) {
	t.Parallel()

	const uid = 0xBEEF

	b := sectortest.New()
	decoy := b.Fixed(uint32(sector.FuelPump), uid, 73, map[int]uint64{57: 1})
	road := b.Road(uid, 1, 2, 0, 0)
	b.Node(sectortest.Node{UID: 1, Forward: uid})
	b.Node(sectortest.Node{UID: 2, Backward: uid})
	s, reg := load(t, b)

	it := s.FindItem(uid, sector.Env{Nodes: reg})
	if it == nil {
		t.Fatalf("nothing found")
	}
	if it.Offset != decoy || it.Kind != sector.FuelPump {
		t.Fatalf("found %s at %d, want the earlier fuel pump at %d (road at %d)", it.Kind, it.Offset, decoy, road)
	}
}

func TestFindItemIgnoresNodeTable(t *testing.T) {
	t.Parallel()

	b := sectortest.New()
	b.Node(sectortest.Node{UID: 1, Forward: 0x77})
	s, reg := load(t, b)

	if it := s.FindItem(0x77, sector.Env{Nodes: reg}); it != nil {
		t.Fatalf("item decoded from the node table: %s", it)
	}
}

func TestParseItems(t *testing.T) {
	t.Parallel()

	b := sectortest.New()
	b.Road(100, 1, 2, 3, 0)
	b.Prefab(200, 5, 0, 2, 4)
	b.Node(sectortest.Node{UID: 1, Forward: 100})
	b.Node(sectortest.Node{UID: 2, Backward: 100, Forward: 200})
	b.Node(sectortest.Node{UID: 4, Backward: 200, Forward: 999})
	s, reg := load(t, b)

	stats := s.ParseItems(reg, nil, true)
	if stats.Linked != 4 || stats.Deferred != 1 || stats.Missing != 0 {
		t.Fatalf("stats=%+v want 4 linked, 1 deferred", stats)
	}
	if reg.Pending() != 1 {
		t.Fatalf("pending=%d want 1", reg.Pending())
	}

	n2, _ := reg.Node(2)
	if n2.BackwardItem() == nil || n2.BackwardItem().Kind != sector.Road {
		t.Fatalf("node 2 backward=%v want road", n2.BackwardItem())
	}
	if n2.ForwardItem() == nil || n2.ForwardItem().Kind != sector.Prefab {
		t.Fatalf("node 2 forward=%v want prefab", n2.ForwardItem())
	}

	n1, _ := reg.Node(1)
	if n1.ForwardItem() != n2.BackwardItem() {
		t.Fatalf("road decoded twice")
	}

	again := s.ParseItems(reg, nil, false)
	if again.Linked != 0 || again.Missing != 1 {
		t.Fatalf("second pass=%+v want only the missing link", again)
	}
}

type emptyCatalogue struct{}

func (emptyCatalogue) RoadLook(uint32) (*catalog.RoadLook, bool) { return nil, false }
func (emptyCatalogue) CityName(uint64) (string, bool) { return "", false }
func (emptyCatalogue) CompanyName(uint64) (string, bool) { return "", false }
func (emptyCatalogue) Prefab(uint32) (*prefab.Definition, bool) { return nil, false }

func TestParseItemsRecordsUnresolved(t *testing.T) {
	t.Parallel()

	b := sectortest.New()
	b.City(100, 31, 1)
	b.Node(sectortest.Node{UID: 1, Forward: 100})
	s, reg := load(t, b)

	s.ParseItems(reg, emptyCatalogue{}, false)

	it, ok := reg.Item(100)
	if !ok {
		t.Fatalf("city not registered")
	}
	if it.CityName != "" || len(it.Unresolved) != 1 {
		t.Fatalf("name=%q unresolved=%v", it.CityName, it.Unresolved)
	}
}
