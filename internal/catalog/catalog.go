// Package catalog holds the lookup tables that translate numeric identifiers
// found in sector files into road cross-sections, city and company names and
// prefab definitions.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/invopop/yaml"

	"github.com/woozymasta/trucksim-map/internal/prefab"
)

// DefaultLaneWidth is used when a road look does not declare a lane width.
const DefaultLaneWidth = 4.5

// ErrUnknownPrefab is returned when a prefab definition is not in the catalogue.
var ErrUnknownPrefab = errors.New("unknown prefab definition")

// RoadLook is a road cross-section.
type RoadLook struct {
	Name       string  `json:"name"`                 // look name (e.g. road_2_lanes)
	LaneWidth  float64 `json:"lane_width,omitempty"` // width of one lane (default 4.5)
	Offset     float64 `json:"offset,omitempty"`     // distance from the centerline to the first lane edge
	SizeLeft   float64 `json:"size_left,omitempty"`  // total width left of the centerline
	SizeRight  float64 `json:"size_right,omitempty"` // total width right of the centerline
	LanesLeft  int     `json:"lanes_left"`           // lanes running against the road direction
	LanesRight int     `json:"lanes_right"`          // lanes running along the road direction
	ID         uint32  `json:"id"`                   // identifier referenced by road items
}

// Width returns the lane width, falling back to DefaultLaneWidth.
func (l *RoadLook) Width() float64 {
	if l == nil || l.LaneWidth <= 0 {
		return DefaultLaneWidth
	}

	return l.LaneWidth
}

// Lanes returns the lane count of one side.
func (l *RoadLook) Lanes(left bool) int {
	if l == nil {
		return 0
	}
	if left {
		return l.LanesLeft
	}

	return l.LanesRight
}

// Name is a named entity keyed by a 64-bit token.
type Name struct {
	Name string `json:"name"`
	ID   uint64 `json:"id"`
}

// File is the serialized catalogue.
type File struct {
	RoadLooks []RoadLook          `json:"road_looks"`
	Cities    []Name              `json:"cities,omitempty"`
	Companies []Name              `json:"companies,omitempty"`
	Prefabs   []prefab.Definition `json:"prefabs"`
}

// Static is an in-memory catalogue.
type Static struct {
	roadLooks map[uint32]*RoadLook
	cities    map[uint64]string
	companies map[uint64]string
	prefabs   map[uint32]*prefab.Definition
}

// New indexes f. It does not validate it; see Validate.
func New(f File) *Static {
	s := &Static{
		roadLooks: make(map[uint32]*RoadLook, len(f.RoadLooks)),
		cities:    make(map[uint64]string, len(f.Cities)),
		companies: make(map[uint64]string, len(f.Companies)),
		prefabs:   make(map[uint32]*prefab.Definition, len(f.Prefabs)),
	}

	for i := range f.RoadLooks {
		s.roadLooks[f.RoadLooks[i].ID] = &f.RoadLooks[i]
	}
	for _, c := range f.Cities {
		s.cities[c.ID] = c.Name
	}
	for _, c := range f.Companies {
		s.companies[c.ID] = c.Name
	}
	for i := range f.Prefabs {
		s.prefabs[f.Prefabs[i].ID] = &f.Prefabs[i]
	}

	return s
}

// Load reads a yaml or json catalogue file.
func Load(path string) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalogue %s: %w", path, err)
	}

	if err := Validate(f); err != nil {
		return nil, err
	}

	return New(f), nil
}

// RoadLook returns the road look with id.
func (s *Static) RoadLook(id uint32) (*RoadLook, bool) {
	l, ok := s.roadLooks[id]
	return l, ok
}

// CityName returns the name of the city with id.
func (s *Static) CityName(id uint64) (string, bool) {
	n, ok := s.cities[id]
	return n, ok
}

// CompanyName returns the name of the company with id.
func (s *Static) CompanyName(id uint64) (string, bool) {
	n, ok := s.companies[id]
	return n, ok
}

// Prefab returns the prefab definition with id.
func (s *Static) Prefab(id uint32) (*prefab.Definition, bool) {
	d, ok := s.prefabs[id]
	return d, ok
}

// MustPrefab returns the prefab definition with id or ErrUnknownPrefab.
func (s *Static) MustPrefab(id uint32) (*prefab.Definition, error) {
	d, ok := s.prefabs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPrefab, id)
	}

	return d, nil
}

// Counts returns the number of road looks, cities, companies and prefabs.
func (s *Static) Counts() (roadLooks, cities, companies, prefabs int) {
	return len(s.roadLooks), len(s.cities), len(s.companies), len(s.prefabs)
}
