// Package sector decodes the binary sector files of the truck simulator map:
// fixed-size node records stored backwards from the end of the file, and item
// records located heuristically by searching for their identifiers.
package sector

import (
	"errors"

	"github.com/cespare/xxhash"
)

const (
	// NodeSize is the size of one node record.
	NodeSize = 56

	// MinSize is the smallest buffer that is not treated as empty: the
	// header, the node counter and one node record.
	MinSize = headerSize + 4 + NodeSize

	headerSize      = 0x14
	nodeCountOffset = 0x10
)

// ErrNoFooter is returned when the node table terminator cannot be found.
// Items of such a sector are never decoded.
var ErrNoFooter = errors.New("sector footer not found")

// Sector is one world tile.
type Sector struct {
	Items        map[uint64]*Item // items found in this sector, by UID
	Name         string           // file base name (e.g. sec+0012-0003)
	Data         []byte           // raw file contents, never modified
	Nodes        []*Node          // node records in file order
	FooterOffset int              // where item data ends and the node table begins
	NoFooter     bool             // node table terminator missing, items skipped
	parsed       bool
}

// New wraps the raw bytes of a sector file.
func New(name string, data []byte) *Sector {
	return &Sector{
		Name:         name,
		Data:         data,
		Items:        map[uint64]*Item{},
		FooterOffset: -1,
	}
}

// Empty reports whether the buffer is too short to hold any node.
func (s *Sector) Empty() bool {
	return len(s.Data) < MinSize
}

// DeclaredNodes returns the node count stored in the file header.
func (s *Sector) DeclaredNodes() uint32 {
	if len(s.Data) < headerSize {
		return 0
	}

	return readU32(s.Data[nodeCountOffset:])
}

// Fingerprint returns a content hash of the sector bytes.
func (s *Sector) Fingerprint() uint64 {
	return xxhash.Sum64(s.Data)
}

// Usable reports whether item decoding may run on this sector.
func (s *Sector) Usable() bool {
	return s.parsed && !s.NoFooter && !s.Empty()
}
