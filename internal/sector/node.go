package sector

import (
	"fmt"
	"sync/atomic"

	"github.com/woozymasta/trucksim-map/internal/geom"
)

// Direction selects which of a node's two item links is meant.
type Direction int

const (
	// Forward is the item owning the node when travelling forward.
	Forward Direction = iota
	// Backward is the item owning the node when travelling backward.
	Backward
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}

	return "forward"
}

// Node is a decoded node record.
type Node struct {
	forward  atomic.Pointer[Item]
	backward atomic.Pointer[Item]

	Position       geom.Point // world position and yaw
	UID            uint64     // unique identifier, never 0
	ForwardItemID  uint64     // item owning this node in forward direction
	BackwardItemID uint64     // item owning this node in backward direction
	Offset         int        // record offset in the sector file
}

// Node record field offsets.
const (
	nodeUID      = 0
	nodeX        = 8
	nodeY        = 12
	nodeZ        = 16
	nodeRotX     = 20
	nodeRotZ     = 28
	nodeBackward = 36
	nodeForward  = 44
)

// decodeNode decodes the node record at off. The caller guarantees that
// NodeSize bytes are available.
func decodeNode(data []byte, off int) *Node {
	b := data[off : off+NodeSize]

	rx := float64(readF32(b[nodeRotX:]))
	rz := float64(readF32(b[nodeRotZ:]))

	return &Node{
		UID:            readU64(b[nodeUID:]),
		BackwardItemID: readU64(b[nodeBackward:]),
		ForwardItemID:  readU64(b[nodeForward:]),
		Offset:         off,
		Position: geom.Point{
			X:   float64(int32(readU32(b[nodeX:]))) / 256.0,
			Y:   float64(int32(readU32(b[nodeY:]))) / 256.0,
			Z:   float64(int32(readU32(b[nodeZ:]))) / 256.0,
			Yaw: geom.YawFromRotation(rx, rz),
		},
	}
}

// ItemID returns the item identifier linked in direction d.
func (n *Node) ItemID(d Direction) uint64 {
	if d == Backward {
		return n.BackwardItemID
	}

	return n.ForwardItemID
}

// Item returns the item applied in direction d, or nil.
func (n *Node) Item(d Direction) *Item {
	if d == Backward {
		return n.backward.Load()
	}

	return n.forward.Load()
}

// ForwardItem returns the resolved forward item, or nil.
func (n *Node) ForwardItem() *Item { return n.forward.Load() }

// BackwardItem returns the resolved backward item, or nil.
func (n *Node) BackwardItem() *Item { return n.backward.Load() }

// Apply links item to this node in direction d. Each link is written once;
// Apply reports false when the link is already set or the item does not
// carry the identifier the node expects.
func (n *Node) Apply(d Direction, item *Item) bool {
	if item == nil || item.UID != n.ItemID(d) {
		return false
	}

	if d == Backward {
		return n.backward.CompareAndSwap(nil, item)
	}

	return n.forward.CompareAndSwap(nil, item)
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return fmt.Sprintf("node %016x (%.2f, %.2f, %.2f)", n.UID, n.Position.X, n.Position.Y, n.Position.Z)
}

// ParseNodes decodes the node table. Records are stored backwards from the
// end of the buffer in NodeSize strides. The scan stops on a zero identifier
// or when the counter preceding the current record matches both the declared
// node count and the number of records decoded so far. A buffer that
// underflows first yields ErrNoFooter. Empty sectors decode to no nodes.
func (s *Sector) ParseNodes() error {
	s.parsed = true
	s.Nodes = nil
	s.FooterOffset = -1
	s.NoFooter = false

	if s.Empty() {
		s.FooterOffset = 0
		return nil
	}

	declared := s.DeclaredNodes()

	var nodes []*Node
	for i := len(s.Data) - NodeSize; i >= headerSize; i -= NodeSize {
		node := decodeNode(s.Data, i)
		if node.UID == 0 {
			s.FooterOffset = i
			break
		}

		nodes = append(nodes, node)

		if i-4 >= headerSize {
			counter := readU32(s.Data[i-4:])
			if counter == declared && int(counter) == len(nodes) {
				s.FooterOffset = i - 4
				break
			}
		}
	}

	if s.FooterOffset < 0 {
		s.NoFooter = true
		return fmt.Errorf("%s: %w", s.Name, ErrNoFooter)
	}

	// file order
	for l, r := 0, len(nodes)-1; l < r; l, r = l+1, r-1 {
		nodes[l], nodes[r] = nodes[r], nodes[l]
	}
	s.Nodes = nodes

	return nil
}
