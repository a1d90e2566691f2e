// Package prefab models interchange definitions: a small directed graph of
// lane curves between boundary nodes, and the routes through it.
package prefab

import (
	"fmt"

	"github.com/woozymasta/trucksim-map/internal/geom"
)

// nodeTouchTolerance is how close a curve end must be to a definition node
// to count as touching it when the node carries no explicit curve lists.
const nodeTouchTolerance = 0.5

// maxRoutes caps route enumeration for pathological definitions.
const maxRoutes = 256

// Definition is one prefab model as described by the prefab catalogue.
type Definition struct {
	Name   string  `json:"name"`             // model name (e.g. us_crossing_4way)
	Nodes  []Node  `json:"nodes"`            // boundary nodes in definition order
	Curves []Curve `json:"curves"`           // lane curves local to this definition
	ID     uint32  `json:"id"`               // catalogue identifier referenced by prefab items
	Hidden bool    `json:"hidden,omitempty"` // definition is never drawn on the map
}

// Node is a boundary node of a definition where roads attach.
type Node struct {
	Position     geom.Point `json:"position"`                // local position and heading
	InputCurves  []int      `json:"input_curves,omitempty"`  // curves ending at this node
	OutputCurves []int      `json:"output_curves,omitempty"` // curves starting at this node
}

// Curve is a single lane segment inside a definition.
type Curve struct {
	Start  geom.Point `json:"start"`          // local start position and heading
	End    geom.Point `json:"end"`            // local end position and heading
	Next   []int      `json:"next,omitempty"` // curves that may follow this one
	Prev   []int      `json:"prev,omitempty"` // curves that may precede this one
	Length float64    `json:"length"`         // tangent magnitude; chord length when zero
}

// Route is a chain of curve indices from one boundary node to another.
type Route struct {
	Curves []int // curve indices in travel order
	Entry  int   // definition node index the route starts at
	Exit   int   // definition node index the route ends at
}

// Validate checks that all curve and node indices are in range.
func (d *Definition) Validate() error {
	nc := len(d.Curves)
	for i, n := range d.Nodes {
		for _, c := range n.InputCurves {
			if c < 0 || c >= nc {
				return fmt.Errorf("prefab %d: node %d: input curve %d out of range", d.ID, i, c)
			}
		}
		for _, c := range n.OutputCurves {
			if c < 0 || c >= nc {
				return fmt.Errorf("prefab %d: node %d: output curve %d out of range", d.ID, i, c)
			}
		}
	}

	for i, c := range d.Curves {
		for _, n := range c.Next {
			if n < 0 || n >= nc {
				return fmt.Errorf("prefab %d: curve %d: next %d out of range", d.ID, i, n)
			}
		}
		for _, p := range c.Prev {
			if p < 0 || p >= nc {
				return fmt.Errorf("prefab %d: curve %d: prev %d out of range", d.ID, i, p)
			}
		}
	}

	return nil
}

// DefinitionNode maps the index of a node in a placed item's node list to the
// definition node it sits on, given the item's origin.
func (d *Definition) DefinitionNode(itemIndex int, origin uint8) int {
	n := len(d.Nodes)
	if n == 0 || itemIndex < 0 {
		return -1
	}

	return (itemIndex + int(origin)) % n
}

// ItemNode is the inverse of DefinitionNode.
func (d *Definition) ItemNode(defIndex int, origin uint8) int {
	n := len(d.Nodes)
	if n == 0 || defIndex < 0 || defIndex >= n {
		return -1
	}

	return ((defIndex-int(origin))%n + n) % n
}

func (d *Definition) hasNode(i int) bool {
	return i >= 0 && i < len(d.Nodes)
}

// startCurves returns the curves leaving node i.
func (d *Definition) startCurves(i int) []int {
	n := d.Nodes[i]
	if len(n.OutputCurves) > 0 {
		return n.OutputCurves
	}

	var out []int
	for ci, c := range d.Curves {
		if c.Start.CloseTo(n.Position, nodeTouchTolerance) {
			out = append(out, ci)
		}
	}

	return out
}

// endCurves returns the set of curves arriving at node i.
func (d *Definition) endCurves(i int) map[int]bool {
	out := map[int]bool{}
	for _, c := range d.arrivingCurves(i) {
		out[c] = true
	}

	return out
}

// arrivingCurves returns the curves arriving at node i in definition order.
func (d *Definition) arrivingCurves(i int) []int {
	n := d.Nodes[i]
	if len(n.InputCurves) > 0 {
		return n.InputCurves
	}

	var out []int
	for ci, c := range d.Curves {
		if c.End.CloseTo(n.Position, nodeTouchTolerance) {
			out = append(out, ci)
		}
	}

	return out
}

// LaneAt returns the position of curve among the curves leaving node i, or
// arriving at it when leaving is false. It returns -1 when the curve does not
// touch the node.
func (d *Definition) LaneAt(i, curve int, leaving bool) int {
	if !d.hasNode(i) {
		return -1
	}

	list := d.arrivingCurves(i)
	if leaving {
		list = d.startCurves(i)
	}

	for k, c := range list {
		if c == curve {
			return k
		}
	}

	return -1
}
