package prefab

import (
	"math"
	"testing"

	"github.com/woozymasta/trucksim-map/internal/geom"
)

// tJunction is a T crossing: node 0 west, node 1 east, node 2 south.
// Curves 0 (west->centre) continues to 1 (centre->east) or 2 (centre->south).
// Curve 3 (east->west) is the opposite direction through lane.
func tJunction() *Definition {
	return &Definition{
		ID: 7,
		Nodes: []Node{
			{Position: geom.NewPoint(-10, 0, 0, 0), OutputCurves: []int{0}, InputCurves: []int{3}},
			{Position: geom.NewPoint(10, 0, 0, 0), InputCurves: []int{1}, OutputCurves: []int{3}},
			{Position: geom.NewPoint(0, 0, 10, math.Pi/2), InputCurves: []int{2}},
		},
		Curves: []Curve{
			{Start: geom.NewPoint(-10, 0, 0, 0), End: geom.NewPoint(0, 0, 0, 0), Next: []int{1, 2}},
			{Start: geom.NewPoint(0, 0, 0, 0), End: geom.NewPoint(10, 0, 0, 0), Prev: []int{0}},
			{Start: geom.NewPoint(0, 0, 0, 0), End: geom.NewPoint(0, 0, 10, math.Pi/2), Prev: []int{0}},
			{Start: geom.NewPoint(10, 0, 0, math.Pi), End: geom.NewPoint(-10, 0, 0, math.Pi)},
		},
	}
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	d := tJunction()
	tests := []struct {
		name        string
		entry, exit int
		want        [][]int
	}{
		{name: "west_east", entry: 0, exit: 1, want: [][]int{{0, 1}}},
		{name: "west_south", entry: 0, exit: 2, want: [][]int{{0, 2}}},
		{name: "east_west", entry: 1, exit: 0, want: [][]int{{3}}},
		{name: "south_west_none", entry: 2, exit: 0, want: nil},
		{name: "same_node", entry: 0, exit: 0, want: nil},
		{name: "out_of_range", entry: 0, exit: 9, want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := d.Routes(tt.entry, tt.exit)
			if len(got) != len(tt.want) {
				t.Fatalf("routes=%v want %v", got, tt.want)
			}
			for i := range got {
				if !equalInts(got[i].Curves, tt.want[i]) {
					t.Fatalf("route %d=%v want %v", i, got[i].Curves, tt.want[i])
				}
				if got[i].Entry != tt.entry || got[i].Exit != tt.exit {
					t.Fatalf("route %d ends=%d/%d", i, got[i].Entry, got[i].Exit)
				}
			}
		})
	}
}

func TestRoutesCutCycles(t *testing.T) {
	t.Parallel()

	// 0 -> 1 -> 0 loops forever without per-path marking; 1 -> 2 reaches the exit.
	d := &Definition{
		Nodes: []Node{
			{Position: geom.NewPoint(0, 0, 0, 0), OutputCurves: []int{0}},
			{Position: geom.NewPoint(30, 0, 0, 0), InputCurves: []int{2}},
		},
		Curves: []Curve{
			{Start: geom.NewPoint(0, 0, 0, 0), End: geom.NewPoint(10, 0, 0, 0), Next: []int{1}},
			{Start: geom.NewPoint(10, 0, 0, 0), End: geom.NewPoint(20, 0, 0, 0), Next: []int{0, 2}},
			{Start: geom.NewPoint(20, 0, 0, 0), End: geom.NewPoint(30, 0, 0, 0)},
		},
	}

	got := d.Routes(0, 1)
	if len(got) != 1 || !equalInts(got[0].Curves, []int{0, 1, 2}) {
		t.Fatalf("routes=%v want [[0 1 2]]", got)
	}
}

func TestRoutesByProximity(t *testing.T) {
	t.Parallel()

	d := tJunction()
	for i := range d.Nodes {
		d.Nodes[i].InputCurves = nil
		d.Nodes[i].OutputCurves = nil
	}

	got := d.Routes(0, 2)
	if len(got) != 1 || !equalInts(got[0].Curves, []int{0, 2}) {
		t.Fatalf("routes=%v want [[0 2]]", got)
	}
}

func TestPolygonPlacement(t *testing.T) {
	t.Parallel()

	d := tJunction()
	routes := d.Routes(0, 1)
	if len(routes) != 1 {
		t.Fatalf("routes=%d want 1", len(routes))
	}

	// Place definition node 0 at (100, 5, 200) heading +Z: a quarter turn.
	tr, ok := d.Placement(0, geom.NewPoint(100, 5, 200, math.Pi/2))
	if !ok {
		t.Fatalf("placement failed")
	}

	pts := d.Polygon(routes[0], tr, 3)
	if len(pts) != 5 {
		t.Fatalf("points=%d want 5 (shared joint emitted once)", len(pts))
	}

	first, last := pts[0], pts[len(pts)-1]
	if math.Abs(first.X-100) > 1e-9 || math.Abs(first.Z-200) > 1e-9 || first.Y != 5 {
		t.Fatalf("first=%+v want (100,5,200)", first)
	}
	if math.Abs(last.X-100) > 1e-9 || math.Abs(last.Z-220) > 1e-9 {
		t.Fatalf("last=%+v want (100,5,220)", last)
	}
	if math.Abs(last.Yaw-math.Pi/2) > 1e-9 {
		t.Fatalf("last yaw=%v want pi/2", last.Yaw)
	}
}

func TestOriginMapping(t *testing.T) {
	t.Parallel()

	d := tJunction()
	for origin := uint8(0); origin < 4; origin++ {
		for i := 0; i < len(d.Nodes); i++ {
			def := d.DefinitionNode(i, origin)
			if back := d.ItemNode(def, origin); back != i {
				t.Fatalf("origin=%d item=%d def=%d back=%d", origin, i, def, back)
			}
		}
	}

	if got := d.DefinitionNode(0, 2); got != 2 {
		t.Fatalf("def=%d want 2", got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	d := tJunction()
	if err := d.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d.Curves[0].Next = append(d.Curves[0].Next, 12)
	if err := d.Validate(); err == nil {
		t.Fatalf("expected error for dangling next index")
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestLaneAt(t *testing.T) {
	t.Parallel()

	d := tJunction()
	d.Nodes[0].OutputCurves = []int{3, 0}

	if got := d.LaneAt(0, 0, true); got != 1 {
		t.Fatalf("lane=%d want 1", got)
	}
	if got := d.LaneAt(1, 1, false); got != 0 {
		t.Fatalf("lane=%d want 0", got)
	}
	if got := d.LaneAt(2, 1, false); got != -1 {
		t.Fatalf("lane=%d want -1", got)
	}
	if got := d.LaneAt(5, 0, true); got != -1 {
		t.Fatalf("lane=%d want -1 for a missing node", got)
	}
}
