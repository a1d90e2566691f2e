package curve

import (
	"math"
	"testing"

	"github.com/woozymasta/trucksim-map/internal/catalog"
	"github.com/woozymasta/trucksim-map/internal/geom"
)

const tolerance = 1e-9

func TestRoadTwoSamples(t *testing.T) {
	t.Parallel()

	look := &catalog.RoadLook{LaneWidth: 4.5, LanesLeft: 1, LanesRight: 1}
	start := geom.NewPoint(0, 0, 0, 0)
	end := geom.NewPoint(100, 0, 0, 0)

	got := Road(start, end, look, 2, false, 0)
	want := []geom.Point{geom.NewPoint(0, 0, 2.25, 0), geom.NewPoint(100, 0, 2.25, 0)}
	if len(got) != len(want) {
		t.Fatalf("len=%d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d=%+v want %+v", i, got[i], want[i])
		}
	}

	left := Road(start, end, look, 2, true, 0)
	if left[0].Z != -2.25 || left[1].Z != -2.25 {
		t.Fatalf("left lane=%+v want z=-2.25", left)
	}
}

func TestRoadLaneAndOffset(t *testing.T) {
	t.Parallel()

	look := &catalog.RoadLook{LaneWidth: 4, Offset: 1}
	got := Road(geom.NewPoint(0, 0, 0, 0), geom.NewPoint(50, 0, 0, 0), look, 2, false, 2)
	// (0.5 + 2) * 4 + 1
	if got[0].Z != 11 || got[1].Z != 11 {
		t.Fatalf("z=%v/%v want 11", got[0].Z, got[1].Z)
	}
}

func TestHermiteEndpointLaw(t *testing.T) {
	t.Parallel()

	look := &catalog.RoadLook{LaneWidth: 3.5, Offset: 0.25}
	cases := []struct {
		name       string
		start, end geom.Point
	}{
		{name: "straight", start: geom.NewPoint(0, 0, 0, 0), end: geom.NewPoint(100, 0, 0, 0)},
		{name: "bend", start: geom.NewPoint(0, 0, 0, 0.3), end: geom.NewPoint(80, 2, 40, 1.1)},
		{name: "reverse", start: geom.NewPoint(10, 0, -5, math.Pi), end: geom.NewPoint(-60, 0, -30, -2.8)},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, left := range []bool{false, true} {
				fast := Road(tt.start, tt.end, look, 2, left, 1)
				full := Road(tt.start, tt.end, look, 9, left, 1)

				pairs := [][2]geom.Point{{fast[0], full[0]}, {fast[1], full[len(full)-1]}}
				for i, p := range pairs {
					if math.Abs(p[0].X-p[1].X) > tolerance || math.Abs(p[0].Z-p[1].Z) > tolerance {
						t.Fatalf("left=%v end %d: fast=%+v spline=%+v", left, i, p[0], p[1])
					}
				}
			}
		})
	}
}

func TestCurveStaysParallel(t *testing.T) {
	t.Parallel()

	look := &catalog.RoadLook{LaneWidth: 4}
	start := geom.NewPoint(0, 0, 0, 0)
	end := geom.NewPoint(60, 0, 60, math.Pi/2)

	centre := geom.NewSpline(start, end).Sample(17)
	lane := Road(start, end, look, 17, false, 0)
	for i := range lane {
		d := geom.PlanarDistance(centre[i], lane[i])
		if math.Abs(d-2) > 1e-6 {
			t.Fatalf("sample %d: distance to centre=%v want 2", i, d)
		}
	}
}

func TestBlendDriftsBetweenLanes(t *testing.T) {
	t.Parallel()

	look := &catalog.RoadLook{LaneWidth: 4}
	pts := Blend(geom.NewPoint(0, 0, 0, 0), geom.NewPoint(100, 0, 0, 0), look, 3, false, 0, 2)
	want := []float64{2, 6, 10}
	for i, z := range want {
		if math.Abs(pts[i].Z-z) > tolerance {
			t.Fatalf("sample %d z=%v want %v", i, pts[i].Z, z)
		}
	}
}
