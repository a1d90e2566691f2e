// Package curve samples lane centerlines between two oriented road endpoints.
package curve

import (
	"github.com/woozymasta/trucksim-map/internal/catalog"
	"github.com/woozymasta/trucksim-map/internal/geom"
)

// LaneOffset returns the signed lateral distance of a lane centerline from the
// road centerline. Right-hand lanes are positive, left-hand lanes negative.
// Fractional lanes are used while changing lanes along a road chain.
func LaneOffset(look *catalog.RoadLook, left bool, lane float64) float64 {
	var offset float64
	if look != nil {
		offset = look.Offset
	}

	d := (0.5+lane)*look.Width() + offset
	if left {
		return -d
	}

	return d
}

// Road samples one lane of a road between start and end.
func Road(start, end geom.Point, look *catalog.RoadLook, steps int, left bool, lane int) []geom.Point {
	return Blend(start, end, look, steps, left, float64(lane), float64(lane))
}

// Blend samples a lane that drifts from lane `from` at start to lane `to` at
// end. With two steps the endpoints are shifted along their own yaw; with
// more steps each sample is shifted along the instantaneous yaw of the
// Hermite centerline so the lane stays parallel to it.
func Blend(start, end geom.Point, look *catalog.RoadLook, steps int, left bool, from, to float64) []geom.Point {
	if steps <= 2 {
		return []geom.Point{
			start.Shift(start.Yaw, LaneOffset(look, left, from)),
			end.Shift(end.Yaw, LaneOffset(look, left, to)),
		}
	}

	spline := geom.NewSpline(start, end)
	out := make([]geom.Point, steps)
	for k := 0; k < steps; k++ {
		s := float64(k) / float64(steps-1)
		p := spline.At(s)
		out[k] = p.Shift(p.Yaw, LaneOffset(look, left, from+(to-from)*s))
	}

	return out
}
