package nav

import (
	"github.com/sirupsen/logrus"

	"github.com/woozymasta/trucksim-map/internal/curve"
	"github.com/woozymasta/trucksim-map/internal/geom"
	"github.com/woozymasta/trucksim-map/internal/prefab"
)

// jointTolerance merges the shared endpoint of consecutive elements.
const jointTolerance = 1e-6

// GenerateOptions fills every segment with coarse lane options, replacing
// any previous ones. Roads get one option per entry and exit lane pair of
// both lane groups; prefabs get one option per curve route between their
// boundary nodes, with lanes left at -1 until matched.
func (r *Route) GenerateOptions() {
	for _, s := range r.Segments {
		if s.Kind == PrefabSegment {
			s.Options = r.prefabOptions(s, r.cfg.PrefabSteps)
		} else {
			s.Options = r.roadOptions(s, r.cfg.RoadSteps)
		}

		r.cfg.Log.WithFields(logrus.Fields{
			"segment": s.Kind.String(),
			"entry":   s.EntryNode,
			"exit":    s.ExitNode,
			"options": len(s.Options),
		}).Debug("segment options")
	}
}

func (r *Route) roadOptions(s *Segment, steps int) []*Option {
	head := s.Elements[0].Item
	tail := s.Elements[len(s.Elements)-1].Item
	if head.RoadLook == nil || tail.RoadLook == nil {
		r.cfg.Log.WithField("uid", head.UID).Warn("road without road look, no lanes")
	}

	var out []*Option
	for _, left := range []bool{false, true} {
		for a := 0; a < head.RoadLook.Lanes(left); a++ {
			for b := 0; b < tail.RoadLook.Lanes(left); b++ {
				out = append(out, &Option{
					EntryLane: a,
					ExitLane:  b,
					Left:      left,
					Points:    r.roadPoints(s, left, a, b, steps),
				})
			}
		}
	}

	return out
}

// roadPoints samples a lane through the chain. The lane index drifts from
// entry to exit in proportion to the distance travelled.
func (r *Route) roadPoints(s *Segment, left bool, entry, exit, steps int) []geom.Point {
	lengths := make([]float64, len(s.Elements))
	total := 0.0
	for k, e := range s.Elements {
		lengths[k] = geom.PlanarDistance(r.position(e.Item.StartNodeID()), r.position(e.Item.EndNodeID()))
		total += lengths[k]
	}

	lane := func(done float64, k int) float64 {
		t := float64(k) / float64(len(s.Elements))
		if total > 0 {
			t = done / total
		}

		return float64(entry) + float64(exit-entry)*t
	}

	var out []geom.Point
	done := 0.0
	for k, e := range s.Elements {
		from, to := lane(done, k), lane(done+lengths[k], k+1)
		done += lengths[k]

		start := r.position(e.Item.StartNodeID())
		end := r.position(e.Item.EndNodeID())

		var pts []geom.Point
		if e.Reversed {
			pts = reversePath(curve.Blend(start, end, e.Item.RoadLook, steps, left, to, from))
		} else {
			pts = curve.Blend(start, end, e.Item.RoadLook, steps, left, from, to)
		}

		out = appendPath(out, pts)
	}

	return out
}

func (r *Route) prefabOptions(s *Segment, steps int) []*Option {
	it := s.Prefab
	def := it.Prefab
	if def == nil {
		r.cfg.Log.WithFields(logrus.Fields{"uid": it.UID, "prefab": it.PrefabID}).Warn("prefab definition not loaded, no routes")
		return nil
	}

	t, ok := def.Placement(it.Origin, r.position(it.StartNodeID()))
	if !ok {
		r.cfg.Log.WithFields(logrus.Fields{"uid": it.UID, "origin": it.Origin}).Warn("prefab origin outside definition")
		return nil
	}

	entries := r.prefabSide(s, s.EntryNode)
	exits := r.prefabSide(s, s.ExitNode)

	var out []*Option
	for _, e := range entries {
		for _, x := range exits {
			if e == x {
				continue
			}

			for _, route := range def.Routes(e, x) {
				route := route
				out = append(out, &Option{
					Route:     &route,
					EntryLane: -1,
					ExitLane:  -1,
					Points:    def.Polygon(route, t, steps),
				})
			}
		}
	}

	return out
}

// prefabSide returns the definition nodes a route may use on one side: the
// node under uid, or every node when the path ends inside the prefab.
func (r *Route) prefabSide(s *Segment, uid uint64) []int {
	def := s.Prefab.Prefab
	if uid != 0 {
		if n := def.DefinitionNode(s.Prefab.NodeIndex(uid), s.Prefab.Origin); n >= 0 {
			return []int{n}
		}
		return nil
	}

	out := make([]int, len(def.Nodes))
	for i := range out {
		out[i] = i
	}

	return out
}

// prefabPoints samples the route of a prefab option.
func (r *Route) prefabPoints(s *Segment, route prefab.Route, steps int) []geom.Point {
	def := s.Prefab.Prefab
	t, ok := def.Placement(s.Prefab.Origin, r.position(s.Prefab.StartNodeID()))
	if !ok {
		return nil
	}

	return def.Polygon(route, t, steps)
}

// appendPath appends pts to path, dropping a first point that repeats the
// last one.
func appendPath(path, pts []geom.Point) []geom.Point {
	if len(pts) > 0 && len(path) > 0 && path[len(path)-1].CloseTo(pts[0], jointTolerance) {
		pts = pts[1:]
	}

	return append(path, pts...)
}

// reversePath returns pts in opposite order with every heading flipped.
func reversePath(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p.Reverse()
	}

	return out
}
