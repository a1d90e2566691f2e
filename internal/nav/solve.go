package nav

import (
	"fmt"

	"github.com/woozymasta/trucksim-map/internal/geom"
)

// Solution picks one option index per segment.
type Solution []int

// Solutions enumerates continuous option chains through all segments in
// option order, up to the configured cap. Call Match first.
func (r *Route) Solutions() []Solution {
	if len(r.Segments) == 0 {
		return nil
	}

	var (
		out  []Solution
		pick = make(Solution, 0, len(r.Segments))
	)

	var walk func(i, j int)
	walk = func(i, j int) {
		if len(out) >= r.cfg.MaxSolutions {
			return
		}

		o := r.Segments[i].Options[j]
		if !o.Valid {
			return
		}

		pick = append(pick, j)
		defer func() { pick = pick[:len(pick)-1] }()

		if i == len(r.Segments)-1 {
			out = append(out, append(Solution(nil), pick...))
			return
		}

		for _, k := range o.next {
			walk(i+1, k)
		}
	}

	for j := range r.Segments[0].Options {
		walk(0, j)
	}

	return out
}

// Plan generates, matches and enumerates in one call.
func (r *Route) Plan() []Solution {
	r.GenerateOptions()
	r.Match()

	return r.Solutions()
}

// HighResolution resamples the options of sol with the configured fine
// step count and joins them into one polyline. The coarse points used for
// matching are not reused.
func (r *Route) HighResolution(sol Solution) ([]geom.Point, error) {
	if len(sol) != len(r.Segments) {
		return nil, fmt.Errorf("solution covers %d of %d segments", len(sol), len(r.Segments))
	}

	var out []geom.Point
	for i, s := range r.Segments {
		j := sol[i]
		if j < 0 || j >= len(s.Options) {
			return nil, fmt.Errorf("segment %d: option %d out of range", i, j)
		}

		o := s.Options[j]
		var pts []geom.Point
		if s.Kind == PrefabSegment {
			pts = r.prefabPoints(s, *o.Route, r.cfg.HighRes)
		} else {
			pts = r.roadPoints(s, o.Left, o.EntryLane, o.ExitLane, r.cfg.HighRes)
		}

		out = appendPath(out, pts)
	}

	return out, nil
}
