package nav

// MatchEntry links every option of cur to the options of prev whose exit
// lies within tolerance of its entry. An option entered from a road takes
// the road lane; one entered from another prefab takes the position of its
// first curve at the boundary node. It returns the number of links made.
func MatchEntry(prev, cur *Segment, tolerance float64) int {
	links := 0
	for _, o := range cur.Options {
		for j, p := range prev.Options {
			if !p.Exit().CloseTo(o.Entry(), tolerance) {
				continue
			}

			o.prev = append(o.prev, j)
			o.entryMatched = true
			if o.EntryLane < 0 {
				o.EntryLane = p.ExitLane
				if prev.Kind == PrefabSegment {
					o.EntryLane = boundaryLane(cur, o, true)
				}
			}
			links++
		}
	}

	return links
}

// MatchExit links every option of cur to the options of next whose entry
// lies within tolerance of its exit. Lanes are filled the same way as by
// MatchEntry. It returns the number of links made.
func MatchExit(cur, next *Segment, tolerance float64) int {
	links := 0
	for _, o := range cur.Options {
		for j, n := range next.Options {
			if !o.Exit().CloseTo(n.Entry(), tolerance) {
				continue
			}

			o.next = append(o.next, j)
			o.exitMatched = true
			if o.ExitLane < 0 {
				o.ExitLane = n.EntryLane
				if next.Kind == PrefabSegment {
					o.ExitLane = boundaryLane(cur, o, false)
				}
			}
			links++
		}
	}

	return links
}

// matchTerminal accepts one side of every option of a segment at the end of
// the path.
func matchTerminal(s *Segment, entry bool) {
	for _, o := range s.Options {
		if entry {
			o.entryMatched = true
			if o.EntryLane < 0 {
				o.EntryLane = boundaryLane(s, o, true)
			}
			continue
		}

		o.exitMatched = true
		if o.ExitLane < 0 {
			o.ExitLane = boundaryLane(s, o, false)
		}
	}
}

// boundaryLane returns the lane a prefab option uses at its entry or exit
// node, counted among the curves touching that node.
func boundaryLane(s *Segment, o *Option, entry bool) int {
	if o.Route == nil || len(o.Route.Curves) == 0 || s.Prefab == nil || s.Prefab.Prefab == nil {
		return 0
	}

	def := s.Prefab.Prefab
	lane := def.LaneAt(o.Route.Exit, o.Route.Curves[len(o.Route.Curves)-1], false)
	if entry {
		lane = def.LaneAt(o.Route.Entry, o.Route.Curves[0], true)
	}

	if lane < 0 {
		return 0
	}

	return lane
}

// Match links the options of neighbouring segments, marks the options with
// both ends matched as valid and drops the rest. Dropping is repeated until
// every remaining option continues into a remaining option on both sides.
// It returns the number of options left.
func (r *Route) Match() int {
	last := len(r.Segments) - 1
	for i, s := range r.Segments {
		for _, o := range s.Options {
			o.prev, o.next = nil, nil
			o.entryMatched, o.exitMatched = false, false
		}

		if i == 0 {
			matchTerminal(s, true)
		} else {
			MatchEntry(r.Segments[i-1], s, r.cfg.Tolerance)
		}

		if i == last {
			matchTerminal(s, false)
		} else {
			MatchExit(s, r.Segments[i+1], r.cfg.Tolerance)
		}
	}

	for _, s := range r.Segments {
		for _, o := range s.Options {
			o.Valid = o.entryMatched && o.exitMatched
		}
	}

	for changed := true; changed; {
		changed = false
		for i, s := range r.Segments {
			for _, o := range s.Options {
				if !o.Valid {
					continue
				}
				if (i > 0 && !anyValid(r.Segments[i-1], o.prev)) || (i < last && !anyValid(r.Segments[i+1], o.next)) {
					o.Valid = false
					changed = true
				}
			}
		}
	}

	return r.compact()
}

func anyValid(s *Segment, idx []int) bool {
	for _, i := range idx {
		if s.Options[i].Valid {
			return true
		}
	}

	return false
}

// compact removes invalid options and renumbers the links between the
// remaining ones.
func (r *Route) compact() int {
	remap := make([][]int, len(r.Segments))
	for i, s := range r.Segments {
		remap[i] = make([]int, len(s.Options))
		n := 0
		for j, o := range s.Options {
			remap[i][j] = -1
			if o.Valid {
				remap[i][j] = n
				n++
			}
		}
	}

	left := 0
	for i, s := range r.Segments {
		kept := s.Options[:0]
		for _, o := range s.Options {
			if !o.Valid {
				continue
			}
			if i > 0 {
				o.prev = renumber(o.prev, remap[i-1])
			}
			if i+1 < len(r.Segments) {
				o.next = renumber(o.next, remap[i+1])
			}
			kept = append(kept, o)
		}

		for j := len(kept); j < len(s.Options); j++ {
			s.Options[j] = nil
		}
		s.Options = kept
		left += len(kept)
	}

	return left
}

func renumber(idx, remap []int) []int {
	out := idx[:0]
	for _, i := range idx {
		if remap[i] >= 0 {
			out = append(out, remap[i])
		}
	}

	return out
}
