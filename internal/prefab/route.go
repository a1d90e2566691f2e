package prefab

import (
	"github.com/woozymasta/trucksim-map/internal/geom"
)

// Routes enumerates every curve chain from definition node entry to
// definition node exit. Curves are marked visited per path so loops inside
// the definition are cut without hiding alternative chains that share curves.
// No path yields an empty result.
func (d *Definition) Routes(entry, exit int) []Route {
	if !d.hasNode(entry) || !d.hasNode(exit) || entry == exit {
		return nil
	}

	ends := d.endCurves(exit)
	if len(ends) == 0 {
		return nil
	}

	var (
		out     []Route
		visited = make([]bool, len(d.Curves))
	)

	var walk func(path []int)
	walk = func(path []int) {
		if len(out) >= maxRoutes {
			return
		}

		cur := path[len(path)-1]
		if ends[cur] {
			out = append(out, Route{
				Curves: append([]int(nil), path...),
				Entry:  entry,
				Exit:   exit,
			})
			return
		}

		visited[cur] = true
		for _, next := range d.Curves[cur].Next {
			if next < 0 || next >= len(d.Curves) || visited[next] {
				continue
			}
			walk(append(path, next))
		}
		visited[cur] = false
	}

	for _, c := range d.startCurves(entry) {
		if c < 0 || c >= len(d.Curves) {
			continue
		}
		walk([]int{c})
	}

	return out
}

// Transform maps definition space onto world space by placing the anchor
// definition node on a world node.
type Transform struct {
	anchor geom.Point
	world  geom.Point
	angle  float64
}

// NewTransform anchors definition node anchor on world.
func NewTransform(anchor, world geom.Point) Transform {
	return Transform{
		anchor: anchor,
		world:  world,
		angle:  geom.NormalizeAngle(world.Yaw - anchor.Yaw),
	}
}

// Placement builds the transform of a placed prefab: definition node origin
// lands on the first node of the item.
func (d *Definition) Placement(origin uint8, first geom.Point) (Transform, bool) {
	i := int(origin)
	if !d.hasNode(i) {
		return Transform{}, false
	}

	return NewTransform(d.Nodes[i].Position, first), true
}

// Apply maps a definition-space point into world space.
func (t Transform) Apply(p geom.Point) geom.Point {
	x, z := geom.Rotate(p.X-t.anchor.X, p.Z-t.anchor.Z, t.angle)

	return geom.Point{
		X:   t.world.X + x,
		Y:   t.world.Y + p.Y - t.anchor.Y,
		Z:   t.world.Z + z,
		Yaw: geom.NormalizeAngle(p.Yaw + t.angle),
	}
}

// Polygon samples each curve of r with steps points and maps the result into
// world space. Joints shared by consecutive curves are emitted once.
func (d *Definition) Polygon(r Route, t Transform, steps int) []geom.Point {
	var out []geom.Point
	for _, ci := range r.Curves {
		if ci < 0 || ci >= len(d.Curves) {
			return nil
		}

		c := d.Curves[ci]
		length := c.Length
		if length <= 0 {
			length = geom.PlanarDistance(c.Start, c.End)
		}

		pts := geom.NewSplineWithLength(c.Start, c.End, length).Sample(steps)
		for i, p := range pts {
			w := t.Apply(p)
			if i == 0 && len(out) > 0 && out[len(out)-1].CloseTo(w, 1e-6) {
				continue
			}
			out = append(out, w)
		}
	}

	return out
}
