// Package geom provides the oriented points and spline helpers used to turn
// decoded map records into lane geometry.
//
// Positions live in world space with X/Z spanning the ground plane and Y as
// height. A yaw of 0 heads along +X; the heading vector for yaw a is
// (cos a, sin a) on the X/Z plane and its right-hand side is (-sin a, cos a).
package geom

import "math"

// Point is a position with a heading.
type Point struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Z   float64 `json:"z"`
	Yaw float64 `json:"yaw"`
}

// NewPoint builds a point at x/y/z heading along yaw.
func NewPoint(x, y, z, yaw float64) Point {
	return Point{X: x, Y: y, Z: z, Yaw: yaw}
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// PlanarDistance returns the distance between a and b on the ground plane.
func PlanarDistance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// CloseTo reports whether p lies within tolerance of q on the ground plane.
func (p Point) CloseTo(q Point, tolerance float64) bool {
	return PlanarDistance(p, q) <= tolerance
}

// Heading returns the unit heading vector for yaw on the X/Z plane.
func Heading(yaw float64) (dx, dz float64) {
	return math.Cos(yaw), math.Sin(yaw)
}

// Right returns the unit vector pointing to the right of yaw on the X/Z plane.
func Right(yaw float64) (dx, dz float64) {
	return -math.Sin(yaw), math.Cos(yaw)
}

// Shift moves p sideways by d along the right-hand perpendicular of yaw.
// Negative d moves it to the left.
func (p Point) Shift(yaw, d float64) Point {
	rx, rz := Right(yaw)
	p.X += rx * d
	p.Z += rz * d

	return p
}

// Reverse returns p heading the opposite way.
func (p Point) Reverse() Point {
	p.Yaw = NormalizeAngle(p.Yaw + math.Pi)
	return p
}

// Rotate rotates x/z around the origin by angle.
func Rotate(x, z, angle float64) (float64, float64) {
	sin, cos := math.Sincos(angle)
	return cos*x - sin*z, sin*x + cos*z
}

// NormalizeAngle folds a into (-pi, pi].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	if a > math.Pi {
		a -= 2 * math.Pi
	}

	return a
}

// YawFromRotation derives a node yaw from the raw X and Z rotation floats
// stored in a sector node record.
func YawFromRotation(rx, rz float64) float64 {
	rot := math.Pi - math.Atan2(rz, rx)
	rot = math.Mod(rot, 2*math.Pi)

	return rot - math.Pi/2
}

// YawFromVector returns the yaw of the direction dx/dz.
func YawFromVector(dx, dz float64) float64 {
	return math.Atan2(dz, dx)
}
