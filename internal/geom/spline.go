package geom

import "math"

// Hermite evaluates the cubic Hermite interpolant between p1 and p2 with
// tangents t1 and t2 at parameter s in [0, 1].
func Hermite(s, p1, p2, t1, t2 float64) float64 {
	s2 := s * s
	s3 := s2 * s

	h1 := 2*s3 - 3*s2 + 1
	h2 := -2*s3 + 3*s2
	h3 := s3 - 2*s2 + s
	h4 := s3 - s2

	return h1*p1 + h2*p2 + h3*t1 + h4*t2
}

// HermiteTangent evaluates the derivative of Hermite at s.
func HermiteTangent(s, p1, p2, t1, t2 float64) float64 {
	s2 := s * s

	h1 := 6*s2 - 6*s
	h2 := -6*s2 + 6*s
	h3 := 3*s2 - 4*s + 1
	h4 := 3*s2 - 2*s

	return h1*p1 + h2*p2 + h3*t1 + h4*t2
}

// Spline is a planar cubic Hermite curve between two oriented points. Height
// is interpolated linearly.
type Spline struct {
	Start Point
	End   Point

	tsx, tsz float64
	tex, tez float64
}

// NewSpline builds a spline whose tangent magnitude is the chord length
// between start and end, pointing along each endpoint's yaw.
func NewSpline(start, end Point) Spline {
	return NewSplineWithLength(start, end, PlanarDistance(start, end))
}

// NewSplineWithLength builds a spline with an explicit tangent magnitude.
func NewSplineWithLength(start, end Point, length float64) Spline {
	sx, sz := Heading(start.Yaw)
	ex, ez := Heading(end.Yaw)

	return Spline{
		Start: start,
		End:   end,
		tsx:   sx * length,
		tsz:   sz * length,
		tex:   ex * length,
		tez:   ez * length,
	}
}

// At returns the point at parameter s with the instantaneous yaw of the curve.
func (c Spline) At(s float64) Point {
	x := Hermite(s, c.Start.X, c.End.X, c.tsx, c.tex)
	z := Hermite(s, c.Start.Z, c.End.Z, c.tsz, c.tez)
	y := c.Start.Y + (c.End.Y-c.Start.Y)*s

	dx := HermiteTangent(s, c.Start.X, c.End.X, c.tsx, c.tex)
	dz := HermiteTangent(s, c.Start.Z, c.End.Z, c.tsz, c.tez)

	var yaw float64
	if math.Abs(dx) < 1e-9 && math.Abs(dz) < 1e-9 {
		// zero-length curve, fall back to the endpoint headings
		yaw = c.Start.Yaw + NormalizeAngle(c.End.Yaw-c.Start.Yaw)*s
	} else {
		yaw = YawFromVector(dx, dz)
	}

	return Point{X: x, Y: y, Z: z, Yaw: yaw}
}

// Sample evaluates the curve at steps evenly spaced parameters including both
// ends. Fewer than two steps yields the two endpoints.
func (c Spline) Sample(steps int) []Point {
	if steps < 2 {
		steps = 2
	}

	out := make([]Point, steps)
	for k := 0; k < steps; k++ {
		out[k] = c.At(float64(k) / float64(steps-1))
	}

	return out
}

// Length approximates the arc length of path.
func Length(path []Point) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += Distance(path[i-1], path[i])
	}

	return total
}
