package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func TestYawFromRotation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rx, rz float64
		want   float64
	}{
		{name: "plus_x", rx: 1, rz: 0, want: math.Pi / 2},
		{name: "plus_z", rx: 0, rz: 1, want: 0},
		{name: "minus_x", rx: -1, rz: 0, want: -math.Pi / 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := YawFromRotation(tt.rx, tt.rz)
			if !near(NormalizeAngle(got), NormalizeAngle(tt.want)) {
				t.Fatalf("yaw=%v want %v", got, tt.want)
			}
		})
	}
}

func TestShiftRightOfHeading(t *testing.T) {
	t.Parallel()

	p := NewPoint(0, 0, 0, 0).Shift(0, 2.25)
	if !near(p.X, 0) || !near(p.Z, 2.25) {
		t.Fatalf("shift=%+v want z=2.25", p)
	}

	p = NewPoint(0, 0, 0, math.Pi/2).Shift(math.Pi/2, 1)
	if !near(p.X, -1) || !near(p.Z, 0) {
		t.Fatalf("shift=%+v want x=-1", p)
	}
}

func TestHermiteEndpoints(t *testing.T) {
	t.Parallel()

	if got := Hermite(0, 3, 7, 11, 13); !near(got, 3) {
		t.Fatalf("h(0)=%v want 3", got)
	}
	if got := Hermite(1, 3, 7, 11, 13); !near(got, 7) {
		t.Fatalf("h(1)=%v want 7", got)
	}
	if got := HermiteTangent(0, 3, 7, 11, 13); !near(got, 11) {
		t.Fatalf("h'(0)=%v want 11", got)
	}
	if got := HermiteTangent(1, 3, 7, 11, 13); !near(got, 13) {
		t.Fatalf("h'(1)=%v want 13", got)
	}
}

func TestSplineStraightLine(t *testing.T) {
	t.Parallel()

	c := NewSpline(NewPoint(0, 0, 0, 0), NewPoint(100, 10, 0, 0))
	pts := c.Sample(5)
	if len(pts) != 5 {
		t.Fatalf("len=%d want 5", len(pts))
	}

	for i, p := range pts {
		if !near(p.Z, 0) {
			t.Fatalf("point %d off axis: %+v", i, p)
		}
		if !near(p.Yaw, 0) {
			t.Fatalf("point %d yaw=%v want 0", i, p.Yaw)
		}
	}

	if !near(pts[2].X, 50) || !near(pts[2].Y, 5) {
		t.Fatalf("mid=%+v want x=50 y=5", pts[2])
	}
}

func TestSplineQuarterTurnYaw(t *testing.T) {
	t.Parallel()

	c := NewSpline(NewPoint(0, 0, 0, 0), NewPoint(10, 0, 10, math.Pi/2))
	start := c.At(0)
	end := c.At(1)
	if !near(start.Yaw, 0) {
		t.Fatalf("start yaw=%v want 0", start.Yaw)
	}
	if !near(end.Yaw, math.Pi/2) {
		t.Fatalf("end yaw=%v want pi/2", end.Yaw)
	}
}

func TestCloseTo(t *testing.T) {
	t.Parallel()

	a := NewPoint(0, 0, 0, 0)
	if !a.CloseTo(NewPoint(1.2, 50, 1.2, 0), 2) {
		t.Fatalf("expected planar proximity to ignore height")
	}
	if a.CloseTo(NewPoint(2.1, 0, 0, 0), 2) {
		t.Fatalf("expected 2.1 units to be out of tolerance")
	}
}
