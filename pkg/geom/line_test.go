package geom

import (
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

func testLine(kind LineKind, x1, y1, x2, y2 float64) *Line {
	return &Line{
		ID:     1,
		Name:   "l1",
		Kind:   kind,
		Points: []*Point{pt(2, "A", x1, y1), pt(3, "B", x2, y2)},
	}
}

func TestLineParamAt(t *testing.T) {
	l := testLine(LineInfinite, 0, 0, 10, 0)

	cases := []struct {
		p    v2.Vec
		want float64
	}{
		{v2.Vec{X: 0, Y: 0}, 0},
		{v2.Vec{X: 10, Y: 0}, 1},
		{v2.Vec{X: 5, Y: 7}, 0.5}, // off-axis component ignored
		{v2.Vec{X: -5, Y: 0}, -0.5},
		{v2.Vec{X: 20, Y: 0}, 2},
	}
	for _, tc := range cases {
		got := l.ParamAt(tc.p)
		if got < tc.want-1e-9 || got > tc.want+1e-9 {
			t.Errorf("ParamAt(%v) = %f, want %f", tc.p, got, tc.want)
		}
	}
}

func TestValidParamPerVariant(t *testing.T) {
	cases := []struct {
		kind  LineKind
		t     float64
		valid bool
	}{
		{LineInfinite, -5, true},
		{LineInfinite, 0.5, true},
		{LineInfinite, 99, true},
		{LineRay, -0.1, false},
		{LineRay, 0, true},
		{LineRay, 3, true},
		{LineSegment, -0.1, false},
		{LineSegment, 0, true},
		{LineSegment, 0.5, true},
		{LineSegment, 1, true},
		{LineSegment, 1.1, false},
	}
	for _, tc := range cases {
		l := testLine(tc.kind, 0, 0, 10, 0)
		if got := l.ValidParam(tc.t); got != tc.valid {
			t.Errorf("%s ValidParam(%f) = %v, want %v", tc.kind, tc.t, got, tc.valid)
		}
	}
}

func TestClosestPointClamping(t *testing.T) {
	q := v2.Vec{X: -5, Y: 3} // projects before the first defining point
	r := v2.Vec{X: 15, Y: 3} // projects past the second

	cases := []struct {
		name  string
		kind  LineKind
		query v2.Vec
		want  v2.Vec
	}{
		{"infinite keeps negative projection", LineInfinite, q, v2.Vec{X: -5, Y: 0}},
		{"infinite keeps overshoot", LineInfinite, r, v2.Vec{X: 15, Y: 0}},
		{"ray clamps at origin", LineRay, q, v2.Vec{X: 0, Y: 0}},
		{"ray keeps forward overshoot", LineRay, r, v2.Vec{X: 15, Y: 0}},
		{"segment clamps at start", LineSegment, q, v2.Vec{X: 0, Y: 0}},
		{"segment clamps at end", LineSegment, r, v2.Vec{X: 10, Y: 0}},
		{"segment interior projects", LineSegment, v2.Vec{X: 4, Y: 9}, v2.Vec{X: 4, Y: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := testLine(tc.kind, 0, 0, 10, 0)
			got := l.ClosestPoint(tc.query)
			if got.Sub(tc.want).Length() > 1e-9 {
				t.Errorf("ClosestPoint(%v) = %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}

func TestContainsPerVariant(t *testing.T) {
	behind := v2.Vec{X: -5, Y: 0}
	if !testLine(LineInfinite, 0, 0, 10, 0).Contains(behind, 1e-6) {
		t.Error("infinite line should contain a point behind its origin")
	}
	if testLine(LineRay, 0, 0, 10, 0).Contains(behind, 1e-6) {
		t.Error("ray should not contain a point behind its origin")
	}
	if testLine(LineSegment, 0, 0, 10, 0).Contains(v2.Vec{X: 11, Y: 0}, 1e-6) {
		t.Error("segment should not contain a point past its end")
	}
	if !testLine(LineSegment, 0, 0, 10, 0).Contains(v2.Vec{X: 10, Y: 0}, 1e-6) {
		t.Error("segment should contain its endpoint")
	}

	// Tolerance is a distance, not a parameter.
	if !testLine(LineInfinite, 0, 0, 10, 0).Contains(v2.Vec{X: 5, Y: 0.5}, 0.6) {
		t.Error("point 0.5 off the line should be contained at tol 0.6")
	}
	if testLine(LineInfinite, 0, 0, 10, 0).Contains(v2.Vec{X: 5, Y: 0.5}, 0.4) {
		t.Error("point 0.5 off the line should not be contained at tol 0.4")
	}
}

func TestDegenerateLine(t *testing.T) {
	l := testLine(LineInfinite, 3, 3, 3, 3)
	if !l.Degenerate() {
		t.Fatal("coincident defining points should be degenerate")
	}
	// Closest point on a degenerate line is its first defining point.
	got := l.ClosestPoint(v2.Vec{X: 100, Y: 100})
	if got != (v2.Vec{X: 3, Y: 3}) {
		t.Errorf("degenerate ClosestPoint = %v, want (3, 3)", got)
	}
	if l.ParamAt(v2.Vec{X: 100, Y: 100}) != 0 {
		t.Error("degenerate ParamAt should be 0")
	}
}

func TestAttachPoint(t *testing.T) {
	l := testLine(LineInfinite, 0, 0, 10, 0)
	q := pt(9, "C", 5, 0)

	l.AttachPoint(q)
	l.AttachPoint(q) // identity dedup
	if len(l.Points) != 3 {
		t.Fatalf("points = %d, want 3", len(l.Points))
	}
	if !l.HasPoint(q) {
		t.Error("attached point should be found")
	}

	// Defining pair is untouched.
	if l.Points[0].Name != "A" || l.Points[1].Name != "B" {
		t.Error("defining points must stay at indices 0 and 1")
	}
}
