package geom

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// LineKind enumerates the three line variants. Variants share one
// carrier (the infinite line through the two defining points) and
// differ only in which projection parameters count as on the line.
type LineKind int

const (
	LineInfinite LineKind = iota
	LineRay               // bounded at the first defining point
	LineSegment           // bounded at both defining points
)

func (k LineKind) String() string {
	switch k {
	case LineInfinite:
		return "infinite"
	case LineRay:
		return "ray"
	case LineSegment:
		return "segment"
	default:
		return "unknown"
	}
}

// LineSource records how a line came to exist.
type LineSource int

const (
	SourceStandard    LineSource = iota // explicit construction
	SourceRadicalAxis                   // derived from a two-circle intersection
)

func (s LineSource) String() string {
	switch s {
	case SourceStandard:
		return "standard"
	case SourceRadicalAxis:
		return "radical-axis"
	default:
		return "unknown"
	}
}

// Line is a straight construction element. Points[0] and Points[1]
// define the carrier and are never removed once set; later points
// (for example intersections lying on the line) are appended as
// annotations and never redefine the geometry.
type Line struct {
	ID      ID
	Name    string
	Kind    LineKind
	Source  LineSource
	Points  []*Point
	Display Display
}

func (*Line) object() {}

// Start returns the position of the first defining point.
func (l *Line) Start() v2.Vec { return l.Points[0].Pos() }

// End returns the position of the second defining point.
func (l *Line) End() v2.Vec { return l.Points[1].Pos() }

// Dir returns the unnormalized direction from the first defining
// point to the second.
func (l *Line) Dir() v2.Vec { return l.End().Sub(l.Start()) }

// Degenerate reports whether the two defining points coincide, which
// leaves the carrier direction undefined.
func (l *Line) Degenerate() bool {
	return l.Dir().Length() <= CoincidenceTol
}

// ParamAt returns the projection parameter of p on the carrier:
// 0 at the first defining point, 1 at the second. For a degenerate
// line the parameter is 0.
func (l *Line) ParamAt(p v2.Vec) float64 {
	d := l.Dir()
	d2 := d.Length2()
	if d2 <= Epsilon*Epsilon {
		return 0
	}
	return p.Sub(l.Start()).Dot(d) / d2
}

// PointAt returns the carrier position at parameter t.
func (l *Line) PointAt(t float64) v2.Vec {
	return l.Start().Add(l.Dir().MulScalar(t))
}

// ValidParam reports whether parameter t lies on this variant.
// Infinite lines accept everything; rays require t >= 0 and segments
// t in [0,1], each with a small slack for float noise.
func (l *Line) ValidParam(t float64) bool {
	switch l.Kind {
	case LineRay:
		return t >= -Epsilon
	case LineSegment:
		return t >= -Epsilon && t <= 1+Epsilon
	}
	return true
}

// ClosestPoint projects p onto the carrier and clamps the parameter
// to the variant's extent. A degenerate line answers with its first
// defining point.
func (l *Line) ClosestPoint(p v2.Vec) v2.Vec {
	if l.Degenerate() {
		return l.Start()
	}
	t := l.ParamAt(p)
	switch l.Kind {
	case LineRay:
		if t < 0 {
			t = 0
		}
	case LineSegment:
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	return l.PointAt(t)
}

// Contains reports whether p lies on the line variant within tol.
func (l *Line) Contains(p v2.Vec, tol float64) bool {
	return l.ClosestPoint(p).Sub(p).Length() <= tol
}

// HasPoint reports whether q is already attached to the line
// (identity, not location).
func (l *Line) HasPoint(q *Point) bool {
	for _, p := range l.Points {
		if p == q {
			return true
		}
	}
	return false
}

// AttachPoint appends q to the line's point list if not already
// present. The defining pair is unaffected.
func (l *Line) AttachPoint(q *Point) {
	if !l.HasPoint(q) {
		l.Points = append(l.Points, q)
	}
}

func (l *Line) String() string {
	return fmt.Sprintf("%s[%s %s %s]", l.Name, l.Kind, l.Points[0].Name, l.Points[1].Name)
}
