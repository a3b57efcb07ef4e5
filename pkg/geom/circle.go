package geom

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// CircleKind enumerates the four circle constructions. Radius is
// always derived at query time, never cached, so circles follow their
// defining points without bookkeeping.
type CircleKind int

const (
	// CircleTwoPoint passes through its first attached point; the
	// radius is the live center-to-point distance.
	CircleTwoPoint CircleKind = iota
	// CircleFixed stores a numeric radius.
	CircleFixed
	// CircleCompass carries a distance: its radius is the live
	// distance between two span points that are not on the circle,
	// the classical compass-carry construction.
	CircleCompass
	// CircleThreePoint passes through three rim points; the center is
	// derived (circumcenter) and recomputed when any rim point moves.
	CircleThreePoint
)

func (k CircleKind) String() string {
	switch k {
	case CircleTwoPoint:
		return "two-point"
	case CircleFixed:
		return "fixed-radius"
	case CircleCompass:
		return "compass"
	case CircleThreePoint:
		return "three-point"
	default:
		return "unknown"
	}
}

// Circle is a circular construction element. Center is owned by
// reference and never nil once constructed. The meaning of Points
// depends on Kind: the rim point for two-point, the two span points
// for compass, the three rim points for three-point. Additional
// incident points (intersections) are appended after the defining
// ones.
type Circle struct {
	ID      ID
	Name    string
	Kind    CircleKind
	Center  *Point
	Points  []*Point
	R       float64 // CircleFixed only
	Display Display
}

func (*Circle) object() {}

// Radius returns the current radius, derived per kind.
func (c *Circle) Radius() float64 {
	switch c.Kind {
	case CircleFixed:
		return c.R
	case CircleCompass:
		return c.Points[0].Pos().Sub(c.Points[1].Pos()).Length()
	default:
		return c.Center.Pos().Sub(c.Points[0].Pos()).Length()
	}
}

// Degenerate reports whether the circle has no usable radius.
func (c *Circle) Degenerate() bool {
	r := c.Radius()
	return !Finite(r) || r <= Epsilon
}

// ClosestPoint scales the center-to-query vector to the radius. When
// the query sits on the center, the direction falls back to the first
// defining point off the center, then to the +X axis.
func (c *Circle) ClosestPoint(p v2.Vec) v2.Vec {
	center := c.Center.Pos()
	dir := p.Sub(center)
	if dir.Length() <= Epsilon {
		dir = c.fallbackDir()
	}
	return center.Add(dir.Normalize().MulScalar(c.Radius()))
}

// fallbackDir picks a deterministic direction for center-coincident
// queries.
func (c *Circle) fallbackDir() v2.Vec {
	center := c.Center.Pos()
	for _, p := range c.Points {
		d := p.Pos().Sub(center)
		if d.Length() > Epsilon {
			return d
		}
	}
	return v2.Vec{X: 1, Y: 0}
}

// Contains reports whether p lies on the circle within tol.
func (c *Circle) Contains(p v2.Vec, tol float64) bool {
	d := p.Sub(c.Center.Pos()).Length()
	diff := d - c.Radius()
	if diff < 0 {
		diff = -diff
	}
	return diff <= tol
}

// HasPoint reports whether q is attached to the circle (identity).
func (c *Circle) HasPoint(q *Point) bool {
	for _, p := range c.Points {
		if p == q {
			return true
		}
	}
	return false
}

// AttachPoint appends q to the circle's point list if not already
// present.
func (c *Circle) AttachPoint(q *Point) {
	if !c.HasPoint(q) {
		c.Points = append(c.Points, q)
	}
}

func (c *Circle) String() string {
	return fmt.Sprintf("%s[%s r=%.6g]", c.Name, c.Kind, c.Radius())
}

// Circumcenter returns the center of the circle through a, b, and c,
// solved with the standard determinant formula. Collinear inputs
// (determinant magnitude below Epsilon) have no circumcenter and
// return an error; callers choose their own degenerate policy.
func Circumcenter(a, b, c v2.Vec) (v2.Vec, error) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if d > -Epsilon && d < Epsilon {
		return v2.Vec{}, fmt.Errorf("circumcenter of collinear points: %w", ErrCalculation)
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return v2.Vec{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}, nil
}
