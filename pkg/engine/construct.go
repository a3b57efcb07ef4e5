package engine

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/neusis/pkg/geom"
	"github.com/chazu/neusis/pkg/intersect"
)

// Construction operations validate first, then delegate to the
// factory and repository. Derived points created at a location an
// existing point already occupies are deduplicated: the relation is
// attached to the existing point and no new object appears.

// CreateFreePoint stores an unconstrained point at (x, y).
func (e *Engine) CreateFreePoint(x, y float64) (*geom.Point, error) {
	if !geom.Finite(x, y) {
		return nil, fmt.Errorf("free point: non-finite coordinate: %w", geom.ErrInvalidObject)
	}
	p := e.factory.Point("", x, y)
	e.sk.AddPoint(p)
	return p, nil
}

// CreatePointOnLine projects (x, y) onto the line and stores a point
// there, constrained to stay on it.
func (e *Engine) CreatePointOnLine(l *geom.Line, x, y float64) (*geom.Point, error) {
	if l == nil {
		return nil, fmt.Errorf("point on line: nil line: %w", geom.ErrInvalidObject)
	}
	if !geom.Finite(x, y) {
		return nil, fmt.Errorf("point on line: non-finite coordinate: %w", geom.ErrInvalidObject)
	}
	if l.Degenerate() {
		return nil, fmt.Errorf("point on degenerate line %s: %w", l.Name, geom.ErrInvalidObject)
	}
	pos := l.ClosestPoint(v2.Vec{X: x, Y: y})
	p := e.factory.Point("", pos.X, pos.Y)
	e.sk.AddPoint(p)
	l.AttachPoint(p)
	e.register(&geom.Constraint{Kind: geom.OnLine, Elements: []geom.ID{p.ID, l.ID}})
	return p, nil
}

// CreatePointOnCircle projects (x, y) onto the circle and stores a
// point there, constrained to stay on it.
func (e *Engine) CreatePointOnCircle(c *geom.Circle, x, y float64) (*geom.Point, error) {
	if c == nil {
		return nil, fmt.Errorf("point on circle: nil circle: %w", geom.ErrInvalidObject)
	}
	if !geom.Finite(x, y) {
		return nil, fmt.Errorf("point on circle: non-finite coordinate: %w", geom.ErrInvalidObject)
	}
	if c.Degenerate() {
		return nil, fmt.Errorf("point on degenerate circle %s: %w", c.Name, geom.ErrInvalidObject)
	}
	pos := c.ClosestPoint(v2.Vec{X: x, Y: y})
	p := e.factory.Point("", pos.X, pos.Y)
	e.sk.AddPoint(p)
	c.AttachPoint(p)
	e.register(&geom.Constraint{Kind: geom.OnCircle, Elements: []geom.ID{p.ID, c.ID}})
	return p, nil
}

// CreateMidpoint stores a point held at the mean of two distinct
// points. An existing point at that location is reused.
func (e *Engine) CreateMidpoint(a, b *geom.Point) (*geom.Point, error) {
	if err := checkPair("midpoint", a, b); err != nil {
		return nil, err
	}
	mid := a.Pos().Add(b.Pos()).MulScalar(0.5)
	p := e.adoptPoint(mid)
	e.register(&geom.Constraint{Kind: geom.Midpoint, Elements: []geom.ID{p.ID, a.ID, b.ID}})
	return p, nil
}

// CreateInfiniteLine stores the unbounded line through two distinct
// points. If one already connects the same pair it is returned
// instead; rays and segments are never deduplicated this way.
func (e *Engine) CreateInfiniteLine(a, b *geom.Point) (*geom.Line, error) {
	if err := checkPair("infinite line", a, b); err != nil {
		return nil, err
	}
	if ex := e.sk.LineThrough(a, b); ex != nil {
		return ex, nil
	}
	l := e.factory.Line("", geom.LineInfinite, geom.SourceStandard, a, b)
	e.sk.AddLine(l)
	return l, nil
}

// CreateRay stores the half-line from a through b.
func (e *Engine) CreateRay(a, b *geom.Point) (*geom.Line, error) {
	if err := checkPair("ray", a, b); err != nil {
		return nil, err
	}
	l := e.factory.Line("", geom.LineRay, geom.SourceStandard, a, b)
	e.sk.AddLine(l)
	return l, nil
}

// CreateSegment stores the bounded segment between a and b.
func (e *Engine) CreateSegment(a, b *geom.Point) (*geom.Line, error) {
	if err := checkPair("segment", a, b); err != nil {
		return nil, err
	}
	l := e.factory.Line("", geom.LineSegment, geom.SourceStandard, a, b)
	e.sk.AddLine(l)
	return l, nil
}

// CreatePerpendicularLine stores an infinite line through p at right
// angles to base, held perpendicular as base turns. The line's second
// defining point is synthesized PerpendicularOffset units from p.
func (e *Engine) CreatePerpendicularLine(p *geom.Point, base *geom.Line) (*geom.Line, error) {
	if p == nil || base == nil {
		return nil, fmt.Errorf("perpendicular line: %w", geom.ErrInvalidObject)
	}
	if base.Degenerate() {
		return nil, fmt.Errorf("perpendicular to degenerate line %s: %w", base.Name, geom.ErrInvalidConstruction)
	}
	axis := geom.Perp(base.Dir().Normalize())
	return e.directedLine(p, axis, base, geom.Perpendicular), nil
}

// CreateParallelLine stores an infinite line through p parallel to
// base, held parallel as base turns.
func (e *Engine) CreateParallelLine(p *geom.Point, base *geom.Line) (*geom.Line, error) {
	if p == nil || base == nil {
		return nil, fmt.Errorf("parallel line: %w", geom.ErrInvalidObject)
	}
	if base.Degenerate() {
		return nil, fmt.Errorf("parallel to degenerate line %s: %w", base.Name, geom.ErrInvalidConstruction)
	}
	return e.directedLine(p, base.Dir().Normalize(), base, geom.Parallel), nil
}

func (e *Engine) directedLine(anchor *geom.Point, axis v2.Vec, base *geom.Line, kind geom.ConstraintKind) *geom.Line {
	at := anchor.Pos().Add(axis.MulScalar(PerpendicularOffset))
	second := e.factory.Point("", at.X, at.Y)
	e.sk.AddPoint(second)
	l := e.factory.Line("", geom.LineInfinite, geom.SourceStandard, anchor, second)
	e.sk.AddLine(l)
	e.register(&geom.Constraint{Kind: kind, Elements: []geom.ID{l.ID, base.ID}})
	return l
}

// CreateCircle stores a circle around center through rim; its radius
// follows the two points.
func (e *Engine) CreateCircle(center, rim *geom.Point) (*geom.Circle, error) {
	if err := checkPair("circle", center, rim); err != nil {
		return nil, err
	}
	c := e.factory.TwoPointCircle("", center, rim)
	e.sk.AddCircle(c)
	return c, nil
}

// CreateCircleWithRadius stores a circle of fixed radius r around
// center.
func (e *Engine) CreateCircleWithRadius(center *geom.Point, r float64) (*geom.Circle, error) {
	if center == nil {
		return nil, fmt.Errorf("fixed circle: nil center: %w", geom.ErrInvalidObject)
	}
	if !geom.Finite(r) || r <= 0 {
		return nil, fmt.Errorf("fixed circle: radius %v: %w", r, geom.ErrInvalidObject)
	}
	c := e.factory.FixedCircle("", center, r)
	e.sk.AddCircle(c)
	return c, nil
}

// CreateCompassCircle stores a circle around center whose radius
// follows the distance between two other points, like transferring a
// length with a compass.
func (e *Engine) CreateCompassCircle(center, spanA, spanB *geom.Point) (*geom.Circle, error) {
	if center == nil {
		return nil, fmt.Errorf("compass circle: nil center: %w", geom.ErrInvalidObject)
	}
	if err := checkPair("compass circle", spanA, spanB); err != nil {
		return nil, err
	}
	c := e.factory.CompassCircle("", center, spanA, spanB)
	e.sk.AddCircle(c)
	return c, nil
}

// CreateThreePointCircle stores the circle through three points. The
// points stay freely draggable; the center is a derived point that
// follows them.
func (e *Engine) CreateThreePointCircle(p1, p2, p3 *geom.Point) (*geom.Circle, error) {
	if p1 == nil || p2 == nil || p3 == nil {
		return nil, fmt.Errorf("three-point circle: nil point: %w", geom.ErrInvalidObject)
	}
	for _, pair := range [][2]*geom.Point{{p1, p2}, {p1, p3}, {p2, p3}} {
		if err := checkPair("three-point circle", pair[0], pair[1]); err != nil {
			return nil, err
		}
	}
	pos, err := geom.Circumcenter(p1.Pos(), p2.Pos(), p3.Pos())
	if err != nil {
		return nil, fmt.Errorf("three-point circle through collinear %s, %s, %s: %w",
			p1.Name, p2.Name, p3.Name, geom.ErrInvalidConstruction)
	}
	center := e.factory.Point("", pos.X, pos.Y)
	e.sk.AddPoint(center)
	c := e.factory.ThreePointCircle("", center, p1, p2, p3)
	e.sk.AddCircle(c)
	return c, nil
}

// CreateLineLineIntersection stores the crossing of two lines as a
// derived point. An existing point at the crossing is reused.
func (e *Engine) CreateLineLineIntersection(l1, l2 *geom.Line) (*geom.Point, error) {
	if l1 == nil || l2 == nil {
		return nil, fmt.Errorf("line-line intersection: nil line: %w", geom.ErrInvalidObject)
	}
	if l1 == l2 {
		return nil, fmt.Errorf("intersection of %s with itself: %w", l1.Name, geom.ErrInvalidConstruction)
	}
	pos, ok, err := intersect.LineLine(l1, l2)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s and %s do not meet: %w", l1.Name, l2.Name, geom.ErrCalculation)
	}
	p := e.adoptPoint(pos)
	l1.AttachPoint(p)
	l2.AttachPoint(p)
	e.register(&geom.Constraint{Kind: geom.LineLineIntersect, Elements: []geom.ID{p.ID, l1.ID, l2.ID}})
	return p, nil
}

// CreateLineCircleIntersection stores the meeting points of a line
// and a circle, one or two depending on the configuration.
func (e *Engine) CreateLineCircleIntersection(l *geom.Line, c *geom.Circle) ([]*geom.Point, error) {
	if l == nil || c == nil {
		return nil, fmt.Errorf("line-circle intersection: %w", geom.ErrInvalidObject)
	}
	candidates, err := intersect.LineCircle(l, c)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%s and %s do not meet: %w", l.Name, c.Name, geom.ErrCalculation)
	}
	var points []*geom.Point
	for _, pos := range candidates {
		p := e.adoptPoint(pos)
		l.AttachPoint(p)
		c.AttachPoint(p)
		e.register(&geom.Constraint{Kind: geom.LineCircleIntersect, Elements: []geom.ID{p.ID, l.ID, c.ID}})
		points = append(points, p)
	}
	return points, nil
}

// CreateCircleCircleIntersection stores the meeting points of two
// circles. When they cross in two points, the infinite line through
// both (the radical axis of the pair) is stored as well.
func (e *Engine) CreateCircleCircleIntersection(c1, c2 *geom.Circle) ([]*geom.Point, error) {
	if c1 == nil || c2 == nil {
		return nil, fmt.Errorf("circle-circle intersection: nil circle: %w", geom.ErrInvalidObject)
	}
	if c1 == c2 {
		return nil, fmt.Errorf("intersection of %s with itself: %w", c1.Name, geom.ErrInvalidConstruction)
	}
	candidates, err := intersect.CircleCircle(c1, c2)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%s and %s do not meet: %w", c1.Name, c2.Name, geom.ErrCalculation)
	}
	var points []*geom.Point
	for _, pos := range candidates {
		p := e.adoptPoint(pos)
		c1.AttachPoint(p)
		c2.AttachPoint(p)
		e.register(&geom.Constraint{Kind: geom.CircleCircleIntersect, Elements: []geom.ID{p.ID, c1.ID, c2.ID}})
		points = append(points, p)
	}
	if len(points) == 2 && points[0] != points[1] && e.sk.LineThrough(points[0], points[1]) == nil {
		axis := e.factory.Line("", geom.LineInfinite, geom.SourceRadicalAxis, points[0], points[1])
		e.sk.AddLine(axis)
	}
	return points, nil
}

// adoptPoint returns the existing point at pos when one is within
// coincidence tolerance, creating and storing a fresh point
// otherwise.
func (e *Engine) adoptPoint(pos v2.Vec) *geom.Point {
	if p := e.sk.NearestPoint(pos, geom.CoincidenceTol); p != nil {
		return p
	}
	p := e.factory.Point("", pos.X, pos.Y)
	e.sk.AddPoint(p)
	return p
}

// register stores a constraint unless an identical one is already
// present.
func (e *Engine) register(c *geom.Constraint) {
	if !e.sk.HasConstraint(c) {
		e.sk.AddConstraint(c)
	}
}

func checkPair(op string, a, b *geom.Point) error {
	if a == nil || b == nil {
		return fmt.Errorf("%s: nil point: %w", op, geom.ErrInvalidObject)
	}
	if a == b {
		return fmt.Errorf("%s: %s used twice: %w", op, a.Name, geom.ErrInvalidConstruction)
	}
	if a.Coincides(b) {
		return fmt.Errorf("%s: %s and %s coincide: %w", op, a.Name, b.Name, geom.ErrInvalidConstruction)
	}
	return nil
}
