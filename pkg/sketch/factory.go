package sketch

import (
	"github.com/chazu/neusis/pkg/geom"
)

// Factory is the sole creator of construction objects. It assigns the
// id, the parameter indices, and (when the caller does not supply
// one) the generated display name, all in one place, so naming and
// identity can never drift apart. The factory does not store: the
// engine decides what ends up in the sketch.
type Factory struct {
	session *Session
}

// NewFactory returns a factory drawing ids and names from session.
func NewFactory(session *Session) *Factory {
	return &Factory{session: session}
}

// Point creates a point at (x, y). An empty name is replaced by the
// next generated point name.
func (f *Factory) Point(name string, x, y float64) *geom.Point {
	if name == "" {
		name = f.session.PointName()
	}
	return &geom.Point{
		ID:   f.session.NextID(),
		Name: name,
		X:    geom.Param{Val: x, Index: f.session.NextParam()},
		Y:    geom.Param{Val: y, Index: f.session.NextParam()},
	}
}

// Line creates a line of the given kind through a and b.
func (f *Factory) Line(name string, kind geom.LineKind, source geom.LineSource, a, b *geom.Point) *geom.Line {
	if name == "" {
		name = f.session.LineName()
	}
	return &geom.Line{
		ID:     f.session.NextID(),
		Name:   name,
		Kind:   kind,
		Source: source,
		Points: []*geom.Point{a, b},
	}
}

// TwoPointCircle creates a circle around center through rim.
func (f *Factory) TwoPointCircle(name string, center, rim *geom.Point) *geom.Circle {
	return f.circle(name, geom.CircleTwoPoint, center, []*geom.Point{rim}, 0)
}

// FixedCircle creates a circle around center with a stored radius.
func (f *Factory) FixedCircle(name string, center *geom.Point, r float64) *geom.Circle {
	return f.circle(name, geom.CircleFixed, center, nil, r)
}

// CompassCircle creates a circle around center whose radius is the
// live distance between spanA and spanB.
func (f *Factory) CompassCircle(name string, center, spanA, spanB *geom.Point) *geom.Circle {
	return f.circle(name, geom.CircleCompass, center, []*geom.Point{spanA, spanB}, 0)
}

// ThreePointCircle creates a circle through three rim points with the
// supplied derived center.
func (f *Factory) ThreePointCircle(name string, center, p1, p2, p3 *geom.Point) *geom.Circle {
	return f.circle(name, geom.CircleThreePoint, center, []*geom.Point{p1, p2, p3}, 0)
}

func (f *Factory) circle(name string, kind geom.CircleKind, center *geom.Point, pts []*geom.Point, r float64) *geom.Circle {
	if name == "" {
		name = f.session.CircleName()
	}
	return &geom.Circle{
		ID:     f.session.NextID(),
		Name:   name,
		Kind:   kind,
		Center: center,
		Points: pts,
		R:      r,
	}
}
