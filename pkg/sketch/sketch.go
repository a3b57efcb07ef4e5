package sketch

import (
	"github.com/chazu/neusis/pkg/geom"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Sketch is the canonical repository of one construction. Collections
// keep creation order for deterministic iteration; the id index backs
// lookups. Objects are added through the engine/factory pair and are
// removed only by a whole-sketch Clear.
type Sketch struct {
	session     *Session
	points      []*geom.Point
	lines       []*geom.Line
	circles     []*geom.Circle
	constraints []*geom.Constraint
	byID        map[geom.ID]geom.Object
}

// New creates an empty sketch with a fresh session.
func New() *Sketch {
	return &Sketch{
		session: NewSession(),
		byID:    make(map[geom.ID]geom.Object),
	}
}

// Session returns the sketch's counter state.
func (s *Sketch) Session() *Session { return s.session }

// AddPoint stores p unless an object with its id is already present
// (add-if-absent by identity, not by location).
func (s *Sketch) AddPoint(p *geom.Point) {
	if _, ok := s.byID[p.ID]; ok {
		return
	}
	s.points = append(s.points, p)
	s.byID[p.ID] = p
}

// AddLine stores l unless already present.
func (s *Sketch) AddLine(l *geom.Line) {
	if _, ok := s.byID[l.ID]; ok {
		return
	}
	s.lines = append(s.lines, l)
	s.byID[l.ID] = l
}

// AddCircle stores c unless already present.
func (s *Sketch) AddCircle(c *geom.Circle) {
	if _, ok := s.byID[c.ID]; ok {
		return
	}
	s.circles = append(s.circles, c)
	s.byID[c.ID] = c
}

// AddConstraint appends c to the ordered constraint list.
func (s *Sketch) AddConstraint(c *geom.Constraint) {
	s.constraints = append(s.constraints, c)
}

// HasConstraint reports whether an equal constraint (same kind, same
// elements) is already registered.
func (s *Sketch) HasConstraint(c *geom.Constraint) bool {
	for _, have := range s.constraints {
		if have.SameAs(c) {
			return true
		}
	}
	return false
}

// Points returns the live point list in creation order. Read-only.
func (s *Sketch) Points() []*geom.Point { return s.points }

// Lines returns the live line list in creation order. Read-only.
func (s *Sketch) Lines() []*geom.Line { return s.lines }

// Circles returns the live circle list in creation order. Read-only.
func (s *Sketch) Circles() []*geom.Circle { return s.circles }

// Constraints returns the registered constraints in registration
// order. Read-only.
func (s *Sketch) Constraints() []*geom.Constraint { return s.constraints }

// Object returns the object with the given id, or nil.
func (s *Sketch) Object(id geom.ID) geom.Object {
	return s.byID[id]
}

// Point returns the point with the given id, or nil.
func (s *Sketch) Point(id geom.ID) *geom.Point {
	p, _ := s.byID[id].(*geom.Point)
	return p
}

// Line returns the line with the given id, or nil.
func (s *Sketch) Line(id geom.ID) *geom.Line {
	l, _ := s.byID[id].(*geom.Line)
	return l
}

// Circle returns the circle with the given id, or nil.
func (s *Sketch) Circle(id geom.ID) *geom.Circle {
	c, _ := s.byID[id].(*geom.Circle)
	return c
}

// FindName returns the object carrying the given display name, or nil.
func (s *Sketch) FindName(name string) geom.Object {
	for _, p := range s.points {
		if p.Name == name {
			return p
		}
	}
	for _, l := range s.lines {
		if l.Name == name {
			return l
		}
	}
	for _, c := range s.circles {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AllObjects returns every object: points, then lines, then circles,
// each in creation order.
func (s *Sketch) AllObjects() []geom.Object {
	out := make([]geom.Object, 0, len(s.points)+len(s.lines)+len(s.circles))
	for _, p := range s.points {
		out = append(out, p)
	}
	for _, l := range s.lines {
		out = append(out, l)
	}
	for _, c := range s.circles {
		out = append(out, c)
	}
	return out
}

// NearestPoint returns the point nearest to pos within tol, or nil.
// Hidden points participate: dedup must see them.
func (s *Sketch) NearestPoint(pos v2.Vec, tol float64) *geom.Point {
	var best *geom.Point
	bestDist := tol
	for _, p := range s.points {
		d := p.Pos().Sub(pos).Length()
		if d <= bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

// NearestLine returns the line whose closest point to pos is nearest
// within tol, or nil.
func (s *Sketch) NearestLine(pos v2.Vec, tol float64) *geom.Line {
	var best *geom.Line
	bestDist := tol
	for _, l := range s.lines {
		d := l.ClosestPoint(pos).Sub(pos).Length()
		if d <= bestDist {
			best = l
			bestDist = d
		}
	}
	return best
}

// NearestCircle returns the circle whose rim is nearest to pos within
// tol, or nil.
func (s *Sketch) NearestCircle(pos v2.Vec, tol float64) *geom.Circle {
	var best *geom.Circle
	bestDist := tol
	for _, c := range s.circles {
		d := c.ClosestPoint(pos).Sub(pos).Length()
		if d <= bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// LineThrough returns the infinite line whose defining pair is
// exactly {a, b} in either order (identity comparison), or nil.
// Rays and segments are never shared this way: the same pair can
// define different rays.
func (s *Sketch) LineThrough(a, b *geom.Point) *geom.Line {
	for _, l := range s.lines {
		if l.Kind != geom.LineInfinite {
			continue
		}
		p0, p1 := l.Points[0], l.Points[1]
		if (p0 == a && p1 == b) || (p0 == b && p1 == a) {
			return l
		}
	}
	return nil
}

// Clear empties all four collections and resets the session counters
// in one step.
func (s *Sketch) Clear() {
	s.points = nil
	s.lines = nil
	s.circles = nil
	s.constraints = nil
	s.byID = make(map[geom.ID]geom.Object)
	s.session.Reset()
}
