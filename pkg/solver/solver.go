// Package solver maintains the constraint dependency graph: which
// objects are determined by which points, how far an edit propagates,
// whether an object may be dragged, and the fixed-order re-evaluation
// that runs after every move.
package solver

import (
	"github.com/chazu/neusis/pkg/geom"
	"github.com/chazu/neusis/pkg/sketch"
)

// Freedom classifies how an object responds to a drag request.
// Exactly one class applies to every object at any time.
type Freedom int

const (
	// Free objects move wherever the drag puts them.
	Free Freedom = iota
	// ConstrainedDraggable objects move, then are projected back onto
	// their constraining curve.
	ConstrainedDraggable
	// Locked objects refuse direct drags; they move only as a side
	// effect of their determiners moving.
	Locked
)

func (f Freedom) String() string {
	switch f {
	case Free:
		return "free"
	case ConstrainedDraggable:
		return "constrained"
	case Locked:
		return "locked"
	default:
		return "unknown"
	}
}

// entry collects everything that determines one dependent object:
// the constraints naming it as their first element, the circle whose
// derived center it is (three-point circles only), and the expanded
// set of free-point ids it is computed from.
type entry struct {
	constraints []*geom.Constraint
	circle      *geom.Circle
	determiners map[geom.ID]bool
}

// Solver owns the dependency map for one sketch. The map is built by
// Rebuild from the live constraint list; callers refresh it with
// Rebuild after registering or restoring constraints, then query.
type Solver struct {
	sk *sketch.Sketch

	entries    map[geom.ID]*entry
	dependents map[geom.ID][]geom.ID // determiner id -> dependent ids
}

// New returns a solver for sk with an empty dependency map.
func New(sk *sketch.Sketch) *Solver {
	return &Solver{
		sk:         sk,
		entries:    make(map[geom.ID]*entry),
		dependents: make(map[geom.ID][]geom.ID),
	}
}

// Rebuild reconstructs the dependency map from the sketch's
// constraints and three-point circles.
func (s *Solver) Rebuild() {
	s.entries = make(map[geom.ID]*entry)
	s.dependents = make(map[geom.ID][]geom.ID)

	for _, c := range s.sk.Constraints() {
		switch c.Kind {
		case geom.EqualDistance:
			// Reserved kind: representable, never solved.
			continue

		case geom.Perpendicular, geom.Parallel:
			dets := s.expand(c.Elements[1])
			s.addEntry(c.Dependent(), c, nil, dets)
			// The dependent line's own points are reachable from the
			// base line, so transitive closure can find them.
			if l := s.sk.Line(c.Dependent()); l != nil {
				for _, p := range lineDefining(l) {
					s.addEntry(p.ID, c, nil, dets)
				}
			}

		default:
			dets := make(map[geom.ID]bool)
			for _, d := range c.Determiners() {
				for id := range s.expand(d) {
					dets[id] = true
				}
			}
			s.addEntry(c.Dependent(), c, nil, dets)
		}
	}

	// Derived circumcenters: the center of a three-point circle
	// depends on its rim points without any registered constraint.
	for _, c := range s.sk.Circles() {
		if c.Kind != geom.CircleThreePoint {
			continue
		}
		dets := make(map[geom.ID]bool)
		for _, p := range definingPoints(c) {
			dets[p.ID] = true
		}
		s.addEntry(c.Center.ID, nil, c, dets)
	}
}

func (s *Solver) addEntry(dep geom.ID, c *geom.Constraint, circle *geom.Circle, dets map[geom.ID]bool) {
	e := s.entries[dep]
	if e == nil {
		e = &entry{determiners: make(map[geom.ID]bool)}
		s.entries[dep] = e
	}
	if c != nil {
		e.constraints = append(e.constraints, c)
	}
	if circle != nil {
		e.circle = circle
	}
	for id := range dets {
		if !e.determiners[id] {
			e.determiners[id] = true
			s.dependents[id] = append(s.dependents[id], dep)
		}
	}
}

// expand resolves an element id to the set of free-point ids its
// position flows from: a point is itself, a line is its two defining
// points, a circle is its center plus its kind's defining points.
func (s *Solver) expand(id geom.ID) map[geom.ID]bool {
	out := make(map[geom.ID]bool)
	switch o := s.sk.Object(id).(type) {
	case *geom.Point:
		out[o.ID] = true
	case *geom.Line:
		for _, p := range lineDefining(o) {
			out[p.ID] = true
		}
	case *geom.Circle:
		out[o.Center.ID] = true
		for _, p := range definingPoints(o) {
			out[p.ID] = true
		}
	}
	return out
}

// lineDefining returns the two points that define a line's carrier,
// excluding appended incident points.
func lineDefining(l *geom.Line) []*geom.Point {
	if len(l.Points) > 2 {
		return l.Points[:2]
	}
	return l.Points
}

// definingPoints returns the kind-specific defining subset of a
// circle's point list, excluding appended incident points.
func definingPoints(c *geom.Circle) []*geom.Point {
	var n int
	switch c.Kind {
	case geom.CircleTwoPoint:
		n = 1
	case geom.CircleFixed:
		n = 0
	case geom.CircleCompass:
		n = 2
	case geom.CircleThreePoint:
		n = 3
	}
	if n > len(c.Points) {
		n = len(c.Points)
	}
	return c.Points[:n]
}

// TransitiveDependents returns every object reachable from the seed
// ids along dependency edges, including the seeds themselves. The
// visited set guards against accidental cycles.
func (s *Solver) TransitiveDependents(seeds ...geom.ID) map[geom.ID]bool {
	out := make(map[geom.ID]bool)
	queue := append([]geom.ID(nil), seeds...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if out[id] {
			continue
		}
		out[id] = true
		queue = append(queue, s.dependents[id]...)
	}
	return out
}

// Freedom classifies the object with the given id. Frozen points are
// always Locked. Perpendicular/parallel relations never restrict
// dragging; a single on-curve relation allows projected dragging;
// everything else locks.
func (s *Solver) Freedom(id geom.ID) Freedom {
	if p := s.sk.Point(id); p != nil && p.Frozen {
		return Locked
	}
	e := s.entries[id]
	if e == nil {
		return Free
	}
	if e.circle != nil {
		return Locked
	}
	onCurve := false
	for _, c := range e.constraints {
		switch c.Kind {
		case geom.Perpendicular, geom.Parallel:
		case geom.OnLine, geom.OnCircle:
			onCurve = true
		default:
			return Locked
		}
	}
	if onCurve {
		return ConstrainedDraggable
	}
	return Free
}

// OnCurve returns the curve a constrained-draggable point projects
// onto, or nil if the point has no on-line/on-circle relation.
func (s *Solver) OnCurve(id geom.ID) geom.Object {
	e := s.entries[id]
	if e == nil {
		return nil
	}
	for _, c := range e.constraints {
		if c.Kind == geom.OnLine || c.Kind == geom.OnCircle {
			return s.sk.Object(c.Elements[1])
		}
	}
	return nil
}
