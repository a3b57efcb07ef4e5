package solver

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/neusis/pkg/geom"
	"github.com/chazu/neusis/pkg/intersect"
)

// Category order for constraint re-evaluation. Derived circumcenters
// run before any of these; reserved kinds run after everything and do
// nothing. Within a category, registration order applies.
var updateOrder = [][]geom.ConstraintKind{
	{geom.Midpoint},
	{geom.LineLineIntersect},
	{geom.LineCircleIntersect},
	{geom.CircleCircleIntersect},
	{geom.OnLine, geom.OnCircle},
	{geom.Perpendicular, geom.Parallel},
}

// Update re-evaluates every constraint that references an affected
// object, in category order, each exactly once. A constraint whose
// recomputation fails leaves its dependent where it was. The pass is
// single-shot: no constraint runs twice even if a later category
// moves one of its inputs.
func (s *Solver) Update(affected map[geom.ID]bool) {
	for _, c := range s.sk.Circles() {
		if c.Kind != geom.CircleThreePoint {
			continue
		}
		if !s.touchesAffected(c.ID, affected) {
			continue
		}
		s.recenter(c)
	}

	for _, kinds := range updateOrder {
		for _, c := range s.sk.Constraints() {
			if !kindIn(c.Kind, kinds) {
				continue
			}
			if !s.constraintTouched(c, affected) {
				continue
			}
			s.reapply(c)
		}
	}
}

func kindIn(k geom.ConstraintKind, kinds []geom.ConstraintKind) bool {
	for _, kk := range kinds {
		if k == kk {
			return true
		}
	}
	return false
}

// constraintTouched reports whether any id the constraint references,
// expanded down to underlying points, is in the affected set.
func (s *Solver) constraintTouched(c *geom.Constraint, affected map[geom.ID]bool) bool {
	for _, el := range c.Elements {
		if affected[el] {
			return true
		}
		for id := range s.expand(el) {
			if affected[id] {
				return true
			}
		}
	}
	return false
}

// touchesAffected reports whether a circle or any of its expanded
// point ids is in the affected set.
func (s *Solver) touchesAffected(id geom.ID, affected map[geom.ID]bool) bool {
	if affected[id] {
		return true
	}
	for eid := range s.expand(id) {
		if affected[eid] {
			return true
		}
	}
	return false
}

// recenter recomputes the derived center of a three-point circle.
// Collinear rim points fall back to the midpoint of the first two.
func (s *Solver) recenter(c *geom.Circle) {
	rim := definingPoints(c)
	if len(rim) < 3 {
		return
	}
	pos, err := geom.Circumcenter(rim[0].Pos(), rim[1].Pos(), rim[2].Pos())
	if err != nil {
		pos = rim[0].Pos().Add(rim[1].Pos()).MulScalar(0.5)
	}
	setPos(c.Center, pos)
}

func (s *Solver) reapply(c *geom.Constraint) {
	switch c.Kind {
	case geom.Midpoint:
		s.reapplyMidpoint(c)
	case geom.LineLineIntersect:
		s.reapplyLineLine(c)
	case geom.LineCircleIntersect:
		s.reapplyLineCircle(c)
	case geom.CircleCircleIntersect:
		s.reapplyCircleCircle(c)
	case geom.OnLine:
		s.reapplyOnCurve(c, s.sk.Line(c.Elements[1]))
	case geom.OnCircle:
		s.reapplyOnCurve(c, s.sk.Circle(c.Elements[1]))
	case geom.Perpendicular:
		s.reapplyDirected(c, true)
	case geom.Parallel:
		s.reapplyDirected(c, false)
	}
}

func (s *Solver) reapplyMidpoint(c *geom.Constraint) {
	p := s.sk.Point(c.Dependent())
	a := s.sk.Point(c.Elements[1])
	b := s.sk.Point(c.Elements[2])
	if p == nil || a == nil || b == nil {
		return
	}
	setPos(p, a.Pos().Add(b.Pos()).MulScalar(0.5))
}

func (s *Solver) reapplyLineLine(c *geom.Constraint) {
	p := s.sk.Point(c.Dependent())
	l1 := s.sk.Line(c.Elements[1])
	l2 := s.sk.Line(c.Elements[2])
	if p == nil || l1 == nil || l2 == nil {
		return
	}
	pos, ok, err := intersect.LineLine(l1, l2)
	if err != nil || !ok {
		return
	}
	setPos(p, pos)
}

func (s *Solver) reapplyLineCircle(c *geom.Constraint) {
	p := s.sk.Point(c.Dependent())
	l := s.sk.Line(c.Elements[1])
	circ := s.sk.Circle(c.Elements[2])
	if p == nil || l == nil || circ == nil {
		return
	}
	candidates, err := intersect.LineCircle(l, circ)
	if err != nil || len(candidates) == 0 {
		return
	}
	setPos(p, nearest(candidates, p.Pos()))
}

func (s *Solver) reapplyCircleCircle(c *geom.Constraint) {
	p := s.sk.Point(c.Dependent())
	c1 := s.sk.Circle(c.Elements[1])
	c2 := s.sk.Circle(c.Elements[2])
	if p == nil || c1 == nil || c2 == nil {
		return
	}
	candidates, err := intersect.CircleCircle(c1, c2)
	if err != nil || len(candidates) == 0 {
		return
	}
	setPos(p, nearest(candidates, p.Pos()))
}

func (s *Solver) reapplyOnCurve(c *geom.Constraint, curve geom.Object) {
	p := s.sk.Point(c.Dependent())
	if p == nil || curve == nil {
		return
	}
	switch o := curve.(type) {
	case *geom.Line:
		if o.Degenerate() {
			return
		}
		setPos(p, o.ClosestPoint(p.Pos()))
	case *geom.Circle:
		if o.Degenerate() {
			return
		}
		setPos(p, o.ClosestPoint(p.Pos()))
	}
}

// reapplyDirected re-aims a perpendicular or parallel line at its
// base. The anchor stays put; the second defining point keeps its
// distance from the anchor and its side of it.
func (s *Solver) reapplyDirected(c *geom.Constraint, perpendicular bool) {
	l := s.sk.Line(c.Dependent())
	base := s.sk.Line(c.Elements[1])
	if l == nil || base == nil || base.Degenerate() || len(l.Points) < 2 {
		return
	}
	anchor := l.Points[0]
	second := l.Points[1]
	span := second.Pos().Sub(anchor.Pos())
	d := span.Length()
	if d <= geom.Epsilon {
		return
	}
	axis := base.Dir().Normalize()
	if perpendicular {
		axis = geom.Perp(axis)
	}
	if span.Dot(axis) < 0 {
		d = -d
	}
	setPos(second, anchor.Pos().Add(axis.MulScalar(d)))
}

// setPos moves a point unless it is frozen.
func setPos(p *geom.Point, pos v2.Vec) {
	if p == nil || p.Frozen {
		return
	}
	p.SetPos(pos)
}

func nearest(candidates []v2.Vec, to v2.Vec) v2.Vec {
	best := candidates[0]
	bestD := best.Sub(to).Length2()
	for _, cand := range candidates[1:] {
		if d := cand.Sub(to).Length2(); d < bestD {
			best = cand
			bestD = d
		}
	}
	return best
}
