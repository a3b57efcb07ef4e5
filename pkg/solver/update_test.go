package solver

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/neusis/pkg/geom"
)

func checkPos(t *testing.T, p *geom.Point, x, y, tol float64) {
	t.Helper()
	if math.Abs(p.X.Val-x) > tol || math.Abs(p.Y.Val-y) > tol {
		t.Fatalf("%s at (%v, %v), want (%v, %v)", p.Name, p.X.Val, p.Y.Val, x, y)
	}
}

// move drags a point to a new position and runs the full
// propagation pass over its transitive dependents.
func (sc *scene) move(s *Solver, p *geom.Point, x, y float64) {
	p.SetPos(v2.Vec{X: x, Y: y})
	s.Update(s.TransitiveDependents(p.ID))
}

func TestUpdateMidpoint(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	m := sc.point(5, 0)
	sc.constrain(geom.Midpoint, m.ID, a.ID, b.ID)

	s := sc.solver()
	sc.move(s, a, 2, 4)
	checkPos(t, m, 6, 2, 1e-9)
}

func TestUpdateMidpointChain(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	c := sc.point(10, 10)
	m := sc.point(5, 0)
	sc.constrain(geom.Midpoint, m.ID, a.ID, b.ID)
	n := sc.point(7.5, 5)
	sc.constrain(geom.Midpoint, n.ID, m.ID, c.ID)

	s := sc.solver()
	sc.move(s, a, 4, 8)
	checkPos(t, m, 7, 4, 1e-9)
	checkPos(t, n, 8.5, 7, 1e-9)
}

func TestUpdateLineLineIntersection(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 5)
	b := sc.point(10, 5)
	l1 := sc.line(geom.LineInfinite, a, b)
	c := sc.point(5, 0)
	d := sc.point(5, 10)
	l2 := sc.line(geom.LineInfinite, c, d)
	x := sc.point(5, 5)
	sc.constrain(geom.LineLineIntersect, x.ID, l1.ID, l2.ID)

	s := sc.solver()
	sc.move(s, a, 0, 7)
	checkPos(t, x, 5, 6, 1e-9)
}

func TestUpdateLineLineParallelLeavesPoint(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	l1 := sc.line(geom.LineInfinite, a, b)
	c := sc.point(5, -5)
	d := sc.point(5, 5)
	l2 := sc.line(geom.LineInfinite, c, d)
	x := sc.point(5, 0)
	sc.constrain(geom.LineLineIntersect, x.ID, l1.ID, l2.ID)

	s := sc.solver()
	// Swing the second line horizontal so the pair no longer meets.
	c.SetPos(v2.Vec{X: 0, Y: 5})
	sc.move(s, d, 10, 5)
	checkPos(t, x, 5, 0, 1e-9)
}

func TestUpdateLineCirclePicksNearest(t *testing.T) {
	sc := newScene()
	center := sc.point(0, 0)
	rim := sc.point(5, 0)
	circ := sc.twoPointCircle(center, rim)
	a := sc.point(-10, 0)
	b := sc.point(10, 0)
	l := sc.line(geom.LineInfinite, a, b)
	x := sc.point(5, 0)
	sc.constrain(geom.LineCircleIntersect, x.ID, l.ID, circ.ID)

	s := sc.solver()
	sc.move(s, rim, 3, 0)
	checkPos(t, x, 3, 0, 1e-9)
}

func TestUpdateCircleCircleBranchStability(t *testing.T) {
	sc := newScene()
	o1 := sc.point(0, 0)
	c1 := sc.fixedCircle(o1, 5)
	o2 := sc.point(8, 0)
	c2 := sc.fixedCircle(o2, 5)
	x := sc.point(4, 3)
	sc.constrain(geom.CircleCircleIntersect, x.ID, c1.ID, c2.ID)

	s := sc.solver()
	sc.move(s, o2, 8, 2)

	if x.Y.Val <= 0 {
		t.Fatalf("intersection jumped branches: %v", x)
	}
	if d := x.DistanceTo(o1.Pos()); math.Abs(d-5) > 1e-9 {
		t.Errorf("distance to first center = %v, want 5", d)
	}
	if d := x.DistanceTo(o2.Pos()); math.Abs(d-5) > 1e-9 {
		t.Errorf("distance to second center = %v, want 5", d)
	}
}

func TestUpdateCircleCircleApartLeavesPoint(t *testing.T) {
	sc := newScene()
	o1 := sc.point(0, 0)
	c1 := sc.fixedCircle(o1, 5)
	o2 := sc.point(8, 0)
	c2 := sc.fixedCircle(o2, 5)
	x := sc.point(4, 3)
	sc.constrain(geom.CircleCircleIntersect, x.ID, c1.ID, c2.ID)

	s := sc.solver()
	sc.move(s, o2, 100, 0)
	checkPos(t, x, 4, 3, 1e-9)
}

func TestUpdateOnLineProjection(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	l := sc.line(geom.LineInfinite, a, b)
	p := sc.point(3, 0)
	sc.constrain(geom.OnLine, p.ID, l.ID)

	s := sc.solver()
	sc.move(s, b, 10, 10)
	checkPos(t, p, 1.5, 1.5, 1e-9)
}

func TestUpdateOnCircleProjection(t *testing.T) {
	sc := newScene()
	center := sc.point(0, 0)
	rim := sc.point(5, 0)
	circ := sc.twoPointCircle(center, rim)
	p := sc.point(0, 5)
	sc.constrain(geom.OnCircle, p.ID, circ.ID)

	s := sc.solver()
	sc.move(s, rim, 3, 0)
	checkPos(t, p, 0, 3, 1e-9)
}

func TestUpdatePerpendicularFollowsBase(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	base := sc.line(geom.LineInfinite, a, b)
	anchor := sc.point(2, 3)
	second := sc.point(2, 103)
	perp := sc.line(geom.LineInfinite, anchor, second)
	sc.constrain(geom.Perpendicular, perp.ID, base.ID)

	s := sc.solver()
	sc.move(s, b, 10, 10)

	if dot := perp.Dir().Dot(base.Dir()); math.Abs(dot) > 1e-6 {
		t.Errorf("lines no longer perpendicular, dot = %v", dot)
	}
	if d := second.DistanceTo(anchor.Pos()); math.Abs(d-100) > 1e-9 {
		t.Errorf("span length = %v, want 100", d)
	}
	if second.Y.Val <= anchor.Y.Val {
		t.Errorf("second point switched sides: %v", second)
	}
	checkPos(t, anchor, 2, 3, 0)
}

func TestUpdateParallelFollowsBase(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	base := sc.line(geom.LineInfinite, a, b)
	anchor := sc.point(2, 3)
	second := sc.point(102, 3)
	par := sc.line(geom.LineInfinite, anchor, second)
	sc.constrain(geom.Parallel, par.ID, base.ID)

	s := sc.solver()
	sc.move(s, b, 10, 10)

	d1 := par.Dir().Normalize()
	d2 := base.Dir().Normalize()
	if cross := d1.X*d2.Y - d1.Y*d2.X; math.Abs(cross) > 1e-6 {
		t.Errorf("lines no longer parallel, cross = %v", cross)
	}
	if d := second.DistanceTo(anchor.Pos()); math.Abs(d-100) > 1e-9 {
		t.Errorf("span length = %v, want 100", d)
	}
	if second.X.Val <= anchor.X.Val {
		t.Errorf("second point switched sides: %v", second)
	}
}

func TestUpdateCircumcenterFollowsRim(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	c := sc.point(5, 5)
	center := sc.point(5, 0)
	sc.threePointCircle(center, a, b, c)

	s := sc.solver()
	sc.move(s, c, 0, 10)
	checkPos(t, center, 5, 5, 1e-9)
}

func TestUpdateCircumcenterCollinearFallback(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	c := sc.point(5, 5)
	center := sc.point(5, 0)
	sc.threePointCircle(center, a, b, c)

	s := sc.solver()
	sc.move(s, c, 20, 0)
	checkPos(t, center, 5, 0, 1e-9)
}

func TestUpdateCenterRefreshesBeforeOnCircle(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	c := sc.point(5, 5)
	center := sc.point(5, 0)
	circ := sc.threePointCircle(center, a, b, c)
	p := sc.point(5, 5)
	sc.constrain(geom.OnCircle, p.ID, circ.ID)

	s := sc.solver()
	sc.move(s, c, 0, 10)

	r := circ.Radius()
	if d := p.DistanceTo(center.Pos()); math.Abs(d-r) > 1e-9 {
		t.Fatalf("on-circle point %v is %v from the new center, radius %v", p, d, r)
	}
}

func TestUpdateFrozenDependentStays(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	m := sc.point(5, 0)
	m.Frozen = true
	sc.constrain(geom.Midpoint, m.ID, a.ID, b.ID)

	s := sc.solver()
	sc.move(s, a, 2, 4)
	checkPos(t, m, 5, 0, 0)
}

func TestUpdateSkipsUnreferencedConstraints(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	m := sc.point(5, 0)
	sc.constrain(geom.Midpoint, m.ID, a.ID, b.ID)
	c := sc.point(0, 10)
	d := sc.point(10, 10)
	m2 := sc.point(5, 10)
	sc.constrain(geom.Midpoint, m2.ID, c.ID, d.ID)

	// Push the second midpoint off its true position; an update that
	// never references it must not repair it.
	m2.SetPos(v2.Vec{X: 99, Y: 99})

	s := sc.solver()
	sc.move(s, a, 2, 4)
	checkPos(t, m, 6, 2, 1e-9)
	checkPos(t, m2, 99, 99, 0)
}
