package solver

import (
	"testing"

	"github.com/chazu/neusis/pkg/geom"
	"github.com/chazu/neusis/pkg/sketch"
)

// scene wires a sketch and factory together so tests can assemble
// constructions without going through the interaction layer.
type scene struct {
	sk *sketch.Sketch
	f  *sketch.Factory
}

func newScene() *scene {
	sk := sketch.New()
	return &scene{sk: sk, f: sketch.NewFactory(sk.Session())}
}

func (sc *scene) point(x, y float64) *geom.Point {
	p := sc.f.Point("", x, y)
	sc.sk.AddPoint(p)
	return p
}

func (sc *scene) line(kind geom.LineKind, a, b *geom.Point) *geom.Line {
	l := sc.f.Line("", kind, geom.SourceStandard, a, b)
	sc.sk.AddLine(l)
	return l
}

func (sc *scene) twoPointCircle(center, rim *geom.Point) *geom.Circle {
	c := sc.f.TwoPointCircle("", center, rim)
	sc.sk.AddCircle(c)
	return c
}

func (sc *scene) fixedCircle(center *geom.Point, r float64) *geom.Circle {
	c := sc.f.FixedCircle("", center, r)
	sc.sk.AddCircle(c)
	return c
}

func (sc *scene) threePointCircle(center, a, b, c *geom.Point) *geom.Circle {
	circ := sc.f.ThreePointCircle("", center, a, b, c)
	sc.sk.AddCircle(circ)
	return circ
}

func (sc *scene) constrain(kind geom.ConstraintKind, elems ...geom.ID) *geom.Constraint {
	c := &geom.Constraint{Kind: kind, Elements: elems}
	sc.sk.AddConstraint(c)
	return c
}

func (sc *scene) solver() *Solver {
	s := New(sc.sk)
	s.Rebuild()
	return s
}

func TestFreedomString(t *testing.T) {
	cases := map[Freedom]string{
		Free:                 "free",
		ConstrainedDraggable: "constrained",
		Locked:               "locked",
		Freedom(99):          "unknown",
	}
	for f, want := range cases {
		if got := f.String(); got != want {
			t.Errorf("Freedom(%d).String() = %q, want %q", int(f), got, want)
		}
	}
}

func TestFreedomUnconstrainedPoint(t *testing.T) {
	sc := newScene()
	p := sc.point(1, 2)
	if got := sc.solver().Freedom(p.ID); got != Free {
		t.Fatalf("Freedom = %v, want Free", got)
	}
}

func TestFreedomFrozenPoint(t *testing.T) {
	sc := newScene()
	p := sc.point(1, 2)
	p.Frozen = true
	if got := sc.solver().Freedom(p.ID); got != Locked {
		t.Fatalf("frozen point Freedom = %v, want Locked", got)
	}
}

func TestFreedomOnCurvePoints(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	l := sc.line(geom.LineInfinite, a, b)
	onLine := sc.point(3, 0)
	sc.constrain(geom.OnLine, onLine.ID, l.ID)

	center := sc.point(0, 10)
	rim := sc.point(5, 10)
	c := sc.twoPointCircle(center, rim)
	onCircle := sc.point(0, 15)
	sc.constrain(geom.OnCircle, onCircle.ID, c.ID)

	s := sc.solver()
	if got := s.Freedom(onLine.ID); got != ConstrainedDraggable {
		t.Errorf("on-line point Freedom = %v, want ConstrainedDraggable", got)
	}
	if got := s.Freedom(onCircle.ID); got != ConstrainedDraggable {
		t.Errorf("on-circle point Freedom = %v, want ConstrainedDraggable", got)
	}
	if got := s.Freedom(a.ID); got != Free {
		t.Errorf("defining point Freedom = %v, want Free", got)
	}
}

func TestFreedomDerivedPoints(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	m := sc.point(5, 0)
	sc.constrain(geom.Midpoint, m.ID, a.ID, b.ID)

	l1 := sc.line(geom.LineInfinite, a, b)
	c := sc.point(5, -5)
	d := sc.point(5, 5)
	l2 := sc.line(geom.LineInfinite, c, d)
	x := sc.point(5, 0)
	sc.constrain(geom.LineLineIntersect, x.ID, l1.ID, l2.ID)

	s := sc.solver()
	if got := s.Freedom(m.ID); got != Locked {
		t.Errorf("midpoint Freedom = %v, want Locked", got)
	}
	if got := s.Freedom(x.ID); got != Locked {
		t.Errorf("intersection Freedom = %v, want Locked", got)
	}
}

func TestFreedomPerpendicularLinePoints(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	base := sc.line(geom.LineInfinite, a, b)
	anchor := sc.point(2, 3)
	second := sc.point(2, 103)
	perp := sc.line(geom.LineInfinite, anchor, second)
	sc.constrain(geom.Perpendicular, perp.ID, base.ID)

	s := sc.solver()
	if got := s.Freedom(anchor.ID); got != Free {
		t.Errorf("perpendicular anchor Freedom = %v, want Free", got)
	}
	if got := s.Freedom(second.ID); got != Free {
		t.Errorf("perpendicular second point Freedom = %v, want Free", got)
	}
}

func TestFreedomOnCurveBeatsParallel(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	base := sc.line(geom.LineInfinite, a, b)
	rail := sc.line(geom.LineInfinite, sc.point(0, 5), sc.point(10, 5))
	anchor := sc.point(3, 5)
	sc.constrain(geom.OnLine, anchor.ID, rail.ID)
	second := sc.point(3, 105)
	par := sc.line(geom.LineInfinite, anchor, second)
	sc.constrain(geom.Parallel, par.ID, base.ID)

	if got := sc.solver().Freedom(anchor.ID); got != ConstrainedDraggable {
		t.Fatalf("anchor Freedom = %v, want ConstrainedDraggable", got)
	}
}

func TestFreedomCircumcenterLocked(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	c := sc.point(5, 5)
	center := sc.point(5, 0)
	sc.threePointCircle(center, a, b, c)

	s := sc.solver()
	if got := s.Freedom(center.ID); got != Locked {
		t.Errorf("derived center Freedom = %v, want Locked", got)
	}
	if got := s.Freedom(a.ID); got != Free {
		t.Errorf("rim point Freedom = %v, want Free", got)
	}
}

func TestTransitiveDependentsIncludesSeed(t *testing.T) {
	sc := newScene()
	p := sc.point(1, 1)
	got := sc.solver().TransitiveDependents(p.ID)
	if len(got) != 1 || !got[p.ID] {
		t.Fatalf("TransitiveDependents = %v, want just the seed", got)
	}
}

func TestTransitiveDependentsChain(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	c := sc.point(10, 10)
	m := sc.point(5, 0)
	sc.constrain(geom.Midpoint, m.ID, a.ID, b.ID)
	n := sc.point(7.5, 5)
	sc.constrain(geom.Midpoint, n.ID, m.ID, c.ID)

	got := sc.solver().TransitiveDependents(a.ID)
	for _, id := range []geom.ID{a.ID, m.ID, n.ID} {
		if !got[id] {
			t.Errorf("closure missing id %d", id)
		}
	}
	if got[b.ID] || got[c.ID] {
		t.Errorf("closure %v should not contain sibling determiners", got)
	}
}

func TestTransitiveDependentsThroughLine(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	l := sc.line(geom.LineInfinite, a, b)
	p := sc.point(3, 0)
	sc.constrain(geom.OnLine, p.ID, l.ID)

	got := sc.solver().TransitiveDependents(a.ID)
	if !got[p.ID] {
		t.Errorf("moving a defining point should reach the on-line point, got %v", got)
	}
	if got[l.ID] {
		t.Errorf("line carrier id should not appear as a dependent, got %v", got)
	}
}

func TestTransitiveDependentsCycleSafe(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	c := sc.point(4, 4)
	m := sc.point(5, 0)
	sc.constrain(geom.Midpoint, m.ID, a.ID, b.ID)
	// Deliberately circular: a also claims to be derived from m.
	sc.constrain(geom.Midpoint, a.ID, m.ID, c.ID)

	got := sc.solver().TransitiveDependents(a.ID)
	if !got[a.ID] || !got[m.ID] {
		t.Fatalf("closure %v should contain both members of the cycle", got)
	}
}

func TestOnCurve(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	l := sc.line(geom.LineInfinite, a, b)
	p := sc.point(3, 0)
	sc.constrain(geom.OnLine, p.ID, l.ID)
	free := sc.point(20, 20)

	s := sc.solver()
	curve := s.OnCurve(p.ID)
	if got, ok := curve.(*geom.Line); !ok || got != l {
		t.Errorf("OnCurve = %v, want the constraining line", curve)
	}
	if got := s.OnCurve(free.ID); got != nil {
		t.Errorf("OnCurve of a free point = %v, want nil", got)
	}
}

func TestRebuildDropsStaleEntries(t *testing.T) {
	sc := newScene()
	a := sc.point(0, 0)
	b := sc.point(10, 0)
	m := sc.point(5, 0)
	sc.constrain(geom.Midpoint, m.ID, a.ID, b.ID)

	s := sc.solver()
	if got := s.Freedom(m.ID); got != Locked {
		t.Fatalf("Freedom before clear = %v, want Locked", got)
	}

	sc.sk.Clear()
	s.Rebuild()
	if got := s.Freedom(m.ID); got != Free {
		t.Fatalf("Freedom after clear = %v, want Free", got)
	}
}
