package engine

import (
	"testing"

	"github.com/chazu/neusis/pkg/geom"
)

func TestSelectPointAt(t *testing.T) {
	e := New()
	mustPoint(t, e, 0, 0)
	b := mustPoint(t, e, 10, 0)
	hidden := mustPoint(t, e, 5, 0)
	e.SetHidden(hidden.ID, true)

	if got := e.SelectPointAt(9, 0, 2); got != b {
		t.Errorf("SelectPointAt = %v, want B", got)
	}
	if got := e.SelectPointAt(4.6, 0, 1); got != nil {
		t.Errorf("SelectPointAt found hidden point %v", got)
	}
	if got := e.SelectPointAt(9, 0, 0); got != b {
		t.Errorf("SelectPointAt with default radius = %v, want B", got)
	}
	if got := e.SelectPointAt(100, 100, 5); got != nil {
		t.Errorf("SelectPointAt = %v, want nil", got)
	}
}

func TestSelectLineAt(t *testing.T) {
	e := New()
	l1 := mustLine(t, e, 0, 0, 10, 0)
	l2 := mustLine(t, e, 0, 10, 10, 10)

	if got := e.SelectLineAt(5, 2, 3); got != l1 {
		t.Errorf("SelectLineAt = %v, want the nearer line", got)
	}
	e.SetHidden(l1.ID, true)
	if got := e.SelectLineAt(5, 2, 3); got != nil {
		t.Errorf("SelectLineAt = %v, want nil once hidden", got)
	}
	if got := e.SelectLineAt(5, 2, 0); got != l2 {
		t.Errorf("SelectLineAt with default radius = %v, want the far line", got)
	}
}

func TestSelectCircleAt(t *testing.T) {
	e := New()
	c := mustCircle(t, e, 0, 0, 5, 0)

	if got := e.SelectCircleAt(0, 6, 2); got != c {
		t.Errorf("SelectCircleAt = %v, want the circle", got)
	}
	if got := e.SelectCircleAt(0, 0, 2); got != nil {
		t.Errorf("SelectCircleAt at center = %v, want nil (rim is 5 away)", got)
	}
	e.SetHidden(c.ID, true)
	if got := e.SelectCircleAt(0, 6, 2); got != nil {
		t.Errorf("SelectCircleAt = %v, want nil once hidden", got)
	}
}

func TestDisplayEdits(t *testing.T) {
	e := New()
	p := mustPoint(t, e, 1, 1)

	if !e.SetColor(p.ID, "#cc0000") {
		t.Fatal("SetColor refused a known id")
	}
	if p.Display.Color != "#cc0000" {
		t.Errorf("color = %q, want #cc0000", p.Display.Color)
	}
	if !e.SetHidden(p.ID, true) || !p.Display.Hidden {
		t.Error("SetHidden did not stick")
	}
	if e.SetHidden(geom.ID(999), true) || e.SetColor(geom.ID(999), "x") {
		t.Error("display edits on unknown ids should report false")
	}
}

func TestResolveSnapAndHighlight(t *testing.T) {
	e := New()
	l := mustLine(t, e, 0, 0, 10, 0)
	p := mustPoint(t, e, 5, 5)

	hit, ok := e.ResolveSnap(5.2, 5.1, 8)
	if !ok || hit.Point != p {
		t.Fatalf("ResolveSnap = %+v ok=%v, want the point", hit, ok)
	}

	o, ok := e.HighlightAt(3, 1, 2)
	if !ok || o != geom.Object(l) {
		t.Fatalf("HighlightAt = %v ok=%v, want the line", o, ok)
	}
	if _, ok := e.ResolveSnap(50, 50, 2); ok {
		t.Error("ResolveSnap far from everything should miss")
	}
}

func TestClearResetsSession(t *testing.T) {
	e := New()
	a := mustPoint(t, e, 0, 0)
	b := mustPoint(t, e, 10, 0)
	if _, err := e.CreateInfiniteLine(a, b); err != nil {
		t.Fatalf("CreateInfiniteLine: %v", err)
	}

	e.Clear()
	if n := len(e.AllObjects()); n != 0 {
		t.Fatalf("objects after clear = %d, want 0", n)
	}
	p := mustPoint(t, e, 1, 1)
	if p.Name != "A" || p.ID != 1 {
		t.Errorf("post-clear point = %s id %d, want A id 1", p.Name, p.ID)
	}
}

func TestAllObjectsGrouping(t *testing.T) {
	e := New()
	mustLine(t, e, 0, 0, 10, 0)
	mustCircle(t, e, 0, 10, 5, 10)
	mustPoint(t, e, -3, -3)

	objs := e.AllObjects()
	if len(objs) != 7 {
		t.Fatalf("object count = %d, want 7", len(objs))
	}
	for i, o := range objs[:5] {
		if _, ok := o.(*geom.Point); !ok {
			t.Fatalf("objs[%d] = %T, want all points first", i, o)
		}
	}
	if _, ok := objs[5].(*geom.Line); !ok {
		t.Errorf("objs[5] = %T, want the line", objs[5])
	}
	if _, ok := objs[6].(*geom.Circle); !ok {
		t.Errorf("objs[6] = %T, want the circle", objs[6])
	}
}

func TestFindName(t *testing.T) {
	e := New()
	mustLine(t, e, 0, 0, 10, 0)

	if o, ok := e.FindName("l1"); !ok {
		t.Error("l1 not found")
	} else if _, isLine := o.(*geom.Line); !isLine {
		t.Errorf("l1 = %T, want line", o)
	}
	if _, ok := e.FindName("nope"); ok {
		t.Error("unknown name should not resolve")
	}
}
