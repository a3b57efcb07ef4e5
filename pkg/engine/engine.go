// Package engine is the single entry point for hosts: it glues the
// factory, repository, intersection calculator, dependency solver and
// snap resolver behind one synchronous API. Every construction, drag
// and query call runs to completion on the calling goroutine; hosts
// embedding the engine concurrently must serialize access themselves.
package engine

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/neusis/pkg/geom"
	"github.com/chazu/neusis/pkg/sketch"
	"github.com/chazu/neusis/pkg/snap"
	"github.com/chazu/neusis/pkg/solver"
)

// PerpendicularOffset is how far from its anchor the synthetic second
// point of a perpendicular or parallel line is placed, in host units.
const PerpendicularOffset = 100.0

// Engine owns one construction session end to end.
type Engine struct {
	sk      *sketch.Sketch
	factory *sketch.Factory
	solver  *solver.Solver
	snap    *snap.Resolver
	history History
}

// New returns an engine with an empty sketch and fresh naming
// counters. Engines are independent; tests may run several in
// parallel.
func New() *Engine {
	sk := sketch.New()
	return &Engine{
		sk:      sk,
		factory: sketch.NewFactory(sk.Session()),
		solver:  solver.New(sk),
		snap:    snap.NewResolver(sk),
	}
}

// Sketch exposes the underlying repository read-only by convention;
// mutation goes through engine operations.
func (e *Engine) Sketch() *sketch.Sketch { return e.sk }

// AllObjects returns every live object: points, then lines, then
// circles, each in creation order.
func (e *Engine) AllObjects() []geom.Object { return e.sk.AllObjects() }

// FindName resolves a display name to its object.
func (e *Engine) FindName(name string) (geom.Object, bool) {
	o := e.sk.FindName(name)
	return o, o != nil
}

// SelectPointAt returns the nearest visible point within tol of the
// location, or nil. Non-positive tol falls back to the snap radius.
func (e *Engine) SelectPointAt(x, y, tol float64) *geom.Point {
	if tol <= 0 {
		tol = snap.DefaultRadius
	}
	pos := v2.Vec{X: x, Y: y}
	var best *geom.Point
	bestD := tol
	for _, p := range e.sk.Points() {
		if p.Display.Hidden {
			continue
		}
		if d := p.DistanceTo(pos); d <= bestD {
			best = p
			bestD = d
		}
	}
	return best
}

// SelectLineAt returns the nearest visible line within tol of the
// location, or nil. Non-positive tol falls back to the snap radius.
func (e *Engine) SelectLineAt(x, y, tol float64) *geom.Line {
	if tol <= 0 {
		tol = snap.DefaultRadius
	}
	pos := v2.Vec{X: x, Y: y}
	var best *geom.Line
	bestD := tol
	for _, l := range e.sk.Lines() {
		if l.Display.Hidden {
			continue
		}
		if d := l.ClosestPoint(pos).Sub(pos).Length(); d <= bestD {
			best = l
			bestD = d
		}
	}
	return best
}

// SelectCircleAt returns the nearest visible circle within tol of the
// location, or nil. Non-positive tol falls back to the snap radius.
func (e *Engine) SelectCircleAt(x, y, tol float64) *geom.Circle {
	if tol <= 0 {
		tol = snap.DefaultRadius
	}
	pos := v2.Vec{X: x, Y: y}
	var best *geom.Circle
	bestD := tol
	for _, c := range e.sk.Circles() {
		if c.Display.Hidden {
			continue
		}
		if d := c.ClosestPoint(pos).Sub(pos).Length(); d <= bestD {
			best = c
			bestD = d
		}
	}
	return best
}

// ResolveSnap maps a pointer location to the best snap target; see
// the snap package for the priority order.
func (e *Engine) ResolveSnap(x, y, radius float64) (snap.Hit, bool) {
	return e.snap.Resolve(v2.Vec{X: x, Y: y}, radius)
}

// HighlightAt returns the object hover feedback should mark.
func (e *Engine) HighlightAt(x, y, radius float64) (geom.Object, bool) {
	return e.snap.Highlight(v2.Vec{X: x, Y: y}, radius)
}

// SetHidden toggles an object's visibility. Hidden objects keep
// participating in constraints and dedup but are skipped by
// selection, snapping and export. Reports whether id was known.
func (e *Engine) SetHidden(id geom.ID, hidden bool) bool {
	o := e.sk.Object(id)
	if o == nil {
		return false
	}
	if d := geom.DisplayOf(o); d != nil {
		d.Hidden = hidden
		return true
	}
	return false
}

// SetColor assigns an object's display color. Reports whether id was
// known.
func (e *Engine) SetColor(id geom.ID, color string) bool {
	o := e.sk.Object(id)
	if o == nil {
		return false
	}
	if d := geom.DisplayOf(o); d != nil {
		d.Color = color
		return true
	}
	return false
}

// Clear resets objects, constraints, naming and id counters in one
// step. Undo history survives, so a checkpointed clear can be undone.
func (e *Engine) Clear() {
	e.sk.Clear()
	e.solver.Rebuild()
}

// SaveState captures the whole session, positions and counters
// included, as an immutable snapshot.
func (e *Engine) SaveState() *sketch.Snapshot {
	return e.sk.Snapshot()
}

// RestoreState replaces the live session with a snapshot's contents.
func (e *Engine) RestoreState(sn *sketch.Snapshot) error {
	if err := e.sk.Restore(sn); err != nil {
		return err
	}
	e.solver.Rebuild()
	return nil
}
