package engine

import (
	"sort"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/neusis/pkg/geom"
	"github.com/chazu/neusis/pkg/solver"
)

// CanDragFree reports whether the object moves wherever a drag puts
// it: it has no determiners, or is held only by perpendicular or
// parallel relations.
func (e *Engine) CanDragFree(id geom.ID) bool {
	e.solver.Rebuild()
	return e.solver.Freedom(id) == solver.Free
}

// CanDragConstrained reports whether the object may be dragged with
// the result projected back onto its constraining curve.
func (e *Engine) CanDragConstrained(id geom.ID) bool {
	e.solver.Rebuild()
	return e.solver.Freedom(id) == solver.ConstrainedDraggable
}

// Dependents returns every object that would move if the given ones
// did, seeds included, in ascending id order.
func (e *Engine) Dependents(ids ...geom.ID) []geom.ID {
	e.solver.Rebuild()
	set := e.solver.TransitiveDependents(ids...)
	out := make([]geom.ID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// UpdateConstraints re-evaluates every constraint reachable from the
// given objects, in the solver's fixed category order.
func (e *Engine) UpdateConstraints(ids ...geom.ID) {
	e.solver.Rebuild()
	e.solver.Update(e.solver.TransitiveDependents(ids...))
}

// DragTo moves a point to (x, y) and propagates. Free points land
// exactly there; constrained-draggable points are projected back onto
// their curve; locked points refuse the drag. Reports whether the
// drag was applied.
func (e *Engine) DragTo(id geom.ID, x, y float64) bool {
	if !geom.Finite(x, y) {
		return false
	}
	p := e.sk.Point(id)
	if p == nil {
		return false
	}
	e.solver.Rebuild()

	target := v2.Vec{X: x, Y: y}
	switch e.solver.Freedom(id) {
	case solver.Free:
		p.SetPos(target)
	case solver.ConstrainedDraggable:
		p.SetPos(e.projectOnto(e.solver.OnCurve(id), target))
	default:
		return false
	}

	e.solver.Update(e.solver.TransitiveDependents(id))
	return true
}

func (e *Engine) projectOnto(curve geom.Object, target v2.Vec) v2.Vec {
	switch o := curve.(type) {
	case *geom.Line:
		if !o.Degenerate() {
			return o.ClosestPoint(target)
		}
	case *geom.Circle:
		if !o.Degenerate() {
			return o.ClosestPoint(target)
		}
	}
	return target
}
