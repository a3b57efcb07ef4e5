package sketch

import (
	"fmt"

	"github.com/chazu/neusis/pkg/geom"
)

// Snapshot is an immutable value copy of a sketch: every coordinate,
// name, flag, constraint, and session counter at capture time.
// Because live objects mutate in place when dragged, a snapshot of
// references would silently track the live state instead of
// preserving it; capture therefore copies values, and Restore builds
// fresh objects, so one snapshot can be restored any number of times.
type Snapshot struct {
	points      []geom.Point
	lines       []lineState
	circles     []circleState
	constraints []constraintState
	session     Session
}

type lineState struct {
	id      geom.ID
	name    string
	kind    geom.LineKind
	source  geom.LineSource
	display geom.Display
	points  []geom.ID
}

type circleState struct {
	id      geom.ID
	name    string
	kind    geom.CircleKind
	center  geom.ID
	points  []geom.ID
	r       float64
	display geom.Display
}

type constraintState struct {
	kind     geom.ConstraintKind
	elements []geom.ID
}

// Snapshot captures the current state as values.
func (s *Sketch) Snapshot() *Snapshot {
	sn := &Snapshot{session: *s.session}

	sn.points = make([]geom.Point, len(s.points))
	for i, p := range s.points {
		sn.points[i] = *p
	}

	sn.lines = make([]lineState, len(s.lines))
	for i, l := range s.lines {
		sn.lines[i] = lineState{
			id:      l.ID,
			name:    l.Name,
			kind:    l.Kind,
			source:  l.Source,
			display: l.Display,
			points:  pointIDs(l.Points),
		}
	}

	sn.circles = make([]circleState, len(s.circles))
	for i, c := range s.circles {
		sn.circles[i] = circleState{
			id:      c.ID,
			name:    c.Name,
			kind:    c.Kind,
			center:  c.Center.ID,
			points:  pointIDs(c.Points),
			r:       c.R,
			display: c.Display,
		}
	}

	sn.constraints = make([]constraintState, len(s.constraints))
	for i, c := range s.constraints {
		elems := make([]geom.ID, len(c.Elements))
		copy(elems, c.Elements)
		sn.constraints[i] = constraintState{kind: c.Kind, elements: elems}
	}

	return sn
}

func pointIDs(pts []*geom.Point) []geom.ID {
	ids := make([]geom.ID, len(pts))
	for i, p := range pts {
		ids[i] = p.ID
	}
	return ids
}

// Restore replaces the live state with fresh objects built from the
// snapshot. The snapshot itself is untouched and stays restorable.
func (s *Sketch) Restore(sn *Snapshot) error {
	if sn == nil {
		return fmt.Errorf("restore: nil snapshot: %w", geom.ErrInvalidObject)
	}

	points := make([]*geom.Point, len(sn.points))
	byID := make(map[geom.ID]geom.Object, len(sn.points)+len(sn.lines)+len(sn.circles))
	pointBy := make(map[geom.ID]*geom.Point, len(sn.points))
	for i := range sn.points {
		p := sn.points[i] // value copy out of the snapshot
		points[i] = &p
		byID[p.ID] = &p
		pointBy[p.ID] = &p
	}

	resolve := func(ids []geom.ID) ([]*geom.Point, error) {
		out := make([]*geom.Point, len(ids))
		for i, id := range ids {
			p, ok := pointBy[id]
			if !ok {
				return nil, fmt.Errorf("restore: snapshot references missing point %d: %w", id, geom.ErrInvalidObject)
			}
			out[i] = p
		}
		return out, nil
	}

	lines := make([]*geom.Line, len(sn.lines))
	for i, ls := range sn.lines {
		pts, err := resolve(ls.points)
		if err != nil {
			return err
		}
		l := &geom.Line{
			ID:      ls.id,
			Name:    ls.name,
			Kind:    ls.kind,
			Source:  ls.source,
			Points:  pts,
			Display: ls.display,
		}
		lines[i] = l
		byID[l.ID] = l
	}

	circles := make([]*geom.Circle, len(sn.circles))
	for i, cs := range sn.circles {
		center, ok := pointBy[cs.center]
		if !ok {
			return fmt.Errorf("restore: snapshot references missing center %d: %w", cs.center, geom.ErrInvalidObject)
		}
		pts, err := resolve(cs.points)
		if err != nil {
			return err
		}
		c := &geom.Circle{
			ID:      cs.id,
			Name:    cs.name,
			Kind:    cs.kind,
			Center:  center,
			Points:  pts,
			R:       cs.r,
			Display: cs.display,
		}
		circles[i] = c
		byID[c.ID] = c
	}

	constraints := make([]*geom.Constraint, len(sn.constraints))
	for i, cs := range sn.constraints {
		elems := make([]geom.ID, len(cs.elements))
		copy(elems, cs.elements)
		constraints[i] = &geom.Constraint{Kind: cs.kind, Elements: elems}
	}

	s.points = points
	s.lines = lines
	s.circles = circles
	s.constraints = constraints
	s.byID = byID
	*s.session = sn.session
	return nil
}
