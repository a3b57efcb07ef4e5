// Package snap resolves loose pointer positions onto the most
// relevant target in a sketch: an existing point first, then an
// intersection of nearby curves, then the nearest curve itself.
// Hidden objects are never offered as targets.
package snap

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/neusis/pkg/geom"
	"github.com/chazu/neusis/pkg/intersect"
	"github.com/chazu/neusis/pkg/sketch"
)

// DefaultRadius is the pick distance used when a caller passes a
// non-positive radius. Coordinates are host units.
const DefaultRadius = 8.0

// Hit is a resolved snap target. Point is set when an existing point
// won; Curves lists the visible curves the position lies on (two for
// a synthesized intersection, one for a projection, none for a bare
// point hit).
type Hit struct {
	Pos    v2.Vec
	Point  *geom.Point
	Curves []geom.Object
}

// Resolver answers pointer queries against one sketch. It holds no
// state of its own, so it stays valid across edits.
type Resolver struct {
	sk *sketch.Sketch
}

func NewResolver(sk *sketch.Sketch) *Resolver {
	return &Resolver{sk: sk}
}

// Resolve maps pos to the best snap target within radius. Priority
// is fixed: nearest visible point, else nearest intersection of two
// nearby curves, else nearest point on a nearby curve. The second
// return is false when nothing visible is in range. Resolve never
// fails; intersection pairs whose math degenerates are skipped.
func (r *Resolver) Resolve(pos v2.Vec, radius float64) (Hit, bool) {
	if radius <= 0 {
		radius = DefaultRadius
	}

	if p := r.nearestPoint(pos, radius); p != nil {
		return Hit{Pos: p.Pos(), Point: p}, true
	}

	curves := r.nearbyCurves(pos, radius)
	if hit, ok := nearestIntersection(pos, radius, curves); ok {
		return hit, true
	}
	if hit, ok := nearestProjection(pos, radius, curves); ok {
		return hit, true
	}
	return Hit{}, false
}

// Highlight returns the object hover feedback should mark for pos:
// the point itself on a point hit, otherwise the first curve behind
// the winning snap target.
func (r *Resolver) Highlight(pos v2.Vec, radius float64) (geom.Object, bool) {
	hit, ok := r.Resolve(pos, radius)
	if !ok {
		return nil, false
	}
	if hit.Point != nil {
		return hit.Point, true
	}
	if len(hit.Curves) > 0 {
		return hit.Curves[0], true
	}
	return nil, false
}

func (r *Resolver) nearestPoint(pos v2.Vec, radius float64) *geom.Point {
	var best *geom.Point
	bestD := radius
	for _, p := range r.sk.Points() {
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

// nearbyCurves collects the visible lines and circles whose nearest
// approach to pos is within radius, in creation order.
func (r *Resolver) nearbyCurves(pos v2.Vec, radius float64) []geom.Object {
	var out []geom.Object
	for _, l := range r.sk.Lines() {
		if l.Display.Hidden || l.Degenerate() {
			continue
		}
		if l.ClosestPoint(pos).Sub(pos).Length() <= radius {
			out = append(out, l)
		}
	}
	for _, c := range r.sk.Circles() {
		if c.Display.Hidden || c.Degenerate() {
			continue
		}
		if c.ClosestPoint(pos).Sub(pos).Length() <= radius {
			out = append(out, c)
		}
	}
	return out
}

func nearestIntersection(pos v2.Vec, radius float64, curves []geom.Object) (Hit, bool) {
	var best Hit
	bestD := radius
	found := false
	for i := 0; i < len(curves); i++ {
		for j := i + 1; j < len(curves); j++ {
			for _, cand := range pairIntersections(curves[i], curves[j]) {
				if d := cand.Sub(pos).Length(); d <= bestD {
					best = Hit{Pos: cand, Curves: []geom.Object{curves[i], curves[j]}}
					bestD = d
					found = true
				}
			}
		}
	}
	return best, found
}

// pairIntersections computes the meeting points of two curves,
// swallowing calculation failures.
func pairIntersections(a, b geom.Object) []v2.Vec {
	switch oa := a.(type) {
	case *geom.Line:
		switch ob := b.(type) {
		case *geom.Line:
			p, ok, err := intersect.LineLine(oa, ob)
			if err != nil || !ok {
				return nil
			}
			return []v2.Vec{p}
		case *geom.Circle:
			pts, err := intersect.LineCircle(oa, ob)
			if err != nil {
				return nil
			}
			return pts
		}
	case *geom.Circle:
		switch ob := b.(type) {
		case *geom.Line:
			pts, err := intersect.LineCircle(ob, oa)
			if err != nil {
				return nil
			}
			return pts
		case *geom.Circle:
			pts, err := intersect.CircleCircle(oa, ob)
			if err != nil {
				return nil
			}
			return pts
		}
	}
	return nil
}

func nearestProjection(pos v2.Vec, radius float64, curves []geom.Object) (Hit, bool) {
	var best Hit
	bestD := radius
	found := false
	for _, c := range curves {
		cand := geom.ClosestPoint(c, pos)
		if d := cand.Sub(pos).Length(); d <= bestD {
			best = Hit{Pos: cand, Curves: []geom.Object{c}}
			bestD = d
			found = true
		}
	}
	return best, found
}
