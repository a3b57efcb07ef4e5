// Package intersect computes line-line, line-circle, and circle-circle
// intersections. All functions are pure: they read live object
// positions, mutate nothing, and persist nothing. Variant filtering
// (ray/segment parameter validity) happens here so that callers never
// see a mathematically-valid but off-variant solution.
package intersect

import (
	"fmt"
	"math"

	"github.com/chazu/neusis/pkg/geom"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

func cross(a, b v2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// LineLine intersects two lines by the determinant formulation.
// It returns ok=false (with a nil error) when the lines are parallel
// within tolerance or when the solution falls off either variant's
// extent. Degenerate lines are rejected with an error.
func LineLine(l1, l2 *geom.Line) (v2.Vec, bool, error) {
	if l1.Degenerate() {
		return v2.Vec{}, false, fmt.Errorf("line %s has coincident defining points: %w", l1.Name, geom.ErrInvalidObject)
	}
	if l2.Degenerate() {
		return v2.Vec{}, false, fmt.Errorf("line %s has coincident defining points: %w", l2.Name, geom.ErrInvalidObject)
	}

	p := l1.Start()
	r := l1.Dir()
	q := l2.Start()
	s := l2.Dir()

	denom := cross(r, s)
	if math.Abs(denom) <= geom.Epsilon {
		return v2.Vec{}, false, nil
	}

	pq := q.Sub(p)
	t1 := cross(pq, s) / denom
	t2 := cross(pq, r) / denom
	if !geom.Finite(t1, t2) {
		return v2.Vec{}, false, fmt.Errorf("line-line solve produced non-finite parameters: %w", geom.ErrCalculation)
	}
	if !l1.ValidParam(t1) || !l2.ValidParam(t2) {
		return v2.Vec{}, false, nil
	}

	return l1.PointAt(t1), true, nil
}

// LineCircle intersects a line with a circle by projecting the center
// onto the line's infinite support. Results are ordered by ascending
// line parameter and filtered by the line's variant, so a ray can keep
// one of two mathematical solutions. No intersection is an empty
// slice; degenerate inputs are errors.
func LineCircle(l *geom.Line, c *geom.Circle) ([]v2.Vec, error) {
	if l.Degenerate() {
		return nil, fmt.Errorf("line %s has coincident defining points: %w", l.Name, geom.ErrInvalidObject)
	}
	if c.Degenerate() {
		return nil, fmt.Errorf("circle %s has degenerate radius %g: %w", c.Name, c.Radius(), geom.ErrInvalidObject)
	}

	center := c.Center.Pos()
	r := c.Radius()

	t0 := l.ParamAt(center)
	proj := l.PointAt(t0)
	dist := proj.Sub(center).Length()

	if dist > r+geom.Epsilon {
		return nil, nil
	}

	// Tangent: the projection itself is the single touch point.
	if math.Abs(dist-r) <= geom.Epsilon {
		if !l.ValidParam(t0) {
			return nil, nil
		}
		return []v2.Vec{proj}, nil
	}

	half := math.Sqrt(r*r - dist*dist)
	if !geom.Finite(half) {
		return nil, fmt.Errorf("line-circle discriminant is non-finite: %w", geom.ErrCalculation)
	}
	dt := half / l.Dir().Length()

	var out []v2.Vec
	for _, t := range []float64{t0 - dt, t0 + dt} {
		if l.ValidParam(t) {
			out = append(out, l.PointAt(t))
		}
	}
	return out, nil
}

// CircleCircle intersects two circles by the lens construction.
// Separate or nested circles yield an empty slice, tangent circles a
// single point, and identical circles an error (the solution set is
// not representable). Degenerate circles are errors.
func CircleCircle(c1, c2 *geom.Circle) ([]v2.Vec, error) {
	if c1.Degenerate() {
		return nil, fmt.Errorf("circle %s has degenerate radius %g: %w", c1.Name, c1.Radius(), geom.ErrInvalidObject)
	}
	if c2.Degenerate() {
		return nil, fmt.Errorf("circle %s has degenerate radius %g: %w", c2.Name, c2.Radius(), geom.ErrInvalidObject)
	}

	p1 := c1.Center.Pos()
	p2 := c2.Center.Pos()
	r1 := c1.Radius()
	r2 := c2.Radius()

	delta := p2.Sub(p1)
	d := delta.Length()

	if d <= geom.Epsilon {
		if math.Abs(r1-r2) <= geom.Epsilon {
			return nil, fmt.Errorf("identical circles %s and %s have infinitely many intersections: %w",
				c1.Name, c2.Name, geom.ErrCalculation)
		}
		return nil, nil // concentric
	}
	if d > r1+r2+geom.Epsilon {
		return nil, nil // separate
	}
	if d < math.Abs(r1-r2)-geom.Epsilon {
		return nil, nil // nested
	}

	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	h2 := r1*r1 - a*a
	if h2 < 0 {
		h2 = 0
	}
	h := math.Sqrt(h2)

	u := delta.MulScalar(1 / d)
	base := p1.Add(u.MulScalar(a))
	if h <= geom.Epsilon {
		return []v2.Vec{base}, nil
	}

	off := geom.Perp(u).MulScalar(h)
	return []v2.Vec{base.Add(off), base.Sub(off)}, nil
}
