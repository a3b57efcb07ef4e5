// Package geom defines the geometric object model for Neusis.
// A construction is made of points, lines, and circles connected by
// typed constraints; this package holds those types together with
// their local geometric queries (closest point, containment, radius).
// Everything that spans more than one object (intersection math,
// dependency propagation, snapping) lives in the higher packages.
package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Epsilon is the tolerance below which a denominator, direction, or
// discriminant is treated as degenerate.
const Epsilon = 1e-9

// CoincidenceTol is the distance below which two locations are treated
// as the same location, used for construction preconditions and for
// deduplicating derived points.
const CoincidenceTol = 1e-6

// ID is the stable integer handle of a construction object. IDs are
// assigned by the factory, start at 1, and never change or recycle
// within a session. The zero ID is reserved as "no object".
type ID int

// IsZero reports whether the ID is the reserved "no object" value.
func (id ID) IsZero() bool { return id == 0 }

// Display carries presentation metadata shared by every object kind.
// The kernel itself only consults Hidden (snapping and export skip
// hidden objects); Color is passed through to renderers untouched.
type Display struct {
	Hidden bool
	Color  string
}

// Param is one scalar degree of freedom together with its global
// registration index. Indices are handed out by the session in
// creation order and give the solver a deterministic iteration order
// over coordinates.
type Param struct {
	Val   float64
	Index int
}

// Object is the union of the three renderable element kinds
// (*Point, *Line, *Circle). The marker method restricts
// implementations to this package; consumers dispatch by type switch.
type Object interface {
	object()
}

// IDOf returns the id of any object.
func IDOf(o Object) ID {
	switch v := o.(type) {
	case *Point:
		return v.ID
	case *Line:
		return v.ID
	case *Circle:
		return v.ID
	}
	return 0
}

// NameOf returns the display name of any object.
func NameOf(o Object) string {
	switch v := o.(type) {
	case *Point:
		return v.Name
	case *Line:
		return v.Name
	case *Circle:
		return v.Name
	}
	return ""
}

// DisplayOf returns a pointer to the object's display metadata so
// callers can edit visibility and color in place.
func DisplayOf(o Object) *Display {
	switch v := o.(type) {
	case *Point:
		return &v.Display
	case *Line:
		return &v.Display
	case *Circle:
		return &v.Display
	}
	return nil
}

// ClosestPoint returns the point on o nearest to p.
func ClosestPoint(o Object, p v2.Vec) v2.Vec {
	switch v := o.(type) {
	case *Point:
		return v.Pos()
	case *Line:
		return v.ClosestPoint(p)
	case *Circle:
		return v.ClosestPoint(p)
	}
	return p
}

// Contains reports whether p lies on o within tol.
func Contains(o Object, p v2.Vec, tol float64) bool {
	switch v := o.(type) {
	case *Point:
		return v.Pos().Sub(p).Length() <= tol
	case *Line:
		return v.Contains(p, tol)
	case *Circle:
		return v.Contains(p, tol)
	}
	return false
}

// Finite reports whether every coordinate is a finite number.
func Finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// cross returns the 2D cross product (signed area of the
// parallelogram spanned by a and b).
func cross(a, b v2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// perp returns a rotated 90 degrees counterclockwise.
func perp(a v2.Vec) v2.Vec {
	return v2.Vec{X: -a.Y, Y: a.X}
}

// Perp returns v rotated 90 degrees counterclockwise. Exported for
// the construction layer, which places perpendicular-line anchors.
func Perp(v v2.Vec) v2.Vec { return perp(v) }
