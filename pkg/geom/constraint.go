package geom

import "fmt"

// ConstraintKind enumerates the closed set of supported constraints.
type ConstraintKind int

const (
	LineLineIntersect ConstraintKind = iota
	LineCircleIntersect
	CircleCircleIntersect
	Midpoint
	Perpendicular
	Parallel
	OnLine
	OnCircle
	// EqualDistance is representable but reserved: no operation
	// produces it and the solver skips it.
	EqualDistance
)

func (k ConstraintKind) String() string {
	switch k {
	case LineLineIntersect:
		return "line-line-intersection"
	case LineCircleIntersect:
		return "line-circle-intersection"
	case CircleCircleIntersect:
		return "circle-circle-intersection"
	case Midpoint:
		return "midpoint"
	case Perpendicular:
		return "perpendicular"
	case Parallel:
		return "parallel"
	case OnLine:
		return "on-line"
	case OnCircle:
		return "on-circle"
	case EqualDistance:
		return "equal-distance"
	default:
		return "unknown"
	}
}

// elementCount is the required Elements length per kind.
var elementCount = map[ConstraintKind]int{
	LineLineIntersect:     3, // point, line, line
	LineCircleIntersect:   3, // point, line, circle
	CircleCircleIntersect: 3, // point, circle, circle
	Midpoint:              3, // point, end, end
	Perpendicular:         2, // line, base line
	Parallel:              2, // line, base line
	OnLine:                2, // point, line
	OnCircle:              2, // point, circle
	EqualDistance:         4, // point, anchor, span, span (reserved)
}

// Constraint records why an object's position is not free. Elements
// is ordered: Elements[0] is always the dependent object and the rest
// are its determiners. Constraints are the only representation of
// dependency; objects carry no flags of their own.
type Constraint struct {
	Kind     ConstraintKind
	Elements []ID
}

// Dependent returns the id of the constrained object.
func (c *Constraint) Dependent() ID { return c.Elements[0] }

// Determiners returns the ids the dependent is computed from.
func (c *Constraint) Determiners() []ID { return c.Elements[1:] }

// References reports whether the constraint mentions id in any
// element position.
func (c *Constraint) References(id ID) bool {
	for _, e := range c.Elements {
		if e == id {
			return true
		}
	}
	return false
}

// SameAs reports whether o has the same kind and the same elements in
// the same order. Used to deduplicate repeated registrations.
func (c *Constraint) SameAs(o *Constraint) bool {
	if c.Kind != o.Kind || len(c.Elements) != len(o.Elements) {
		return false
	}
	for i, e := range c.Elements {
		if e != o.Elements[i] {
			return false
		}
	}
	return true
}

// Validate checks structural well-formedness: the element count for
// the kind, and that no element is the zero id.
func (c *Constraint) Validate() error {
	want, ok := elementCount[c.Kind]
	if !ok {
		return fmt.Errorf("constraint kind %d: %w", int(c.Kind), ErrInvalidObject)
	}
	if len(c.Elements) != want {
		return fmt.Errorf("%s constraint: %d elements, want %d: %w",
			c.Kind, len(c.Elements), want, ErrInvalidObject)
	}
	for i, e := range c.Elements {
		if e.IsZero() {
			return fmt.Errorf("%s constraint: element %d is zero: %w", c.Kind, i, ErrInvalidObject)
		}
	}
	return nil
}

func (c *Constraint) String() string {
	return fmt.Sprintf("%s%v", c.Kind, c.Elements)
}
