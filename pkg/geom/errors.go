package geom

import "errors"

// The three error families surfaced by the kernel. Operations wrap
// these with fmt.Errorf("...: %w", ...) so callers can classify
// failures with errors.Is while still seeing the operation context.
var (
	// ErrInvalidObject reports a non-finite coordinate or degenerate
	// defining data (zero radius, coincident line-defining points).
	ErrInvalidObject = errors.New("invalid geometric object")

	// ErrInvalidConstruction reports a failed geometric precondition:
	// identical inputs, coincident points, collinear circle points,
	// a self-intersection request.
	ErrInvalidConstruction = errors.New("invalid construction")

	// ErrCalculation reports a mathematical failure on valid inputs:
	// parallel lines, disjoint circles at construction time, identical
	// circles with infinitely many intersections.
	ErrCalculation = errors.New("intersection calculation failed")
)
