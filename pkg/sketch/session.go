// Package sketch owns the live construction state: the repository of
// points, lines, circles, and constraints, the factory that creates
// objects, the session counters behind ids and generated names, and
// value snapshots for undo.
package sketch

import (
	"fmt"

	"github.com/chazu/neusis/pkg/geom"
)

// Session is the one piece of deliberately mutable bookkeeping in the
// kernel: the id counter, the parameter-index counter, and the three
// name counters. It is owned by a Sketch rather than being package
// state, so independent sketches (and parallel tests) never share
// counters.
type Session struct {
	nextID    geom.ID
	nextParam int
	points    int
	lines     int
	circles   int
}

// NewSession returns a Session with all counters at zero.
func NewSession() *Session {
	return &Session{}
}

// NextID hands out the next object id, starting at 1.
func (s *Session) NextID() geom.ID {
	s.nextID++
	return s.nextID
}

// NextParam hands out the next coordinate parameter index, starting
// at 0. Each point consumes two (x first, then y).
func (s *Session) NextParam() int {
	idx := s.nextParam
	s.nextParam++
	return idx
}

// PointName generates the next point name: single uppercase letters
// A through Z, then P27, P28, and so on.
func (s *Session) PointName() string {
	s.points++
	if s.points <= 26 {
		return string(rune('A' + s.points - 1))
	}
	return fmt.Sprintf("P%d", s.points)
}

// LineName generates the next line name: l1, l2, ...
func (s *Session) LineName() string {
	s.lines++
	return fmt.Sprintf("l%d", s.lines)
}

// CircleName generates the next circle name: c1, c2, ...
func (s *Session) CircleName() string {
	s.circles++
	return fmt.Sprintf("c%d", s.circles)
}

// Reset zeroes every counter. Ids issued after a reset collide with
// ids issued before it, so Reset is only called as part of a full
// clear.
func (s *Session) Reset() {
	*s = Session{}
}
