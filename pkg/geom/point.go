package geom

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Point is a draggable 2D location. Coordinates mutate in place when
// the point is dragged or recomputed; identity and id never change.
// Each coordinate carries its session-wide parameter index (see Param).
type Point struct {
	ID      ID
	Name    string
	X       Param
	Y       Param
	Frozen  bool // a frozen point never moves, directly or indirectly
	Display Display
}

func (*Point) object() {}

// Pos returns the current position.
func (p *Point) Pos() v2.Vec {
	return v2.Vec{X: p.X.Val, Y: p.Y.Val}
}

// SetPos moves the point in place, preserving parameter indices.
func (p *Point) SetPos(v v2.Vec) {
	p.X.Val = v.X
	p.Y.Val = v.Y
}

// DistanceTo returns the Euclidean distance to q.
func (p *Point) DistanceTo(q v2.Vec) float64 {
	return p.Pos().Sub(q).Length()
}

// Coincides reports whether p and q occupy the same location within
// CoincidenceTol.
func (p *Point) Coincides(q *Point) bool {
	return p.Pos().Sub(q.Pos()).Length() <= CoincidenceTol
}

func (p *Point) String() string {
	return fmt.Sprintf("%s(%.6g, %.6g)", p.Name, p.X.Val, p.Y.Val)
}
