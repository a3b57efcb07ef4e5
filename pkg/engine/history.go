package engine

import "github.com/chazu/neusis/pkg/sketch"

// History holds the undo and redo trails as whole-state snapshots.
// Snapshots are immutable, so the same entry can be crossed in both
// directions any number of times.
type History struct {
	undo []*sketch.Snapshot
	redo []*sketch.Snapshot
}

// Checkpoint records the current state as an undo target and
// discards any redo trail branching off it.
func (e *Engine) Checkpoint() {
	e.history.undo = append(e.history.undo, e.SaveState())
	e.history.redo = nil
}

// Undo returns the session to the most recent checkpoint, keeping
// the abandoned state reachable through Redo. Reports whether a
// checkpoint existed.
func (e *Engine) Undo() bool {
	n := len(e.history.undo)
	if n == 0 {
		return false
	}
	sn := e.history.undo[n-1]
	e.history.undo = e.history.undo[:n-1]
	e.history.redo = append(e.history.redo, e.SaveState())
	if err := e.RestoreState(sn); err != nil {
		return false
	}
	return true
}

// Redo reapplies the most recently undone state. Reports whether one
// was available.
func (e *Engine) Redo() bool {
	n := len(e.history.redo)
	if n == 0 {
		return false
	}
	sn := e.history.redo[n-1]
	e.history.redo = e.history.redo[:n-1]
	e.history.undo = append(e.history.undo, e.SaveState())
	if err := e.RestoreState(sn); err != nil {
		return false
	}
	return true
}
