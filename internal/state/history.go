package state

// Snapshot is a full copy of the stroke list at one point in time.
type Snapshot []Stroke

func snapshotOf(strokes []Stroke) Snapshot {
	s := make(Snapshot, len(strokes))
	copy(s, strokes)
	return s
}

// History keeps the undo and redo snapshot stacks. It is snapshot based:
// every mutating action pushes the pre-mutation list and drops redo.
type History struct {
	undo []Snapshot
	redo []Snapshot
}

// Record pushes the state before a mutation and invalidates redo.
func (h *History) Record(before []Stroke) {
	h.undo = append(h.undo, snapshotOf(before))
	h.redo = nil
}

// Undo pops the latest snapshot and parks current on the redo stack.
// ok is false when there is nothing to undo.
func (h *History) Undo(current []Stroke) (Snapshot, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, snapshotOf(current))
	return prev, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current []Stroke) (Snapshot, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, snapshotOf(current))
	return next, true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) {
	return len(h.undo), len(h.redo)
}
