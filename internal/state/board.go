// Package state holds the stroke model of the whiteboard: the committed
// stroke list, the in-progress gesture, and the undo/redo snapshots.
package state

import (
	"image/color"
	"log/slog"
)

// Change tells the renderer how much of the surface a transition invalidated.
type Change int

const (
	ChangeNone Change = iota
	// ChangeSegment means only the newest segment of the in-progress stroke
	// needs drawing.
	ChangeSegment
	ChangeFull
)

// Board is the stroke model and history manager. It is not safe for
// concurrent use; the owner drives it from the UI goroutine.
type Board struct {
	strokes []Stroke
	history History
	current *Stroke
	mode    Mode
	tool    Tool
	color   color.NRGBA
	width   float64
	bus     *Bus
	log     *slog.Logger
}

// NewBoard creates an empty board. bus may be nil.
func NewBoard(bus *Bus) *Board {
	return &Board{
		strokes: make([]Stroke, 0),
		color:   color.NRGBA{A: 255},
		width:   3,
		bus:     bus,
		log:     slog.Default().With(slog.String("component", "state")),
	}
}

func (b *Board) SetTool(t Tool)           { b.tool = t }
func (b *Board) Tool() Tool               { return b.tool }
func (b *Board) SetColor(c color.NRGBA)   { b.color = c }
func (b *Board) Color() color.NRGBA       { return b.color }
func (b *Board) Mode() Mode               { return b.mode }
func (b *Board) CanUndo() bool            { return b.history.CanUndo() }
func (b *Board) CanRedo() bool            { return b.history.CanRedo() }
func (b *Board) HistoryDepth() (int, int) { return b.history.Depth() }
func (b *Board) Width() float64           { return b.width }
func (b *Board) Len() int                 { return len(b.strokes) }

// SetWidth sets the pen width for the next stroke. Non-positive widths are ignored.
func (b *Board) SetWidth(w float64) {
	if w > 0 {
		b.width = w
	}
}

// Strokes returns a copy of the committed stroke list, oldest first.
func (b *Board) Strokes() []Stroke {
	return snapshotOf(b.strokes)
}

// InProgress returns the stroke being drawn, if any.
func (b *Board) InProgress() (Stroke, bool) {
	if b.mode != ModeDrawing || b.current == nil {
		return Stroke{}, false
	}
	return *b.current, true
}

// PenDown starts a gesture. A second down while a gesture is active is
// ignored, so several event sources reporting the same touch cannot start
// two strokes.
func (b *Board) PenDown(p Point) Change {
	if b.mode != ModeIdle {
		return ChangeNone
	}

	if b.tool == ToolEraser {
		b.mode = ModeErasing
		b.history.Record(b.strokes)
		b.publish(Op{Type: OpPenDown})
		b.eraseAt(p)
		return ChangeFull
	}

	b.mode = ModeDrawing
	b.current = newStroke(p, b.color, b.width)
	b.publish(Op{Type: OpPenDown})
	return ChangeNone
}

// PenMove extends the stroke or keeps erasing. For ChangeSegment the segment
// to draw is the last two points of InProgress.
func (b *Board) PenMove(p Point) Change {
	switch b.mode {
	case ModeDrawing:
		b.current.Points = append(b.current.Points, p)
		return ChangeSegment
	case ModeErasing:
		if b.eraseAt(p) {
			return ChangeFull
		}
	}
	return ChangeNone
}

// PenUp ends the gesture. A drawn stroke is committed even when it is a
// single-point tap; rendering and hit-testing skip such strokes. An erase
// gesture has already recorded its single undo step on PenDown.
func (b *Board) PenUp() Change {
	switch b.mode {
	case ModeDrawing:
		stroke := b.current
		b.current = nil
		b.mode = ModeIdle
		b.history.Record(b.strokes)
		b.strokes = append(b.strokes, *stroke)
		b.publish(Op{Type: OpCommit, Stroke: stroke})
		return ChangeFull
	case ModeErasing:
		b.mode = ModeIdle
	}
	return ChangeNone
}

// Cancel abandons an in-progress stroke. Strokes already removed by an erase
// gesture stay removed.
func (b *Board) Cancel() Change {
	if b.mode == ModeDrawing {
		b.current = nil
		b.mode = ModeIdle
		return ChangeFull
	}
	b.mode = ModeIdle
	return ChangeNone
}

// Undo restores the previous snapshot. It is refused mid-gesture, where the
// gesture's own snapshot would be popped from under it.
func (b *Board) Undo() bool {
	if b.mode != ModeIdle {
		return false
	}
	prev, ok := b.history.Undo(b.strokes)
	if !ok {
		return false
	}
	b.strokes = prev
	b.publish(Op{Type: OpUndo})
	return true
}

func (b *Board) Redo() bool {
	if b.mode != ModeIdle {
		return false
	}
	next, ok := b.history.Redo(b.strokes)
	if !ok {
		return false
	}
	b.strokes = next
	b.publish(Op{Type: OpRedo})
	return true
}

// ClearAll empties the board as a single undoable step.
func (b *Board) ClearAll() {
	b.history.Record(b.strokes)
	b.strokes = make([]Stroke, 0)
	b.current = nil
	b.mode = ModeIdle
	b.publish(Op{Type: OpClear})
}

// eraseAt removes the topmost stroke under p.
func (b *Board) eraseAt(p Point) bool {
	i := HitStroke(b.strokes, p)
	if i < 0 {
		return false
	}
	removed := b.strokes[i]
	next := make([]Stroke, 0, len(b.strokes)-1)
	next = append(next, b.strokes[:i]...)
	next = append(next, b.strokes[i+1:]...)
	b.strokes = next
	b.log.Debug("[ERASE] stroke removed", slog.String("id", removed.ID), slog.Int("remaining", len(next)))
	b.publish(Op{Type: OpErase, Target: removed.ID})
	return true
}

func (b *Board) publish(op Op) {
	if b.bus != nil {
		b.bus.Publish(op)
	}
}
