package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// draw runs a full pen gesture through pts.
func draw(b *Board, pts ...Point) {
	b.PenDown(pts[0])
	for _, p := range pts[1:] {
		b.PenMove(p)
	}
	b.PenUp()
}

func erase(b *Board, pts ...Point) {
	prev := b.Tool()
	b.SetTool(ToolEraser)
	b.PenDown(pts[0])
	for _, p := range pts[1:] {
		b.PenMove(p)
	}
	b.PenUp()
	b.SetTool(prev)
}

func TestBoard_DrawCommitsOnPenUp(t *testing.T) {
	b := NewBoard(nil)

	assert.Equal(t, ChangeNone, b.PenDown(Pt(1, 1)))
	assert.Equal(t, ModeDrawing, b.Mode())
	assert.Equal(t, ChangeSegment, b.PenMove(Pt(2, 2)))
	assert.Equal(t, 0, b.Len(), "stroke must not be committed before pen up")

	assert.Equal(t, ChangeFull, b.PenUp())
	assert.Equal(t, ModeIdle, b.Mode())
	require.Equal(t, 1, b.Len())
	assert.Equal(t, []Point{Pt(1, 1), Pt(2, 2)}, b.Strokes()[0].Points)
	assert.True(t, b.CanUndo())
	assert.False(t, b.CanRedo())
}

func TestBoard_TapIsCommitted(t *testing.T) {
	b := NewBoard(nil)
	draw(b, Pt(5, 5))

	require.Equal(t, 1, b.Len())
	assert.False(t, b.Strokes()[0].Drawable())
	assert.True(t, b.CanUndo())

	require.True(t, b.Undo())
	assert.Equal(t, 0, b.Len())
}

func TestBoard_UndoRefusedMidGesture(t *testing.T) {
	b := NewBoard(nil)
	draw(b, Pt(10, 0), Pt(10, 50))
	draw(b, Pt(100, 0), Pt(100, 50))
	b.SetTool(ToolEraser)

	b.PenDown(Pt(10, 25))
	assert.False(t, b.Undo())
	assert.False(t, b.Redo())
	b.PenMove(Pt(100, 25))
	b.PenUp()

	assert.Equal(t, 0, b.Len())
	assert.False(t, b.CanRedo())

	require.True(t, b.Undo())
	assert.Equal(t, 2, b.Len())
	require.True(t, b.Redo())
	assert.Equal(t, 0, b.Len())
}

func TestBoard_RedoRefusedWhileDrawing(t *testing.T) {
	b := NewBoard(nil)
	draw(b, Pt(0, 0), Pt(10, 0))
	require.True(t, b.Undo())

	b.PenDown(Pt(0, 20))
	assert.False(t, b.Redo())
	b.PenMove(Pt(10, 20))
	b.PenUp()

	assert.Equal(t, 1, b.Len())
	assert.False(t, b.CanRedo())
}

func TestBoard_DoubleDownIsIgnored(t *testing.T) {
	b := NewBoard(nil)
	b.PenDown(Pt(0, 0))
	assert.Equal(t, ChangeNone, b.PenDown(Pt(100, 100)))
	b.PenMove(Pt(10, 0))
	b.PenUp()
	assert.Equal(t, ChangeNone, b.PenUp())

	require.Equal(t, 1, b.Len())
	assert.Equal(t, Pt(0, 0), b.Strokes()[0].Points[0])
	undo, _ := b.HistoryDepth()
	assert.Equal(t, 1, undo)
}

func TestBoard_StrokeCarriesPenSettings(t *testing.T) {
	b := NewBoard(nil)
	b.SetWidth(7)
	b.SetWidth(-1)
	draw(b, Pt(0, 0), Pt(1, 1))

	s := b.Strokes()[0]
	assert.Equal(t, 7.0, s.Width)
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.IsEraser)
}

func TestBoard_UndoRedoRoundTrip(t *testing.T) {
	b := NewBoard(nil)
	draw(b, Pt(0, 0), Pt(10, 0))
	draw(b, Pt(0, 20), Pt(10, 20))
	draw(b, Pt(0, 40), Pt(10, 40))
	erase(b, Pt(5, 20))

	before := b.Strokes()
	require.Len(t, before, 2)

	require.True(t, b.Undo())
	assert.Len(t, b.Strokes(), 3)
	require.True(t, b.Redo())
	assert.Equal(t, before, b.Strokes())
}

func TestBoard_NewActionInvalidatesRedo(t *testing.T) {
	b := NewBoard(nil)
	draw(b, Pt(0, 0), Pt(10, 0))
	draw(b, Pt(0, 20), Pt(10, 20))
	require.True(t, b.Undo())
	require.True(t, b.CanRedo())

	draw(b, Pt(0, 40), Pt(10, 40))

	assert.False(t, b.CanRedo())
	assert.False(t, b.Redo())
	assert.Len(t, b.Strokes(), 2)
}

func TestBoard_EraseInvalidatesRedo(t *testing.T) {
	b := NewBoard(nil)
	draw(b, Pt(0, 0), Pt(10, 0))
	draw(b, Pt(0, 20), Pt(10, 20))
	require.True(t, b.Undo())

	erase(b, Pt(200, 200))
	assert.False(t, b.CanRedo())
}

func TestBoard_UndoRedoOnEmptyStacks(t *testing.T) {
	b := NewBoard(nil)
	assert.False(t, b.Undo())
	assert.False(t, b.Redo())
	assert.Empty(t, b.Strokes())
}

func TestBoard_EraseGestureIsOneUndoStep(t *testing.T) {
	b := NewBoard(nil)
	draw(b, Pt(0, 0), Pt(0, 50))
	draw(b, Pt(100, 0), Pt(100, 50))
	draw(b, Pt(200, 0), Pt(200, 50))

	b.SetTool(ToolEraser)
	assert.Equal(t, ChangeFull, b.PenDown(Pt(0, 25)))
	assert.Equal(t, ModeErasing, b.Mode())
	assert.Equal(t, ChangeFull, b.PenMove(Pt(100, 25)))
	assert.Equal(t, ChangeNone, b.PenMove(Pt(150, 25)))
	assert.Equal(t, ChangeFull, b.PenMove(Pt(200, 25)))
	b.PenUp()

	assert.Empty(t, b.Strokes())
	undo, _ := b.HistoryDepth()
	assert.Equal(t, 4, undo)

	require.True(t, b.Undo())
	assert.Len(t, b.Strokes(), 3)
}

func TestBoard_EraseMissKeepsStrokes(t *testing.T) {
	b := NewBoard(nil)
	draw(b, Pt(0, 10), Pt(100, 10))
	before := b.Strokes()

	erase(b, Pt(50, 80))
	assert.Equal(t, before, b.Strokes())
}

func TestBoard_ClearAllIsUndoable(t *testing.T) {
	b := NewBoard(nil)
	draw(b, Pt(0, 0), Pt(10, 0))
	draw(b, Pt(0, 20), Pt(10, 20))
	require.True(t, b.Undo())

	b.ClearAll()
	assert.Empty(t, b.Strokes())
	assert.False(t, b.CanRedo())

	require.True(t, b.Undo())
	assert.Len(t, b.Strokes(), 1)
}

func TestBoard_CancelDropsStroke(t *testing.T) {
	b := NewBoard(nil)
	b.PenDown(Pt(0, 0))
	b.PenMove(Pt(5, 5))
	b.Cancel()

	assert.Equal(t, ModeIdle, b.Mode())
	assert.Equal(t, 0, b.Len())
	_, ok := b.InProgress()
	assert.False(t, ok)
}

func TestBoard_EraseThenUndoScenario(t *testing.T) {
	b := NewBoard(nil)
	draw(b, Pt(10, 10), Pt(10, 50))
	draw(b, Pt(100, 10), Pt(100, 50))
	second := b.Strokes()[1]

	b.SetTool(ToolEraser)
	b.PenDown(Pt(10, 30))
	b.PenUp()

	require.Len(t, b.Strokes(), 1)
	assert.Equal(t, second.Points, b.Strokes()[0].Points)
	assert.Equal(t, second.ID, b.Strokes()[0].ID)

	require.True(t, b.Undo())
	assert.Len(t, b.Strokes(), 2)
}

func TestBoard_PublishesOps(t *testing.T) {
	bus := NewBus()
	var got []OpType
	var seqs []uint64
	cancel := bus.Subscribe(func(op Op) {
		got = append(got, op.Type)
		seqs = append(seqs, op.Seq)
	})

	b := NewBoard(bus)
	draw(b, Pt(0, 0), Pt(10, 0))
	erase(b, Pt(5, 0))
	b.Undo()
	b.Redo()
	b.ClearAll()

	assert.Equal(t, []OpType{OpPenDown, OpCommit, OpPenDown, OpErase, OpUndo, OpRedo, OpClear}, got)
	for i := 1; i < len(seqs); i++ {
		assert.Greater(t, seqs[i], seqs[i-1])
	}

	cancel()
	draw(b, Pt(0, 0), Pt(10, 0))
	assert.Len(t, got, 7)
}
