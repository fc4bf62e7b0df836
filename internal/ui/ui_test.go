package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WorkBoard/internal/board"
	"WorkBoard/internal/state"
)

func newEngine(t *testing.T) *board.Engine {
	t.Helper()
	e, err := board.New(board.DefaultOptions(), nil)
	require.NoError(t, err)
	return e
}

func showBoard(t *testing.T, e *board.Engine) (*BoardWidget, fyne.Window) {
	t.Helper()
	b := NewBoardWidget(e, 300)
	w := test.NewWindow(b)
	t.Cleanup(w.Close)
	w.SetPadded(false)
	w.Resize(fyne.NewSize(400, 300))
	return b, w
}

func mouse(x, y float32) *desktop.MouseEvent {
	pos := fyne.NewPos(x, y)
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: pos, AbsolutePosition: pos},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y, dx, dy float32) *fyne.DragEvent {
	pos := fyne.NewPos(x, y)
	return &fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: pos, AbsolutePosition: pos},
		Dragged:    fyne.NewDelta(dx, dy),
	}
}

func TestBoardWidgetSizesSurface(t *testing.T) {
	test.NewTempApp(t)
	e := newEngine(t)
	b, _ := showBoard(t, e)

	w, h, dpr, ok := e.Size()
	require.True(t, ok)
	assert.Equal(t, float64(b.Size().Width), w)
	assert.Equal(t, float64(b.Size().Height), h)
	assert.Equal(t, 1.0, dpr)
}

func TestBoardWidgetDrawsWithMouseAndDrag(t *testing.T) {
	test.NewTempApp(t)
	e := newEngine(t)
	b, _ := showBoard(t, e)

	b.MouseDown(mouse(10, 10))
	b.Dragged(drag(20, 15, 10, 5))
	b.Dragged(drag(30, 20, 10, 5))
	b.DragEnd()
	b.MouseUp(mouse(30, 20))

	strokes := e.Strokes()
	require.Len(t, strokes, 1)
	assert.Len(t, strokes[0].Points, 3)
	assert.Equal(t, state.ModeIdle, e.Mode())
}

func TestBoardWidgetIgnoresSecondaryButton(t *testing.T) {
	test.NewTempApp(t)
	e := newEngine(t)
	b, _ := showBoard(t, e)

	ev := mouse(10, 10)
	ev.Button = desktop.MouseButtonSecondary
	b.MouseDown(ev)
	assert.Equal(t, state.ModeIdle, e.Mode())
}

func TestResizeHandleClampsHeight(t *testing.T) {
	test.NewTempApp(t)
	e := newEngine(t)
	b, _ := showBoard(t, e)

	resized := 0
	h := newResizeHandle(b, func() { resized++ })
	h.Dragged(drag(100, 5000, 0, 10))
	assert.Equal(t, float32(board.DefaultMaxHeight), b.Height())

	h.Dragged(drag(100, 50, 0, -10))
	assert.Equal(t, float32(board.DefaultMinHeight), b.Height())
	h.DragEnd()

	assert.Equal(t, 2, resized)
	assert.False(t, e.ResizeController().Resizing())
}

func TestToolbarTracksHistory(t *testing.T) {
	test.NewTempApp(t)
	e := newEngine(t)
	require.NoError(t, e.Resize(400, 300, 1))
	tb := NewToolbar(e, Actions{})

	assert.True(t, tb.undo.Disabled())
	assert.True(t, tb.redo.Disabled())

	e.PointerDown(state.Pt(10, 10))
	e.PointerMove(state.Pt(50, 50))
	e.PointerUp()
	assert.False(t, tb.undo.Disabled())

	test.Tap(tb.undo)
	assert.Empty(t, e.Strokes())
	assert.False(t, tb.redo.Disabled())

	test.Tap(tb.eraser)
	assert.Equal(t, state.ToolEraser, e.Tool())
}
