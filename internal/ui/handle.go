package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// resizeHandle is the strip under the board that drags its height.
type resizeHandle struct {
	widget.BaseWidget
	board    *BoardWidget
	onResize func()
}

var _ fyne.Draggable = (*resizeHandle)(nil)
var _ desktop.Cursorable = (*resizeHandle)(nil)

func newResizeHandle(b *BoardWidget, onResize func()) *resizeHandle {
	h := &resizeHandle{board: b, onResize: onResize}
	h.ExtendBaseWidget(h)
	return h
}

func (h *resizeHandle) Cursor() desktop.Cursor { return desktop.VResizeCursor }

func (h *resizeHandle) Dragged(e *fyne.DragEvent) {
	rc := h.board.engine.ResizeController()
	if !rc.Resizing() {
		rc.Begin(float64(h.board.origin().Y))
	}
	height, ok := h.board.engine.DragResize(float64(e.AbsolutePosition.Y))
	if !ok {
		return
	}
	h.board.SetHeight(float32(height))
	if h.onResize != nil {
		h.onResize()
	}
}

func (h *resizeHandle) DragEnd() {
	h.board.engine.ResizeController().End()
}

func (h *resizeHandle) CreateRenderer() fyne.WidgetRenderer {
	strip := canvas.NewRectangle(color.NRGBA{R: 229, G: 231, B: 235, A: 255})
	strip.SetMinSize(fyne.NewSize(0, 10))

	grip := canvas.NewRectangle(color.NRGBA{R: 156, G: 163, B: 175, A: 255})
	grip.SetMinSize(fyne.NewSize(40, 3))
	grip.CornerRadius = 1.5

	return widget.NewSimpleRenderer(container.NewStack(strip, container.NewCenter(grip)))
}
