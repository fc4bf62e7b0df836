package ui

import (
	"image"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"WorkBoard/internal/board"
	"WorkBoard/internal/feedback"
	"WorkBoard/internal/input"
)

// BoardWidget shows the engine's raster and feeds it pointer input from
// mouse, touch and drag events.
type BoardWidget struct {
	widget.BaseWidget
	engine *board.Engine
	router *input.Router
	raster *canvas.Raster
	height float32

	tip *widget.PopUp
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ mobile.Touchable = (*BoardWidget)(nil)

func NewBoardWidget(e *board.Engine, height float64) *BoardWidget {
	b := &BoardWidget{
		engine: e,
		height: float32(e.ResizeController().Clamp(height)),
	}
	b.router = input.NewRouter(e, b.origin)
	b.raster = canvas.NewRaster(b.frame)
	b.raster.ScaleMode = canvas.ImageScalePixels

	e.OnChange(b.raster.Refresh)
	e.OnHover(b.showTooltip)
	b.ExtendBaseWidget(b)
	return b
}

// Height is the board height in display pixels.
func (b *BoardWidget) Height() float32 { return b.height }

// SetHeight changes the board height; the parent must be refreshed to
// re-run layout.
func (b *BoardWidget) SetHeight(h float32) {
	b.height = h
	b.Refresh()
}

func (b *BoardWidget) frame(w, h int) image.Image {
	if img := b.engine.Frame(); img != nil {
		return img
	}
	return image.NewUniform(color.White)
}

func (b *BoardWidget) origin() fyne.Position {
	app := fyne.CurrentApp()
	if app == nil {
		return fyne.Position{}
	}
	return app.Driver().AbsolutePositionForObject(b)
}

func (b *BoardWidget) scale() float64 {
	app := fyne.CurrentApp()
	if app == nil {
		return 1
	}
	if c := app.Driver().CanvasForObject(b); c != nil && c.Scale() > 0 {
		return float64(c.Scale())
	}
	return 1
}

// Resize sizes the engine surface to match the widget.
func (b *BoardWidget) Resize(size fyne.Size) {
	b.BaseWidget.Resize(size)
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	if err := b.engine.Resize(float64(size.Width), float64(size.Height), b.scale()); err != nil {
		slog.Warn("[UI] board resize failed", slog.Any("err", err))
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent)  { b.router.MouseDown(e) }
func (b *BoardWidget) MouseUp(e *desktop.MouseEvent)    { b.router.MouseUp(e) }
func (b *BoardWidget) MouseIn(*desktop.MouseEvent)      {}
func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) { b.router.MouseMoved(e) }

// MouseOut hides the tooltip once the pointer leaves the board.
func (b *BoardWidget) MouseOut() { b.showTooltip(feedback.Hit{}, false) }

func (b *BoardWidget) Dragged(e *fyne.DragEvent)        { b.router.Dragged(e) }
func (b *BoardWidget) DragEnd()                         { b.router.DragEnd() }
func (b *BoardWidget) TouchDown(e *mobile.TouchEvent)   { b.router.TouchDown(e) }
func (b *BoardWidget) TouchUp(e *mobile.TouchEvent)     { b.router.TouchUp(e) }
func (b *BoardWidget) TouchCancel(e *mobile.TouchEvent) { b.router.TouchCancel(e) }

func (b *BoardWidget) showTooltip(hit feedback.Hit, ok bool) {
	if b.tip != nil {
		b.tip.Hide()
		b.tip = nil
	}
	if !ok {
		return
	}
	app := fyne.CurrentApp()
	if app == nil {
		return
	}
	c := app.Driver().CanvasForObject(b)
	if c == nil {
		return
	}

	text := widget.NewLabel(hit.Item.Tooltip())
	text.Wrapping = fyne.TextWrapWord
	bar := canvas.NewRectangle(hit.Item.Color())
	bar.SetMinSize(fyne.NewSize(4, 0))

	b.tip = widget.NewPopUp(container.NewBorder(nil, nil, bar, nil, text), c)
	b.tip.Resize(fyne.NewSize(260, text.MinSize().Height))
	pos := b.origin().Add(fyne.NewPos(float32(hit.Anchor.X), float32(hit.Anchor.Y)))
	b.tip.ShowAtPosition(pos)
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardWidgetRenderer{board: b}
}

type boardWidgetRenderer struct {
	board *BoardWidget
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.board.raster}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.board.raster.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, r.board.height)
}

func (r *boardWidgetRenderer) Refresh() { r.board.raster.Refresh() }
func (r *boardWidgetRenderer) Destroy() {}
