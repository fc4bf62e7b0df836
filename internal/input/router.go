package input

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"

	"WorkBoard/internal/state"
)

// Router adapts the fyne device callbacks to a Handler. Whichever API
// reports the start of a gesture owns it; duplicate downs and ups arriving
// from the other APIs for the same physical gesture are dropped.
type Router struct {
	h      Handler
	origin func() fyne.Position
	active Source
}

// NewRouter routes to h. origin returns the board's absolute position.
func NewRouter(h Handler, origin func() fyne.Position) *Router {
	if origin == nil {
		origin = func() fyne.Position { return fyne.Position{} }
	}
	return &Router{h: h, origin: origin}
}

// Active returns the source owning the current gesture, or SourceNone.
func (r *Router) Active() Source { return r.active }

func (r *Router) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	r.down(SourceMouse, FromMouse(ev, r.origin()))
}

func (r *Router) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	r.up()
}

// MouseMoved is hover movement with no button held.
func (r *Router) MouseMoved(ev *desktop.MouseEvent) {
	r.h.PointerMove(FromMouse(ev, r.origin()))
}

func (r *Router) TouchDown(ev *mobile.TouchEvent) {
	r.down(SourceTouch, FromTouch(ev, r.origin()))
}

func (r *Router) TouchUp(*mobile.TouchEvent) {
	r.up()
}

func (r *Router) TouchCancel(*mobile.TouchEvent) {
	if r.active == SourceNone {
		return
	}
	r.active = SourceNone
	if c, ok := r.h.(Canceler); ok {
		c.PointerCancel()
		return
	}
	r.h.PointerUp()
}

// Dragged moves the gesture. A drag with no preceding down starts one.
func (r *Router) Dragged(ev *fyne.DragEvent) {
	pos := FromDrag(ev, r.origin())
	if r.active == SourceNone {
		start := ev.AbsolutePosition.Subtract(ev.Dragged)
		r.down(SourcePointer, Local(start, r.origin()))
	}
	r.h.PointerMove(pos)
}

func (r *Router) DragEnd() {
	r.up()
}

func (r *Router) down(src Source, p state.Point) {
	if r.active != SourceNone {
		slog.Debug("[INPUT] duplicate down ignored", slog.String("source", src.String()), slog.String("owner", r.active.String()))
		return
	}
	r.active = src
	r.h.PointerDown(p)
}

func (r *Router) up() {
	if r.active == SourceNone {
		return
	}
	r.active = SourceNone
	r.h.PointerUp()
}
