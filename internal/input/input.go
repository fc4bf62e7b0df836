// Package input folds fyne's mouse, touch and drag events into one
// down/move/up protocol expressed in board-local coordinates.
package input

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"

	"WorkBoard/internal/state"
)

// Handler receives the unified gesture. PointerMove is also called while no
// gesture is active so the handler can hover.
type Handler interface {
	PointerDown(p state.Point)
	PointerMove(p state.Point)
	PointerUp()
}

// Canceler is implemented by handlers that can abandon a gesture.
type Canceler interface {
	PointerCancel()
}

// Source identifies the device API that started a gesture.
type Source int

const (
	SourceNone Source = iota
	SourceMouse
	SourceTouch
	SourcePointer
)

func (s Source) String() string {
	switch s {
	case SourceMouse:
		return "mouse"
	case SourceTouch:
		return "touch"
	case SourcePointer:
		return "pointer"
	default:
		return "none"
	}
}

// Local converts an absolute position to one relative to origin.
func Local(abs, origin fyne.Position) state.Point {
	return state.Point{X: float64(abs.X - origin.X), Y: float64(abs.Y - origin.Y)}
}

func FromMouse(ev *desktop.MouseEvent, origin fyne.Position) state.Point {
	return Local(ev.AbsolutePosition, origin)
}

// FromTouch uses the event's touch; fyne delivers the primary touch first.
func FromTouch(ev *mobile.TouchEvent, origin fyne.Position) state.Point {
	return Local(ev.AbsolutePosition, origin)
}

func FromDrag(ev *fyne.DragEvent, origin fyne.Position) state.Point {
	return Local(ev.AbsolutePosition, origin)
}
