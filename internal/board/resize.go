package board

import "math"

const (
	DefaultMinHeight = 200.0
	DefaultMaxHeight = 700.0
)

// ResizeController turns a drag on the handle under the board into a new
// board height within [Min, Max].
type ResizeController struct {
	Min float64
	Max float64

	resizing bool
	top      float64
}

// Clamp bounds h to [Min, Max].
func (r *ResizeController) Clamp(h float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, h))
}

// Begin enters resizing mode. containerTop is the board's top edge in the
// same coordinate space as the pointer positions passed to Drag.
func (r *ResizeController) Begin(containerTop float64) {
	r.resizing = true
	r.top = containerTop
}

// Drag returns the height for the pointer position. ok is false outside
// resizing mode.
func (r *ResizeController) Drag(pointerY float64) (height float64, ok bool) {
	if !r.resizing {
		return 0, false
	}
	return r.Clamp(pointerY - r.top), true
}

func (r *ResizeController) End()           { r.resizing = false }
func (r *ResizeController) Resizing() bool { return r.resizing }
