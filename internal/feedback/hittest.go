package feedback

import (
	"math"

	"WorkBoard/internal/state"
)

const (
	// CircleRadius is the hover radius of a legacy circle, in display pixels.
	CircleRadius = 35.0
	tooltipGap   = 10.0
)

// Hit is a feedback item under the pointer. Anchor is where the tooltip's
// top-left goes, in display pixels relative to the board origin.
type Hit struct {
	Index  int
	Item   Item
	Anchor state.Point
}

// HitTest finds the topmost item whose shape contains p. Items are drawn in
// order, so the scan runs from last to first.
func HitTest(items []Item, p state.Point, t Transform) (Hit, bool) {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Coordinates == nil {
			continue
		}
		shape := t.ToDisplay(*items[i].Coordinates)
		if !Contains(shape, p) {
			continue
		}
		return Hit{Index: i, Item: items[i], Anchor: Anchor(shape)}, true
	}
	return Hit{}, false
}

// Contains tests p against a display-space shape.
func Contains(s Shape, p state.Point) bool {
	switch s.Kind {
	case KindRect:
		return state.Area{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}.Contains(p)
	case KindCircle:
		return math.Hypot(p.X-s.X, p.Y-s.Y) <= CircleRadius
	default:
		return false
	}
}

// Anchor places the tooltip just right of the shape, vertically centred on it.
func Anchor(s Shape) state.Point {
	switch s.Kind {
	case KindRect:
		return state.Point{X: s.X + s.Width + tooltipGap, Y: s.Y + s.Height/2}
	case KindCircle:
		return state.Point{X: s.X + CircleRadius + tooltipGap, Y: s.Y}
	default:
		return state.Point{X: s.X, Y: s.Y}
	}
}
