package state

import "math"

const (
	eraserPadding   = 5.0
	eraserMinRadius = 10.0
)

// EraseThreshold is the hit distance for a stroke of the given width.
// The floor keeps hairline strokes erasable.
func EraseThreshold(width float64) float64 {
	return math.Max(width/2+eraserPadding, eraserMinRadius)
}

// SegmentDistance returns the distance from p to the segment a-b.
func SegmentDistance(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy

	t := 0.0
	if lenSq != 0 {
		t = ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}

	cx, cy := a.X+t*dx, a.Y+t*dy
	return math.Hypot(p.X-cx, p.Y-cy)
}

// HitStroke returns the index of the topmost stroke within erase distance of
// p, or -1. Strokes with fewer than two points never match.
func HitStroke(strokes []Stroke, p Point) int {
	for i := len(strokes) - 1; i >= 0; i-- {
		s := strokes[i]
		if !s.Drawable() {
			continue
		}
		threshold := EraseThreshold(s.Width)
		if !s.Bounds(threshold).Contains(p) {
			continue
		}
		for j := 1; j < len(s.Points); j++ {
			if SegmentDistance(p, s.Points[j-1], s.Points[j]) <= threshold {
				return i
			}
		}
	}
	return -1
}
