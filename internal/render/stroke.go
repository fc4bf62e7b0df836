package render

import (
	"github.com/gogpu/gg"

	"WorkBoard/internal/state"
)

// Polyline strokes s with round caps and joins. Coordinates and width are
// multiplied by k, which maps CSS pixels to the target's pixels.
func Polyline(dc *gg.Context, s state.Stroke, k float64) error {
	if !s.Drawable() {
		return nil
	}
	dc.SetColor(s.Color)
	dc.SetLineWidth(s.Width * k)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	dc.MoveTo(s.Points[0].X*k, s.Points[0].Y*k)
	for _, p := range s.Points[1:] {
		dc.LineTo(p.X*k, p.Y*k)
	}
	return dc.Stroke()
}

// Strokes draws every stroke in order, skipping degenerate ones.
func Strokes(dc *gg.Context, strokes []state.Stroke, k float64) error {
	for _, s := range strokes {
		if err := Polyline(dc, s, k); err != nil {
			return err
		}
	}
	return nil
}
