package render

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/gogpu/gg"

	"WorkBoard/internal/feedback"
	"WorkBoard/internal/state"
)

// Background is the guide pattern drawn under the strokes.
type Background string

const (
	BackgroundBlank Background = "blank"
	BackgroundLined Background = "lined"
	BackgroundGrid  Background = "grid"
)

// GuideSpacing is the distance between guide lines in CSS pixels.
const GuideSpacing = 30.0

var guideColor = color.NRGBA{R: 200, G: 215, B: 235, A: 255}

func ParseBackground(s string) (Background, error) {
	switch Background(s) {
	case BackgroundBlank, BackgroundLined, BackgroundGrid:
		return Background(s), nil
	case "":
		return BackgroundBlank, nil
	}
	return "", fmt.Errorf("unknown background style %q", s)
}

// Scene is everything a full redraw paints.
type Scene struct {
	Background Background
	Strokes    []state.Stroke
	// Pending is the stroke still under the pen, drawn over committed ones.
	Pending  *state.Stroke
	Feedback []feedback.Item
	// ShowFeedback toggles the overlay layer.
	ShowFeedback bool
}

// Redraw clears the surface and paints background, strokes and feedback, in
// that order.
func Redraw(s *Surface, scene Scene) error {
	s.dc.ClearWithColor(gg.White)
	s.labels = nil

	if err := drawGuides(s, scene.Background); err != nil {
		return fmt.Errorf("draw guides: %w", err)
	}

	if err := Strokes(s.dc, scene.Strokes, s.dpr); err != nil {
		return fmt.Errorf("draw strokes: %w", err)
	}
	if scene.Pending != nil {
		if err := Polyline(s.dc, *scene.Pending, s.dpr); err != nil {
			return fmt.Errorf("draw pending stroke: %w", err)
		}
	}

	if scene.ShowFeedback && len(scene.Feedback) > 0 {
		if err := drawFeedback(s, scene.Feedback); err != nil {
			return fmt.Errorf("draw feedback: %w", err)
		}
	}

	slog.Debug("[RENDER] full redraw",
		slog.Int("strokes", len(scene.Strokes)),
		slog.Int("feedback", len(scene.Feedback)))
	return nil
}

// Segment draws only the newest segment of an in-progress stroke.
func Segment(s *Surface, stroke state.Stroke) error {
	if !stroke.Drawable() {
		return nil
	}
	n := len(stroke.Points)
	seg := stroke
	seg.Points = stroke.Points[n-2:]
	return Polyline(s.dc, seg, s.dpr)
}

func drawGuides(s *Surface, bg Background) error {
	if bg != BackgroundLined && bg != BackgroundGrid {
		return nil
	}
	k := s.dpr
	dc := s.dc
	dc.SetColor(guideColor)
	dc.SetLineWidth(1)
	dc.SetLineCap(gg.LineCapButt)

	for y := GuideSpacing; y < s.height; y += GuideSpacing {
		dc.DrawLine(0, y*k, s.width*k, y*k)
	}
	if bg == BackgroundGrid {
		for x := GuideSpacing; x < s.width; x += GuideSpacing {
			dc.DrawLine(x*k, 0, x*k, s.height*k)
		}
	}
	return dc.Stroke()
}
