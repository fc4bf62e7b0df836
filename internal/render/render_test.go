package render

import (
	"image"
	"image/color"
	"testing"

	"WorkBoard/internal/feedback"
	"WorkBoard/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var black = color.NRGBA{A: 255}

func line(x1, y1, x2, y2, w float64) state.Stroke {
	return state.Stroke{Points: []state.Point{state.Pt(x1, y1), state.Pt(x2, y2)}, Color: black, Width: w}
}

func isWhite(img *image.RGBA, x, y int) bool {
	c := img.RGBAAt(x, y)
	return c.R == 255 && c.G == 255 && c.B == 255
}

func inked(img *image.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !isWhite(img, x, y) {
				n++
			}
		}
	}
	return n
}

func TestSurfaceDevicePixels(t *testing.T) {
	s, err := NewSurface(100, 80, 2)
	require.NoError(t, err)

	w, h := s.Pixels()
	assert.Equal(t, 200, w)
	assert.Equal(t, 160, h)

	require.NoError(t, s.Resize(100, 120, 1.5))
	w, h = s.Pixels()
	assert.Equal(t, 150, w)
	assert.Equal(t, 180, h)
	cw, ch, dpr := s.Size()
	assert.Equal(t, []float64{100, 120, 1.5}, []float64{cw, ch, dpr})
}

func TestSurfaceRejectsEmptySize(t *testing.T) {
	_, err := NewSurface(0, 80, 1)
	assert.Error(t, err)

	s, err := NewSurface(10, 10, 0)
	require.NoError(t, err)
	assert.Error(t, s.Resize(10, 0, 1))
}

func TestRedrawStrokesAtDPR(t *testing.T) {
	s, err := NewSurface(100, 80, 2)
	require.NoError(t, err)

	require.NoError(t, Redraw(s, Scene{Strokes: []state.Stroke{line(10, 40, 90, 40, 4)}}))
	img := s.Image()

	assert.False(t, isWhite(img, 100, 80), "stroke centre should be inked")
	assert.True(t, isWhite(img, 100, 20), "far from the stroke should stay white")
	assert.True(t, isWhite(img, 5, 5))
}

func TestRedrawSkipsDegenerateStrokes(t *testing.T) {
	s, err := NewSurface(50, 50, 1)
	require.NoError(t, err)

	dot := state.Stroke{Points: []state.Point{state.Pt(25, 25)}, Color: black, Width: 10}
	require.NoError(t, Redraw(s, Scene{Strokes: []state.Stroke{dot}}))
	assert.Zero(t, inked(s.Image()))
}

func TestRedrawBackgrounds(t *testing.T) {
	count := func(bg Background) int {
		s, err := NewSurface(120, 120, 1)
		require.NoError(t, err)
		require.NoError(t, Redraw(s, Scene{Background: bg}))
		return inked(s.Image())
	}

	blank, lined, grid := count(BackgroundBlank), count(BackgroundLined), count(BackgroundGrid)
	assert.Zero(t, blank)
	assert.Greater(t, lined, 0)
	assert.Greater(t, grid, lined)
}

func TestDrawGuidesReturnsStrokeResult(t *testing.T) {
	for _, bg := range []Background{BackgroundBlank, BackgroundLined, BackgroundGrid} {
		t.Run(string(bg), func(t *testing.T) {
			s, err := NewSurface(90, 90, 2)
			require.NoError(t, err)
			require.NoError(t, drawGuides(s, bg))
			if bg == BackgroundBlank {
				assert.Zero(t, inked(s.Image()))
			} else {
				assert.Greater(t, inked(s.Image()), 0)
			}
		})
	}
}

func TestRedrawClearsPreviousFrame(t *testing.T) {
	s, err := NewSurface(60, 60, 1)
	require.NoError(t, err)

	require.NoError(t, Redraw(s, Scene{Strokes: []state.Stroke{line(5, 30, 55, 30, 6)}}))
	require.NotZero(t, inked(s.Image()))

	require.NoError(t, Redraw(s, Scene{}))
	assert.Zero(t, inked(s.Image()))
}

func TestSegmentDrawsIncrementally(t *testing.T) {
	s, err := NewSurface(100, 100, 1)
	require.NoError(t, err)
	require.NoError(t, Redraw(s, Scene{Strokes: []state.Stroke{line(10, 10, 90, 10, 4)}}))

	pending := state.Stroke{
		Points: []state.Point{state.Pt(10, 50), state.Pt(50, 50), state.Pt(50, 90)},
		Color:  black,
		Width:  4,
	}
	require.NoError(t, Segment(s, pending))
	img := s.Image()

	assert.False(t, isWhite(img, 50, 10), "committed stroke must survive a segment draw")
	assert.False(t, isWhite(img, 50, 70), "newest segment is drawn")
	assert.True(t, isWhite(img, 25, 50), "older segments are not redrawn")
}

func TestRedrawFeedbackOverlay(t *testing.T) {
	rect := feedback.Rect(80, 80, 160, 80) // display (20,20) 40x20 at dpr 2
	c1, c2 := feedback.Circle(400, 400), feedback.Circle(600, 200)
	items := []feedback.Item{
		{Coordinates: &rect, Severity: "high"},
		{Coordinates: &c1, Severity: "low"},
		{Coordinates: &c2, Severity: "medium"},
	}

	s, err := NewSurface(200, 200, 2)
	require.NoError(t, err)

	require.NoError(t, Redraw(s, Scene{Feedback: items, ShowFeedback: false}))
	assert.Zero(t, inked(s.Image()), "hidden feedback draws nothing")

	require.NoError(t, Redraw(s, Scene{Feedback: items, ShowFeedback: true}))
	img := s.Image()
	assert.False(t, isWhite(img, 80, 60), "rect interior is tinted")
	assert.True(t, isWhite(img, 20, 20))
	assert.Len(t, s.labels, 2, "each circle gets a badge when several circles exist")
}

func TestRedrawSingleCircleHasNoBadge(t *testing.T) {
	c := feedback.Circle(100, 100)
	s, err := NewSurface(100, 100, 1)
	require.NoError(t, err)

	require.NoError(t, Redraw(s, Scene{Feedback: []feedback.Item{{Coordinates: &c}}, ShowFeedback: true}))
	assert.Empty(t, s.labels)
}

func TestParseBackground(t *testing.T) {
	for in, want := range map[string]Background{"": BackgroundBlank, "lined": BackgroundLined, "grid": BackgroundGrid, "blank": BackgroundBlank} {
		got, err := ParseBackground(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseBackground("dotted")
	assert.Error(t, err)
}
