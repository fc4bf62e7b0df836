package feedback

import "WorkBoard/internal/state"

// ScaleFactor is the fixed upscale applied to the exported raster so small
// handwriting stays legible for OCR.
const ScaleFactor = 2.0

// Transform maps between display space (CSS pixels) and export space:
// display = export / (Scale × DPR).
type Transform struct {
	Scale float64
	DPR   float64
}

// NewTransform returns the transform for the given device pixel ratio.
// A non-positive ratio is treated as 1.
func NewTransform(dpr float64) Transform {
	if dpr <= 0 {
		dpr = 1
	}
	return Transform{Scale: ScaleFactor, DPR: dpr}
}

// Factor is the export-per-display multiplier.
func (t Transform) Factor() float64 {
	f := t.Scale * t.DPR
	if f <= 0 {
		return 1
	}
	return f
}

func (t Transform) ToDisplay(s Shape) Shape {
	f := t.Factor()
	return Shape{Kind: s.Kind, X: s.X / f, Y: s.Y / f, Width: s.Width / f, Height: s.Height / f}
}

func (t Transform) ToExport(s Shape) Shape {
	f := t.Factor()
	return Shape{Kind: s.Kind, X: s.X * f, Y: s.Y * f, Width: s.Width * f, Height: s.Height * f}
}

func (t Transform) PointToExport(p state.Point) state.Point {
	f := t.Factor()
	return state.Point{X: p.X * f, Y: p.Y * f}
}

func (t Transform) PointToDisplay(p state.Point) state.Point {
	f := t.Factor()
	return state.Point{X: p.X / f, Y: p.Y / f}
}
