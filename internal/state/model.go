package state

import (
	"image/color"
	"time"

	"github.com/google/uuid"
)

// Point is a position in display-canvas pixels (CSS pixels, DPR removed).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Stroke is one continuous pen gesture. Once committed to a Board it is never
// mutated; erasing removes the whole stroke.
type Stroke struct {
	ID       string      `json:"id"`
	Points   []Point     `json:"points"`
	Color    color.NRGBA `json:"color"`
	Width    float64     `json:"width"`
	IsEraser bool        `json:"is_eraser"`
	Time     time.Time   `json:"time"`
}

func newStroke(start Point, c color.NRGBA, width float64) *Stroke {
	return &Stroke{
		ID:     uuid.NewString(),
		Points: []Point{start},
		Color:  c,
		Width:  width,
		Time:   time.Now(),
	}
}

// Drawable reports whether the stroke has enough points to render or hit-test.
func (s Stroke) Drawable() bool {
	return len(s.Points) >= 2
}

// Last returns the most recent point of the stroke.
func (s Stroke) Last() Point {
	return s.Points[len(s.Points)-1]
}

type Tool int

const (
	ToolPen Tool = iota
	ToolEraser
)

func (t Tool) String() string {
	if t == ToolEraser {
		return "eraser"
	}
	return "pen"
}

// Mode is the gesture state of a Board.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModeErasing
)

func (m Mode) String() string {
	switch m {
	case ModeDrawing:
		return "drawing"
	case ModeErasing:
		return "erasing"
	default:
		return "idle"
	}
}
