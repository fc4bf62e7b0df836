// Package feedback models the annotations the grading service returns for a
// submitted drawing and maps them between export and display space.
package feedback

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"
)

// Kind tags the variant held by a Shape.
type Kind string

const (
	KindRect Kind = "rect"
	// KindCircle is the legacy point annotation: a centre with a fixed radius.
	KindCircle Kind = "circle"
)

// Shape is a Rect or a Circle. Width and Height are zero for circles.
type Shape struct {
	Kind   Kind
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func Rect(x, y, w, h float64) Shape {
	return Shape{Kind: KindRect, X: x, Y: y, Width: w, Height: h}
}

func Circle(x, y float64) Shape {
	return Shape{Kind: KindCircle, X: x, Y: y}
}

type shapeJSON struct {
	Kind   Kind     `json:"kind,omitempty"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// UnmarshalJSON accepts the grader's untagged form: an object with width and
// height is a rect, one with only x and y is a circle.
func (s *Shape) UnmarshalJSON(data []byte) error {
	var raw shapeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode shape: %w", err)
	}

	switch {
	case raw.Kind == KindCircle:
		*s = Circle(raw.X, raw.Y)
	case raw.Width != nil && raw.Height != nil:
		*s = Rect(raw.X, raw.Y, *raw.Width, *raw.Height)
	case raw.Kind == KindRect:
		return fmt.Errorf("decode shape: rect without width/height")
	default:
		*s = Circle(raw.X, raw.Y)
	}
	return nil
}

// Item is one annotation. Coordinates are in export space and may be absent,
// in which case the item is listed but never drawn.
type Item struct {
	Area        string `json:"area"`
	Coordinates *Shape `json:"coordinates,omitempty"`
	Issue       string `json:"issue"`
	Suggestion  string `json:"suggestion"`
	Severity    string `json:"severity"`
}

var (
	severityHigh   = color.NRGBA{R: 220, G: 38, B: 38, A: 255}
	severityMedium = color.NRGBA{R: 234, G: 128, B: 20, A: 255}
	severityLow    = color.NRGBA{R: 217, G: 170, B: 6, A: 255}
)

// Color is the highlight colour for the item's severity.
func (i Item) Color() color.NRGBA {
	switch strings.ToLower(i.Severity) {
	case "high":
		return severityHigh
	case "medium":
		return severityMedium
	default:
		return severityLow
	}
}

// Tooltip is the hover text for the item.
func (i Item) Tooltip() string {
	var b strings.Builder
	if i.Area != "" {
		b.WriteString(i.Area)
		b.WriteString("\n")
	}
	b.WriteString(i.Issue)
	if i.Suggestion != "" {
		b.WriteString("\nSuggestion: ")
		b.WriteString(i.Suggestion)
	}
	return b.String()
}

// CircleCount returns how many items carry a legacy circle.
func CircleCount(items []Item) int {
	n := 0
	for _, it := range items {
		if it.Coordinates != nil && it.Coordinates.Kind == KindCircle {
			n++
		}
	}
	return n
}
