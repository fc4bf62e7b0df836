package board

import (
	"fmt"
	"image/color"

	"WorkBoard/internal/render"
)

// Options is the board configuration supplied by the host page.
type Options struct {
	Background   render.Background
	MinHeight    float64
	MaxHeight    float64
	Color        color.NRGBA
	Width        float64
	ShowFeedback bool
}

func DefaultOptions() Options {
	return Options{
		Background:   render.BackgroundBlank,
		MinHeight:    DefaultMinHeight,
		MaxHeight:    DefaultMaxHeight,
		Color:        color.NRGBA{A: 255},
		Width:        3,
		ShowFeedback: true,
	}
}

func (o Options) Validate() error {
	if _, err := render.ParseBackground(string(o.Background)); err != nil {
		return err
	}
	if o.MinHeight <= 0 {
		return fmt.Errorf("min height must be positive, got %v", o.MinHeight)
	}
	if o.MaxHeight < o.MinHeight {
		return fmt.Errorf("max height %v below min height %v", o.MaxHeight, o.MinHeight)
	}
	if o.Width <= 0 {
		return fmt.Errorf("pen width must be positive, got %v", o.Width)
	}
	return nil
}
