// Package render draws the whiteboard: background guides, strokes and
// feedback overlays, onto a DPR-aware gg surface.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Surface is the board's pixel buffer. Callers work in CSS pixels; the
// surface holds width×dpr by height×dpr device pixels.
type Surface struct {
	dc     *gg.Context
	width  float64
	height float64
	dpr    float64
	labels []label
}

// label is text composited over the raster, in device pixels.
type label struct {
	text  string
	x, y  int
	color color.Color
}

// NewSurface allocates a surface for a width×height CSS-pixel board.
func NewSurface(width, height, dpr float64) (*Surface, error) {
	pw, ph, err := devicePixels(width, height, dpr)
	if err != nil {
		return nil, err
	}
	s := &Surface{
		dc:     gg.NewContext(pw, ph),
		width:  width,
		height: height,
		dpr:    normDPR(dpr),
	}
	s.dc.ClearWithColor(gg.White)
	return s, nil
}

// Resize reallocates the pixel buffer. The caller must redraw afterwards.
func (s *Surface) Resize(width, height, dpr float64) error {
	pw, ph, err := devicePixels(width, height, dpr)
	if err != nil {
		return err
	}
	if err := s.dc.Resize(pw, ph); err != nil {
		return fmt.Errorf("resize surface: %w", err)
	}
	s.width, s.height, s.dpr = width, height, normDPR(dpr)
	s.labels = nil
	return nil
}

// Size returns the CSS size and device pixel ratio.
func (s *Surface) Size() (width, height, dpr float64) {
	return s.width, s.height, s.dpr
}

// Pixels returns the device pixel dimensions.
func (s *Surface) Pixels() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

// Image returns a copy of the surface with text labels composited on top.
func (s *Surface) Image() *image.RGBA {
	src := s.dc.Image()
	img, ok := src.(*image.RGBA)
	if !ok {
		img = image.NewRGBA(src.Bounds())
		draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	}

	for _, l := range s.labels {
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(l.color),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(l.x, l.y),
		}
		d.DrawString(l.text)
	}
	return img
}

// addLabel centres text on (cx, cy) given in CSS pixels.
func (s *Surface) addLabel(text string, cx, cy float64, c color.Color) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Round()
	m := face.Metrics()
	asc, desc := m.Ascent.Round(), m.Descent.Round()
	x := int(math.Round(cx*s.dpr)) - w/2
	y := int(math.Round(cy*s.dpr)) + (asc-desc)/2
	s.labels = append(s.labels, label{text: text, x: x, y: y, color: c})
}

func devicePixels(width, height, dpr float64) (int, int, error) {
	dpr = normDPR(dpr)
	pw := int(math.Round(width * dpr))
	ph := int(math.Round(height * dpr))
	if pw <= 0 || ph <= 0 {
		return 0, 0, fmt.Errorf("invalid surface size %.0fx%.0f@%.2f", width, height, dpr)
	}
	return pw, ph, nil
}

func normDPR(dpr float64) float64 {
	if dpr <= 0 {
		return 1
	}
	return dpr
}
