package render

import (
	"image/color"
	"strconv"

	"github.com/gogpu/gg"

	"WorkBoard/internal/feedback"
)

const (
	ringRadius  = 30.0
	badgeRadius = 10.0
	badgeOffset = 21.0
)

// drawFeedback paints every feedback item with coordinates, mapped from
// export space into display space.
func drawFeedback(s *Surface, items []feedback.Item) error {
	tr := feedback.NewTransform(s.dpr)
	numbered := feedback.CircleCount(items) > 1
	k := s.dpr
	dc := s.dc

	for i, it := range items {
		if it.Coordinates == nil {
			continue
		}
		shape := tr.ToDisplay(*it.Coordinates)
		c := it.Color()

		switch shape.Kind {
		case feedback.KindRect:
			dc.DrawRectangle(shape.X*k, shape.Y*k, shape.Width*k, shape.Height*k)
			dc.SetColor(withAlpha(c, 40))
			if err := dc.FillPreserve(); err != nil {
				return err
			}
			dc.SetColor(c)
			dc.SetLineWidth(2 * k)
			dc.SetLineJoin(gg.LineJoinMiter)
			if err := dc.Stroke(); err != nil {
				return err
			}

		case feedback.KindCircle:
			dc.DrawCircle(shape.X*k, shape.Y*k, ringRadius*k)
			dc.SetColor(withAlpha(c, 30))
			if err := dc.FillPreserve(); err != nil {
				return err
			}
			dc.SetColor(c)
			dc.SetLineWidth(3 * k)
			if err := dc.Stroke(); err != nil {
				return err
			}
			if numbered {
				bx, by := shape.X+badgeOffset, shape.Y-badgeOffset
				dc.DrawCircle(bx*k, by*k, badgeRadius*k)
				dc.SetColor(c)
				if err := dc.Fill(); err != nil {
					return err
				}
				s.addLabel(strconv.Itoa(i+1), bx, by, color.White)
			}
		}
	}
	return nil
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
