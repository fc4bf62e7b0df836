package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"WorkBoard/internal/state"
)

const (
	pageWidthMM = 210.0
	marginMM    = 10.0
)

// PDF writes the strokes as vector lines on an A4-wide page whose height
// follows the board's aspect ratio.
func PDF(w io.Writer, strokes []state.Stroke, width, height float64) error {
	if len(strokes) == 0 {
		return ErrEmptyCanvas
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("pdf export: invalid board size %.0fx%.0f", width, height)
	}

	scale := (pageWidthMM - 2*marginMM) / width
	pageHeight := height*scale + 2*marginMM

	p := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: pageWidthMM, Ht: pageHeight},
	})
	p.SetMargins(marginMM, marginMM, marginMM)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	for _, st := range strokes {
		if !st.Drawable() {
			continue
		}
		p.SetDrawColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
		p.SetLineWidth(st.Width * scale)
		for i := 1; i < len(st.Points); i++ {
			p.Line(
				marginMM+st.Points[i-1].X*scale, marginMM+st.Points[i-1].Y*scale,
				marginMM+st.Points[i].X*scale, marginMM+st.Points[i].Y*scale,
			)
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("pdf export: %w", err)
	}
	return nil
}
