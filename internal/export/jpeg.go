// Package export produces the images that leave the board: the upscaled
// JPEG handed to the grading service, a PNG download and a PDF handout.
package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/gg"

	"WorkBoard/internal/feedback"
	"WorkBoard/internal/render"
	"WorkBoard/internal/state"
)

// Quality is the JPEG quality used for OCR submissions.
const Quality = 95

// ErrEmptyCanvas is returned when there is nothing to export. Its text is
// shown to the user as is.
var ErrEmptyCanvas = errors.New("please draw something first")

// Image is an encoded raster.
type Image struct {
	DataURI string
	Data    []byte
	Width   int
	Height  int
}

// JPEG rasterizes only the strokes onto an opaque white buffer of
// width×height CSS pixels scaled by feedback.ScaleFactor×dpr, so that
// feedback coordinates returned for it map back with feedback.Transform.
func JPEG(strokes []state.Stroke, width, height, dpr float64) (Image, error) {
	if len(strokes) == 0 {
		return Image{}, ErrEmptyCanvas
	}

	k := feedback.NewTransform(dpr).Factor()
	pw := int(math.Round(width * k))
	ph := int(math.Round(height * k))
	if pw <= 0 || ph <= 0 {
		return Image{}, fmt.Errorf("export size %dx%d: invalid board size", pw, ph)
	}

	dc := gg.NewContext(pw, ph)
	defer func() { _ = dc.Close() }()
	dc.ClearWithColor(gg.White)

	if err := render.Strokes(dc, strokes, k); err != nil {
		return Image{}, fmt.Errorf("rasterize strokes: %w", err)
	}

	var buf bytes.Buffer
	if err := dc.EncodeJPEG(&buf, Quality); err != nil {
		return Image{}, fmt.Errorf("encode jpeg: %w", err)
	}

	slog.Info("[EXPORT] rasterized strokes",
		slog.Int("strokes", len(strokes)),
		slog.Int("width", pw),
		slog.Int("height", ph),
		slog.Int("bytes", buf.Len()))

	return Image{
		DataURI: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Data:    buf.Bytes(),
		Width:   pw,
		Height:  ph,
	}, nil
}
