package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
)

// PNG writes the board's current raster, overlays included, for download.
func PNG(w io.Writer, img image.Image) error {
	if img == nil {
		return fmt.Errorf("encode png: no image")
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
