package export

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"WorkBoard/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []state.Stroke {
	return []state.Stroke{{
		ID:     "s1",
		Points: []state.Point{state.Pt(10, 10), state.Pt(10, 50), state.Pt(60, 50)},
		Color:  color.NRGBA{R: 20, G: 20, B: 200, A: 255},
		Width:  3,
	}}
}

func TestJPEGEmptyCanvas(t *testing.T) {
	_, err := JPEG(nil, 300, 200, 1)
	assert.ErrorIs(t, err, ErrEmptyCanvas)
	assert.Equal(t, "please draw something first", err.Error())
}

func TestJPEGDimensions(t *testing.T) {
	tests := []struct {
		name         string
		w, h, dpr    float64
		wantW, wantH int
	}{
		{"dpr 1", 300, 200, 1, 600, 400},
		{"dpr 2", 300, 200, 2, 1200, 800},
		{"dpr 1.5", 300, 200, 1.5, 900, 600},
		{"unset dpr", 100, 50, 0, 200, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := JPEG(sample(), tt.w, tt.h, tt.dpr)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, img.Width)
			assert.Equal(t, tt.wantH, img.Height)

			require.True(t, strings.HasPrefix(img.DataURI, "data:image/jpeg;base64,"))
			raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(img.DataURI, "data:image/jpeg;base64,"))
			require.NoError(t, err)
			assert.Equal(t, img.Data, raw)

			cfg, err := jpeg.DecodeConfig(bytes.NewReader(raw))
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, cfg.Width)
			assert.Equal(t, tt.wantH, cfg.Height)
		})
	}
}

func TestJPEGIsOpaqueWhiteWithScaledStrokes(t *testing.T) {
	out, err := JPEG(sample(), 100, 100, 1)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)

	// corner is background
	r, g, b, _ := img.At(190, 190).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))

	// display (10,30) lies on the first segment, export (20,60)
	_, _, b2, _ := img.At(20, 60).RGBA()
	r2, _, _, _ := img.At(20, 60).RGBA()
	assert.Greater(t, b2>>8, r2>>8+80)
}

func TestPNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, src))

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Width)
	assert.Equal(t, 3, cfg.Height)

	assert.Error(t, PNG(&buf, nil))
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, sample(), 400, 300))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	assert.ErrorIs(t, PDF(&buf, nil, 400, 300), ErrEmptyCanvas)
	assert.Error(t, PDF(&buf, sample(), 0, 300))
}
