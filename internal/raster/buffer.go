package raster

import (
	"image"
	"math"

	"appicon/internal/mathutil"
)

// Canvas holds the rendering target as one flat slice for cache locality.
type Canvas struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA interleaved, row-major, len = W*H*4
}

// NewCanvas allocates a zeroed (fully transparent) canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*4),
	}
}

// Bounds returns the pixel rectangle covered by the canvas.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

// Set overwrites the pixel at (x, y) with col at opacity a.
func (c *Canvas) Set(x, y int, col Color, a float64) {
	i := (y*c.Width + x) * 4
	c.Pix[i] = quantize(col.R)
	c.Pix[i+1] = quantize(col.G)
	c.Pix[i+2] = quantize(col.B)
	c.Pix[i+3] = quantize(a)
}

// Blend composites col at opacity a over the pixel at (x, y) (source-over,
// non-premultiplied storage). A non-positive a, or a resulting alpha that is
// effectively zero, leaves the pixel untouched.
func (c *Canvas) Blend(x, y int, col Color, a float64) {
	if a <= 0 {
		return
	}
	i := (y*c.Width + x) * 4
	br := float64(c.Pix[i]) / 255.0
	bg := float64(c.Pix[i+1]) / 255.0
	bb := float64(c.Pix[i+2]) / 255.0
	ba := float64(c.Pix[i+3]) / 255.0

	oa := a + ba*(1-a)
	if oa <= 1e-6 {
		return
	}
	c.Pix[i] = quantize((col.R*a + br*ba*(1-a)) / oa)
	c.Pix[i+1] = quantize((col.G*a + bg*ba*(1-a)) / oa)
	c.Pix[i+2] = quantize((col.B*a + bb*ba*(1-a)) / oa)
	c.Pix[i+3] = quantize(oa)
}

// NRGBA wraps the canvas pixels as an image without copying.
func (c *Canvas) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    c.Pix,
		Stride: c.Width * 4,
		Rect:   c.Bounds(),
	}
}

// quantize clamps a channel intensity to [0,1] and maps it to 0..255,
// rounding halves to even.
func quantize(v float64) uint8 {
	return uint8(math.RoundToEven(mathutil.Clamp01(v) * 255.0))
}
