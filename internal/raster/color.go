package raster

import "appicon/internal/mathutil"

// Color is an sRGB-encoded colour with channels in [0,1].
type Color struct {
	R, G, B float64
}

// RGB8 builds a Color from 8-bit channel values.
func RGB8(r, g, b uint8) Color {
	return Color{float64(r) / 255.0, float64(g) / 255.0, float64(b) / 255.0}
}

// Lerp interpolates channel-wise from c to d.
func (c Color) Lerp(d Color, t float64) Color {
	return Color{
		mathutil.Lerp(c.R, d.R, t),
		mathutil.Lerp(c.G, d.G, t),
		mathutil.Lerp(c.B, d.B, t),
	}
}
