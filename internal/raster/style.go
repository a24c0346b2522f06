package raster

import (
	"image"
	"math"

	"appicon/internal/mathutil"
)

// Style holds the colours, opacities and proportions of the icon. All
// proportions are fractions of the canvas size.
type Style struct {
	// Card
	Paper0      Color // gradient at the top-left corner
	Paper1      Color // gradient at the bottom-right corner
	CornerRatio float64

	// Ink and bubble colours
	Ink          Color
	Cream        Color
	InkOpacity   float64
	CreamOpacity float64
	DotOpacity   float64

	// Magnifying glass
	LensCenter    mathutil.Vec2
	LensRadius    float64
	LensThickness float64
	HandleFrom    mathutil.Vec2
	HandleTo      mathutil.Vec2
	HandleRadius  float64

	// Chat bubble
	BubbleOrigin  mathutil.Vec2
	BubbleSize    mathutil.Vec2
	BubbleRadius  float64
	StrokeWidth   float64
	TailAnchor    float64 // fraction of bubble width
	TailHeight    float64
	TailHalfWidth float64
	DotRow        float64 // fraction of bubble height
	DotStart      float64 // fraction of bubble width
	DotStep       float64 // fraction of bubble width
	DotCount      int
	DotRadius     float64
}

// DefaultStyle returns the warm-paper icon: ink magnifying glass and a cream
// chat bubble with three dots.
func DefaultStyle() Style {
	return Style{
		Paper0:      RGB8(0xF7, 0xF4, 0xEE),
		Paper1:      RGB8(0xE9, 0xD7, 0xB9),
		CornerRatio: 0.18,

		Ink:          RGB8(0x1E, 0x2A, 0x2F),
		Cream:        RGB8(0xFD, 0xFB, 0xF6),
		InkOpacity:   0.95,
		CreamOpacity: 0.96,
		DotOpacity:   0.85,

		LensCenter:    mathutil.Vec2{0.42, 0.46},
		LensRadius:    0.22,
		LensThickness: 0.028,
		HandleFrom:    mathutil.Vec2{0.56, 0.60},
		HandleTo:      mathutil.Vec2{0.78, 0.82},
		HandleRadius:  0.032,

		BubbleOrigin:  mathutil.Vec2{0.50, 0.18},
		BubbleSize:    mathutil.Vec2{0.34, 0.22},
		BubbleRadius:  0.04,
		StrokeWidth:   0.020,
		TailAnchor:    0.22,
		TailHeight:    0.06,
		TailHalfWidth: 0.05,
		DotRow:        0.55,
		DotStart:      0.38,
		DotStep:       0.14,
		DotCount:      3,
		DotRadius:     0.018,
	}
}

// Layout is the pixel geometry of a Style at one canvas size. Everything but
// the corner radius snaps to whole pixels by truncation.
type Layout struct {
	Size         int
	CornerRadius int

	Lens          mathutil.Vec2
	LensRadius    float64
	LensThickness float64
	HandleFrom    mathutil.Vec2
	HandleTo      mathutil.Vec2
	HandleRadius  float64

	Bubble        RoundRect
	Stroke        int
	Tail          image.Point // apex, on the bubble's bottom edge
	TailHeight    int
	TailHalfWidth int
	Dots          []image.Point
	DotRadius     int
}

// Layout derives the pixel geometry for a size×size canvas.
func (s *Style) Layout(size int) Layout {
	px := func(f float64) int { return int(float64(size) * f) }
	pt := func(v mathutil.Vec2) mathutil.Vec2 {
		return mathutil.Vec2{float64(px(v[0])), float64(px(v[1]))}
	}

	bx, by := px(s.BubbleOrigin[0]), px(s.BubbleOrigin[1])
	bw, bh := px(s.BubbleSize[0]), px(s.BubbleSize[1])

	l := Layout{
		Size:         size,
		CornerRadius: int(math.Round(float64(size) * s.CornerRatio)),

		Lens:          pt(s.LensCenter),
		LensRadius:    float64(px(s.LensRadius)),
		LensThickness: float64(px(s.LensThickness)),
		HandleFrom:    pt(s.HandleFrom),
		HandleTo:      pt(s.HandleTo),
		HandleRadius:  float64(px(s.HandleRadius)),

		Bubble: RoundRect{
			X: float64(bx), Y: float64(by),
			W: float64(bw), H: float64(bh),
			R: float64(px(s.BubbleRadius)),
		},
		Stroke: px(s.StrokeWidth),
		Tail: image.Point{
			X: int(float64(bx) + float64(bw)*s.TailAnchor),
			Y: by + bh,
		},
		TailHeight:    px(s.TailHeight),
		TailHalfWidth: px(s.TailHalfWidth),
		DotRadius:     px(s.DotRadius),
	}

	dotY := int(float64(by) + float64(bh)*s.DotRow)
	for k := 0; k < s.DotCount; k++ {
		dotX := int(float64(bx) + float64(bw)*(s.DotStart+float64(k)*s.DotStep))
		l.Dots = append(l.Dots, image.Point{X: dotX, Y: dotY})
	}
	return l
}
