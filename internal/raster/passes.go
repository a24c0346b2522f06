package raster

import (
	"image"
	"math"

	"appicon/internal/mathutil"
)

// Pass is one compositing stage. Shade is called once for every pixel inside
// Bounds (clipped to the canvas) and touches only that pixel, so the pixels of
// a pass may be shaded in any order.
type Pass struct {
	Name   string
	Bounds func(l *Layout) image.Rectangle
	Shade  func(c *Canvas, l *Layout, s *Style, x, y int)
}

// Passes returns the icon pipeline in compositing order. Each pass sees the
// canvas left by the previous one.
func Passes() []Pass {
	return []Pass{
		{Name: "card", Bounds: fullCanvas, Shade: shadeCard},
		{Name: "lens", Bounds: fullCanvas, Shade: shadeLens},
		{Name: "handle", Bounds: fullCanvas, Shade: shadeHandle},
		{Name: "bubble", Bounds: bubbleBounds, Shade: shadeBubble},
		{Name: "tail", Bounds: tailBounds, Shade: shadeTail},
		{Name: "stroke", Bounds: strokeBounds, Shade: shadeStroke},
		{Name: "dots", Bounds: dotsBounds, Shade: shadeDots},
	}
}

func fullCanvas(l *Layout) image.Rectangle {
	return image.Rect(0, 0, l.Size, l.Size)
}

// shadeCard writes the diagonal gradient and carves the rounded corners.
func shadeCard(c *Canvas, l *Layout, s *Style, x, y int) {
	size := l.Size
	t := 0.0
	if size > 1 {
		t = float64(x+y) / (2.0 * float64(size-1))
	}
	col := s.Paper0.Lerp(s.Paper1, t)

	// dx, dy are distances to the nearest vertical and horizontal edge.
	dx := min(x, size-1-x)
	dy := min(y, size-1-y)
	rr := l.CornerRadius
	a := 1.0
	if dx < rr && dy < rr {
		d := mathutil.Vec2{float64(rr - dx), float64(rr - dy)}.Len()
		if d > float64(rr) {
			a = 0
		}
	}
	c.Set(x, y, col, a)
}

func shadeLens(c *Canvas, l *Layout, s *Style, x, y int) {
	d := mathutil.Vec2{float64(x), float64(y)}.Dist(l.Lens)
	if math.Abs(d-l.LensRadius) <= l.LensThickness {
		c.Blend(x, y, s.Ink, s.InkOpacity)
	}
}

func shadeHandle(c *Canvas, l *Layout, s *Style, x, y int) {
	d := mathutil.DistToSegment(mathutil.Vec2{float64(x), float64(y)}, l.HandleFrom, l.HandleTo)
	if d <= l.HandleRadius {
		c.Blend(x, y, s.Ink, s.InkOpacity)
	}
}

func bubbleBounds(l *Layout) image.Rectangle {
	b := l.Bubble
	return image.Rect(int(b.X), int(b.Y), int(b.X+b.W), int(b.Y+b.H))
}

func shadeBubble(c *Canvas, l *Layout, s *Style, x, y int) {
	if l.Bubble.Contains(float64(x), float64(y)) {
		c.Blend(x, y, s.Cream, s.CreamOpacity)
	}
}

func tailBounds(l *Layout) image.Rectangle {
	t := l.Tail
	return image.Rect(t.X-l.TailHalfWidth, t.Y, t.X+l.TailHalfWidth, t.Y+l.TailHeight)
}

// shadeTail fills a wedge that hangs from the bubble and widens by one pixel
// on each side per row.
func shadeTail(c *Canvas, l *Layout, s *Style, x, y int) {
	depth := y - l.Tail.Y
	dx := x - l.Tail.X
	if dx < 0 {
		dx = -dx
	}
	if depth >= 0 && dx <= depth {
		c.Blend(x, y, s.Cream, s.CreamOpacity)
	}
}

func strokeBounds(l *Layout) image.Rectangle {
	b, sw := l.Bubble, l.Stroke
	return image.Rect(int(b.X)-sw, int(b.Y)-sw, int(b.X+b.W)+sw, int(b.Y+b.H)+2*sw)
}

// shadeStroke paints the ring between the bubble outline and the outline
// inset by the stroke width.
func shadeStroke(c *Canvas, l *Layout, s *Style, x, y int) {
	fx, fy := float64(x), float64(y)
	inner := l.Bubble.Inset(float64(l.Stroke))
	if l.Bubble.Contains(fx, fy) && !inner.Contains(fx, fy) {
		c.Blend(x, y, s.Ink, s.InkOpacity)
	}
}

func dotBox(p image.Point, r int) image.Rectangle {
	return image.Rect(p.X-2*r, p.Y-2*r, p.X+2*r, p.Y+2*r)
}

func dotsBounds(l *Layout) image.Rectangle {
	var r image.Rectangle
	for _, p := range l.Dots {
		r = r.Union(dotBox(p, l.DotRadius))
	}
	return r
}

func shadeDots(c *Canvas, l *Layout, s *Style, x, y int) {
	pt := image.Point{X: x, Y: y}
	r2 := l.DotRadius * l.DotRadius
	for _, p := range l.Dots {
		if !pt.In(dotBox(p, l.DotRadius)) {
			continue
		}
		dx, dy := x-p.X, y-p.Y
		if dx*dx+dy*dy <= r2 {
			c.Blend(x, y, s.Ink, s.DotOpacity)
		}
	}
}
