package raster

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidSize is returned for a non-positive canvas size.
var ErrInvalidSize = errors.New("raster: invalid size")

// minBandRows keeps parallel bands from degenerating into per-row goroutines.
const minBandRows = 16

// Renderer draws a Style through the pass pipeline.
// The zero Renderer has an empty style; start from DefaultStyle.
type Renderer struct {
	Style Style
	// Workers > 1 shades each pass in parallel row bands. Passes still run
	// one after another, so the output does not depend on Workers.
	Workers int
}

// Render draws the default icon on a size×size canvas.
func Render(size int) (*Canvas, error) {
	r := Renderer{Style: DefaultStyle()}
	return r.Render(size)
}

// Render draws r.Style on a fresh size×size canvas.
func (r *Renderer) Render(size int) (*Canvas, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	l := r.Style.Layout(size)
	c := NewCanvas(size, size)
	for _, p := range Passes() {
		area := p.Bounds(&l).Intersect(c.Bounds())
		if area.Empty() {
			continue
		}
		r.run(p, c, &l, area)
	}
	return c, nil
}

func (r *Renderer) run(p Pass, c *Canvas, l *Layout, area image.Rectangle) {
	rows := area.Dy()
	if r.Workers <= 1 || rows < 2*minBandRows {
		shadeRows(p, c, l, &r.Style, area)
		return
	}

	band := (rows + r.Workers - 1) / r.Workers
	if band < minBandRows {
		band = minBandRows
	}
	var g errgroup.Group
	g.SetLimit(r.Workers)
	for y0 := area.Min.Y; y0 < area.Max.Y; y0 += band {
		sub := area
		sub.Min.Y = y0
		sub.Max.Y = min(y0+band, area.Max.Y)
		g.Go(func() error {
			shadeRows(p, c, l, &r.Style, sub)
			return nil
		})
	}
	_ = g.Wait()
}

func shadeRows(p Pass, c *Canvas, l *Layout, s *Style, area image.Rectangle) {
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			p.Shade(c, l, s, x, y)
		}
	}
}
