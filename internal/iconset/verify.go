package iconset

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/corona10/goimagehash"
	"golang.org/x/image/draw"
)

// Check is the verification outcome for one variant.
type Check struct {
	Variant  Variant
	Path     string
	Width    int
	Height   int
	Distance int // perceptual-hash distance to the base, -1 if not computed
	Err      error
}

// OK reports whether the variant passed.
func (c Check) OK() bool { return c.Err == nil }

// Verify checks that every variant exists in dir with the exact pixel size
// and compares it with the base render by perceptual hash. A maxDistance of
// zero only reports distances.
func Verify(ctx context.Context, dir string, baseSize int, variants []Variant, maxDistance int) ([]Check, error) {
	basePath := filepath.Join(dir, BaseFilename(baseSize))
	base, err := LoadImage(basePath)
	if err != nil {
		return nil, err
	}
	baseHash, err := goimagehash.PerceptionHash(flatten(base))
	if err != nil {
		return nil, fmt.Errorf("iconset: hash %s: %w", basePath, err)
	}

	checks := make([]Check, len(variants))
	for i, v := range variants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		checks[i] = verifyOne(filepath.Join(dir, v.Filename()), v, baseHash, maxDistance)
	}
	return checks, nil
}

func verifyOne(path string, v Variant, baseHash *goimagehash.ImageHash, maxDistance int) Check {
	c := Check{Variant: v, Path: path, Distance: -1}
	img, err := LoadImage(path)
	if err != nil {
		c.Err = err
		return c
	}
	b := img.Bounds()
	c.Width, c.Height = b.Dx(), b.Dy()
	if c.Width != v.Pixels() || c.Height != v.Pixels() {
		c.Err = fmt.Errorf("%s is %dx%d, want %dx%d", filepath.Base(path), c.Width, c.Height, v.Pixels(), v.Pixels())
		return c
	}
	h, err := goimagehash.PerceptionHash(flatten(img))
	if err != nil {
		c.Err = fmt.Errorf("hash %s: %w", filepath.Base(path), err)
		return c
	}
	d, err := baseHash.Distance(h)
	if err != nil {
		c.Err = err
		return c
	}
	c.Distance = d
	if maxDistance > 0 && d > maxDistance {
		c.Err = fmt.Errorf("%s differs from the base (distance %d > %d)", filepath.Base(path), d, maxDistance)
	}
	return c
}

// flatten composites img over white so hashes ignore the colour stored in
// transparent pixels.
func flatten(img *image.NRGBA) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
