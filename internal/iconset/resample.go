package iconset

import (
	"context"
	"fmt"
	"image"

	"appicon/internal/pngenc"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// scaler resamples a premultiplied image to px×px.
type scaler func(src *image.RGBA, px int) *image.RGBA

// resampler is an in-process Resizer that writes PNGs with pngenc.
type resampler struct {
	name  string
	scale scaler
	cache *sourceCache
}

// NewCatmullRom returns a Resizer using x/image/draw's Catmull-Rom kernel.
func NewCatmullRom() Resizer {
	return &resampler{name: "catmullrom", scale: scaleCatmullRom, cache: newSourceCache()}
}

// NewLanczos returns a Resizer using a Lanczos-3 kernel.
func NewLanczos() Resizer {
	return &resampler{name: "lanczos", scale: scaleLanczos, cache: newSourceCache()}
}

func (r *resampler) Name() string { return r.name }

func (r *resampler) Resize(ctx context.Context, src, dst string, px int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if px <= 0 {
		return fmt.Errorf("iconset: invalid target size %d", px)
	}
	img, err := r.cache.load(src)
	if err != nil {
		return err
	}
	out := downsample(img, px, r.scale)
	return pngenc.WriteFile(dst, out.Pix, px, px)
}

// Invalidate drops any decoded copy of path.
func (r *resampler) Invalidate(path string) {
	r.cache.forget(path)
}

// downsample resizes with premultiplied alpha so transparent edges do not
// pick up dark halos from the colour of invisible pixels.
func downsample(img *image.NRGBA, px int, scale scaler) *image.NRGBA {
	b := img.Bounds()

	// Premultiply alpha
	premul := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x-b.Min.X, y-b.Min.Y)
			a := float64(img.Pix[si+3]) / 255.0
			premul.Pix[di] = uint8(float64(img.Pix[si])*a + 0.5)
			premul.Pix[di+1] = uint8(float64(img.Pix[si+1])*a + 0.5)
			premul.Pix[di+2] = uint8(float64(img.Pix[si+2])*a + 0.5)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	dst := premul
	if b.Dx() != px || b.Dy() != px {
		dst = scale(premul, px)
	}

	// Unpremultiply alpha
	result := image.NewNRGBA(image.Rect(0, 0, px, px))
	for y := 0; y < px; y++ {
		for x := 0; x < px; x++ {
			si := dst.PixOffset(x, y)
			di := result.PixOffset(x, y)
			a := float64(dst.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				result.Pix[di] = clamp8(float64(dst.Pix[si]) * inv)
				result.Pix[di+1] = clamp8(float64(dst.Pix[si+1]) * inv)
				result.Pix[di+2] = clamp8(float64(dst.Pix[si+2]) * inv)
			}
			result.Pix[di+3] = dst.Pix[si+3]
		}
	}
	return result
}

func scaleCatmullRom(src *image.RGBA, px int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, px, px))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func scaleLanczos(src *image.RGBA, px int) *image.RGBA {
	out := resize.Resize(uint(px), uint(px), src, resize.Lanczos3)
	if rgba, ok := out.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, px, px))
	draw.Draw(dst, dst.Bounds(), out, out.Bounds().Min, draw.Src)
	return dst
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
