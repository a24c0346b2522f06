// Package pngenc writes 8-bit RGBA pixel buffers as PNG byte streams.
//
// The output always has one IHDR, one IDAT and one IEND chunk; every
// scanline uses filter type 0 and the pixel data is zlib-compressed at
// maximum effort.
package pngenc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
)

// Signature is the fixed 8-byte PNG file signature.
const Signature = "\x89PNG\r\n\x1a\n"

const (
	bitDepth       = 8
	colorTypeRGBA  = 6
	bytesPerPixel  = 4
	filterTypeNone = 0
)

// ErrInvalidDimensions is returned when the buffer does not hold exactly
// width*height RGBA pixels.
var ErrInvalidDimensions = errors.New("pngenc: invalid dimensions")

// Encode serializes a row-major RGBA buffer of width×height pixels.
func Encode(pix []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(pix) != width*height*bytesPerPixel {
		return nil, fmt.Errorf("%w: buffer is %d bytes, want %d for %dx%d",
			ErrInvalidDimensions, len(pix), width*height*bytesPerPixel, width, height)
	}

	idat, err := compress(pix, width, height)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(Signature) + 3*chunkOverhead + ihdrLen + len(idat))
	buf.WriteString(Signature)
	writeChunk(&buf, "IHDR", header(width, height))
	writeChunk(&buf, "IDAT", idat)
	writeChunk(&buf, "IEND", nil)
	return buf.Bytes(), nil
}

// EncodeImage serializes an NRGBA image, honouring its stride and bounds.
func EncodeImage(img *image.NRGBA) ([]byte, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if img.Stride == w*bytesPerPixel && b.Min == (image.Point{}) {
		return Encode(img.Pix[:w*h*bytesPerPixel], w, h)
	}
	pix := make([]byte, 0, w*h*bytesPerPixel)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		pix = append(pix, img.Pix[off:off+w*bytesPerPixel]...)
	}
	return Encode(pix, w, h)
}

// WriteFile encodes pix and writes it to path. The file is written to a
// temporary sibling first and renamed into place, so a failed call never
// leaves a truncated PNG behind.
func WriteFile(path string, pix []byte, width, height int) error {
	data, err := Encode(pix, width, height)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("pngenc: create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("pngenc: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("pngenc: write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("pngenc: chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("pngenc: rename %s: %w", path, err)
	}
	return nil
}

const ihdrLen = 13

func header(width, height int) []byte {
	b := make([]byte, ihdrLen)
	binary.BigEndian.PutUint32(b[0:4], uint32(width))
	binary.BigEndian.PutUint32(b[4:8], uint32(height))
	b[8] = bitDepth
	b[9] = colorTypeRGBA
	// compression, filter and interlace methods stay 0
	return b
}

// compress prefixes every scanline with a filter byte and deflates the result.
func compress(pix []byte, width, height int) ([]byte, error) {
	stride := width * bytesPerPixel
	raw := make([]byte, 0, height*(stride+1))
	for y := 0; y < height; y++ {
		raw = append(raw, filterTypeNone)
		raw = append(raw, pix[y*stride:(y+1)*stride]...)
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("pngenc: zlib: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("pngenc: zlib: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("pngenc: zlib: %w", err)
	}
	return buf.Bytes(), nil
}
