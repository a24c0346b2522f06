// Package preview writes the base render in formats other than the iconset PNGs.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"sort"
	"strings"

	"appicon/internal/pngenc"
	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Encoder writes an image in one file format.
type Encoder interface {
	Format() string
	Extension() string
	Encode(w io.Writer, img *image.NRGBA) error
}

var encoders = map[string]Encoder{
	"png":  pngEncoder{},
	"webp": webpEncoder{},
	"tga":  tgaEncoder{},
}

// Lookup returns the encoder for format (case-insensitive).
func Lookup(format string) (Encoder, error) {
	enc, ok := encoders[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("preview: unknown format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	return enc, nil
}

// Formats lists the supported format names.
func Formats() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFile encodes img into memory first and only then creates path.
func WriteFile(path string, img *image.NRGBA, enc Encoder) error {
	var buf bytes.Buffer
	if err := enc.Encode(&buf, img); err != nil {
		return fmt.Errorf("preview: %s encode: %w", enc.Format(), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("preview: write %s: %w", path, err)
	}
	return nil
}

type pngEncoder struct{}

func (pngEncoder) Format() string    { return "png" }
func (pngEncoder) Extension() string { return "png" }

func (pngEncoder) Encode(w io.Writer, img *image.NRGBA) error {
	b, err := pngenc.EncodeImage(img)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// webpEncoder writes lossless WebP.
type webpEncoder struct{}

func (webpEncoder) Format() string    { return "webp" }
func (webpEncoder) Extension() string { return "webp" }

func (webpEncoder) Encode(w io.Writer, img *image.NRGBA) error {
	return nativewebp.Encode(w, img, nil)
}

type tgaEncoder struct{}

func (tgaEncoder) Format() string    { return "tga" }
func (tgaEncoder) Extension() string { return "tga" }

func (tgaEncoder) Encode(w io.Writer, img *image.NRGBA) error {
	return tga.Encode(w, img)
}
