package iconset

import (
	"fmt"
	"regexp"
	"strconv"
)

// DefaultSizes is the point-size menu of a macOS iconset.
var DefaultSizes = []int{16, 32, 64, 128, 256, 512}

// Variant is one entry of an iconset: a point size at a pixel scale.
type Variant struct {
	Size  int // points
	Scale int // 1 or 2
}

// Pixels returns the edge length of the variant's bitmap.
func (v Variant) Pixels() int {
	return v.Size * v.Scale
}

// Filename follows the iconutil naming convention, e.g. icon_32x32@2x.png.
func (v Variant) Filename() string {
	if v.Scale == 1 {
		return fmt.Sprintf("icon_%dx%d.png", v.Size, v.Size)
	}
	return fmt.Sprintf("icon_%dx%d@%dx.png", v.Size, v.Size, v.Scale)
}

func (v Variant) String() string {
	return fmt.Sprintf("%dx%d@%dx", v.Size, v.Size, v.Scale)
}

// Variants expands a size menu into 1x and 2x entries, in menu order.
func Variants(sizes []int) []Variant {
	vs := make([]Variant, 0, len(sizes)*2)
	for _, s := range sizes {
		vs = append(vs, Variant{Size: s, Scale: 1}, Variant{Size: s, Scale: 2})
	}
	return vs
}

// BaseFilename names the full-resolution render inside the iconset.
func BaseFilename(size int) string {
	return Variant{Size: size, Scale: 1}.Filename()
}

var filenameRe = regexp.MustCompile(`^icon_(\d+)x(\d+)(?:@(\d)x)?\.png$`)

// ParseFilename is the inverse of Variant.Filename.
func ParseFilename(name string) (Variant, bool) {
	m := filenameRe.FindStringSubmatch(name)
	if m == nil || m[1] != m[2] {
		return Variant{}, false
	}
	size, err := strconv.Atoi(m[1])
	if err != nil || size <= 0 {
		return Variant{}, false
	}
	scale := 1
	if m[3] != "" {
		scale, _ = strconv.Atoi(m[3])
	}
	if scale < 1 {
		return Variant{}, false
	}
	return Variant{Size: size, Scale: scale}, true
}
