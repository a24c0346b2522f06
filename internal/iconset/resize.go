package iconset

import (
	"context"
	"fmt"
	"strconv"
)

// Resizer writes a px×px copy of the PNG at src to dst.
type Resizer interface {
	Name() string
	Resize(ctx context.Context, src, dst string, px int) error
}

// NewResizer returns the resizer registered under name.
func NewResizer(name string) (Resizer, error) {
	switch name {
	case "sips":
		return &Sips{}, nil
	case "catmullrom":
		return NewCatmullRom(), nil
	case "lanczos":
		return NewLanczos(), nil
	}
	return nil, fmt.Errorf("unknown resizer %q (want sips, catmullrom or lanczos)", name)
}

// Sips resizes with the macOS scriptable image processing tool.
type Sips struct {
	// Path overrides the executable; defaults to "sips" on PATH.
	Path string
}

func (s *Sips) Name() string { return "sips" }

func (s *Sips) Resize(ctx context.Context, src, dst string, px int) error {
	argv := s.Command(src, dst, px)
	return runTool(ctx, argv[0], argv[1:]...)
}

// Command returns the argv Resize executes.
func (s *Sips) Command(src, dst string, px int) []string {
	bin := s.Path
	if bin == "" {
		bin = "sips"
	}
	n := strconv.Itoa(px)
	return []string{bin, "-z", n, n, src, "--out", dst}
}
