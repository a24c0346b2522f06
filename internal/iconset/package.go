package iconset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Packager bundles the PNGs of an iconset directory into one container file.
type Packager interface {
	Name() string
	// Extension is the container's file extension, without the dot.
	Extension() string
	Package(ctx context.Context, iconsetDir, out string) error
}

// NewPackager returns the packager registered under name.
func NewPackager(name string) (Packager, error) {
	switch name {
	case "iconutil":
		return &Iconutil{}, nil
	case "icns":
		return ICNS{}, nil
	case "ico":
		return ICO{}, nil
	}
	return nil, fmt.Errorf("unknown packager %q (want iconutil, icns or ico)", name)
}

// Iconutil packages with the macOS iconutil tool.
type Iconutil struct {
	// Path overrides the executable; defaults to "iconutil" on PATH.
	Path string
}

func (p *Iconutil) Name() string      { return "iconutil" }
func (p *Iconutil) Extension() string { return "icns" }

func (p *Iconutil) Package(ctx context.Context, iconsetDir, out string) error {
	argv := p.Command(iconsetDir, out)
	return runTool(ctx, argv[0], argv[1:]...)
}

// Command returns the argv Package executes.
func (p *Iconutil) Command(iconsetDir, out string) []string {
	bin := p.Path
	if bin == "" {
		bin = "iconutil"
	}
	return []string{bin, "-c", "icns", iconsetDir, "-o", out}
}

// member is one PNG found in an iconset directory.
type member struct {
	Variant
	path string
}

// scanIconset lists the conventionally named PNGs in dir, smallest first and
// 1x before 2x at equal pixel size.
func scanIconset(dir string) ([]member, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("iconset: read %s: %w", dir, err)
	}
	var ms []member
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		v, ok := ParseFilename(e.Name())
		if !ok {
			continue
		}
		ms = append(ms, member{Variant: v, path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].Pixels() != ms[j].Pixels() {
			return ms[i].Pixels() < ms[j].Pixels()
		}
		return ms[i].Scale < ms[j].Scale
	})
	if len(ms) == 0 {
		return nil, fmt.Errorf("iconset: no icon_*.png files in %s", dir)
	}
	return ms, nil
}

// writeAtomic writes data to a temporary sibling of path and renames it.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("iconset: create %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("iconset: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("iconset: write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("iconset: chmod %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}
