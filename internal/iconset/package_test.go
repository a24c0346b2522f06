package iconset

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"appicon/internal/pngenc"
	"github.com/google/go-cmp/cmp"
)

// writeIconset fills dir with solid PNGs for vs.
func writeIconset(t *testing.T, dir string, vs []Variant) {
	t.Helper()
	for _, v := range vs {
		writeSolid(t, filepath.Join(dir, v.Filename()), v.Pixels())
	}
}

func writeSolid(t *testing.T, path string, px int) {
	t.Helper()
	pix := make([]byte, px*px*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = 30, 42, 47, 255
	}
	if err := pngenc.WriteFile(path, pix, px, px); err != nil {
		t.Fatal(err)
	}
}

type icnsEntry struct {
	Type string
	Size int
}

func readICNS(t *testing.T, data []byte) []icnsEntry {
	t.Helper()
	if string(data[:4]) != "icns" {
		t.Fatalf("bad magic %q", data[:4])
	}
	if n := binary.BigEndian.Uint32(data[4:8]); int(n) != len(data) {
		t.Fatalf("header length %d, file length %d", n, len(data))
	}
	var entries []icnsEntry
	for off := 8; off < len(data); {
		typ := string(data[off : off+4])
		n := int(binary.BigEndian.Uint32(data[off+4 : off+8]))
		img, err := png.Decode(bytes.NewReader(data[off+8 : off+n]))
		if err != nil {
			t.Fatalf("%s: %v", typ, err)
		}
		entries = append(entries, icnsEntry{Type: typ, Size: img.Bounds().Dx()})
		off += n
	}
	return entries
}

func TestICNS(t *testing.T) {
	dir := t.TempDir()
	writeIconset(t, dir, Variants([]int{16, 32, 64}))
	writeSolid(t, filepath.Join(dir, BaseFilename(96)), 96)
	out := filepath.Join(t.TempDir(), "AppIcon.icns")

	if err := (ICNS{}).Package(context.Background(), dir, out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	got := readICNS(t, data)
	want := []icnsEntry{
		{"icp4", 16},
		{"icp5", 32},
		{"ic11", 32},
		{"icp6", 64},
		{"ic12", 64},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
}

func TestICO(t *testing.T) {
	dir := t.TempDir()
	writeIconset(t, dir, Variants([]int{16, 128, 256}))
	out := filepath.Join(t.TempDir(), "AppIcon.ico")

	if err := (ICO{}).Package(context.Background(), dir, out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var header [3]uint16
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		t.Fatal(err)
	}
	if header != [3]uint16{0, 1, 4} {
		t.Fatalf("got header %v", header)
	}
	// 16, 32, 128, 256; 512 is over the limit and duplicates are dropped.
	wantSizes := []int{16, 32, 128, 256}
	for i, want := range wantSizes {
		e := data[6+i*16 : 6+(i+1)*16]
		w := int(e[0])
		if w == 0 {
			w = 256
		}
		if w != want {
			t.Errorf("entry %d: width %d, want %d", i, w, want)
		}
		size := binary.LittleEndian.Uint32(e[8:12])
		off := binary.LittleEndian.Uint32(e[12:16])
		cfg, err := png.DecodeConfig(bytes.NewReader(data[off : off+size]))
		if err != nil {
			t.Fatalf("entry %d: %v", i, err)
		}
		if cfg.Width != want {
			t.Errorf("entry %d: payload is %dpx, want %d", i, cfg.Width, want)
		}
	}
}

func TestPackageEmptyDir(t *testing.T) {
	for _, p := range []Packager{ICNS{}, ICO{}} {
		t.Run(p.Name(), func(t *testing.T) {
			err := p.Package(context.Background(), t.TempDir(), filepath.Join(t.TempDir(), "out"))
			if err == nil {
				t.Error("want error")
			}
		})
	}
}

func TestNewPackager(t *testing.T) {
	for _, name := range []string{"iconutil", "icns", "ico"} {
		p, err := NewPackager(name)
		if err != nil {
			t.Fatal(err)
		}
		if p.Name() != name {
			t.Errorf("got %q, want %q", p.Name(), name)
		}
	}
	if _, err := NewPackager("zip"); err == nil {
		t.Error("want error")
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writeSolid(t, path, 3)
	img, err := LoadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 3, 3) {
		t.Errorf("got bounds %v", got)
	}
	if _, err := LoadImage(filepath.Join(dir, "a.gif")); err == nil {
		t.Error("want error for unknown extension")
	}
}
