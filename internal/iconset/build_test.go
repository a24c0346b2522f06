package iconset

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tenntenn/golden"
)

func TestBuild(t *testing.T) {
	out := t.TempDir()
	res, err := Build(context.Background(), Options{
		OutputDir:   out,
		BaseSize:    96,
		Sizes:       []int{16, 32},
		Resizer:     NewCatmullRom(),
		Packager:    ICNS{},
		Workers:     2,
		Previews:    []string{"png", "webp"},
		Verify:      true,
		MaxDistance: 64,
	})
	if err != nil {
		t.Fatal(err)
	}

	if want := filepath.Join(out, "AppIcon.iconset", "icon_96x96.png"); res.Base != want {
		t.Errorf("got base %q, want %q", res.Base, want)
	}
	if want := filepath.Join(out, "AppIcon.icns"); res.Container != want {
		t.Errorf("got container %q, want %q", res.Container, want)
	}
	if len(res.Variants) != 4 {
		t.Fatalf("got %d variants, want 4", len(res.Variants))
	}
	for _, v := range res.Variants {
		img, err := LoadImage(v.Path)
		if err != nil {
			t.Fatal(err)
		}
		if got := img.Bounds().Dx(); got != v.Pixels() {
			t.Errorf("%s: got %dpx, want %d", v.Filename(), got, v.Pixels())
		}
	}
	for _, c := range res.Checks {
		if !c.OK() {
			t.Errorf("%s: %v", c.Variant, c.Err)
		}
	}

	data, err := os.ReadFile(res.Container)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(readICNS(t, data)); got != 4 {
		t.Errorf("got %d container entries, want 4", got)
	}

	raw, err := os.ReadFile(filepath.Join(out, "AppIcon.json"))
	if err != nil {
		t.Fatal(err)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	want := Manifest{
		Base:      "AppIcon.iconset/icon_96x96.png",
		Iconset:   "AppIcon.iconset",
		Container: "AppIcon.icns",
		Packager:  "icns",
		Resizer:   "catmullrom",
		Images: []ManifestEntry{
			{Size: "16x16", Scale: "1x", Pixels: 16, Filename: "icon_16x16.png"},
			{Size: "16x16", Scale: "2x", Pixels: 32, Filename: "icon_16x16@2x.png"},
			{Size: "32x32", Scale: "1x", Pixels: 32, Filename: "icon_32x32.png"},
			{Size: "32x32", Scale: "2x", Pixels: 64, Filename: "icon_32x32@2x.png"},
		},
		Previews: []string{"AppIcon.png", "AppIcon.webp"},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Error(diff)
	}
}

type failingResizer struct{ fail string }

func (failingResizer) Name() string { return "failing" }

func (f failingResizer) Resize(ctx context.Context, src, dst string, px int) error {
	if filepath.Base(dst) == f.fail {
		return errBoom
	}
	return ctx.Err()
}

var errBoom = errors.New("boom")

func TestBuildResizeFailure(t *testing.T) {
	out := t.TempDir()
	_, err := Build(context.Background(), Options{
		OutputDir: out,
		BaseSize:  8,
		Sizes:     []int{2, 4},
		Resizer:   failingResizer{fail: "icon_4x4.png"},
		Packager:  ICNS{},
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("got %v, want errBoom", err)
	}
	if !strings.Contains(err.Error(), "icon_4x4.png") {
		t.Errorf("error %q does not name the variant", err)
	}
	if _, err := os.Stat(filepath.Join(out, "AppIcon.icns")); !os.IsNotExist(err) {
		t.Error("container written after a failed resize")
	}
}

func TestBuildOptions(t *testing.T) {
	if _, err := Build(context.Background(), Options{Packager: ICNS{}}); err == nil {
		t.Error("want error without resizer")
	}
	if _, err := Build(context.Background(), Options{Resizer: NewCatmullRom()}); err == nil {
		t.Error("want error without packager")
	}
	_, err := Build(context.Background(), Options{
		OutputDir: t.TempDir(),
		BaseSize:  8,
		Sizes:     []int{2},
		Resizer:   NewCatmullRom(),
		Packager:  ICO{},
		Previews:  []string{"gif"},
	})
	if err == nil {
		t.Error("want error for unknown preview format")
	}
}

func TestVerifyFailures(t *testing.T) {
	dir := t.TempDir()
	writeSolid(t, filepath.Join(dir, BaseFilename(64)), 64)
	writeSolid(t, filepath.Join(dir, "icon_16x16.png"), 16)
	writeSolid(t, filepath.Join(dir, "icon_16x16@2x.png"), 30)

	checks, err := Verify(context.Background(), dir, 64, Variants([]int{16, 32}), 0)
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]bool{}
	for _, c := range checks {
		got[c.Variant.Filename()] = c.OK()
	}
	want := map[string]bool{
		"icon_16x16.png":    true,
		"icon_16x16@2x.png": false, // 30px instead of 32
		"icon_32x32.png":    false, // missing
		"icon_32x32@2x.png": false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error(diff)
	}
	if checks[0].Distance < 0 {
		t.Errorf("distance not computed for %s", checks[0].Variant)
	}
	if checks[1].Width != 30 {
		t.Errorf("got width %d, want 30", checks[1].Width)
	}

	if _, err := Verify(context.Background(), t.TempDir(), 64, nil, 0); err == nil {
		t.Error("want error without a base image")
	}
}

func TestPlan(t *testing.T) {
	lines, err := Plan(Options{
		OutputDir: "Resources",
		Resizer:   &Sips{},
		Packager:  &Iconutil{},
		Previews:  []string{"webp"},
	})
	if err != nil {
		t.Fatal(err)
	}
	got := []byte(strings.Join(lines, "\n") + "\n")
	if os.Getenv("UPDATE_GOLDEN") != "" {
		golden.Update(t, "testdata", "plan", got)
		return
	}
	if diff := golden.Diff(t, "testdata", "plan", got); diff != "" {
		t.Error(diff)
	}
}

func TestPlanInProcess(t *testing.T) {
	lines, err := Plan(Options{
		OutputDir: "out",
		BaseSize:  64,
		Sizes:     []int{16},
		Resizer:   NewLanczos(),
		Packager:  ICO{},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"mkdir -p out/AppIcon.iconset",
		"# render 64x64 -> out/AppIcon.iconset/icon_64x64.png",
		"# resize (lanczos) out/AppIcon.iconset/icon_64x64.png -> out/AppIcon.iconset/icon_16x16.png at 16px",
		"# resize (lanczos) out/AppIcon.iconset/icon_64x64.png -> out/AppIcon.iconset/icon_16x16@2x.png at 32px",
		"# package (ico) out/AppIcon.iconset -> out/AppIcon.ico",
		"# manifest -> out/AppIcon.json",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Error(diff)
	}
}
