package iconset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"appicon/internal/pngenc"
	"appicon/internal/preview"
	"appicon/internal/raster"
	"github.com/k1LoW/errors"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultBaseSize    = 1024
	DefaultIconsetName = "AppIcon.iconset"
	DefaultName        = "AppIcon"
)

// Options configures a Build. Zero fields take defaults.
type Options struct {
	OutputDir   string   // directory for the iconset, container and previews
	IconsetName string   // defaults to AppIcon.iconset
	Container   string   // defaults to AppIcon.<packager extension>
	BaseSize    int      // edge of the base render, defaults to 1024
	Sizes       []int    // point-size menu, defaults to DefaultSizes
	Resizer     Resizer  // required
	Packager    Packager // required
	Workers     int      // defaults to runtime.NumCPU()
	Previews    []string // preview formats of the base render
	Verify      bool
	MaxDistance int // see Verify
	Logger      *slog.Logger
}

// Result holds the artifacts of a Build.
type Result struct {
	Base      string
	Iconset   string
	Container string
	Manifest  string
	Variants  []VariantResult
	Previews  []string
	Checks    []Check
}

// VariantResult holds one resized image.
type VariantResult struct {
	Variant
	Path string
}

func (o *Options) setDefaults() error {
	if o.Resizer == nil {
		return fmt.Errorf("iconset: no resizer")
	}
	if o.Packager == nil {
		return fmt.Errorf("iconset: no packager")
	}
	if o.IconsetName == "" {
		o.IconsetName = DefaultIconsetName
	}
	if o.Container == "" {
		o.Container = DefaultName + "." + o.Packager.Extension()
	}
	if o.BaseSize <= 0 {
		o.BaseSize = DefaultBaseSize
	}
	if len(o.Sizes) == 0 {
		o.Sizes = DefaultSizes
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return nil
}

func (o *Options) paths() (iconsetDir, container, manifest string) {
	iconsetDir = filepath.Join(o.OutputDir, o.IconsetName)
	container = filepath.Join(o.OutputDir, o.Container)
	manifest = filepath.Join(o.OutputDir, strings.TrimSuffix(o.Container, filepath.Ext(o.Container))+".json")
	return iconsetDir, container, manifest
}

// Build renders the base icon, writes it into the iconset directory, resizes
// every variant, packages the iconset and writes a manifest. The first
// failing step aborts the build; files already written stay for inspection.
func Build(ctx context.Context, opts Options) (_ *Result, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	iconsetDir, container, manifest := opts.paths()
	if err := os.MkdirAll(iconsetDir, 0755); err != nil {
		return nil, err
	}

	// Base render
	start := time.Now()
	r := raster.Renderer{Style: raster.DefaultStyle(), Workers: opts.Workers}
	canvas, err := r.Render(opts.BaseSize)
	if err != nil {
		return nil, err
	}
	base := filepath.Join(iconsetDir, BaseFilename(opts.BaseSize))
	if err := pngenc.WriteFile(base, canvas.Pix, canvas.Width, canvas.Height); err != nil {
		return nil, err
	}
	if inv, ok := opts.Resizer.(interface{ Invalidate(string) }); ok {
		inv.Invalidate(base)
	}
	logger.Info("rendered base", slog.String("path", base), slog.Int("size", opts.BaseSize), slog.Duration("elapsed", time.Since(start)))

	// Variants
	variants := Variants(opts.Sizes)
	results, err := resizeAll(ctx, opts, base, iconsetDir, variants)
	if err != nil {
		return nil, err
	}

	// Container
	logger.Info("packaging", slog.String("packager", opts.Packager.Name()), slog.String("path", container))
	if err := opts.Packager.Package(ctx, iconsetDir, container); err != nil {
		return nil, fmt.Errorf("package %s: %w", container, err)
	}

	res := &Result{
		Base:      base,
		Iconset:   iconsetDir,
		Container: container,
		Manifest:  manifest,
		Variants:  results,
	}

	// Previews
	for _, format := range opts.Previews {
		enc, err := preview.Lookup(format)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(opts.OutputDir, DefaultName+"."+enc.Extension())
		if err := preview.WriteFile(path, canvas.NRGBA(), enc); err != nil {
			return nil, err
		}
		logger.Info("wrote preview", slog.String("format", enc.Format()), slog.String("path", path))
		res.Previews = append(res.Previews, path)
	}

	if err := WriteManifest(manifest, res.manifest(opts)); err != nil {
		return nil, err
	}

	if opts.Verify {
		checks, err := Verify(ctx, iconsetDir, opts.BaseSize, variants, opts.MaxDistance)
		if err != nil {
			return nil, err
		}
		res.Checks = checks
		var failed []error
		for _, c := range checks {
			if c.OK() {
				logger.Debug("verified", slog.String("variant", c.Variant.String()), slog.Int("distance", c.Distance))
				continue
			}
			logger.Warn("verify failed", slog.String("variant", c.Variant.String()), slog.String("error", c.Err.Error()))
			failed = append(failed, c.Err)
		}
		if len(failed) > 0 {
			return res, fmt.Errorf("verify: %w", errors.Join(failed...))
		}
	}

	logger.Info("build done", slog.String("container", container), slog.Duration("elapsed", time.Since(start)))
	return res, nil
}

// resizeAll scales the base into every variant using a bounded worker pool.
func resizeAll(ctx context.Context, opts Options, base, dir string, variants []Variant) ([]VariantResult, error) {
	results := make([]VariantResult, len(variants))
	var processed atomic.Int64

	done := make(chan struct{})
	defer close(done)
	go reportProgress(done, opts.Logger, len(variants), &processed)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, v := range variants {
		g.Go(func() error {
			dst := filepath.Join(dir, v.Filename())
			if err := opts.Resizer.Resize(gctx, base, dst, v.Pixels()); err != nil {
				return fmt.Errorf("resize %s: %w", v.Filename(), err)
			}
			results[i] = VariantResult{Variant: v, Path: dst}
			processed.Add(1)
			opts.Logger.Debug("resized", slog.String("variant", v.String()), slog.String("path", dst))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// reportProgress logs resize progress every two seconds until done closes.
func reportProgress(done <-chan struct{}, logger *slog.Logger, total int, processed *atomic.Int64) {
	start := time.Now()
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			p := processed.Load()
			if p > 0 {
				rate := float64(p) / time.Since(start).Seconds()
				logger.Info("resizing", slog.Int64("done", p), slog.Int("total", total), slog.Float64("per_sec", rate))
			}
		}
	}
}

func (r *Result) manifest(opts Options) Manifest {
	vs := make([]Variant, len(r.Variants))
	for i, v := range r.Variants {
		vs[i] = v.Variant
	}
	rel := func(p string) string {
		if s, err := filepath.Rel(opts.OutputDir, p); err == nil {
			return filepath.ToSlash(s)
		}
		return p
	}
	m := Manifest{
		Base:      rel(r.Base),
		Iconset:   rel(r.Iconset),
		Container: rel(r.Container),
		Packager:  opts.Packager.Name(),
		Resizer:   opts.Resizer.Name(),
		Images:    newManifestEntries(vs),
	}
	for _, p := range r.Previews {
		m.Previews = append(m.Previews, rel(p))
	}
	return m
}

// Plan lists the steps Build would take without running any of them.
// External tools are shown as shell commands.
func Plan(opts Options) ([]string, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}
	iconsetDir, container, manifest := opts.paths()
	base := filepath.Join(iconsetDir, BaseFilename(opts.BaseSize))

	lines := []string{
		shellJoin([]string{"mkdir", "-p", iconsetDir}),
		fmt.Sprintf("# render %dx%d -> %s", opts.BaseSize, opts.BaseSize, base),
	}
	for _, v := range Variants(opts.Sizes) {
		dst := filepath.Join(iconsetDir, v.Filename())
		if c, ok := opts.Resizer.(interface {
			Command(src, dst string, px int) []string
		}); ok {
			lines = append(lines, shellJoin(c.Command(base, dst, v.Pixels())))
			continue
		}
		lines = append(lines, fmt.Sprintf("# resize (%s) %s -> %s at %dpx", opts.Resizer.Name(), base, dst, v.Pixels()))
	}
	if c, ok := opts.Packager.(interface {
		Command(iconsetDir, out string) []string
	}); ok {
		lines = append(lines, shellJoin(c.Command(iconsetDir, container)))
	} else {
		lines = append(lines, fmt.Sprintf("# package (%s) %s -> %s", opts.Packager.Name(), iconsetDir, container))
	}
	for _, format := range opts.Previews {
		enc, err := preview.Lookup(format)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("# preview (%s) -> %s", enc.Format(), filepath.Join(opts.OutputDir, DefaultName+"."+enc.Extension())))
	}
	lines = append(lines, fmt.Sprintf("# manifest -> %s", manifest))
	return lines, nil
}
