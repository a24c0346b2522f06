package main

import (
	"io"
	"log/slog"
	"strings"

	"appicon/internal/config"
	"appicon/internal/iconset"
	"github.com/spf13/cobra"
)

var (
	outputDir string
	resizer   string
	packager  string
	workers   int
	sizes     string
	previews  []string
	verify    bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "render the icon, resize it into an iconset and package the container",
	Long:  `render the icon, resize it into an iconset and package the container.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, closer, err := setupBuild()
		if err != nil {
			return err
		}
		defer closer.Close()
		opts, err := buildOptions(cfg, l)
		if err != nil {
			return err
		}
		res, err := iconset.Build(cmd.Context(), opts)
		if err != nil {
			return err
		}
		cmd.Printf("Wrote %s\n", res.Container)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	addBuildFlags(buildCmd)
	buildCmd.Flags().BoolVarP(&verify, "verify", "", false, "verify the variants after packaging")
}

// addBuildFlags registers the flags shared by build and plan.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "output directory (default: Resources)")
	cmd.Flags().StringVarP(&resizer, "resizer", "r", "", "resizer: sips, catmullrom or lanczos")
	cmd.Flags().StringVarP(&packager, "packager", "p", "", "packager: iconutil, icns or ico")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of worker goroutines (default: NumCPU)")
	cmd.Flags().StringVarP(&sizes, "sizes", "s", "", "comma-separated point sizes (default: 16,32,64,128,256,512)")
	cmd.Flags().StringSliceVarP(&previews, "preview", "", nil, "also write the base render as png, webp or tga")
}

func setupBuild() (*config.Config, *slog.Logger, io.Closer, error) {
	sz, err := parseSizes(sizes)
	if err != nil {
		return nil, nil, nil, err
	}
	return setup(config.Flags{
		OutputDir: outputDir,
		Resizer:   resizer,
		Packager:  packager,
		Workers:   workers,
		Sizes:     sz,
		Previews:  previews,
		Verify:    verify,
	})
}

// buildOptions turns a resolved config into iconset build options.
func buildOptions(cfg *config.Config, l *slog.Logger) (iconset.Options, error) {
	r, err := iconset.NewResizer(strings.ToLower(cfg.Resizer))
	if err != nil {
		return iconset.Options{}, err
	}
	p, err := iconset.NewPackager(strings.ToLower(cfg.Packager))
	if err != nil {
		return iconset.Options{}, err
	}
	return iconset.Options{
		OutputDir:   cfg.OutputDir,
		IconsetName: cfg.Iconset,
		Container:   cfg.Container,
		BaseSize:    cfg.BaseSize,
		Sizes:       cfg.Sizes,
		Resizer:     r,
		Packager:    p,
		Workers:     cfg.Workers,
		Previews:    cfg.Previews,
		Verify:      cfg.Verify,
		MaxDistance: cfg.MaxDistance,
		Logger:      l,
	}, nil
}
