package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"appicon/internal/config"
	"appicon/internal/preview"
	"appicon/internal/raster"
	"github.com/k1LoW/errors"
	"github.com/spf13/cobra"
)

var (
	renderSize int
	renderOut  string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "render the icon once and write it as png, webp or tga",
	Long:  `render the icon once at the given size. The format follows the extension of --out.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			err = errors.WithStack(err)
		}()
		_, l, closer, err := setup(config.Flags{Workers: workers})
		if err != nil {
			return err
		}
		defer closer.Close()

		enc, err := preview.Lookup(strings.TrimPrefix(filepath.Ext(renderOut), "."))
		if err != nil {
			return fmt.Errorf("--out %s: %w (supported: %s)", renderOut, err, strings.Join(preview.Formats(), ", "))
		}
		start := time.Now()
		r := raster.Renderer{Style: raster.DefaultStyle(), Workers: workers}
		canvas, err := r.Render(renderSize)
		if err != nil {
			return err
		}
		if err := preview.WriteFile(renderOut, canvas.NRGBA(), enc); err != nil {
			return err
		}
		l.Info("rendered", slog.String("path", renderOut), slog.Int("size", renderSize), slog.Duration("elapsed", time.Since(start)))
		cmd.Printf("Wrote %s\n", renderOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().IntVarP(&renderSize, "size", "", 1024, "edge length in pixels")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "AppIcon.png", "output file (.png, .webp or .tga)")
	renderCmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of worker goroutines (default: serial)")
}
