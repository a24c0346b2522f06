package main

import (
	"fmt"
	"path/filepath"

	"appicon/internal/config"
	"appicon/internal/iconset"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var maxDistance int

var verifyCmd = &cobra.Command{
	Use:   "verify [ICONSET_DIR]",
	Short: "check the sizes of an iconset and compare each image with the base render",
	Long:  `check the sizes of an iconset and compare each image with the base render by perceptual hash.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sz, err := parseSizes(sizes)
		if err != nil {
			return err
		}
		cfg, _, closer, err := setup(config.Flags{OutputDir: outputDir, Sizes: sz})
		if err != nil {
			return err
		}
		defer closer.Close()

		dir := filepath.Join(cfg.OutputDir, cfg.Iconset)
		if len(args) == 1 {
			dir = args[0]
		}
		menu := cfg.Sizes
		if len(menu) == 0 {
			menu = iconset.DefaultSizes
		}
		if maxDistance == 0 {
			maxDistance = cfg.MaxDistance
		}
		checks, err := iconset.Verify(cmd.Context(), dir, cfg.BaseSize, iconset.Variants(menu), maxDistance)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		failed := 0
		for _, c := range checks {
			cmd.Printf("%-22s ", c.Variant.Filename())
			if !c.OK() {
				red.Println("✗", c.Err)
				failed++
				continue
			}
			green.Printf("✓ %dx%d", c.Width, c.Height)
			cmd.Printf("  distance %d\n", c.Distance)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d variants failed verification", failed, len(checks))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVarP(&outputDir, "out", "o", "", "output directory holding the iconset (default: Resources)")
	verifyCmd.Flags().StringVarP(&sizes, "sizes", "s", "", "comma-separated point sizes (default: 16,32,64,128,256,512)")
	verifyCmd.Flags().IntVarP(&maxDistance, "max-distance", "", 0, "fail variants whose perceptual-hash distance exceeds this (0: report only)")
}
