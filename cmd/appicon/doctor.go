package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"appicon/internal/config"
	"appicon/internal/iconset"
	"appicon/internal/preview"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "check the tools and settings build depends on",
	Long:  `check the tools and settings build depends on.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)
		bold := color.New(color.Bold)

		allOK := true

		// 1. Config
		cmd.Print("🔍 Checking config ... ")
		cfg, err := config.Load(configPath)
		if err != nil {
			red.Println("✗ INVALID")
			cmd.Printf("   %v\n", err)
			return nil
		}
		cfg.Resolve(config.Flags{})
		green.Println("✓ OK")
		cmd.Printf("   resizer: %s, packager: %s, workers: %d\n", cfg.Resizer, cfg.Packager, cfg.Workers)

		// 2. Resizer and packager
		for _, tool := range []struct {
			kind, name string
			check      func(string) error
		}{
			{"resizer", cfg.Resizer, func(n string) error { _, err := iconset.NewResizer(n); return err }},
			{"packager", cfg.Packager, func(n string) error { _, err := iconset.NewPackager(n); return err }},
		} {
			cmd.Printf("🔧 Checking %s %s ... ", tool.kind, tool.name)
			if err := tool.check(tool.name); err != nil {
				red.Println("✗ UNKNOWN")
				cmd.Printf("   %v\n", err)
				allOK = false
				continue
			}
			if tool.name != "sips" && tool.name != "iconutil" {
				green.Println("✓ OK (in-process)")
				continue
			}
			path, err := exec.LookPath(tool.name)
			if err != nil {
				red.Println("✗ NOT FOUND")
				cmd.Printf("   %s is only available on macOS; use --%s with an in-process alternative\n", tool.name, tool.kind)
				allOK = false
				continue
			}
			green.Println("✓ OK")
			cmd.Printf("   %s\n", path)
		}

		// 3. Output directory
		cmd.Print("📁 Checking output directory ... ")
		if err := checkWritable(cfg.OutputDir); err != nil {
			red.Println("✗ NOT WRITABLE")
			cmd.Printf("   %v\n", err)
			allOK = false
		} else {
			green.Println("✓ OK")
			cmd.Printf("   %s\n", cfg.OutputDir)
		}

		// 4. Previews
		for _, f := range cfg.Previews {
			cmd.Printf("🖼  Checking preview format %s ... ", f)
			if _, err := preview.Lookup(f); err != nil {
				yellow.Println("⚠ UNSUPPORTED")
				allOK = false
				continue
			}
			green.Println("✓ OK")
		}

		cmd.Println()
		if allOK {
			bold.Println("All checks passed.")
		} else {
			bold.Println("Some checks failed; see above.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// checkWritable creates dir if needed and writes a probe file into it.
func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".appicon-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(filepath.Clean(name))
}
