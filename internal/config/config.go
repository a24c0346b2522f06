package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/goccy/go-yaml"
)

// DefaultFile is looked up in the working directory when no config path is given.
const DefaultFile = "appicon"

// Config holds the build settings. The icon's look is fixed and not configurable.
type Config struct {
	// Paths
	BaseDir   string `yaml:"-"`
	OutputDir string `yaml:"output_dir,omitempty"`
	Iconset   string `yaml:"iconset,omitempty"`
	Container string `yaml:"container,omitempty"`
	LogFile   string `yaml:"log_file,omitempty"`

	// Build settings
	BaseSize    int      `yaml:"base_size,omitempty"`
	Sizes       []int    `yaml:"sizes,omitempty"`
	Resizer     string   `yaml:"resizer,omitempty"`
	Packager    string   `yaml:"packager,omitempty"`
	Workers     int      `yaml:"workers,omitempty"`
	Previews    []string `yaml:"previews,omitempty"`
	Verify      bool     `yaml:"verify,omitempty"`
	MaxDistance int      `yaml:"max_distance,omitempty"`
}

// Load reads a YAML config file. With an empty path it tries appicon.yml and
// appicon.yaml in the working directory and returns an empty Config when
// neither exists. Relative paths in the file are resolved against its directory.
func Load(path string) (*Config, error) {
	candidates := []string{path}
	if path == "" {
		candidates = []string{DefaultFile + ".yml", DefaultFile + ".yaml"}
	}
	for _, p := range candidates {
		b, err := os.ReadFile(p)
		if err != nil {
			if path == "" && os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("config: read %s: %w", p, err)
		}
		cfg := &Config{}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", p, err)
		}
		cfg.BaseDir = filepath.Dir(p)
		return cfg, nil
	}
	return &Config{}, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir string
	Resizer   string
	Packager  string
	Workers   int
	Sizes     []int
	Previews  []string
	Verify    bool
	LogFile   string
}

// Resolve applies flags over the file values and fills the rest with
// defaults. CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Resizer != "" {
		c.Resizer = flags.Resizer
	}
	if flags.Packager != "" {
		c.Packager = flags.Packager
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if len(flags.Sizes) > 0 {
		c.Sizes = flags.Sizes
	}
	if len(flags.Previews) > 0 {
		c.Previews = flags.Previews
	}
	if flags.Verify {
		c.Verify = true
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}

	// Paths from the file are relative to the file
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "Resources")
	} else if flags.OutputDir == "" && !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}
	if c.LogFile != "" && flags.LogFile == "" && !filepath.IsAbs(c.LogFile) {
		c.LogFile = filepath.Join(c.BaseDir, c.LogFile)
	}

	// Defaults for build settings
	if c.Iconset == "" {
		c.Iconset = "AppIcon.iconset"
	}
	if c.BaseSize <= 0 {
		c.BaseSize = 1024
	}
	if c.Resizer == "" {
		c.Resizer = defaultResizer()
	}
	if c.Packager == "" {
		c.Packager = defaultPackager()
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// defaultResizer prefers the system tools on macOS and in-process code elsewhere.
func defaultResizer() string {
	if runtime.GOOS == "darwin" {
		return "sips"
	}
	return "catmullrom"
}

func defaultPackager() string {
	if runtime.GOOS == "darwin" {
		return "iconutil"
	}
	return "icns"
}
