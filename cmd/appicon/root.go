package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"appicon/internal/config"
	"appicon/internal/logger"
	"github.com/k1LoW/errors"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:          "appicon",
	Short:        "appicon renders the application icon and packages it as an icon container",
	Long:         `appicon renders the application icon procedurally, resizes it into an iconset and packages it as an .icns or .ico container.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if verbose {
			b, err := json.MarshalIndent(errors.StackTraces(err), "", "  ")
			if err == nil {
				_, _ = fmt.Fprintf(os.Stderr, "%s\n", b)
			}
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: ./appicon.yml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug records and print stack traces on failure")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "", "", "also write JSON logs to this file")
}

// setup loads the config, applies flags and builds the logger.
func setup(flags config.Flags) (_ *config.Config, _ *slog.Logger, _ io.Closer, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	flags.LogFile = logFile
	cfg.Resolve(flags)
	l, closer, err := logger.New(logger.Options{Verbose: verbose, LogFile: cfg.LogFile})
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, l, closer, nil
}
