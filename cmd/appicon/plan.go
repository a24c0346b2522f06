package main

import (
	"appicon/internal/iconset"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "print the steps build would run without running them",
	Long:  `print the steps build would run without running them. External tools are shown as shell commands.`,
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
		lines, err := iconset.Plan(opts)
		if err != nil {
			return err
		}
		for _, line := range lines {
			cmd.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	addBuildFlags(planCmd)
}
