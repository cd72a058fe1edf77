package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var configFlag string

var rootCmd = &cobra.Command{
	Use:          "wed",
	Short:        "wed: browser acceptance tests for the wed editor",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default: $WED_CONFIG_FILE, ./.wed.hcl, ~/.wed.hcl)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
