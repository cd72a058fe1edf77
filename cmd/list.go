package cmd

import (
	"io"

	"github.com/dustin/go-humanize"
	"github.com/keisetsu/wed/internal/history"
	"github.com/keisetsu/wed/internal/ui"
	"github.com/spf13/cobra"
)

// shortIDLen is how much of a run id list and status print. show accepts
// any unique prefix.
const shortIDLen = 8

var limitFlag int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), configFlag, limitFlag)
	},
}

func init() {
	listCmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Number of runs to list")
	rootCmd.AddCommand(listCmd)
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func RunList(w io.Writer, configPath string, limit int) error {
	cfg, err := loadConfig(configPath, nil)
	if err != nil {
		return err
	}
	sqlDB, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	runs, err := history.Runs(sqlDB, limit)
	if err != nil {
		return err
	}

	ages := make([]string, len(runs))
	ageWidth := 0
	for i, r := range runs {
		ages[i] = humanize.Time(r.StartedAt)
		if len(ages[i]) > ageWidth {
			ageWidth = len(ages[i])
		}
	}

	for i, r := range runs {
		ui.ListRow(w, shortID(r.ID), ages[i], r.Status, r.Passed, r.Failed, r.Other, ageWidth)
	}
	return nil
}
