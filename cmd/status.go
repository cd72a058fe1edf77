package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/keisetsu/wed/internal/history"
	"github.com/keisetsu/wed/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the latest recorded run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStatus(cmd.OutOrStdout(), configFlag)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatus(w io.Writer, configPath string) error {
	cfg, err := loadConfig(configPath, nil)
	if err != nil {
		return err
	}
	sqlDB, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	count, err := history.CountRuns(sqlDB)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Runs: %d\n", count)
	if count == 0 {
		return nil
	}

	runs, err := history.Runs(sqlDB, 1)
	if err != nil {
		return err
	}
	latest := runs[0]

	fmt.Fprintf(w, "Latest: %s %s\n", shortID(latest.ID), humanize.Time(latest.StartedAt))
	ui.ShowStatus(w, latest.Status, latest.Duration())
	for _, c := range []struct {
		status string
		n      int
	}{
		{history.StatusPassed, latest.Passed},
		{history.StatusFailed, latest.Failed},
		{"other", latest.Other},
	} {
		if c.n > 0 {
			ui.StatusCount(w, c.status, c.n)
		}
	}
	return nil
}
