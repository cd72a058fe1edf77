package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/keisetsu/wed/internal/history"
	"github.com/keisetsu/wed/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <run>",
	Short: "Show the scenarios of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), configFlag, args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, configPath, prefix string) error {
	if prefix == "" {
		return fmt.Errorf("empty run id")
	}

	cfg, err := loadConfig(configPath, nil)
	if err != nil {
		return err
	}
	sqlDB, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	run, err := history.FindRun(sqlDB, prefix)
	if err != nil {
		return err
	}
	scenarios, err := history.Scenarios(sqlDB, run.ID)
	if err != nil {
		return err
	}

	ui.ShowHeader(w, run.ID, run.Browser, run.Server, humanize.Time(run.StartedAt))
	ui.ShowStatus(w, run.Status, run.Duration())
	fmt.Fprintln(w)

	if len(scenarios) == 0 {
		fmt.Fprintln(w, "no scenarios recorded")
		return nil
	}
	for _, s := range scenarios {
		ui.ShowScenario(w, s.Status, s.Feature, s.Name, s.Duration, s.Err)
	}
	return nil
}
