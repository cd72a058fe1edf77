package cmd

import (
	"io"

	"github.com/keisetsu/wed/internal/steps"
	"github.com/keisetsu/wed/internal/ui"
	"github.com/spf13/cobra"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List the step definitions features may use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSteps(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(stepsCmd)
}

func RunSteps(w io.Writer) error {
	for _, def := range steps.Catalog() {
		ui.StepRow(w, def.Pattern, def.Doc)
	}
	return nil
}
