package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/keisetsu/wed/features"
	"github.com/keisetsu/wed/internal/parser"
	"github.com/keisetsu/wed/internal/steps"
	"github.com/keisetsu/wed/internal/ui"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report feature steps that match no step definition",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunCheck(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// parseFeatures parses the features under paths, or the built-in features
// when paths is empty.
func parseFeatures(paths []string) ([]*parser.ParsedFile, error) {
	if len(paths) == 0 {
		return parser.ParseFS(features.FS, []string{"."})
	}

	var files []*parser.ParsedFile
	for _, p := range paths {
		dir, base := filepath.Split(filepath.Clean(p))
		if dir == "" {
			dir = "."
		}
		parsed, err := parser.ParseFS(os.DirFS(dir), []string{base})
		if err != nil {
			return nil, err
		}
		for _, f := range parsed {
			f.URI = filepath.Join(dir, filepath.FromSlash(f.URI))
		}
		files = append(files, parsed...)
	}
	return files, nil
}

func RunCheck(w io.Writer, paths []string) error {
	files, err := parseFeatures(paths)
	if err != nil {
		return fmt.Errorf("parsing features: %w", err)
	}

	type stepKey struct {
		line int
		text string
	}

	total, undefined := 0, 0
	for _, f := range files {
		seen := map[stepKey]bool{}
		var missing []parser.ParsedStep
		for _, sc := range f.Scenarios {
			for _, st := range sc.Steps {
				key := stepKey{st.Line, st.Text}
				if seen[key] {
					continue
				}
				seen[key] = true
				total++
				if _, ok := steps.Match(st.Text); !ok {
					missing = append(missing, st)
				}
			}
		}

		if len(missing) == 0 {
			ui.OkLine(w, f.URI)
			continue
		}
		ui.UndefLine(w, f.URI, len(missing))
		for _, st := range missing {
			ui.UndefinedStep(w, f.URI, st.Line, st.Keyword, st.Text)
		}
		undefined += len(missing)
	}

	ui.SummaryLine(w, len(files), total, undefined)
	if undefined > 0 {
		return fmt.Errorf("%d undefined steps", undefined)
	}
	return nil
}
