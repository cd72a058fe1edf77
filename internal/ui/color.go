package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	patternStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// StatusStyle returns the style used to render a run or scenario status.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "passed":
		return okStyle
	case "failed":
		return failStyle
	case "undefined", "pending":
		return warnStyle
	default:
		return faintStyle
	}
}

// OkLine reports a feature file whose steps all match a definition.
func OkLine(w io.Writer, path string) {
	fmt.Fprintln(w, okStyle.Render("ok   ")+"  "+path)
}

// UndefLine reports a feature file with undefined steps.
func UndefLine(w io.Writer, path string, count int) {
	fmt.Fprintf(w, "%s  %s (%d undefined)\n", warnStyle.Render("undef"), path, count)
}

// UndefinedStep prints a step no definition matches.
func UndefinedStep(w io.Writer, path string, line int, keyword, text string) {
	loc := faintStyle.Render(fmt.Sprintf("%s:%d", path, line))
	fmt.Fprintf(w, "       %s %s %s\n", loc, keyword, text)
}

// SummaryLine closes the check report.
func SummaryLine(w io.Writer, files, steps, undefined int) {
	fmt.Fprintf(w, "checked %d files, %d steps, %d undefined\n", files, steps, undefined)
}
