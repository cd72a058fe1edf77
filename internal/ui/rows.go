package ui

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// StepRow prints one step definition of the catalog.
func StepRow(w io.Writer, pattern, doc string) {
	fmt.Fprintln(w, patternStyle.Render(pattern))
	fmt.Fprintln(w, "    "+doc)
}

// ListRow prints one run of the history list.
func ListRow(w io.Writer, id, age, status string, passed, failed, other int, ageWidth int) {
	counts := fmt.Sprintf("%d passed, %d failed", passed, failed)
	if other > 0 {
		counts += fmt.Sprintf(", %d other", other)
	}
	statusCol := StatusStyle(status).Render(fmt.Sprintf("%-9s", status))
	fmt.Fprintf(w, "%s  %-*s  %s  %s\n", id, ageWidth, age, statusCol, counts)
}

// ShowHeader prints the header of a single run.
func ShowHeader(w io.Writer, id, browser, server, started string) {
	fmt.Fprintln(w, headerStyle.Render("run "+id))
	fmt.Fprintf(w, "%s on %s, started %s\n", browser, server, started)
}

// ShowStatus prints the status and duration of a run.
func ShowStatus(w io.Writer, status string, took time.Duration) {
	line := "Status: " + StatusStyle(status).Render(status)
	if took > 0 {
		line += " in " + took.Round(time.Millisecond).String()
	}
	fmt.Fprintln(w, line)
}

// ShowScenario prints one scenario result of a run. err is indented under
// the scenario.
func ShowScenario(w io.Writer, status, feature, name string, took time.Duration, err string) {
	statusCol := StatusStyle(status).Render(fmt.Sprintf("%-9s", status))
	fmt.Fprintf(w, "  %s  %s %s %s\n", statusCol, name,
		faintStyle.Render(feature), faintStyle.Render(took.Round(time.Millisecond).String()))
	if err == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(err, "\n"), "\n") {
		fmt.Fprintln(w, "             "+failStyle.Render(line))
	}
}

// StatusCount prints one line of the status report.
func StatusCount(w io.Writer, status string, count int) {
	fmt.Fprintf(w, "  %s %d\n", StatusStyle(status).Render(fmt.Sprintf("%-9s", status)), count)
}

// RunSummary closes the output of the run command.
func RunSummary(w io.Writer, status, runID string) {
	line := "run " + StatusStyle(status).Render(status)
	if runID != "" {
		line += faintStyle.Render(" (" + runID + ")")
	}
	fmt.Fprintln(w, line)
}
