package history

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
)

// Run is a stored run with its scenario counts.
type Run struct {
	ID         string
	Server     string
	Browser    string
	Status     string
	StartedAt  time.Time
	FinishedAt time.Time // zero while running
	Passed     int
	Failed     int
	Other      int
}

// Duration returns how long the run took, or zero if it did not finish.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// ScenarioRow is a stored scenario result.
type ScenarioRow struct {
	Feature  string
	Name     string
	Status   string
	Duration time.Duration
	Err      string
}

const runColumns = `
	r.id, r.server, r.browser, r.status, r.started_at, r.finished_at,
	COALESCE(SUM(CASE WHEN s.status = 'passed' THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(CASE WHEN s.status = 'failed' THEN 1 ELSE 0 END), 0),
	COALESCE(SUM(CASE WHEN s.status NOT IN ('passed', 'failed') THEN 1 ELSE 0 END), 0)
	FROM runs r
	LEFT JOIN scenario_results s ON s.run_id = r.id`

type scanner interface {
	Scan(dest ...interface{}) error
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing timestamp %q", s)
	}
	return t, nil
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var started string
	var finished sql.NullString
	if err := row.Scan(&r.ID, &r.Server, &r.Browser, &r.Status, &started, &finished,
		&r.Passed, &r.Failed, &r.Other); err != nil {
		return Run{}, err
	}

	var err error
	if r.StartedAt, err = parseTime(started); err != nil {
		return Run{}, err
	}
	if finished.Valid {
		if r.FinishedAt, err = parseTime(finished.String); err != nil {
			return Run{}, err
		}
	}
	return r, nil
}

// Runs returns the most recent runs, newest first.
func Runs(db *sql.DB, limit int) ([]Run, error) {
	rows, err := db.Query(`SELECT `+runColumns+`
		GROUP BY r.id
		ORDER BY r.started_at DESC, r.rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning run")
		}
		runs = append(runs, r)
	}
	return runs, errors.Wrap(rows.Err(), "iterating runs")
}

// FindRun returns the run whose id starts with prefix. The prefix must
// select exactly one run.
func FindRun(db *sql.DB, prefix string) (Run, error) {
	rows, err := db.Query(`SELECT `+runColumns+`
		WHERE substr(r.id, 1, length(?)) = ?
		GROUP BY r.id
		LIMIT 2`, prefix, prefix)
	if err != nil {
		return Run{}, errors.Wrap(err, "querying run")
	}
	defer rows.Close()

	var found []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return Run{}, errors.Wrap(err, "scanning run")
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return Run{}, errors.Wrap(err, "iterating runs")
	}

	switch len(found) {
	case 0:
		return Run{}, errors.Errorf("run %s not found", prefix)
	case 1:
		return found[0], nil
	default:
		return Run{}, errors.Errorf("run prefix %s is ambiguous", prefix)
	}
}

// Scenarios returns the scenario results of a run in recording order.
func Scenarios(db *sql.DB, runID string) ([]ScenarioRow, error) {
	rows, err := db.Query(`SELECT feature, name, status, duration_ms, error
		FROM scenario_results
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, errors.Wrap(err, "querying scenario results")
	}
	defer rows.Close()

	var out []ScenarioRow
	for rows.Next() {
		var s ScenarioRow
		var ms int64
		if err := rows.Scan(&s.Feature, &s.Name, &s.Status, &ms, &s.Err); err != nil {
			return nil, errors.Wrap(err, "scanning scenario result")
		}
		s.Duration = time.Duration(ms) * time.Millisecond
		out = append(out, s)
	}
	return out, errors.Wrap(rows.Err(), "iterating scenario results")
}

// CountRuns returns the number of recorded runs.
func CountRuns(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "counting runs")
	}
	return n, nil
}
