// Package history records the outcome of test runs in the SQLite
// database opened by package db.
package history

import (
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Run and scenario statuses.
const (
	StatusRunning   = "running"
	StatusPassed    = "passed"
	StatusFailed    = "failed"
	StatusUndefined = "undefined"
	StatusPending   = "pending"
)

// ScenarioResult is the outcome of one scenario.
type ScenarioResult struct {
	Feature  string
	Name     string
	Status   string
	Duration time.Duration
	Err      string
}

// Recorder writes one run and its scenario results.
type Recorder struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time

	mu    sync.Mutex
	runID string
}

// NewRecorder returns a recorder writing to db.
func NewRecorder(db *sql.DB, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{db: db, log: log, now: time.Now}
}

// SetClock replaces the clock stamping run start and finish times.
func (r *Recorder) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// timeLayout is fixed width so that stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Start inserts a new run and returns its id.
func (r *Recorder) Start(server, browser string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.runID != "" {
		return "", errors.Errorf("run %s is already started", r.runID)
	}

	id := uuid.NewString()
	_, err := r.db.Exec(`INSERT INTO runs (id, server, browser, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, server, browser, StatusRunning, formatTime(r.now()))
	if err != nil {
		return "", errors.Wrap(err, "inserting run")
	}
	r.runID = id
	r.log.Debug("run started", zap.String("run", id))
	return id, nil
}

// RunID returns the id of the started run, or "" before Start.
func (r *Recorder) RunID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runID
}

// RecordScenario stores res under the started run.
func (r *Recorder) RecordScenario(res ScenarioResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.runID == "" {
		return errors.New("no run started")
	}
	_, err := r.db.Exec(`INSERT INTO scenario_results (run_id, feature, name, status, duration_ms, error) VALUES (?, ?, ?, ?, ?, ?)`,
		r.runID, res.Feature, res.Name, res.Status, res.Duration.Milliseconds(), res.Err)
	if err != nil {
		return errors.Wrapf(err, "recording scenario %q", res.Name)
	}
	return nil
}

// Finish closes the started run with status.
func (r *Recorder) Finish(status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.runID == "" {
		return errors.New("no run started")
	}
	_, err := r.db.Exec(`UPDATE runs SET status = ?, finished_at = ? WHERE id = ?`,
		status, formatTime(r.now()), r.runID)
	if err != nil {
		return errors.Wrap(err, "finishing run")
	}
	r.log.Debug("run finished", zap.String("run", r.runID), zap.String("status", status))
	return nil
}
