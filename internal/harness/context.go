package harness

import (
	"bytes"
	"fmt"
	"sync"
	"time"
)

type (
	cleanupFn func() error

	// ScenarioContext holds the bookkeeping of one scenario run. It is
	// created before the scenario and dropped after its cleanups ran.
	ScenarioContext struct {
		sync.Mutex

		Name    string
		Started time.Time

		cleanupFunctions []cleanupFn
		failed           bool
	}

	multiError []error
)

func (m multiError) Error() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Error(s):\n")
	for _, err := range m {
		fmt.Fprintf(&buf, "  %s\n", err)
	}

	return buf.String()
}

// NewScenarioContext returns a context for the named scenario, started now.
func NewScenarioContext(name string) *ScenarioContext {
	return &ScenarioContext{
		Name:    name,
		Started: time.Now(),
	}
}

// Fail marks the scenario as failed.
func (s *ScenarioContext) Fail() {
	s.Lock()
	defer s.Unlock()

	s.failed = true
}

// Failed reports whether Fail was called.
func (s *ScenarioContext) Failed() bool {
	s.Lock()
	defer s.Unlock()

	return s.failed
}

// Elapsed returns the time since the scenario started.
func (s *ScenarioContext) Elapsed() time.Duration {
	return time.Since(s.Started)
}

// AddCleanup registers a handler run by Cleanup, most recent first.
func (s *ScenarioContext) AddCleanup(fn func() error) {
	s.Lock()
	defer s.Unlock()

	s.cleanupFunctions = append(s.cleanupFunctions, fn)
}

// Cleanup runs every cleanup handler and returns the errors of the ones
// that failed. Handlers run once.
func (s *ScenarioContext) Cleanup() error {
	s.Lock()
	fns := s.cleanupFunctions
	s.cleanupFunctions = nil
	s.Unlock()

	var errs multiError
	for i := len(fns) - 1; i >= 0; i-- {
		if err := fns[i](); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
