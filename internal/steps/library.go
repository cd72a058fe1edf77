package steps

import (
	"context"
	"time"

	"github.com/cucumber/godog"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/keisetsu/wed/internal/harness"
	"github.com/keisetsu/wed/internal/history"
)

// ScenarioRecorder receives the outcome of every scenario.
type ScenarioRecorder interface {
	RecordScenario(history.ScenarioResult) error
}

// Library binds the step definitions to a harness suite.
type Library struct {
	suite    *harness.Suite
	log      *zap.Logger
	recorder ScenarioRecorder
	sleep    func(time.Duration)

	startErr error
}

// NewLibrary returns a library running its scenarios in suite. recorder
// may be nil.
func NewLibrary(suite *harness.Suite, recorder ScenarioRecorder) *Library {
	return &Library{
		suite:    suite,
		log:      suite.Log.Named("steps"),
		recorder: recorder,
		sleep:    time.Sleep,
	}
}

// InitializeTestSuite opens the browser session before the first scenario
// and closes it after the last one.
func (l *Library) InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		if err := l.suite.Start(); err != nil {
			l.startErr = err
			l.log.Error("cannot start webdriver session", zap.Error(err))
		}
	})
	ctx.AfterSuite(func() {
		if err := l.suite.Stop(); err != nil {
			l.log.Warn("cannot stop webdriver session", zap.Error(err))
		}
	})
}

// InitializeScenario registers every step definition against a fresh
// Scenario.
func (l *Library) InitializeScenario(sc *godog.ScenarioContext) {
	s := newScenario(l.suite.Config, l.suite.Timeouts, l.log)
	s.sleep = l.sleep

	sc.Before(func(ctx context.Context, scenario *godog.Scenario) (context.Context, error) {
		util, err := l.suite.Util()
		if err != nil {
			if l.startErr != nil {
				err = l.startErr
			}
			return ctx, errors.Wrapf(err, "scenario %q", scenario.Name)
		}
		s.attach(util, harness.NewScenarioContext(scenario.Name))
		s.log = l.log.With(zap.String("scenario", scenario.Name))
		s.log.Debug("scenario started", zap.String("uri", scenario.Uri))
		return ctx, nil
	})

	for _, def := range definitions {
		sc.Step(def.re, def.bind(s))
	}

	sc.StepContext().After(func(ctx context.Context, st *godog.Step, status godog.StepResultStatus, err error) (context.Context, error) {
		if err != nil && s.Harness != nil {
			s.Harness.Fail()
			s.log.Info("step failed", zap.String("step", st.Text), zap.Error(err))
		}
		return ctx, nil
	})

	sc.After(func(ctx context.Context, scenario *godog.Scenario, err error) (context.Context, error) {
		if s.Harness == nil {
			// The Before hook failed, err carries its reason.
			if err == nil {
				err = errors.New("scenario did not start")
			}
			l.record(scenario, 0, err)
			return ctx, nil
		}
		if err != nil {
			s.Harness.Fail()
		}
		l.record(scenario, s.Harness.Elapsed(), err)

		if s.Harness.Failed() && !s.Config.CleanupOnFailure {
			s.log.Warn("scenario failed, leaving the browser as is")
			return ctx, nil
		}
		if cerr := s.Harness.Cleanup(); cerr != nil {
			s.log.Warn("scenario cleanup failed", zap.Error(cerr))
		}
		return ctx, nil
	})
}

func scenarioStatus(err error) string {
	switch {
	case err == nil:
		return history.StatusPassed
	case errors.Is(err, godog.ErrUndefined):
		return history.StatusUndefined
	case errors.Is(err, godog.ErrPending):
		return history.StatusPending
	default:
		return history.StatusFailed
	}
}

func (l *Library) record(scenario *godog.Scenario, elapsed time.Duration, err error) {
	if l.recorder == nil {
		return
	}
	res := history.ScenarioResult{
		Feature:  scenario.Uri,
		Name:     scenario.Name,
		Status:   scenarioStatus(err),
		Duration: elapsed,
	}
	if err != nil {
		res.Err = err.Error()
	}
	if rerr := l.recorder.RecordScenario(res); rerr != nil {
		l.log.Warn("cannot record scenario", zap.Error(rerr))
	}
}
