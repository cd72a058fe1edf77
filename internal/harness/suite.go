package harness

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/tebeka/selenium"
	"go.uber.org/zap"

	"github.com/keisetsu/wed/internal/browser"
	"github.com/keisetsu/wed/internal/config"
)

// Suite owns the WebDriver session shared by the scenarios of one run.
// Scenarios borrow the driver; only Stop quits it.
type Suite struct {
	Config   *config.Config
	Timeouts config.Timeouts
	Log      *zap.Logger

	dial   Dialer
	driver selenium.WebDriver
	mu     sync.Mutex
}

// NewSuite validates cfg and returns a suite that opens its session with
// dial on the first call to Start.
func NewSuite(cfg *config.Config, dial Dialer, log *zap.Logger) (*Suite, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	timeouts, err := cfg.Timeouts()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if dial == nil {
		dial = selenium.NewRemote
	}

	return &Suite{
		Config:   cfg,
		Timeouts: timeouts,
		Log:      log,
		dial:     dial,
	}, nil
}

// Start opens the WebDriver session unless it is already open.
func (s *Suite) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.driver != nil {
		return nil
	}
	driver, err := Connect(s.Config, s.dial, s.Log)
	if err != nil {
		return err
	}
	s.driver = driver
	return nil
}

// Driver returns the open session, or nil before Start.
func (s *Suite) Driver() selenium.WebDriver {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.driver
}

// Util returns a helper bound to the open session.
func (s *Suite) Util() (*browser.Util, error) {
	driver := s.Driver()
	if driver == nil {
		return nil, errors.New("webdriver session is not started")
	}
	return browser.NewUtil(driver, s.Timeouts.Wait, s.Timeouts.Poll, s.Log.Named("browser")), nil
}

// Stop quits the session. It is safe to call more than once.
func (s *Suite) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.driver == nil {
		return nil
	}
	err := s.driver.Quit()
	s.driver = nil
	if err != nil {
		return errors.Wrap(err, "quitting webdriver session")
	}
	s.Log.Info("webdriver session closed")
	return nil
}
