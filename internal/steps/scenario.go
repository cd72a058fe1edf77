package steps

import (
	"time"

	"github.com/tebeka/selenium"
	"go.uber.org/zap"

	"github.com/keisetsu/wed/internal/browser"
	"github.com/keisetsu/wed/internal/config"
	"github.com/keisetsu/wed/internal/harness"
)

// Scenario is the state shared by the steps of one scenario.
type Scenario struct {
	Config   *config.Config
	Timeouts config.Timeouts

	// Borrowed from the harness for the duration of the scenario.
	Driver  selenium.WebDriver
	Util    *browser.Util
	Harness *harness.ScenarioContext

	// URL of the last editor load.
	LoadedURL string
	// Marker injected at the window origin after each load.
	OriginObject selenium.WebElement
	// Element clicked by the last click step.
	ElementToTestForText selenium.WebElement

	// Window offsets captured by the last window scroll step.
	WindowScrollTop   int
	WindowScrollLeft  int
	HaveScrollOffsets bool

	ScrolledEditorPaneBy int

	// Last size requested by a resize step.
	WindowWidth  int
	WindowHeight int
	// Size before the first resize, restored on cleanup.
	originalSize *[2]int

	log   *zap.Logger
	sleep func(time.Duration)
}

func newScenario(cfg *config.Config, timeouts config.Timeouts, log *zap.Logger) *Scenario {
	return &Scenario{
		Config:   cfg,
		Timeouts: timeouts,
		log:      log,
		sleep:    time.Sleep,
	}
}

// attach binds the scenario to a browser session.
func (s *Scenario) attach(util *browser.Util, hc *harness.ScenarioContext) {
	s.Util = util
	s.Driver = util.Driver
	s.Harness = hc
}
