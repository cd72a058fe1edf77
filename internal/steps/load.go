package steps

import (
	"github.com/pkg/errors"
	"github.com/tebeka/selenium"
	"go.uber.org/zap"

	"github.com/keisetsu/wed/internal/browser"
	"github.com/keisetsu/wed/internal/wedutil"
)

// SimpleDocument is a document with a top level element, a p element and
// text, served by the wed build.
const SimpleDocument = "/build/test-files/wed_test_data/source_converted.xml"

func init() {
	addStep(`^the user loads the page$`,
		"Load the editor without a document and wait until it is ready.",
		func(s *Scenario) interface{} { return s.theUserLoadsThePage })
	addStep(`^an open document$`,
		"Load the editor without a document and wait until it is ready.",
		func(s *Scenario) interface{} { return s.anOpenDocument })
	addStep(`^a document containing a top level element, a p element, and text\.$`,
		"Load the editor on "+SimpleDocument+".",
		func(s *Scenario) interface{} { return s.aSimpleDocument })
	addStep(`^the editor shows a document$`,
		"Wait (editor_timeout) for a placeholder element to be present.",
		func(s *Scenario) interface{} { return s.theEditorShowsADocument })
}

func (s *Scenario) loadAndWaitForEditor(file string) error {
	if err := wedutil.DisableBeforeUnload(s.Util); err != nil {
		return err
	}

	url := wedutil.LoadURL(s.Config.WedServer, file)
	s.log.Debug("loading editor", zap.String("url", url))
	if err := s.Driver.Get(url); err != nil {
		return errors.Wrapf(err, "navigating to %s", url)
	}
	s.LoadedURL = url

	if err := wedutil.WaitForEditor(s.Util); err != nil {
		return err
	}

	origin, err := wedutil.InjectOriginObject(s.Util)
	if err != nil {
		return err
	}
	s.OriginObject = origin
	return nil
}

func (s *Scenario) theUserLoadsThePage() error {
	return s.loadAndWaitForEditor("")
}

func (s *Scenario) anOpenDocument() error {
	return s.loadAndWaitForEditor("")
}

func (s *Scenario) aSimpleDocument() error {
	return s.loadAndWaitForEditor(SimpleDocument)
}

func (s *Scenario) theEditorShowsADocument() error {
	cond := browser.IsPresent(selenium.ByClassName, wedutil.PlaceholderClass)
	if err := s.Util.WaitWithTimeout(cond, s.Timeouts.Editor); err != nil {
		return errors.Wrap(err, "the editor does not show a document")
	}
	return nil
}
