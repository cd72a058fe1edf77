package steps

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tebeka/selenium"

	"github.com/keisetsu/wed/internal/wedutil"
)

const (
	titleClass         = "title"
	startLabelSelector = "._start_button._title_label"
)

func init() {
	addStep(`^the user clicks on text that does not contain "([^"]*)"$`,
		"Click a title element, wait for the caret in it, check its own text.",
		func(s *Scenario) interface{} { return s.clickOnTextNotContaining })
	addStep(`^the user clicks on the start label of an element that does not contain "([^"]*)"$`,
		"Click a title start label and check the labelled element's own text.",
		func(s *Scenario) interface{} { return s.clickOnStartLabelNotContaining })
}

func (s *Scenario) assertOwnTextExcludes(el selenium.WebElement, text string) error {
	own, err := s.Util.TextExcludingChildren(el)
	if err != nil {
		return errors.Wrap(err, "reading element text")
	}
	if strings.Contains(own, text) {
		return errors.Errorf("element text %q contains %q", own, text)
	}
	return nil
}

func (s *Scenario) clickOnTextNotContaining(text string) error {
	el, err := s.Util.FindClickableElement(selenium.ByClassName, titleClass)
	if err != nil {
		return err
	}
	if err := el.Click(); err != nil {
		return errors.Wrap(err, "clicking title")
	}
	if err := wedutil.WaitForCaretToBeIn(s.Util, el); err != nil {
		return err
	}

	s.ElementToTestForText = el
	return s.assertOwnTextExcludes(el, text)
}

func (s *Scenario) clickOnStartLabelNotContaining(text string) error {
	button, err := s.Util.FindElement(selenium.ByCSSSelector, startLabelSelector)
	if err != nil {
		return err
	}
	if err := button.Click(); err != nil {
		return errors.Wrap(err, "clicking start label")
	}

	parent, err := button.FindElement(selenium.ByXPATH, "..")
	if err != nil {
		return errors.Wrap(err, "finding labelled element")
	}
	if err := s.assertOwnTextExcludes(parent, text); err != nil {
		return err
	}
	s.ElementToTestForText = parent
	return nil
}
