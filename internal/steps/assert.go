package steps

import (
	"github.com/pkg/errors"

	"github.com/keisetsu/wed/internal/wedutil"
)

func init() {
	addStep(`^the window's contents does not move.?$`,
		"Compare the window offsets with the ones recorded by the last scroll.",
		func(s *Scenario) interface{} { return s.theWindowContentsDoesNotMove })
	addStep(`^the editor pane has focus$`,
		"Wait until the editor's input field is the active element.",
		func(s *Scenario) interface{} { return s.theEditorPaneHasFocus })
}

func (s *Scenario) theWindowContentsDoesNotMove() error {
	if !s.HaveScrollOffsets {
		return errors.New("no window offsets were recorded by an earlier step")
	}

	top, err := s.Util.WindowScrollTop()
	if err != nil {
		return errors.Wrap(err, "reading window scroll top")
	}
	if top != s.WindowScrollTop {
		return errors.Errorf("top must not have changed: was %d, now %d", s.WindowScrollTop, top)
	}

	left, err := s.Util.WindowScrollLeft()
	if err != nil {
		return errors.Wrap(err, "reading window scroll left")
	}
	if left != s.WindowScrollLeft {
		return errors.Errorf("left must not have changed: was %d, now %d", s.WindowScrollLeft, left)
	}
	return nil
}

func (s *Scenario) theEditorPaneHasFocus() error {
	return wedutil.WaitForEditorFocus(s.Util)
}
