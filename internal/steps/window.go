package steps

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Window sizes giving the editor pane a vertical scrollbar, or pushing it
// off screen, on the wed kitchen sink page.
const (
	ScrollbarWidth  = 683
	ScrollbarHeight = 741

	OffscreenWidth  = 683
	OffscreenHeight = 500

	// EditorPaneScrollStep is how far the editor pane is scrolled down.
	EditorPaneScrollStep = 10

	// MaxWait bounds the wait step.
	MaxWait = time.Hour
)

func init() {
	addStep(`^the user resizes the window so that the editor pane has a vertical scrollbar$`,
		"Resize the window to 683x741.",
		func(s *Scenario) interface{} { return s.resizeForScrollbar })
	addStep(`^the user resizes the window so that the editor pane will be offscreen$`,
		"Resize the window to 683x500.",
		func(s *Scenario) interface{} { return s.resizeForOffscreen })
	addStep(`^the user scrolls the window down so that the editor's top is at the top of the window$`,
		"Scroll the window to the editor's top and record the offsets.",
		func(s *Scenario) interface{} { return s.scrollWindowToEditorTop })
	addStep(`^the user scrolls the window completely down$`,
		"Scroll the window to the bottom and record the offsets.",
		func(s *Scenario) interface{} { return s.scrollWindowToBottom })
	addStep(`^the user scrolls the editor pane down$`,
		"Scroll the editor pane down by 10 pixels.",
		func(s *Scenario) interface{} { return s.scrollEditorPaneDown })
	addStep(`^wait (\d+(?:\.\d+)?) seconds?$`,
		"Sleep unconditionally.",
		func(s *Scenario) interface{} { return s.wait })
}

const windowSizeScript = `return [window.outerWidth, window.outerHeight];`

func (s *Scenario) rememberWindowSize() error {
	if s.originalSize != nil {
		return nil
	}
	res, err := s.Driver.ExecuteScript(windowSizeScript, []interface{}{})
	if err != nil {
		return errors.Wrap(err, "reading window size")
	}
	pair, ok := res.([]interface{})
	if !ok || len(pair) != 2 {
		return errors.Errorf("unexpected window size %v", res)
	}
	var size [2]int
	for i, v := range pair {
		n, ok := v.(float64)
		if !ok {
			return errors.Errorf("unexpected window size %v", res)
		}
		size[i] = int(n)
	}

	s.originalSize = &size
	s.Harness.AddCleanup(func() error {
		return s.Util.SetWindowSize(size[0], size[1])
	})
	return nil
}

func (s *Scenario) setWindowSize(width, height int) error {
	if err := s.rememberWindowSize(); err != nil {
		return err
	}
	if err := s.Util.SetWindowSize(width, height); err != nil {
		return err
	}
	s.WindowWidth, s.WindowHeight = width, height
	return nil
}

func (s *Scenario) resizeForScrollbar() error {
	return s.setWindowSize(ScrollbarWidth, ScrollbarHeight)
}

func (s *Scenario) resizeForOffscreen() error {
	return s.setWindowSize(OffscreenWidth, OffscreenHeight)
}

func (s *Scenario) captureScrollOffsets() error {
	top, err := s.Util.WindowScrollTop()
	if err != nil {
		return errors.Wrap(err, "reading window scroll top")
	}
	left, err := s.Util.WindowScrollLeft()
	if err != nil {
		return errors.Wrap(err, "reading window scroll left")
	}

	s.WindowScrollTop, s.WindowScrollLeft = top, left
	s.HaveScrollOffsets = true
	s.log.Debug("window scrolled", zap.Int("top", top), zap.Int("left", left))
	return nil
}

// The scroll bodies run after the page's own ready callbacks, the body
// may not be fully loaded before that.
const (
	scrollToEditorTopBody = `window.scrollTo(0, wed_editor.$gui_root.offset().top);`
	scrollToBottomBody    = `window.scrollTo(0, document.body.scrollHeight);`
	scrollEditorPaneBody  = `
var by = arguments[0];
var top = window.wed_editor.$gui_root.scrollTop();
window.wed_editor.$gui_root.scrollTop(top + by);`
)

func (s *Scenario) scrollWindowToEditorTop() error {
	if _, err := s.Util.AfterReady(scrollToEditorTopBody); err != nil {
		return errors.Wrap(err, "scrolling to the editor's top")
	}
	return s.captureScrollOffsets()
}

func (s *Scenario) scrollWindowToBottom() error {
	if _, err := s.Util.AfterReady(scrollToBottomBody); err != nil {
		return errors.Wrap(err, "scrolling to the bottom")
	}
	return s.captureScrollOffsets()
}

func (s *Scenario) scrollEditorPaneDown() error {
	if _, err := s.Util.AfterReady(scrollEditorPaneBody, EditorPaneScrollStep); err != nil {
		return errors.Wrap(err, "scrolling the editor pane")
	}
	s.ScrolledEditorPaneBy = EditorPaneScrollStep
	return nil
}

func (s *Scenario) wait(seconds float64) error {
	if seconds > MaxWait.Seconds() {
		return errors.Errorf("cannot wait %g seconds, the limit is %s", seconds, MaxWait)
	}
	s.sleep(time.Duration(seconds * float64(time.Second)))
	return nil
}
