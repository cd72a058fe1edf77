// Package browser wraps a selenium.WebDriver with the waits, lookups and
// script helpers used by the step library.
package browser

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/tebeka/selenium"
	"go.uber.org/zap"
)

// Util borrows a driver owned by the harness. It never quits it.
type Util struct {
	Driver selenium.WebDriver

	timeout  time.Duration
	interval time.Duration
	log      *zap.Logger
}

// NewUtil returns a Util whose waits give up after timeout and evaluate
// their condition every interval.
func NewUtil(driver selenium.WebDriver, timeout, interval time.Duration, log *zap.Logger) *Util {
	if log == nil {
		log = zap.NewNop()
	}
	return &Util{
		Driver:   driver,
		timeout:  timeout,
		interval: interval,
		log:      log,
	}
}

// Wait polls cond until it reports true, returns an error, or the default
// timeout elapses.
func (u *Util) Wait(cond selenium.Condition) error {
	return u.WaitWithTimeout(cond, u.timeout)
}

// WaitWithTimeout is Wait with an explicit bound.
func (u *Util) WaitWithTimeout(cond selenium.Condition, timeout time.Duration) error {
	started := time.Now()
	err := u.Driver.WaitWithTimeoutAndInterval(cond, timeout, u.interval)
	u.log.Debug("wait finished",
		zap.Duration("elapsed", time.Since(started)),
		zap.Duration("timeout", timeout),
		zap.Error(err))
	if err != nil {
		return errors.Wrapf(err, "condition not met within %s", timeout)
	}
	return nil
}

// ScriptCondition turns a script returning a boolean into a wait
// condition. Any other result counts as false.
func ScriptCondition(script string, args ...interface{}) selenium.Condition {
	return func(wd selenium.WebDriver) (bool, error) {
		res, err := wd.ExecuteScript(script, argList(args))
		if err != nil {
			return false, err
		}
		ok, _ := res.(bool)
		return ok, nil
	}
}

// WaitForScript waits until script returns true.
func (u *Util) WaitForScript(script string, args ...interface{}) error {
	return u.Wait(ScriptCondition(script, args...))
}

// ScriptBool runs script once and returns its result as a boolean.
func (u *Util) ScriptBool(script string, args ...interface{}) (bool, error) {
	res, err := u.Driver.ExecuteScript(script, argList(args))
	if err != nil {
		return false, errors.Wrap(err, "executing script")
	}
	b, ok := res.(bool)
	if !ok {
		return false, errors.Errorf("script returned %T, expected a boolean", res)
	}
	return b, nil
}

// ScriptInt runs script once and returns its numeric result as an int.
func (u *Util) ScriptInt(script string, args ...interface{}) (int, error) {
	res, err := u.Driver.ExecuteScript(script, argList(args))
	if err != nil {
		return 0, errors.Wrap(err, "executing script")
	}
	return toInt(res)
}

// ScriptString runs script once and returns its result as a string.
func (u *Util) ScriptString(script string, args ...interface{}) (string, error) {
	res, err := u.Driver.ExecuteScript(script, argList(args))
	if err != nil {
		return "", errors.Wrap(err, "executing script")
	}
	s, ok := res.(string)
	if !ok {
		return "", errors.Errorf("script returned %T, expected a string", res)
	}
	return s, nil
}

func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case float32:
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, errors.Errorf("script returned %T, expected a number", v)
	}
}

func argList(args []interface{}) []interface{} {
	if args == nil {
		return []interface{}{}
	}
	return args
}

// FindElement waits until an element matching the locator is present and
// returns it.
func (u *Util) FindElement(by, value string) (selenium.WebElement, error) {
	var found selenium.WebElement
	err := u.Wait(func(wd selenium.WebDriver) (bool, error) {
		el, err := wd.FindElement(by, value)
		if err != nil {
			return false, nil
		}
		found = el
		return true, nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "finding element %s=%q", by, value)
	}
	return found, nil
}

// FindClickableElement waits until an element matching the locator is
// present, displayed and enabled.
func (u *Util) FindClickableElement(by, value string) (selenium.WebElement, error) {
	var found selenium.WebElement
	err := u.Wait(func(wd selenium.WebDriver) (bool, error) {
		el, err := wd.FindElement(by, value)
		if err != nil {
			return false, nil
		}
		if displayed, err := el.IsDisplayed(); err != nil || !displayed {
			return false, nil
		}
		if enabled, err := el.IsEnabled(); err != nil || !enabled {
			return false, nil
		}
		found = el
		return true, nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "finding clickable element %s=%q", by, value)
	}
	return found, nil
}

// IsPresent reports whether a locator currently matches an element.
func IsPresent(by, value string) selenium.Condition {
	return func(wd selenium.WebDriver) (bool, error) {
		_, err := wd.FindElement(by, value)
		return err == nil, nil
	}
}

const textExcludingChildrenScript = `
var el = arguments[0];
var text = "";
for (var child = el.firstChild; child; child = child.nextSibling) {
  if (child.nodeType === Node.TEXT_NODE)
    text += child.data;
}
return text;
`

// TextExcludingChildren returns the text of el's own text nodes, leaving
// out the text of its descendant elements.
func (u *Util) TextExcludingChildren(el selenium.WebElement) (string, error) {
	return u.ScriptString(textExcludingChildrenScript, el)
}

// WindowScrollTop returns the vertical scroll offset of the window.
func (u *Util) WindowScrollTop() (int, error) {
	return u.ScriptInt("return window.pageYOffset;")
}

// WindowScrollLeft returns the horizontal scroll offset of the window.
func (u *Util) WindowScrollLeft() (int, error) {
	return u.ScriptInt("return window.pageXOffset;")
}

const windowSizeScript = `return window.outerWidth === arguments[0] && window.outerHeight === arguments[1];`

// SetWindowSize resizes the current window and waits until the page
// reports the new size.
func (u *Util) SetWindowSize(width, height int) error {
	if err := u.Driver.ResizeWindow("", width, height); err != nil {
		return errors.Wrapf(err, "resizing window to %dx%d", width, height)
	}
	if err := u.WaitForScript(windowSizeScript, width, height); err != nil {
		return errors.Wrapf(err, "window did not become %dx%d", width, height)
	}
	return nil
}

// afterReadyWrapper runs the body once the page's DOM-ready callbacks have
// run, then signals completion through the async script callback.
const afterReadyWrapper = `
var done = arguments[arguments.length - 1];
var args = Array.prototype.slice.call(arguments, 0, arguments.length - 1);
jQuery(function () {
  var result = (function () { %s }).apply(null, args);
  done(result === undefined ? true : result);
});
`

// AfterReady runs body, a function body that may use arguments, after the
// page's DOM-ready callbacks. It returns once body has run. The driver's
// async script timeout bounds the call.
func (u *Util) AfterReady(body string, args ...interface{}) (interface{}, error) {
	started := time.Now()
	res, err := u.Driver.ExecuteScriptAsync(fmt.Sprintf(afterReadyWrapper, body), argList(args))
	u.log.Debug("deferred script finished",
		zap.Duration("elapsed", time.Since(started)),
		zap.Error(err))
	if err != nil {
		return nil, errors.Wrap(err, "deferred script did not complete")
	}
	return res, nil
}
