// Package browsertest provides in-memory stand-ins for selenium.WebDriver
// and selenium.WebElement. Only the methods the step library uses are
// implemented; calling any other method panics on the nil embedded
// interface.
package browsertest

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tebeka/selenium"
)

// ScriptHandler answers a script execution.
type ScriptHandler func(args []interface{}) (interface{}, error)

type scriptRule struct {
	contains string
	handler  ScriptHandler
}

// Size is a requested window size.
type Size struct {
	Width, Height int
}

// Driver records the calls made to it and answers scripts through
// handlers registered with OnScript and OnAsyncScript.
type Driver struct {
	selenium.WebDriver

	mu           sync.Mutex
	urls         []string
	scripts      []string
	asyncScripts []string
	resizes      []Size
	elements     map[string]selenium.WebElement
	rules        []scriptRule
	asyncRules   []scriptRule
	asyncTimeout time.Duration
	quit         bool
}

// NewDriver returns an empty fake driver.
func NewDriver() *Driver {
	return &Driver{elements: map[string]selenium.WebElement{}}
}

func locator(by, value string) string {
	return by + "=" + value
}

// AddElement makes FindElement(by, value) return el.
func (d *Driver) AddElement(by, value string, el selenium.WebElement) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[locator(by, value)] = el
}

// OnScript answers synchronous scripts containing the given text. Rules
// are tried in registration order.
func (d *Driver) OnScript(contains string, h ScriptHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rules = append(d.rules, scriptRule{contains, h})
}

// OnAsyncScript answers asynchronous scripts containing the given text.
func (d *Driver) OnAsyncScript(contains string, h ScriptHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.asyncRules = append(d.asyncRules, scriptRule{contains, h})
}

// Returning is a ScriptHandler that always answers v.
func Returning(v interface{}) ScriptHandler {
	return func([]interface{}) (interface{}, error) { return v, nil }
}

func match(rules []scriptRule, script string) ScriptHandler {
	for _, r := range rules {
		if strings.Contains(script, r.contains) {
			return r.handler
		}
	}
	return nil
}

func (d *Driver) Get(url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.urls = append(d.urls, url)
	return nil
}

// URLs returns the navigated URLs in order.
func (d *Driver) URLs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.urls...)
}

func (d *Driver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	d.mu.Lock()
	d.scripts = append(d.scripts, script)
	h := match(d.rules, script)
	d.mu.Unlock()
	if h == nil {
		return nil, nil
	}
	return h(args)
}

func (d *Driver) ExecuteScriptAsync(script string, args []interface{}) (interface{}, error) {
	d.mu.Lock()
	d.asyncScripts = append(d.asyncScripts, script)
	h := match(d.asyncRules, script)
	timeout := d.asyncTimeout
	d.mu.Unlock()
	if h == nil {
		return nil, fmt.Errorf("script timeout: no completion after %s", timeout)
	}
	return h(args)
}

// Scripts returns the synchronous scripts executed so far.
func (d *Driver) Scripts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.scripts...)
}

// AsyncScripts returns the asynchronous scripts executed so far.
func (d *Driver) AsyncScripts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.asyncScripts...)
}

func (d *Driver) SetAsyncScriptTimeout(timeout time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.asyncTimeout = timeout
	return nil
}

// AsyncScriptTimeout returns the last value passed to SetAsyncScriptTimeout.
func (d *Driver) AsyncScriptTimeout() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.asyncTimeout
}

func (d *Driver) FindElement(by, value string) (selenium.WebElement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[locator(by, value)]
	if !ok {
		return nil, fmt.Errorf("no such element: %s", locator(by, value))
	}
	return el, nil
}

func (d *Driver) ResizeWindow(name string, width, height int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resizes = append(d.resizes, Size{width, height})
	return nil
}

// Resizes returns the requested window sizes in order.
func (d *Driver) Resizes() []Size {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Size(nil), d.resizes...)
}

// LastSize returns the most recently requested window size.
func (d *Driver) LastSize() (Size, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.resizes) == 0 {
		return Size{}, false
	}
	return d.resizes[len(d.resizes)-1], true
}

func (d *Driver) WaitWithTimeoutAndInterval(cond selenium.Condition, timeout, interval time.Duration) error {
	started := time.Now()
	for {
		done, err := cond(d)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if time.Since(started) > timeout {
			return fmt.Errorf("timeout after %v", time.Since(started))
		}
		time.Sleep(interval)
	}
}

func (d *Driver) WaitWithTimeout(cond selenium.Condition, timeout time.Duration) error {
	return d.WaitWithTimeoutAndInterval(cond, timeout, selenium.DefaultWaitInterval)
}

func (d *Driver) Quit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.quit = true
	return nil
}

// Quitted reports whether Quit was called.
func (d *Driver) Quitted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quit
}
