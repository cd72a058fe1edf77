package browsertest

import (
	"fmt"
	"sync"

	"github.com/tebeka/selenium"
)

// Element is a fake DOM element. OwnText is the text of its own text
// nodes; scripts registered on the Driver may read it through the
// element passed as argument.
type Element struct {
	selenium.WebElement

	Name      string
	OwnText   string
	Displayed bool
	Enabled   bool
	Parent    *Element
	OnClick   func()

	mu     sync.Mutex
	clicks int
}

// NewElement returns a displayed, enabled element.
func NewElement(name, ownText string) *Element {
	return &Element{
		Name:      name,
		OwnText:   ownText,
		Displayed: true,
		Enabled:   true,
	}
}

func (e *Element) Click() error {
	e.mu.Lock()
	e.clicks++
	onClick := e.OnClick
	e.mu.Unlock()
	if onClick != nil {
		onClick()
	}
	return nil
}

// Clicks returns how many times the element was clicked.
func (e *Element) Clicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clicks
}

func (e *Element) IsDisplayed() (bool, error) {
	return e.Displayed, nil
}

func (e *Element) IsEnabled() (bool, error) {
	return e.Enabled, nil
}

// FindElement supports the parent lookup `xpath=..` only.
func (e *Element) FindElement(by, value string) (selenium.WebElement, error) {
	if by == selenium.ByXPATH && value == ".." && e.Parent != nil {
		return e.Parent, nil
	}
	return nil, fmt.Errorf("no such element: %s=%s under %s", by, value, e.Name)
}

func (e *Element) String() string {
	return "element " + e.Name
}

// OwnTextOf answers TextExcludingChildren-style scripts with the OwnText
// of the element passed as first argument.
func OwnTextOf(args []interface{}) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing element argument")
	}
	el, ok := args[0].(*Element)
	if !ok {
		return nil, fmt.Errorf("argument is %T, not a fake element", args[0])
	}
	return el.OwnText, nil
}
