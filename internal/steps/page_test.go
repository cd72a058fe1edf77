package steps

import (
	"sync"
	"testing"
	"time"

	"github.com/tebeka/selenium"
	"go.uber.org/zap"

	"github.com/keisetsu/wed/internal/browser"
	"github.com/keisetsu/wed/internal/browser/browsertest"
	"github.com/keisetsu/wed/internal/config"
	"github.com/keisetsu/wed/internal/harness"
	"github.com/keisetsu/wed/internal/wedutil"
)

var testTimeouts = config.Timeouts{
	Editor: 50 * time.Millisecond,
	Wait:   100 * time.Millisecond,
	Poll:   2 * time.Millisecond,
}

// page simulates the kitchen sink page behind a fake driver.
type page struct {
	driver *browsertest.Driver

	mu          sync.Mutex
	width       int
	height      int
	top         int
	left        int
	paneScroll  int
	ready       bool
	focused     bool
	caretIn     bool
	editorTop   int
	bottom      int
	sizeApplies bool
}

func newPage() *page {
	p := &page{
		driver:      browsertest.NewDriver(),
		width:       1024,
		height:      768,
		ready:       true,
		focused:     true,
		caretIn:     true,
		editorTop:   300,
		bottom:      900,
		sizeApplies: true,
	}
	d := p.driver

	d.OnScript("[window.outerWidth, window.outerHeight]", func([]interface{}) (interface{}, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		return []interface{}{float64(p.width), float64(p.height)}, nil
	})
	d.OnScript("window.outerWidth === arguments[0]", func(args []interface{}) (interface{}, error) {
		last, _ := d.LastSize()
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.sizeApplies {
			p.width, p.height = last.Width, last.Height
		}
		return p.width == args[0].(int) && p.height == args[1].(int), nil
	})
	d.OnScript("pageYOffset", func([]interface{}) (interface{}, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		return float64(p.top), nil
	})
	d.OnScript("pageXOffset", func([]interface{}) (interface{}, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		return float64(p.left), nil
	})
	d.OnScript("$gui_root.closest", func([]interface{}) (interface{}, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.ready, nil
	})
	d.OnScript("_$input_field", func([]interface{}) (interface{}, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.focused, nil
	})
	d.OnScript("classList.contains", func([]interface{}) (interface{}, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.caretIn, nil
	})
	d.OnScript("Node.TEXT_NODE", browsertest.OwnTextOf)
	d.OnScript(wedutil.OriginObjectID, func([]interface{}) (interface{}, error) {
		d.AddElement(selenium.ByID, wedutil.OriginObjectID, browsertest.NewElement("origin", ""))
		return nil, nil
	})

	d.OnAsyncScript("offset().top", func([]interface{}) (interface{}, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.top = p.editorTop
		return true, nil
	})
	d.OnAsyncScript("document.body.scrollHeight", func([]interface{}) (interface{}, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.top = p.bottom
		return true, nil
	})
	d.OnAsyncScript("scrollTop(top + by)", func(args []interface{}) (interface{}, error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.paneScroll += args[0].(int)
		return true, nil
	})
	return p
}

func (p *page) set(fn func(p *page)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p)
}

func (p *page) editorPaneScroll() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paneScroll
}

// newTestScenario returns a scenario attached to p.
func newTestScenario(t *testing.T, p *page) *Scenario {
	t.Helper()
	s := newScenario(config.NewConfig(), testTimeouts, zap.NewNop())
	s.attach(browser.NewUtil(p.driver, testTimeouts.Wait, testTimeouts.Poll, nil),
		harness.NewScenarioContext(t.Name()))
	return s
}
