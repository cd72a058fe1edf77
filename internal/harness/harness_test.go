package harness

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"

	"github.com/keisetsu/wed/internal/browser/browsertest"
	"github.com/keisetsu/wed/internal/config"
)

func fakeDialer(d *browsertest.Driver, calls *int) Dialer {
	return func(caps selenium.Capabilities, urlPrefix string) (selenium.WebDriver, error) {
		*calls++
		return d, nil
	}
}

func TestCapabilities_HeadlessChrome(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Headless = true

	caps := Capabilities(cfg)

	assert.Equal(t, "chrome", caps["browserName"])
	opts, ok := caps[chrome.CapabilitiesKey].(chrome.Capabilities)
	require.True(t, ok)
	assert.Contains(t, opts.Args, "--headless")
}

func TestCapabilities_Firefox(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Browser = "firefox"

	caps := Capabilities(cfg)

	assert.Equal(t, "firefox", caps["browserName"])
	opts, ok := caps[firefox.CapabilitiesKey].(firefox.Capabilities)
	require.True(t, ok)
	assert.Empty(t, opts.Args)
}

func TestConnect_SetsAsyncScriptTimeout(t *testing.T) {
	d := browsertest.NewDriver()
	calls := 0

	wd, err := Connect(config.NewConfig(), fakeDialer(d, &calls), nil)
	require.NoError(t, err)
	assert.Same(t, d, wd)
	assert.Equal(t, 10*time.Second, d.AsyncScriptTimeout())
}

func TestConnect_DialError(t *testing.T) {
	dial := func(selenium.Capabilities, string) (selenium.WebDriver, error) {
		return nil, errors.New("connection refused")
	}

	_, err := Connect(config.NewConfig(), dial, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.DefaultWebDriverURL)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSuite_StartIsIdempotent(t *testing.T) {
	d := browsertest.NewDriver()
	calls := 0
	s, err := NewSuite(config.NewConfig(), fakeDialer(d, &calls), nil)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	require.NoError(t, s.Start())

	assert.Equal(t, 1, calls)
	assert.Same(t, d, s.Driver())
}

func TestSuite_UtilBeforeStart(t *testing.T) {
	s, err := NewSuite(config.NewConfig(), fakeDialer(browsertest.NewDriver(), new(int)), nil)
	require.NoError(t, err)

	_, err = s.Util()
	require.Error(t, err)
}

func TestSuite_StopQuitsOnce(t *testing.T) {
	d := browsertest.NewDriver()
	s, err := NewSuite(config.NewConfig(), fakeDialer(d, new(int)), nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())

	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())

	assert.True(t, d.Quitted())
	assert.Nil(t, s.Driver())
}

func TestNewSuite_RejectsInvalidConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Browser = "lynx"

	_, err := NewSuite(cfg, nil, nil)
	require.Error(t, err)
}

func TestScenarioContext_Fail(t *testing.T) {
	ctx := NewScenarioContext("scroll")
	assert.False(t, ctx.Failed())

	ctx.Fail()
	assert.True(t, ctx.Failed())
}

func TestScenarioContext_CleanupRunsInReverseOnce(t *testing.T) {
	ctx := NewScenarioContext("scroll")
	var order []int
	ctx.AddCleanup(func() error { order = append(order, 1); return nil })
	ctx.AddCleanup(func() error { order = append(order, 2); return nil })

	require.NoError(t, ctx.Cleanup())
	require.NoError(t, ctx.Cleanup())

	assert.Equal(t, []int{2, 1}, order)
}

func TestScenarioContext_CleanupCollectsErrors(t *testing.T) {
	ctx := NewScenarioContext("scroll")
	ctx.AddCleanup(func() error { return errors.New("first") })
	ctx.AddCleanup(func() error { return nil })
	ctx.AddCleanup(func() error { return errors.New("second") })

	err := ctx.Cleanup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first")
	assert.Contains(t, err.Error(), "second")
}
