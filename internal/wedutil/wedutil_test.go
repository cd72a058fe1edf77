package wedutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"

	"github.com/keisetsu/wed/internal/browser"
	"github.com/keisetsu/wed/internal/browser/browsertest"
)

func newUtil(d *browsertest.Driver) *browser.Util {
	return browser.NewUtil(d, 100*time.Millisecond, 5*time.Millisecond, nil)
}

func TestLoadURL(t *testing.T) {
	const server = "http://localhost:8888/build/kitchen-sink.html"

	plain := LoadURL(server, "")
	withFile := LoadURL(server, "/build/test-files/wed_test_data/source_converted.xml")

	assert.Equal(t, server+"?mode=test", plain)
	assert.Equal(t, server+"?mode=test&file=/build/test-files/wed_test_data/source_converted.xml", withFile)
	assert.NotEqual(t, plain, withFile)
}

func TestWaitForEditor(t *testing.T) {
	d := browsertest.NewDriver()
	ready := false
	d.OnScript("window.wed_editor !== undefined", func([]interface{}) (interface{}, error) {
		defer func() { ready = true }()
		return ready, nil
	})

	require.NoError(t, WaitForEditor(newUtil(d)))
}

func TestWaitForEditor_NeverReady(t *testing.T) {
	d := browsertest.NewDriver()
	d.OnScript("window.wed_editor !== undefined", browsertest.Returning(false))

	err := WaitForEditor(newUtil(d))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "editor never became ready")
}

func TestWaitForCaretToBeIn_PassesElementAndClass(t *testing.T) {
	d := browsertest.NewDriver()
	el := browsertest.NewElement("title", "")
	var got []interface{}
	d.OnScript("classList.contains", func(args []interface{}) (interface{}, error) {
		got = args
		return true, nil
	})

	require.NoError(t, WaitForCaretToBeIn(newUtil(d), el))
	require.Len(t, got, 2)
	assert.Same(t, el, got[0])
	assert.Equal(t, CaretOwnerClass, got[1])
}

func TestWaitForEditorFocus(t *testing.T) {
	d := browsertest.NewDriver()
	d.OnScript("activeElement", browsertest.Returning(false))

	err := WaitForEditorFocus(newUtil(d))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "focus")
}

func TestInjectOriginObject(t *testing.T) {
	d := browsertest.NewDriver()
	origin := browsertest.NewElement(OriginObjectID, "")
	d.OnScript(`id="origin-object"`, func([]interface{}) (interface{}, error) {
		d.AddElement(selenium.ByID, OriginObjectID, origin)
		return nil, nil
	})

	el, err := InjectOriginObject(newUtil(d))
	require.NoError(t, err)
	assert.Same(t, origin, el)
	assert.Contains(t, d.Scripts()[0], "position: fixed; top: 0px; left: 0px; z-index: -10;")
}

func TestDisableBeforeUnload(t *testing.T) {
	d := browsertest.NewDriver()

	require.NoError(t, DisableBeforeUnload(newUtil(d)))
	assert.Equal(t, []string{"window.onbeforeunload = undefined;"}, d.Scripts())
}
