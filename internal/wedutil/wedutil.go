// Package wedutil knows how the wed editor exposes its state to the page.
package wedutil

import (
	"github.com/pkg/errors"
	"github.com/tebeka/selenium"

	"github.com/keisetsu/wed/internal/browser"
)

const (
	// PlaceholderClass marks placeholder elements in the editor's GUI tree.
	PlaceholderClass = "_placeholder"

	// CaretOwnerClass is set by the editor on the element holding the caret.
	CaretOwnerClass = "_owns_caret"

	// OriginObjectID is the id of the fixed marker injected after load.
	OriginObjectID = "origin-object"
)

// LoadURL returns the address of the editor in test mode, optionally
// opening file.
func LoadURL(server, file string) string {
	u := server + "?mode=test"
	if file != "" {
		u += "&file=" + file
	}
	return u
}

const editorReadyScript = `
return window.wed_editor !== undefined &&
  window.wed_editor.$gui_root !== undefined &&
  window.wed_editor.$gui_root.closest("body").length > 0;
`

// WaitForEditor waits until the editor has attached its GUI to the page.
func WaitForEditor(util *browser.Util) error {
	if err := util.WaitForScript(editorReadyScript); err != nil {
		return errors.Wrap(err, "editor never became ready")
	}
	return nil
}

const caretInScript = `
var el = arguments[0];
return el.classList.contains(arguments[1]) ||
  el.querySelector("." + arguments[1]) !== null;
`

// WaitForCaretToBeIn waits until el, or one of its descendants, owns the
// caret.
func WaitForCaretToBeIn(util *browser.Util, el selenium.WebElement) error {
	if err := util.WaitForScript(caretInScript, el, CaretOwnerClass); err != nil {
		return errors.Wrap(err, "caret never moved into the clicked element")
	}
	return nil
}

const editorFocusScript = `
return window.document.activeElement === wed_editor._$input_field[0];
`

// WaitForEditorFocus waits until the editor's input field is the active
// element of the document.
func WaitForEditorFocus(util *browser.Util) error {
	if err := util.WaitForScript(editorFocusScript); err != nil {
		return errors.Wrap(err, "editor pane never got the focus")
	}
	return nil
}

const originObjectScript = `
jQuery("body").append(
  '<div id="` + OriginObjectID + `" ' +
  'style="position: fixed; top: 0px; left: 0px; z-index: -10;"/>');
`

// InjectOriginObject appends the fixed marker at the window origin and
// returns it. Element coordinates reported by some drivers are only
// usable relative to it.
func InjectOriginObject(util *browser.Util) (selenium.WebElement, error) {
	if _, err := util.Driver.ExecuteScript(originObjectScript, []interface{}{}); err != nil {
		return nil, errors.Wrap(err, "injecting origin object")
	}
	el, err := util.Driver.FindElement(selenium.ByID, OriginObjectID)
	if err != nil {
		return nil, errors.Wrap(err, "finding origin object")
	}
	return el, nil
}

// DisableBeforeUnload keeps the editor from prompting when the page is
// left with unsaved changes.
func DisableBeforeUnload(util *browser.Util) error {
	_, err := util.Driver.ExecuteScript("window.onbeforeunload = undefined;", []interface{}{})
	return errors.Wrap(err, "clearing onbeforeunload")
}
