// Package steps implements the godog step definitions that drive the wed
// editor through a WebDriver session.
//
// Steps hang off a *Scenario, which is created fresh for every scenario by
// Library.InitializeScenario. Steps of one scenario may hand values to
// later steps through the Scenario fields (scroll offsets, the element
// under test); nothing survives the scenario except the browser session,
// which belongs to the harness.
package steps

import (
	"regexp"
)

// Definition binds a step phrase to its implementation.
type Definition struct {
	Pattern string
	Doc     string

	re   *regexp.Regexp
	bind func(*Scenario) interface{}
}

var definitions []Definition

// addStep registers a definition. bind returns the method value godog
// calls for a given scenario.
func addStep(pattern, doc string, bind func(*Scenario) interface{}) {
	definitions = append(definitions, Definition{
		Pattern: pattern,
		Doc:     doc,
		re:      regexp.MustCompile(pattern),
		bind:    bind,
	})
}

// Catalog returns every registered definition in registration order.
func Catalog() []Definition {
	return append([]Definition(nil), definitions...)
}

// Match returns the first definition whose pattern matches text.
func Match(text string) (Definition, bool) {
	for _, d := range definitions {
		if d.re.MatchString(text) {
			return d, true
		}
	}
	return Definition{}, false
}

// Regexp returns the compiled pattern.
func (d Definition) Regexp() *regexp.Regexp {
	return d.re
}
