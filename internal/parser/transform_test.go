package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transform(t *testing.T, uri, content string) *ParsedFile {
	t.Helper()
	doc, err := Parse(uri, []byte(content))
	require.NoError(t, err)
	return Transform(doc)
}

func TestTransform_FeatureNameAndTags(t *testing.T) {
	pf := transform(t, "features/focus.feature", `@editor
Feature: Focus
  Scenario: focus
    Given the user loads the page
`)

	assert.Equal(t, "Focus", pf.Name)
	assert.Equal(t, []string{"@editor"}, pf.Tags)
}

func TestTransform_NamelessFeatureUsesFilename(t *testing.T) {
	pf := transform(t, "features/focus.feature", `Feature:
  Scenario: focus
    Given the user loads the page
`)

	assert.Equal(t, "focus", pf.Name)
}

func TestTransform_StepsAndLines(t *testing.T) {
	pf := transform(t, "scroll.feature", `Feature: Scrolling

  Scenario: scrolling
    Given the user loads the page
    When the user scrolls the editor pane down
    Then the window's contents does not move.
`)

	require.Len(t, pf.Scenarios, 1)
	sc := pf.Scenarios[0]
	assert.Equal(t, "scrolling", sc.Name)
	assert.Equal(t, 3, sc.Line)
	assert.Equal(t, []ParsedStep{
		{Keyword: "Given", Text: "the user loads the page", Line: 4},
		{Keyword: "When", Text: "the user scrolls the editor pane down", Line: 5},
		{Keyword: "Then", Text: "the window's contents does not move.", Line: 6},
	}, sc.Steps)
}

func TestTransform_BackgroundStepsPrepended(t *testing.T) {
	pf := transform(t, "click.feature", `Feature: Clicking
  Background:
    Given a document containing a top level element, a p element, and text.

  Scenario: first
    When the user clicks on text that does not contain "Abcd"

  Scenario: second
    When the user clicks on the start label of an element that does not contain "Abcd"
`)

	require.Len(t, pf.Scenarios, 2)
	for _, sc := range pf.Scenarios {
		require.Len(t, sc.Steps, 2)
		assert.Equal(t, "a document containing a top level element, a p element, and text.", sc.Steps[0].Text)
		assert.Equal(t, 3, sc.Steps[0].Line)
	}
}

func TestTransform_ScenarioTagsIncludeFeatureTags(t *testing.T) {
	pf := transform(t, "f.feature", `@wed
Feature: F
  @slow @firefox
  Scenario: s
    Given wait 2 seconds
`)

	require.Len(t, pf.Scenarios, 1)
	assert.Equal(t, []string{"@wed", "@slow", "@firefox"}, pf.Scenarios[0].Tags)
}

func TestTransform_OutlineExpandsRows(t *testing.T) {
	pf := transform(t, "wait.feature", `Feature: Waiting
  Scenario Outline: waiting
    Given wait <n> seconds

    Examples:
      | n |
      | 1 |
      | 2 |
`)

	require.Len(t, pf.Scenarios, 2)
	assert.Equal(t, "wait 1 seconds", pf.Scenarios[0].Steps[0].Text)
	assert.Equal(t, 7, pf.Scenarios[0].Line)
	assert.Equal(t, "wait 2 seconds", pf.Scenarios[1].Steps[0].Text)
	assert.Equal(t, 8, pf.Scenarios[1].Line)
	assert.Equal(t, 3, pf.Scenarios[1].Steps[0].Line)
}

func TestTransform_RuleScenarios(t *testing.T) {
	pf := transform(t, "rule.feature", `Feature: Rules
  Rule: focus
    Scenario: focus
      Given the user loads the page
      Then the editor pane has focus
`)

	require.Len(t, pf.Scenarios, 1)
	assert.Equal(t, 3, pf.Scenarios[0].Line)
	assert.Equal(t, 4, pf.Scenarios[0].Steps[0].Line)
	assert.Equal(t, "Then", pf.Scenarios[0].Steps[1].Keyword)
}

func TestFilenameWithoutExt(t *testing.T) {
	assert.Equal(t, "scroll", filenameWithoutExt("features/scroll.feature"))
	assert.Equal(t, "plain", filenameWithoutExt("plain"))
}
