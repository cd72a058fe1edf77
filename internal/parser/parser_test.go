package parser

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleScenario(t *testing.T) {
	content := []byte(`Feature: Scrolling
  Scenario: scrolling the editor pane
    Given the user loads the page
    When the user scrolls the editor pane down
    Then the window's contents does not move.
`)
	doc, err := Parse("scroll.feature", content)
	require.NoError(t, err)
	assert.Equal(t, "scroll.feature", doc.URI)
	assert.Equal(t, "Scrolling", doc.Gherkin.Feature.Name)
	require.Len(t, doc.Pickles, 1)
	assert.Len(t, doc.Pickles[0].Steps, 3)
}

func TestParse_SyntaxError(t *testing.T) {
	content := []byte(`this is not gherkin
Feature: Broken
  Scenario: one
    Given a step
`)
	_, err := Parse("broken.feature", content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.feature")
}

func TestParse_Empty(t *testing.T) {
	doc, err := Parse("empty.feature", []byte(""))
	require.NoError(t, err)
	assert.Nil(t, doc.Gherkin.Feature)
	assert.Empty(t, doc.Pickles)
}

func TestParseFS_WalksDirectories(t *testing.T) {
	fsys := fstest.MapFS{
		"features/a.feature":        {Data: []byte("Feature: A\n  Scenario: a\n    Given the user loads the page\n")},
		"features/nested/b.feature": {Data: []byte("Feature: B\n  Scenario: b\n    Given an open document\n")},
		"features/notes.txt":        {Data: []byte("not a feature")},
	}

	files, err := ParseFS(fsys, []string{"features"})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "features/a.feature", files[0].URI)
	assert.Equal(t, "features/nested/b.feature", files[1].URI)
}

func TestParseFS_SingleFileOnce(t *testing.T) {
	fsys := fstest.MapFS{
		"features/a.feature": {Data: []byte("Feature: A\n  Scenario: a\n    Given the user loads the page\n")},
	}

	files, err := ParseFS(fsys, []string{"features/a.feature", "features"})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestParseFS_MissingPath(t *testing.T) {
	_, err := ParseFS(fstest.MapFS{}, []string{"nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nope"`)
}
