package features_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keisetsu/wed/features"
	"github.com/keisetsu/wed/internal/parser"
	"github.com/keisetsu/wed/internal/steps"
)

func TestEmbeddedFeatures_UseDefinedSteps(t *testing.T) {
	files, err := parser.ParseFS(features.FS, []string{"."})
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		require.NotEmpty(t, f.Scenarios, f.URI)
		for _, sc := range f.Scenarios {
			for _, st := range sc.Steps {
				_, ok := steps.Match(st.Text)
				assert.True(t, ok, "%s:%d %s", f.URI, st.Line, st.Text)
			}
		}
	}
}

func TestEmbeddedFeatures_CoverCatalog(t *testing.T) {
	files, err := parser.ParseFS(features.FS, []string{"."})
	require.NoError(t, err)

	used := map[string]bool{}
	for _, f := range files {
		for _, sc := range f.Scenarios {
			for _, st := range sc.Steps {
				if def, ok := steps.Match(st.Text); ok {
					used[def.Pattern] = true
				}
			}
		}
	}

	for _, def := range steps.Catalog() {
		assert.True(t, used[def.Pattern], "no feature uses %s", def.Pattern)
	}
}
