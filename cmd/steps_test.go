package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keisetsu/wed/internal/steps"
)

func TestSteps_ListsCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunSteps(&buf))
	out := buf.String()

	for _, def := range steps.Catalog() {
		assert.Contains(t, out, def.Pattern)
		assert.Contains(t, out, def.Doc)
	}
}
