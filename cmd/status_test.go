package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keisetsu/wed/internal/history"
)

func runStatus(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunStatus(&buf, ""))
	return buf.String()
}

func TestStatus_NoRuns(t *testing.T) {
	inTempDir(t)
	runInit(t)

	assert.Equal(t, "Runs: 0\n", runStatus(t))
}

func TestStatus_LatestRun(t *testing.T) {
	inTempDir(t)
	runInit(t)
	recordRun(t, history.StatusPassed, passed("a"))
	latest := recordRun(t, history.StatusFailed, passed("a"), passed("b"), failed("c", "boom"))

	out := runStatus(t)

	assert.Contains(t, out, "Runs: 2")
	assert.Contains(t, out, "Latest: "+latest[:8])
	assert.Contains(t, out, "Status: failed")
	assert.Contains(t, out, "passed    2")
	assert.Contains(t, out, "failed    1")
	assert.NotContains(t, out, "other")
}

func TestStatus_RequiresInit(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	assert.Error(t, RunStatus(&buf, ""))
}
