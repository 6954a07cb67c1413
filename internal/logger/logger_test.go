package logger

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	t.Chdir(t.TempDir())
	l := New()

	l.Infof("starting with %d bodies", 2)
	l.Errorf("boom")
	l.Debugf("hidden")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "INFO")
	assert.Contains(t, lines[0], "starting with 2 bodies")
	assert.Contains(t, lines[1], "ERROR")
}

func TestLoggerDebugToggle(t *testing.T) {
	t.Chdir(t.TempDir())
	l := New()

	l.Debugf("before")
	l.SetDebug(true)
	l.Debugf("after")

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "DEBUG")
	assert.Contains(t, lines[0], "after")
}

func TestLoggerWritesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	l := New()
	l.Infof("persisted line")

	data, err := os.ReadFile(LogFilePath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "persisted line"))
}

func TestLinesReturnsCopy(t *testing.T) {
	t.Chdir(t.TempDir())
	l := New()
	l.Infof("one")

	lines := l.Lines()
	lines[0] = "mutated"
	assert.NotEqual(t, "mutated", l.Lines()[0])
}
