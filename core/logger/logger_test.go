package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetWriterForAll(&buf)
	t.Cleanup(func() {
		SetWriterForAll(os.Stdout)
		SetVerbose(false)
	})
	return &buf
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DEBUG.String())
	assert.Equal(t, "FATAL", FATAL.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestDebugRequiresVerbose(t *testing.T) {
	buf := captureLogs(t)

	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetVerbose(true)
	assert.True(t, IsVerbose())
	Debug("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), "DEBUG")
}

func TestLevelsWriteFormattedMessages(t *testing.T) {
	buf := captureLogs(t)

	Info("generated %s", "src/python/numpy.go")
	Warn("skipping %q", "foo")
	Error("failed: %v", "boom")

	out := buf.String()
	assert.Contains(t, out, "generated src/python/numpy.go")
	assert.Contains(t, out, `skipping "foo"`)
	assert.Contains(t, out, "failed: boom")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "ERROR")
}

func TestAddWriterForAll(t *testing.T) {
	buf := captureLogs(t)
	var extra bytes.Buffer
	AddWriterForAll(&extra)

	Info("tee")
	assert.Contains(t, buf.String(), "tee")
	assert.Contains(t, extra.String(), "tee")
}
