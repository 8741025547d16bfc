package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	logger := newLogger("warn", "text", out)

	logger.Info("hidden")
	assert.Empty(t, out.String())

	logger.Warn("visible")
	assert.Contains(t, out.String(), "visible")
}

func TestNewLogger_JSONFormat(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	logger := newLogger("info", "json", out)

	logger.Info("message", "key", "value")
	assert.Contains(t, out.String(), `"key":"value"`)
}

func TestNewLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	logger := newLogger("bogus", "text", out)

	logger.Debug("hidden")
	assert.Empty(t, out.String())

	logger.Info("visible")
	assert.Contains(t, out.String(), "visible")
}
