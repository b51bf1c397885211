package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogger_FormatAndRouting(t *testing.T) {
	var out, errOut bytes.Buffer
	log := newLogger(zapcore.AddSync(&out), zapcore.AddSync(&errOut))

	log.Info("download started", zap.String("symbol", "AAPL"))
	log.Debug("hidden")
	log.Warn("no data")
	log.Error("write failed")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], " - INFO - ")
	assert.Contains(t, lines[0], "download started")
	assert.Contains(t, lines[0], `"symbol": "AAPL"`)
	assert.Contains(t, lines[1], " - WARN - ")
	// ISO8601 date prefix, e.g. 2024-01-02T15:04:05.000Z0700
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T`, lines[0])

	assert.Contains(t, errOut.String(), " - ERROR - ")
	assert.Contains(t, errOut.String(), "write failed")
	assert.NotContains(t, out.String(), "write failed")
}

func TestNew(t *testing.T) {
	log := New()
	assert.NotNil(t, log)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}
