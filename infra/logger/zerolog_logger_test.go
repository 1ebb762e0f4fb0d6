package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withOptions(t *testing.T, opts Options) {
	t.Helper()
	require.NoError(t, Configure(opts))
	t.Cleanup(func() { _ = Configure(Options{Level: "info"}) })
}

func TestZerologLoggerMethods(t *testing.T) {
	assert.NoError(t, os.Setenv("APP_ENV", "dev"))
	defer func() { assert.NoError(t, os.Unsetenv("APP_ENV")) }()
	var buf bytes.Buffer
	withOptions(t, Options{Level: "debug", Output: &buf})
	l := NewZerologLogger("test")
	require.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Infow("info", map[string]any{"rope": 80.0})
	l.Warnf("warn")
	l.Errorf("error")
	assert.Contains(t, buf.String(), "info test")
}

func TestZerologLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	withOptions(t, Options{Level: "info", Format: "json", Output: &buf})
	l := New("optimizer")
	l.Debugf("hidden")
	l.Infow("optimum found", map[string]any{"optimum": 21.6, "cavers": 4})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "optimizer", entry["component"])
	assert.Equal(t, "optimum found", entry["message"])
	assert.Equal(t, 21.6, entry["optimum"])
	assert.Equal(t, float64(4), entry["cavers"])
}

func TestConfigure_Invalid(t *testing.T) {
	assert.Error(t, Configure(Options{Level: "loud"}))
	assert.Error(t, Configure(Options{Format: "xml"}))
}
