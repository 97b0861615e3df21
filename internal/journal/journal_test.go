package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestOpen_EmptyPathIsNop(t *testing.T) {
	log, err := Open("", "DEBUG")

	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
}

func TestOpen_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fink.log")

	log, err := Open(path, "INFO")
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("service started", zap.String("service", "raw2science"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "service started", entry["message"])
	assert.Equal(t, "raw2science", entry["service"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "pid")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"DEBUG":    zapcore.DebugLevel,
		"info":     zapcore.InfoLevel,
		"WARN":     zapcore.WarnLevel,
		"Warning":  zapcore.WarnLevel,
		"ERROR":    zapcore.ErrorLevel,
		"CRITICAL": zapcore.ErrorLevel,
		"":         zapcore.InfoLevel,
		"verbose":  zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fink.log")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0644))

	lines, err := Tail(path, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "three"}, lines)

	lines, err = Tail(path, 0)
	require.NoError(t, err)
	assert.Len(t, lines, 3)

	_, err = Tail(filepath.Join(t.TempDir(), "missing.log"), 10)
	assert.Error(t, err)
}
