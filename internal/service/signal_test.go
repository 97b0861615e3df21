package service

import (
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrolabsoftware/fink-cli/internal/config"
)

func TestParseSignal(t *testing.T) {
	tests := map[string]syscall.Signal{
		"TERM":    syscall.SIGTERM,
		"SIGKILL": syscall.SIGKILL,
		"int":     syscall.SIGINT,
		"9":       syscall.Signal(9),
	}
	for in, want := range tests {
		got, err := ParseSignal(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"NOPE", "0", "-3"} {
		_, err := ParseSignal(bad)
		assert.Error(t, err, bad)
	}
}

func TestStopSignal(t *testing.T) {
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	sig, err := StopSignal(getenv)
	require.NoError(t, err)
	assert.Equal(t, syscall.SIGTERM, sig)

	env[StopSignalEnv] = "KILL"
	sig, err = StopSignal(getenv)
	require.NoError(t, err)
	assert.Equal(t, syscall.SIGKILL, sig)

	env[StopSignalEnv] = "SIGBOGUS"
	_, err = StopSignal(getenv)
	var cfgErr *config.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, StopSignalEnv, cfgErr.Key)
}
