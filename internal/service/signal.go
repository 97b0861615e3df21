package service

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/astrolabsoftware/fink-cli/internal/config"
)

// StopSignalEnv overrides the signal sent by fink stop.
const StopSignalEnv = "FINK_STOP_SIGNAL"

// StopSignal returns the signal named by FINK_STOP_SIGNAL, or SIGTERM when unset.
func StopSignal(getenv func(string) string) (syscall.Signal, error) {
	raw := strings.TrimSpace(getenv(StopSignalEnv))
	if raw == "" {
		return syscall.SIGTERM, nil
	}
	sig, err := ParseSignal(raw)
	if err != nil {
		return 0, &config.ConfigurationError{Key: StopSignalEnv, Msg: fmt.Sprintf("%s: %v", StopSignalEnv, err)}
	}
	return sig, nil
}

// ParseSignal accepts a signal number ("9") or name, with or without the SIG
// prefix ("KILL", "sigint").
func ParseSignal(s string) (syscall.Signal, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("invalid signal number %d", n)
		}
		return syscall.Signal(n), nil
	}
	name := strings.ToUpper(s)
	if !strings.HasPrefix(name, "SIG") {
		name = "SIG" + name
	}
	sig := unix.SignalNum(name)
	if sig == 0 {
		return 0, fmt.Errorf("unknown signal %q", s)
	}
	return sig, nil
}
