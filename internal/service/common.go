// Package service discovers and stops running pipeline services through the
// host process table.
package service

import (
	"strings"
	"syscall"
)

// OrchestratorMarker appears on the command line of every fink start process.
const OrchestratorMarker = "fink start"

// Process is one entry of the host process table.
type Process struct {
	PID     int32
	Cmdline string
}

// ProcessDirectory is the narrow view of the process table the lifecycle
// manager needs. The OS implementation is OSDirectory; tests use a fake.
type ProcessDirectory interface {
	// ListMatching returns the processes whose command line contains every
	// marker, according to Matches.
	ListMatching(markers ...string) ([]Process, error)
	// Signal delivers sig to pid and the processes it spawned. A process that
	// already exited is not an error.
	Signal(pid int32, sig syscall.Signal) error
}

// ServiceMarker returns the command line fragment identifying a running service.
func ServiceMarker(name string) string {
	return OrchestratorMarker + " " + name
}

// Matches reports whether cmdline contains every marker. A marker only
// matches when it is not immediately followed by a letter, digit or
// underscore, so "fink start raw2science" does not match a running
// raw2science_reprocess.
func Matches(cmdline string, markers ...string) bool {
	for _, m := range markers {
		if !containsToken(cmdline, m) {
			return false
		}
	}
	return true
}

func containsToken(s, marker string) bool {
	if marker == "" {
		return true
	}
	for from := 0; from <= len(s)-len(marker); {
		i := strings.Index(s[from:], marker)
		if i < 0 {
			return false
		}
		end := from + i + len(marker)
		if end == len(s) || !isWordByte(s[end]) {
			return true
		}
		from += i + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// ServiceName extracts the service name following the orchestrator marker,
// or "" when cmdline is not a fink start command.
func ServiceName(cmdline string) string {
	i := strings.Index(cmdline, OrchestratorMarker+" ")
	if i < 0 {
		return ""
	}
	fields := strings.Fields(cmdline[i+len(OrchestratorMarker):])
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
