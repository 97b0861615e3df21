package service

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/unix"
)

// OSDirectory reads the live process table. The calling process is never
// listed, so a fink stop never signals itself.
type OSDirectory struct {
	self int32
}

// NewOSDirectory returns a directory over the host process table.
func NewOSDirectory() *OSDirectory {
	return &OSDirectory{self: int32(os.Getpid())}
}

// ListMatching takes a fresh snapshot of the process table on every call.
// Processes that exit or hide their command line while being read are skipped.
func (d *OSDirectory) ListMatching(markers ...string) ([]Process, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to read process table: %w", err)
	}

	var matched []Process
	for _, p := range procs {
		if p.Pid == d.self {
			continue
		}
		cmdline, err := p.Cmdline()
		if err != nil || cmdline == "" {
			continue
		}
		if Matches(cmdline, markers...) {
			matched = append(matched, Process{PID: p.Pid, Cmdline: cmdline})
		}
	}
	return matched, nil
}

// Signal sends sig to pid, then to every process below it. fink start only
// forwards SIGINT and SIGTERM to its job, so a signal it cannot catch or
// forward (KILL, HUP) would otherwise leave the job running without a parent.
// ESRCH means the process exited between discovery and signalling, which is
// treated as success.
func (d *OSDirectory) Signal(pid int32, sig syscall.Signal) error {
	tree := descendants(pid)

	if err := kill(pid, sig); err != nil {
		return err
	}
	var errs []error
	for _, child := range tree {
		errs = append(errs, kill(child, sig))
	}
	return errors.Join(errs...)
}

func kill(pid int32, sig syscall.Signal) error {
	err := unix.Kill(int(pid), sig)
	if err == nil || errors.Is(err, unix.ESRCH) {
		return nil
	}
	return fmt.Errorf("failed to send %s to %d: %w", unix.SignalName(sig), pid, err)
}

// descendants lists the processes below pid, parents before children. It is
// read before any signal is sent, while the tree is still attached to pid.
func descendants(pid int32) []int32 {
	p, err := process.NewProcess(pid)
	if err != nil {
		return nil
	}
	children, err := p.Children()
	if err != nil {
		return nil
	}

	var out []int32
	for _, c := range children {
		out = append(out, c.Pid)
		out = append(out, descendants(c.Pid)...)
	}
	return out
}
