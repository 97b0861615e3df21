package env

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

// Stdio is the set of streams attached to a child process.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run starts argv with environ and the given streams, forwards SIGINT and
// SIGTERM to it, and waits. It returns the child's exit code; a child killed
// by a signal reports 128+signal like a shell would. The error is only set
// when the child could not be started.
func Run(argv []string, environ []string, stdio Stdio) (int, error) {
	if len(argv) == 0 {
		return 1, errors.New("no command to run")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = environ
	cmd.Stdin = stdio.In
	cmd.Stdout = stdio.Out
	cmd.Stderr = stdio.Err

	// Registered before Start so a signal arriving while the child spawns is
	// never handled by the default action.
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	if err := cmd.Start(); err != nil {
		signal.Stop(sigs)
		return 127, fmt.Errorf("failed to start %s: %w", argv[0], err)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()
	signal.Stop(sigs)
	close(done)

	return exitCode(err), nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 1
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return exitErr.ExitCode()
}
