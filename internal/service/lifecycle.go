package service

import (
	"errors"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/astrolabsoftware/fink-cli/internal/registry"
	"github.com/astrolabsoftware/fink-cli/internal/util"
)

// StopAll is the service name that stops every running service.
const StopAll = "all"

// Lifecycle lists and stops running services. It holds no state between calls:
// every operation reads the process table again.
type Lifecycle struct {
	Dir      ProcessDirectory
	Registry *registry.Registry
	Log      *zap.Logger
}

// NewLifecycle creates a lifecycle manager. A nil logger disables the journal.
func NewLifecycle(dir ProcessDirectory, reg *registry.Registry, log *zap.Logger) *Lifecycle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Lifecycle{Dir: dir, Registry: reg, Log: log}
}

// List returns the running fink start processes, narrowed to one service when
// name is not empty.
func (l *Lifecycle) List(name string) ([]Process, error) {
	marker := OrchestratorMarker
	if name != "" {
		marker = ServiceMarker(name)
	}
	return l.Dir.ListMatching(marker)
}

// Stop signals the processes of one service, or of every service when name is
// "all". Finding nothing is reported and is not an error. Signal failures do
// not interrupt the remaining steps; they are joined into the returned error.
func (l *Lifecycle) Stop(name string, sig syscall.Signal) ([]Process, error) {
	if name == StopAll {
		return l.stopAll(sig)
	}

	spec, err := l.Registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	var stopped []Process
	var errs []error

	if spec.Connector != "" {
		procs, err := l.signalMatching(sig, spec.Connector, spec.ScriptName())
		stopped = append(stopped, procs...)
		errs = append(errs, err)
		if len(procs) == 0 && err == nil {
			util.Log("No %s connection to stop for %s", spec.Connector, name)
		}
	}

	procs, err := l.signalMatching(sig, ServiceMarker(name))
	stopped = append(stopped, procs...)
	errs = append(errs, err)
	if len(procs) == 0 && err == nil {
		util.Log("No such service running: %s", name)
	}

	return stopped, errors.Join(errs...)
}

func (l *Lifecycle) stopAll(sig syscall.Signal) ([]Process, error) {
	var stopped []Process
	var errs []error

	// Connections are torn down on their own first, even though the general
	// pass below may reach the same processes again.
	for _, spec := range l.Registry.Connectors() {
		procs, err := l.signalMatching(sig, spec.Connector, spec.ScriptName())
		stopped = append(stopped, procs...)
		errs = append(errs, err)
	}

	procs, err := l.signalMatching(sig, OrchestratorMarker)
	stopped = append(stopped, procs...)
	errs = append(errs, err)

	joined := errors.Join(errs...)
	if len(stopped) == 0 && joined == nil {
		util.Log("Nothing to stop")
	}
	return stopped, joined
}

// signalMatching lists the processes matching markers and signals each one.
// It returns the processes that were signalled successfully.
func (l *Lifecycle) signalMatching(sig syscall.Signal, markers ...string) ([]Process, error) {
	procs, err := l.Dir.ListMatching(markers...)
	if err != nil {
		return nil, err
	}

	var signalled []Process
	var errs []error
	for _, p := range procs {
		if err := l.Dir.Signal(p.PID, sig); err != nil {
			util.Warn("%v", err)
			l.Log.Warn("signal failed", zap.Int32("pid", p.PID), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		util.Log("Sent %s to %d (%s)", unix.SignalName(sig), p.PID, p.Cmdline)
		l.Log.Info("signal sent",
			zap.Int32("pid", p.PID),
			zap.String("signal", unix.SignalName(sig)),
			zap.String("cmdline", p.Cmdline),
			zap.Strings("markers", markers),
		)
		signalled = append(signalled, p)
	}
	return signalled, errors.Join(errs...)
}
