package storage

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/afero"
)

// Backend creates directories on one kind of filesystem. MkdirAll must
// succeed when the directory already exists.
type Backend interface {
	Kind() string
	MkdirAll(path string) error
}

// LocalBackend creates directories on the local filesystem.
type LocalBackend struct {
	Fs afero.Fs
}

// NewLocalBackend returns a backend on the host filesystem.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{Fs: afero.NewOsFs()}
}

func (b *LocalBackend) Kind() string { return "local" }

// MkdirAll creates path and its parents.
func (b *LocalBackend) MkdirAll(path string) error {
	if err := b.Fs.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// CommandRunner runs an external command and returns its combined output.
type CommandRunner func(name string, args []string, env []string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(name string, args []string, env []string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	if env != nil {
		cmd.Env = env
	}
	return cmd.CombinedOutput()
}

// HDFSBackend creates directories through the hdfs CLI.
type HDFSBackend struct {
	Run CommandRunner
	Env []string // nil inherits the current environment
}

// NewHDFSBackend returns a backend calling `hdfs dfs`.
func NewHDFSBackend(env []string) *HDFSBackend {
	return &HDFSBackend{Run: ExecRunner, Env: env}
}

func (b *HDFSBackend) Kind() string { return "hdfs" }

// MkdirAll runs `hdfs dfs -mkdir -p path`; -p makes existing paths a no-op.
func (b *HDFSBackend) MkdirAll(path string) error {
	output, err := b.Run("hdfs", []string{"dfs", "-mkdir", "-p", path}, b.Env)
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if msg != "" {
			return fmt.Errorf("failed to create HDFS directory %s: %w\n%s", path, err, msg)
		}
		return fmt.Errorf("failed to create HDFS directory %s: %w", path, err)
	}
	return nil
}

// DefaultBackends returns the backends selectable through FS_KIND. env is
// passed to the hdfs CLI; nil inherits the current environment.
func DefaultBackends(env []string) map[string]Backend {
	return map[string]Backend{
		"local": NewLocalBackend(),
		"hdfs":  NewHDFSBackend(env),
	}
}
