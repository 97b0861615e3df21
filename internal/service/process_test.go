package service

import (
	"os"
	"os/exec"
	"slices"
	"syscall"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

func TestNewOSDirectory(t *testing.T) {
	d := NewOSDirectory()

	if d.self != int32(os.Getpid()) {
		t.Errorf("self = %d, want %d", d.self, os.Getpid())
	}
}

func TestOSDirectory_ListAndSignal(t *testing.T) {
	// Use a long-running process with a distinctive command line
	cmd := exec.Command("sleep", "31.4159")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start sleep: %v", err)
	}
	defer cmd.Process.Kill()

	d := NewOSDirectory()
	pid := int32(cmd.Process.Pid)

	procs, err := d.ListMatching("sleep 31.4159")
	if err != nil {
		t.Fatalf("ListMatching() error = %v", err)
	}
	found := false
	for _, p := range procs {
		if p.PID == pid {
			found = true
		}
	}
	if !found {
		t.Fatalf("ListMatching() = %v, want pid %d", procs, pid)
	}

	if err := d.Signal(pid, syscall.SIGTERM); err != nil {
		t.Fatalf("Signal() error = %v", err)
	}
	cmd.Wait()

	// The process is gone: signalling it again is a no-op
	if err := d.Signal(pid, syscall.SIGTERM); err != nil {
		t.Errorf("Signal() on exited process error = %v, want nil", err)
	}
}

func TestOSDirectory_ExcludesSelf(t *testing.T) {
	d := NewOSDirectory()

	procs, err := d.ListMatching()
	if err != nil {
		t.Fatalf("ListMatching() error = %v", err)
	}
	for _, p := range procs {
		if p.PID == d.self {
			t.Errorf("ListMatching() included the calling process %d", p.PID)
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		cmdline string
		markers []string
		want    bool
	}{
		{"orchestrator", "/usr/local/bin/fink start raw2science -c /etc/fink.conf", []string{"fink start"}, true},
		{"service", "fink start raw2science --night 20240101", []string{"fink start raw2science"}, true},
		{"service at end", "fink start raw2science", []string{"fink start raw2science"}, true},
		{"longer service name", "fink start raw2science_reprocess", []string{"fink start raw2science"}, false},
		{"longer then exact", "fink start raw2science_reprocess; fink start raw2science", []string{"fink start raw2science"}, true},
		{"connector", "java -cp hbase-client.jar /opt/fink/bin/raw2science.py", []string{"hbase", "raw2science.py"}, true},
		{"connector without script", "java -cp hbase-client.jar other.py", []string{"hbase", "raw2science.py"}, false},
		{"other verb", "fink stop raw2science", []string{"fink start"}, false},
		{"no markers", "anything", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.cmdline, tt.markers...); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.cmdline, tt.markers, got, tt.want)
			}
		})
	}
}

func TestServiceName(t *testing.T) {
	tests := []struct {
		cmdline string
		want    string
	}{
		{"/opt/fink/bin/fink start stream2raw --simulator", "stream2raw"},
		{"fink start", ""},
		{"spark-submit raw2science.py", ""},
	}

	for _, tt := range tests {
		if got := ServiceName(tt.cmdline); got != tt.want {
			t.Errorf("ServiceName(%q) = %q, want %q", tt.cmdline, got, tt.want)
		}
	}
}

// gone reports whether pid has exited. A killed orphan may stay a zombie until
// init reaps it, which counts as exited.
func gone(pid int32) bool {
	p, err := process.NewProcess(pid)
	if err != nil {
		return true
	}
	status, err := p.Status()
	return err != nil || slices.Contains(status, process.Zombie)
}

func TestOSDirectory_SignalReachesChildren(t *testing.T) {
	// sh stays the parent of sleep, the way fink start stays the parent of
	// spark-submit. SIGKILL cannot be forwarded by the parent.
	cmd := exec.Command("sh", "-c", "sleep 41.5 & wait")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start sh: %v", err)
	}
	defer cmd.Process.Kill()
	pid := int32(cmd.Process.Pid)

	var child int32
	for deadline := time.Now().Add(5 * time.Second); child == 0 && time.Now().Before(deadline); {
		if tree := descendants(pid); len(tree) > 0 {
			child = tree[0]
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if child == 0 {
		t.Fatal("sleep child never appeared")
	}
	defer syscall.Kill(int(child), syscall.SIGKILL)

	if err := NewOSDirectory().Signal(pid, syscall.SIGKILL); err != nil {
		t.Fatalf("Signal() error = %v", err)
	}
	cmd.Wait()

	deadline := time.Now().Add(5 * time.Second)
	for !gone(child) {
		if time.Now().After(deadline) {
			t.Fatalf("child %d still running after its parent was killed", child)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestDescendants_NoChildren(t *testing.T) {
	cmd := exec.Command("sleep", "27.1828")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start sleep: %v", err)
	}
	defer func() {
		cmd.Process.Kill()
		cmd.Wait()
	}()

	if tree := descendants(int32(cmd.Process.Pid)); len(tree) != 0 {
		t.Errorf("descendants() = %v, want none", tree)
	}
}
