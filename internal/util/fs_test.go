package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "fink.conf")
	if err := os.WriteFile(conf, []byte("FS_KIND=local\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(conf) {
		t.Errorf("FileExists(%q) = false", conf)
	}
	if !FileExists(dir) {
		t.Errorf("FileExists(%q) = false for a directory", dir)
	}
	if FileExists(filepath.Join(dir, "fink.conf.distribution")) {
		t.Error("FileExists() = true for a missing file")
	}
}

func TestMkdirAll(t *testing.T) {
	root := filepath.Join(t.TempDir(), "online")
	paths := []string{root, filepath.Join(root, "raw"), filepath.Join(root, "checkpoints_raw")}

	for i := 0; i < 2; i++ {
		if err := MkdirAll(paths...); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	for _, p := range paths {
		if info, err := os.Stat(p); err != nil || !info.IsDir() {
			t.Errorf("%s not created", p)
		}
	}
}

func TestMkdirAll_BlockedByFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "online")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	err := MkdirAll(filepath.Join(blocker, "raw"))
	if err == nil || !strings.Contains(err.Error(), "failed to create directory") {
		t.Errorf("MkdirAll() error = %v", err)
	}
}
