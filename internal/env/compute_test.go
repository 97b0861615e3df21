package env

import (
	"strings"
	"testing"

	"github.com/astrolabsoftware/fink-cli/internal/config"
)

func exportMap(exported []string) map[string]string {
	m := make(map[string]string)
	for _, line := range exported {
		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			m[parts[0]] = parts[1]
		}
	}
	return m
}

func TestEnvironment_Export(t *testing.T) {
	env := &Environment{
		FinkHome:      "/opt/fink",
		SparkHome:     "/opt/spark",
		JavaHome:      "/usr/lib/jvm/java-11",
		HadoopConfDir: "/etc/hadoop/conf",
		PythonPath:    "/opt/fink",
		Path:          "/opt/fink/bin:/usr/bin:/bin",
	}

	exportedMap := exportMap(env.Export())

	expectedVars := map[string]string{
		"FINK_HOME":       "/opt/fink",
		"SPARK_HOME":      "/opt/spark",
		"JAVA_HOME":       "/usr/lib/jvm/java-11",
		"HADOOP_CONF_DIR": "/etc/hadoop/conf",
		"PYTHONPATH":      "/opt/fink",
		"PATH":            "/opt/fink/bin:/usr/bin:/bin",
	}

	for key, expectedValue := range expectedVars {
		if actualValue, ok := exportedMap[key]; !ok {
			t.Errorf("Environment variable %s not found in exported vars", key)
		} else if actualValue != expectedValue {
			t.Errorf("Environment variable %s = %q, want %q", key, actualValue, expectedValue)
		}
	}
}

func TestEnvironment_Export_PathLast(t *testing.T) {
	env := &Environment{
		Path:     "/custom/bin:/usr/bin",
		FinkHome: "/fink",
	}

	exported := env.Export()

	if len(exported) == 0 {
		t.Fatal("Export() returned empty slice")
	}
	lastVar := exported[len(exported)-1]
	if !strings.HasPrefix(lastVar, "PATH=") {
		t.Errorf("Last exported var = %q, want PATH=...", lastVar)
	}
}

func TestEnvironment_Export_EmptyValues(t *testing.T) {
	env := &Environment{
		FinkHome:  "/fink",
		SparkHome: "", // Empty value should not be exported
		Path:      "/usr/bin",
	}

	exportedMap := exportMap(env.Export())

	if _, ok := exportedMap["SPARK_HOME"]; ok {
		t.Error("Empty SPARK_HOME should not be exported")
	}
	if exportedMap["FINK_HOME"] != "/fink" {
		t.Errorf("FINK_HOME not exported correctly")
	}
}

func TestEnvironment_ShellExports(t *testing.T) {
	env := &Environment{FinkHome: "/opt/my fink", Path: "/usr/bin"}

	lines := env.ShellExports()

	want := []string{"export FINK_HOME='/opt/my fink'", "export PATH=/usr/bin"}
	if len(lines) != len(want) {
		t.Fatalf("ShellExports() = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestEnvironment_MergeWithCurrent(t *testing.T) {
	env := &Environment{FinkHome: "/opt/fink", Path: "/opt/fink/bin:/usr/bin"}
	base := []string{"HOME=/home/fink", "PATH=/usr/bin", "FINK_HOME=/old"}

	merged := env.MergeWithCurrent(base)

	want := []string{"HOME=/home/fink", "PATH=/opt/fink/bin:/usr/bin", "FINK_HOME=/opt/fink"}
	if len(merged) != len(want) {
		t.Fatalf("MergeWithCurrent() = %v, want %v", merged, want)
	}
	for i := range want {
		if merged[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, merged[i], want[i])
		}
	}
}

func TestCompute_FromConfiguration(t *testing.T) {
	t.Setenv("FINK_HOME", "")
	t.Setenv("PATH", "/usr/bin:/bin")
	t.Setenv("PYTHONPATH", "/site")
	ctx := config.FromMap(config.NewPaths("/opt/fink"), map[string]string{
		"SPARK_HOME": "/opt/spark",
		"JAVA_HOME":  "/usr/lib/jvm/java-17",
	})

	env := Compute(ctx)

	if env.FinkHome != "/opt/fink" {
		t.Errorf("FinkHome = %q, want /opt/fink", env.FinkHome)
	}
	if env.SparkHome != "/opt/spark" {
		t.Errorf("SparkHome = %q, want /opt/spark", env.SparkHome)
	}
	wantPath := "/opt/fink/bin:/usr/lib/jvm/java-17/bin:/opt/spark/bin:/usr/bin:/bin"
	if env.Path != wantPath {
		t.Errorf("Path = %q, want %q", env.Path, wantPath)
	}
	if env.PythonPath != "/opt/fink:/site" {
		t.Errorf("PythonPath = %q, want /opt/fink:/site", env.PythonPath)
	}
}

func TestParseJavaMajor(t *testing.T) {
	tests := []struct {
		output string
		want   int
	}{
		{`openjdk version "17.0.9" 2023-10-17`, 17},
		{`openjdk version "11.0.21" 2023-10-17`, 11},
		{`java version "1.8.0_392"`, 8},
		{`openjdk version "21" 2023-09-19`, 21},
		{"garbage", 0},
	}

	for _, tt := range tests {
		if got := ParseJavaMajor(tt.output); got != tt.want {
			t.Errorf("ParseJavaMajor(%q) = %d, want %d", tt.output, got, tt.want)
		}
	}
}

func TestPrependPath(t *testing.T) {
	tests := []struct {
		name     string
		dirs     []string
		existing string
		want     string
	}{
		{"fink and spark first", []string{"/opt/fink/bin", "/opt/spark/bin"}, "/usr/bin:/bin", "/opt/fink/bin:/opt/spark/bin:/usr/bin:/bin"},
		{"spark already on PATH", []string{"/opt/fink/bin", "/opt/spark/bin"}, "/usr/bin:/opt/spark/bin", "/opt/fink/bin:/opt/spark/bin:/usr/bin"},
		{"nothing to prepend", nil, "/usr/bin:/bin", "/usr/bin:/bin"},
		{"no PATH", []string{"/opt/fink/bin"}, "", "/opt/fink/bin"},
		{"blank entries dropped", []string{" ", "/opt/fink/bin"}, "::/usr/bin:", "/opt/fink/bin:/usr/bin"},
		{"repeated dir kept once", []string{"/opt/fink", "/opt/fink"}, "/opt/fink", "/opt/fink"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prependPath(tt.dirs, tt.existing); got != tt.want {
				t.Errorf("prependPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrependPath_LeavesCallerSliceAlone(t *testing.T) {
	dirs := make([]string, 1, 4)
	dirs[0] = "/opt/fink/bin"

	prependPath(dirs, "/usr/bin:/bin")

	if got := dirs[:cap(dirs)][1]; got != "" {
		t.Errorf("backing array written: %q", got)
	}
}
