package env

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// JavaDetector handles Java installation detection
type JavaDetector struct{}

// NewJavaDetector creates a new Java detector
func NewJavaDetector() *JavaDetector {
	return &JavaDetector{}
}

// FindJavaHome finds the Java installation home directory.
// JAVA_HOME wins; otherwise macOS java_home is asked, then the java binary on
// PATH is resolved through its symlinks.
func (j *JavaDetector) FindJavaHome() string {
	if javaHome := os.Getenv("JAVA_HOME"); javaHome != "" {
		return javaHome
	}

	javaHomeBin := "/usr/libexec/java_home"
	if _, err := os.Stat(javaHomeBin); err == nil {
		if output, err := exec.Command(javaHomeBin).Output(); err == nil {
			return strings.TrimSpace(string(output))
		}
	}

	return homeFromBinary("java")
}

// MajorVersion returns the major version of the installed Java.
// Returns 0 if Java is not found or version cannot be parsed
func (j *JavaDetector) MajorVersion() int {
	cmd := exec.Command("java", "-version")
	// java -version outputs to stderr, not stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0
	}
	return ParseJavaMajor(stderr.String())
}

var javaVersionRe = regexp.MustCompile(`version "([^"]+)"`)

// ParseJavaMajor extracts the major version from `java -version` output:
//
//	openjdk version "17.0.9" 2023-10-17  -> 17
//	java version "1.8.0_392"             -> 8
func ParseJavaMajor(output string) int {
	matches := javaVersionRe.FindStringSubmatch(output)
	if len(matches) < 2 {
		return 0
	}

	parts := strings.Split(matches[1], ".")
	if parts[0] == "1" && len(parts) > 1 {
		parts = parts[1:]
	}
	major, err := strconv.Atoi(strings.SplitN(parts[0], "_", 2)[0])
	if err != nil {
		return 0
	}
	return major
}

// ToolDetector provides generic command detection
type ToolDetector struct {
	LookPath func(string) (string, error)
}

// NewToolDetector creates a tool detector searching PATH
func NewToolDetector() *ToolDetector {
	return &ToolDetector{LookPath: exec.LookPath}
}

// IsInstalled checks if a command is available in PATH
func (t *ToolDetector) IsInstalled(command string) bool {
	_, err := t.LookPath(command)
	return err == nil
}

// FindSparkHome returns SPARK_HOME, or the installation containing the
// spark-submit found on PATH.
func FindSparkHome() string {
	if sparkHome := os.Getenv("SPARK_HOME"); sparkHome != "" {
		return sparkHome
	}
	return homeFromBinary("spark-submit")
}

// homeFromBinary resolves name on PATH and returns the parent of its bin/ directory.
func homeFromBinary(name string) string {
	p, err := exec.LookPath(name)
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	dir := filepath.Dir(p)
	if filepath.Base(dir) != "bin" {
		return ""
	}
	return filepath.Dir(dir)
}
