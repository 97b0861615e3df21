package env

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/astrolabsoftware/fink-cli/internal/config"
	"github.com/astrolabsoftware/fink-cli/internal/util"
)

// Environment holds the variables every service process is launched with.
type Environment struct {
	FinkHome      string
	SparkHome     string
	JavaHome      string
	HadoopConfDir string
	PythonPath    string
	Path          string
}

// Compute derives the runtime environment from the configuration, falling
// back to detection for SPARK_HOME and JAVA_HOME.
func Compute(ctx *config.Context) *Environment {
	env := &Environment{
		FinkHome:      ctx.GetString(config.KeyFinkHome),
		SparkHome:     ctx.GetString("SPARK_HOME"),
		JavaHome:      ctx.GetString("JAVA_HOME"),
		HadoopConfDir: ctx.GetString("HADOOP_CONF_DIR"),
	}
	if env.SparkHome == "" {
		env.SparkHome = FindSparkHome()
	}
	if env.JavaHome == "" {
		env.JavaHome = NewJavaDetector().FindJavaHome()
	}

	env.PythonPath = buildPythonPath(env.FinkHome, os.Getenv("PYTHONPATH"))
	env.Path = buildPath(env, os.Getenv("PATH"))
	return env
}

// buildPath puts the fink, Java and Spark bin directories ahead of PATH.
func buildPath(env *Environment, existing string) string {
	var newParts []string
	if env.FinkHome != "" {
		newParts = append(newParts, config.NewPaths(env.FinkHome).BinDir())
	}
	if env.JavaHome != "" {
		newParts = append(newParts, filepath.Join(env.JavaHome, "bin"))
	}
	if env.SparkHome != "" {
		newParts = append(newParts, filepath.Join(env.SparkHome, "bin"))
	}
	return prependPath(newParts, existing)
}

// buildPythonPath makes the fink python package importable by the jobs.
func buildPythonPath(finkHome, existing string) string {
	if finkHome == "" {
		return existing
	}
	return prependPath([]string{finkHome}, existing)
}

// prependPath places dirs ahead of the entries of the search list existing.
// An entry keeps its first position only; blank entries are dropped.
func prependPath(dirs []string, existing string) string {
	var entries []string
	seen := make(map[string]struct{})
	add := func(list []string) {
		for _, dir := range list {
			dir = strings.TrimSpace(dir)
			if _, dup := seen[dir]; dup || dir == "" {
				continue
			}
			seen[dir] = struct{}{}
			entries = append(entries, dir)
		}
	}
	add(dirs)
	add(filepath.SplitList(existing))
	return strings.Join(entries, string(os.PathListSeparator))
}

// Export returns environment variables as []string for exec.Cmd.Env
func (e *Environment) Export() []string {
	var exports []string
	add := func(name, value string) {
		if value != "" {
			exports = append(exports, name+"="+value)
		}
	}

	add("FINK_HOME", e.FinkHome)
	add("SPARK_HOME", e.SparkHome)
	add("JAVA_HOME", e.JavaHome)
	add("HADOOP_CONF_DIR", e.HadoopConfDir)
	add("PYTHONPATH", e.PythonPath)
	add("PATH", e.Path)

	return exports
}

// ShellExports returns `export NAME=value` lines, shell escaped, in Export order.
func (e *Environment) ShellExports() []string {
	var lines []string
	for _, kv := range e.Export() {
		name, value, _ := strings.Cut(kv, "=")
		lines = append(lines, "export "+name+"="+util.ShellEscape(value))
	}
	return lines
}

// MergeWithCurrent overlays this environment on base (usually os.Environ()).
// Computed values replace existing ones; the order of base is kept.
func (e *Environment) MergeWithCurrent(base []string) []string {
	envMap := make(map[string]string, len(base))
	var order []string
	set := func(entry string) {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			return
		}
		if _, seen := envMap[key]; !seen {
			order = append(order, key)
		}
		envMap[key] = value
	}

	for _, entry := range base {
		set(entry)
	}
	for _, entry := range e.Export() {
		set(entry)
	}

	result := make([]string, 0, len(order))
	for _, key := range order {
		result = append(result, key+"="+envMap[key])
	}
	return result
}
