package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/astrolabsoftware/fink-cli/internal/util"
)

// Well-known configuration keys.
const (
	KeyFinkHome         = "FINK_HOME"
	KeyFSKind           = "FS_KIND"
	KeyStorageRoot      = "ONLINE_DATA_PREFIX"
	KeyLogLevel         = "LOG_LEVEL"
	KeyDistributionConf = "FINK_DISTRIBUTION_CONF"
	KeyJournal          = "FINK_CLI_LOG"
)

// defaults are the lowest layer of every Context.
var defaults = map[string]string{
	"SPARK_MASTER":          "local[*]",
	"LOG_LEVEL":             "INFO",
	"FINK_TRIGGER_UPDATE":   "2",
	"KAFKA_STARTING_OFFSET": "latest",
	"NO_ZIP":                "false",
}

// envKeys are read from the process environment, above defaults and below files.
var envKeys = []string{KeyFinkHome, KeyJournal, "SPARK_HOME", "HADOOP_CONF_DIR"}

// Context is the resolved, read-only view over the configuration layers:
// defaults < environment < conf files (in order) < overrides.
type Context struct {
	v         *viper.Viper
	paths     *Paths
	files     []string
	overrides map[string]string
}

// Load resolves the Context for one invocation. The default conf file is read
// when present; confFile, when given, must exist and is merged on top of it.
func Load(paths *Paths, confFile string) (*Context, error) {
	var files []string
	if def := paths.DefaultConfFile(); util.FileExists(def) {
		files = append(files, def)
	}
	if confFile != "" {
		if !util.FileExists(confFile) {
			return nil, &ConfigurationError{Msg: fmt.Sprintf("configuration file not found: %s", confFile)}
		}
		if len(files) == 0 || files[0] != confFile {
			files = append(files, confFile)
		}
	}
	return build(paths, files, nil)
}

// FromMap builds a Context holding only defaults, the environment and values.
// values sit in the override layer.
func FromMap(paths *Paths, values map[string]string) *Context {
	c, err := build(paths, nil, values)
	if err != nil {
		// No files are read, so build cannot fail.
		panic(err)
	}
	return c
}

func build(paths *Paths, files []string, overrides map[string]string) (*Context, error) {
	v := viper.New()
	v.SetConfigType("env")

	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	if paths != nil && paths.FinkHome != "" {
		v.SetDefault(KeyFinkHome, paths.FinkHome)
	}
	// Seeding the environment as defaults keeps it below the conf files;
	// viper's own env binding would rank it above them.
	for _, k := range envKeys {
		if val := os.Getenv(k); val != "" {
			v.SetDefault(k, val)
		}
	}

	lower := func(key string) (string, bool) {
		val := strings.TrimSpace(v.GetString(key))
		return val, val != ""
	}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, &ConfigurationError{Msg: fmt.Sprintf("failed to open configuration file %s: %v", f, err)}
		}
		if err := v.MergeConfig(strings.NewReader(expandLayer(string(data), lower))); err != nil {
			return nil, &ConfigurationError{Msg: fmt.Sprintf("failed to parse configuration file %s: %v", f, err)}
		}
	}

	for k, val := range overrides {
		v.Set(k, val)
	}

	return &Context{
		v:         v,
		paths:     paths,
		files:     files,
		overrides: overrides,
	}, nil
}

// WithOverlay returns a new Context with the file at path merged above the
// current files and below the overrides.
func (c *Context) WithOverlay(path string) (*Context, error) {
	if !util.FileExists(path) {
		return nil, &ConfigurationError{Msg: fmt.Sprintf("configuration overlay not found: %s", path)}
	}
	files := append(append([]string(nil), c.files...), path)
	return build(c.paths, files, c.overrides)
}

// WithOverrides returns a new Context with values applied as the top layer.
// Empty values are skipped so unset CLI options never mask a file value.
func (c *Context) WithOverrides(values map[string]string) *Context {
	merged := make(map[string]string, len(c.overrides)+len(values))
	for k, v := range c.overrides {
		merged[k] = v
	}
	for k, v := range values {
		if v != "" {
			merged[k] = v
		}
	}
	nc, err := build(c.paths, c.files, merged)
	if err != nil {
		// The same files were already read successfully for c.
		panic(err)
	}
	return nc
}

// Get returns the value for key and whether it is set to a non-empty string.
func (c *Context) Get(key string) (string, bool) {
	val := strings.TrimSpace(c.v.GetString(key))
	return val, val != ""
}

// GetString returns the value for key, or "" when unset.
func (c *Context) GetString(key string) string {
	val, _ := c.Get(key)
	return val
}

// Bool interprets the value for key as a boolean ("true", "1", "t"...).
func (c *Context) Bool(key string) bool {
	return c.v.GetBool(key)
}

// Keys returns every known key, upper-cased and sorted.
func (c *Context) Keys() []string {
	all := c.v.AllKeys()
	keys := make([]string, 0, len(all))
	for _, k := range all {
		keys = append(keys, strings.ToUpper(k))
	}
	sort.Strings(keys)
	return keys
}

// Files returns the conf files merged into this Context, lowest first.
func (c *Context) Files() []string {
	return append([]string(nil), c.files...)
}

// Paths returns the installation paths the Context was resolved against.
func (c *Context) Paths() *Paths {
	return c.paths
}
