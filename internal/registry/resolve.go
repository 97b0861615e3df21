package registry

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/astrolabsoftware/fink-cli/internal/config"
)

// Request carries the per-invocation choices that shape a launch command.
type Request struct {
	Overrides map[string]string // configuration keys set on the command line
	Simulator bool
	Elasticc  bool
	Help      bool
}

// LaunchCommand is a fully resolved invocation of the job runtime.
type LaunchCommand struct {
	Service      string   `yaml:"service"`
	Runtime      string   `yaml:"runtime"`
	RuntimeFlags []string `yaml:"runtime_flags,omitempty"`
	Executable   string   `yaml:"executable"`
	Args         []string `yaml:"args,omitempty"`
}

// Argv returns the command line: runtime, its flags, the script, then the job arguments.
func (lc *LaunchCommand) Argv() []string {
	argv := make([]string, 0, 2+len(lc.RuntimeFlags)+len(lc.Args))
	argv = append(argv, lc.Runtime)
	argv = append(argv, lc.RuntimeFlags...)
	argv = append(argv, lc.Executable)
	argv = append(argv, lc.Args...)
	return argv
}

// Resolve builds the launch command for the service called name.
//
// The distribution overlay is merged for overlay services before any binding
// is read, and command-line overrides stay on top of it. With Help set,
// missing required bindings are skipped and -h is appended so the job prints
// its own usage.
func (r *Registry) Resolve(name string, req Request, ctx *config.Context) (*LaunchCommand, error) {
	spec, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}

	finkHome, ok := ctx.Get(config.KeyFinkHome)
	if !ok {
		return nil, &config.ConfigurationError{
			Key: config.KeyFinkHome,
			Msg: "FINK_HOME is not set: export it or run fink from the installation directory",
		}
	}

	if spec.NeedsOverlay {
		overlay, ok := ctx.Get(config.KeyDistributionConf)
		if !ok {
			overlay = config.NewPaths(finkHome).DistributionConfFile()
		}
		if ctx, err = ctx.WithOverlay(overlay); err != nil {
			return nil, fmt.Errorf("service %s: %w", name, err)
		}
	}

	overrides := map[string]string{}
	if req.Simulator {
		for key, simKey := range simulatorKeys {
			if val, ok := ctx.Get(simKey); ok {
				overrides[key] = val
			}
		}
	}
	for k, v := range req.Overrides {
		if v != "" {
			overrides[k] = v
		}
	}
	ctx = ctx.WithOverrides(overrides)

	script := spec.Script
	if req.Elasticc && spec.HasElasticcVariant() {
		script = spec.ElasticcScript
	}

	args, err := bindArgs(spec, ctx, req.Help)
	if err != nil {
		return nil, err
	}
	if req.Help {
		args = append(args, "-h")
	}

	return &LaunchCommand{
		Service:      spec.Name,
		Runtime:      spec.Runtime.Executable(),
		RuntimeFlags: runtimeFlags(spec, ctx, req.Simulator),
		Executable:   filepath.Join(finkHome, script),
		Args:         args,
	}, nil
}

// simulatorKeys maps bus settings to the ones used in simulator mode.
var simulatorKeys = map[string]string{
	"KAFKA_IPPORT": "KAFKA_IPPORT_SIM",
	"KAFKA_TOPIC":  "KAFKA_TOPIC_SIM",
}

func bindArgs(spec ServiceSpec, ctx *config.Context, lenient bool) ([]string, error) {
	var args []string
	for _, b := range spec.Bindings {
		if b.Switch {
			if ctx.Bool(b.Key) {
				args = append(args, b.Arg)
			}
			continue
		}
		val, ok := ctx.Get(b.Key)
		if !ok && b.Default != "" {
			val, ok = b.Default, true
		}
		if !ok {
			if b.Required && !lenient {
				return nil, &MissingArgumentError{Service: spec.Name, Key: b.Key, Arg: b.Arg}
			}
			continue
		}
		args = append(args, b.Arg, val)
	}
	return args, nil
}

func runtimeFlags(spec ServiceSpec, ctx *config.Context, simulator bool) []string {
	if spec.Runtime != RuntimeSpark {
		return nil
	}

	flags := []string{"--master", ctx.GetString("SPARK_MASTER")}
	if v, ok := ctx.Get("FINK_PACKAGES"); ok {
		flags = append(flags, "--packages", v)
	}
	if v, ok := ctx.Get("FINK_JARS"); ok {
		flags = append(flags, "--jars", v)
	}
	if v, ok := ctx.Get("PYTHON_EXTRA_FILE"); ok && !ctx.Bool("NO_ZIP") {
		flags = append(flags, "--py-files", v)
	}

	// The simulator bus is local and unauthenticated.
	if spec.AuthKey != "" && !simulator {
		if jaas, ok := ctx.Get(spec.AuthKey); ok {
			opt := "-Djava.security.auth.login.config=" + jaas
			flags = append(flags,
				"--files", jaas,
				"--conf", "spark.driver.extraJavaOptions="+opt,
				"--conf", "spark.executor.extraJavaOptions="+opt,
			)
		}
	}

	if v, ok := ctx.Get("EXTRA_SPARK_CONFIG"); ok {
		flags = append(flags, strings.Fields(v)...)
	}
	return flags
}
