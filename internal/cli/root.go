package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/astrolabsoftware/fink-cli/internal/config"
	"github.com/astrolabsoftware/fink-cli/internal/env"
	"github.com/astrolabsoftware/fink-cli/internal/journal"
	"github.com/astrolabsoftware/fink-cli/internal/registry"
	"github.com/astrolabsoftware/fink-cli/internal/service"
	"github.com/astrolabsoftware/fink-cli/internal/storage"
	"github.com/astrolabsoftware/fink-cli/internal/util"
)

// app holds the collaborators the commands share. Tests replace them.
type app struct {
	paths     func() *config.Paths
	registry  *registry.Registry
	directory func() service.ProcessDirectory
	backends  func(ctx *config.Context) map[string]storage.Backend
	run       func(argv, environ []string, stdio env.Stdio) (int, error)
	tools     *env.ToolDetector
	getenv    func(string) string
	environ   func() []string
}

func defaultApp() *app {
	return &app{
		paths:     func() *config.Paths { return config.NewPaths("") },
		registry:  registry.Default(),
		directory: func() service.ProcessDirectory { return service.NewOSDirectory() },
		backends: func(ctx *config.Context) map[string]storage.Backend {
			return storage.DefaultBackends(env.Compute(ctx).MergeWithCurrent(os.Environ()))
		},
		run:     env.Run,
		tools:   env.NewToolDetector(),
		getenv:  os.Getenv,
		environ: os.Environ,
	}
}

// loadContext resolves the configuration for one command.
func (a *app) loadContext(confPath string) (*config.Context, error) {
	return config.Load(a.paths(), confPath)
}

// openJournal returns the audit logger configured by FINK_CLI_LOG. A journal
// that cannot be opened is reported and replaced by a no-op logger.
func (a *app) openJournal(ctx *config.Context) *zap.Logger {
	log, err := journal.Open(ctx.GetString(config.KeyJournal), ctx.GetString(config.KeyLogLevel))
	if err != nil {
		util.Warn("journal disabled: %v", err)
		return zap.NewNop()
	}
	return log
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fink",
		Short: "Launch, inspect and stop the Fink broker services",
		Long: `fink: launch, inspect and stop the services of the Fink alert broker.

Services (stream2raw, raw2science, distribution, archival jobs...) are
resolved from the configuration in $FINK_HOME/conf/fink.conf and launched with
spark-submit. Running services are found through the process table.

  fink init [-c conf]
  fink start <service> [-c conf] [--simulator] [--night N] [--topic T]
             [--index_table I] [--tns_folder F] [--tns_sandbox] [--elasticc]
             [--exit_after N] [--dry-run] [-h]
  fink stop <service|all> [-c conf]
  fink show`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("unknown option/argument: %s", args[0])
			}
			return nil
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			util.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
			return usageErrorf("missing command")
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Msg: err.Error()}
	})

	cmd.AddCommand(newInitCmd(a))
	cmd.AddCommand(newStartCmd(a))
	cmd.AddCommand(newStopCmd(a))
	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newServicesCmd(a))
	cmd.AddCommand(newConfCmd(a))
	cmd.AddCommand(newEnvCmd(a))
	cmd.AddCommand(newLogsCmd(a))

	return cmd
}

// Execute runs the command line and returns the process exit status.
// This is called by main.main().
func Execute() int {
	return execute(defaultApp(), os.Args[1:], os.Stdout, os.Stderr)
}

func execute(a *app, args []string, out, errOut io.Writer) int {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	util.SetOutput(out, errOut)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Err != nil {
		util.Error("%v", err)
	}
	return ExitCode(err)
}
