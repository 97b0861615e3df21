package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astrolabsoftware/fink-cli/internal/config"
	envpkg "github.com/astrolabsoftware/fink-cli/internal/env"
)

// newEnvCmd creates the env command with all subcommands
func newEnvCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Environment management commands",
		Long: `Commands for inspecting the environment the services are launched with.

Includes dependency checking, environment variable printing, and command
execution with the computed environment.`,
	}

	cmd.AddCommand(newDoctorCmd(a))
	cmd.AddCommand(newPrintCmd(a))
	cmd.AddCommand(newExecCmd(a))

	return cmd
}

func newDoctorCmd(a *app) *cobra.Command {
	var confPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check required and optional dependencies",
		Long: `Check that the commands the services need are available.

spark-submit, python3 and java are always required. hdfs is required when
FS_KIND is hdfs, and fs.defaultFS is then read from $HADOOP_CONF_DIR/core-site.xml.

Examples:
  fink env doctor
  fink env doctor -c conf/fink.conf.prod`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.loadContext(confPath)
			if err != nil {
				return err
			}

			result := envpkg.RunDoctor(ctx.GetString(config.KeyFSKind), a.tools)
			result.CheckHadoopConf(ctx.GetString("HADOOP_CONF_DIR"))
			result.Print()

			if code := result.ExitCode(); code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&confPath, "conf", "c", "", "configuration file")

	return cmd
}

func newPrintCmd(a *app) *cobra.Command {
	var confPath string

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print export statements for the service environment",
		Long: `Print environment variable export statements.

Output can be evaluated in your shell:

  eval "$(fink env print)"

This sets FINK_HOME, SPARK_HOME, JAVA_HOME, PYTHONPATH and PATH the way
fink start does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.loadContext(confPath)
			if err != nil {
				return err
			}

			for _, line := range envpkg.Compute(ctx).ShellExports() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&confPath, "conf", "c", "", "configuration file")

	return cmd
}

func newExecCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec -- <command> [args...]",
		Short: "Run a command with the service environment",
		Long: `Execute a command with the computed environment variables set.

Note: Use '--' to separate env exec flags from the command being executed.

Examples:
  fink env exec -- spark-submit --version
  fink env exec -- hdfs dfs -ls /user/fink`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && args[0] == "--" {
				args = args[1:]
			}
			if len(args) == 0 {
				return usageErrorf("no command specified")
			}

			ctx, err := a.loadContext("")
			if err != nil {
				return err
			}

			environ := envpkg.Compute(ctx).MergeWithCurrent(a.environ())
			code, err := a.run(args, environ, envpkg.Stdio{
				In:  cmd.InOrStdin(),
				Out: cmd.OutOrStdout(),
				Err: cmd.ErrOrStderr(),
			})
			if err != nil {
				return &ExitError{Code: code, Err: err}
			}
			if code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	return cmd
}
