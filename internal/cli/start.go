package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/astrolabsoftware/fink-cli/internal/env"
	"github.com/astrolabsoftware/fink-cli/internal/util"
)

func newStartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <service> [options]",
		Short: "Launch a service in the foreground",
		Long: `Resolve the launch command of a service from the configuration and run it.

fink start stays in the foreground until the job exits and returns its exit
status. SIGINT and SIGTERM are forwarded to the job, so fink stop can find
and stop it through its "fink start <service>" command line.

Options:
  -c, --conf <path>      configuration file merged over $FINK_HOME/conf/fink.conf
  --simulator            read from KAFKA_IPPORT_SIM / KAFKA_TOPIC_SIM
  --night <YYYYMMDD>     night partition (NIGHT)
  --topic <topic>        topic to read (KAFKA_TOPIC)
  --index_table <name>   HBase index table (INDEXTABLE)
  --tns_folder <path>    TNS folder (TNS_FOLDER)
  --tns_sandbox          push to the TNS sandbox
  --elasticc             use the ELAsTiCC variant when the service has one
  --exit_after <sec>     stop the stream after this many seconds
  --dry-run              print the launch command as YAML and exit
  -h                     show the help of the service itself

Run "fink services" for the list of services.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := parseOptions("start", args)
			if err != nil {
				return err
			}
			ctx, err := a.loadContext(inv.ConfPath)
			if err != nil {
				return err
			}

			lc, err := a.registry.Resolve(inv.Service, inv.Request(), ctx)
			if err != nil {
				return err
			}

			if inv.DryRun {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(lc); err != nil {
					return fmt.Errorf("failed to encode launch command: %w", err)
				}
				return enc.Close()
			}

			log := a.openJournal(ctx)
			defer log.Sync()

			argv := lc.Argv()
			environ := env.Compute(ctx).MergeWithCurrent(a.environ())
			util.Log("Starting %s: %s", inv.Service, util.ShellJoin(argv))
			log.Info("service starting", zap.String("service", inv.Service), zap.Strings("argv", argv))

			code, err := a.run(argv, environ, env.Stdio{
				In:  cmd.InOrStdin(),
				Out: cmd.OutOrStdout(),
				Err: cmd.ErrOrStderr(),
			})
			if err != nil {
				log.Error("service failed to start", zap.String("service", inv.Service), zap.Error(err))
				return &ExitError{Code: code, Err: err}
			}

			log.Info("service exited", zap.String("service", inv.Service), zap.Int("code", code))
			if code != 0 {
				util.Warn("%s exited with status %d", inv.Service, code)
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	return cmd
}
