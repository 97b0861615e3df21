package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/astrolabsoftware/fink-cli/internal/registry"
	"github.com/astrolabsoftware/fink-cli/internal/service"
)

func newStopCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop <service|all> [-c conf]",
		Short: "Signal the running instances of a service",
		Long: `Send SIGTERM (or the signal named by FINK_STOP_SIGNAL) to every running
"fink start <service>" process. "fink stop all" stops every service.

raw2science keeps an HBase connection open: its connection processes are
signalled first, then the service itself.

fink stop always exits with status 1, whether or not anything was stopped.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := parseOptions("stop", args)
			if err != nil {
				return err
			}
			ctx, err := a.loadContext(inv.ConfPath)
			if err != nil {
				return err
			}
			sig, err := service.StopSignal(a.getenv)
			if err != nil {
				return err
			}

			log := a.openJournal(ctx)
			defer log.Sync()

			lifecycle := service.NewLifecycle(a.directory(), a.registry, log)
			if _, err := lifecycle.Stop(inv.Service, sig); err != nil {
				var nf *registry.ServiceNotFoundError
				if errors.As(err, &nf) {
					return err
				}
				return &ExitError{Code: 1, Err: err}
			}
			return &ExitError{Code: 1}
		},
	}

	return cmd
}
