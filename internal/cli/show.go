package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astrolabsoftware/fink-cli/internal/service"
	"github.com/astrolabsoftware/fink-cli/internal/util"
)

func newShowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "List the running services",
		Long: `List every running "fink start" process with its PID and command line.

show reads no configuration and ignores any argument.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			procs, err := service.NewLifecycle(a.directory(), a.registry, nil).List("")
			if err != nil {
				return err
			}
			if len(procs) == 0 {
				util.Log("No fink service running")
				return nil
			}

			rows := make([]util.StatusTableRow, 0, len(procs))
			for _, p := range procs {
				name := service.ServiceName(p.Cmdline)
				if name == "" {
					name = "?"
				}
				rows = append(rows, util.StatusTableRow{
					Name:   name,
					Status: "running",
					Detail: fmt.Sprintf("pid %d  %s", p.PID, p.Cmdline),
					Ok:     true,
				})
			}
			util.Section("%d running", len(procs))
			util.StatusTable(rows)
			return nil
		},
	}

	return cmd
}
