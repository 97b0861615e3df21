package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astrolabsoftware/fink-cli/internal/config"
	"github.com/astrolabsoftware/fink-cli/internal/journal"
	"github.com/astrolabsoftware/fink-cli/internal/util"
)

func newLogsCmd(a *app) *cobra.Command {
	var (
		confPath string
		lines    int
	)

	cmd := &cobra.Command{
		Use:   "logs [-n lines] [-c conf]",
		Short: "Show the last entries of the fink journal",
		Long: `Display the most recent entries of the journal fink writes to when
FINK_CLI_LOG is set: services started and exited, signals sent, storage
initialised.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.loadContext(confPath)
			if err != nil {
				return err
			}

			path := ctx.GetString(config.KeyJournal)
			if path == "" {
				return &config.ConfigurationError{Key: config.KeyJournal, Msg: "FINK_CLI_LOG is not set, no journal to show"}
			}

			entries, err := journal.Tail(path, lines)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				util.Log("Journal %s is empty", path)
				return nil
			}
			for _, e := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 120, "number of entries to show")
	cmd.Flags().StringVarP(&confPath, "conf", "c", "", "configuration file")

	return cmd
}
