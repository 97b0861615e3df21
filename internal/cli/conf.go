package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astrolabsoftware/fink-cli/internal/util"
)

func newConfCmd(a *app) *cobra.Command {
	var confPath string

	cmd := &cobra.Command{
		Use:   "conf [-c conf]",
		Short: "Print the resolved configuration",
		Long: `Print every configuration key after the files are merged, as KEY=value
lines a shell can source. The files that were read are listed first as
comments, in merge order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := a.loadContext(confPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range ctx.Files() {
				fmt.Fprintf(out, "# %s\n", f)
			}
			for _, key := range ctx.Keys() {
				fmt.Fprintf(out, "%s=%s\n", key, util.ShellEscape(ctx.GetString(key)))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&confPath, "conf", "c", "", "configuration file")

	return cmd
}
