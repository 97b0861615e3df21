package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/astrolabsoftware/fink-cli/internal/util"
)

func newServicesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "List the services fink start can launch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := a.registry.All()
			rows := make([]util.StatusTableRow, 0, len(specs))
			for _, spec := range specs {
				var tags []string
				if spec.NeedsOverlay {
					tags = append(tags, "overlay")
				}
				if spec.Connector != "" {
					tags = append(tags, "connector:"+spec.Connector)
				}
				if spec.HasElasticcVariant() {
					tags = append(tags, "elasticc")
				}
				detail := spec.Description
				if len(tags) > 0 {
					detail += " [" + strings.Join(tags, ", ") + "]"
				}
				rows = append(rows, util.StatusTableRow{
					Name:   spec.Name,
					Status: string(spec.Runtime),
					Detail: detail,
					Ok:     true,
				})
			}

			util.Section("Services")
			util.StatusTable(rows)
			return nil
		},
	}

	return cmd
}
