package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/astrolabsoftware/fink-cli/internal/config"
	"github.com/astrolabsoftware/fink-cli/internal/storage"
	"github.com/astrolabsoftware/fink-cli/internal/util"
)

func newInitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [-c conf]",
		Short: "Create the storage layout under ONLINE_DATA_PREFIX",
		Long: `Create the directories the services read from and write to:

  $ONLINE_DATA_PREFIX
  $ONLINE_DATA_PREFIX/raw
  $ONLINE_DATA_PREFIX/science
  $ONLINE_DATA_PREFIX/checkpoints_raw
  $ONLINE_DATA_PREFIX/checkpoints_sci
  $ONLINE_DATA_PREFIX/checkpoints_dis

FS_KIND selects the filesystem (local or hdfs). Existing directories are left
untouched, so init can be run any number of times.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := parseOptions("init", args)
			if err != nil {
				return err
			}
			ctx, err := a.loadContext(inv.ConfPath)
			if err != nil {
				return err
			}
			log := a.openJournal(ctx)
			defer log.Sync()

			layout, err := storage.NewInitializer(a.backends(ctx)).Init(ctx)
			if err != nil {
				log.Error("storage init failed", zap.Error(err))
				return err
			}

			log.Info("storage initialised",
				zap.String("fs_kind", ctx.GetString(config.KeyFSKind)),
				zap.String("root", layout.Root),
			)
			util.Success("Storage initialised at %s (%s)", layout.Root, ctx.GetString(config.KeyFSKind))
			return nil
		},
	}

	return cmd
}
