package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cdinventory/internal/config"
	"cdinventory/internal/fileutil"
	"cdinventory/internal/logging"
)

type backuper interface {
	Backup(ctx context.Context, dst string) error
}

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var target string
	var force bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy the inventory between the text file and the SQLite database",
		Long: "Copy every record from the configured backend to the other one, keeping order and duplicate IDs.\n" +
			"The configuration is not changed; set inventory.backend afterwards to switch.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			target = strings.ToLower(strings.TrimSpace(target))
			switch target {
			case config.BackendText, config.BackendSQLite:
			default:
				return fmt.Errorf("unsupported migration target %q (want text or sqlite)", target)
			}
			if target == cfg.Inventory.Backend {
				return fmt.Errorf("inventory already uses the %s backend", target)
			}

			targetCfg := *cfg
			targetCfg.Inventory.Backend = target

			for _, path := range []string{cfg.StoragePath(), targetCfg.StoragePath()} {
				lock, err := acquireLock(cfg, path)
				if err != nil {
					return err
				}
				defer lock.Release()
			}

			source, err := openBackend(cfg, logger)
			if err != nil {
				return err
			}
			defer source.Close()
			dest, err := openBackend(&targetCfg, logger)
			if err != nil {
				return err
			}
			defer dest.Close()

			records, err := source.Load(cmd.Context())
			if err != nil {
				return err
			}
			existing, err := dest.Load(cmd.Context())
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				if !force {
					return fmt.Errorf("%s already holds %d records (use --force to replace them)", dest.Location(), len(existing))
				}
				if b, ok := dest.Backend.(backuper); ok {
					backupPath := fileutil.BackupPath(dest.Location())
					if err := b.Backup(cmd.Context(), backupPath); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Saved previous contents of %s to %s\n", dest.Location(), backupPath)
				}
			}
			if err := dest.Save(cmd.Context(), records); err != nil {
				return err
			}

			logger.Info("migrated inventory",
				logging.String(logging.FieldBackend, target),
				logging.String(logging.FieldPath, dest.Location()),
				logging.Int(logging.FieldRecordCount, len(records)))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Copied %d records from %s to %s\n", len(records), source.Location(), dest.Location())
			fmt.Fprintf(out, "Set inventory.backend = %q to use it.\n", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "to", config.BackendSQLite, "Destination backend: text or sqlite")
	cmd.Flags().BoolVar(&force, "force", false, "Replace records already present in the destination")
	return cmd
}
