package main

import (
	"github.com/spf13/cobra"

	"cdinventory/internal/config"
	"cdinventory/internal/inventory"
	"cdinventory/internal/logging"
	"cdinventory/internal/shell"
)

func runShell(cmd *cobra.Command, ctx *commandContext) error {
	return ctx.withBackend(cmd, true, func(cfg *config.Config, backend inventory.Backend) error {
		logger := logging.WithSessionID(ctx.ensureLogger(), logging.NewSessionID())
		logger.Info("session started",
			logging.String(logging.FieldBackend, cfg.Inventory.Backend),
			logging.String(logging.FieldPath, backend.Location()))

		sh := shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), inventory.NewStore(), backend,
			shell.WithLogger(logger),
			shell.WithDisplay(displayFor(cfg.Display.Style, false)),
			shell.WithTolerateBadInput(cfg.Shell.TolerateBadInput),
		)
		if err := sh.Run(cmd.Context()); err != nil {
			logger.Debug("session ended with error", logging.Error(err))
			return err
		}
		logger.Info("session ended")
		return nil
	})
}
