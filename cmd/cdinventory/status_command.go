package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cdinventory/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and check the inventory storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := colorEnabled(cfg.Display.Color, out)

			configDetail := ctx.configPath
			if !ctx.configExists {
				configDetail += " (not found, defaults in use)"
			}
			lines := []string{
				renderHeading("Configuration", colorize),
				renderSetting("Config", configDetail),
				renderSetting("Backend", cfg.Inventory.Backend),
				renderSetting("Storage", cfg.StoragePath()),
				renderSetting("Format", cfg.Inventory.Format),
				renderSetting("Atomic save", yesNo(cfg.Inventory.AtomicSave)),
				renderSetting("Session lock", yesNo(cfg.Inventory.Lock)),
				"",
				renderHeading("Checks", colorize),
			}
			failed := 0
			results := preflight.RunAll(cmd.Context(), cfg)
			for _, result := range results {
				if checkStateOf(result) == checkFail {
					failed++
				}
				lines = append(lines, renderCheck(result, colorize))
			}

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
