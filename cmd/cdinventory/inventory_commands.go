package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cdinventory/internal/config"
	"cdinventory/internal/inventory"
	"cdinventory/internal/logging"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var asTable bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the saved inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withBackend(cmd, false, func(cfg *config.Config, backend inventory.Backend) error {
				records, err := backend.Load(cmd.Context())
				if err != nil {
					return err
				}
				return displayFor(cfg.Display.Style, asTable)(cmd.OutOrStdout(), records)
			})
		},
	}

	cmd.Flags().BoolVar(&asTable, "table", false, "Render as a table regardless of display.style")
	return cmd
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add ID TITLE ARTIST",
		Short: "Append a CD and save the inventory",
		Long:  "Append a CD and save the inventory. Duplicate IDs are accepted.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withBackend(cmd, true, func(cfg *config.Config, backend inventory.Backend) error {
				store, err := loadStore(cmd, backend)
				if err != nil {
					return err
				}
				rec, err := store.Add(strings.TrimSpace(args[0]), strings.TrimSpace(args[1]), strings.TrimSpace(args[2]))
				if err != nil {
					return err
				}
				if err := backend.Save(cmd.Context(), store.Snapshot()); err != nil {
					return err
				}
				ctx.ensureLogger().Info("added record",
					logging.Int(logging.FieldRecordID, rec.ID),
					logging.String(logging.FieldPath, backend.Location()))
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d\t%s (by:%s)\n", rec.ID, rec.Title, rec.Artist)
				return nil
			})
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove the first CD with ID and save the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := inventory.ParseID(args[0])
			if err != nil {
				return err
			}
			return ctx.withBackend(cmd, true, func(cfg *config.Config, backend inventory.Backend) error {
				store, err := loadStore(cmd, backend)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !store.Remove(id) {
					fmt.Fprintln(out, "Could not find this CD!")
					return nil
				}
				if err := backend.Save(cmd.Context(), store.Snapshot()); err != nil {
					return err
				}
				ctx.ensureLogger().Info("removed record",
					logging.Int(logging.FieldRecordID, id),
					logging.String(logging.FieldPath, backend.Location()))
				fmt.Fprintln(out, "The CD was removed")
				return nil
			})
		},
	}
}

func newFindCommand(ctx *commandContext) *cobra.Command {
	var asTable bool

	cmd := &cobra.Command{
		Use:   "find QUERY",
		Short: "List CDs whose title or artist contains QUERY",
		Long:  "List CDs whose title or artist contains QUERY. Matching ignores case, including non-ASCII letters.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withBackend(cmd, false, func(cfg *config.Config, backend inventory.Backend) error {
				store, err := loadStore(cmd, backend)
				if err != nil {
					return err
				}
				matches := store.Find(args[0])
				if len(matches) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No CDs match %q\n", args[0])
					return nil
				}
				return displayFor(cfg.Display.Style, asTable)(cmd.OutOrStdout(), matches)
			})
		},
	}

	cmd.Flags().BoolVar(&asTable, "table", false, "Render as a table regardless of display.style")
	return cmd
}

func loadStore(cmd *cobra.Command, backend inventory.Backend) (*inventory.Store, error) {
	records, err := backend.Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	return inventory.NewStore(records...), nil
}
