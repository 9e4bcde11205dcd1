package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kjk/common/atomicfile"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cdinventory/internal/config"
	"cdinventory/internal/inventory"
	"cdinventory/internal/logging"
)

const (
	exportJSON = "json"
	exportYAML = "yaml"
	exportTOML = "toml"
)

type exportDocument struct {
	Records []inventory.Record `json:"records" yaml:"records" toml:"records"`
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the inventory as JSON, YAML, or TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			switch format {
			case exportJSON, exportYAML, exportTOML:
			default:
				return fmt.Errorf("unsupported export format %q (want json, yaml, or toml)", format)
			}
			return ctx.withBackend(cmd, false, func(cfg *config.Config, backend inventory.Backend) error {
				records, err := backend.Load(cmd.Context())
				if err != nil {
					return err
				}
				doc := exportDocument{Records: records}
				if doc.Records == nil {
					doc.Records = []inventory.Record{}
				}

				target := strings.TrimSpace(output)
				if target == "" || target == "-" {
					return encodeExport(cmd.OutOrStdout(), format, doc)
				}
				path, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				if err := writeExportFile(path, format, doc); err != nil {
					return err
				}
				ctx.ensureLogger().Info("exported inventory",
					logging.String(logging.FieldPath, path),
					logging.Int(logging.FieldRecordCount, len(records)))
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(records), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", exportJSON, "Output format: json, yaml, or toml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (default stdout)")
	return cmd
}

func encodeExport(w io.Writer, format string, doc exportDocument) error {
	switch format {
	case exportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case exportTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

func writeExportFile(path, format string, doc exportDocument) error {
	w, err := atomicfile.New(path)
	if err != nil {
		return fmt.Errorf("open export %q: %w", path, err)
	}
	defer w.RemoveIfNotClosed()

	if err := encodeExport(w, format, doc); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("commit export %q: %w", path, err)
	}
	return nil
}
