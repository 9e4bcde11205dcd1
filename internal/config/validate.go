package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInventory(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateInventory() error {
	if c.Inventory.Path == "" {
		return errors.New("inventory.path must be set")
	}
	switch c.Inventory.Format {
	case FormatPlain, FormatQuoted:
	default:
		return fmt.Errorf("inventory.format must be %q or %q, got %q", FormatPlain, FormatQuoted, c.Inventory.Format)
	}
	switch c.Inventory.Backend {
	case BackendText:
	case BackendSQLite:
		if c.Inventory.DatabasePath == "" {
			return errors.New("inventory.database_path must be set when inventory.backend is sqlite")
		}
		if filepath.Clean(c.Inventory.DatabasePath) == filepath.Clean(c.Inventory.Path) {
			return errors.New("inventory.database_path must differ from inventory.path")
		}
	default:
		return fmt.Errorf("inventory.backend must be %q or %q, got %q", BackendText, BackendSQLite, c.Inventory.Backend)
	}
	return nil
}

func (c *Config) validateDisplay() error {
	switch c.Display.Style {
	case StyleClassic, StyleTable:
	default:
		return fmt.Errorf("display.style must be %q or %q, got %q", StyleClassic, StyleTable, c.Display.Style)
	}
	switch c.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("display.color must be auto, always, or never, got %q", c.Display.Color)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
