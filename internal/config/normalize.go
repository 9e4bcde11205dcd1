package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeInventory(); err != nil {
		return err
	}
	c.normalizeDisplay()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeInventory() error {
	var err error
	if strings.TrimSpace(c.Inventory.Path) == "" {
		c.Inventory.Path = defaultInventoryPath
	}
	if c.Inventory.Path, err = expandPath(strings.TrimSpace(c.Inventory.Path)); err != nil {
		return fmt.Errorf("inventory.path: %w", err)
	}
	if strings.TrimSpace(c.Inventory.DatabasePath) == "" {
		c.Inventory.DatabasePath = defaultDatabasePath
	}
	if c.Inventory.DatabasePath, err = expandPath(strings.TrimSpace(c.Inventory.DatabasePath)); err != nil {
		return fmt.Errorf("inventory.database_path: %w", err)
	}
	c.Inventory.Format = strings.ToLower(strings.TrimSpace(c.Inventory.Format))
	if c.Inventory.Format == "" {
		c.Inventory.Format = FormatPlain
	}
	c.Inventory.Backend = strings.ToLower(strings.TrimSpace(c.Inventory.Backend))
	if c.Inventory.Backend == "" {
		c.Inventory.Backend = BackendText
	}
	return nil
}

func (c *Config) normalizeDisplay() {
	c.Display.Style = strings.ToLower(strings.TrimSpace(c.Display.Style))
	if c.Display.Style == "" {
		c.Display.Style = StyleClassic
	}
	c.Display.Color = strings.ToLower(strings.TrimSpace(c.Display.Color))
	if c.Display.Color == "" {
		c.Display.Color = ColorAuto
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
