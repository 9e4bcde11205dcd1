package config

// Backend names accepted by inventory.backend.
const (
	BackendText   = "text"
	BackendSQLite = "sqlite"
)

// Inventory line encodings accepted by inventory.format.
const (
	FormatPlain  = "plain"
	FormatQuoted = "quoted"
)

// Display styles accepted by display.style.
const (
	StyleClassic = "classic"
	StyleTable   = "table"
)

// Colour modes accepted by display.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	defaultConfigPath    = "~/.config/cdinventory/config.toml"
	projectConfigName    = "cdinventory.toml"
	defaultInventoryPath = "CDInventory.txt"
	defaultDatabasePath  = "~/.local/share/cdinventory/inventory.db"
	defaultLogFormat     = "console"
	defaultLogLevel      = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Inventory: Inventory{
			Path:         defaultInventoryPath,
			Format:       FormatPlain,
			Backend:      BackendText,
			DatabasePath: defaultDatabasePath,
			Lock:         true,
		},
		Display: Display{
			Style: StyleClassic,
			Color: ColorAuto,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
