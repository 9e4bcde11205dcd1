// Package logging assembles structured slog loggers and the field helpers used
// across the inventory editor.
//
// It owns the console and JSON handlers, level parsing, output routing (stderr
// plus an optional log file), component loggers, and the session ID handler
// that tags every line written during one interactive session. A no-op logger
// is provided for tests and wiring code that cannot fail.
//
// Logs never go to stdout by default: stdout belongs to the menu and inventory
// display.
package logging
