// Package main hosts the cdinventory CLI entrypoint and command graph.
//
// Running the binary with no subcommand starts the interactive menu. The
// subcommands are scriptable equivalents of the menu (list, add, delete,
// find) plus maintenance tools: export, migrate between the text and SQLite
// backends, status checks, and configuration scaffolding. Configuration,
// logging, backend selection, and the session lock are resolved once in
// commandContext so individual commands stay small.
package main
