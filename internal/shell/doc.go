// Package shell implements the interactive inventory menu.
//
// A Shell owns no globals: it is handed a *inventory.Store and an
// inventory.Backend, loads the backend on startup, and then serves the six
// single-letter commands (load, add, display, delete, save, exit) until the
// user exits or standard input ends. Bad IDs and storage failures are
// returned from Run so the caller decides how the process ends.
package shell
