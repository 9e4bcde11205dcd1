// Package inventory holds the in-memory CD record table and the operations
// that mutate it.
//
// A Store is an ordered list of Records owned by a single editing session. It
// never touches the filesystem: loading and saving go through a Backend
// (see internal/inventoryfile and internal/catalogdb) which the caller invokes
// explicitly. IDs are user supplied and are not required to be unique; Remove
// deletes only the first match so duplicate entries can be cleaned up one at
// a time.
//
// The package also owns the display contract used by the interactive shell
// (WriteInventory) and the FormatError type returned whenever text cannot be
// coerced into a record ID.
package inventory
