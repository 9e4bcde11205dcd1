// Package inventoryfile converts CD records to and from the line-based
// inventory text file.
//
// Each line holds one record as id,title,artist. The default plain format
// applies no quoting, so a comma inside a title or artist makes the line
// ambiguous; Save logs a warning when that happens and Load keeps only the
// first three fields of each line. The optional quoted format writes RFC 4180
// records and still reads plain files.
//
// Load and Save are stateless and never touch an inventory.Store. File wraps
// them as an inventory.Backend for the shell and CLI commands. SessionLock adds
// an advisory flock so two editors do not clobber each other's saves.
package inventoryfile
