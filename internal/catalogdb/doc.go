// Package catalogdb persists the CD inventory in a SQLite database.
//
// The database mirrors the text file one-to-one: a records table keyed by
// insertion position so duplicate IDs and ordering survive a round trip.
// Save replaces the whole table inside one transaction. When the embedded
// schema changes, update schema.sql and bump schemaVersion; existing
// databases with another version are rejected with ErrSchemaMismatch.
package catalogdb
