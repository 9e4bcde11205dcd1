// Package config loads, normalizes, and validates cdinventory configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts and working-directory relative inventory paths), and reads TOML
// files. Always obtain settings through this package so downstream code
// receives absolute paths, canonical enum values, and clear validation errors.
package config
