// Package config loads, normalizes, and validates the TOML configuration
// file. All path fields are expanded to absolute paths during Load; the rest
// of the repository never re-resolves them.
package config
