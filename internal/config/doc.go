// Package config loads, normalizes, and validates avreap's configuration
// document.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads the TOML configuration file, and validates the result
// before the daemon ever touches a filesystem root. Always obtain settings
// through this package so downstream code receives sanitized paths,
// canonical log formats, and clear validation errors.
package config
