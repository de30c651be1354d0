// Package config loads, normalizes, and validates assetmirror configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes the mirror
// root, inbox name, database location, and the reference patterns used to
// recognise catalog elements, so every pass receives the same immutable view.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
