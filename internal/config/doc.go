// Package config loads, normalizes, and validates reel configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the REEL_DATA_DIR environment fallback. The Config
// type centralizes the knobs the CLI needs: where projects are stored, the
// frame rate and canvas of new projects, undo depth, sampling parallelism,
// and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
