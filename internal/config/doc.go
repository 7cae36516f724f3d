// Package config loads, normalizes, and validates vidq configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML or YAML files, and honours VIDQ_* environment
// overrides. Downloader() produces the immutable settings snapshot the
// pipeline consumes for a run.
package config
