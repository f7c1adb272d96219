// Package config loads, normalizes, and validates hardsub configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI and detection engine need: detection filters, ROI geometry, tracker
// tolerances, classification thresholds, and ensemble voting settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
