// Package config loads, normalizes, and validates the danmuflow TOML
// configuration.
//
// Configuration is resolved from an explicit --config path, then
// ~/.config/danmuflow/config.toml, then a project-local danmuflow.toml.
// Missing files fall back to repository defaults so every command works with
// zero configuration. All path values are tilde-expanded and absolutized
// before other packages see them.
package config
