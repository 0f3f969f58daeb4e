// Package config loads, validates, and defaults the TOML configuration
// used by the authorlink CLI and resolver.
//
// Configuration is resolved from (in order): an explicit --config flag,
// ~/.config/authorlink/config.toml, then ./authorlink.toml. Missing files
// fall back to Default(). Path fields support ~ expansion.
package config
