// Package config provides snapnav configuration.
//
// Settings are resolved from four layers, later layers overriding earlier:
//
//  1. Built-in defaults (Default)
//  2. The TOML file given to Load, usually snapnav.toml
//  3. SNAPNAV_* environment variables
//  4. Command line flags, applied by the caller through Set
//
// Every setting has a dotted path such as "logging.level" or
// "buffer.history_limit"; the same path names the TOML key, the
// environment variable (SNAPNAV_LOG_LEVEL) and the argument to Set.
//
// Example file:
//
//	[logging]
//	level = "debug"
//	format = "json"
//
//	[buffer]
//	line_ending = "lf"
//	history_limit = 50
//
//	[script]
//	timeout = "2s"
//
//	[watch]
//	debounce = "100ms"
package config
