// Package config loads and validates the mrs-tools configuration file. The
// file is TOML at ~/.config/mrs-tools/config.toml unless overridden; all
// path fields come back expanded. A missing file is not an error, defaults
// apply.
package config
