// Package config handles configuration management for genout.
// It loads configuration in layers: embedded defaults, then the project's
// genout.toml (or an explicit file), then GENOUT_* environment variables,
// then caller overrides such as command-line flags.
package config
