// Package config loads modshell's configuration. Sources are layered with
// koanf: embedded defaults, then the configuration file (TOML or YAML), then
// MODSHELL_* environment variables, then explicit overrides such as command
// line flags.
package config
