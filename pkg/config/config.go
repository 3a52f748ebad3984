package config

import (
	"path/filepath"
)

// Output formats
const (
	FormatAuto = "auto"
	FormatTerm = "term"
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the complete modshell configuration
type Config struct {
	Logging      LoggingConfig      `koanf:"logging" toml:"logging" json:"logging"`
	Output       OutputConfig       `koanf:"output" toml:"output" json:"output"`
	Registration RegistrationConfig `koanf:"registration" toml:"registration" json:"registration"`
	Modules      ModulesConfig      `koanf:"modules" toml:"modules" json:"modules"`
	Completion   CompletionConfig   `koanf:"completion" toml:"completion" json:"completion"`

	// Source is the configuration file that was loaded, if any.
	Source string `koanf:"-" toml:"-" json:"source,omitempty"`
}

type LoggingConfig struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity" json:"verbosity"`
}

type OutputConfig struct {
	Format string `koanf:"format" toml:"format" json:"format"`
}

// RegistrationConfig tunes the registration phases
type RegistrationConfig struct {
	MaxConcurrency      int    `koanf:"max_concurrency" toml:"max_concurrency" json:"maxConcurrency"`
	ManagedRoutesOutlet string `koanf:"managed_routes_outlet" toml:"managed_routes_outlet" json:"managedRoutesOutlet"`
}

// ModulesConfig lists the modules the host registers
type ModulesConfig struct {
	Local  []string       `koanf:"local" toml:"local" json:"local"`
	Remote []RemoteModule `koanf:"remote" toml:"remote" json:"remote"`
}

// RemoteModule points at a module loaded through the remote loader
type RemoteModule struct {
	Name string `koanf:"name" toml:"name" json:"name"`
	URL  string `koanf:"url" toml:"url" json:"url"`
}

// CompletionConfig holds what deferred registrations receive
type CompletionConfig struct {
	Data map[string]string `koanf:"data" toml:"data" json:"data"`
}

// BaseDir is the directory relative module paths are resolved against: the
// directory of the configuration file, or the working directory.
func (c *Config) BaseDir() string {
	if c.Source == "" {
		return "."
	}
	return filepath.Dir(c.Source)
}

// ResolvePath makes path absolute relative to BaseDir.
func (c *Config) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.BaseDir(), path)
}

// LocalManifestPaths returns the local module manifests with relative paths
// resolved.
func (c *Config) LocalManifestPaths() []string {
	resolved := make([]string, 0, len(c.Modules.Local))
	for _, path := range c.Modules.Local {
		resolved = append(resolved, c.ResolvePath(path))
	}
	return resolved
}

// CompletionData returns the data passed to deferred registrations. It is
// never nil.
func (c *Config) CompletionData() map[string]string {
	data := make(map[string]string, len(c.Completion.Data))
	for k, v := range c.Completion.Data {
		data[k] = v
	}
	return data
}
