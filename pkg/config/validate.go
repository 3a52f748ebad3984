package config

import (
	"github.com/arthur-debert/modshell/pkg/errors"
)

// Validate reports the first invalid value of cfg
func Validate(cfg *Config) error {
	switch cfg.Output.Format {
	case FormatAuto, FormatTerm, FormatText, FormatJSON:
	default:
		return invalid("output.format", cfg.Output.Format, "must be one of auto, term, text, json")
	}

	if cfg.Logging.Verbosity < 0 {
		return invalid("logging.verbosity", cfg.Logging.Verbosity, "cannot be negative")
	}

	if cfg.Registration.MaxConcurrency < 0 {
		return invalid("registration.max_concurrency", cfg.Registration.MaxConcurrency, "cannot be negative")
	}

	if cfg.Registration.ManagedRoutesOutlet == "" {
		return invalid("registration.managed_routes_outlet", "", "cannot be empty")
	}

	for i, path := range cfg.Modules.Local {
		if path == "" {
			return invalid("modules.local", i, "contains an empty path")
		}
	}

	seen := make(map[string]bool, len(cfg.Modules.Remote))
	for _, remote := range cfg.Modules.Remote {
		if remote.Name == "" {
			return invalid("modules.remote", remote.URL, "every remote module needs a name")
		}
		if remote.URL == "" {
			return invalid("modules.remote", remote.Name, "every remote module needs a url")
		}
		if seen[remote.Name] {
			return invalid("modules.remote", remote.Name, "remote module names must be unique")
		}
		seen[remote.Name] = true
	}

	return nil
}

func invalid(key string, value interface{}, reason string) error {
	return errors.Newf(errors.ErrConfigValid, "invalid %s: %s", key, reason).
		WithDetail("key", key).
		WithDetail("value", value)
}
