// Package host bootstraps a runtime from configuration: it loads the local
// module manifests, registers local then remote modules, and completes the
// deferred registrations.
package host

import (
	"context"
	"strings"

	"github.com/arthur-debert/modshell/pkg/config"
	"github.com/arthur-debert/modshell/pkg/logging"
	"github.com/arthur-debert/modshell/pkg/manifest"
	"github.com/arthur-debert/modshell/pkg/registration"
	"github.com/arthur-debert/modshell/pkg/runtime"
	"github.com/arthur-debert/modshell/pkg/types"
	"github.com/rs/zerolog"
)

// Options customize Bootstrap beyond what configuration can express
type Options struct {
	// Loader replaces the default manifest.FileLoader for remote modules.
	Loader registration.RemoteLoader

	// Logger is handed to modules. Defaults to a logger writing through
	// the global zerolog logger.
	Logger types.Logger

	// Plugins are registered on the runtime before any module runs.
	Plugins []runtime.Plugin

	// LocalModules are registered alongside the manifests listed in the
	// configuration.
	LocalModules []registration.LocalModule
}

// Result is everything a host needs after bootstrapping
type Result struct {
	Runtime     *runtime.Runtime
	Coordinator *registration.Coordinator

	// Errors holds every per-module failure of both phases
	Errors registration.ModuleRegistrationErrors
}

// Bootstrap builds a runtime and runs both registration phases. Only
// invalid input and protocol violations are returned as errors; failing
// modules are reported in Result.Errors.
func Bootstrap(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	log := logging.GetLogger("host")
	done := logging.LogOperationStart(log, "bootstrap")
	defer done()

	if cfg == nil {
		cfg = config.Default()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewRuntimeLogger(logging.GetLogger("modules"))
	}

	rt := runtime.New(
		runtime.WithLogger(logger),
		runtime.WithManagedRoutesOutletName(cfg.Registration.ManagedRoutesOutlet),
	)
	for _, plugin := range opts.Plugins {
		if err := rt.RegisterPlugin(plugin); err != nil {
			return nil, err
		}
	}

	loader := opts.Loader
	if loader == nil {
		loader = manifest.FileLoader{BaseDir: cfg.BaseDir()}
	}
	coordinator := registration.NewCoordinator(loader)

	local, err := localModules(cfg, opts.LocalModules)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("runtime", rt.ID()).
		Int("local", len(local)).
		Int("remote", len(cfg.Modules.Remote)).
		Msg("Registering modules")

	registerOpts := registration.RegisterModulesOptions{
		Context:        cfg,
		MaxConcurrency: cfg.Registration.MaxConcurrency,
	}

	result := &Result{
		Runtime:     rt,
		Coordinator: coordinator,
	}

	var localErrs, remoteErrs []registration.RegistrationError
	if len(local) > 0 {
		localErrs, err = coordinator.Local.RegisterNamedModules(ctx, local, rt, registerOpts)
		if err != nil {
			return nil, err
		}
	}

	if len(cfg.Modules.Remote) > 0 {
		remoteErrs, err = coordinator.RegisterRemoteModules(ctx, remoteDefinitions(cfg), rt, registerOpts)
		if err != nil {
			return nil, err
		}
	}

	completion, err := coordinator.CompleteModuleRegistrations(ctx, rt, cfg.CompletionData())
	if err != nil {
		return nil, err
	}

	result.Errors = registration.ModuleRegistrationErrors{
		Local:  append(nonNil(localErrs), completion.Local...),
		Remote: append(nonNil(remoteErrs), completion.Remote...),
	}

	logOutcome(log, result)

	return result, nil
}

func localModules(cfg *config.Config, extra []registration.LocalModule) ([]registration.LocalModule, error) {
	modules := make([]registration.LocalModule, 0, len(cfg.Modules.Local)+len(extra))
	for _, path := range cfg.LocalManifestPaths() {
		m, err := manifest.Load(path)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m.LocalModule())
	}
	return append(modules, extra...), nil
}

func remoteDefinitions(cfg *config.Config) []registration.RemoteDefinition {
	defs := make([]registration.RemoteDefinition, 0, len(cfg.Modules.Remote))
	for _, remote := range cfg.Modules.Remote {
		defs = append(defs, registration.RemoteDefinition{Name: remote.Name, URL: remote.URL})
	}
	return defs
}

func nonNil(errs []registration.RegistrationError) []registration.RegistrationError {
	if errs == nil {
		return []registration.RegistrationError{}
	}
	return errs
}

func logOutcome(log zerolog.Logger, result *Result) {
	for _, failure := range result.Errors.All() {
		log.Error().
			Err(failure.Err).
			Str("source", failure.Source).
			Str("module", failure.Module).
			Str("ordinal", failure.Ordinal).
			Msg("Module registration failed")
	}

	if pending := result.Runtime.PendingRouteKeys(); len(pending) > 0 {
		log.Warn().
			Strs("parents", pending).
			Msgf("Some routes are still waiting for a parent that was never registered: %s", strings.Join(pending, ", "))
	}

	log.Info().
		Str("local", string(result.Coordinator.Local.RegistrationStatus())).
		Str("remote", string(result.Coordinator.Remote.RegistrationStatus())).
		Int("errors", result.Errors.Len()).
		Msg("Modules registered")
}
