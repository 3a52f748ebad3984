package registration

import (
	"context"
	"sync"

	"github.com/arthur-debert/modshell/pkg/errors"
	"github.com/arthur-debert/modshell/pkg/types"
)

// RemoteSource is the Source of errors reported by the remote registry.
const RemoteSource = "remote"

// RemoteDefinition identifies a module the host loads at runtime.
type RemoteDefinition struct {
	Name string `koanf:"name" toml:"name" yaml:"name" json:"name"`
	URL  string `koanf:"url" toml:"url" yaml:"url" json:"url"`
}

// RemoteModule is what a loader produces for a definition.
type RemoteModule struct {
	Register ModuleRegisterFunc
}

// RemoteLoader resolves a definition into a module. How the module is
// fetched is up to the implementation.
type RemoteLoader interface {
	Load(ctx context.Context, def RemoteDefinition) (RemoteModule, error)
}

// RemoteLoaderFunc adapts a function to RemoteLoader.
type RemoteLoaderFunc func(ctx context.Context, def RemoteDefinition) (RemoteModule, error)

func (f RemoteLoaderFunc) Load(ctx context.Context, def RemoteDefinition) (RemoteModule, error) {
	return f(ctx, def)
}

// RemoteModuleRegistry registers modules obtained through a RemoteLoader.
// Loading is part of each module's entry, so a load failure is reported like
// any other registration failure.
type RemoteModuleRegistry struct {
	*moduleRegistry

	loaderMu sync.RWMutex
	loader   RemoteLoader
}

func NewRemoteModuleRegistry(loader RemoteLoader) *RemoteModuleRegistry {
	return &RemoteModuleRegistry{
		moduleRegistry: newModuleRegistry(RemoteSource),
		loader:         loader,
	}
}

// SetLoader replaces the loader used by the next RegisterModules call.
func (r *RemoteModuleRegistry) SetLoader(loader RemoteLoader) {
	r.loaderMu.Lock()
	defer r.loaderMu.Unlock()

	r.loader = loader
}

func (r *RemoteModuleRegistry) currentLoader() RemoteLoader {
	r.loaderMu.RLock()
	defer r.loaderMu.RUnlock()

	return r.loader
}

// RegisterModules loads then registers every definition concurrently.
func (r *RemoteModuleRegistry) RegisterModules(ctx context.Context, defs []RemoteDefinition, rt types.Runtime, opts RegisterModulesOptions) ([]RegistrationError, error) {
	loader := r.currentLoader()

	entries := make([]namedEntry, len(defs))
	for i, def := range defs {
		entries[i] = namedEntry{
			module: def.Name,
			url:    def.URL,
			fn:     remoteEntry(loader, def),
		}
	}
	return r.registerModules(ctx, entries, rt, opts)
}

func remoteEntry(loader RemoteLoader, def RemoteDefinition) ModuleRegisterFunc {
	return func(ctx context.Context, rt types.Runtime, regCtx any) (Registration, error) {
		if loader == nil {
			return Registration{}, errors.Newf(errors.ErrRemoteLoad,
				"no remote loader configured for module %q", def.Name).
				WithDetail("module", def.Name).
				WithDetail("url", def.URL)
		}

		module, err := loader.Load(ctx, def)
		if err != nil {
			return Registration{}, errors.Wrapf(err, errors.ErrRemoteLoad,
				"failed to load remote module %q from %q", def.Name, def.URL).
				WithDetail("module", def.Name).
				WithDetail("url", def.URL)
		}
		if module.Register == nil {
			return Registration{}, errors.Newf(errors.ErrRemoteLoad,
				"remote module %q has no register function", def.Name).
				WithDetail("module", def.Name).
				WithDetail("url", def.URL)
		}

		return module.Register(ctx, rt, regCtx)
	}
}
