package registration

import (
	"context"

	"github.com/arthur-debert/modshell/pkg/types"
)

// LocalSource is the Source of errors reported by the local registry.
const LocalSource = "local"

// LocalModule pairs an entry with a name used in logs and error records.
type LocalModule struct {
	Name     string
	Register ModuleRegisterFunc
}

// LocalModuleRegistry registers modules bundled with the host.
type LocalModuleRegistry struct {
	*moduleRegistry
}

func NewLocalModuleRegistry() *LocalModuleRegistry {
	return &LocalModuleRegistry{moduleRegistry: newModuleRegistry(LocalSource)}
}

// RegisterModules invokes every entry concurrently and waits for all of them.
// The returned error is only non-nil when the registry was already used.
func (r *LocalModuleRegistry) RegisterModules(ctx context.Context, entries []ModuleRegisterFunc, rt types.Runtime, opts RegisterModulesOptions) ([]RegistrationError, error) {
	named := make([]namedEntry, len(entries))
	for i, fn := range entries {
		named[i] = namedEntry{fn: fn}
	}
	return r.registerModules(ctx, named, rt, opts)
}

// RegisterNamedModules is RegisterModules for modules that carry a name.
func (r *LocalModuleRegistry) RegisterNamedModules(ctx context.Context, modules []LocalModule, rt types.Runtime, opts RegisterModulesOptions) ([]RegistrationError, error) {
	named := make([]namedEntry, len(modules))
	for i, m := range modules {
		named[i] = namedEntry{module: m.Name, fn: m.Register}
	}
	return r.registerModules(ctx, named, rt, opts)
}
