package registration

import (
	"context"
	"sync"

	"github.com/arthur-debert/modshell/pkg/types"
)

var (
	defaultOnce        sync.Once
	defaultCoordinator *Coordinator
)

// Default returns the process-wide coordinator. Its remote registry has no
// loader until one is set with Default().Remote.SetLoader.
func Default() *Coordinator {
	defaultOnce.Do(func() {
		defaultCoordinator = NewCoordinator(nil)
	})
	return defaultCoordinator
}

// RegisterLocalModules registers entries on the default coordinator.
func RegisterLocalModules(ctx context.Context, entries []ModuleRegisterFunc, rt types.Runtime, opts RegisterModulesOptions) ([]RegistrationError, error) {
	return Default().RegisterLocalModules(ctx, entries, rt, opts)
}

// RegisterRemoteModules registers defs on the default coordinator.
func RegisterRemoteModules(ctx context.Context, defs []RemoteDefinition, rt types.Runtime, opts RegisterModulesOptions) ([]RegistrationError, error) {
	return Default().RegisterRemoteModules(ctx, defs, rt, opts)
}

// CompleteModuleRegistrations completes the default coordinator.
func CompleteModuleRegistrations(ctx context.Context, rt types.Runtime, data any) (ModuleRegistrationErrors, error) {
	return Default().CompleteModuleRegistrations(ctx, rt, data)
}
