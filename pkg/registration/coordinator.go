package registration

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/arthur-debert/modshell/pkg/types"
	"golang.org/x/sync/errgroup"
)

// ModuleRegistrationErrors groups the per-module failures of both sources.
type ModuleRegistrationErrors struct {
	Local  []RegistrationError `json:"local"`
	Remote []RegistrationError `json:"remote"`
}

// Len returns the total number of failures.
func (e ModuleRegistrationErrors) Len() int {
	return len(e.Local) + len(e.Remote)
}

// All returns local failures followed by remote ones.
func (e ModuleRegistrationErrors) All() []RegistrationError {
	all := make([]RegistrationError, 0, e.Len())
	all = append(all, e.Local...)
	return append(all, e.Remote...)
}

// Coordinator owns one local and one remote registry and drives their
// complete phase together.
type Coordinator struct {
	Local  *LocalModuleRegistry
	Remote *RemoteModuleRegistry
}

// NewCoordinator creates a coordinator with fresh registries. loader may be
// nil when the host has no remote modules.
func NewCoordinator(loader RemoteLoader) *Coordinator {
	return &Coordinator{
		Local:  NewLocalModuleRegistry(),
		Remote: NewRemoteModuleRegistry(loader),
	}
}

func (c *Coordinator) RegisterLocalModules(ctx context.Context, entries []ModuleRegisterFunc, rt types.Runtime, opts RegisterModulesOptions) ([]RegistrationError, error) {
	return c.Local.RegisterModules(ctx, entries, rt, opts)
}

func (c *Coordinator) RegisterRemoteModules(ctx context.Context, defs []RemoteDefinition, rt types.Runtime, opts RegisterModulesOptions) ([]RegistrationError, error) {
	return c.Remote.RegisterModules(ctx, defs, rt, opts)
}

// CompleteModuleRegistrations completes every source that started
// registering. A source still in StatusNone is skipped. Protocol violations
// of either source are joined into the returned error.
func (c *Coordinator) CompleteModuleRegistrations(ctx context.Context, rt types.Runtime, data any) (ModuleRegistrationErrors, error) {
	result := ModuleRegistrationErrors{
		Local:  []RegistrationError{},
		Remote: []RegistrationError{},
	}

	var (
		g         errgroup.Group
		mu        sync.Mutex
		failures  []error
		recordErr = func(err error) {
			mu.Lock()
			failures = append(failures, err)
			mu.Unlock()
		}
	)

	if c.Local.RegistrationStatus() != types.StatusNone {
		g.Go(func() error {
			errs, err := c.Local.CompleteModuleRegistrations(ctx, rt, data)
			if err != nil {
				recordErr(err)
				return nil
			}
			result.Local = errs
			return nil
		})
	}

	if c.Remote.RegistrationStatus() != types.StatusNone {
		g.Go(func() error {
			errs, err := c.Remote.CompleteModuleRegistrations(ctx, rt, data)
			if err != nil {
				recordErr(err)
				return nil
			}
			result.Remote = errs
			return nil
		})
	}

	_ = g.Wait()

	if len(failures) > 0 {
		return result, stderrors.Join(failures...)
	}
	return result, nil
}

// AreModulesRegistered reports whether both sources got past their register
// phase.
func (c *Coordinator) AreModulesRegistered() bool {
	return AreModulesRegistered(c.Local.RegistrationStatus(), c.Remote.RegistrationStatus())
}

// AreModulesReady reports whether both sources completed.
func (c *Coordinator) AreModulesReady() bool {
	return AreModulesReady(c.Local.RegistrationStatus(), c.Remote.RegistrationStatus())
}

// AreModulesRegistered is false until at least one source started
// registering. A source that never started does not hold the other back.
func AreModulesRegistered(local, remote types.RegistrationStatus) bool {
	if local == types.StatusNone && remote == types.StatusNone {
		return false
	}
	return registeredOrIdle(local) && registeredOrIdle(remote)
}

// AreModulesReady is false until at least one source started registering;
// every started source must be ready.
func AreModulesReady(local, remote types.RegistrationStatus) bool {
	if local == types.StatusNone && remote == types.StatusNone {
		return false
	}
	return readyOrIdle(local) && readyOrIdle(remote)
}

func registeredOrIdle(status types.RegistrationStatus) bool {
	return status == types.StatusNone || status.IsSettled()
}

func readyOrIdle(status types.RegistrationStatus) bool {
	return status == types.StatusNone || status == types.StatusReady
}
