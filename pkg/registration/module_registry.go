package registration

import (
	"context"
	"fmt"
	"sync"

	"github.com/arthur-debert/modshell/pkg/errors"
	"github.com/arthur-debert/modshell/pkg/types"
	"golang.org/x/sync/errgroup"
)

// namedEntry is an entry plus what is known about its module for
// diagnostics.
type namedEntry struct {
	module string
	url    string
	fn     ModuleRegisterFunc
}

// moduleRegistry is the state machine shared by the local and the remote
// registries.
type moduleRegistry struct {
	source string

	mu             sync.Mutex
	status         types.RegistrationStatus
	deferred       []DeferredRegistration
	maxConcurrency int
}

func newModuleRegistry(source string) *moduleRegistry {
	return &moduleRegistry{
		source: source,
		status: types.StatusNone,
	}
}

// RegistrationStatus returns the current lifecycle state of this source.
func (r *moduleRegistry) RegistrationStatus() types.RegistrationStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.status
}

// DeferredRegistrations returns the deferred registrations captured during
// the register phase, in submission order.
func (r *moduleRegistry) DeferredRegistrations() []DeferredRegistration {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]DeferredRegistration(nil), r.deferred...)
}

func (r *moduleRegistry) registerModules(ctx context.Context, entries []namedEntry, rt types.Runtime, opts RegisterModulesOptions) ([]RegistrationError, error) {
	r.mu.Lock()
	if r.status != types.StatusNone {
		r.mu.Unlock()
		return nil, errors.Newf(errors.ErrProtocolViolation,
			"[%s] RegisterModules can only be called once", r.source).
			WithDetail("source", r.source)
	}
	r.status = types.StatusInProgress
	r.maxConcurrency = opts.MaxConcurrency
	r.mu.Unlock()

	logger := rt.Logger()
	total := len(entries)

	logger.Debug(fmt.Sprintf("[%s] Found %d %s module%s to register.", r.source, total, r.source, plural(total)))

	// One slot per entry keeps deferred registrations and errors in
	// submission order whatever the completion order.
	deferredSlots := make([]DeferredRegistrationFunc, total)
	errorSlots := make([]*RegistrationError, total)

	r.fanOut(total, func(i int) {
		entry := entries[i]
		ordinal := fmt.Sprintf("%d/%d", i+1, total)

		logger.Debug(fmt.Sprintf("[%s] %s Registering %s module.", r.source, ordinal, r.source))

		registration, err := invokeEntry(ctx, entry.fn, rt, opts.Context)
		if err != nil {
			logger.Error(fmt.Sprintf("[%s] %s An error occurred while registering a %s module.", r.source, ordinal, r.source), err)
			errorSlots[i] = &RegistrationError{
				Source:  r.source,
				Ordinal: ordinal,
				Module:  entry.module,
				URL:     entry.url,
				Err:     err,
			}
			return
		}

		if registration.IsDeferred() {
			deferredSlots[i] = registration.deferred
		}

		logger.Debug(fmt.Sprintf("[%s] %s %s module registration completed.", r.source, ordinal, r.source))
	})

	deferred := make([]DeferredRegistration, 0)
	for i, fn := range deferredSlots {
		if fn != nil {
			deferred = append(deferred, DeferredRegistration{
				Ordinal: fmt.Sprintf("%d/%d", i+1, total),
				Module:  entries[i].module,
				Fn:      fn,
			})
		}
	}

	r.mu.Lock()
	r.deferred = deferred
	if len(deferred) > 0 {
		r.status = types.StatusRegistered
	} else {
		r.status = types.StatusReady
	}
	r.mu.Unlock()

	return compactErrors(errorSlots), nil
}

// CompleteModuleRegistrations runs the deferred registrations captured by the
// register phase with data. When no module deferred anything it is a no-op.
func (r *moduleRegistry) CompleteModuleRegistrations(ctx context.Context, rt types.Runtime, data any) ([]RegistrationError, error) {
	r.mu.Lock()
	if r.status == types.StatusNone || r.status == types.StatusInProgress {
		r.mu.Unlock()
		return nil, errors.Newf(errors.ErrProtocolViolation,
			"[%s] CompleteModuleRegistrations can only be called once RegisterModules terminated", r.source).
			WithDetail("source", r.source).
			WithDetail("status", string(r.status))
	}
	if r.status != types.StatusRegistered && len(r.deferred) > 0 {
		r.mu.Unlock()
		return nil, errors.Newf(errors.ErrProtocolViolation,
			"[%s] CompleteModuleRegistrations can only be called once", r.source).
			WithDetail("source", r.source).
			WithDetail("status", string(r.status))
	}
	if r.status == types.StatusReady {
		// No deferred registrations were returned, skip the completion phase.
		r.mu.Unlock()
		return []RegistrationError{}, nil
	}
	r.status = types.StatusInCompletion
	deferred := r.deferred
	r.mu.Unlock()

	logger := rt.Logger()
	errorSlots := make([]*RegistrationError, len(deferred))

	r.fanOut(len(deferred), func(i int) {
		registration := deferred[i]

		logger.Debug(fmt.Sprintf("[%s] %s Completing %s module deferred registration.", r.source, registration.Ordinal, r.source))

		if err := invokeDeferred(ctx, registration.Fn, data); err != nil {
			logger.Error(fmt.Sprintf("[%s] %s An error occurred while completing the registration of a %s module.", r.source, registration.Ordinal, r.source), err)
			errorSlots[i] = &RegistrationError{
				Source:  r.source,
				Ordinal: registration.Ordinal,
				Module:  registration.Module,
				Err:     err,
			}
			return
		}

		logger.Debug(fmt.Sprintf("[%s] %s Completed %s module deferred registration.", r.source, registration.Ordinal, r.source))
	})

	r.mu.Lock()
	r.status = types.StatusReady
	r.mu.Unlock()

	return compactErrors(errorSlots), nil
}

// fanOut runs fn for every index and waits for all of them. Workers never
// return an error so the group never cancels siblings.
func (r *moduleRegistry) fanOut(n int, fn func(i int)) {
	var g errgroup.Group
	if r.maxConcurrency > 0 {
		g.SetLimit(r.maxConcurrency)
	}
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

func invokeEntry(ctx context.Context, fn ModuleRegisterFunc, rt types.Runtime, regCtx any) (registration Registration, err error) {
	if fn == nil {
		return Registration{}, errors.New(errors.ErrInvalidInput, "module register function is nil")
	}

	defer func() {
		if p := recover(); p != nil {
			err = errors.Newf(errors.ErrModulePanic, "module register function panicked: %v", p)
		}
	}()

	return fn(ctx, rt, regCtx)
}

func invokeDeferred(ctx context.Context, fn DeferredRegistrationFunc, data any) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Newf(errors.ErrModulePanic, "deferred registration panicked: %v", p)
		}
	}()

	return fn(ctx, data)
}

func compactErrors(slots []*RegistrationError) []RegistrationError {
	out := make([]RegistrationError, 0)
	for _, slot := range slots {
		if slot != nil {
			out = append(out, *slot)
		}
	}
	return out
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
