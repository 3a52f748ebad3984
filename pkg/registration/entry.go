package registration

import (
	"context"
	"fmt"

	"github.com/arthur-debert/modshell/pkg/types"
)

// ModuleRegisterFunc is the entry point of a module. regCtx is the optional
// value passed through RegisterModulesOptions.Context.
type ModuleRegisterFunc func(ctx context.Context, rt types.Runtime, regCtx any) (Registration, error)

// DeferredRegistrationFunc runs during the complete phase with the data given
// to CompleteModuleRegistrations.
type DeferredRegistrationFunc func(ctx context.Context, data any) error

type registrationKind int

const (
	kindNone registrationKind = iota
	kindDeferred
)

// Registration is what an entry returns: either nothing more to do, or a
// deferred registration to run in the complete phase.
type Registration struct {
	kind     registrationKind
	deferred DeferredRegistrationFunc
}

// NoDeferral is returned by modules that are fully registered after their
// entry ran.
func NoDeferral() Registration {
	return Registration{kind: kindNone}
}

// Defer schedules fn for the complete phase. A nil fn is the same as
// NoDeferral.
func Defer(fn DeferredRegistrationFunc) Registration {
	if fn == nil {
		return NoDeferral()
	}
	return Registration{kind: kindDeferred, deferred: fn}
}

// IsDeferred reports whether the module returned a deferred registration.
func (r Registration) IsDeferred() bool {
	return r.kind == kindDeferred
}

// DeferredRegistration is a deferred registration captured during the
// register phase. Ordinal is the 1-based position of its module, e.g. "2/5".
type DeferredRegistration struct {
	Ordinal string
	Module  string
	Fn      DeferredRegistrationFunc
}

// RegistrationError records the failure of a single module. It is returned,
// never raised, so one module cannot abort the batch.
type RegistrationError struct {
	Source  string
	Ordinal string
	Module  string
	URL     string
	Err     error
}

func (e RegistrationError) Error() string {
	name := e.Ordinal
	if e.Module != "" {
		name = fmt.Sprintf("%s %s", e.Ordinal, e.Module)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Source, name, e.Err)
}

func (e RegistrationError) Unwrap() error {
	return e.Err
}

// RegisterModulesOptions configures a register phase.
type RegisterModulesOptions struct {
	// Context is passed to every entry as regCtx.
	Context any

	// MaxConcurrency bounds how many entries (and later deferred
	// registrations) run at once. Zero means unbounded.
	MaxConcurrency int
}
