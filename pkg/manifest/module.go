package manifest

import (
	"context"
	"fmt"

	"github.com/arthur-debert/modshell/pkg/errors"
	"github.com/arthur-debert/modshell/pkg/registration"
	"github.com/arthur-debert/modshell/pkg/types"
)

// Entry returns the module entry point registering m. The deferred section,
// if any, is returned as a deferred registration.
func (m *Manifest) Entry() registration.ModuleRegisterFunc {
	return func(_ context.Context, rt types.Runtime, _ any) (registration.Registration, error) {
		if err := m.register(rt, m.Routes, m.Navigation); err != nil {
			return registration.Registration{}, err
		}

		if m.Deferred.IsEmpty() {
			return registration.NoDeferral(), nil
		}

		return registration.Defer(func(_ context.Context, data any) error {
			if !m.Deferred.Matches(data) {
				rt.Logger().Debug(fmt.Sprintf("[%s] Skipping deferred registrations, completion data does not match.", m.Name))
				return nil
			}
			return m.register(rt, m.Deferred.Routes, m.Deferred.Navigation)
		}), nil
	}
}

// LocalModule pairs the entry with the manifest name
func (m *Manifest) LocalModule() registration.LocalModule {
	return registration.LocalModule{Name: m.Name, Register: m.Entry()}
}

func (m *Manifest) register(rt types.Runtime, routeEntries []RouteEntry, navEntries []NavigationEntry) error {
	for _, entry := range routeEntries {
		if _, err := rt.RegisterRoute(entry.Route, entry.RegisterRouteOptions); err != nil {
			return errors.Wrapf(err, errors.ErrModuleRegister, "module %q failed to register a route", m.Name).
				WithDetail("module", m.Name)
		}
	}

	for _, entry := range navEntries {
		rt.RegisterNavigationItem(entry.NavigationItem, entry.Menu)
	}

	return nil
}

// Matches reports whether data satisfies When. data is the completion data
// given to CompleteModuleRegistrations.
func (d DeferredSection) Matches(data any) bool {
	if len(d.When) == 0 {
		return true
	}

	lookup := func(string) (string, bool) { return "", false }
	switch values := data.(type) {
	case map[string]string:
		lookup = func(key string) (string, bool) {
			v, ok := values[key]
			return v, ok
		}
	case map[string]any:
		lookup = func(key string) (string, bool) {
			v, ok := values[key]
			if !ok {
				return "", false
			}
			return fmt.Sprint(v), true
		}
	}

	for key, want := range d.When {
		got, ok := lookup(key)
		if !ok || got != want {
			return false
		}
	}
	return true
}
