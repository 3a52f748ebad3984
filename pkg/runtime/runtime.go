// Package runtime implements the handle modules receive while registering.
// It owns the route and navigation registries and the host plugins.
package runtime

import (
	"fmt"

	"github.com/arthur-debert/modshell/pkg/errors"
	"github.com/arthur-debert/modshell/pkg/logging"
	"github.com/arthur-debert/modshell/pkg/navigation"
	"github.com/arthur-debert/modshell/pkg/registry"
	"github.com/arthur-debert/modshell/pkg/routes"
	"github.com/arthur-debert/modshell/pkg/types"
	"github.com/google/uuid"
)

// Plugin extends the runtime with a host capability modules can look up by
// name.
type Plugin interface {
	Name() string
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger handed to modules. Defaults to a no-op logger.
func WithLogger(logger types.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithManagedRoutesOutletName overrides the implicit parent of routes that
// are neither hoisted nor nested.
func WithManagedRoutesOutletName(name string) Option {
	return func(r *Runtime) {
		r.outletName = name
	}
}

// Runtime is the default types.Runtime implementation.
type Runtime struct {
	id         string
	logger     types.Logger
	outletName string

	routes     *routes.Registry
	navigation *navigation.Registry
	plugins    *registry.Registry[Plugin]
}

var _ types.Runtime = (*Runtime)(nil)

func New(opts ...Option) *Runtime {
	r := &Runtime{
		id:         uuid.NewString(),
		logger:     logging.NopLogger(),
		navigation: navigation.NewRegistry(),
		plugins:    registry.New[Plugin](),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.routes = routes.NewRegistry(routes.WithManagedRoutesOutletName(r.outletName))
	return r
}

// ID uniquely identifies this runtime instance in logs.
func (r *Runtime) ID() string {
	return r.id
}

func (r *Runtime) Logger() types.Logger {
	return r.logger
}

// RegisterRoute adds route to the route tree. A route whose parent is not
// registered yet is parked until the parent shows up.
func (r *Runtime) RegisterRoute(route routes.Route, opts routes.RegisterRouteOptions) (routes.AddResult, error) {
	result, err := r.routes.Add(route, opts)
	if err != nil {
		r.logger.Error(fmt.Sprintf("[runtime] Failed to register route %q.", routeLabel(route)), err)
		return result, err
	}

	if result.Status == routes.StatusPending {
		r.logger.Debug(fmt.Sprintf("[runtime] Route %q is pending registration until its parent is registered.", routeLabel(route)))
	}
	for _, completed := range result.CompletedPendingRegistrations {
		r.logger.Debug(fmt.Sprintf("[runtime] Pending route %q has been registered.", routeLabel(completed)))
	}

	return result, nil
}

// Routes returns the current route tree. The slice is shared and must not
// be modified.
func (r *Runtime) Routes() []routes.Route {
	return r.routes.Routes()
}

// RouteSnapshot returns the current route tree with its revision.
func (r *Runtime) RouteSnapshot() *routes.Snapshot {
	return r.routes.Snapshot()
}

// PendingRoutes returns the routes still waiting for their parent, keyed by
// the missing parent.
func (r *Runtime) PendingRoutes() map[string][]routes.Route {
	return r.routes.PendingRegistrations()
}

// PendingRouteKeys returns the sorted parent keys routes are waiting for.
func (r *Runtime) PendingRouteKeys() []string {
	return r.routes.PendingKeys()
}

// FindRoute looks a route up by its path or name.
func (r *Runtime) FindRoute(key string) (routes.Route, bool) {
	return r.routes.Find(key)
}

// ManagedRoutes returns the placeholder route under which modules' routes
// are nested by default.
func (r *Runtime) ManagedRoutes() routes.Route {
	return r.routes.OutletRoute()
}

func (r *Runtime) RegisterNavigationItem(item navigation.NavigationItem, menuID string) {
	r.navigation.Add(item, menuID)
}

func (r *Runtime) GetNavigationItems(menuID string) []navigation.NavigationItem {
	return r.navigation.Items(menuID)
}

// Menus returns the menu ids that received items, in first-use order.
func (r *Runtime) Menus() []string {
	return r.navigation.Menus()
}

// RegisterPlugin makes p available to modules under p.Name().
func (r *Runtime) RegisterPlugin(p Plugin) error {
	if p == nil {
		return errors.New(errors.ErrInvalidInput, "plugin cannot be nil")
	}
	return r.plugins.Register(p.Name(), p)
}

// Plugin returns the plugin registered under name.
func (r *Runtime) Plugin(name string) (Plugin, error) {
	return r.plugins.Get(name)
}

// Plugins returns every plugin in registration order.
func (r *Runtime) Plugins() []Plugin {
	return r.plugins.Values()
}

// PluginAs returns the plugin registered under name as a T.
func PluginAs[T Plugin](r *Runtime, name string) (T, error) {
	var zero T

	p, err := r.Plugin(name)
	if err != nil {
		return zero, err
	}

	typed, ok := p.(T)
	if !ok {
		return zero, errors.Newf(errors.ErrInvalidInput, "plugin %q is a %T", name, p).
			WithDetail("plugin", name)
	}
	return typed, nil
}

func routeLabel(route routes.Route) string {
	if key := routes.CreateIndexKey(route); key != "" {
		return key
	}
	if route.Index {
		return "(index)"
	}
	return "(anonymous)"
}
