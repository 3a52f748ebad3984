package routes

import (
	"strings"
)

// Visibility controls whether a route requires an authenticated session.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
)

// ManagedRoutesOutletName is the default parent of every route registered
// without an explicit parent and without Hoist.
const ManagedRoutesOutletName = "__managed-routes-outlet__"

// ManagedRoutes is the placeholder a host nests inside its layout to mark
// where module routes are rendered.
var ManagedRoutes = Route{Name: ManagedRoutesOutletName}

// Route is a fragment of the route tree. Path may be empty for pathless
// layout routes; Name gives such routes an index key.
type Route struct {
	Path       string         `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Name       string         `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Index      bool           `json:"index,omitempty" yaml:"index,omitempty" toml:"index,omitempty"`
	Visibility Visibility     `json:"visibility,omitempty" yaml:"visibility,omitempty" toml:"visibility,omitempty"`
	Element    string         `json:"element,omitempty" yaml:"element,omitempty" toml:"element,omitempty"`
	Meta       map[string]any `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
	Children   []Route        `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// RegisterRouteOptions selects where a route is inserted. Hoist places the
// route at the root of the tree and cannot be combined with a parent.
type RegisterRouteOptions struct {
	Hoist      bool   `json:"hoist,omitempty" yaml:"hoist,omitempty" toml:"hoist,omitempty"`
	ParentPath string `json:"parentPath,omitempty" yaml:"parent_path,omitempty" toml:"parent_path,omitempty"`
	ParentName string `json:"parentName,omitempty" yaml:"parent_name,omitempty" toml:"parent_name,omitempty"`
}

// RegistrationStatus is the outcome of a single Add.
type RegistrationStatus string

const (
	StatusPending    RegistrationStatus = "pending"
	StatusRegistered RegistrationStatus = "registered"
)

// AddResult reports whether the route was attached and which previously
// parked routes got attached as a side effect.
type AddResult struct {
	Status                        RegistrationStatus
	CompletedPendingRegistrations []Route
}

// NormalizePath strips a trailing slash unless the path is the root.
func NormalizePath(path string) string {
	if path != "" && path != "/" && strings.HasSuffix(path, "/") {
		return path[:len(path)-1]
	}
	return path
}

// CreateIndexKey returns the normalized path, else the name, else "" for
// routes that can never be a parent.
func CreateIndexKey(route Route) string {
	if route.Path != "" {
		return NormalizePath(route.Path)
	}
	return route.Name
}

// identifier is used in error messages only.
func (r Route) identifier() string {
	switch {
	case r.Path != "":
		return r.Path
	case r.Name != "":
		return r.Name
	default:
		return "(no identifier)"
	}
}

// Walk visits routes depth first, parents before children. Returning false
// from fn skips the children of that route.
func Walk(routes []Route, fn func(route Route, depth int) bool) {
	walk(routes, 0, fn)
}

func walk(routes []Route, depth int, fn func(route Route, depth int) bool) {
	for _, route := range routes {
		if fn(route, depth) {
			walk(route.Children, depth+1, fn)
		}
	}
}
