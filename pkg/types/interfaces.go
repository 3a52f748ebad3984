package types

import (
	"github.com/arthur-debert/modshell/pkg/navigation"
	"github.com/arthur-debert/modshell/pkg/routes"
)

// Logger is the leveled logger handed to modules.
type Logger interface {
	Debug(msg string)
	Error(msg string, err error)
}

// Runtime is the handle every module entry receives. Modules contribute
// routes and navigation items through it.
type Runtime interface {
	RegisterRoute(route routes.Route, opts routes.RegisterRouteOptions) (routes.AddResult, error)
	Routes() []routes.Route
	RegisterNavigationItem(item navigation.NavigationItem, menuID string)
	GetNavigationItems(menuID string) []navigation.NavigationItem
	Logger() Logger
}
