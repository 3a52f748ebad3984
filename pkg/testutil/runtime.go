package testutil

import (
	"sync"

	"github.com/arthur-debert/modshell/pkg/navigation"
	"github.com/arthur-debert/modshell/pkg/routes"
	"github.com/arthur-debert/modshell/pkg/types"
)

// LogEntry is a line recorded by RecordingLogger
type LogEntry struct {
	Level string
	Msg   string
	Err   error
}

// RecordingLogger is a types.Logger keeping every line in memory
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ types.Logger = (*RecordingLogger)(nil)

func (l *RecordingLogger) Debug(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: "debug", Msg: msg})
}

func (l *RecordingLogger) Error(msg string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: "error", Msg: msg, Err: err})
}

// Entries returns every recorded line
func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

// Errors returns the lines recorded through Error
func (l *RecordingLogger) Errors() []LogEntry {
	var out []LogEntry
	for _, e := range l.Entries() {
		if e.Level == "error" {
			out = append(out, e)
		}
	}
	return out
}

// FakeRuntime is a minimal types.Runtime backed by real route and
// navigation registries and a RecordingLogger.
type FakeRuntime struct {
	RouteRegistry *routes.Registry
	Navigation    *navigation.Registry
	Log           *RecordingLogger
}

var _ types.Runtime = (*FakeRuntime)(nil)

func NewFakeRuntime() *FakeRuntime {
	return &FakeRuntime{
		RouteRegistry: routes.NewRegistry(),
		Navigation:    navigation.NewRegistry(),
		Log:           &RecordingLogger{},
	}
}

func (r *FakeRuntime) RegisterRoute(route routes.Route, opts routes.RegisterRouteOptions) (routes.AddResult, error) {
	return r.RouteRegistry.Add(route, opts)
}

func (r *FakeRuntime) Routes() []routes.Route {
	return r.RouteRegistry.Routes()
}

func (r *FakeRuntime) RegisterNavigationItem(item navigation.NavigationItem, menuID string) {
	r.Navigation.Add(item, menuID)
}

func (r *FakeRuntime) GetNavigationItems(menuID string) []navigation.NavigationItem {
	return r.Navigation.Items(menuID)
}

func (r *FakeRuntime) Logger() types.Logger {
	return r.Log
}
