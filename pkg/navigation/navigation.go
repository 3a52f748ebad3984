// Package navigation collects navigation items contributed by modules,
// grouped by menu.
package navigation

import (
	"sort"
	"sync"
)

// RootMenuID is the menu items land in when no menu is given.
const RootMenuID = "root"

// NavigationItem is a single entry of a menu. Higher Priority renders first.
type NavigationItem struct {
	Label           string           `json:"label" yaml:"label" toml:"label"`
	To              string           `json:"to,omitempty" yaml:"to,omitempty" toml:"to,omitempty"`
	Priority        int              `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty"`
	AdditionalProps map[string]any   `json:"additionalProps,omitempty" yaml:"additional_props,omitempty" toml:"additional_props,omitempty"`
	Children        []NavigationItem `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// Registry holds navigation items per menu. Items returns a slice that is
// replaced, never mutated, when its menu changes.
type Registry struct {
	mu    sync.Mutex
	menus map[string][]NavigationItem
	order []string
}

func NewRegistry() *Registry {
	return &Registry{menus: make(map[string][]NavigationItem)}
}

// Add appends item to menuID, or to the root menu when menuID is empty.
func (r *Registry) Add(item NavigationItem, menuID string) {
	if menuID == "" {
		menuID = RootMenuID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.menus[menuID]
	if !ok {
		r.order = append(r.order, menuID)
	}

	next := make([]NavigationItem, len(current), len(current)+1)
	copy(next, current)
	r.menus[menuID] = append(next, item)
}

// Items returns the items of menuID in registration order.
func (r *Registry) Items(menuID string) []NavigationItem {
	if menuID == "" {
		menuID = RootMenuID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, ok := r.menus[menuID]
	if !ok {
		return []NavigationItem{}
	}
	return items
}

// Menus returns menu ids in the order they were first used.
func (r *Registry) Menus() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.order...)
}

// SortByPriority returns a copy of items ordered by descending priority,
// children included. Items with equal priority keep their relative order.
func SortByPriority(items []NavigationItem) []NavigationItem {
	sorted := make([]NavigationItem, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	for i := range sorted {
		if len(sorted[i].Children) > 0 {
			sorted[i].Children = SortByPriority(sorted[i].Children)
		}
	}
	return sorted
}
