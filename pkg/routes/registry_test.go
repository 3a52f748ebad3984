package routes

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/arthur-debert/modshell/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hoisted() RegisterRouteOptions {
	return RegisterRouteOptions{Hoist: true}
}

func childPaths(route Route) []string {
	paths := make([]string, 0, len(route.Children))
	for _, child := range route.Children {
		paths = append(paths, CreateIndexKey(child))
	}
	return paths
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/", "/"},
		{"/foo", "/foo"},
		{"/foo/", "/foo"},
		{"/foo/bar/", "/foo/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.in))
		})
	}
}

func TestCreateIndexKey(t *testing.T) {
	assert.Equal(t, "/foo", CreateIndexKey(Route{Path: "/foo/", Name: "foo"}))
	assert.Equal(t, "foo", CreateIndexKey(Route{Name: "foo"}))
	assert.Equal(t, "/", CreateIndexKey(Route{Path: "/"}))
	assert.Equal(t, "", CreateIndexKey(Route{Element: "Layout"}))
}

func TestAdd_HoistedRootRoute(t *testing.T) {
	registry := NewRegistry()

	result, err := registry.Add(Route{Path: "/root"}, hoisted())
	require.NoError(t, err)

	assert.Equal(t, StatusRegistered, result.Status)
	assert.Empty(t, result.CompletedPendingRegistrations)
	require.Len(t, registry.Routes(), 1)
	assert.Equal(t, "/root", registry.Routes()[0].Path)
}

func TestAdd_DefaultsVisibilityToProtected(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Add(Route{Path: "/private", Children: []Route{{Path: "/private/child"}}}, hoisted())
	require.NoError(t, err)
	_, err = registry.Add(Route{Path: "/public", Visibility: VisibilityPublic}, hoisted())
	require.NoError(t, err)

	routes := registry.Routes()
	assert.Equal(t, VisibilityProtected, routes[0].Visibility)
	assert.Equal(t, VisibilityProtected, routes[0].Children[0].Visibility)
	assert.Equal(t, VisibilityPublic, routes[1].Visibility)
}

func TestAdd_DefaultParentIsManagedRoutesOutlet(t *testing.T) {
	registry := NewRegistry()

	result, err := registry.Add(Route{Path: "/about"}, RegisterRouteOptions{})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, result.Status)
	assert.Contains(t, registry.PendingRegistrations(), ManagedRoutesOutletName)
	assert.Empty(t, registry.Routes())

	// The outlet placeholder itself is not nested under itself.
	result, err = registry.Add(Route{
		Element:  "RootLayout",
		Children: []Route{ManagedRoutes},
	}, hoisted())
	require.NoError(t, err)

	assert.Equal(t, StatusRegistered, result.Status)
	require.Len(t, result.CompletedPendingRegistrations, 1)
	assert.Equal(t, "/about", result.CompletedPendingRegistrations[0].Path)
	assert.Empty(t, registry.PendingRegistrations())

	routes := registry.Routes()
	require.Len(t, routes, 1)
	require.Len(t, routes[0].Children, 1)
	outlet := routes[0].Children[0]
	assert.Equal(t, ManagedRoutesOutletName, outlet.Name)
	assert.Equal(t, []string{"/about"}, childPaths(outlet))
}

func TestAdd_ManagedRoutesPlaceholderWithoutOptionsIsRoot(t *testing.T) {
	registry := NewRegistry()

	result, err := registry.Add(ManagedRoutes, RegisterRouteOptions{})
	require.NoError(t, err)

	assert.Equal(t, StatusRegistered, result.Status)
	require.Len(t, registry.Routes(), 1)
	assert.Equal(t, ManagedRoutesOutletName, registry.Routes()[0].Name)
}

func TestAdd_CustomManagedRoutesOutletName(t *testing.T) {
	registry := NewRegistry(WithManagedRoutesOutletName("modules"))

	_, err := registry.Add(Route{Path: "/a"}, RegisterRouteOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"modules"}, registry.PendingKeys())

	_, err = registry.Add(registry.OutletRoute(), RegisterRouteOptions{})
	require.NoError(t, err)

	outlet, ok := registry.Find("modules")
	require.True(t, ok)
	assert.Equal(t, []string{"/a"}, childPaths(outlet))
}

func TestAdd_NestedUnderExistingParentPath(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Add(Route{Path: "/federated-tabs"}, hoisted())
	require.NoError(t, err)

	result, err := registry.Add(Route{Path: "/federated-tabs/episodes"}, RegisterRouteOptions{ParentPath: "/federated-tabs/"})
	require.NoError(t, err)

	assert.Equal(t, StatusRegistered, result.Status)
	routes := registry.Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, []string{"/federated-tabs/episodes"}, childPaths(routes[0]))
}

func TestAdd_ChildRegisteredBeforeNamedParent(t *testing.T) {
	registry := NewRegistry()

	result, err := registry.Add(Route{Path: "/x"}, RegisterRouteOptions{ParentName: "layout"})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, result.Status)
	assert.Contains(t, registry.PendingRegistrations(), "layout")

	result, err = registry.Add(Route{Name: "layout"}, hoisted())
	require.NoError(t, err)

	assert.Equal(t, StatusRegistered, result.Status)
	require.Len(t, result.CompletedPendingRegistrations, 1)
	assert.Equal(t, "/x", result.CompletedPendingRegistrations[0].Path)
	assert.NotContains(t, registry.PendingRegistrations(), "layout")

	routes := registry.Routes()
	require.Len(t, routes, 1, "/x must not appear as a top-level route")
	assert.Equal(t, "layout", routes[0].Name)
	assert.Equal(t, []string{"/x"}, childPaths(routes[0]))
}

func TestAdd_ChildRegisteredBeforeParentPath(t *testing.T) {
	registry := NewRegistry()

	result, err := registry.Add(Route{Path: "/parent/child"}, RegisterRouteOptions{ParentPath: "/parent/"})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, result.Status)
	assert.Equal(t, []string{"/parent"}, registry.PendingKeys())

	_, err = registry.Add(Route{Path: "/parent"}, hoisted())
	require.NoError(t, err)

	parent, ok := registry.Find("/parent")
	require.True(t, ok)
	assert.Equal(t, []string{"/parent/child"}, childPaths(parent))
	assert.Empty(t, registry.PendingRegistrations())
}

func TestAdd_MultiplePendingChildrenKeepSubmissionOrder(t *testing.T) {
	registry := NewRegistry()

	for _, path := range []string{"/a", "/b", "/c"} {
		_, err := registry.Add(Route{Path: path}, RegisterRouteOptions{ParentName: "layout"})
		require.NoError(t, err)
	}

	result, err := registry.Add(Route{Name: "layout"}, hoisted())
	require.NoError(t, err)

	assert.Len(t, result.CompletedPendingRegistrations, 3)
	layout, _ := registry.Find("layout")
	assert.Equal(t, []string{"/a", "/b", "/c"}, childPaths(layout))
}

func TestAdd_DeeplyNestedPendingChainsResolveInOneInsertion(t *testing.T) {
	registry := NewRegistry()

	// c waits for b, b waits for a, a waits for root.
	_, err := registry.Add(Route{Path: "/c"}, RegisterRouteOptions{ParentName: "b"})
	require.NoError(t, err)
	_, err = registry.Add(Route{Name: "b"}, RegisterRouteOptions{ParentName: "a"})
	require.NoError(t, err)
	_, err = registry.Add(Route{Name: "a"}, RegisterRouteOptions{ParentName: "root"})
	require.NoError(t, err)
	assert.Len(t, registry.PendingRegistrations(), 3)

	result, err := registry.Add(Route{Name: "root"}, hoisted())
	require.NoError(t, err)

	assert.Len(t, result.CompletedPendingRegistrations, 3)
	assert.Empty(t, registry.PendingRegistrations())

	routes := registry.Routes()
	require.Len(t, routes, 1)
	a := routes[0].Children[0]
	b := a.Children[0]
	c := b.Children[0]
	assert.Equal(t, "a", a.Name)
	assert.Equal(t, "b", b.Name)
	assert.Equal(t, "/c", c.Path)
}

func TestAdd_PendingResolvedThroughLiteralDescendant(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Add(Route{Path: "/settings/profile"}, RegisterRouteOptions{ParentPath: "/settings"})
	require.NoError(t, err)

	// The parent arrives as a literal child of a hoisted layout.
	_, err = registry.Add(Route{
		Name: "layout",
		Children: []Route{
			{Path: "/settings", Children: []Route{{Path: "/settings/general"}}},
		},
	}, hoisted())
	require.NoError(t, err)

	settings, ok := registry.Find("/settings")
	require.True(t, ok)
	// Literal children first, then the parked ones, each exactly once.
	assert.Equal(t, []string{"/settings/general", "/settings/profile"}, childPaths(settings))

	layout, _ := registry.Find("layout")
	require.Len(t, layout.Children, 1)
	assert.Len(t, layout.Children[0].Children, 2)
}

func TestAdd_UnindexableRouteCannotBeParent(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Add(Route{Element: "PathlessLayout"}, hoisted())
	require.NoError(t, err)

	_, ok := registry.Find("")
	assert.False(t, ok)
	assert.Len(t, registry.Routes(), 1)
}

func TestAdd_DuplicateKeys(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, registry *Registry)
		route  Route
		opts   RegisterRouteOptions
		dupKey string
	}{
		{
			name: "same_path_at_root",
			setup: func(t *testing.T, registry *Registry) {
				_, err := registry.Add(Route{Path: "/foo"}, hoisted())
				require.NoError(t, err)
			},
			route:  Route{Path: "/foo"},
			opts:   hoisted(),
			dupKey: "/foo",
		},
		{
			name: "normalized_path",
			setup: func(t *testing.T, registry *Registry) {
				_, err := registry.Add(Route{Path: "/foo"}, hoisted())
				require.NoError(t, err)
			},
			route:  Route{Path: "/foo/"},
			opts:   hoisted(),
			dupKey: "/foo",
		},
		{
			name: "same_name_deep_in_tree",
			setup: func(t *testing.T, registry *Registry) {
				_, err := registry.Add(Route{Name: "root", Children: []Route{
					{Name: "level-1", Children: []Route{{Name: "deep"}}},
				}}, hoisted())
				require.NoError(t, err)
			},
			route:  Route{Path: "/other", Children: []Route{{Name: "deep"}}},
			opts:   RegisterRouteOptions{ParentName: "level-1"},
			dupKey: "deep",
		},
		{
			name: "duplicate_among_resolved_pending",
			setup: func(t *testing.T, registry *Registry) {
				_, err := registry.Add(Route{Path: "/taken"}, hoisted())
				require.NoError(t, err)
				_, err = registry.Add(Route{Path: "/taken"}, RegisterRouteOptions{ParentName: "late"})
				require.NoError(t, err)
			},
			route:  Route{Name: "late"},
			opts:   hoisted(),
			dupKey: "/taken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry()
			tt.setup(t, registry)

			before := registry.Snapshot()
			pendingBefore := registry.PendingRegistrations()

			_, err := registry.Add(tt.route, tt.opts)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateRouteKey))
			assert.Equal(t, tt.dupKey, errors.GetErrorDetails(err)["key"])

			assert.Same(t, before, registry.Snapshot(), "a failed add must not publish a snapshot")
			assert.Equal(t, pendingBefore, registry.PendingRegistrations())
		})
	}
}

func TestAdd_FailedInsertionLeavesNoIndexBehind(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Add(Route{Path: "/dup"}, hoisted())
	require.NoError(t, err)

	_, err = registry.Add(Route{Name: "fresh", Children: []Route{{Name: "sibling"}, {Path: "/dup"}}}, hoisted())
	require.Error(t, err)

	// "sibling" was indexed before the failure and must be free again.
	_, err = registry.Add(Route{Name: "sibling"}, hoisted())
	require.NoError(t, err)
	assert.Len(t, registry.Routes(), 2)
}

func TestAdd_HoistWithParentIsRejected(t *testing.T) {
	tests := []struct {
		name string
		opts RegisterRouteOptions
	}{
		{"hoist_and_parent_path", RegisterRouteOptions{Hoist: true, ParentPath: "/layout"}},
		{"hoist_and_parent_name", RegisterRouteOptions{Hoist: true, ParentName: "layout"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry()
			before := registry.Snapshot()

			_, err := registry.Add(Route{Path: "/foo"}, tt.opts)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrRouteOptions))

			assert.Same(t, before, registry.Snapshot())
			assert.Empty(t, registry.PendingRegistrations())
			_, ok := registry.Find("/foo")
			assert.False(t, ok)
		})
	}
}

func TestSnapshot_ReferenceSemantics(t *testing.T) {
	registry := NewRegistry()

	initial := registry.Snapshot()
	assert.Same(t, initial, registry.Snapshot(), "stable without insertion")

	_, err := registry.Add(Route{Name: "layout"}, hoisted())
	require.NoError(t, err)
	afterRoot := registry.Snapshot()
	assert.NotSame(t, initial, afterRoot)
	assert.Same(t, afterRoot, registry.Snapshot())

	// Pending insertions do not change the tree.
	_, err = registry.Add(Route{Path: "/waiting"}, RegisterRouteOptions{ParentName: "missing"})
	require.NoError(t, err)
	assert.Same(t, afterRoot, registry.Snapshot())

	// A deep insertion still publishes a new top-level snapshot.
	_, err = registry.Add(Route{Path: "/nested"}, RegisterRouteOptions{ParentName: "layout"})
	require.NoError(t, err)
	afterNested := registry.Snapshot()
	assert.NotSame(t, afterRoot, afterNested)
	assert.Greater(t, afterNested.Revision, afterRoot.Revision)

	// Earlier snapshots are not mutated by later insertions.
	assert.Empty(t, afterRoot.Routes[0].Children)
	assert.Len(t, afterNested.Routes[0].Children, 1)
}

func TestWalk(t *testing.T) {
	tree := []Route{
		{Name: "root", Children: []Route{
			{Path: "/a", Children: []Route{{Path: "/a/1"}}},
			{Path: "/b"},
		}},
	}

	var visited []string
	Walk(tree, func(route Route, depth int) bool {
		visited = append(visited, fmt.Sprintf("%d:%s", depth, CreateIndexKey(route)))
		return route.Path != "/a"
	})

	assert.Equal(t, []string{"0:root", "1:/a", "1:/b"}, visited)
}

// Modules register concurrently and in arbitrary order; the final tree must
// not depend on that order.
func TestAdd_ConcurrentOutOfOrderRegistrations(t *testing.T) {
	const sections = 20

	type registration struct {
		route Route
		opts  RegisterRouteOptions
	}

	var registrations []registration
	registrations = append(registrations, registration{Route{Name: "layout", Children: []Route{ManagedRoutes}}, hoisted()})
	for i := 0; i < sections; i++ {
		section := fmt.Sprintf("/section-%d", i)
		registrations = append(registrations,
			registration{Route{Path: section}, RegisterRouteOptions{}},
			registration{Route{Path: section + "/detail"}, RegisterRouteOptions{ParentPath: section}},
			registration{Route{Name: fmt.Sprintf("tab-%d", i)}, RegisterRouteOptions{ParentPath: section + "/detail"}},
		)
	}

	rng := rand.New(rand.NewSource(42))
	rng.Shuffle(len(registrations), func(i, j int) {
		registrations[i], registrations[j] = registrations[j], registrations[i]
	})

	registry := NewRegistry()

	var wg sync.WaitGroup
	for _, reg := range registrations {
		wg.Add(1)
		go func(reg registration) {
			defer wg.Done()
			_, err := registry.Add(reg.route, reg.opts)
			assert.NoError(t, err)
		}(reg)
	}
	wg.Wait()

	assert.Empty(t, registry.PendingRegistrations())

	routes := registry.Routes()
	require.Len(t, routes, 1)

	outlet, ok := registry.Find(ManagedRoutesOutletName)
	require.True(t, ok)
	assert.Len(t, outlet.Children, sections)

	count := 0
	Walk(routes, func(Route, int) bool {
		count++
		return true
	})
	// layout + outlet + 3 routes per section
	assert.Equal(t, 2+3*sections, count)

	for i := 0; i < sections; i++ {
		detail, ok := registry.Find(fmt.Sprintf("/section-%d/detail", i))
		require.True(t, ok)
		require.Len(t, detail.Children, 1)
		assert.Equal(t, fmt.Sprintf("tab-%d", i), detail.Children[0].Name)
	}
}
