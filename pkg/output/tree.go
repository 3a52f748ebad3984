package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/modshell/pkg/navigation"
	"github.com/arthur-debert/modshell/pkg/output/styles"
	"github.com/arthur-debert/modshell/pkg/routes"
	"github.com/charmbracelet/lipgloss/tree"
)

func (r *Renderer) newTree() *tree.Tree {
	t := tree.New()
	if r.styled() {
		t = t.EnumeratorStyle(styles.GetStyle("Enumerator"))
	}
	return t
}

func (r *Renderer) routeTree(rs []routes.Route) *tree.Tree {
	t := r.newTree()
	for _, route := range rs {
		t.Child(r.routeNode(route))
	}
	return t
}

func (r *Renderer) routeNode(route routes.Route) any {
	label := r.routeLabel(route)
	if len(route.Children) == 0 {
		return label
	}

	sub := r.newTree().Root(label)
	for _, child := range route.Children {
		sub.Child(r.routeNode(child))
	}
	return sub
}

// routeLabel renders the path (or the index marker) followed by the name and
// the visibility when it is not the default.
func (r *Renderer) routeLabel(route routes.Route) string {
	parts := make([]string, 0, 3)

	switch {
	case route.Index:
		parts = append(parts, r.style("Index", MsgIndexRoute))
	case route.Path != "":
		parts = append(parts, r.style("Route", route.Path))
	}

	if route.Name != "" {
		if len(parts) == 0 {
			parts = append(parts, r.style("Route", route.Name))
		} else {
			parts = append(parts, r.style("RouteName", route.Name))
		}
	}

	if len(parts) == 0 {
		parts = append(parts, r.style("Muted", MsgUnnamedRoute))
	}

	if route.Visibility == routes.VisibilityPublic {
		parts = append(parts, r.style("Public", "[public]"))
	}

	return strings.Join(parts, " ")
}

func (r *Renderer) navigationTree(menu MenuView) *tree.Tree {
	t := r.newTree().Root(r.style("Menu", menu.Menu))
	for _, item := range menu.Items {
		t.Child(r.navigationNode(item))
	}
	return t
}

func (r *Renderer) navigationNode(item navigation.NavigationItem) any {
	label := r.style("NavItem", item.Label)
	if item.To != "" {
		label += " -> " + r.style("Route", item.To)
	}
	if item.Priority != 0 {
		label += " " + r.style("Priority", fmt.Sprintf("(%d)", item.Priority))
	}
	if len(item.Children) == 0 {
		return label
	}

	sub := r.newTree().Root(label)
	for _, child := range item.Children {
		sub.Child(r.navigationNode(child))
	}
	return sub
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
