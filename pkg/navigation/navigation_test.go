package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItems_DefaultsToRootMenu(t *testing.T) {
	registry := NewRegistry()

	registry.Add(NavigationItem{Label: "Item 1", To: "/item-1"}, "")
	registry.Add(NavigationItem{Label: "Item 2", To: "/item-2"}, "")
	registry.Add(NavigationItem{Label: "Item 3", To: "/item-3"}, "")
	registry.Add(NavigationItem{Label: "Item 4", To: "/item-4"}, "menu-1")
	registry.Add(NavigationItem{Label: "Item 5", To: "/item-5"}, "menu-2")

	assert.Len(t, registry.Items(""), 3)
	assert.Len(t, registry.Items(RootMenuID), 3)
	assert.Len(t, registry.Items("menu-1"), 1)
	assert.Equal(t, []string{RootMenuID, "menu-1", "menu-2"}, registry.Menus())
}

func TestItems_UnknownMenuIsEmpty(t *testing.T) {
	registry := NewRegistry()

	items := registry.Items("missing")
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestItems_SliceIsReplacedOnChange(t *testing.T) {
	registry := NewRegistry()
	registry.Add(NavigationItem{Label: "Foo", To: "/foo"}, "")

	first := registry.Items("")
	second := registry.Items("")
	assert.Same(t, &first[0], &second[0], "unchanged menu returns the same slice")

	registry.Add(NavigationItem{Label: "Bar", To: "/bar"}, "")
	third := registry.Items("")

	assert.Len(t, first, 1, "previous slices are not mutated")
	assert.Len(t, third, 2)
	assert.NotSame(t, &first[0], &third[0])
}

func TestSortByPriority(t *testing.T) {
	items := []NavigationItem{
		{Label: "low", Priority: 1},
		{Label: "none-a"},
		{Label: "high", Priority: 999, Children: []NavigationItem{
			{Label: "child-low"},
			{Label: "child-high", Priority: 5},
		}},
		{Label: "none-b"},
	}

	sorted := SortByPriority(items)

	labels := make([]string, 0, len(sorted))
	for _, item := range sorted {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"high", "low", "none-a", "none-b"}, labels)
	assert.Equal(t, "child-high", sorted[0].Children[0].Label)

	// Input is untouched.
	assert.Equal(t, "low", items[0].Label)
	assert.Equal(t, "child-low", items[2].Children[0].Label)
}
