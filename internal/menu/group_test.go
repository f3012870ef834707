package menu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []Item {
	return []Item{
		{ID: "1", Category: "Coffee", Name: "Latte", Description: "Milky", PriceCents: 450},
		{ID: "2", Category: "Pastry", Name: "Croissant", Description: "Buttery", PriceCents: 325},
		{ID: "3", Category: "Coffee", Name: "Espresso", Description: "Short", PriceCents: 300},
		{ID: "4", Category: "Tea", Name: "Sencha", Description: "Grassy", PriceCents: 350},
		{ID: "5", Category: "Pastry", Name: "Scone", Description: "Crumbly", PriceCents: 275},
	}
}

func TestGroup(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  Grouped
	}{
		{
			name:  "nil input",
			items: nil,
			want:  Grouped{},
		},
		{
			name:  "empty input",
			items: []Item{},
			want:  Grouped{},
		},
		{
			name:  "single item",
			items: []Item{{ID: "1", Category: "Coffee", Name: "Latte", Description: "Milky", PriceCents: 450}},
			want: Grouped{
				{Name: "Coffee", Items: []Item{{ID: "1", Category: "Coffee", Name: "Latte", Description: "Milky", PriceCents: 450}}},
			},
		},
		{
			name:  "interleaved categories",
			items: sampleItems(),
			want: Grouped{
				{Name: "Coffee", Items: []Item{sampleItems()[0], sampleItems()[2]}},
				{Name: "Pastry", Items: []Item{sampleItems()[1], sampleItems()[4]}},
				{Name: "Tea", Items: []Item{sampleItems()[3]}},
			},
		},
		{
			name: "category keys are case and whitespace sensitive",
			items: []Item{
				{ID: "1", Category: "Coffee"},
				{ID: "2", Category: "coffee"},
				{ID: "3", Category: "Coffee "},
			},
			want: Grouped{
				{Name: "Coffee", Items: []Item{{ID: "1", Category: "Coffee"}}},
				{Name: "coffee", Items: []Item{{ID: "2", Category: "coffee"}}},
				{Name: "Coffee ", Items: []Item{{ID: "3", Category: "Coffee "}}},
			},
		},
		{
			name:  "empty category name is its own key",
			items: []Item{{ID: "1"}, {ID: "2", Category: "Tea"}, {ID: "3"}},
			want: Grouped{
				{Name: "", Items: []Item{{ID: "1"}, {ID: "3"}}},
				{Name: "Tea", Items: []Item{{ID: "2", Category: "Tea"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Group(tt.items)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Group() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroup_Idempotent(t *testing.T) {
	items := sampleItems()

	first := Group(items)
	second := Group(items)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Group() not stable (-first +second):\n%s", diff)
	}
}

func TestGroup_PreservesOrder(t *testing.T) {
	items := sampleItems()
	grouped := Group(items)

	// Flattening each category must yield a subsequence of the input.
	for _, category := range grouped {
		cursor := 0
		for _, item := range category.Items {
			for cursor < len(items) && items[cursor].ID != item.ID {
				cursor++
			}
			require.Less(t, cursor, len(items), "item %s out of order in %q", item.ID, category.Name)
			cursor++
		}
	}

	assert.Equal(t, []string{"Coffee", "Pastry", "Tea"}, grouped.Categories())
	assert.Equal(t, len(items), grouped.Len())
}

func TestGroup_DoesNotAliasInput(t *testing.T) {
	items := sampleItems()
	grouped := Group(items)

	items[0].Name = "Mutated"

	latte, ok := grouped.Lookup("Coffee")
	require.True(t, ok)
	assert.Equal(t, "Latte", latte[0].Name)
}

func TestGrouped_Lookup(t *testing.T) {
	grouped := Group(sampleItems())

	tea, ok := grouped.Lookup("Tea")
	require.True(t, ok)
	assert.Len(t, tea, 1)

	_, ok = grouped.Lookup("Soup")
	assert.False(t, ok)
}
