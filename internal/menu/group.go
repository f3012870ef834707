package menu

// Category is one category of a Grouped menu with its items in input order.
type Category struct {
	Name  string `json:"category"`
	Items []Item `json:"items"`
}

// Grouped is an ordered category -> items mapping.
// Categories appear in the order they were first seen.
type Grouped []Category

// Group buckets items by Category. Keys are compared with exact string
// equality; no case folding or trimming is applied.
func Group(items []Item) Grouped {
	grouped := Grouped{}
	if len(items) == 0 {
		return grouped
	}

	index := make(map[string]int)
	for _, item := range items {
		pos, ok := index[item.Category]
		if !ok {
			pos = len(grouped)
			index[item.Category] = pos
			grouped = append(grouped, Category{Name: item.Category})
		}
		grouped[pos].Items = append(grouped[pos].Items, item)
	}

	return grouped
}

// Categories returns the category names in display order.
func (g Grouped) Categories() []string {
	names := make([]string, len(g))
	for i, c := range g {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the items of a category.
func (g Grouped) Lookup(name string) ([]Item, bool) {
	for _, c := range g {
		if c.Name == name {
			return c.Items, true
		}
	}
	return nil, false
}

// Len returns the total number of items across all categories.
func (g Grouped) Len() int {
	total := 0
	for _, c := range g {
		total += len(c.Items)
	}
	return total
}
