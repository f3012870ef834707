package store

import (
	"context"
	"fmt"

	"github.com/7ntys/chaos-lab/internal/menu"
)

// DefaultMenu is the catalog a fresh database is seeded with.
//
//nolint:gochecknoglobals // Read-only seed data.
var DefaultMenu = []menu.Item{
	{Category: "Coffee", Name: "Espresso", Description: "Double shot, house blend", PriceCents: 300},
	{Category: "Coffee", Name: "Latte", Description: "Espresso with steamed milk", PriceCents: 450},
	{Category: "Coffee", Name: "Cold Brew", Description: "Steeped for 18 hours", PriceCents: 475},
	{Category: "Tea", Name: "Sencha", Description: "Japanese green tea", PriceCents: 350},
	{Category: "Tea", Name: "Chai Latte", Description: "Spiced black tea with milk", PriceCents: 425},
	{Category: "Pastry", Name: "Croissant", Description: "Butter, laminated in house", PriceCents: 325},
	{Category: "Pastry", Name: "Blueberry Muffin", Description: "Baked every morning", PriceCents: 300},
	{Category: "Sandwiches", Name: "Grilled Cheese", Description: "Sourdough, cheddar, gruyere", PriceCents: 850},
}

// DefaultSpecials are the specials a fresh database is seeded with.
//
//nolint:gochecknoglobals // Read-only seed data.
var DefaultSpecials = []menu.Special{
	{Title: "Soup of the Day", Description: "Ask staff"},
	{Title: "Chaos Combo", Description: "Any latte and a pastry, picked at random"},
}

// Seed inserts the default catalog into any table that is still empty.
// It reports whether anything was inserted.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	seeded := false

	empty, err := s.isEmpty(ctx, "menu_items")
	if err != nil {
		return false, err
	}
	if empty {
		for _, item := range DefaultMenu {
			if _, err := s.AddMenuItem(ctx, item); err != nil {
				return seeded, fmt.Errorf("seeding menu: %w", err)
			}
		}
		seeded = true
	}

	empty, err = s.isEmpty(ctx, "specials")
	if err != nil {
		return seeded, err
	}
	if empty {
		for _, special := range DefaultSpecials {
			if _, err := s.AddSpecial(ctx, special); err != nil {
				return seeded, fmt.Errorf("seeding specials: %w", err)
			}
		}
		seeded = true
	}

	return seeded, nil
}

// isEmpty reports whether table has no rows. table is always a package constant.
func (s *Store) isEmpty(ctx context.Context, table string) (bool, error) {
	var count int
	//nolint:gosec // table is not user input.
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return false, fmt.Errorf("counting %s: %w", table, err)
	}
	return count == 0, nil
}
