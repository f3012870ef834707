// Package store persists the cafe menu and specials in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	// Register the pure-Go SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/7ntys/chaos-lab/internal/menu"
)

// driverName is the database/sql name registered by modernc.org/sqlite.
const driverName = "sqlite"

// ErrEmptyPath is returned when no database path is configured.
var ErrEmptyPath = errors.New("store: database path cannot be empty")

const schema = `
CREATE TABLE IF NOT EXISTS menu_items (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT    NOT NULL,
	description TEXT    NOT NULL DEFAULT '',
	category    TEXT    NOT NULL,
	price_cents INTEGER NOT NULL CHECK (price_cents >= 0)
);
CREATE TABLE IF NOT EXISTS specials (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);`

// Store reads and writes the catalog.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	// SQLite serializes writers; a single connection also keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// MenuItems returns all menu items ordered by id.
func (s *Store) MenuItems(ctx context.Context) ([]menu.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, category, price_cents
		FROM menu_items
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying menu items: %w", err)
	}
	defer rows.Close()

	items := make([]menu.Item, 0, 16)
	for rows.Next() {
		var id int64
		var item menu.Item
		if err := rows.Scan(&id, &item.Name, &item.Description, &item.Category, &item.PriceCents); err != nil {
			return nil, fmt.Errorf("scanning menu item: %w", err)
		}
		item.ID = menu.ID(strconv.FormatInt(id, 10))
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu items: %w", err)
	}
	return items, nil
}

// Specials returns all specials ordered by id.
func (s *Store) Specials(ctx context.Context) ([]menu.Special, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description
		FROM specials
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying specials: %w", err)
	}
	defer rows.Close()

	specials := make([]menu.Special, 0, 8)
	for rows.Next() {
		var id int64
		var special menu.Special
		if err := rows.Scan(&id, &special.Title, &special.Description); err != nil {
			return nil, fmt.Errorf("scanning special: %w", err)
		}
		special.ID = menu.ID(strconv.FormatInt(id, 10))
		specials = append(specials, special)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating specials: %w", err)
	}
	return specials, nil
}

// AddMenuItem inserts item and returns it with its assigned id.
func (s *Store) AddMenuItem(ctx context.Context, item menu.Item) (menu.Item, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO menu_items (name, description, category, price_cents) VALUES (?, ?, ?, ?)`,
		item.Name, item.Description, item.Category, item.PriceCents)
	if err != nil {
		return menu.Item{}, fmt.Errorf("inserting menu item %q: %w", item.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return menu.Item{}, fmt.Errorf("reading menu item id: %w", err)
	}
	item.ID = menu.ID(strconv.FormatInt(id, 10))
	return item, nil
}

// AddSpecial inserts special and returns it with its assigned id.
func (s *Store) AddSpecial(ctx context.Context, special menu.Special) (menu.Special, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO specials (title, description) VALUES (?, ?)`,
		special.Title, special.Description)
	if err != nil {
		return menu.Special{}, fmt.Errorf("inserting special %q: %w", special.Title, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return menu.Special{}, fmt.Errorf("reading special id: %w", err)
	}
	special.ID = menu.ID(strconv.FormatInt(id, 10))
	return special, nil
}
