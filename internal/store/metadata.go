package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/paws4pals/inventory/internal/inventory"
	"github.com/paws4pals/inventory/internal/model"
)

// CreateMetadata inserts a category, location or supplier.
func CreateMetadata(ctx context.Context, db *sql.DB, e model.MetadataItem) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO metadata (id, kind, name) VALUES (?, ?, ?)`,
		e.ID, e.Kind, e.Name,
	)
	if err != nil {
		return fmt.Errorf("creating %s: %w", e.Kind, err)
	}
	return nil
}

// ListMetadata returns all entries in insertion order, optionally filtered by kind.
func ListMetadata(ctx context.Context, db *sql.DB, kind model.Kind) ([]model.MetadataItem, error) {
	var rows *sql.Rows
	var err error

	if kind != "" {
		rows, err = db.QueryContext(ctx,
			`SELECT id, kind, name FROM metadata WHERE kind = ? ORDER BY rowid`, kind,
		)
	} else {
		rows, err = db.QueryContext(ctx,
			`SELECT id, kind, name FROM metadata ORDER BY rowid`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing metadata: %w", err)
	}
	defer rows.Close()

	var entries []model.MetadataItem
	for rows.Next() {
		var e model.MetadataItem
		if err := rows.Scan(&e.ID, &e.Kind, &e.Name); err != nil {
			return nil, fmt.Errorf("scanning metadata: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpdateMetadata renames an entry.
func UpdateMetadata(ctx context.Context, db *sql.DB, e model.MetadataItem) error {
	_, err := db.ExecContext(ctx,
		`UPDATE metadata SET name = ? WHERE kind = ? AND id = ?`,
		e.Name, e.Kind, e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating %s: %w", e.Kind, err)
	}
	return nil
}

// CountReferences returns how many items point at a metadata entry.
func CountReferences(ctx context.Context, db *sql.DB, kind model.Kind, id string) (int, error) {
	column, ok := map[model.Kind]string{
		model.KindCategory: "category_id",
		model.KindLocation: "location_id",
		model.KindSupplier: "supplier_id",
	}[kind]
	if !ok {
		return 0, fmt.Errorf("unknown metadata kind %q", kind)
	}

	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE `+column+` = ?`, id,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting %s references: %w", kind, err)
	}
	return count, nil
}

// DeleteMetadata removes an entry. Fails if any item still references it.
func DeleteMetadata(ctx context.Context, db *sql.DB, kind model.Kind, id string) error {
	count, err := CountReferences(ctx, db, kind, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &inventory.InUseError{Kind: kind, ID: id, Count: count}
	}

	_, err = db.ExecContext(ctx,
		`DELETE FROM metadata WHERE kind = ? AND id = ?`, kind, id,
	)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", kind, err)
	}
	return nil
}

// SeedMetadata inserts entries whose IDs are not present yet and returns how
// many were added.
func SeedMetadata(ctx context.Context, db *sql.DB, entries []model.MetadataItem) (int, error) {
	added := 0
	for _, e := range entries {
		result, err := db.ExecContext(ctx,
			`INSERT OR IGNORE INTO metadata (id, kind, name) VALUES (?, ?, ?)`,
			e.ID, e.Kind, e.Name,
		)
		if err != nil {
			return added, fmt.Errorf("seeding %s %q: %w", e.Kind, e.Name, err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			added++
		}
	}
	return added, nil
}
