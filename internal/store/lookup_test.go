package store

import (
	"context"
	"database/sql"

	"github.com/paws4pals/inventory/internal/model"
)

// getItem reads one item row straight from the table, or nil.
func getItem(ctx context.Context, db *sql.DB, id string) (*model.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// getMetadata reads one metadata row straight from the table, or nil.
func getMetadata(ctx context.Context, db *sql.DB, kind model.Kind, id string) (*model.MetadataItem, error) {
	e := &model.MetadataItem{}
	err := db.QueryRowContext(ctx,
		`SELECT id, kind, name FROM metadata WHERE kind = ? AND id = ?`, kind, id,
	).Scan(&e.ID, &e.Kind, &e.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}
