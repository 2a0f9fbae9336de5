package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/paws4pals/inventory/internal/model"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}

const itemColumns = `id, name, sku, category_id, location_id, supplier_id,
	quantity, reorder_point, inventory_cap, cost_price, selling_price, notes,
	created_at, last_updated, expiration_date`

func scanItem(s scanner) (model.Item, error) {
	var item model.Item
	err := s.Scan(&item.ID, &item.Name, &item.SKU, &item.Category, &item.Location, &item.Supplier,
		&item.Quantity, &item.ReorderPoint, &item.InventoryCap, &item.CostPrice, &item.SellingPrice, &item.Notes,
		&item.CreatedAt, &item.LastUpdated, &item.ExpirationDate)
	return item, err
}

// ListItems returns all items in insertion order.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SaveItem inserts an item or replaces every field of an existing one.
func SaveItem(ctx context.Context, db execer, item model.Item) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO items (`+itemColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		     name = excluded.name, sku = excluded.sku,
		     category_id = excluded.category_id, location_id = excluded.location_id,
		     supplier_id = excluded.supplier_id, quantity = excluded.quantity,
		     reorder_point = excluded.reorder_point, inventory_cap = excluded.inventory_cap,
		     cost_price = excluded.cost_price, selling_price = excluded.selling_price,
		     notes = excluded.notes, created_at = excluded.created_at,
		     last_updated = excluded.last_updated, expiration_date = excluded.expiration_date`,
		item.ID, item.Name, item.SKU, item.Category, item.Location, item.Supplier,
		item.Quantity, item.ReorderPoint, item.InventoryCap, item.CostPrice, item.SellingPrice, item.Notes,
		item.CreatedAt, item.LastUpdated, item.ExpirationDate,
	)
	if err != nil {
		return fmt.Errorf("saving item: %w", err)
	}
	return nil
}

// DeleteItem removes an item. Its movements are removed by the foreign key
// cascade.
func DeleteItem(ctx context.Context, db *sql.DB, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("deleting item: %s does not exist", id)
	}
	return nil
}
