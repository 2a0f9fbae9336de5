package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/paws4pals/inventory/internal/model"
)

// RecordMovement stores a movement and the item's new quantity in a single
// transaction. The update only applies if the stored quantity still equals
// the movement's starting quantity.
func RecordMovement(ctx context.Context, db *sql.DB, m model.Movement, item model.Item) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE items SET quantity = ? WHERE id = ? AND quantity = ?`,
		m.QuantityAfter, m.ItemID, m.QuantityBefore,
	)
	if err != nil {
		return fmt.Errorf("updating item quantity: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("updating item quantity: %s changed or does not exist", m.ItemID)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO movements (id, item_id, kind, amount, quantity_before, quantity_after, at, by_user)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ItemID, m.Kind, m.Amount, m.QuantityBefore, m.QuantityAfter, m.At, m.By,
	)
	if err != nil {
		return fmt.Errorf("recording movement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing movement: %w", err)
	}
	return nil
}

// ListMovements returns movements in chronological order, optionally
// filtered by item and by a lower time bound.
func ListMovements(ctx context.Context, db *sql.DB, itemID string, since time.Time) ([]model.Movement, error) {
	query := `SELECT id, item_id, kind, amount, quantity_before, quantity_after, at, by_user
	          FROM movements
	          WHERE 1=1`
	var args []any

	if itemID != "" {
		query += ` AND item_id = ?`
		args = append(args, itemID)
	}
	if !since.IsZero() {
		query += ` AND at >= ?`
		args = append(args, since.UTC())
	}

	query += ` ORDER BY at, rowid`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}
	defer rows.Close()

	var movements []model.Movement
	for rows.Next() {
		var m model.Movement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Kind, &m.Amount, &m.QuantityBefore, &m.QuantityAfter,
			&m.At, &m.By); err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
