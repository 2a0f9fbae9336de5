package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: Movement reports scan by time.
	`CREATE INDEX IF NOT EXISTS idx_movements_at ON movements(at)`,
	// Migration 2: Per-item movement history.
	`CREATE INDEX IF NOT EXISTS idx_movements_item ON movements(item_id, at)`,
	// Migration 3: Feedback and support messages.
	`CREATE TABLE IF NOT EXISTS feedback (
    id         INTEGER PRIMARY KEY,
    kind       TEXT NOT NULL CHECK (kind IN ('suggestion', 'issue', 'question')),
    name       TEXT NOT NULL,
    email      TEXT NOT NULL,
    message    TEXT NOT NULL,
    user_id    INTEGER REFERENCES users(id),
    created_at DATETIME NOT NULL
)`,
}

// Migrate creates the schema and runs the migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
