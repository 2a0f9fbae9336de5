package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/paws4pals/inventory/internal/model"
)

// CreateBackup records a backup in the history.
func CreateBackup(ctx context.Context, db *sql.DB, kind model.BackupKind, sizeBytes int64, createdAt time.Time, createdBy *int64) (*model.Backup, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO backups (kind, size_bytes, created_at, created_by) VALUES (?, ?, ?, ?)`,
		kind, sizeBytes, createdAt.UTC(), createdBy,
	)
	if err != nil {
		return nil, fmt.Errorf("creating backup: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting backup id: %w", err)
	}

	return GetBackup(ctx, db, id)
}

// GetBackup returns a backup record by ID.
func GetBackup(ctx context.Context, db *sql.DB, id int64) (*model.Backup, error) {
	b := &model.Backup{}
	err := db.QueryRowContext(ctx,
		`SELECT id, kind, size_bytes, created_at FROM backups WHERE id = ?`, id,
	).Scan(&b.ID, &b.Kind, &b.SizeBytes, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting backup: %w", err)
	}
	return b, nil
}

// ListBackups returns the backup history, newest first.
func ListBackups(ctx context.Context, db *sql.DB) ([]model.Backup, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, kind, size_bytes, created_at FROM backups ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}
	defer rows.Close()

	var backups []model.Backup
	for rows.Next() {
		var b model.Backup
		if err := rows.Scan(&b.ID, &b.Kind, &b.SizeBytes, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning backup: %w", err)
		}
		backups = append(backups, b)
	}
	return backups, rows.Err()
}

// LatestBackup returns the most recent backup of any kind.
func LatestBackup(ctx context.Context, db *sql.DB) (*model.Backup, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		`SELECT id FROM backups ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting latest backup: %w", err)
	}
	return GetBackup(ctx, db, id)
}

// DeleteBackup removes a backup record.
func DeleteBackup(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM backups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting backup: %w", err)
	}
	return nil
}
