package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/paws4pals/inventory/internal/inventory"
	"github.com/paws4pals/inventory/internal/model"
)

// OpenSession loads metadata, items and movements into a Session whose
// changes are written back to db.
func OpenSession(ctx context.Context, db *sql.DB, opts ...inventory.Option) (*inventory.Session, error) {
	entries, err := ListMetadata(ctx, db, "")
	if err != nil {
		return nil, fmt.Errorf("loading metadata: %w", err)
	}
	items, err := ListItems(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	movements, err := ListMovements(ctx, db, "", time.Time{})
	if err != nil {
		return nil, fmt.Errorf("loading movements: %w", err)
	}

	opts = append([]inventory.Option{inventory.WithJournal(&Journal{DB: db})}, opts...)
	return inventory.NewSession(inventory.NewMetadataStore(entries), items, movements, opts...), nil
}

// Journal writes session changes to the database.
type Journal struct {
	DB *sql.DB
}

// ItemSaved implements inventory.Journal.
func (j *Journal) ItemSaved(ctx context.Context, item model.Item, created bool) error {
	return SaveItem(ctx, j.DB, item)
}

// ItemDeleted implements inventory.Journal.
func (j *Journal) ItemDeleted(ctx context.Context, id string) error {
	return DeleteItem(ctx, j.DB, id)
}

// MovementRecorded implements inventory.Journal.
func (j *Journal) MovementRecorded(ctx context.Context, m model.Movement, item model.Item) error {
	return RecordMovement(ctx, j.DB, m, item)
}

// MetadataSaved implements inventory.Journal.
func (j *Journal) MetadataSaved(ctx context.Context, e model.MetadataItem, created bool) error {
	if created {
		return CreateMetadata(ctx, j.DB, e)
	}
	return UpdateMetadata(ctx, j.DB, e)
}

// MetadataDeleted implements inventory.Journal.
func (j *Journal) MetadataDeleted(ctx context.Context, kind model.Kind, id string) error {
	return DeleteMetadata(ctx, j.DB, kind, id)
}
