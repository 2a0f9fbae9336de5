package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    email         TEXT NOT NULL,
    name          TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'staff' CHECK (role IN ('admin', 'staff')),
    bio           TEXT NOT NULL DEFAULT '',
    phone         TEXT NOT NULL DEFAULT '',
    avatar        BLOB,
    avatar_mime   TEXT,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_active
    ON users(email COLLATE NOCASE) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS metadata (
    id         TEXT PRIMARY KEY,
    kind       TEXT NOT NULL CHECK (kind IN ('category', 'location', 'supplier')),
    name       TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_metadata_kind_name
    ON metadata(kind, name COLLATE NOCASE);

CREATE TABLE IF NOT EXISTS items (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    sku             TEXT NOT NULL,
    category_id     TEXT NOT NULL REFERENCES metadata(id),
    location_id     TEXT NOT NULL REFERENCES metadata(id),
    supplier_id     TEXT NOT NULL REFERENCES metadata(id),
    quantity        INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    reorder_point   INTEGER NOT NULL DEFAULT 0 CHECK (reorder_point >= 0),
    inventory_cap   INTEGER NOT NULL DEFAULT 0 CHECK (inventory_cap >= 0),
    cost_price      TEXT NOT NULL DEFAULT '0',
    selling_price   TEXT NOT NULL DEFAULT '0',
    notes           TEXT NOT NULL DEFAULT '',
    created_at      DATETIME NOT NULL,
    last_updated    DATETIME NOT NULL,
    expiration_date DATETIME
);

CREATE TABLE IF NOT EXISTS movements (
    id              TEXT PRIMARY KEY,
    item_id         TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    kind            TEXT NOT NULL CHECK (kind IN ('sold', 'purchased')),
    amount          INTEGER NOT NULL CHECK (amount > 0),
    quantity_before INTEGER NOT NULL,
    quantity_after  INTEGER NOT NULL,
    at              DATETIME NOT NULL,
    by_user         TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_settings (
    user_id INTEGER NOT NULL REFERENCES users(id),
    key     TEXT NOT NULL,
    value   TEXT NOT NULL,
    PRIMARY KEY (user_id, key)
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS backups (
    id         INTEGER PRIMARY KEY,
    kind       TEXT NOT NULL CHECK (kind IN ('manual', 'automatic')),
    size_bytes INTEGER NOT NULL,
    created_at DATETIME NOT NULL,
    created_by INTEGER REFERENCES users(id)
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
