package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/paws4pals/inventory/internal/model"
)

const (
	settingNotifications  = "notifications"
	settingAppearance     = "appearance"
	settingBackupSchedule = "backup_schedule"
)

// GetJWTSecret retrieves the JWT secret from the database.
// If no secret exists, it generates one, stores it, and returns it.
// Uses INSERT OR IGNORE + re-SELECT to avoid TOCTOU race on concurrent startup.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES ('jwt_secret', ?)`,
		candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing jwt_secret: %w", err)
	}

	// Always read back (either our insert or the existing value).
	var secret string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'jwt_secret'`,
	).Scan(&secret)
	if err != nil {
		return "", fmt.Errorf("querying jwt_secret: %w", err)
	}

	return secret, nil
}

// GetBackupSchedule returns the automatic backup settings, or the defaults
// if none are stored.
func GetBackupSchedule(ctx context.Context, db *sql.DB) (model.BackupSchedule, error) {
	s := model.DefaultBackupSchedule()
	var raw string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, settingBackupSchedule,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("getting backup schedule: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return s, fmt.Errorf("decoding backup schedule: %w", err)
	}
	return s, nil
}

// SetBackupSchedule stores the automatic backup settings.
func SetBackupSchedule(ctx context.Context, db *sql.DB, s model.BackupSchedule) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding backup schedule: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		settingBackupSchedule, string(raw),
	)
	if err != nil {
		return fmt.Errorf("setting backup schedule: %w", err)
	}
	return nil
}

// GetNotificationPrefs returns a user's notification switches, or the
// defaults if none are stored.
func GetNotificationPrefs(ctx context.Context, db *sql.DB, userID int64) (model.NotificationPrefs, error) {
	p := model.DefaultNotificationPrefs()
	err := getUserSetting(ctx, db, userID, settingNotifications, &p)
	return p, err
}

// SetNotificationPrefs stores a user's notification switches.
func SetNotificationPrefs(ctx context.Context, db *sql.DB, userID int64, p model.NotificationPrefs) error {
	return setUserSetting(ctx, db, userID, settingNotifications, p)
}

// GetAppearance returns a user's display settings. The default theme is light.
func GetAppearance(ctx context.Context, db *sql.DB, userID int64) (model.Appearance, error) {
	a := model.Appearance{Theme: model.ThemeLight}
	err := getUserSetting(ctx, db, userID, settingAppearance, &a)
	return a, err
}

// SetAppearance stores a user's display settings.
func SetAppearance(ctx context.Context, db *sql.DB, userID int64, a model.Appearance) error {
	return setUserSetting(ctx, db, userID, settingAppearance, a)
}

// getUserSetting decodes a stored JSON value into v. v is left untouched if
// nothing is stored.
func getUserSetting(ctx context.Context, db *sql.DB, userID int64, key string, v any) error {
	var raw string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM user_settings WHERE user_id = ? AND key = ?`, userID, key,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("getting %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

func setUserSetting(ctx context.Context, db *sql.DB, userID int64, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO user_settings (user_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, key) DO UPDATE SET value = excluded.value`,
		userID, key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}
