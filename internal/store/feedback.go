package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/paws4pals/inventory/internal/model"
)

const feedbackColumns = `id, kind, name, email, message, user_id, created_at`

func scanFeedback(s scanner) (*model.Feedback, error) {
	f := &model.Feedback{}
	var userID sql.NullInt64
	if err := s.Scan(&f.ID, &f.Kind, &f.Name, &f.Email, &f.Message, &userID, &f.CreatedAt); err != nil {
		return nil, err
	}
	if userID.Valid {
		f.UserID = &userID.Int64
	}
	return f, nil
}

// CreateFeedback stores a feedback message and returns it with its ID.
func CreateFeedback(ctx context.Context, db *sql.DB, f model.Feedback) (*model.Feedback, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO feedback (kind, name, email, message, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		f.Kind, f.Name, f.Email, f.Message, f.UserID, f.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating feedback: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting feedback id: %w", err)
	}

	got, err := scanFeedback(db.QueryRowContext(ctx,
		`SELECT `+feedbackColumns+` FROM feedback WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("getting feedback: %w", err)
	}
	return got, nil
}

// ListFeedback returns all feedback, newest first.
func ListFeedback(ctx context.Context, db *sql.DB) ([]model.Feedback, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+feedbackColumns+` FROM feedback ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing feedback: %w", err)
	}
	defer rows.Close()

	var out []model.Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}
