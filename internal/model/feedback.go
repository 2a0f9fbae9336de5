package model

import "time"

// FeedbackKind is the topic a user picks when sending feedback.
type FeedbackKind string

// Feedback kinds.
const (
	FeedbackSuggestion FeedbackKind = "suggestion"
	FeedbackIssue      FeedbackKind = "issue"
	FeedbackQuestion   FeedbackKind = "question"
)

// Valid reports whether k is a known feedback kind.
func (k FeedbackKind) Valid() bool {
	return k == FeedbackSuggestion || k == FeedbackIssue || k == FeedbackQuestion
}

// Feedback is a suggestion, issue report or question sent from the
// support page.
type Feedback struct {
	ID        int64        `json:"id"`
	Kind      FeedbackKind `json:"type"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Message   string       `json:"message"`
	UserID    *int64       `json:"user_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}
