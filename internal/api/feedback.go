package api

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/paws4pals/inventory/internal/inventory"
	"github.com/paws4pals/inventory/internal/model"
	"github.com/paws4pals/inventory/internal/store"
)

// FeedbackHandler handles the feedback and support form.
type FeedbackHandler struct {
	DB *sql.DB
}

type feedbackRequest struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// validateFeedback trims the request and builds the record to store.
func validateFeedback(req feedbackRequest) (model.Feedback, error) {
	f := model.Feedback{
		Kind:    model.FeedbackKind(strings.ToLower(strings.TrimSpace(req.Type))),
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}
	if f.Kind == "" {
		f.Kind = model.FeedbackSuggestion
	}

	var missing, invalid []string
	if f.Name == "" {
		missing = append(missing, "name")
	}
	if f.Email == "" {
		missing = append(missing, "email")
	}
	if f.Message == "" {
		missing = append(missing, "message")
	}
	if !f.Kind.Valid() {
		invalid = append(invalid, "type")
	}
	if len(missing) > 0 || len(invalid) > 0 {
		return f, &inventory.ValidationError{Missing: missing, Invalid: invalid}
	}
	return f, nil
}

// Create handles POST /api/feedback.
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := validateFeedback(req)
	if err != nil {
		out := inventory.Failure(err)
		if verr, ok := err.(*inventory.ValidationError); ok && len(verr.Missing) > 0 {
			out.Message = "Please fill in all fields."
		}
		jsonResponse(w, http.StatusBadRequest, out)
		return
	}

	claims := GetClaims(r.Context())
	f.UserID = &claims.UserID
	f.CreatedAt = time.Now()

	saved, err := store.CreateFeedback(r.Context(), h.DB, f)
	if err != nil {
		outcomeResponse(w, r, http.StatusCreated, inventory.Failure(err), err)
		return
	}

	log.Info().Str("user", claims.Email).Str("type", string(saved.Kind)).Msg("feedback received")
	jsonResponse(w, http.StatusCreated, inventory.Outcome{
		OK:      true,
		Kind:    inventory.OutcomeFeedbackSent,
		Title:   "Feedback Submitted",
		Message: "Thank you for your feedback! We'll get back to you soon.",
		Data:    saved,
	})
}

// List handles GET /api/feedback.
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	feedback, err := store.ListFeedback(r.Context(), h.DB)
	if err != nil {
		log.Error().Err(err).Msg("failed to list feedback")
		jsonError(w, http.StatusInternalServerError, "failed to list feedback")
		return
	}
	if feedback == nil {
		feedback = []model.Feedback{}
	}
	jsonResponse(w, http.StatusOK, feedback)
}
