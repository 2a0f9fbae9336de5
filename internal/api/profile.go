package api

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/paws4pals/inventory/internal/imaging"
	"github.com/paws4pals/inventory/internal/store"
)

// ProfileHandler handles the signed-in user's own profile.
type ProfileHandler struct {
	DB *sql.DB
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Bio   string `json:"bio"`
	Phone string `json:"phone"`
}

type profileResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
	Phone     string `json:"phone"`
	HasAvatar bool   `json:"has_avatar"`
	Initials  string `json:"initials"`
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	user, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")
		jsonError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}

	jsonResponse(w, http.StatusOK, profileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		Bio:       user.Bio,
		Phone:     user.Phone,
		HasAvatar: user.HasAvatar,
		Initials:  user.Initials(),
	})
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		jsonError(w, http.StatusBadRequest, "name and email required")
		return
	}

	existing, err := store.GetUserByEmail(r.Context(), h.DB, req.Email)
	if err != nil {
		log.Error().Err(err).Msg("looking up user")
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing != nil && existing.ID != claims.UserID {
		jsonError(w, http.StatusConflict, "email already exists")
		return
	}

	if err := store.UpdateProfile(r.Context(), h.DB, claims.UserID, req.Name, req.Email,
		strings.TrimSpace(req.Bio), strings.TrimSpace(req.Phone)); err != nil {
		log.Error().Err(err).Msg("failed to update profile")
		jsonError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	log.Info().Str("user", claims.Email).Msg("profile updated")
	h.Get(w, r)
}

// UploadAvatar handles PUT /api/profile/avatar.
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes)

	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "avatar file required")
		return
	}
	defer file.Close()

	avatar, err := imaging.ProcessAvatar(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetUserAvatar(r.Context(), h.DB, claims.UserID, avatar.Data, avatar.MIME); err != nil {
		log.Error().Err(err).Msg("failed to save avatar")
		jsonError(w, http.StatusInternalServerError, "failed to save avatar")
		return
	}

	log.Info().Str("user", claims.Email).Int("bytes", len(avatar.Data)).Msg("avatar uploaded")
	jsonResponse(w, http.StatusOK, map[string]string{"message": "avatar uploaded"})
}

// GetAvatar handles GET /api/profile/avatar.
func (h *ProfileHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	data, mime, err := store.GetUserAvatar(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get avatar")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no avatar")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}
