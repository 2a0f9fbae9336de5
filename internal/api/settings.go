package api

import (
	"database/sql"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/paws4pals/inventory/internal/model"
	"github.com/paws4pals/inventory/internal/store"
)

// SettingsHandler handles per-user preferences and the backup schedule.
type SettingsHandler struct {
	DB *sql.DB
}

type settingsResponse struct {
	Notifications model.NotificationPrefs `json:"notifications"`
	Appearance    model.Appearance        `json:"appearance"`
	Backup        model.BackupSchedule    `json:"backup"`
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	notifications, err := store.GetNotificationPrefs(r.Context(), h.DB, claims.UserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get notification settings")
		jsonError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}
	appearance, err := store.GetAppearance(r.Context(), h.DB, claims.UserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appearance settings")
		jsonError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}
	schedule, err := store.GetBackupSchedule(r.Context(), h.DB)
	if err != nil {
		log.Error().Err(err).Msg("failed to get backup schedule")
		jsonError(w, http.StatusInternalServerError, "failed to get settings")
		return
	}

	jsonResponse(w, http.StatusOK, settingsResponse{
		Notifications: notifications,
		Appearance:    appearance,
		Backup:        schedule,
	})
}

// UpdateNotifications handles PUT /api/settings/notifications.
func (h *SettingsHandler) UpdateNotifications(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req model.NotificationPrefs
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.SetNotificationPrefs(r.Context(), h.DB, claims.UserID, req); err != nil {
		log.Error().Err(err).Msg("failed to save notification settings")
		jsonError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	jsonResponse(w, http.StatusOK, req)
}

// UpdateAppearance handles PUT /api/settings/appearance.
func (h *SettingsHandler) UpdateAppearance(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req model.Appearance
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Theme != model.ThemeLight && req.Theme != model.ThemeDark {
		jsonError(w, http.StatusBadRequest, "theme must be 'light' or 'dark'")
		return
	}

	if err := store.SetAppearance(r.Context(), h.DB, claims.UserID, req); err != nil {
		log.Error().Err(err).Msg("failed to save appearance settings")
		jsonError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}
	jsonResponse(w, http.StatusOK, req)
}

// UpdateBackupSchedule handles PUT /api/settings/backup.
func (h *SettingsHandler) UpdateBackupSchedule(w http.ResponseWriter, r *http.Request) {
	var req model.BackupSchedule
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Frequency.Valid() {
		jsonError(w, http.StatusBadRequest, "frequency must be 'daily', 'weekly', or 'monthly'")
		return
	}

	if err := store.SetBackupSchedule(r.Context(), h.DB, req); err != nil {
		log.Error().Err(err).Msg("failed to save backup schedule")
		jsonError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	claims := GetClaims(r.Context())
	log.Info().Str("user", claims.Email).Bool("auto", req.Auto).Str("frequency", string(req.Frequency)).Msg("backup schedule updated")
	jsonResponse(w, http.StatusOK, req)
}
