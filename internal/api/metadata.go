package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/paws4pals/inventory/internal/inventory"
	"github.com/paws4pals/inventory/internal/model"
)

// MetadataHandler handles category, location and supplier endpoints.
type MetadataHandler struct {
	Guard *Guard
}

type metadataRequest struct {
	Name string `json:"name"`
}

// pathKind parses the {kind} path value, writing a 404 when unknown.
func pathKind(w http.ResponseWriter, r *http.Request) (model.Kind, bool) {
	kind, ok := model.ParseKind(r.PathValue("kind"))
	if !ok {
		jsonError(w, http.StatusNotFound, "unknown metadata kind")
		return "", false
	}
	return kind, true
}

// List handles GET /api/metadata/{kind}.
func (h *MetadataHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}

	var entries []model.MetadataItem
	h.Guard.Read(func(s *inventory.Session) {
		entries = s.Metadata().List(kind)
	})
	if entries == nil {
		entries = []model.MetadataItem{}
	}
	jsonResponse(w, http.StatusOK, entries)
}

// Create handles POST /api/metadata/{kind}.
func (h *MetadataHandler) Create(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}

	var req metadataRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := GetClaims(r.Context())
	out, err := h.Guard.Mutate(r.Context(), func(s *inventory.Session) (inventory.Outcome, error) {
		return s.AddMetadata(r.Context(), claims, kind, req.Name)
	})
	if out.OK {
		log.Info().Str("user", claims.Actor()).Str("kind", string(kind)).Str("name", req.Name).Msg("metadata created")
	}
	outcomeResponse(w, r, http.StatusCreated, out, err)
}

// Update handles PUT /api/metadata/{kind}/{id}.
func (h *MetadataHandler) Update(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	var req metadataRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := GetClaims(r.Context())
	out, err := h.Guard.Mutate(r.Context(), func(s *inventory.Session) (inventory.Outcome, error) {
		return s.UpdateMetadata(r.Context(), claims, kind, id, req.Name)
	})
	if out.OK {
		log.Info().Str("user", claims.Actor()).Str("kind", string(kind)).Str("id", id).Msg("metadata updated")
	}
	outcomeResponse(w, r, http.StatusOK, out, err)
}

// Delete handles DELETE /api/metadata/{kind}/{id}.
func (h *MetadataHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind, ok := pathKind(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	claims := GetClaims(r.Context())
	out, err := h.Guard.Mutate(r.Context(), func(s *inventory.Session) (inventory.Outcome, error) {
		return s.DeleteMetadata(r.Context(), claims, kind, id)
	})
	if out.OK {
		log.Info().Str("user", claims.Actor()).Str("kind", string(kind)).Str("id", id).Msg("metadata deleted")
	}
	outcomeResponse(w, r, http.StatusOK, out, err)
}
