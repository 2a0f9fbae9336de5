package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/paws4pals/inventory/internal/inventory"
	"github.com/paws4pals/inventory/internal/model"
)

// ItemsHandler handles item endpoints. Permission checks happen in the
// inventory session, so read and write routes share the same middleware.
type ItemsHandler struct {
	Guard *Guard
}

type transactionRequest struct {
	Kind   string `json:"kind"`
	Amount int    `json:"amount"`
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	c, err := inventory.ParseCriteria(r.URL.Query())
	if err != nil {
		jsonResponse(w, http.StatusBadRequest, inventory.Failure(err))
		return
	}

	var items []model.Item
	h.Guard.Read(func(s *inventory.Session) {
		items = s.List(c)
	})
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Draft handles GET /api/items/draft.
func (h *ItemsHandler) Draft(w http.ResponseWriter, r *http.Request) {
	var (
		item model.Item
		err  error
	)
	h.Guard.Read(func(s *inventory.Session) {
		item, err = s.CreateDraft(GetClaims(r.Context()))
	})
	if err != nil {
		out := inventory.Failure(err)
		jsonResponse(w, outcomeStatus(out, http.StatusOK), out)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var item model.Item
	if err := decodeJSON(r, &item); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := GetClaims(r.Context())
	out, err := h.Guard.Mutate(r.Context(), func(s *inventory.Session) (inventory.Outcome, error) {
		return s.Create(r.Context(), claims, item)
	})
	if out.OK {
		log.Info().Str("user", claims.Actor()).Str("item", item.Name).Msg("item created")
	}
	outcomeResponse(w, r, http.StatusCreated, out, err)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var (
		item  model.Item
		found bool
	)
	h.Guard.Read(func(s *inventory.Session) {
		item, found = s.Get(id)
	})
	if !found {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var item model.Item
	if err := decodeJSON(r, &item); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item.ID = id

	claims := GetClaims(r.Context())
	out, err := h.Guard.Mutate(r.Context(), func(s *inventory.Session) (inventory.Outcome, error) {
		return s.Update(r.Context(), claims, item)
	})
	if out.OK {
		log.Info().Str("user", claims.Actor()).Str("item", id).Msg("item updated")
	}
	outcomeResponse(w, r, http.StatusOK, out, err)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	claims := GetClaims(r.Context())

	out, err := h.Guard.Mutate(r.Context(), func(s *inventory.Session) (inventory.Outcome, error) {
		return s.Delete(r.Context(), claims, id)
	})
	if out.OK {
		log.Info().Str("user", claims.Actor()).Str("item", id).Msg("item deleted")
	}
	outcomeResponse(w, r, http.StatusOK, out, err)
}

// Transact handles POST /api/items/{id}/transactions.
func (h *ItemsHandler) Transact(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := GetClaims(r.Context())
	kind := model.MovementKind(strings.ToLower(strings.TrimSpace(req.Kind)))
	out, err := h.Guard.Mutate(r.Context(), func(s *inventory.Session) (inventory.Outcome, error) {
		return s.Transact(r.Context(), claims, id, kind, req.Amount)
	})
	if out.OK {
		log.Info().
			Str("user", claims.Actor()).
			Str("item", id).
			Str("kind", string(kind)).
			Int("amount", req.Amount).
			Msg("transaction recorded")
	}
	outcomeResponse(w, r, http.StatusOK, out, err)
}

// Movements handles GET /api/items/{id}/movements.
func (h *ItemsHandler) Movements(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var (
		movements []model.Movement
		found     bool
	)
	h.Guard.Read(func(s *inventory.Session) {
		_, found = s.Get(id)
		movements = s.Movements(id)
	})
	if !found {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if movements == nil {
		movements = []model.Movement{}
	}
	jsonResponse(w, http.StatusOK, movements)
}
