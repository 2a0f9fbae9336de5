package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/paws4pals/inventory/internal/inventory"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Error().Err(err).Msg("error encoding response")
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// outcomeStatus maps an outcome kind to an HTTP status.
func outcomeStatus(out inventory.Outcome, success int) int {
	if out.OK {
		return success
	}
	switch out.Kind {
	case inventory.OutcomeValidationError:
		return http.StatusBadRequest
	case inventory.OutcomeDuplicate, inventory.OutcomeInUse:
		return http.StatusConflict
	case inventory.OutcomePermissionDenied:
		return http.StatusForbidden
	case inventory.OutcomeNotFound:
		return http.StatusNotFound
	case inventory.OutcomeInsufficientStock:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// outcomeResponse writes a mutation outcome. Unexpected errors are logged.
func outcomeResponse(w http.ResponseWriter, r *http.Request, success int, out inventory.Outcome, err error) {
	status := outcomeStatus(out, success)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("mutation failed")
	}
	jsonResponse(w, status, out)
}
