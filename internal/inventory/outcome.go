package inventory

import (
	"errors"
	"fmt"
	"strings"
)

// Outcome kinds.
const (
	OutcomeItemAdded       = "item_added"
	OutcomeItemUpdated     = "item_updated"
	OutcomeItemDeleted     = "item_deleted"
	OutcomeItemSold        = "item_sold"
	OutcomeItemPurchased   = "item_purchased"
	OutcomeMetadataAdded   = "metadata_added"
	OutcomeMetadataUpdated = "metadata_updated"
	OutcomeMetadataDeleted = "metadata_deleted"
	OutcomeFeedbackSent    = "feedback_sent"

	OutcomeValidationError   = "validation_error"
	OutcomeDuplicate         = "duplicate"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomePermissionDenied  = "permission_denied"
	OutcomeInUse             = "in_use"
	OutcomeNotFound          = "not_found"
	OutcomeError             = "error"
)

// Outcome is the structured result of a mutation, meant to be rendered as a
// notification by the caller.
type Outcome struct {
	OK      bool   `json:"ok"`
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(kind, title, message string, data any) Outcome {
	return Outcome{OK: true, Kind: kind, Title: title, Message: message, Data: data}
}

// Failure converts an error returned by a Session operation into an Outcome.
func Failure(err error) Outcome {
	var (
		validation *ValidationError
		duplicate  *DuplicateError
		stock      *InsufficientStockError
		permission *PermissionError
		inUse      *InUseError
	)
	switch {
	case errors.As(err, &validation):
		msg := "Please fill in all required fields."
		if len(validation.Missing) == 0 {
			msg = "Please correct the invalid fields: " + strings.Join(validation.Invalid, ", ") + "."
		}
		return Outcome{Kind: OutcomeValidationError, Title: "Validation Error", Message: msg, Data: validation}
	case errors.As(err, &duplicate):
		return Outcome{Kind: OutcomeDuplicate, Title: "Error",
			Message: fmt.Sprintf("An item with this %s already exists.", duplicate.Field), Data: duplicate}
	case errors.As(err, &stock):
		return Outcome{Kind: OutcomeInsufficientStock, Title: "Error",
			Message: "Quantity sold cannot exceed current quantity.", Data: stock}
	case errors.As(err, &permission):
		return Outcome{Kind: OutcomePermissionDenied, Title: "Access Denied",
			Message: "You have view-only access."}
	case errors.As(err, &inUse):
		return Outcome{Kind: OutcomeInUse, Title: "Error",
			Message: fmt.Sprintf("%s is still used by %d items.", inUse.Kind.Title(), inUse.Count), Data: inUse}
	case errors.Is(err, ErrNotFound):
		return Outcome{Kind: OutcomeNotFound, Title: "Error", Message: "The requested record does not exist."}
	default:
		return Outcome{Kind: OutcomeError, Title: "Error", Message: "An unexpected error occurred. Please try again."}
	}
}
