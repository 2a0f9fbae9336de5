package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paws4pals/inventory/internal/model"
)

// ErrNotFound is returned when an item or metadata entry does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError lists required fields that are empty and fields whose
// values are out of range or reference unknown metadata.
type ValidationError struct {
	Missing []string `json:"missing,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid "+strings.Join(e.Invalid, ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// DuplicateError reports a case-insensitive collision on a unique field.
type DuplicateError struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s: %q", e.Field, e.Value)
}

// InsufficientStockError reports a sale larger than the on-hand quantity.
type InsufficientStockError struct {
	Requested int `json:"requested"`
	Available int `json:"available"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

// PermissionError is returned when the caller may not mutate inventory data.
type PermissionError struct {
	Action string
}

func (e *PermissionError) Error() string {
	return "permission denied: " + e.Action
}

// InUseError is returned when deleting a metadata entry that items still reference.
type InUseError struct {
	Kind  model.Kind `json:"kind"`
	ID    string     `json:"id"`
	Count int        `json:"count"`
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("cannot delete %s %s: referenced by %d items", e.Kind, e.ID, e.Count)
}
