package model

import "time"

// MovementKind is the direction of a stock transaction.
type MovementKind string

// Movement kinds.
const (
	MovementSold      MovementKind = "sold"
	MovementPurchased MovementKind = "purchased"
)

// ParseMovementKind accepts "sold", "purchased" and the short "purchase".
func ParseMovementKind(s string) (MovementKind, bool) {
	switch s {
	case "sold", "sale":
		return MovementSold, true
	case "purchased", "purchase":
		return MovementPurchased, true
	}
	return "", false
}

// Movement records a quantity change made by a transaction.
type Movement struct {
	ID             string       `json:"id"`
	ItemID         string       `json:"item_id"`
	Kind           MovementKind `json:"kind"`
	Amount         int          `json:"amount"`
	QuantityBefore int          `json:"quantity_before"`
	QuantityAfter  int          `json:"quantity_after"`
	At             time.Time    `json:"at"`
	By             string       `json:"by,omitempty"`
}

// Delta is the signed quantity change.
func (m Movement) Delta() int {
	if m.Kind == MovementSold {
		return -m.Amount
	}
	return m.Amount
}
