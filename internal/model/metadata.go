package model

import "strings"

// Kind identifies a metadata collection.
type Kind string

// Metadata kinds.
const (
	KindCategory Kind = "category"
	KindLocation Kind = "location"
	KindSupplier Kind = "supplier"
)

// Kinds lists every metadata kind in display order.
var Kinds = []Kind{KindCategory, KindLocation, KindSupplier}

// MetadataItem is a named category, location or supplier.
type MetadataItem struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
	Name string `json:"name"`
}

// ParseKind accepts singular or plural kind names ("category", "categories").
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "category", "categories":
		return KindCategory, true
	case "location", "locations":
		return KindLocation, true
	case "supplier", "suppliers":
		return KindSupplier, true
	}
	return "", false
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindCategory || k == KindLocation || k == KindSupplier
}

// Title returns the capitalized kind name used in messages.
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}
