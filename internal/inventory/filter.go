package inventory

import (
	"net/url"
	"slices"
	"strings"

	"github.com/paws4pals/inventory/internal/model"
)

// StockFilter selects items by stock status.
type StockFilter string

// Stock filters.
const (
	StockAll  StockFilter = "all"
	StockLow  StockFilter = "low"
	StockOut  StockFilter = "out"
	StockOver StockFilter = "over"
)

// SortKey orders filtered items.
type SortKey string

// Sort keys.
const (
	SortRecent   SortKey = "recent"
	SortOldest   SortKey = "oldest"
	SortNameAsc  SortKey = "asc"
	SortNameDesc SortKey = "desc"
)

// Criteria narrows and orders the inventory list. Empty or "all" values for
// the id filters match every item.
type Criteria struct {
	Search   string      `json:"search"`
	Category string      `json:"category"`
	Location string      `json:"location"`
	Supplier string      `json:"supplier"`
	Stock    StockFilter `json:"stock"`
	Sort     SortKey     `json:"sort"`
}

// DefaultCriteria matches everything, newest first.
func DefaultCriteria() Criteria {
	return Criteria{Stock: StockAll, Sort: SortRecent}
}

// ParseCriteria reads criteria from query parameters q, category, location,
// supplier, stock and sort.
func ParseCriteria(v url.Values) (Criteria, error) {
	c := DefaultCriteria()
	c.Search = v.Get("q")
	c.Category = v.Get("category")
	c.Location = v.Get("location")
	c.Supplier = v.Get("supplier")

	var invalid []string
	if s := v.Get("stock"); s != "" {
		switch f := StockFilter(strings.ToLower(s)); f {
		case StockAll, StockLow, StockOut, StockOver:
			c.Stock = f
		default:
			invalid = append(invalid, "stock")
		}
	}
	if s := v.Get("sort"); s != "" {
		switch k := SortKey(strings.ToLower(s)); k {
		case SortRecent, SortOldest, SortNameAsc, SortNameDesc:
			c.Sort = k
		default:
			invalid = append(invalid, "sort")
		}
	}
	if len(invalid) > 0 {
		return c, &ValidationError{Invalid: invalid}
	}
	return c, nil
}

// Apply returns the items matching c in the requested order. The input slice
// is not modified.
func Apply(items []model.Item, c Criteria, meta Resolver) []model.Item {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		if search != "" && !matchesSearch(item, search, meta) {
			continue
		}
		if !matchesID(item.Category, c.Category) ||
			!matchesID(item.Location, c.Location) ||
			!matchesID(item.Supplier, c.Supplier) {
			continue
		}
		if !matchesStock(item, c.Stock) {
			continue
		}
		out = append(out, item)
	}

	switch c.Sort {
	case SortOldest:
		slices.SortStableFunc(out, func(a, b model.Item) int { return a.CreatedAt.Compare(b.CreatedAt) })
	case SortNameAsc:
		slices.SortStableFunc(out, func(a, b model.Item) int { return strings.Compare(a.Name, b.Name) })
	case SortNameDesc:
		slices.SortStableFunc(out, func(a, b model.Item) int { return strings.Compare(b.Name, a.Name) })
	default:
		slices.SortStableFunc(out, func(a, b model.Item) int { return b.CreatedAt.Compare(a.CreatedAt) })
	}
	return out
}

func matchesSearch(item model.Item, search string, meta Resolver) bool {
	fields := []string{item.Name, item.SKU}
	if meta != nil {
		if name, ok := meta.Resolve(model.KindCategory, item.Category); ok {
			fields = append(fields, name)
		}
		if name, ok := meta.Resolve(model.KindSupplier, item.Supplier); ok {
			fields = append(fields, name)
		}
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func matchesID(value, filter string) bool {
	switch filter {
	case "", "all", "all_categories", "all_locations", "all_suppliers":
		return true
	}
	return value == filter
}

func matchesStock(item model.Item, f StockFilter) bool {
	switch f {
	case StockLow:
		return model.Classify(item) == model.StockLow
	case StockOut:
		return model.Classify(item) == model.StockOutOfStock
	case StockOver:
		return model.Classify(item) == model.StockOver
	default:
		return true
	}
}
