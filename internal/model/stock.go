package model

// StockStatus is the derived stock level of an item.
type StockStatus string

// Stock statuses.
const (
	StockOutOfStock StockStatus = "out_of_stock"
	StockLow        StockStatus = "low_stock"
	StockOver       StockStatus = "over_stock"
	StockIn         StockStatus = "in_stock"
)

// Classify returns the stock status of an item. Rules are checked in order and
// the first match wins, so an empty item is always out of stock even when its
// reorder point or cap is zero.
func Classify(item Item) StockStatus {
	switch {
	case item.Quantity == 0:
		return StockOutOfStock
	case item.Quantity <= item.ReorderPoint:
		return StockLow
	case item.Quantity >= item.Cap():
		return StockOver
	default:
		return StockIn
	}
}

// Label returns the display label for a status.
func (s StockStatus) Label() string {
	switch s {
	case StockOutOfStock:
		return "Out of Stock"
	case StockLow:
		return "Low Stock"
	case StockOver:
		return "Over Stock"
	case StockIn:
		return "In Stock"
	default:
		return string(s)
	}
}
