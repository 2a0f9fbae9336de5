package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a stocked product. Category, Location and Supplier hold metadata ids.
type Item struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	SKU            string          `json:"sku"`
	Category       string          `json:"category"`
	Location       string          `json:"location"`
	Supplier       string          `json:"supplier"`
	Quantity       int             `json:"quantity"`
	ReorderPoint   int             `json:"reorder_point"`
	InventoryCap   int             `json:"inventory_cap"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	LastUpdated    time.Time       `json:"last_updated"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
}

// Cap returns the over-stock threshold. An unset cap (zero) falls back to
// three times the reorder point.
func (i Item) Cap() int {
	if i.InventoryCap > 0 {
		return i.InventoryCap
	}
	return i.ReorderPoint * 3
}

// StockValue is the on-hand quantity priced at cost.
func (i Item) StockValue() decimal.Decimal {
	return i.CostPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PotentialRevenue is the on-hand quantity priced at the selling price.
func (i Item) PotentialRevenue() decimal.Decimal {
	return i.SellingPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
