package report

import (
	"github.com/shopspring/decimal"

	"github.com/paws4pals/inventory/internal/inventory"
	"github.com/paws4pals/inventory/internal/model"
)

// Dashboard holds the headline inventory figures.
type Dashboard struct {
	TotalItems       int             `json:"total_items"`
	TotalStock       int             `json:"total_stock"`
	InventoryValue   decimal.Decimal `json:"inventory_value"`
	PotentialRevenue decimal.Decimal `json:"potential_revenue"`
	CategoryCount    int             `json:"category_count"`
	Categories       []CategoryShare `json:"categories"`
	StockCounts      StockCounts     `json:"stock_counts"`
	OutOfStock       []StockAlert    `json:"out_of_stock"`
	LowStock         []StockAlert    `json:"low_stock"`
	OverStock        []StockAlert    `json:"over_stock"`
}

// CategoryShare is the number of items and units in a category.
type CategoryShare struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items int    `json:"items"`
	Stock int    `json:"stock"`
}

// StockCounts is the number of items per stock status.
type StockCounts struct {
	OutOfStock int `json:"out_of_stock"`
	Low        int `json:"low_stock"`
	Over       int `json:"over_stock"`
	In         int `json:"in_stock"`
}

// StockAlert describes an item that needs attention.
type StockAlert struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	SKU          string            `json:"sku"`
	Quantity     int               `json:"quantity"`
	ReorderPoint int               `json:"reorder_point"`
	Cap          int               `json:"cap"`
	Status       model.StockStatus `json:"status"`
}

// BuildDashboard computes the dashboard from the current items.
func BuildDashboard(items []model.Item, meta inventory.Resolver) Dashboard {
	d := Dashboard{
		TotalItems:       len(items),
		InventoryValue:   decimal.Zero,
		PotentialRevenue: decimal.Zero,
		OutOfStock:       []StockAlert{},
		LowStock:         []StockAlert{},
		OverStock:        []StockAlert{},
	}

	categories := meta.List(model.KindCategory)
	d.CategoryCount = len(categories)
	shares := make(map[string]*CategoryShare, len(categories))
	d.Categories = make([]CategoryShare, len(categories))
	for i, c := range categories {
		d.Categories[i] = CategoryShare{ID: c.ID, Name: c.Name}
		shares[c.ID] = &d.Categories[i]
	}

	for _, item := range items {
		d.TotalStock += item.Quantity
		d.InventoryValue = d.InventoryValue.Add(item.StockValue())
		d.PotentialRevenue = d.PotentialRevenue.Add(item.PotentialRevenue())
		if s, ok := shares[item.Category]; ok {
			s.Items++
			s.Stock += item.Quantity
		}

		status := model.Classify(item)
		alert := StockAlert{
			ID: item.ID, Name: item.Name, SKU: item.SKU,
			Quantity: item.Quantity, ReorderPoint: item.ReorderPoint, Cap: item.Cap(),
			Status: status,
		}
		switch status {
		case model.StockOutOfStock:
			d.StockCounts.OutOfStock++
			d.OutOfStock = append(d.OutOfStock, alert)
		case model.StockLow:
			d.StockCounts.Low++
			d.LowStock = append(d.LowStock, alert)
		case model.StockOver:
			d.StockCounts.Over++
			d.OverStock = append(d.OverStock, alert)
		default:
			d.StockCounts.In++
		}
	}
	return d
}
