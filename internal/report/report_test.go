package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paws4pals/inventory/internal/config"
	"github.com/paws4pals/inventory/internal/inventory"
	"github.com/paws4pals/inventory/internal/model"
)

func fixtureItems() []model.Item {
	price := decimal.RequireFromString
	return []model.Item{
		{ID: "1", Name: "Laptop", SKU: "L", Category: "cat-1", Quantity: 0, ReorderPoint: 2, InventoryCap: 10,
			CostPrice: price("500"), SellingPrice: price("800")},
		{ID: "2", Name: "Headphones", SKU: "H", Category: "cat-1", Quantity: 3, ReorderPoint: 5,
			CostPrice: price("20"), SellingPrice: price("49.99")},
		{ID: "3", Name: "T-Shirt", SKU: "T", Category: "cat-2", Quantity: 40, ReorderPoint: 5, InventoryCap: 30,
			CostPrice: price("4.50"), SellingPrice: price("12")},
		{ID: "4", Name: "Jacket", SKU: "J", Category: "cat-2", Quantity: 12, ReorderPoint: 5, InventoryCap: 30,
			CostPrice: price("30"), SellingPrice: price("75")},
	}
}

func TestBuildDashboard(t *testing.T) {
	meta := inventory.NewMetadataStore(inventory.DefaultMetadata())
	d := BuildDashboard(fixtureItems(), meta)

	if d.TotalItems != 4 || d.TotalStock != 55 {
		t.Errorf("expected 4 items and 55 units, got %d and %d", d.TotalItems, d.TotalStock)
	}
	// 3*20 + 40*4.5 + 12*30
	if want := decimal.RequireFromString("600"); !d.InventoryValue.Equal(want) {
		t.Errorf("expected inventory value %s, got %s", want, d.InventoryValue)
	}
	// 3*49.99 + 40*12 + 12*75
	if want := decimal.RequireFromString("1529.97"); !d.PotentialRevenue.Equal(want) {
		t.Errorf("expected potential revenue %s, got %s", want, d.PotentialRevenue)
	}
	if d.CategoryCount != 2 {
		t.Errorf("expected 2 categories, got %d", d.CategoryCount)
	}
	want := []CategoryShare{
		{ID: "cat-1", Name: "Electronics", Items: 2, Stock: 3},
		{ID: "cat-2", Name: "Clothing", Items: 2, Stock: 52},
	}
	for i, c := range want {
		if d.Categories[i] != c {
			t.Errorf("category %d: expected %+v, got %+v", i, c, d.Categories[i])
		}
	}
	if d.StockCounts != (StockCounts{OutOfStock: 1, Low: 1, Over: 1, In: 1}) {
		t.Errorf("unexpected stock counts %+v", d.StockCounts)
	}
	if len(d.OutOfStock) != 1 || d.OutOfStock[0].ID != "1" {
		t.Errorf("unexpected out of stock list %+v", d.OutOfStock)
	}
	if len(d.LowStock) != 1 || d.LowStock[0].Cap != 15 {
		t.Errorf("expected default cap 15 on low stock alert, got %+v", d.LowStock)
	}
	if len(d.OverStock) != 1 || d.OverStock[0].ID != "3" {
		t.Errorf("unexpected over stock list %+v", d.OverStock)
	}
}

func TestBuildDashboardEmpty(t *testing.T) {
	d := BuildDashboard(nil, inventory.NewMetadataStore(nil))
	if d.TotalItems != 0 || !d.InventoryValue.IsZero() || d.OutOfStock == nil {
		t.Errorf("unexpected empty dashboard %+v", d)
	}
}

func TestCategories(t *testing.T) {
	meta := inventory.NewMetadataStore(inventory.DefaultMetadata())
	got := Categories(fixtureItems(), meta)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[0].Stock != 3 || !got[0].Value.Equal(decimal.NewFromInt(60)) {
		t.Errorf("unexpected electronics %+v", got[0])
	}
	if got[1].Stock != 52 || !got[1].Value.Equal(decimal.NewFromInt(540)) {
		t.Errorf("unexpected clothing %+v", got[1])
	}
}

func movement(kind model.MovementKind, amount int, at time.Time) model.Movement {
	return model.Movement{ItemID: "3", Kind: kind, Amount: amount, At: at}
}

func TestMonthly(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	moves := []model.Movement{
		movement(model.MovementPurchased, 10, time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)), // outside window
		movement(model.MovementPurchased, 20, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		movement(model.MovementSold, 5, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)),
		movement(model.MovementSold, 8, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)),
	}

	got := Monthly(moves, now, 3)
	want := []MonthlyMovement{
		{Month: "2024-01", Label: "Jan", Positive: 20, Negative: -5, Net: 15},
		{Month: "2024-02", Label: "Feb"},
		{Month: "2024-03", Label: "Mar", Negative: -8, Net: -8},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d months, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("month %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestTurnover(t *testing.T) {
	now := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	items := []model.Item{{ID: "3", Quantity: 40}}
	moves := []model.Movement{
		movement(model.MovementSold, 10, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)),
		movement(model.MovementPurchased, 30, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)),
		movement(model.MovementSold, 20, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)),
	}

	got := Turnover(items, moves, now, 2)
	// February: closing 40, opening 60, sold 20, average 50.
	feb := got[1]
	if feb.Month != "2024-02" || feb.Sold != 20 {
		t.Errorf("unexpected february %+v", feb)
	}
	if !feb.AverageStock.Equal(decimal.NewFromInt(50)) || !feb.Rate.Equal(decimal.RequireFromString("0.4")) {
		t.Errorf("expected average 50 rate 0.4, got %s %s", feb.AverageStock, feb.Rate)
	}
	// January: closing 60, opening 40, sold 10, average 50.
	jan := got[0]
	if jan.Sold != 10 || !jan.Rate.Equal(decimal.RequireFromString("0.2")) {
		t.Errorf("unexpected january %+v", jan)
	}
}

func TestTurnoverEmptyStock(t *testing.T) {
	got := Turnover(nil, nil, time.Now(), 1)
	if len(got) != 1 || !got[0].Rate.IsZero() {
		t.Errorf("expected zero rate, got %+v", got)
	}
}

func TestNoopCache(t *testing.T) {
	c, err := NewCache(config.CacheConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	ctx := context.Background()
	if err := c.Set(ctx, KeyDashboard, Dashboard{TotalItems: 1}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var d Dashboard
	hit, err := c.Get(ctx, KeyDashboard, &d)
	if err != nil || hit {
		t.Errorf("expected miss, got hit=%v err=%v", hit, err)
	}
}

func TestBuildRedisOptions(t *testing.T) {
	opts, err := buildRedisOptions(config.CacheConfig{RedisURL: "redis://:secret@cache:6380/2"})
	if err != nil {
		t.Fatalf("buildRedisOptions: %v", err)
	}
	if opts.Addr != "cache:6380" || opts.Password != "secret" || opts.DB != 2 {
		t.Errorf("unexpected options %+v", opts)
	}

	opts, _ = buildRedisOptions(config.CacheConfig{RedisAddr: "localhost:6379", RedisDB: 1})
	if opts.Addr != "localhost:6379" || opts.DB != 1 {
		t.Errorf("unexpected options %+v", opts)
	}

	if _, err := buildRedisOptions(config.CacheConfig{RedisURL: "http://nope"}); err == nil {
		t.Error("expected error for invalid url")
	}
}

func TestMonthlyKey(t *testing.T) {
	if MonthlyKey(6) == TurnoverKey(6) {
		t.Error("report keys must differ")
	}
}
