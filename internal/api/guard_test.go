package api

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/paws4pals/inventory/internal/inventory"
	"github.com/paws4pals/inventory/internal/model"
	"github.com/paws4pals/inventory/internal/report"
)

type adminPrincipal struct{}

func (adminPrincipal) CanMutate() bool { return true }
func (adminPrincipal) Actor() string   { return "admin@paws4pals.test" }

// memoryCache is a report.Cache kept in a map. beforeSet, when set, runs at
// the start of the next Set call.
type memoryCache struct {
	values    map[string][]byte
	beforeSet func()
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	data, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (c *memoryCache) Set(_ context.Context, key string, v any) error {
	if hook := c.beforeSet; hook != nil {
		c.beforeSet = nil
		hook()
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.values[key] = data
	return nil
}

func (c *memoryCache) InvalidateAll(context.Context) error {
	clear(c.values)
	return nil
}

func (c *memoryCache) Close() error { return nil }

func dashboardOf(ctx context.Context, g *Guard) report.Dashboard {
	return Cached(ctx, g, report.KeyDashboard, func(s *inventory.Session) report.Dashboard {
		return report.BuildDashboard(s.Items(), s.Metadata())
	})
}

func TestCachedServesFromCache(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache()
	g := NewGuard(inventory.NewSession(inventory.NewMetadataStore(inventory.DefaultMetadata()), nil, nil), cache)

	first := dashboardOf(ctx, g)
	if _, ok := cache.values[report.KeyDashboard]; !ok {
		t.Fatal("expected dashboard to be cached")
	}
	if second := dashboardOf(ctx, g); second.CategoryCount != first.CategoryCount {
		t.Errorf("expected cached category count %d, got %d", first.CategoryCount, second.CategoryCount)
	}

	if _, err := g.Mutate(ctx, func(s *inventory.Session) (inventory.Outcome, error) {
		return s.AddMetadata(ctx, adminPrincipal{}, model.KindCategory, "Toys")
	}); err != nil {
		t.Fatalf("AddMetadata: %v", err)
	}
	if len(cache.values) != 0 {
		t.Error("expected mutation to clear the cache")
	}
	if got := dashboardOf(ctx, g); got.CategoryCount != first.CategoryCount+1 {
		t.Errorf("expected %d categories after mutation, got %d", first.CategoryCount+1, got.CategoryCount)
	}
}

func TestCachedDropsReportOvertakenByMutation(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache()
	g := NewGuard(inventory.NewSession(inventory.NewMetadataStore(inventory.DefaultMetadata()), nil, nil), cache)

	// A mutation lands between computing the report and storing it.
	cache.beforeSet = func() {
		if _, err := g.Mutate(ctx, func(s *inventory.Session) (inventory.Outcome, error) {
			return s.AddMetadata(ctx, adminPrincipal{}, model.KindCategory, "Toys")
		}); err != nil {
			t.Errorf("AddMetadata: %v", err)
		}
	}
	stale := dashboardOf(ctx, g)

	var live int
	g.Read(func(s *inventory.Session) {
		live = len(s.Metadata().List(model.KindCategory))
	})
	if live != stale.CategoryCount+1 {
		t.Fatalf("expected the mutation to add a category, live %d stale %d", live, stale.CategoryCount)
	}
	if got := dashboardOf(ctx, g); got.CategoryCount != live {
		t.Errorf("expected %d categories, got stale %d", live, got.CategoryCount)
	}
}
