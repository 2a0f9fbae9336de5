package api

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/paws4pals/inventory/internal/inventory"
	"github.com/paws4pals/inventory/internal/report"
)

// Guard serializes access to the inventory session and drops cached reports
// after every successful mutation. generation counts successful mutations so
// a report computed before one is never left in the cache after it.
type Guard struct {
	mu         sync.Mutex
	session    *inventory.Session
	cache      report.Cache
	generation atomic.Uint64
}

// NewGuard wraps a session. A nil cache disables report caching.
func NewGuard(session *inventory.Session, cache report.Cache) *Guard {
	if cache == nil {
		cache = report.NewNoopCache()
	}
	return &Guard{session: session, cache: cache}
}

// Read runs fn while holding the session lock.
func (g *Guard) Read(fn func(s *inventory.Session)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.session)
}

// Mutate runs fn while holding the session lock and invalidates the report
// cache when the outcome is successful.
func (g *Guard) Mutate(ctx context.Context, fn func(s *inventory.Session) (inventory.Outcome, error)) (inventory.Outcome, error) {
	g.mu.Lock()
	out, err := fn(g.session)
	if out.OK {
		g.generation.Add(1)
	}
	g.mu.Unlock()

	if out.OK {
		if cerr := g.cache.InvalidateAll(ctx); cerr != nil {
			log.Warn().Err(cerr).Msg("invalidating report cache")
		}
	}
	return out, err
}

// Cached loads key from the report cache, or computes it under the session
// lock and stores the result. A result that a mutation overtook is not kept.
func Cached[T any](ctx context.Context, g *Guard, key string, compute func(s *inventory.Session) T) T {
	var v T
	hit, err := g.cache.Get(ctx, key, &v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("reading report cache")
	}
	if hit {
		return v
	}

	var gen uint64
	g.Read(func(s *inventory.Session) {
		v = compute(s)
		gen = g.generation.Load()
	})
	if g.generation.Load() != gen {
		return v
	}
	if err := g.cache.Set(ctx, key, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("writing report cache")
	}
	if g.generation.Load() != gen {
		// A mutation landed while storing; its invalidation may have run first.
		if err := g.cache.InvalidateAll(ctx); err != nil {
			log.Warn().Err(err).Msg("invalidating report cache")
		}
	}
	return v
}

// SnapshotSize returns the length of the JSON encoding of the current
// session state.
func (g *Guard) SnapshotSize() (int64, error) {
	var snap inventory.Snapshot
	g.Read(func(s *inventory.Session) {
		snap = s.Snapshot()
	})
	data, err := json.Marshal(snap)
	if err != nil {
		return 0, fmt.Errorf("encoding snapshot: %w", err)
	}
	return int64(len(data)), nil
}
