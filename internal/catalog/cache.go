package catalog

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a cached catalog snapshot stays fresh.
const DefaultCacheTTL = 5 * time.Minute

// CachedSource decorates a Source with a TTL cache over the unfiltered
// catalog. Filters are applied to the cached snapshot, so one upstream
// read serves every filter combination until the entry goes stale.
//
// The clock is injectable so tests control staleness directly instead of
// sleeping.
type CachedSource struct {
	inner Source
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	questions []Question
	fetchedAt time.Time
}

// NewCachedSource wraps inner with a TTL cache. A zero or negative ttl
// uses DefaultCacheTTL. now may be nil, defaulting to time.Now.
func NewCachedSource(inner Source, ttl time.Duration, now func() time.Time) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if now == nil {
		now = time.Now
	}
	return &CachedSource{inner: inner, ttl: ttl, now: now}
}

// Query serves from the cache, refreshing from the inner source when the
// entry is stale or missing. A failed refresh propagates the inner error;
// it never falls back to stale data, so degradation stays visible to the
// caller.
func (c *CachedSource) Query(ctx context.Context, f Filter) ([]Question, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fetchedAt.IsZero() || c.now().Sub(c.fetchedAt) >= c.ttl {
		if err := c.refreshLocked(ctx); err != nil {
			return nil, err
		}
	}

	out := make([]Question, 0, len(c.questions))
	for _, q := range c.questions {
		if f.Matches(q) {
			out = append(out, q.clone())
		}
	}
	return out, nil
}

// Invalidate drops the cached snapshot. The next Query hits the inner source.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.questions = nil
	c.fetchedAt = time.Time{}
}

// Refresh forces an immediate reload from the inner source.
func (c *CachedSource) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *CachedSource) refreshLocked(ctx context.Context) error {
	qs, err := c.inner.Query(ctx, Filter{})
	if err != nil {
		return err
	}
	c.questions = qs
	c.fetchedAt = c.now()
	return nil
}
