// Package detailcache fronts the detail extraction engine with a per-URL TTL
// cache and a background refresh loop.
package detailcache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/domain"
	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/observability"
)

// PageFetcher retrieves raw detail-page markup.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

// Extractor turns markup into structured incident detail.
type Extractor interface {
	Detail(markup []byte) domain.IncidentDetail
}

// DefaultTTL is how long a cached detail record stays fresh.
const DefaultTTL = 3 * time.Hour

type entry struct {
	detail    domain.IncidentDetail
	fetchedAt time.Time
}

// Cache maps detail-page URLs to extracted detail records. Entries are
// written at the granularity of one whole record; a refresh fully replaces
// the bundle for that URL, never patches it.
type Cache struct {
	fetcher   PageFetcher
	extractor Extractor
	ttl       time.Duration
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics

	mu      sync.Mutex
	entries map[string]entry

	group singleflight.Group
}

// New creates a detail cache. A nil clock means real time.
func New(fetcher PageFetcher, extractor Extractor, ttl time.Duration, c clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Cache {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	return &Cache{
		fetcher:   fetcher,
		extractor: extractor,
		ttl:       ttl,
		clock:     c,
		logger:    logger,
		metrics:   metrics,
		entries:   make(map[string]entry),
	}
}

// Get returns the detail record for a URL, fetching and extracting on a miss
// or an expired entry. Concurrent gets for the same URL share one in-flight
// fetch. On fetch failure a stale entry, if present, is returned rather than
// nothing: stale-but-present beats empty.
func (c *Cache) Get(ctx context.Context, url string) (domain.IncidentDetail, bool) {
	if url == "" {
		return domain.IncidentDetail{}, false
	}

	if detail, ok := c.fresh(url); ok {
		c.metrics.DetailCacheLookups.WithLabelValues("hit").Inc()
		return detail, true
	}
	c.metrics.DetailCacheLookups.WithLabelValues("miss").Inc()

	v, err, _ := c.group.Do(url, func() (any, error) {
		// Another caller may have refreshed the entry while this one waited
		// on the flight group.
		if detail, ok := c.fresh(url); ok {
			return detail, nil
		}
		return c.refresh(ctx, url)
	})
	if err != nil {
		// Keep serving the stale entry; it is not evicted on failure.
		if detail, ok := c.stale(url); ok {
			return detail, true
		}
		return domain.IncidentDetail{}, false
	}
	return v.(domain.IncidentDetail), true
}

// RefreshAll re-fetches every URL already present in the cache. It never
// warms URLs nobody has requested. Failures leave the prior entry in place.
func (c *Cache) RefreshAll(ctx context.Context) {
	for _, url := range c.keys() {
		if ctx.Err() != nil {
			return
		}
		if _, err := c.refresh(ctx, url); err != nil {
			c.logger.Warn("detail refresh failed", "url", url, "error", err)
		}
	}
}

// Run drives the periodic background refresh until the context is cancelled.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	ticker := c.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			c.RefreshAll(ctx)
		}
	}
}

// Len reports how many URLs the cache currently holds.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// refresh fetches, extracts, and stores one URL's detail record.
func (c *Cache) refresh(ctx context.Context, url string) (domain.IncidentDetail, error) {
	markup, err := c.fetcher.FetchPage(ctx, url)
	if err != nil {
		c.metrics.DetailFetches.WithLabelValues("error").Inc()
		return domain.IncidentDetail{}, err
	}
	c.metrics.DetailFetches.WithLabelValues("success").Inc()

	detail := c.extractor.Detail(markup)
	detail.UpdatedAt = c.clock.Now()

	c.mu.Lock()
	c.entries[url] = entry{detail: detail, fetchedAt: c.clock.Now()}
	c.metrics.DetailCacheEntries.Set(float64(len(c.entries)))
	c.mu.Unlock()
	return detail, nil
}

// fresh returns the entry for a URL if it is younger than the TTL.
func (c *Cache) fresh(url string) (domain.IncidentDetail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[url]
	if !ok {
		return domain.IncidentDetail{}, false
	}
	if c.clock.Since(e.fetchedAt) > c.ttl {
		return domain.IncidentDetail{}, false
	}
	return e.detail, true
}

// stale returns the entry for a URL regardless of age.
func (c *Cache) stale(url string) (domain.IncidentDetail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[url]
	return e.detail, ok
}

func (c *Cache) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	urls := make([]string, 0, len(c.entries))
	for url := range c.entries {
		urls = append(urls, url)
	}
	return urls
}
