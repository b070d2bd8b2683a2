// Package pipeline orchestrates catalog refreshes: concurrent source
// fetches, merge/dedup, retention filtering, and atomic publication.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/catalog"
	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/domain"
	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/observability"
)

// Source is one upstream feed adapter. Fetch errors are advisory: the
// orchestrator converts a failed source into an empty per-source result and
// carries on.
type Source interface {
	Fetch(ctx context.Context) ([]domain.RawIncident, error)
	Source() string
}

// Publisher receives the merged catalog after each successful refresh.
// Implementations must not block for long; they run on the refresh path.
type Publisher interface {
	PublishCatalog(ctx context.Context, incidents []domain.Incident) error
}

// Refresher drives the fetch→normalize→merge→publish cycle.
type Refresher struct {
	sources   []Source
	store     *catalog.Store
	publisher Publisher // optional
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Refresher. publisher may be nil.
func New(sources []Source, store *catalog.Store, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Refresher {
	return &Refresher{
		sources:   sources,
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one catalog has been published.
func (r *Refresher) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no incident catalog published yet")
	}
	return nil
}

// RefreshOnce runs one complete refresh cycle. All sources are fetched
// concurrently and joined; any source may fail without aborting the batch.
// The previous catalog stays visible until the new one replaces it
// wholesale. When every source comes back empty and no catalog exists, the
// bundled seed dataset is published so consumers never see zero data.
func (r *Refresher) RefreshOnce(ctx context.Context) {
	start := time.Now()
	r.store.SetLoading()

	raws := r.fetchAll(ctx)

	if len(raws) == 0 {
		r.handleEmptyFetch()
		return
	}

	incidents := domain.FilterRetained(domain.MergeAll(raws))
	r.publish(ctx, incidents, "success")

	r.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	r.logger.Info("catalog refreshed",
		"raw_incidents", len(raws),
		"merged_incidents", len(incidents),
		"duration", time.Since(start),
	)
}

// Run refreshes immediately, then on a fixed cron cadence until the context
// is cancelled. The catalog stays visible between refreshes.
func (r *Refresher) Run(ctx context.Context, interval time.Duration) error {
	r.RefreshOnce(ctx)

	scheduler := cron.New()
	schedule := fmt.Sprintf("@every %s", interval)
	if _, err := scheduler.AddFunc(schedule, func() { r.RefreshOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule catalog refresh: %w", err)
	}
	scheduler.Start()

	<-ctx.Done()
	<-scheduler.Stop().Done()
	return nil
}

// fetchAll fans out over all sources and joins the per-source results,
// success-or-empty. The fetches are joined, not raced: every source gets to
// answer (or fail) before the merge.
func (r *Refresher) fetchAll(ctx context.Context) []domain.RawIncident {
	results := make([][]domain.RawIncident, len(r.sources))

	var g errgroup.Group
	for i, src := range r.sources {
		g.Go(func() error {
			incidents, err := src.Fetch(ctx)
			if err != nil {
				r.logger.Warn("source fetch failed", "source", src.Source(), "error", err)
				r.metrics.SourceFetches.WithLabelValues(src.Source(), "error").Inc()
				return nil // a failed source is an empty source, never a batch failure
			}
			r.metrics.SourceFetches.WithLabelValues(src.Source(), "success").Inc()
			r.metrics.SourceIncidents.WithLabelValues(src.Source()).Set(float64(len(incidents)))
			results[i] = incidents
			return nil
		})
	}
	g.Wait() //nolint:errcheck // closures never return an error

	var union []domain.RawIncident
	for _, res := range results {
		union = append(union, res...)
	}
	return union
}

// handleEmptyFetch decides what an all-sources-empty cycle means: with an
// existing catalog it is a no-op (stale beats empty); with no catalog at all
// the bundled seed dataset is published.
func (r *Refresher) handleEmptyFetch() {
	if !r.store.Empty() {
		r.metrics.Refreshes.WithLabelValues("empty").Inc()
		r.store.Done()
		r.logger.Warn("all sources empty, keeping previous catalog")
		return
	}

	seed := domain.MergeAll(catalog.Seed())
	if len(seed) == 0 {
		r.metrics.Refreshes.WithLabelValues("failed").Inc()
		r.store.Fail("wildfire data is temporarily unavailable")
		return
	}
	r.publish(context.Background(), seed, "fallback")
	r.logger.Warn("all sources empty, published seed dataset", "incidents", len(seed))
}

func (r *Refresher) publish(ctx context.Context, incidents []domain.Incident, outcome string) {
	r.store.Publish(incidents)
	r.ready.Store(true)
	r.metrics.CatalogSize.Set(float64(len(incidents)))
	r.metrics.Refreshes.WithLabelValues(outcome).Inc()

	if r.publisher != nil {
		if err := r.publisher.PublishCatalog(ctx, incidents); err != nil {
			r.logger.Warn("catalog publish failed", "error", err)
		}
	}
}
