// Package catalog holds the published incident catalog: the single shared
// structure the UI and notification layers read.
package catalog

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/domain"
)

// Status is the coarse pipeline state surfaced to the UI: ok, loading, or
// failed with a message. No structured error codes cross this boundary.
type Status struct {
	Loading     bool      `json:"loading"`
	Error       string    `json:"error,omitempty"`
	LastUpdated time.Time `json:"last_updated,omitempty"`
}

// Store publishes the incident catalog. Writes swap the whole slice; the
// slice itself is never mutated after publishing, so readers holding a
// snapshot never observe a half-updated list.
type Store struct {
	clock clockwork.Clock

	mu          sync.RWMutex
	incidents   []domain.Incident
	lastUpdated time.Time
	loading     bool
	errMsg      string
	subs        []chan []domain.Incident
}

// NewStore creates an empty catalog store. A nil clock means real time.
func NewStore(c clockwork.Clock) *Store {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	return &Store{clock: c}
}

// Publish replaces the catalog wholesale and clears loading/error state.
// Subscribers are notified with the new slice; a slow subscriber is skipped
// rather than allowed to stall the refresh.
func (s *Store) Publish(incidents []domain.Incident) {
	s.mu.Lock()
	s.incidents = incidents
	s.lastUpdated = s.clock.Now()
	s.loading = false
	s.errMsg = ""
	subs := make([]chan []domain.Incident, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- incidents:
		default:
		}
	}
}

// Snapshot returns the currently published catalog. The returned slice is
// shared but immutable by convention; callers must not modify it.
func (s *Store) Snapshot() []domain.Incident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.incidents
}

// Empty reports whether no catalog has ever been published.
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.incidents) == 0
}

// SetLoading flags a refresh in progress. The previous catalog stays visible.
func (s *Store) SetLoading() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

// Done clears the loading flag without touching the catalog, for refresh
// passes that finish without new data to publish.
func (s *Store) Done() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// Fail records a user-visible error message. The previous catalog stays
// visible; stale data with a timestamp beats an empty screen.
func (s *Store) Fail(msg string) {
	s.mu.Lock()
	s.loading = false
	s.errMsg = msg
	s.mu.Unlock()
}

// Status returns the coarse pipeline state.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{Loading: s.loading, Error: s.errMsg, LastUpdated: s.lastUpdated}
}

// Subscribe registers for catalog updates. Each publish delivers the new
// slice; deliveries to a full channel are dropped.
func (s *Store) Subscribe() <-chan []domain.Incident {
	ch := make(chan []domain.Incident, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}
