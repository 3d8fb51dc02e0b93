// Package supplier owns the current snapshot and the decision of which
// data source is active. A refresh degrades gracefully: live feed, then
// the last good live payload within its TTL, then a freshly synthesized
// world. Refresh never fails; provenance and the error message travel on
// the snapshot.
package supplier

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/skymap-live/skymap/pkg/config"
	"github.com/skymap-live/skymap/pkg/flight"
	"github.com/skymap-live/skymap/pkg/synth"
)

// LiveSource is the live feed contract consumed by the supplier.
// *opensky.Client implements it.
type LiveSource interface {
	States(ctx context.Context) ([]flight.Flight, error)
}

// lastGoodKey indexes the cached live payload.
const lastGoodKey = "last-good-live"

// Supplier fetches flight snapshots with graceful degradation.
type Supplier struct {
	source LiveSource
	count  int
	cache  *gocache.Cache
	log    *zap.SugaredLogger

	// inFlight guards against overlapping refreshes: a refresh that
	// lands while another is outstanding returns the current snapshot
	// untouched.
	inFlight atomic.Bool

	mu   sync.RWMutex
	last flight.Snapshot
}

// New creates a supplier over the given live source.
func New(source LiveSource, cfg config.SupplierConfig, log *zap.SugaredLogger) *Supplier {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	count := cfg.SyntheticFlights
	if count <= 0 {
		count = 100
	}

	return &Supplier{
		source: source,
		count:  count,
		cache:  gocache.New(ttl, ttl),
		log:    log,
	}
}

// Refresh produces a new snapshot and publishes it as the current one.
// At most one refresh is in flight at a time; an overlapping call
// returns the previous snapshot without touching the source.
func (s *Supplier) Refresh(ctx context.Context) flight.Snapshot {
	if !s.inFlight.CompareAndSwap(false, true) {
		return s.Last()
	}
	defer s.inFlight.Store(false)

	snap := s.fetch(ctx)

	s.mu.Lock()
	s.last = snap
	s.mu.Unlock()

	return snap
}

// Last returns the most recently published snapshot.
func (s *Supplier) Last() flight.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// fetch walks the degradation chain. Transport and schema failures are
// collapsed into one user-visible category per the error design.
func (s *Supplier) fetch(ctx context.Context) flight.Snapshot {
	now := time.Now().UTC()

	flights, err := s.source.States(ctx)
	if err == nil {
		s.cache.Set(lastGoodKey, flights, gocache.DefaultExpiration)
		s.log.Infow("live snapshot fetched", "flights", len(flights))
		return flight.Snapshot{
			Flights:   flights,
			Source:    flight.SourceLive,
			FetchedAt: now,
		}
	}

	s.log.Warnw("live feed unavailable", "error", err)
	msg := "live data unavailable: " + err.Error()

	if cached, ok := s.cache.Get(lastGoodKey); ok {
		return flight.Snapshot{
			Flights:   cached.([]flight.Flight),
			Source:    flight.SourceCached,
			Err:       msg,
			FetchedAt: now,
		}
	}

	return flight.Snapshot{
		Flights:   synth.Flights(s.count),
		Source:    flight.SourceSynthetic,
		Err:       msg,
		FetchedAt: now,
	}
}
