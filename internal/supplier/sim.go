package supplier

import (
	"sync"
	"time"

	"github.com/skymap-live/skymap/pkg/flight"
	"github.com/skymap-live/skymap/pkg/synth"
)

// Sim is the dual-mode supplier variant. It never touches the network:
// both the flight and airport lists are synthesized, and a short-period
// perturbation step nudges the flights in place to simulate motion
// between full resyntheses.
type Sim struct {
	mu        sync.RWMutex
	flights   []flight.Flight
	airports  []flight.Airport
	fetchedAt time.Time

	nFlights  int
	nAirports int
}

// NewSim creates a simulation supplier and generates the initial world.
func NewSim(nFlights, nAirports int) *Sim {
	if nFlights <= 0 {
		nFlights = 100
	}
	if nAirports <= 0 {
		nAirports = 40
	}
	s := &Sim{nFlights: nFlights, nAirports: nAirports}
	s.Reset()
	return s
}

// Reset regenerates the whole world: fresh random flights and airports.
func (s *Sim) Reset() flight.Snapshot {
	s.mu.Lock()
	s.flights = synth.Flights(s.nFlights)
	s.airports = synth.Airports(s.nAirports)
	s.fetchedAt = time.Now().UTC()
	s.mu.Unlock()
	return s.Snapshot()
}

// Perturb nudges the existing flights in place. Identity and order are
// preserved; the list is neither reshuffled nor resized. Airports are
// static reference data and stay untouched.
func (s *Sim) Perturb() flight.Snapshot {
	s.mu.Lock()
	synth.PerturbFlights(s.flights)
	s.fetchedAt = time.Now().UTC()
	s.mu.Unlock()
	return s.Snapshot()
}

// Snapshot returns the current synthetic world. The flight list is
// copied so a published snapshot stays stable while later perturbation
// ticks move the private list. Airports are shared: Reset replaces
// that slice wholesale and nothing mutates it in place.
func (s *Sim) Snapshot() flight.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	flights := make([]flight.Flight, len(s.flights))
	copy(flights, s.flights)
	return flight.Snapshot{
		Flights:   flights,
		Airports:  s.airports,
		Source:    flight.SourceSynthetic,
		FetchedAt: s.fetchedAt,
	}
}
