// Package view owns the mutable view state: current snapshot, query,
// mode, the derived visible subsets and the selection. All mutation goes
// through Controller methods, and every mutating method re-derives the
// subsets before returning, so readers never observe a stale subset.
package view

import (
	"sync"

	"github.com/skymap-live/skymap/pkg/flight"
)

// Mode selects which record type the search and list operate on.
type Mode int

const (
	// ModeFlights searches and lists flight records.
	ModeFlights Mode = iota

	// ModeAirports searches and lists airport records.
	ModeAirports
)

// String returns the mode name for status lines.
func (m Mode) String() string {
	if m == ModeAirports {
		return "airports"
	}
	return "flights"
}

// Controller is the single owner of view state.
//
// Selection semantics: selecting copies the record value at selection
// time. A later snapshot that updates or drops the same identity does
// not touch the selection, so the detail display can go stale between
// refresh cycles. A new search does not clear it either. Both are
// deliberate; only an explicit select or clear changes it.
type Controller struct {
	mu sync.RWMutex

	snap  flight.Snapshot
	query string
	mode  Mode

	visFlights  []flight.Flight
	visAirports []flight.Airport

	selFlight  *flight.Flight
	selAirport *flight.Airport

	loading bool
}

// NewController creates a controller in flight mode with an empty
// snapshot.
func NewController() *Controller {
	c := &Controller{}
	c.refilter()
	return c
}

// SetSnapshot replaces the current snapshot wholesale and re-derives
// the visible subsets. The selection is left alone even when its
// identity no longer exists in the new snapshot.
func (c *Controller) SetSnapshot(s flight.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = s
	c.refilter()
}

// Snapshot returns the current snapshot.
func (c *Controller) Snapshot() flight.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// SetQuery replaces the query string and re-derives the subsets.
// Called on every keystroke; filtering is synchronous, never debounced.
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
	c.refilter()
}

// Query returns the current query string.
func (c *Controller) Query() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

// SetMode switches between flight and airport search and re-derives
// the subsets.
func (c *Controller) SetMode(m Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
	c.refilter()
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// VisibleFlights returns the flight subset matching the current query.
// Empty outside flight mode.
func (c *Controller) VisibleFlights() []flight.Flight {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.visFlights
}

// VisibleAirports returns the airport subset matching the current
// query. Empty outside airport mode.
func (c *Controller) VisibleAirports() []flight.Airport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.visAirports
}

// SelectFlight makes f the current selection, replacing any previous
// selection of either type.
func (c *Controller) SelectFlight(f flight.Flight) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selFlight = &f
	c.selAirport = nil
}

// SelectAirport makes a the current selection, replacing any previous
// selection of either type.
func (c *Controller) SelectAirport(a flight.Airport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selAirport = &a
	c.selFlight = nil
}

// ClearSelection removes the selection.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selFlight = nil
	c.selAirport = nil
}

// SelectedFlight returns the selected flight record as captured at
// selection time.
func (c *Controller) SelectedFlight() (flight.Flight, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.selFlight == nil {
		return flight.Flight{}, false
	}
	return *c.selFlight, true
}

// SelectedAirport returns the selected airport record as captured at
// selection time.
func (c *Controller) SelectedAirport() (flight.Airport, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.selAirport == nil {
		return flight.Airport{}, false
	}
	return *c.selAirport, true
}

// SetLoading flags an in-progress refresh for the status line.
func (c *Controller) SetLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = v
}

// Loading reports whether a refresh is in progress.
func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// refilter re-derives both visible subsets from {snapshot, query, mode}.
// The active mode gets the filtered list; the other subset is cleared.
// Callers must hold the write lock.
func (c *Controller) refilter() {
	switch c.mode {
	case ModeAirports:
		c.visAirports = Airports(c.snap.Airports, c.query)
		c.visFlights = nil
	default:
		c.visFlights = Flights(c.snap.Flights, c.query)
		c.visAirports = nil
	}
}
