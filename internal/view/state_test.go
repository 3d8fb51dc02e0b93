package view

import (
	"testing"

	"github.com/skymap-live/skymap/pkg/flight"
)

func snapshotWith(flights []flight.Flight, airports []flight.Airport) flight.Snapshot {
	return flight.Snapshot{
		Flights:  flights,
		Airports: airports,
		Source:   flight.SourceSynthetic,
	}
}

// TestControllerRefilterOnSnapshot tests that replacing the snapshot
// re-derives the visible subset under the current query.
func TestControllerRefilterOnSnapshot(t *testing.T) {
	c := NewController()
	c.SetQuery("DL")

	c.SetSnapshot(snapshotWith(sampleFlights(), nil))
	if got := c.VisibleFlights(); len(got) != 2 {
		t.Fatalf("Expected 2 visible flights, got %d", len(got))
	}

	// A new snapshot without matches empties the subset immediately.
	c.SetSnapshot(snapshotWith([]flight.Flight{{ICAO: "x", Callsign: "ZZ1"}}, nil))
	if got := c.VisibleFlights(); len(got) != 0 {
		t.Errorf("Expected empty subset after replacement, got %d", len(got))
	}
}

// TestControllerRefilterOnQuery tests keystroke-driven refiltering.
func TestControllerRefilterOnQuery(t *testing.T) {
	c := NewController()
	c.SetSnapshot(snapshotWith(sampleFlights(), nil))

	if got := c.VisibleFlights(); len(got) != 4 {
		t.Fatalf("Expected full list with empty query, got %d", len(got))
	}

	c.SetQuery("DL")
	if got := c.VisibleFlights(); len(got) != 2 {
		t.Errorf("Expected 2 matches, got %d", len(got))
	}

	c.SetQuery("")
	if got := c.VisibleFlights(); len(got) != 4 {
		t.Errorf("Expected full list restored, got %d", len(got))
	}
}

// TestControllerModeClearsOtherSubset tests that the inactive record
// type's subset is empty in dual mode.
func TestControllerModeClearsOtherSubset(t *testing.T) {
	c := NewController()
	c.SetSnapshot(snapshotWith(sampleFlights(), sampleAirports()))

	if len(c.VisibleFlights()) == 0 {
		t.Fatal("Expected flights visible in flight mode")
	}
	if len(c.VisibleAirports()) != 0 {
		t.Error("Expected airport subset cleared in flight mode")
	}

	c.SetMode(ModeAirports)
	if len(c.VisibleAirports()) != 3 {
		t.Errorf("Expected 3 airports visible, got %d", len(c.VisibleAirports()))
	}
	if len(c.VisibleFlights()) != 0 {
		t.Error("Expected flight subset cleared in airport mode")
	}
}

// TestSelectionStaysStaleAcrossRefresh tests that a background refresh
// that drops the selected identity leaves the stale selection in place.
func TestSelectionStaysStaleAcrossRefresh(t *testing.T) {
	c := NewController()
	c.SetSnapshot(snapshotWith(sampleFlights(), nil))

	target := sampleFlights()[0] // a1b2c3 / DL123
	c.SelectFlight(target)

	// Replace the snapshot with one that no longer contains a1b2c3.
	c.SetSnapshot(snapshotWith([]flight.Flight{{ICAO: "ffffff", Callsign: "XX9"}}, nil))

	sel, ok := c.SelectedFlight()
	if !ok {
		t.Fatal("Expected selection to survive the refresh")
	}
	if sel.ICAO != "a1b2c3" || sel.Callsign != "DL123" {
		t.Errorf("Expected the stale selected record, got %+v", sel)
	}
}

// TestSelectionSurvivesSearch tests that narrowing the search away from
// the selected record does not clear the selection.
func TestSelectionSurvivesSearch(t *testing.T) {
	c := NewController()
	c.SetSnapshot(snapshotWith(sampleFlights(), nil))

	c.SelectFlight(sampleFlights()[1]) // AA456
	c.SetQuery("DL")

	if _, ok := c.SelectedFlight(); !ok {
		t.Error("Expected selection to survive a new search")
	}
}

// TestSelectionSingle tests at-most-one selection across both types.
func TestSelectionSingle(t *testing.T) {
	c := NewController()

	c.SelectFlight(flight.Flight{ICAO: "aaa"})
	c.SelectAirport(flight.Airport{IATA: "ATL"})

	if _, ok := c.SelectedFlight(); ok {
		t.Error("Expected flight selection replaced by airport selection")
	}
	if a, ok := c.SelectedAirport(); !ok || a.IATA != "ATL" {
		t.Error("Expected ATL selected")
	}

	c.ClearSelection()
	if _, ok := c.SelectedAirport(); ok {
		t.Error("Expected selection cleared")
	}
}

// TestSelectionIsValueCopy tests that later mutation of the source
// record does not leak into the captured selection.
func TestSelectionIsValueCopy(t *testing.T) {
	c := NewController()

	f := flight.Flight{ICAO: "aaa111", Altitude: 30000}
	c.SelectFlight(f)
	f.Altitude = 10000

	sel, _ := c.SelectedFlight()
	if sel.Altitude != 30000 {
		t.Errorf("Expected altitude captured at selection time, got %f", sel.Altitude)
	}
}

// TestHeadingGlyph tests the heading-to-marker transform.
func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		track float64
		want  rune
	}{
		{0, '↑'},
		{10, '↑'},
		{45, '↗'},
		{90, '→'},
		{135, '↘'},
		{180, '↓'},
		{225, '↙'},
		{270, '←'},
		{315, '↖'},
		{350, '↑'},
		{359.9, '↑'},
		{360, '↑'},
		{-90, '←'},
		{450, '→'},
	}

	for _, tt := range tests {
		if got := HeadingGlyph(tt.track); got != tt.want {
			t.Errorf("HeadingGlyph(%f): expected %c, got %c", tt.track, tt.want, got)
		}
	}
}
