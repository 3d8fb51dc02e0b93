package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skymap-live/skymap/internal/view"
	"github.com/skymap-live/skymap/pkg/flight"
	"github.com/skymap-live/skymap/pkg/geo"
)

func testModel() model {
	return model{
		controller:   view.NewController(),
		viewport:     geo.WorldView(mapWidth, mapHeight),
		refreshEvery: time.Minute,
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// TestSearchInput tests that typing in search mode accepts multibyte
// characters and that backspace removes whole characters, with the
// visible subset refiltered on every edit.
func TestSearchInput(t *testing.T) {
	m := testModel()
	m.searchMode = true
	m.controller.SetSnapshot(flight.Snapshot{Flights: []flight.Flight{
		{ICAO: "abc123", Callsign: "AFR88"},
		{ICAO: "def456", Callsign: "ÜBER1"},
	}})

	step := func(msg tea.Msg) {
		updated, _ := m.Update(msg)
		m = updated.(model)
	}

	step(keyRunes("ü"))
	step(keyRunes("b"))
	if m.searchInput != "üb" {
		t.Fatalf("Expected query üb, got %q", m.searchInput)
	}
	if got := m.controller.VisibleFlights(); len(got) != 1 || got[0].Callsign != "ÜBER1" {
		t.Errorf("Expected only ÜBER1 to match, got %v", got)
	}

	step(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.searchInput != "ü" {
		t.Errorf("Expected backspace to remove one character, got %q", m.searchInput)
	}

	step(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.searchInput != "" {
		t.Errorf("Expected empty query, got %q", m.searchInput)
	}
	if got := m.controller.VisibleFlights(); len(got) != 2 {
		t.Errorf("Expected full list with empty query, got %d", len(got))
	}

	// Arrow keys and other control keys must not leak into the query.
	step(tea.KeyMsg{Type: tea.KeyLeft})
	if m.searchInput != "" {
		t.Errorf("Expected control key ignored, got %q", m.searchInput)
	}
}

// TestSearchEscapeClears tests that ESC leaves search mode and resets
// the filter.
func TestSearchEscapeClears(t *testing.T) {
	m := testModel()
	m.searchMode = true
	m.controller.SetSnapshot(flight.Snapshot{Flights: []flight.Flight{
		{ICAO: "abc123", Callsign: "AFR88"},
		{ICAO: "def456", Callsign: "DLH77"},
	}})

	updated, _ := m.Update(keyRunes("dlh"))
	m = updated.(model)
	if len(m.controller.VisibleFlights()) != 1 {
		t.Fatal("Expected a narrowed subset")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = updated.(model)
	if m.searchMode || m.searchInput != "" {
		t.Error("Expected search mode exited and input cleared")
	}
	if len(m.controller.VisibleFlights()) != 2 {
		t.Error("Expected full list restored")
	}
}
