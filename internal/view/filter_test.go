package view

import (
	"reflect"
	"strings"
	"testing"

	"github.com/skymap-live/skymap/pkg/flight"
)

func sampleFlights() []flight.Flight {
	return []flight.Flight{
		{ICAO: "a1b2c3", Callsign: "DL123"},
		{ICAO: "4ca1fa", Callsign: "AA456"},
		{ICAO: "abc999", Callsign: ""},
		{ICAO: "", Callsign: "DLH77"},
	}
}

func sampleAirports() []flight.Airport {
	return []flight.Airport{
		{Name: "Hartsfield-Jackson Atlanta Intl", IATA: "ATL", ICAO: "KATL"},
		{Name: "Dublin", IATA: "DUB", ICAO: "EIDW"},
		{Name: "Raleigh-Durham Intl", IATA: "RDU", ICAO: "KRDU"},
	}
}

// TestFlightsEmptyQuery tests the empty-query law: the input list comes
// back unchanged, contents and order intact.
func TestFlightsEmptyQuery(t *testing.T) {
	list := sampleFlights()

	for _, q := range []string{"", "   ", "\t"} {
		got := Flights(list, q)
		if !reflect.DeepEqual(got, list) {
			t.Errorf("Query %q: expected full list unchanged, got %v", q, got)
		}
	}
}

// TestFlightsSubstringMatch tests OR-matching over identity and
// callsign.
func TestFlightsSubstringMatch(t *testing.T) {
	list := sampleFlights()

	t.Run("Callsign prefix", func(t *testing.T) {
		got := Flights(list, "DL")
		if len(got) != 2 {
			t.Fatalf("Expected 2 matches, got %d", len(got))
		}
		if got[0].Callsign != "DL123" || got[1].Callsign != "DLH77" {
			t.Errorf("Expected DL123 then DLH77, got %v", got)
		}
	})

	t.Run("Exact scenario: DL against DL123 and AA456", func(t *testing.T) {
		two := []flight.Flight{
			{ICAO: "aaa111", Callsign: "DL123"},
			{ICAO: "bbb222", Callsign: "AA456"},
		}
		got := Flights(two, "DL")
		if len(got) != 1 || got[0].Callsign != "DL123" {
			t.Errorf("Expected exactly the DL123 record, got %v", got)
		}
	})

	t.Run("Identity substring", func(t *testing.T) {
		got := Flights(list, "c99")
		if len(got) != 1 || got[0].ICAO != "abc999" {
			t.Errorf("Expected abc999, got %v", got)
		}
	})

	t.Run("No matches", func(t *testing.T) {
		if got := Flights(list, "zzz"); len(got) != 0 {
			t.Errorf("Expected empty subset, got %v", got)
		}
	})
}

// TestFlightsCaseInsensitive tests that query case never matters.
func TestFlightsCaseInsensitive(t *testing.T) {
	list := sampleFlights()

	for _, q := range []string{"dl", "DL", "Dl", "dL"} {
		got := Flights(list, q)
		if len(got) != 2 {
			t.Errorf("Query %q: expected 2 matches, got %d", q, len(got))
		}
	}

	base := Flights(list, "a1")
	upper := Flights(list, strings.ToUpper("a1"))
	if !reflect.DeepEqual(base, upper) {
		t.Error("Expected identical subsets for lower and upper case queries")
	}
}

// TestFlightsIdempotent tests filter(filter(L, q), q) == filter(L, q).
func TestFlightsIdempotent(t *testing.T) {
	list := sampleFlights()

	for _, q := range []string{"", "DL", "a1", "zzz"} {
		once := Flights(list, q)
		twice := Flights(once, q)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Query %q: expected idempotent filtering", q)
		}
	}
}

// TestAirportsMatch tests OR-matching over name, IATA and ICAO.
func TestAirportsMatch(t *testing.T) {
	list := sampleAirports()

	t.Run("Empty query returns all", func(t *testing.T) {
		got := Airports(list, " ")
		if !reflect.DeepEqual(got, list) {
			t.Error("Expected full list unchanged")
		}
	})

	t.Run("By name", func(t *testing.T) {
		got := Airports(list, "atlanta")
		if len(got) != 1 || got[0].IATA != "ATL" {
			t.Errorf("Expected ATL, got %v", got)
		}
	})

	t.Run("By IATA", func(t *testing.T) {
		got := Airports(list, "rdu")
		if len(got) != 1 || got[0].IATA != "RDU" {
			t.Errorf("Expected RDU, got %v", got)
		}
	})

	t.Run("By ICAO", func(t *testing.T) {
		got := Airports(list, "eidw")
		if len(got) != 1 || got[0].IATA != "DUB" {
			t.Errorf("Expected DUB, got %v", got)
		}
	})

	t.Run("Order preserved across fields", func(t *testing.T) {
		// "du" hits Dublin (name and IATA) and Raleigh-Durham (name).
		got := Airports(list, "du")
		if len(got) != 2 || got[0].IATA != "DUB" || got[1].IATA != "RDU" {
			t.Errorf("Expected DUB then RDU, got %v", got)
		}
	})
}
