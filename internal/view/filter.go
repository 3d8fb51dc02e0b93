package view

import (
	"strings"

	"github.com/skymap-live/skymap/pkg/flight"
)

// Flights derives the visible flight subset for a free-text query.
// Matching is a case-insensitive substring test against the ICAO
// identity and the callsign; a record matches if either field contains
// the query. A query that trims to empty returns the input unchanged,
// contents and order intact. Output preserves input order; there is no
// ranking.
func Flights(list []flight.Flight, query string) []flight.Flight {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}

	out := make([]flight.Flight, 0, len(list))
	for _, f := range list {
		if strings.Contains(strings.ToLower(f.ICAO), q) ||
			strings.Contains(strings.ToLower(f.Callsign), q) {
			out = append(out, f)
		}
	}
	return out
}

// Airports derives the visible airport subset for a free-text query.
// Matches against name, IATA code and ICAO code, same semantics as
// Flights.
func Airports(list []flight.Airport, query string) []flight.Airport {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}

	out := make([]flight.Airport, 0, len(list))
	for _, a := range list {
		if strings.Contains(strings.ToLower(a.Name), q) ||
			strings.Contains(strings.ToLower(a.IATA), q) ||
			strings.Contains(strings.ToLower(a.ICAO), q) {
			out = append(out, a)
		}
	}
	return out
}
