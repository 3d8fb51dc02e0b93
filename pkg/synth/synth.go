// Package synth fabricates plausible random flight and airport records.
// It backs the synthetic fallback of the data supplier and the pure
// simulation mode. Every call produces fresh random values; only the
// structure is deterministic.
package synth

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/skymap-live/skymap/pkg/flight"
)

// Value ranges used by the generator and the perturbation step.
const (
	// MinAltitudeFt and MaxAltitudeFt bound synthetic cruise altitudes
	MinAltitudeFt = 5000.0
	MaxAltitudeFt = 40000.0

	// MinSpeedKts and MaxSpeedKts bound synthetic ground speeds
	MinSpeedKts = 300.0
	MaxSpeedKts = 800.0

	// Perturbation deltas applied by PerturbFlights
	maxPositionNudge = 0.05
	maxAltitudeNudge = 500.0
	maxSpeedNudge    = 25.0
	maxTrackNudge    = 5.0

	// groundProbability is the chance a synthetic aircraft sits on the
	// surface
	groundProbability = 0.05
)

const hexAlphabet = "0123456789abcdef"

var airlinePrefixes = []string{
	"AAL", "BAW", "DAL", "DLH", "AFR", "KLM", "UAL", "SWA", "RYR", "EZY",
	"QFA", "ANA", "SIA", "UAE", "ACA",
}

var countries = []string{
	"United States", "United Kingdom", "Germany", "France", "Netherlands",
	"Japan", "Singapore", "Australia", "Canada", "Ireland", "Spain",
	"Brazil", "India", "Norway", "South Africa",
}

var cityNames = []string{
	"Ashford", "Bellmore", "Carston", "Duxbury", "Eastvale", "Farrow",
	"Glenhaven", "Harwick", "Ironridge", "Juniper", "Kestrel", "Lakemont",
	"Marlow", "Northgate", "Oakdale", "Pinefield", "Quarry", "Redvale",
	"Stonebrook", "Tallridge", "Umber", "Vasten", "Westlock", "Yarrow",
}

var airportSuffixes = []string{"Intl", "Regional", "Municipal", "Field"}

// Flights fabricates n independent random flight records. Identities are
// six lowercase hex characters, positions span the full degree domain
// (latitude rand*180-90, longitude rand*360-180), and every record
// carries a position.
func Flights(n int) []flight.Flight {
	now := time.Now().UTC()
	out := make([]flight.Flight, 0, n)

	for i := 0; i < n; i++ {
		prefix := airlinePrefixes[rand.IntN(len(airlinePrefixes))]
		out = append(out, flight.Flight{
			ICAO:          hexID(6),
			Callsign:      fmt.Sprintf("%s%d", prefix, 100+rand.IntN(9000)),
			OriginCountry: countries[rand.IntN(len(countries))],
			Latitude:      rand.Float64()*180 - 90,
			Longitude:     rand.Float64()*360 - 180,
			HasPosition:   true,
			Altitude:      MinAltitudeFt + rand.Float64()*(MaxAltitudeFt-MinAltitudeFt),
			GroundSpeed:   MinSpeedKts + rand.Float64()*(MaxSpeedKts-MinSpeedKts),
			Track:         rand.Float64() * 360,
			VerticalRate:  rand.Float64()*4000 - 2000,
			OnGround:      rand.Float64() < groundProbability,
			Squawk:        fmt.Sprintf("%04o", rand.IntN(0o10000)),
			LastSeen:      now,
		})
	}

	return out
}

// Airports fabricates n airport reference records with unique IATA codes.
func Airports(n int) []flight.Airport {
	out := make([]flight.Airport, 0, n)
	used := make(map[string]bool, n)

	for i := 0; i < n; i++ {
		iata := letters(3)
		for used[iata] {
			iata = letters(3)
		}
		used[iata] = true

		city := cityNames[rand.IntN(len(cityNames))]
		suffix := airportSuffixes[rand.IntN(len(airportSuffixes))]

		out = append(out, flight.Airport{
			Name:      fmt.Sprintf("%s %s", city, suffix),
			IATA:      iata,
			ICAO:      letters(4),
			Latitude:  rand.Float64()*180 - 90,
			Longitude: rand.Float64()*360 - 180,
			Country:   countries[rand.IntN(len(countries))],
			City:      city,
		})
	}

	return out
}

// PerturbFlights nudges each record in place by small random deltas to
// simulate continuous motion between full refreshes: position within
// ±0.05°, altitude within ±500 ft clamped to [5000, 40000], speed within
// ±25 kt clamped to [300, 800], track within ±5° wrapped modulo 360.
// Identity, order and length are preserved.
func PerturbFlights(flights []flight.Flight) {
	for i := range flights {
		f := &flights[i]

		f.Latitude += rand.Float64()*2*maxPositionNudge - maxPositionNudge
		f.Longitude += rand.Float64()*2*maxPositionNudge - maxPositionNudge

		f.Altitude += rand.Float64()*2*maxAltitudeNudge - maxAltitudeNudge
		f.Altitude = clamp(f.Altitude, MinAltitudeFt, MaxAltitudeFt)

		f.GroundSpeed += rand.Float64()*2*maxSpeedNudge - maxSpeedNudge
		f.GroundSpeed = clamp(f.GroundSpeed, MinSpeedKts, MaxSpeedKts)

		f.Track += rand.Float64()*2*maxTrackNudge - maxTrackNudge
		for f.Track < 0 {
			f.Track += 360
		}
		for f.Track >= 360 {
			f.Track -= 360
		}
	}
}

func hexID(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = hexAlphabet[rand.IntN(len(hexAlphabet))]
	}
	return string(b)
}

func letters(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('A' + rand.IntN(26))
	}
	return string(b)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
