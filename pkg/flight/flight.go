package flight

import "time"

// Flight is a point-in-time observation of one aircraft.
// All position data is in WGS84 coordinate system.
type Flight struct {
	// ICAO is the 24-bit ICAO transponder address as a hex string
	// (e.g., "a12345"). Unique within one snapshot; may be blank when
	// the upstream feed omits it.
	ICAO string

	// Callsign is the flight number or registration, trimmed of padding.
	// May be empty.
	Callsign string

	// OriginCountry is the country of registration as reported upstream.
	OriginCountry string

	// Latitude in decimal degrees (-90 to +90). Only meaningful when
	// HasPosition is true.
	Latitude float64

	// Longitude in decimal degrees (-180 to +180). Only meaningful when
	// HasPosition is true.
	Longitude float64

	// HasPosition reports whether the feed supplied a position for this
	// record. Records without a position never reach the map but remain
	// searchable and selectable.
	HasPosition bool

	// Altitude above mean sea level. The unit follows the source: the
	// live feed reports meters, the synthetic generator feet. Barometric
	// altitude is preferred, geometric used as a fallback.
	Altitude float64

	// GroundSpeed over ground. Unit follows the source: m/s from the
	// live feed, knots from the synthetic generator.
	GroundSpeed float64

	// Track is the ground track (heading) in degrees [0, 360).
	// 0 = North, 90 = East, 180 = South, 270 = West.
	Track float64

	// VerticalRate in feet per minute (positive = climbing).
	VerticalRate float64

	// OnGround reports whether the aircraft is on the surface.
	OnGround bool

	// Squawk is the transponder code, if reported.
	Squawk string

	// LastSeen is the timestamp of the last position update.
	LastSeen time.Time
}

// Airport is a static reference entity used by the airport search mode.
// Immutable once generated or loaded for the session.
type Airport struct {
	// Name is the full airport name (e.g., "Hartsfield-Jackson Atlanta Intl")
	Name string

	// IATA is the three-letter IATA code, unique within one list
	IATA string

	// ICAO is the four-letter ICAO identifier
	ICAO string

	// Latitude in decimal degrees
	Latitude float64

	// Longitude in decimal degrees
	Longitude float64

	// Country is the ISO country name
	Country string

	// City is the served city or municipality
	City string
}

// Provenance says where a snapshot's data came from.
type Provenance int

const (
	// SourceLive means the snapshot was fetched from the live feed.
	SourceLive Provenance = iota

	// SourceCached means the live feed failed and the snapshot carries
	// the last successful live payload, still within its TTL.
	SourceCached

	// SourceSynthetic means the snapshot was fabricated locally.
	SourceSynthetic
)

// String returns the provenance name used in logs and status lines.
func (p Provenance) String() string {
	switch p {
	case SourceLive:
		return "live"
	case SourceCached:
		return "cached"
	case SourceSynthetic:
		return "synthetic"
	default:
		return "unknown"
	}
}

// Snapshot is the full in-memory record list at a point in time.
// It is replaced wholesale on every refresh and read-only to everything
// but its supplier.
type Snapshot struct {
	// Flights is the full flight list. Never nil after a refresh.
	Flights []Flight

	// Airports is the airport reference list. Empty outside dual mode.
	Airports []Airport

	// Source records the provenance of Flights.
	Source Provenance

	// Err is a human-readable description of why live data was
	// unavailable. Empty when Source is SourceLive.
	Err string

	// FetchedAt is when this snapshot was produced.
	FetchedAt time.Time
}
