package geo

import "math"

// Constants for coordinate calculations
const (
	// DegreesToRadians converts degrees to radians
	DegreesToRadians = math.Pi / 180.0

	// RadiansToDegrees converts radians to degrees
	RadiansToDegrees = 180.0 / math.Pi

	// EarthRadiusKm is the Earth's radius in kilometers (WGS84 mean radius)
	EarthRadiusKm = 6371.0

	// KmToNauticalMiles converts kilometers to nautical miles
	KmToNauticalMiles = 0.539957
)

// Point represents a position on Earth's surface.
// Uses the WGS84 coordinate system (same as GPS).
type Point struct {
	// Latitude in decimal degrees (-90 to +90)
	// Positive = North, Negative = South
	Latitude float64

	// Longitude in decimal degrees (-180 to +180)
	// Positive = East, Negative = West
	Longitude float64
}

// DistanceNauticalMiles returns the great-circle distance between two
// points using the haversine formula.
func DistanceNauticalMiles(a, b Point) float64 {
	lat1 := a.Latitude * DegreesToRadians
	lat2 := b.Latitude * DegreesToRadians
	dLat := (b.Latitude - a.Latitude) * DegreesToRadians
	dLon := (b.Longitude - a.Longitude) * DegreesToRadians

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c * KmToNauticalMiles
}

// WrapDegrees normalizes an angle to [0, 360).
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Viewport maps geographic positions onto a character grid.
// The projection is equirectangular: longitude maps linearly to columns
// and latitude maps linearly to rows (north at the top). That is plenty
// for a terminal map and keeps placement reversible.
type Viewport struct {
	// Width and Height are the grid dimensions in cells
	Width  int
	Height int

	// Center is the geographic point shown at the grid center
	Center Point

	// DegreesWide is the longitude span covered by the full grid width.
	// The latitude span is derived from the cell aspect ratio: terminal
	// cells are roughly twice as tall as wide, so one row covers twice
	// the degrees of one column.
	DegreesWide float64
}

// WorldView returns a viewport covering the whole globe.
func WorldView(width, height int) Viewport {
	return Viewport{
		Width:       width,
		Height:      height,
		Center:      Point{Latitude: 0, Longitude: 0},
		DegreesWide: 360,
	}
}

// Project converts a geographic point to grid coordinates.
// ok is false when the point falls outside the grid.
func (v Viewport) Project(p Point) (x, y int, ok bool) {
	if v.Width <= 0 || v.Height <= 0 || v.DegreesWide <= 0 {
		return 0, 0, false
	}

	degPerCol := v.DegreesWide / float64(v.Width)
	degPerRow := degPerCol * 2 // cell aspect compensation

	dLon := p.Longitude - v.Center.Longitude
	// Take the short way around the antimeridian
	if dLon > 180 {
		dLon -= 360
	} else if dLon < -180 {
		dLon += 360
	}
	dLat := p.Latitude - v.Center.Latitude

	x = v.Width/2 + int(math.Round(dLon/degPerCol))
	y = v.Height/2 - int(math.Round(dLat/degPerRow))

	if x < 0 || x >= v.Width || y < 0 || y >= v.Height {
		return x, y, false
	}
	return x, y, true
}

// Zoom returns a copy of the viewport scaled by factor around its center.
// factor > 1 zooms in. The span is clamped to [1, 360] degrees.
func (v Viewport) Zoom(factor float64) Viewport {
	if factor <= 0 {
		return v
	}
	out := v
	out.DegreesWide = v.DegreesWide / factor
	if out.DegreesWide > 360 {
		out.DegreesWide = 360
	}
	if out.DegreesWide < 1 {
		out.DegreesWide = 1
	}
	return out
}
