package view

import "github.com/skymap-live/skymap/pkg/geo"

// glyphs holds the eight compass-sector markers, north first, clockwise.
var glyphs = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// HeadingGlyph returns the map marker for a ground track in degrees.
// The circle is split into eight 45° sectors centered on the compass
// points. An absent heading is treated as 0 and renders as north.
func HeadingGlyph(track float64) rune {
	deg := geo.WrapDegrees(track)
	sector := int((deg+22.5)/45) % 8
	return glyphs[sector]
}
