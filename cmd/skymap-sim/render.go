package main

import (
	"fmt"
	"strings"

	"github.com/skymap-live/skymap/internal/view"
	"github.com/skymap-live/skymap/pkg/flight"
	"github.com/skymap-live/skymap/pkg/geo"
)

// renderMap draws the active subset onto a character grid using tview
// color tags. Flights render as heading glyphs, airports as diamonds.
func renderMap(c *view.Controller, vp geo.Viewport, selectedIndex int) string {
	grid := make([][]rune, vp.Height)
	for i := range grid {
		grid[i] = make([]rune, vp.Width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	// Equator reference line.
	if _, eqY, ok := vp.Project(geo.Point{Latitude: 0, Longitude: vp.Center.Longitude}); ok {
		for x := 0; x < vp.Width; x++ {
			grid[eqY][x] = '·'
		}
	}

	type marker struct{ x, y int }
	var selected *marker

	if c.Mode() == view.ModeAirports {
		for i, a := range c.VisibleAirports() {
			x, y, ok := vp.Project(geo.Point{Latitude: a.Latitude, Longitude: a.Longitude})
			if !ok {
				continue
			}
			grid[y][x] = '◇'
			if i == selectedIndex {
				grid[y][x] = '◆'
				selected = &marker{x, y}
			}
		}
	} else {
		for i, f := range c.VisibleFlights() {
			if !f.HasPosition {
				continue
			}
			x, y, ok := vp.Project(geo.Point{Latitude: f.Latitude, Longitude: f.Longitude})
			if !ok {
				continue
			}
			grid[y][x] = view.HeadingGlyph(f.Track)
			if i == selectedIndex {
				selected = &marker{x, y}
			}
		}
	}

	var sb strings.Builder
	for y := 0; y < vp.Height; y++ {
		for x := 0; x < vp.Width; x++ {
			ch := grid[y][x]
			switch {
			case selected != nil && selected.x == x && selected.y == y:
				sb.WriteString("[yellow::b]")
				sb.WriteRune(ch)
				sb.WriteString("[-::-]")
			case ch == '·':
				sb.WriteString("[gray]·[-]")
			case ch == ' ':
				sb.WriteRune(' ')
			default:
				sb.WriteString("[aqua]")
				sb.WriteRune(ch)
				sb.WriteString("[-]")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// listWindow keeps the highlighted row inside an n-row window.
func listWindow(selected, total, rows int) (start, end int) {
	start = 0
	if selected > rows/2 && total > rows {
		start = selected - rows/2
	}
	end = start + rows
	if end > total {
		end = total
	}
	return start, end
}

const listRows = 12

func renderFlightList(flights []flight.Flight, selectedIndex int) string {
	if len(flights) == 0 {
		return "[gray]No matching flights[-]"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[gray]%d flights[-]\n", len(flights)))

	start, end := listWindow(selectedIndex, len(flights), listRows)
	for i := start; i < end; i++ {
		f := flights[i]

		callsign := f.Callsign
		if callsign == "" {
			callsign = "--------"
		}

		line := fmt.Sprintf("%-8s %-6s %7.2f %8.2f  %6.0f ft  %4.0f kt  %3.0f° %c",
			callsign, f.ICAO, f.Latitude, f.Longitude,
			f.Altitude, f.GroundSpeed, f.Track, view.HeadingGlyph(f.Track))

		if i == selectedIndex {
			sb.WriteString("[black:yellow]→ " + line + "[-:-]\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}
	return sb.String()
}

func renderAirportList(airports []flight.Airport, selectedIndex int) string {
	if len(airports) == 0 {
		return "[gray]No matching airports[-]"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[gray]%d airports[-]\n", len(airports)))

	start, end := listWindow(selectedIndex, len(airports), listRows)
	for i := start; i < end; i++ {
		a := airports[i]

		line := fmt.Sprintf("%-3s %-4s %-30s %7.2f %8.2f",
			a.IATA, a.ICAO, truncate(a.Name, 30), a.Latitude, a.Longitude)

		if i == selectedIndex {
			sb.WriteString("[black:yellow]→ " + line + "[-:-]\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}
	return sb.String()
}

// renderDetail shows the captured selection. The values were copied at
// selection time; the perturbation tick moves the live list, not this
// panel, until the record is selected again.
func renderDetail(c *view.Controller) string {
	if f, ok := c.SelectedFlight(); ok {
		callsign := f.Callsign
		if callsign == "" {
			callsign = "(no callsign)"
		}
		text := fmt.Sprintf("[yellow]FLIGHT:[-] [white]%s[-] [gray](%s)[-]\n", callsign, f.ICAO)
		text += fmt.Sprintf("[gray]Country:[-] [white]%s[-]\n", f.OriginCountry)
		text += fmt.Sprintf("[gray]Pos:[-]  [white]%.4f°, %.4f°[-]\n", f.Latitude, f.Longitude)
		text += fmt.Sprintf("[gray]Alt:[-]  [white]%.0f ft[-]  [gray]Spd:[-] [white]%.0f kt[-]\n", f.Altitude, f.GroundSpeed)
		text += fmt.Sprintf("[gray]Trk:[-]  [white]%.0f° %c[-]\n", f.Track, view.HeadingGlyph(f.Track))
		if f.Squawk != "" {
			text += fmt.Sprintf("[gray]Squawk:[-] [white]%s[-]\n", f.Squawk)
		}
		return text
	}

	if a, ok := c.SelectedAirport(); ok {
		text := fmt.Sprintf("[yellow]AIRPORT:[-] [white]%s[-]\n", a.Name)
		text += fmt.Sprintf("[gray]IATA:[-] [white]%s[-]  [gray]ICAO:[-] [white]%s[-]\n", a.IATA, a.ICAO)
		text += fmt.Sprintf("[gray]Pos:[-]  [white]%.4f°, %.4f°[-]\n", a.Latitude, a.Longitude)
		text += fmt.Sprintf("[gray]City:[-] [white]%s, %s[-]\n", a.City, a.Country)
		return text
	}

	return "[gray]No selection[-]"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
