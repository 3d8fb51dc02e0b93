package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skymap-live/skymap/internal/logging"
	"github.com/skymap-live/skymap/internal/supplier"
	"github.com/skymap-live/skymap/internal/view"
	"github.com/skymap-live/skymap/pkg/config"
	"github.com/skymap-live/skymap/pkg/flight"
	"github.com/skymap-live/skymap/pkg/geo"
	"github.com/skymap-live/skymap/pkg/opensky"
)

// Map viewport dimensions
const (
	mapWidth  = 80
	mapHeight = 24
	listRows  = 8
)

type model struct {
	supplier   *supplier.Supplier
	controller *view.Controller
	viewport   geo.Viewport

	refreshEvery time.Duration

	selected    int
	searchMode  bool
	searchInput string
}

type tickMsg time.Time

type snapshotMsg flight.Snapshot

func tick(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd runs the supplier refresh off the update loop. Refresh
// never fails; degradation travels on the snapshot.
func (m model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(m.supplier.Refresh(context.Background()))
	}
}

func (m model) Init() tea.Cmd {
	m.controller.SetLoading(true)
	return tea.Batch(m.refreshCmd(), tick(m.refreshEvery))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Search mode: every keystroke re-derives the visible subset.
		if m.searchMode {
			switch msg.String() {
			case "enter":
				m.searchMode = false
			case "esc":
				m.searchMode = false
				m.searchInput = ""
				m.controller.SetQuery("")
				m.selected = 0
			case "backspace":
				if m.searchInput != "" {
					r := []rune(m.searchInput)
					m.searchInput = string(r[:len(r)-1])
					m.controller.SetQuery(m.searchInput)
					m.selected = 0
				}
			default:
				// Rune-aware so multibyte callsign queries work.
				if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
					m.searchInput += string(msg.Runes)
					m.controller.SetQuery(m.searchInput)
					m.selected = 0
				}
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "/":
			m.searchMode = true
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.controller.VisibleFlights())-1 {
				m.selected++
			}
		case "enter", " ":
			visible := m.controller.VisibleFlights()
			if m.selected < len(visible) {
				m.controller.SelectFlight(visible[m.selected])
			}
		case "c":
			m.controller.ClearSelection()
		case "r":
			m.controller.SetLoading(true)
			return m, m.refreshCmd()
		case "+", "=":
			m.viewport = m.viewport.Zoom(1.5)
		case "-", "_":
			m.viewport = m.viewport.Zoom(1 / 1.5)
		case "0":
			m.viewport = geo.WorldView(mapWidth, mapHeight)
		}

	case tickMsg:
		m.controller.SetLoading(true)
		return m, tea.Batch(m.refreshCmd(), tick(m.refreshEvery))

	case snapshotMsg:
		m.controller.SetSnapshot(flight.Snapshot(msg))
		m.controller.SetLoading(false)
		if m.selected >= len(m.controller.VisibleFlights()) {
			m.selected = 0
		}
	}

	return m, nil
}

func (m model) View() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	s.WriteString(titleStyle.Render("SKYMAP LIVE"))
	s.WriteString("  ")
	s.WriteString(m.renderStatus())
	s.WriteString("\n\n")

	s.WriteString(m.renderMap())
	s.WriteString("\n")

	if m.searchMode || m.searchInput != "" {
		promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
		inputStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
		cursor := ""
		if m.searchMode {
			cursor = "_"
		}
		s.WriteString(promptStyle.Render("Search: "))
		s.WriteString(inputStyle.Render(m.searchInput + cursor))
		s.WriteString("\n")
	}

	s.WriteString(m.renderFlightList())
	s.WriteString(m.renderDetail())
	s.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if m.searchMode {
		s.WriteString(helpStyle.Render("ENTER: Done  ESC: Clear search"))
	} else {
		s.WriteString(helpStyle.Render("/: Search  ↑/↓: Select  ENTER: Detail  C: Clear  R: Refresh  +/-: Zoom  Q: Quit"))
	}
	s.WriteString("\n")

	return s.String()
}

// renderStatus shows provenance and the degradation message, if any.
func (m model) renderStatus() string {
	snap := m.controller.Snapshot()

	var style lipgloss.Style
	switch snap.Source {
	case flight.SourceLive:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	case flight.SourceCached:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	default:
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	}

	status := fmt.Sprintf("[%s] %d flights", strings.ToUpper(snap.Source.String()), len(snap.Flights))
	if m.controller.Loading() {
		status += "  refreshing..."
	}
	out := style.Render(status)

	if snap.Err != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		out += "  " + errStyle.Render(snap.Err)
	}
	return out
}

func (m model) renderMap() string {
	var sb strings.Builder

	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sb.WriteString(borderStyle.Render("┌" + strings.Repeat("─", mapWidth) + "┐"))
	sb.WriteString("\n")

	grid := make([][]rune, mapHeight)
	for i := range grid {
		grid[i] = make([]rune, mapWidth)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	// Equator and prime meridian reference lines.
	if _, eqY, ok := m.viewport.Project(geo.Point{Latitude: 0, Longitude: m.viewport.Center.Longitude}); ok {
		for x := 0; x < mapWidth; x++ {
			grid[eqY][x] = '·'
		}
	}
	if pmX, _, ok := m.viewport.Project(geo.Point{Latitude: m.viewport.Center.Latitude, Longitude: 0}); ok {
		for y := 0; y < mapHeight; y++ {
			if grid[y][pmX] == ' ' {
				grid[y][pmX] = '·'
			}
		}
	}

	visible := m.controller.VisibleFlights()
	selICAO := ""
	if sel, ok := m.controller.SelectedFlight(); ok {
		selICAO = sel.ICAO
	}

	for i, f := range visible {
		if !f.HasPosition {
			continue
		}
		x, y, ok := m.viewport.Project(geo.Point{Latitude: f.Latitude, Longitude: f.Longitude})
		if !ok {
			continue
		}
		// Heading glyph; absent heading renders as north-up.
		grid[y][x] = view.HeadingGlyph(f.Track)
		if i == m.selected || (selICAO != "" && f.ICAO == selICAO) {
			grid[y][x] = '◉'
		}
	}

	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	gridStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("237"))

	for y := 0; y < mapHeight; y++ {
		sb.WriteString(borderStyle.Render("│"))
		for x := 0; x < mapWidth; x++ {
			char := grid[y][x]
			switch char {
			case ' ':
				sb.WriteRune(char)
			case '·':
				sb.WriteString(gridStyle.Render(string(char)))
			case '◉':
				sb.WriteString(selectedStyle.Render(string(char)))
			default:
				sb.WriteString(markerStyle.Render(string(char)))
			}
		}
		sb.WriteString(borderStyle.Render("│"))
		sb.WriteString("\n")
	}

	sb.WriteString(borderStyle.Render("└" + strings.Repeat("─", mapWidth) + "┘"))
	return sb.String()
}

func (m model) renderFlightList() string {
	var list strings.Builder

	visible := m.controller.VisibleFlights()

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	list.WriteString(headerStyle.Render("Flights:"))
	list.WriteString(fmt.Sprintf(" (%d)", len(visible)))
	list.WriteString("\n")

	if len(visible) == 0 {
		list.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("  No matching flights"))
		list.WriteString("\n")
		return list.String()
	}

	// Keep the selection roughly centered in the window.
	start := 0
	if m.selected > listRows/2 && len(visible) > listRows {
		start = m.selected - listRows/2
	}
	end := start + listRows
	if end > len(visible) {
		end = len(visible)
	}

	for i := start; i < end; i++ {
		f := visible[i]

		prefix := "  "
		if i == m.selected {
			prefix = "→ "
		}

		callsign := f.Callsign
		if callsign == "" {
			callsign = "--------"
		}

		pos := "      no position"
		if f.HasPosition {
			pos = fmt.Sprintf("%7.2f %8.2f", f.Latitude, f.Longitude)
		}

		line := fmt.Sprintf("%s%-8s %-6s %-16s %s  %6.0f  %5.0f  %c",
			prefix,
			callsign,
			f.ICAO,
			truncate(f.OriginCountry, 16),
			pos,
			f.Altitude,
			f.GroundSpeed,
			view.HeadingGlyph(f.Track),
		)

		if i == m.selected {
			line = lipgloss.NewStyle().Background(lipgloss.Color("237")).Render(line)
		}

		list.WriteString(line)
		list.WriteString("\n")
	}

	return list.String()
}

// renderDetail shows the captured selection. The values are the ones
// copied at selection time and do not move with later refreshes.
func (m model) renderDetail() string {
	sel, ok := m.controller.SelectedFlight()
	if !ok {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	var d strings.Builder
	d.WriteString("\n")
	d.WriteString(labelStyle.Render("Selected: "))

	callsign := sel.Callsign
	if callsign == "" {
		callsign = "(no callsign)"
	}
	d.WriteString(fmt.Sprintf("%s  %s  %s", callsign, sel.ICAO, sel.OriginCountry))
	if sel.HasPosition {
		d.WriteString(fmt.Sprintf("  %.3f, %.3f", sel.Latitude, sel.Longitude))
	}
	d.WriteString(fmt.Sprintf("  alt %.0f  spd %.0f  trk %.0f° %c",
		sel.Altitude, sel.GroundSpeed, sel.Track, view.HeadingGlyph(sel.Track)))
	if sel.Squawk != "" {
		d.WriteString("  sq " + sel.Squawk)
	}
	d.WriteString("\n")
	return d.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func main() {
	cfg, err := config.Load("configs/config.json")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logger.Sync()

	client := opensky.NewClient(cfg.Supplier.BaseURL)
	defer client.Close()

	refreshEvery := time.Duration(cfg.Supplier.RefreshIntervalSeconds) * time.Second
	if refreshEvery <= 0 {
		refreshEvery = time.Minute
	}

	m := model{
		supplier:     supplier.New(client, cfg.Supplier, logger),
		controller:   view.NewController(),
		viewport:     geo.WorldView(mapWidth, mapHeight),
		refreshEvery: refreshEvery,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
