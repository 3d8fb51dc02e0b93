package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/skymap-live/skymap/internal/supplier"
	"github.com/skymap-live/skymap/internal/view"
	"github.com/skymap-live/skymap/pkg/config"
	"github.com/skymap-live/skymap/pkg/geo"
)

// AppConfig holds the application configuration
type AppConfig struct {
	Config *config.Config
	Sim    *supplier.Sim
	Logger *zap.SugaredLogger
}

// App represents the simulation application
type App struct {
	config *config.Config
	sim    *supplier.Sim
	logger *zap.SugaredLogger

	controller *view.Controller

	// UI components
	tviewApp   *tview.Application
	mapView    *tview.TextView
	list       *tview.TextView
	detail     *tview.TextView
	search     *tview.InputField
	status     *tview.TextView
	rootLayout *tview.Flex

	// State
	selectedIndex int
	viewport      geo.Viewport

	// Synchronization
	mu           sync.RWMutex
	perturbTimer *time.Ticker
	stopChan     chan struct{}
}

// NewApp creates a new simulation application instance
func NewApp(cfg *AppConfig) *App {
	app := &App{
		config:     cfg.Config,
		sim:        cfg.Sim,
		logger:     cfg.Logger,
		controller: view.NewController(),
		viewport:   geo.WorldView(mapCols, mapRows),
		stopChan:   make(chan struct{}),
	}

	app.controller.SetSnapshot(app.sim.Snapshot())
	app.setupUI()
	return app
}

// Map panel dimensions
const (
	mapCols = 100
	mapRows = 28
)

// setupUI initializes the user interface
func (a *App) setupUI() {
	a.tviewApp = tview.NewApplication()

	a.mapView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.mapView.SetBorder(true).SetTitle(" Map ")

	a.list = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.list.SetBorder(true).SetTitle(" Flights ")

	a.detail = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.detail.SetBorder(true).SetTitle(" Selected ")

	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.status.SetBorder(true).SetTitle(" Status ")

	a.search = tview.NewInputField().
		SetLabel("Search: ").
		SetFieldWidth(30)
	// Every keystroke re-derives the visible subset. No debounce.
	a.search.SetChangedFunc(func(text string) {
		a.controller.SetQuery(text)
		a.mu.Lock()
		a.selectedIndex = 0
		a.mu.Unlock()
		a.redraw()
	})
	a.search.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			a.search.SetText("")
		}
		a.tviewApp.SetFocus(a.list)
	})
	a.search.SetBorder(true)

	a.createLayout()
	a.tviewApp.SetInputCapture(a.handleKeyboard)
	a.refreshPanels()
}

// createLayout creates the layout: map on top, search + list + side
// panels below.
func (a *App) createLayout() {
	sidebar := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.detail, 0, 1, false).
		AddItem(a.status, 0, 1, false)

	bottom := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.list, 0, 7, true).
		AddItem(sidebar, 0, 3, false)

	a.rootLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.mapView, mapRows+2, 0, false).
		AddItem(a.search, 3, 0, false).
		AddItem(bottom, 0, 1, true)

	a.tviewApp.SetRoot(a.rootLayout, true)
}

// handleKeyboard handles keyboard input
func (a *App) handleKeyboard(event *tcell.EventKey) *tcell.EventKey {
	// The search field keeps its own key handling while focused.
	if a.tviewApp.GetFocus() == a.search {
		return event
	}

	key := event.Key()
	r := event.Rune()

	switch {
	case key == tcell.KeyEscape || r == 'q':
		a.Stop()
		return nil

	case r == '/':
		a.tviewApp.SetFocus(a.search)
		return nil

	case key == tcell.KeyTab:
		a.toggleMode()
		return nil
	case r == 'f':
		a.setMode(view.ModeFlights)
		return nil
	case r == 'a':
		a.setMode(view.ModeAirports)
		return nil

	case key == tcell.KeyUp || r == 'k':
		a.selectPrevious()
		return nil
	case key == tcell.KeyDown || r == 'j':
		a.selectNext()
		return nil

	case key == tcell.KeyEnter:
		a.selectCurrent()
		return nil
	case r == 'c':
		a.controller.ClearSelection()
		a.redraw()
		return nil

	case r == 'n':
		a.resynthesize()
		return nil

	case r == '+' || r == '=':
		a.zoom(1.5)
		return nil
	case r == '-':
		a.zoom(1 / 1.5)
		return nil
	case r == '0':
		a.mu.Lock()
		a.viewport = geo.WorldView(mapCols, mapRows)
		a.mu.Unlock()
		a.redraw()
		return nil
	}

	return event
}

// toggleMode flips between flight and airport search.
func (a *App) toggleMode() {
	if a.controller.Mode() == view.ModeFlights {
		a.setMode(view.ModeAirports)
	} else {
		a.setMode(view.ModeFlights)
	}
}

func (a *App) setMode(m view.Mode) {
	a.controller.SetMode(m)
	a.mu.Lock()
	a.selectedIndex = 0
	a.mu.Unlock()
	a.logger.Infow("mode switched", "mode", m.String())
	a.redraw()
}

// visibleCount returns the length of the active mode's subset.
func (a *App) visibleCount() int {
	if a.controller.Mode() == view.ModeAirports {
		return len(a.controller.VisibleAirports())
	}
	return len(a.controller.VisibleFlights())
}

func (a *App) selectPrevious() {
	a.mu.Lock()
	n := a.visibleCount()
	if n > 0 {
		a.selectedIndex--
		if a.selectedIndex < 0 {
			a.selectedIndex = n - 1
		}
	}
	a.mu.Unlock()
	a.redraw()
}

func (a *App) selectNext() {
	a.mu.Lock()
	n := a.visibleCount()
	if n > 0 {
		a.selectedIndex++
		if a.selectedIndex >= n {
			a.selectedIndex = 0
		}
	}
	a.mu.Unlock()
	a.redraw()
}

// selectCurrent captures the highlighted record as the selection.
// The value is copied at selection time; later perturbations move the
// live record, not the captured detail.
func (a *App) selectCurrent() {
	a.mu.RLock()
	idx := a.selectedIndex
	a.mu.RUnlock()

	if a.controller.Mode() == view.ModeAirports {
		visible := a.controller.VisibleAirports()
		if idx < len(visible) {
			a.controller.SelectAirport(visible[idx])
			a.logger.Infow("airport selected", "iata", visible[idx].IATA)
		}
	} else {
		visible := a.controller.VisibleFlights()
		if idx < len(visible) {
			a.controller.SelectFlight(visible[idx])
			a.logger.Infow("flight selected", "icao", visible[idx].ICAO)
		}
	}
	a.redraw()
}

// resynthesize replaces the whole world with fresh random records.
func (a *App) resynthesize() {
	a.controller.SetSnapshot(a.sim.Reset())
	a.mu.Lock()
	a.selectedIndex = 0
	a.mu.Unlock()
	a.logger.Infow("world resynthesized")
	a.redraw()
}

func (a *App) zoom(factor float64) {
	a.mu.Lock()
	a.viewport = a.viewport.Zoom(factor)
	a.mu.Unlock()
	a.redraw()
}

// redraw queues a repaint of all panels.
func (a *App) redraw() {
	a.tviewApp.QueueUpdateDraw(a.refreshPanels)
}

// Run starts the perturbation loop and the UI.
func (a *App) Run() error {
	every := time.Duration(a.config.Supplier.PerturbIntervalSeconds) * time.Second
	if every <= 0 {
		every = 5 * time.Second
	}
	a.perturbTimer = time.NewTicker(every)
	go a.perturbLoop()

	return a.tviewApp.Run()
}

// perturbLoop nudges the synthetic flights on every tick. Identities
// and list order are stable across ticks, so the selection index and
// any captured selection stay meaningful.
func (a *App) perturbLoop() {
	for {
		select {
		case <-a.perturbTimer.C:
			a.controller.SetSnapshot(a.sim.Perturb())
			a.redraw()
		case <-a.stopChan:
			return
		}
	}
}

// Stop stops the application
func (a *App) Stop() {
	a.logger.Infow("shutting down")
	if a.perturbTimer != nil {
		a.perturbTimer.Stop()
	}
	close(a.stopChan)
	a.tviewApp.Stop()
}

// refreshPanels repaints every panel from the controller state.
// Must run on the tview event loop.
func (a *App) refreshPanels() {
	a.mu.RLock()
	idx := a.selectedIndex
	vp := a.viewport
	a.mu.RUnlock()

	a.mapView.SetText(renderMap(a.controller, vp, idx))
	a.status.SetText(a.renderStatus())

	if a.controller.Mode() == view.ModeAirports {
		a.list.SetTitle(" Airports ")
		a.list.SetText(renderAirportList(a.controller.VisibleAirports(), idx))
	} else {
		a.list.SetTitle(" Flights ")
		a.list.SetText(renderFlightList(a.controller.VisibleFlights(), idx))
	}

	a.detail.SetText(renderDetail(a.controller))
}

func (a *App) renderStatus() string {
	snap := a.controller.Snapshot()
	mode := a.controller.Mode()

	text := fmt.Sprintf("[yellow]SOURCE:[-] [white]%s[-]\n", snap.Source)
	text += fmt.Sprintf("[gray]Flights:[-]  [white]%d[-]\n", len(snap.Flights))
	text += fmt.Sprintf("[gray]Airports:[-] [white]%d[-]\n", len(snap.Airports))
	text += fmt.Sprintf("[gray]Mode:[-]     [white]%s[-]\n", mode)
	text += fmt.Sprintf("[gray]Updated:[-]  [white]%s[-]\n", snap.FetchedAt.Format("15:04:05"))
	text += "\n[yellow]KEYS[-]\n"
	text += "[white]/[-] Search  [white]TAB[-] Mode\n"
	text += "[white]↑/↓[-] Move  [white]ENTER[-] Select\n"
	text += "[white]c[-] Clear  [white]n[-] New world\n"
	text += "[white]+/-/0[-] Zoom  [white]q[-] Quit\n"
	return text
}
