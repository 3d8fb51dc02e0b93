// Skymap headless server
// Exposes the flight and airport search over a REST API
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/skymap-live/skymap/internal/airports"
	"github.com/skymap-live/skymap/internal/logging"
	"github.com/skymap-live/skymap/internal/supplier"
	"github.com/skymap-live/skymap/internal/view"
	"github.com/skymap-live/skymap/pkg/config"
	"github.com/skymap-live/skymap/pkg/flight"
	"github.com/skymap-live/skymap/pkg/opensky"
)

var (
	configPath = flag.String("config", "configs/config.json", "Path to configuration file")
	port       = flag.String("port", "", "HTTP server port (overrides config)")
)

// Server holds the HTTP server and its dependencies
type Server struct {
	router   *chi.Mux
	supplier *supplier.Supplier
	airports []flight.Airport
	logger   *zap.SugaredLogger
	cfg      *config.Config
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logger.Sync()

	client := opensky.NewClient(cfg.Supplier.BaseURL)
	defer client.Close()

	srv := &Server{
		router:   chi.NewRouter(),
		supplier: supplier.New(client, cfg.Supplier, logger),
		airports: airports.Load(context.Background(), cfg.Airports, cfg.Supplier.SyntheticAirports, logger),
		logger:   logger,
		cfg:      cfg,
	}

	srv.setupRoutes()

	// First snapshot before accepting traffic, then a background loop.
	srv.supplier.Refresh(context.Background())

	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	go srv.refreshLoop(refreshCtx)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://%s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopRefresh()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// refreshLoop keeps the snapshot current. The supplier's own guard
// makes overlap with the manual refresh endpoint harmless.
func (s *Server) refreshLoop(ctx context.Context) {
	every := time.Duration(s.cfg.Supplier.RefreshIntervalSeconds) * time.Second
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			snap := s.supplier.Refresh(ctx)
			s.logger.Infow("background refresh", "source", snap.Source.String(), "flights", len(snap.Flights))
		case <-ctx.Done():
			return
		}
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	r := s.router

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Compress(5))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/flights", s.handleGetFlights)
		r.Get("/airports", s.handleGetAirports)
		r.Get("/snapshot", s.handleGetSnapshot)
		r.Post("/refresh", s.handleRefresh)
	})

	r.Get("/health", s.handleHealth)
}

// handleGetFlights returns the flight list filtered by the q parameter.
// An empty or blank q returns the whole list.
func (s *Server) handleGetFlights(w http.ResponseWriter, r *http.Request) {
	snap := s.supplier.Last()
	matched := view.Flights(snap.Flights, r.URL.Query().Get("q"))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"flights":    matched,
		"count":      len(matched),
		"source":     snap.Source.String(),
		"error":      snap.Err,
		"fetched_at": snap.FetchedAt,
	})
}

// handleGetAirports returns the airport reference list filtered by q.
func (s *Server) handleGetAirports(w http.ResponseWriter, r *http.Request) {
	matched := view.Airports(s.airports, r.URL.Query().Get("q"))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"airports": matched,
		"count":    len(matched),
	})
}

// handleGetSnapshot returns the full current snapshot with provenance.
func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := s.supplier.Last()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"flights":    snap.Flights,
		"count":      len(snap.Flights),
		"source":     snap.Source.String(),
		"error":      snap.Err,
		"fetched_at": snap.FetchedAt,
	})
}

// handleRefresh triggers an immediate refresh. If one is already in
// flight the current snapshot comes back unchanged; either way the
// response is a usable snapshot.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	snap := s.supplier.Refresh(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":      len(snap.Flights),
		"source":     snap.Source.String(),
		"error":      snap.Err,
		"fetched_at": snap.FetchedAt,
	})
}

// handleHealth reports liveness and the age of the current snapshot.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.supplier.Last()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"source":       snap.Source.String(),
		"snapshot_age": time.Since(snap.FetchedAt).Seconds(),
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
