// Package airports provides the airport reference list. The primary
// source is an optional PostgreSQL table; when the database is disabled
// or unreachable the list is synthesized instead, so the rest of the
// application never sees a failure.
package airports

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"github.com/skymap-live/skymap/pkg/config"
	"github.com/skymap-live/skymap/pkg/flight"
	"github.com/skymap-live/skymap/pkg/synth"
)

//go:embed schema.sql
var schemaSQL embed.FS

// DB wraps a database connection with helper methods.
type DB struct {
	*sql.DB
	config config.AirportsConfig
}

// Connect establishes a connection to the PostgreSQL database.
func Connect(cfg config.AirportsConfig) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
		cfg.Database,
		cfg.SSLMode,
	)

	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: sqlDB, config: cfg}, nil
}

// InitSchema creates the airports table if it does not exist.
func (db *DB) InitSchema(ctx context.Context) error {
	schemaBytes, err := schemaSQL.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(schemaBytes)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Repository reads airport reference rows.
type Repository struct {
	db *DB
}

// NewRepository creates an airport repository.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// List returns all airports ordered by IATA code. Latitude and
// longitude are stored as text in the imported reference data and are
// parsed here; rows with unparseable coordinates are skipped.
func (r *Repository) List(ctx context.Context) ([]flight.Airport, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, iata, icao, latitude, longitude, country, city
		 FROM airports
		 ORDER BY iata`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query airports: %w", err)
	}
	defer rows.Close()

	var out []flight.Airport
	for rows.Next() {
		var a flight.Airport
		var latStr, lonStr string
		if err := rows.Scan(&a.Name, &a.IATA, &a.ICAO, &latStr, &lonStr, &a.Country, &a.City); err != nil {
			return nil, fmt.Errorf("failed to scan airport row: %w", err)
		}

		lat, latErr := ParseCoordinate(latStr)
		lon, lonErr := ParseCoordinate(lonStr)
		if latErr != nil || lonErr != nil {
			continue
		}
		a.Latitude = lat
		a.Longitude = lon

		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate airports: %w", err)
	}

	return out, nil
}

// ParseCoordinate parses a string-encoded decimal degree value.
func ParseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	return v, nil
}

// Load returns the reference airport list. When the database source is
// enabled and reachable it is authoritative; any failure falls back to
// a synthesized list of fallbackN airports.
func Load(ctx context.Context, cfg config.AirportsConfig, fallbackN int, log *zap.SugaredLogger) []flight.Airport {
	if cfg.Enabled {
		db, err := Connect(cfg)
		if err == nil {
			defer db.Close()
			list, err := NewRepository(db).List(ctx)
			if err == nil && len(list) > 0 {
				log.Infow("airports loaded from database", "count", len(list))
				return list
			}
			log.Warnw("airport query failed, synthesizing", "error", err)
		} else {
			log.Warnw("airport database unreachable, synthesizing", "error", err)
		}
	}

	if fallbackN <= 0 {
		fallbackN = 40
	}
	return synth.Airports(fallbackN)
}
