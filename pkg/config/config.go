package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the complete application configuration.
type Config struct {
	Supplier SupplierConfig `json:"supplier"`
	Airports AirportsConfig `json:"airports"`
	Server   ServerConfig   `json:"server"`
	Log      LogConfig      `json:"log"`
}

// SupplierConfig controls the data supplier and its fallback chain.
type SupplierConfig struct {
	// BaseURL is the live feed API base URL
	BaseURL string `json:"base_url"`

	// RefreshIntervalSeconds is how often the live snapshot is refreshed
	RefreshIntervalSeconds int `json:"refresh_interval_seconds"`

	// PerturbIntervalSeconds is how often simulation mode nudges the
	// synthetic flight positions between full refreshes
	PerturbIntervalSeconds int `json:"perturb_interval_seconds"`

	// SyntheticFlights is the number of records the fallback generator
	// fabricates per refresh
	SyntheticFlights int `json:"synthetic_flights"`

	// SyntheticAirports is the airport count in simulation mode
	SyntheticAirports int `json:"synthetic_airports"`

	// CacheTTLSeconds is how long the last successful live payload is
	// kept to bridge feed outages before falling back to synthetic data
	CacheTTLSeconds int `json:"cache_ttl_seconds"`
}

// AirportsConfig contains the optional airport reference database.
// When disabled or unreachable, airports are synthesized instead.
type AirportsConfig struct {
	// Enabled determines if the PostgreSQL reference source is used
	Enabled bool `json:"enabled"`

	// Host is the database server hostname
	Host string `json:"host"`

	// Port is the database server port
	Port int `json:"port"`

	// Database is the database name
	Database string `json:"database"`

	// Username for database authentication
	Username string `json:"username"`

	// Password for database authentication (should be loaded from environment)
	Password string `json:"password"`

	// SSLMode for PostgreSQL connections (disable, require, verify-ca, verify-full)
	SSLMode string `json:"ssl_mode"`

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int `json:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int `json:"max_idle_conns"`
}

// ServerConfig contains the HTTP API server settings.
type ServerConfig struct {
	// Host is the server bind address (default: "0.0.0.0")
	Host string `json:"host"`

	// Port is the HTTP server port (default: 8080)
	Port string `json:"port"`
}

// LogConfig contains structured logging settings.
// The TUIs own the terminal, so logs go to a file.
type LogConfig struct {
	// File is the log file path; empty disables file logging
	File string `json:"file"`

	// Level is the minimum level: debug, info, warn, error
	Level string `json:"level"`
}

// Load reads configuration from a JSON file.
// If the file doesn't exist, returns a default configuration.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	return &cfg, nil
}

// Save writes the configuration to a JSON file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Supplier: SupplierConfig{
			BaseURL:                "https://opensky-network.org/api",
			RefreshIntervalSeconds: 60,
			PerturbIntervalSeconds: 5,
			SyntheticFlights:       100,
			SyntheticAirports:      40,
			CacheTTLSeconds:        300,
		},
		Airports: AirportsConfig{
			Enabled:      false,
			Host:         "localhost",
			Port:         5432,
			Database:     "skymap",
			Username:     "skymap",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
		},
		Log: LogConfig{
			File:  "skymap.log",
			Level: "info",
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides.
// This keeps credentials out of config files.
func (c *Config) applyEnvironmentOverrides() {
	if url := os.Getenv("SKYMAP_BASE_URL"); url != "" {
		c.Supplier.BaseURL = url
	}
	if port := os.Getenv("SKYMAP_PORT"); port != "" {
		c.Server.Port = port
	}
	if dbPassword := os.Getenv("SKYMAP_DB_PASSWORD"); dbPassword != "" {
		c.Airports.Password = dbPassword
	}
	if logFile := os.Getenv("SKYMAP_LOG_FILE"); logFile != "" {
		c.Log.File = logFile
	}
}
