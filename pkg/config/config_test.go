package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig tests the default values.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Supplier.BaseURL != "https://opensky-network.org/api" {
		t.Errorf("Expected OpenSky base URL, got %s", cfg.Supplier.BaseURL)
	}
	if cfg.Supplier.RefreshIntervalSeconds != 60 {
		t.Errorf("Expected refresh interval 60, got %d", cfg.Supplier.RefreshIntervalSeconds)
	}
	if cfg.Supplier.PerturbIntervalSeconds != 5 {
		t.Errorf("Expected perturb interval 5, got %d", cfg.Supplier.PerturbIntervalSeconds)
	}
	if cfg.Supplier.SyntheticFlights != 100 {
		t.Errorf("Expected 100 synthetic flights, got %d", cfg.Supplier.SyntheticFlights)
	}
	if cfg.Supplier.SyntheticAirports != 40 {
		t.Errorf("Expected 40 synthetic airports, got %d", cfg.Supplier.SyntheticAirports)
	}
	if cfg.Supplier.CacheTTLSeconds != 300 {
		t.Errorf("Expected cache TTL 300, got %d", cfg.Supplier.CacheTTLSeconds)
	}
	if cfg.Airports.Enabled {
		t.Error("Expected airport database disabled by default")
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected log level info, got %s", cfg.Log.Level)
	}
}

// TestLoadMissingFile tests that a missing config file yields defaults.
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got: %v", err)
	}
	if cfg.Supplier.SyntheticFlights != 100 {
		t.Error("Expected default configuration")
	}
}

// TestSaveAndLoad tests the round trip through a JSON file.
func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.Supplier.BaseURL = "http://localhost:9090/api"
	cfg.Supplier.RefreshIntervalSeconds = 15
	cfg.Airports.Enabled = true
	cfg.Airports.Host = "db.internal"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error loading, got: %v", err)
	}

	if loaded.Supplier.BaseURL != "http://localhost:9090/api" {
		t.Errorf("Expected saved base URL, got %s", loaded.Supplier.BaseURL)
	}
	if loaded.Supplier.RefreshIntervalSeconds != 15 {
		t.Errorf("Expected refresh interval 15, got %d", loaded.Supplier.RefreshIntervalSeconds)
	}
	if !loaded.Airports.Enabled || loaded.Airports.Host != "db.internal" {
		t.Error("Expected airport database settings to round-trip")
	}
}

// TestLoadInvalidJSON tests that a corrupt file is an error.
func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Expected parse error, got nil")
	}
}

// TestEnvironmentOverrides tests the environment variable overlay.
func TestEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SKYMAP_BASE_URL", "http://override:1234/api")
	t.Setenv("SKYMAP_PORT", "9999")
	t.Setenv("SKYMAP_DB_PASSWORD", "secret")
	t.Setenv("SKYMAP_LOG_FILE", "/tmp/override.log")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.Supplier.BaseURL != "http://override:1234/api" {
		t.Errorf("Expected base URL override, got %s", cfg.Supplier.BaseURL)
	}
	if cfg.Server.Port != "9999" {
		t.Errorf("Expected port override, got %s", cfg.Server.Port)
	}
	if cfg.Airports.Password != "secret" {
		t.Error("Expected database password override")
	}
	if cfg.Log.File != "/tmp/override.log" {
		t.Errorf("Expected log file override, got %s", cfg.Log.File)
	}
}
