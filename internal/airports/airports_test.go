package airports

import (
	"context"
	"testing"

	"github.com/skymap-live/skymap/internal/logging"
	"github.com/skymap-live/skymap/pkg/config"
)

// TestParseCoordinate tests text coordinate parsing.
func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"Positive decimal", "33.6367", 33.6367, false},
		{"Negative decimal", "-84.428101", -84.428101, false},
		{"Integer", "45", 45, false},
		{"Leading whitespace", "  51.4775", 51.4775, false},
		{"Zero", "0", 0, false},
		{"Empty", "", 0, true},
		{"Garbage", "N33 38.2", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoordinate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got %f", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %f, got %f", tt.want, got)
			}
		})
	}
}

// TestLoadDisabledSynthesizes tests that a disabled database source
// yields a synthesized list of the requested size.
func TestLoadDisabledSynthesizes(t *testing.T) {
	cfg := config.AirportsConfig{Enabled: false}

	list := Load(context.Background(), cfg, 25, logging.Nop())
	if len(list) != 25 {
		t.Fatalf("Expected 25 synthesized airports, got %d", len(list))
	}
	for i, a := range list {
		if a.IATA == "" || a.Name == "" {
			t.Errorf("Airport %d: expected populated record, got %+v", i, a)
		}
	}
}

// TestLoadUnreachableSynthesizes tests the fallback when the database is
// enabled but cannot be reached.
func TestLoadUnreachableSynthesizes(t *testing.T) {
	cfg := config.AirportsConfig{
		Enabled:  true,
		Host:     "127.0.0.1",
		Port:     1, // nothing listens here
		Database: "skymap",
		Username: "skymap",
		SSLMode:  "disable",
	}

	list := Load(context.Background(), cfg, 0, logging.Nop())
	if len(list) != 40 {
		t.Fatalf("Expected 40 fallback airports, got %d", len(list))
	}
}

// TestConnectUnreachable tests that connection failures surface as
// errors rather than panics.
func TestConnectUnreachable(t *testing.T) {
	cfg := config.AirportsConfig{
		Host:     "127.0.0.1",
		Port:     1,
		Database: "skymap",
		Username: "skymap",
		SSLMode:  "disable",
	}

	if _, err := Connect(cfg); err == nil {
		t.Fatal("Expected connection error, got nil")
	}
}
