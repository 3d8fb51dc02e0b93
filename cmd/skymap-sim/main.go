package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/skymap-live/skymap/internal/logging"
	"github.com/skymap-live/skymap/internal/supplier"
	"github.com/skymap-live/skymap/pkg/config"
)

var (
	// Version information (set by build flags)
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("skymap-sim version %s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logger.Sync()

	sim := supplier.NewSim(cfg.Supplier.SyntheticFlights, cfg.Supplier.SyntheticAirports)

	app := NewApp(&AppConfig{
		Config: cfg,
		Sim:    sim,
		Logger: logger,
	})

	if err := app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

// printHelp prints usage information
func printHelp() {
	fmt.Println("skymap-sim - Offline flight map with synthetic data")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  skymap-sim [options]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -config string")
	fmt.Println("        Path to configuration file (default: configs/config.json)")
	fmt.Println("  -version")
	fmt.Println("        Show version information")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println()
	fmt.Println("KEYBOARD SHORTCUTS:")
	fmt.Println("  Navigation:")
	fmt.Println("    ↑/↓ or j/k     Select record")
	fmt.Println("    /              Focus search")
	fmt.Println()
	fmt.Println("  Modes:")
	fmt.Println("    TAB            Toggle flights/airports")
	fmt.Println("    f              Flight search")
	fmt.Println("    a              Airport search")
	fmt.Println()
	fmt.Println("  Actions:")
	fmt.Println("    ENTER          Select record")
	fmt.Println("    c              Clear selection")
	fmt.Println("    n              Generate a new world")
	fmt.Println()
	fmt.Println("  Zoom:")
	fmt.Println("    +/-            Zoom in/out")
	fmt.Println("    0              Reset zoom")
	fmt.Println()
	fmt.Println("  Control:")
	fmt.Println("    q or ESC       Quit application")
	fmt.Println()
	fmt.Println("Flight positions drift every few seconds to simulate motion.")
	fmt.Println("No network connection is used or required.")
}
