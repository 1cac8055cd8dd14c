package cli

import (
	"context"
	"fmt"

	"github.com/simon-code-git/circuitcube"
	"github.com/simon-code-git/circuitcube/internal/config"
)

// loadSettings merges the config file with command-line flags; flags win.
func loadSettings() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagAddress != "" {
		cfg.Address = flagAddress
	}
	if flagJournal != "" {
		cfg.JournalPath = flagJournal
	}
	if flagVerbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// sessionOptions translates CLI settings into library options.
func sessionOptions(cfg *config.Config) []circuitcube.Option {
	opts := []circuitcube.Option{
		circuitcube.WithScanTimeout(cfg.ScanTimeout()),
		circuitcube.WithVerbose(cfg.Verbose),
	}
	if cfg.JournalPath != "" {
		opts = append(opts, circuitcube.WithJournal(cfg.JournalPath))
	}
	return opts
}

// connectCube connects using the configured address, or scans for the first
// cube in range.
func connectCube(ctx context.Context) (*circuitcube.Cube, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}

	opts := sessionOptions(cfg)

	if cfg.Address != "" {
		fmt.Printf("Connecting to Circuit Cube at %s...\n", cfg.Address)
		return circuitcube.ConnectByAddress(ctx, cfg.Address, opts...)
	}

	fmt.Println("Scanning for Circuit Cube...")
	cube, err := circuitcube.ConnectFirst(ctx, opts...)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Connected: %s (%s)\n", cube.DeviceName(), cube.Address())
	return cube, nil
}
