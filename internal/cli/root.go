// Package cli implements the command-line interface for circuitcube.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	// Global flags
	flagAddress string
	flagConfig  string
	flagJournal string
	flagVerbose bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "circuitcube",
	Short: "Circuit Cube controller",
	Long: `Circuit Cube controller - drive Tenka Circuit Cube motors over Bluetooth.

Scan for nearby cubes, run and stop motors, read device information and
battery voltage, and review the command journal of past sessions.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagAddress, "address", "a", "", "Device address (MAC, or UUID on macOS); skips scanning")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.circuitcube/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagJournal, "journal", "", "Journal database path; enables command journaling")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")
}
