package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simon-code-git/circuitcube"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for nearby Circuit Cubes",
	Long:  `Scan for Circuit Cube devices advertising over Bluetooth and list their names, addresses, and signal strength.`,
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	fmt.Println("Scanning for Circuit Cube devices...")

	devices, err := circuitcube.Scan(context.Background(), cfg.ScanTimeout(),
		circuitcube.WithVerbose(cfg.Verbose))
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No Circuit Cube devices found")
		fmt.Println()
		fmt.Println("Tips:")
		fmt.Println("  - Press the cube's power button to wake it up")
		fmt.Println("  - Make sure it is not connected to another app")
		return nil
	}

	fmt.Printf("Found %d device(s):\n", len(devices))
	for _, d := range devices {
		fmt.Printf("  - %s (%s, RSSI: %d)\n", d.Name, d.Address, d.RSSI)
	}
	return nil
}
