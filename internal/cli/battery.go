package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var batteryCmd = &cobra.Command{
	Use:   "battery",
	Short: "Read the battery voltage",
	RunE:  runBattery,
}

func init() {
	rootCmd.AddCommand(batteryCmd)
}

func runBattery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cube, err := connectCube(ctx)
	if err != nil {
		return err
	}
	defer cube.Close()

	volts, err := cube.Battery(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Battery voltage: %.3f V\n", volts)
	return nil
}
