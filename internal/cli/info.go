package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show device information",
	Long:  `Connect and read the device-information characteristics: name, appearance, serial number, firmware, hardware and software revisions, and battery voltage.`,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cube, err := connectCube(ctx)
	if err != nil {
		return err
	}
	defer cube.Close()

	info, err := cube.Information(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(info.String())
	return nil
}
