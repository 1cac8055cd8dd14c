package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var haltCmd = &cobra.Command{
	Use:   "halt",
	Short: "Stop all three motors",
	RunE:  runHalt,
}

func init() {
	rootCmd.AddCommand(haltCmd)
}

func runHalt(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cube, err := connectCube(ctx)
	if err != nil {
		return err
	}
	defer cube.Close()

	if err := cube.Halt(ctx); err != nil {
		return err
	}

	fmt.Println("All motors stopped")
	return nil
}
