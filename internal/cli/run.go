package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/simon-code-git/circuitcube"
)

var (
	runDuration time.Duration
	runSmooth   bool
)

var runCmd = &cobra.Command{
	Use:   "run <motor> <velocity>",
	Short: "Run a motor",
	Long: `Run a motor at the given velocity (-100 to 100).

With --for the motor runs for the given duration and then stops (unless
--smooth is set). Without --for the motor keeps running until the next
command; use 'circuitcube halt' to stop it.

Examples:
  circuitcube run A 75 --for 2s
  circuitcube run b -50
  circuitcube run C 100 --for 500ms --smooth`,
	Args: cobra.ExactArgs(2),
	RunE: runRun,
}

func init() {
	runCmd.Flags().DurationVar(&runDuration, "for", 0, "How long to run before stopping (0 = run until halted)")
	runCmd.Flags().BoolVar(&runSmooth, "smooth", false, "Skip the stop command after the duration")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	motor, err := circuitcube.ParseMotor(args[0])
	if err != nil {
		return err
	}

	velocity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid velocity %q: %w", args[1], err)
	}

	ctx := context.Background()

	cube, err := connectCube(ctx)
	if err != nil {
		return err
	}
	defer cube.Close()

	fmt.Printf("Motor %s at %d%%", motor, velocity)
	if runDuration > 0 {
		fmt.Printf(" for %s", runDuration)
	}
	fmt.Println()

	return cube.RunMotor(ctx, motor, velocity, runDuration, runSmooth)
}
