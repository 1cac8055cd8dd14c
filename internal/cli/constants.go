package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simon-code-git/circuitcube"
)

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Print the GATT constants table",
	Long:  `Print the cube's fixed GATT constants table: service, characteristic, and descriptor identifiers by index. Index 0 is the per-device address, known only to a connected session.`,
	RunE:  runConstants,
}

func init() {
	rootCmd.AddCommand(constantsCmd)
}

func runConstants(cmd *cobra.Command, args []string) error {
	for _, c := range circuitcube.Constants() {
		identifier := c.Identifier
		if identifier == "" {
			identifier = "(per-device)"
		}
		fmt.Printf("%2d  %-14s  %-36s  %s\n", c.Index, c.Kind, identifier, c.Name)
	}
	return nil
}
