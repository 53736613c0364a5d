// Package identify reports which broker produced a CSV export
package identify

import (
	"fmt"

	"fjacquet/broker-qif/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the identify command
var Cmd = &cobra.Command{
	Use:   "identify",
	Short: "Identify the broker of a CSV export",
	Long: `Identify the broker of a CSV export from its header line, without converting it.

Example:
  broker-qif identify -i export.csv`,
	RunE: identifyFunc,
}

func identifyFunc(cmd *cobra.Command, args []string) error {
	input := root.SharedFlags.Input
	if input == "" {
		return fmt.Errorf("input file must be specified")
	}
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}

	p, err := c.GetConverter().Identify(input)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s account)\n", input, p.Name(), p.Account)
	return err
}
