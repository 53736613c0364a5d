// Package formats lists the supported broker export formats
package formats

import (
	"fmt"
	"io"

	"fjacquet/broker-qif/cmd/root"
	"fjacquet/broker-qif/internal/formatid"

	"github.com/spf13/cobra"
)

// Cmd represents the formats command
var Cmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported broker export formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		return List(cmd.OutOrStdout(), c.GetFormats().Profiles())
	},
}

// List writes one line per profile: its name, account type and header line.
func List(w io.Writer, profiles []formatid.Profile) error {
	for _, p := range profiles {
		if _, err := fmt.Fprintf(w, "%-8s %-7s %s\n", p.Name(), p.Account, p.Header); err != nil {
			return err
		}
	}
	return nil
}
