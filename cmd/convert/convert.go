// Package convert handles the conversion of a single CSV export
package convert

import (
	"fmt"

	"fjacquet/broker-qif/cmd/common"
	"fjacquet/broker-qif/cmd/root"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a broker CSV export to QIF",
	Long: `Convert a broker CSV export to QIF files.

The broker is identified from the CSV header line unless --format is given.
Up to three files are written to the output directory: the transactions
(invest_<name>.qif or cash_<name>.qif), the cash transfers for the linked
account (linked_cash_<name>.qif, only with -l) and the securities not found
in the current securities list (securities_<name>.qif).

Example:
  broker-qif convert -i schwab.csv -c securities.qif -l "Brokerage Cash" -o qif/`,
	RunE: convertFunc,
}

func init() {
	Cmd.Flags().StringVar(&format, "format", "", "Force the input format instead of identifying it (see 'formats')")
}

func convertFunc(cmd *cobra.Command, args []string) error {
	opts := root.ConvertOptions(root.SharedFlags.Input)
	opts.Format = format

	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	_, err := common.ProcessFile(c.GetConverter(), opts, root.Log)
	return err
}
