// Package batch handles batch processing of files
package batch

import (
	"fmt"
	"strings"

	"fjacquet/broker-qif/cmd/root"
	"fjacquet/broker-qif/internal/batch"
	"fjacquet/broker-qif/internal/report"

	"github.com/spf13/cobra"
)

var (
	inputDir   string
	reportFile string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch convert the CSV exports of a directory",
	Long: `Batch convert every CSV export found in an input directory.

Each file is identified and converted on its own, with the same securities
list, linked account and output directory. A file that fails is reported and
the batch continues with the next one; the command exits with an error when
any file failed.

Example:
  broker-qif batch --input-dir exports/ -c securities.qif -o qif/ --report qif/report.json`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVar(&inputDir, "input-dir", "", "Directory holding the CSV exports")
	Cmd.Flags().StringVar(&reportFile, "report", "", "Write a summary of the run to this .json or .yaml file")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	if inputDir == "" {
		return fmt.Errorf("input directory must be specified")
	}
	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}

	runner := batch.NewRunner(c.GetConverter().Convert, root.Log)
	result, err := runner.Run(inputDir, root.ConvertOptions(""))
	if err != nil {
		return err
	}
	if reportFile != "" {
		if err := report.NewReportGenerator(root.Log).WriteReport(report.FromBatch(result), reportFile); err != nil {
			return err
		}
	}
	return Summarize(result)
}

// Summarize turns the failures of a report into an error.
func Summarize(r batch.Report) error {
	failed := r.FailedFiles()
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d file(s) failed to convert: %s",
		len(failed), len(r.Outcomes), strings.Join(failed, ", "))
}
