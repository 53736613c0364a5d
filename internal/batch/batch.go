// Package batch converts every CSV export found in a directory
package batch

import (
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/broker-qif/internal/converter"
	"fjacquet/broker-qif/internal/fileutils"
	"fjacquet/broker-qif/internal/logging"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"))
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// ConvertFunc runs a single conversion.
type ConvertFunc func(opts converter.Options) (converter.Result, error)

// FileOutcome is the result of converting one file of the batch.
type FileOutcome struct {
	File   string
	Result converter.Result
	Err    error
}

// Report summarizes a batch run.
type Report struct {
	Outcomes []FileOutcome
	Period   DateRange // covers the actions of every successful file
}

// Succeeded returns the number of files converted without error.
func (r Report) Succeeded() int {
	return len(r.Outcomes) - r.Failed()
}

// Failed returns the number of files whose conversion failed.
func (r Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// FailedFiles lists the files whose conversion failed, in processing order.
func (r Report) FailedFiles() []string {
	var files []string
	for _, o := range r.Outcomes {
		if o.Err != nil {
			files = append(files, o.File)
		}
	}
	return files
}

// Runner converts the files of a directory one after the other.
type Runner struct {
	convert ConvertFunc
	logger  logging.Logger
}

// NewRunner creates a Runner that converts each file with convert.
func NewRunner(convert ConvertFunc, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Runner{
		convert: convert,
		logger:  logger,
	}
}

// Run converts every .csv file of inputDir, in name order, using opts for all
// settings but the input file. A failing file is logged and recorded in the
// report, and the run continues with the next one. The returned error only
// reports a problem listing inputDir.
func (r *Runner) Run(inputDir string, opts converter.Options) (Report, error) {
	files, err := fileutils.ListFilesWithExtension(inputDir, ".csv")
	if err != nil {
		return Report{}, fmt.Errorf("failed to read input directory: %w", err)
	}

	var report Report
	if len(files) == 0 {
		r.logger.Warn("No CSV files found in input directory", logging.F(logging.FieldFile, inputDir))
		return report, nil
	}

	r.logger.Info("Found files for processing", logging.F(logging.FieldCount, len(files)))

	for _, file := range files {
		fileOpts := opts
		fileOpts.InputFile = file

		res, err := r.convert(fileOpts)
		report.Outcomes = append(report.Outcomes, FileOutcome{File: file, Result: res, Err: err})
		if err != nil {
			r.logger.WithError(err).Error("Failed to convert file",
				logging.F(logging.FieldInputFile, filepath.Base(file)))
			continue
		}

		report.Period = report.Period.Merge(DateRange{Start: res.First, End: res.Last})
		r.logger.Debug("Converted file",
			logging.F(logging.FieldInputFile, filepath.Base(file)),
			logging.F(logging.FieldProfile, res.Profile),
			logging.F(logging.FieldCount, res.Actions))
	}

	r.logger.Info("Batch processing completed",
		logging.F("succeeded", report.Succeeded()),
		logging.F("failed", report.Failed()),
		logging.F("period", report.Period.String()))
	return report, nil
}
