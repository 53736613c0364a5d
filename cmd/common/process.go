// Package common contains shared functionality for command handlers
package common

import (
	"fmt"

	"fjacquet/broker-qif/internal/converter"
	"fjacquet/broker-qif/internal/logging"
)

// Converter runs a single conversion.
type Converter interface {
	Convert(opts converter.Options) (converter.Result, error)
}

// ProcessFile converts one input file and logs what was written.
func ProcessFile(c Converter, opts converter.Options, log logging.Logger) (converter.Result, error) {
	if opts.InputFile == "" {
		return converter.Result{}, fmt.Errorf("input file must be specified")
	}
	if c == nil {
		return converter.Result{}, fmt.Errorf("converter not initialized")
	}

	res, err := c.Convert(opts)
	if err != nil {
		return res, fmt.Errorf("error converting %s: %w", opts.InputFile, err)
	}

	log.Info("Conversion completed successfully!",
		logging.F(logging.FieldInputFile, opts.InputFile),
		logging.F(logging.FieldProfile, res.Profile),
		logging.F("transactions", res.Summary.Transactions),
		logging.F("linked", res.Summary.Linked),
		logging.F("securities", res.Summary.Securities),
		logging.F(logging.FieldNotices, res.Notices))
	return res, nil
}
