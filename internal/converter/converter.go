// Package converter runs one CSV export through identification, parsing,
// categorization and QIF emission.
package converter

import (
	"fmt"
	"io"
	"time"

	"fjacquet/broker-qif/internal/categorizer"
	"fjacquet/broker-qif/internal/fileutils"
	"fjacquet/broker-qif/internal/formatid"
	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/models"
	"fjacquet/broker-qif/internal/parsererror"
	"fjacquet/broker-qif/internal/qif"
	"fjacquet/broker-qif/internal/symbols"
)

// Options describe a single conversion.
type Options struct {
	InputFile      string
	SecuritiesFile string // existing QIF securities list; empty means none
	LinkedAccount  string // cash account for linked transfers; empty disables linking
	OutputDir      string
	Format         string // profile name; empty means identify from the header line
}

// Result reports what a conversion produced.
type Result struct {
	InputFile   string
	Profile     string
	Rows        int
	Actions     int
	Notices     int
	Categorized int
	First, Last time.Time // date span of the actions, zero when there are none
	Summary     qif.Summary
}

// Converter wires the conversion pipeline together.
type Converter struct {
	formats     *formatid.Registry
	categorizer *categorizer.Categorizer
	logger      logging.Logger
}

// NewConverter creates a converter. cat may be nil, in which case cash-only
// records are written without a category.
func NewConverter(formats *formatid.Registry, cat *categorizer.Categorizer, logger logging.Logger) *Converter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Converter{
		formats:     formats,
		categorizer: cat,
		logger:      logger,
	}
}

// Identify reports which profile recognizes the given file.
func (c *Converter) Identify(inputFile string) (formatid.Profile, error) {
	rs, err := fileutils.ReadFileToCursor(inputFile)
	if err != nil {
		return formatid.Profile{}, err
	}
	return c.locate(rs, inputFile, "")
}

// Convert reads opts.InputFile and writes its QIF files. Nothing is written when
// an error is returned before emission starts.
func (c *Converter) Convert(opts Options) (Result, error) {
	logger := c.logger.WithField(logging.FieldInputFile, opts.InputFile)

	rs, err := fileutils.ReadFileToCursor(opts.InputFile)
	if err != nil {
		return Result{}, err
	}

	profile, err := c.locate(rs, opts.InputFile, opts.Format)
	if err != nil {
		return Result{}, err
	}
	logger.Info("Converting file", logging.F(logging.FieldProfile, profile.Name()))

	registry, err := c.loadSecurities(opts.SecuritiesFile)
	if err != nil {
		return Result{}, err
	}

	parsed, err := profile.Parser.Parse(rs, registry)
	if err != nil {
		return Result{}, fmt.Errorf("unable to read transactions from %s: %w", opts.InputFile, err)
	}

	res := Result{
		InputFile: opts.InputFile,
		Profile:   profile.Name(),
		Rows:      parsed.Rows,
		Actions:   len(parsed.Actions),
		Notices:   parsed.Notices,
	}
	res.First, res.Last = span(parsed.Actions)

	if c.categorizer != nil {
		res.Categorized = c.categorizer.Apply(parsed.Actions)
	}

	paths, err := fileutils.DeriveOutputPaths(opts.InputFile, opts.OutputDir, profile.Account)
	if err != nil {
		return res, err
	}

	emitter := qif.NewEmitter(paths, opts.LinkedAccount, profile.Account, logger)
	summary, err := emitter.WriteTransactions(parsed.Actions, registry)
	if err != nil {
		return res, fmt.Errorf("unable to create qif files: %w", err)
	}
	if summary.Securities, err = emitter.WriteSecurities(registry); err != nil {
		if derr := emitter.Discard(summary); derr != nil {
			logger.WithError(derr).Warn("Failed to remove qif files after securities error")
		}
		return res, fmt.Errorf("unable to create securities file: %w", err)
	}
	res.Summary = summary

	if res.Notices > 0 {
		logger.Warn("Some rows need manual review", logging.F(logging.FieldCount, res.Notices))
	}
	return res, nil
}

// locate positions rs at the header line of the matching profile. A forced
// format only accepts that profile's header.
func (c *Converter) locate(rs io.ReadSeeker, inputFile, format string) (formatid.Profile, error) {
	var (
		profile formatid.Profile
		ok      bool
		err     error
	)
	if format == "" {
		profile, ok, err = c.formats.Identify(rs)
	} else {
		forced, known := c.formats.Lookup(format)
		if !known {
			return formatid.Profile{}, fmt.Errorf("unknown format %q", format)
		}
		profile, ok, err = formatid.FindMatchingLine(rs, map[string]formatid.Profile{forced.Header: forced})
	}
	if err != nil {
		return formatid.Profile{}, fmt.Errorf("error scanning %s: %w", inputFile, err)
	}
	if !ok {
		return formatid.Profile{}, &parsererror.FormatNotRecognizedError{FilePath: inputFile}
	}
	return profile, nil
}

func (c *Converter) loadSecurities(path string) (*symbols.Registry, error) {
	if path == "" {
		return symbols.NewRegistry(c.logger), nil
	}
	return symbols.LoadFile(path, c.logger)
}

func span(actions []models.Action) (first, last time.Time) {
	for _, a := range actions {
		d := a.When()
		if first.IsZero() || d.Before(first) {
			first = d
		}
		if last.IsZero() || d.After(last) {
			last = d
		}
	}
	return first, last
}
