// Package common provides functionality shared by the broker parsers.
package common

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// DecodeRows decodes the CSV rows read from r into values of TCSVRow using the
// `csv:"..."` struct tags. The first line read from r must be the header.
//
// Broker exports end with a single malformed trailing line, so the first row
// that fails to decode (or that clean rejects) is taken to be that footer and
// dropped. A well-formed row after the footer is a *parsererror.FooterResumedError.
// Rows are returned in source order; clean runs on every decoded row before it
// is kept and may be nil.
func DecodeRows[TCSVRow any](r io.Reader, clean func(*TCSVRow) error, logger logging.Logger) ([]TCSVRow, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	csvReader := csv.NewReader(r)
	var zero TCSVRow
	um, err := gocsv.NewUnmarshaller(csvReader, zero)
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	var rows []TCSVRow
	footerRow := 0
	for rowNum := 1; ; rowNum++ {
		value, err := um.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if err != nil && !errors.As(err, &parseErr) {
			return nil, fmt.Errorf("error reading CSV row %d: %w", rowNum, err)
		}

		var row TCSVRow
		if err == nil {
			var ok bool
			row, ok = value.(TCSVRow)
			if !ok {
				err = fmt.Errorf("unexpected row type %T", value)
			} else if clean != nil {
				err = clean(&row)
			}
		}

		if err != nil {
			if footerRow == 0 {
				footerRow = rowNum
				logger.Debug("Treating undecodable row as trailing footer",
					logging.F(logging.FieldRow, rowNum),
					logging.F(logging.FieldReason, err.Error()))
			}
			continue
		}

		if footerRow != 0 {
			return nil, &parsererror.FooterResumedError{Row: rowNum, FooterRow: footerRow}
		}
		rows = append(rows, row)
	}

	logger.Debug("Decoded CSV rows", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}
