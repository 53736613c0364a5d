package symbols

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/models"
	"fjacquet/broker-qif/internal/parsererror"
)

const securityFormat = "!Type:Security / N<name> / S<symbol> / T<type>"

// LoadFile builds a registry from an existing QIF securities ledger.
func LoadFile(path string, logger logging.Logger) (*Registry, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("unable to read from current securities file %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	reg, err := parse(f, path, logger)
	if err != nil {
		return nil, err
	}
	reg.logger.Info("Loaded securities ledger",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, reg.Len()))
	return reg, nil
}

// Parse builds a registry from the serialized securities blocks read from r.
// Content outside `!Type:Security` blocks is skipped.
func Parse(r io.Reader, logger logging.Logger) (*Registry, error) {
	return parse(r, "", logger)
}

func parse(r io.Reader, path string, logger logging.Logger) (*Registry, error) {
	reg := NewRegistry(logger)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNo++
		return strings.TrimRight(scanner.Text(), "\r"), true
	}

	for {
		line, ok := next()
		if !ok {
			break
		}
		if line != models.HeaderSecurity {
			continue
		}

		var fields [3]string
		for i, prefix := range []byte{'N', 'S', 'T'} {
			l, ok := next()
			if !ok || len(l) == 0 || l[0] != prefix {
				return nil, &parsererror.InvalidFormatError{
					FilePath:             path,
					ExpectedFormat:       securityFormat,
					ActualContentSnippet: l,
					Msg:                  fmt.Sprintf("security block at line %d is missing its %c line", lineNo, prefix),
				}
			}
			fields[i] = l[1:]
		}

		securityType, ok := models.ParseSecurityType(fields[2])
		if !ok {
			return nil, &parsererror.UnknownSecurityTypeError{Token: fields[2], Line: lineNo}
		}
		reg.addBase(models.Security{Symbol: fields[1], Name: fields[0], Type: securityType})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading securities ledger: %w", err)
	}
	return reg, nil
}
