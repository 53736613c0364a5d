// Package parsererror defines the typed errors raised while identifying, decoding,
// classifying and emitting broker transactions.
package parsererror

import "fmt"

// ParseError represents a field that could not be parsed.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents input that does not conform to the expected format.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// FormatNotRecognizedError is returned when no registered header line occurs in the input.
type FormatNotRecognizedError struct {
	FilePath string
}

func (e *FormatNotRecognizedError) Error() string {
	return fmt.Sprintf("no recognized csv header found in file '%s'", e.FilePath)
}

// FooterResumedError is returned when a well-formed row follows the row that was
// taken to be the trailing footer of the export.
type FooterResumedError struct {
	Row       int // 1-based data row number of the offending row
	FooterRow int // 1-based data row number of the presumed footer
}

func (e *FooterResumedError) Error() string {
	return fmt.Sprintf("data resumed at row %d after presumed footer at row %d", e.Row, e.FooterRow)
}

// OptionMismatchError is returned when a symbol looks like an option but its
// description disagrees with it.
type OptionMismatchError struct {
	Symbol      string
	Description string
	Field       string // "description", "strike", "expiration" or "right"
	Reason      string
}

func (e *OptionMismatchError) Error() string {
	return fmt.Sprintf("option symbol '%s' and description '%s' disagree on %s: %s",
		e.Symbol, e.Description, e.Field, e.Reason)
}

// UnregisteredSymbolError is returned by a lookup of a symbol that was never registered.
type UnregisteredSymbolError struct {
	Symbol string
}

func (e *UnregisteredSymbolError) Error() string {
	return fmt.Sprintf("expected to find symbol in registry: '%s'", e.Symbol)
}

// UnsupportedActionError is returned for an unrecognized action label on a row that
// carries priced data.
type UnsupportedActionError struct {
	Parser string
	Label  string
	Row    int
}

func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("%s: unrecognized action found at row %d: '%s'", e.Parser, e.Row, e.Label)
}

// UnknownSecurityTypeError is returned when a securities ledger names a type token
// that is not understood.
type UnknownSecurityTypeError struct {
	Token string
	Line  int
}

func (e *UnknownSecurityTypeError) Error() string {
	return fmt.Sprintf("unrecognized security type '%s' at line %d", e.Token, e.Line)
}
