// Package optionsymbol recognizes listed options in broker symbol/description pairs
// and encodes them into the fixed-width symbol used by the ledger.
package optionsymbol

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"fjacquet/broker-qif/internal/dateutils"
	"fjacquet/broker-qif/internal/models"
	"fjacquet/broker-qif/internal/parsererror"

	"github.com/shopspring/decimal"
)

var (
	// "XYZ 01/20/2023 50.00 C"
	symbolPattern = regexp.MustCompile(`^([A-Z]*) (\d{2}/\d{2}/\d{4}) ([\d.]*) ([PC])$`)
	// "CALL XYZ CORP $50 EXP 01/20/23"
	descriptionPattern = regexp.MustCompile(`^(PUT|CALL) ([^$]*)\$([\d.]*) EXP (\d{2}/\d{2}/\d{2})$`)
	strikePattern      = regexp.MustCompile(`^(\d*)(?:\.(\d*))?$`)
)

const (
	canonicalDateLayout = "060102"
	tickerWidth         = 6
	dollarDigits        = 5
	centDigits          = 3
)

// Details is the ledger-facing identity of a security.
type Details struct {
	Symbol string
	Name   string
	Type   models.SecurityType
}

// Security converts the details into a models.Security.
func (d Details) Security() models.Security {
	return models.Security{Symbol: d.Symbol, Name: d.Name, Type: d.Type}
}

// Encode resolves the security behind a symbol/description pair.
// Symbols that do not look like an option pass through unchanged as a Stock.
// A symbol that looks like an option must be confirmed by its description,
// otherwise an *parsererror.OptionMismatchError is returned.
func Encode(symbol, description string) (Details, error) {
	sym := symbolPattern.FindStringSubmatch(symbol)
	if sym == nil {
		return Details{Symbol: symbol, Name: description, Type: models.Stock}, nil
	}
	ticker, symExpiry, symStrike, right := sym[1], sym[2], sym[3], sym[4]

	desc := descriptionPattern.FindStringSubmatch(description)
	if desc == nil {
		return Details{}, mismatch(symbol, description, "description", "symbol looks like an option but description does not")
	}
	kind, underlying, descStrike, descExpiry := desc[1], desc[2], desc[3], desc[4]

	strikeA, err := decimal.NewFromString(symStrike)
	if err != nil {
		return Details{}, mismatch(symbol, description, "strike", fmt.Sprintf("invalid strike %q in symbol", symStrike))
	}
	strikeB, err := decimal.NewFromString(descStrike)
	if err != nil {
		return Details{}, mismatch(symbol, description, "strike", fmt.Sprintf("invalid strike %q in description", descStrike))
	}
	if !strikeA.Equal(strikeB) {
		return Details{}, mismatch(symbol, description, "strike", fmt.Sprintf("%s != %s", symStrike, descStrike))
	}

	expiryA, err := time.Parse(dateutils.DateLayoutUS, symExpiry)
	if err != nil {
		return Details{}, mismatch(symbol, description, "expiration", fmt.Sprintf("invalid expiration %q in symbol", symExpiry))
	}
	expiryB, err := time.Parse(dateutils.DateLayoutUSShort, descExpiry)
	if err != nil {
		return Details{}, mismatch(symbol, description, "expiration", fmt.Sprintf("invalid expiration %q in description", descExpiry))
	}
	if !expiryA.Equal(expiryB) {
		return Details{}, mismatch(symbol, description, "expiration",
			fmt.Sprintf("%s != %s", expiryA.Format(dateutils.DateLayoutUS), expiryB.Format(dateutils.DateLayoutUS)))
	}

	if (kind == "CALL") != (right == "C") {
		return Details{}, mismatch(symbol, description, "right", fmt.Sprintf("%s != %s", kind, right))
	}

	strike, err := encodeStrike(symStrike)
	if err != nil {
		return Details{}, mismatch(symbol, description, "strike", err.Error())
	}

	canonical := fmt.Sprintf("%-*s", tickerWidth, ticker) + expiryA.Format(canonicalDateLayout) + right + strike
	name := fmt.Sprintf("%s : %s - %s %s %s %s",
		kind, strings.TrimSpace(underlying), ticker, expiryA.Format(dateutils.DateLayoutUS), symStrike, right)

	return Details{Symbol: canonical, Name: name, Type: models.Option}, nil
}

// IsOption reports whether the symbol has the shape of a broker option symbol.
func IsOption(symbol string) bool {
	return symbolPattern.MatchString(symbol)
}

// encodeStrike renders a strike as 5 zero-padded dollar digits followed by
// 3 right-padded cent digits: "50.5" → "00050500".
func encodeStrike(strike string) (string, error) {
	m := strikePattern.FindStringSubmatch(strike)
	if m == nil || (m[1] == "" && m[2] == "") {
		return "", fmt.Errorf("cannot encode strike %q", strike)
	}
	dollars, cents := m[1], m[2]
	if len(dollars) > dollarDigits || len(cents) > centDigits {
		return "", fmt.Errorf("strike %q does not fit the symbol width", strike)
	}
	return strings.Repeat("0", dollarDigits-len(dollars)) + dollars +
		cents + strings.Repeat("0", centDigits-len(cents)), nil
}

func mismatch(symbol, description, field, reason string) error {
	return &parsererror.OptionMismatchError{
		Symbol:      symbol,
		Description: description,
		Field:       field,
		Reason:      reason,
	}
}
