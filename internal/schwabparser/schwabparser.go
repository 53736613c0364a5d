// Package schwabparser converts Charles Schwab brokerage CSV exports into ledger actions.
package schwabparser

import (
	"fmt"
	"io"
	"slices"

	"fjacquet/broker-qif/internal/common"
	"fjacquet/broker-qif/internal/currencyutils"
	"fjacquet/broker-qif/internal/dateutils"
	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/models"
	"fjacquet/broker-qif/internal/parser"
	"fjacquet/broker-qif/internal/symbols"
)

// Header is the literal first line of a Schwab transaction export.
const Header = `"Date","Action","Symbol","Description","Quantity","Price","Fees & Comm","Amount"`

// Name identifies the parser in logs and errors.
const Name = "schwab"

// Row represents a single row of a Schwab CSV export.
type Row struct {
	Date        string `csv:"Date"`
	Action      string `csv:"Action"`
	Symbol      string `csv:"Symbol"`
	Description string `csv:"Description"`
	Quantity    string `csv:"Quantity"`
	Price       string `csv:"Price"`
	Fees        string `csv:"Fees & Comm"`
	Amount      string `csv:"Amount"`
}

// Parser converts Schwab rows into ledger actions.
type Parser struct {
	parser.BaseParser
}

// NewParser creates a Schwab parser logging through logger.
func NewParser(logger logging.Logger) *Parser {
	return &Parser{
		BaseParser: parser.NewBaseParser(Name, logger),
	}
}

// AccountType returns the ledger account type of Schwab exports.
func (p *Parser) AccountType() models.AccountType {
	return models.AccountInvest
}

// Parse decodes a Schwab export positioned at its header line and classifies
// every row, oldest first.
func (p *Parser) Parse(r io.Reader, registry *symbols.Registry) (parser.Result, error) {
	if registry == nil {
		registry = symbols.NewRegistry(p.GetLogger())
	}

	rows, err := common.DecodeRows(r, cleanRow, p.GetLogger())
	if err != nil {
		return parser.Result{}, fmt.Errorf("error decoding %s export: %w", Name, err)
	}
	// Schwab lists the newest transaction first.
	slices.Reverse(rows)

	c := &classifier{Parser: p, registry: registry}
	var actions []models.Action
	for i, row := range rows {
		out, err := c.classify(len(rows)-i, row)
		if err != nil {
			return parser.Result{}, err
		}
		actions = append(actions, out...)
	}

	return p.Done(parser.Result{Actions: actions, Rows: len(rows), Notices: c.notices}), nil
}

// cleanRow strips the currency marker from the money columns. The summary line
// Schwab appends to its exports has no action and no parseable date; it is
// rejected so that it is taken as the footer.
func cleanRow(row *Row) error {
	if row.Action == "" {
		if _, err := dateutils.ParseDate(row.Date); err != nil {
			return fmt.Errorf("summary row %q", row.Date)
		}
	}
	row.Price = currencyutils.StripCurrencyMarker(row.Price)
	row.Fees = currencyutils.StripCurrencyMarker(row.Fees)
	row.Amount = currencyutils.StripCurrencyMarker(row.Amount)
	return nil
}
