// Package sofiparser converts SoFi banking CSV exports into cash ledger actions.
package sofiparser

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
	"fjacquet/broker-qif/internal/parsererror"
	"fjacquet/broker-qif/internal/symbols"
)

// Header is the literal first line of a SoFi export.
const Header = "Date,Description,Type,Amount,Current balance,Status"

// Name identifies the parser in logs and errors.
const Name = "sofi"

// Row represents a single row of a SoFi CSV export.
type Row struct {
	Date           string `csv:"Date"`
	Description    string `csv:"Description"`
	Type           string `csv:"Type"`
	Amount         string `csv:"Amount"`
	CurrentBalance string `csv:"Current balance"`
	Status         string `csv:"Status"`
}

// cashTypes are the transaction types that map directly to a cash movement.
var cashTypes = map[string]bool{
	"Withdrawal": true,
	"Deposit":    true,
}

// Parser converts SoFi rows into cash-only actions.
type Parser struct {
	parser.BaseParser
}

// NewParser creates a SoFi parser logging through logger.
func NewParser(logger logging.Logger) *Parser {
	return &Parser{
		BaseParser: parser.NewBaseParser(Name, logger),
	}
}

// AccountType returns the ledger account type of SoFi exports.
func (p *Parser) AccountType() models.AccountType {
	return models.AccountBank
}

// Parse decodes a SoFi export positioned at its header line. SoFi rows carry no
// securities, so registry is not used.
func (p *Parser) Parse(r io.Reader, _ *symbols.Registry) (parser.Result, error) {
	rows, err := common.DecodeRows(r, cleanRow, p.GetLogger())
	if err != nil {
		return parser.Result{}, fmt.Errorf("error decoding %s export: %w", Name, err)
	}
	slices.Reverse(rows)

	var actions []models.Action
	notices := 0
	for i, row := range rows {
		rowNum := len(rows) - i
		date, err := dateutils.ParseDate(row.Date)
		if err != nil {
			return parser.Result{}, &parsererror.ParseError{Parser: Name, Field: "Date", Value: row.Date, Err: err}
		}

		if !cashTypes[row.Type] {
			notices++
			p.Notice("unrecognized transaction type; entered as cash only",
				logging.F(logging.FieldRow, rowNum),
				logging.F(logging.FieldLabel, row.Type),
				logging.F(logging.FieldDate, row.Date),
				logging.F(logging.FieldDescription, row.Description),
				logging.F(logging.FieldAmount, row.Amount))
		}

		actions = append(actions, models.CashOnly{
			Date:   date,
			Payee:  row.Description,
			Memo:   row.Description,
			Amount: row.Amount,
		})
	}

	return p.Done(parser.Result{Actions: actions, Rows: len(rows), Notices: notices}), nil
}

func cleanRow(row *Row) error {
	row.Amount = currencyutils.StripCurrencyMarker(row.Amount)
	row.CurrentBalance = currencyutils.StripCurrencyMarker(row.CurrentBalance)
	return nil
}
