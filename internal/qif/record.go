// Package qif serializes ledger actions and securities into QIF records.
package qif

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/broker-qif/internal/dateutils"
	"fjacquet/broker-qif/internal/models"
)

// SymbolLookup resolves a symbol to its registered security.
type SymbolLookup interface {
	Lookup(symbol string) (models.Security, error)
}

// record accumulates the lines of one QIF record.
type record struct {
	b strings.Builder
}

func (r *record) line(prefix, value string) {
	r.b.WriteString(prefix)
	r.b.WriteString(value)
	r.b.WriteByte('\n')
}

func (r *record) kind(k models.ActionKind, linkedAccount string) {
	suffix := ""
	if linkedAccount != "" {
		suffix = "X"
	}
	r.line("N", string(k)+suffix)
}

func (r *record) transfer(linkedAccount string) {
	if linkedAccount != "" {
		r.line("L", "["+linkedAccount+"]")
	}
}

func (r *record) end(w io.Writer) error {
	r.b.WriteString("^\n")
	_, err := io.WriteString(w, r.b.String())
	return err
}

// WriteAction writes the QIF record of a single action. linkedAccount is the
// account that funds investment actions; it is empty when none is configured.
func WriteAction(w io.Writer, action models.Action, linkedAccount string, lookup SymbolLookup) error {
	var r record
	r.line("D", dateutils.FormatQIF(action.When()))

	switch a := action.(type) {
	case models.Buy:
		return writeTrade(w, &r, a.Kind(), a.Trade, linkedAccount, lookup)
	case models.Sell:
		return writeTrade(w, &r, a.Kind(), a.Trade, linkedAccount, lookup)
	case models.ShortSell:
		return writeTrade(w, &r, a.Kind(), a.Trade, linkedAccount, lookup)
	case models.CoverShort:
		return writeTrade(w, &r, a.Kind(), a.Trade, linkedAccount, lookup)

	case models.MarginInterest:
		r.kind(a.Kind(), linkedAccount)
		r.line("U", a.Amount)
		r.line("T", a.Amount)
		r.line("M", a.Memo)
		r.transfer(linkedAccount)
		r.line("$", a.Amount)

	case models.Dividend:
		return writeIncome(w, &r, a.Kind(), a.Income, linkedAccount, lookup)
	case models.CapGainShort:
		return writeIncome(w, &r, a.Kind(), a.Income, linkedAccount, lookup)
	case models.CapGainLong:
		return writeIncome(w, &r, a.Kind(), a.Income, linkedAccount, lookup)

	case models.SharesIn:
		sec, err := lookup.Lookup(a.Symbol)
		if err != nil {
			return err
		}
		r.line("N", string(a.Kind()))
		r.line("Y", sec.Name)
		r.line("Q", a.Quantity.String())
		r.line("M", sec.Name)

	case models.CashOnly:
		r.line("U", a.Amount)
		r.line("T", a.Amount)
		r.line("P", a.Payee)
		if a.Memo != "" {
			r.line("M", a.Memo)
		}
		if a.Category != "" {
			r.line("L", a.Category)
		}

	default:
		return fmt.Errorf("unsupported action type %T", action)
	}
	return r.end(w)
}

func writeTrade(w io.Writer, r *record, kind models.ActionKind, t models.Trade, linkedAccount string, lookup SymbolLookup) error {
	sec, err := lookup.Lookup(t.Symbol)
	if err != nil {
		return err
	}
	r.kind(kind, linkedAccount)
	r.line("Y", sec.Name)
	r.line("I", t.Price)
	r.line("Q", t.Quantity)
	r.line("U", t.Amount)
	r.line("T", t.Amount)
	r.line("M", sec.Name)
	r.line("O", t.Fees)
	r.transfer(linkedAccount)
	r.line("$", t.Amount)
	return r.end(w)
}

func writeIncome(w io.Writer, r *record, kind models.ActionKind, i models.Income, linkedAccount string, lookup SymbolLookup) error {
	sec, err := lookup.Lookup(i.Symbol)
	if err != nil {
		return err
	}
	r.kind(kind, linkedAccount)
	r.line("Y", sec.Name)
	r.line("U", i.Amount)
	r.line("T", i.Amount)
	r.line("M", sec.Name)
	r.transfer(linkedAccount)
	r.line("$", i.Amount)
	return r.end(w)
}

// WriteSecurity writes a `!Type:Security` block.
func WriteSecurity(w io.Writer, sec models.Security) error {
	var r record
	r.line("", models.HeaderSecurity)
	r.line("N", sec.Name)
	r.line("S", sec.Symbol)
	r.line("T", sec.Type.String())
	return r.end(w)
}
