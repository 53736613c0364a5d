package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActionKind is the QIF `N` value of an investment action.
type ActionKind string

const (
	KindBuy            ActionKind = "Buy"
	KindSell           ActionKind = "Sell"
	KindShortSell      ActionKind = "ShtSell"
	KindCoverShort     ActionKind = "CvrShrt"
	KindMarginInterest ActionKind = "MargInt"
	KindDividend       ActionKind = "Div"
	KindCapGainShort   ActionKind = "CGShort"
	KindCapGainLong    ActionKind = "CGLong"
	KindSharesIn       ActionKind = "ShrsIn"
	KindCashOnly       ActionKind = ""
)

// Trade holds the normalized fields of a priced buy, sell, short or cover.
// Amount is a non-negative magnitude; the sign is implied by the action.
type Trade struct {
	Date     time.Time
	Symbol   string
	Price    string
	Quantity string
	Amount   string
	Fees     string
}

// Action is one ledger action produced by a classifier. The set of variants is closed.
type Action interface {
	Kind() ActionKind
	When() time.Time
	isAction()
}

// SecurityAction is an Action that refers to a registered security.
type SecurityAction interface {
	Action
	SecuritySymbol() string
}

// Buy opens or adds to a long position.
type Buy struct{ Trade }

// Sell closes or reduces a long position, including an option expiring worthless.
type Sell struct{ Trade }

// ShortSell opens a short position.
type ShortSell struct{ Trade }

// CoverShort closes a short position.
type CoverShort struct{ Trade }

func (Buy) Kind() ActionKind        { return KindBuy }
func (Sell) Kind() ActionKind       { return KindSell }
func (ShortSell) Kind() ActionKind  { return KindShortSell }
func (CoverShort) Kind() ActionKind { return KindCoverShort }

func (t Trade) When() time.Time        { return t.Date }
func (t Trade) SecuritySymbol() string { return t.Symbol }

func (Buy) isAction()        {}
func (Sell) isAction()       {}
func (ShortSell) isAction()  {}
func (CoverShort) isAction() {}

// MarginInterest is a financing charge. Amount is a positive expense magnitude.
type MarginInterest struct {
	Date   time.Time
	Memo   string
	Amount string
}

func (MarginInterest) Kind() ActionKind  { return KindMarginInterest }
func (m MarginInterest) When() time.Time { return m.Date }
func (MarginInterest) isAction()         {}

// Income is the shared payload of dividends and capital-gain distributions.
type Income struct {
	Date   time.Time
	Symbol string
	Amount string
}

func (i Income) When() time.Time        { return i.Date }
func (i Income) SecuritySymbol() string { return i.Symbol }

// Dividend is a cash dividend paid on a security.
type Dividend struct{ Income }

// CapGainShort is a short-term capital gain distribution.
type CapGainShort struct{ Income }

// CapGainLong is a long-term capital gain distribution.
type CapGainLong struct{ Income }

func (Dividend) Kind() ActionKind     { return KindDividend }
func (CapGainShort) Kind() ActionKind { return KindCapGainShort }
func (CapGainLong) Kind() ActionKind  { return KindCapGainLong }

func (Dividend) isAction()     {}
func (CapGainShort) isAction() {}
func (CapGainLong) isAction()  {}

// SharesIn records shares received without cash, such as a spin-off.
type SharesIn struct {
	Date     time.Time
	Symbol   string
	Quantity decimal.Decimal
}

func (SharesIn) Kind() ActionKind         { return KindSharesIn }
func (s SharesIn) When() time.Time        { return s.Date }
func (s SharesIn) SecuritySymbol() string { return s.Symbol }
func (SharesIn) isAction()                {}

// CashOnly is a plain cash movement. It is the only action that may be routed to a
// linked cash ledger. Memo and Category are omitted from the record when empty.
type CashOnly struct {
	Date     time.Time
	Payee    string
	Memo     string
	Category string
	Amount   string
}

func (CashOnly) Kind() ActionKind  { return KindCashOnly }
func (c CashOnly) When() time.Time { return c.Date }
func (CashOnly) isAction()         {}

// IsLinkable reports whether an action may be routed to a linked cash ledger.
func IsLinkable(a Action) bool {
	_, ok := a.(CashOnly)
	return ok
}
