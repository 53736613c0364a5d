package schwabparser

import (
	"errors"
	"time"

	"fjacquet/broker-qif/internal/currencyutils"
	"fjacquet/broker-qif/internal/dateutils"
	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/models"
	"fjacquet/broker-qif/internal/optionsymbol"
	"fjacquet/broker-qif/internal/parsererror"
	"fjacquet/broker-qif/internal/symbols"
)

// handler turns one row into zero or more actions.
type handler func(c *classifier, row Row) ([]models.Action, error)

// handlers maps Schwab action labels to their conversion. Labels missing from
// the table go through classifier.fallback.
var handlers = map[string]handler{
	"Buy":             trade(func(t models.Trade) models.Action { return models.Buy{Trade: t} }),
	"Buy to Open":     trade(func(t models.Trade) models.Action { return models.Buy{Trade: t} }),
	"Reinvest Shares": trade(func(t models.Trade) models.Action { return models.Buy{Trade: t} }),

	"Sell":          trade(func(t models.Trade) models.Action { return models.Sell{Trade: t} }),
	"Sell to Close": trade(func(t models.Trade) models.Action { return models.Sell{Trade: t} }),

	"Sell to Open": trade(func(t models.Trade) models.Action { return models.ShortSell{Trade: t} }),
	"Sell Short":   trade(func(t models.Trade) models.Action { return models.ShortSell{Trade: t} }),

	"Buy to Close": trade(func(t models.Trade) models.Action { return models.CoverShort{Trade: t} }),
	"Buy to Cover": trade(func(t models.Trade) models.Action { return models.CoverShort{Trade: t} }),

	"Expired": (*classifier).expired,

	"Margin Interest": (*classifier).marginInterest,

	"Cash Dividend":       income(dividend),
	"Qualified Dividend":  income(dividend),
	"Non-Qualified Div":   income(dividend),
	"Special Dividend":    income(dividend),
	"Pr Yr Cash Div":      income(dividend),
	"Pr Yr Div Reinvest":  income(dividend),
	"Reinvest Dividend":   income(dividend),
	"Short Term Cap Gain": income(func(i models.Income) models.Action { return models.CapGainShort{Income: i} }),
	"Long Term Cap Gain":  income(func(i models.Income) models.Action { return models.CapGainLong{Income: i} }),

	"Spin-off": (*classifier).spinOff,

	"Foreign Tax Paid":   (*classifier).cashOnly,
	"ADR Mgmt Fee":       (*classifier).cashOnly,
	"Cash In Lieu":       (*classifier).cashOnly,
	"MoneyLink Deposit":  (*classifier).cashOnly,
	"MoneyLink Transfer": (*classifier).cashOnly,
	"Wire Funds":         (*classifier).cashOnly,
	"Wire Sent":          (*classifier).cashOnly,
	"Wire Received":      (*classifier).cashOnly,
	"Misc Cash Entry":    (*classifier).cashOnly,
	"Service Fee":        (*classifier).cashOnly,
	"Journal":            (*classifier).cashOnly,
	"Pr Yr Cash Div Adj": (*classifier).cashOnly,
	"Bank Interest":      (*classifier).cashOnly,
	"Credit Interest":    (*classifier).cashOnly,

	"Stock Split": skip("stock split not handled: the export carries the number of shares added " +
		"but the ledger records the split ratio, which cannot be derived without the prior position; enter it by hand"),
	"Name Change":      skip("name change not handled; enter it by hand"),
	"Journaled Shares": skip("share journal between accounts not handled; enter it by hand"),
}

func dividend(i models.Income) models.Action { return models.Dividend{Income: i} }

// classifier holds the state of one Parse call.
type classifier struct {
	*Parser
	registry *symbols.Registry
	rowNum   int
	notices  int
}

func (c *classifier) classify(rowNum int, row Row) ([]models.Action, error) {
	c.rowNum = rowNum
	if h, ok := handlers[row.Action]; ok {
		return h(c, row)
	}
	return c.fallback(row)
}

// fallback handles labels outside the table. Rows without quantity, price and
// fees are plain cash movements; anything else cannot be guessed.
func (c *classifier) fallback(row Row) ([]models.Action, error) {
	if !currencyutils.AllBlank(row.Quantity, row.Price, row.Fees) {
		return nil, &parsererror.UnsupportedActionError{Parser: Name, Label: row.Action, Row: c.rowNum}
	}
	c.notice("unrecognized action without quantity, price or fees; entered as cash only", row)
	return c.cashOnly(row)
}

func (c *classifier) notice(reason string, row Row) {
	c.notices++
	c.Notice(reason,
		logging.F(logging.FieldRow, c.rowNum),
		logging.F(logging.FieldLabel, row.Action),
		logging.F(logging.FieldDate, row.Date),
		logging.F(logging.FieldSymbol, row.Symbol),
		logging.F(logging.FieldDescription, row.Description),
		logging.F(logging.FieldQuantity, row.Quantity),
		logging.F(logging.FieldPrice, row.Price),
		logging.F(logging.FieldFees, row.Fees),
		logging.F(logging.FieldAmount, row.Amount))
}

func (c *classifier) date(row Row) (time.Time, error) {
	d, err := dateutils.ParseDate(row.Date)
	if err != nil {
		return time.Time{}, &parsererror.ParseError{Parser: Name, Field: "Date", Value: row.Date, Err: err}
	}
	return d, nil
}

// security resolves and registers the security a row refers to.
func (c *classifier) security(row Row) (optionsymbol.Details, error) {
	details, err := optionsymbol.Encode(row.Symbol, row.Description)
	if err != nil {
		return optionsymbol.Details{}, err
	}
	c.registry.EnterIfNotFound(details.Symbol, details.Name, details.Type)
	return details, nil
}

func trade(wrap func(models.Trade) models.Action) handler {
	return func(c *classifier, row Row) ([]models.Action, error) {
		if row.Symbol == "" {
			return nil, &parsererror.ParseError{Parser: Name, Field: "Symbol", Value: row.Symbol,
				Err: errors.New("trade without symbol")}
		}
		date, err := c.date(row)
		if err != nil {
			return nil, err
		}
		details, err := c.security(row)
		if err != nil {
			return nil, err
		}

		quantity := row.Quantity
		if details.Type == models.Option {
			quantity += models.OptionMultiplier
		}
		return []models.Action{wrap(models.Trade{
			Date:     date,
			Symbol:   details.Symbol,
			Price:    row.Price,
			Quantity: quantity,
			Amount:   currencyutils.Magnitude(row.Amount),
			Fees:     row.Fees,
		})}, nil
	}
}

// expired closes an option position at no cost, in the direction opposite to
// the quantity Schwab reports.
func (c *classifier) expired(row Row) ([]models.Action, error) {
	date, err := c.date(row)
	if err != nil {
		return nil, err
	}
	details, err := optionsymbol.Encode(row.Symbol, row.Description)
	if err != nil {
		return nil, err
	}
	if details.Type != models.Option {
		return nil, &parsererror.ParseError{Parser: Name, Field: "Symbol", Value: row.Symbol,
			Err: errors.New("expiration of a security that is not an option")}
	}
	quantity, err := currencyutils.NegateQuantity(row.Quantity)
	if err != nil {
		return nil, &parsererror.ParseError{Parser: Name, Field: "Quantity", Value: row.Quantity, Err: err}
	}
	c.registry.EnterIfNotFound(details.Symbol, details.Name, details.Type)

	return []models.Action{models.Sell{Trade: models.Trade{
		Date:     date,
		Symbol:   details.Symbol,
		Quantity: quantity + models.OptionMultiplier,
	}}}, nil
}

// marginInterest reports the charge as a positive expense.
func (c *classifier) marginInterest(row Row) ([]models.Action, error) {
	date, err := c.date(row)
	if err != nil {
		return nil, err
	}
	return []models.Action{models.MarginInterest{
		Date:   date,
		Memo:   row.Description,
		Amount: currencyutils.Magnitude(row.Amount),
	}}, nil
}

func income(wrap func(models.Income) models.Action) handler {
	return func(c *classifier, row Row) ([]models.Action, error) {
		if row.Symbol == "" {
			c.notice("distribution without symbol; entered as cash only", row)
			return c.cashOnly(row)
		}
		date, err := c.date(row)
		if err != nil {
			return nil, err
		}
		details, err := c.security(row)
		if err != nil {
			return nil, err
		}
		return []models.Action{wrap(models.Income{
			Date:   date,
			Symbol: details.Symbol,
			Amount: row.Amount,
		})}, nil
	}
}

// spinOff adds the received shares of the new company.
func (c *classifier) spinOff(row Row) ([]models.Action, error) {
	date, err := c.date(row)
	if err != nil {
		return nil, err
	}
	quantity, err := currencyutils.ParseQuantity(row.Quantity)
	if err != nil {
		return nil, &parsererror.ParseError{Parser: Name, Field: "Quantity", Value: row.Quantity, Err: err}
	}
	details, err := c.security(row)
	if err != nil {
		return nil, err
	}
	return []models.Action{models.SharesIn{
		Date:     date,
		Symbol:   details.Symbol,
		Quantity: quantity,
	}}, nil
}

func (c *classifier) cashOnly(row Row) ([]models.Action, error) {
	date, err := c.date(row)
	if err != nil {
		return nil, err
	}
	return []models.Action{models.CashOnly{
		Date:   date,
		Payee:  row.Description,
		Memo:   row.Description,
		Amount: row.Amount,
	}}, nil
}

// skip reports a row that is recognized but cannot be converted.
func skip(reason string) handler {
	return func(c *classifier, row Row) ([]models.Action, error) {
		c.notice(reason, row)
		return nil, nil
	}
}
