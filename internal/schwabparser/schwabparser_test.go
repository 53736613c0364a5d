package schwabparser

import (
	"errors"
	"strings"
	"testing"
	"time"

	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/models"
	"fjacquet/broker-qif/internal/parsererror"
	"fjacquet/broker-qif/internal/symbols"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const footer = `"Transactions Total","","","","","","-$1,234.56"`

func export(rows ...string) string {
	return Header + "\n" + strings.Join(rows, "\n") + "\n" + footer + "\n"
}

func parse(t *testing.T, input string) ([]models.Action, *symbols.Registry, *logging.MockLogger, int) {
	t.Helper()
	logger := logging.NewMockLogger()
	reg := symbols.NewRegistry(logger)

	res, err := NewParser(logger).Parse(strings.NewReader(input), reg)
	require.NoError(t, err)
	return res.Actions, reg, logger, res.Notices
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse_Buy(t *testing.T) {
	actions, reg, _, _ := parse(t, export(
		`"01/03/2023","Buy","XYZ","XYZ CORP","10","$50.00","","-$500.00"`,
	))

	require.Len(t, actions, 1)
	assert.Equal(t, models.Buy{Trade: models.Trade{
		Date:     date(2023, time.January, 3),
		Symbol:   "XYZ",
		Price:    "50.00",
		Quantity: "10",
		Amount:   "500.00",
		Fees:     "",
	}}, actions[0])

	sec, err := reg.Lookup("XYZ")
	require.NoError(t, err)
	assert.Equal(t, "XYZ CORP", sec.Name)
	assert.Equal(t, models.Stock, sec.Type)
}

func TestParse_TradeBuckets(t *testing.T) {
	tests := []struct {
		label string
		kind  models.ActionKind
	}{
		{"Buy to Open", models.KindBuy},
		{"Reinvest Shares", models.KindBuy},
		{"Sell", models.KindSell},
		{"Sell to Close", models.KindSell},
		{"Sell to Open", models.KindShortSell},
		{"Sell Short", models.KindShortSell},
		{"Buy to Close", models.KindCoverShort},
		{"Buy to Cover", models.KindCoverShort},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			actions, _, _, _ := parse(t, export(
				`"01/03/2023","`+tt.label+`","XYZ","XYZ CORP","10","$50.00","$0.65","$499.35"`,
			))
			require.Len(t, actions, 1)
			assert.Equal(t, tt.kind, actions[0].Kind())
		})
	}
}

func TestParse_OptionTrade(t *testing.T) {
	actions, reg, _, _ := parse(t, export(
		`"02/01/2023","Sell to Open","XYZ 01/20/2023 50.00 C","CALL XYZ CORP $50 EXP 01/20/23","2","$1.25","$1.32","$248.68"`,
	))

	require.Len(t, actions, 1)
	short, ok := actions[0].(models.ShortSell)
	require.True(t, ok)
	assert.Equal(t, "XYZ   230120C00050000", short.Symbol)
	assert.Equal(t, "200", short.Quantity)
	assert.Equal(t, "1.32", short.Fees)
	assert.Equal(t, "248.68", short.Amount)

	sec, err := reg.Lookup(short.Symbol)
	require.NoError(t, err)
	assert.Equal(t, models.Option, sec.Type)
	assert.Equal(t, "CALL : XYZ CORP - XYZ 01/20/2023 50.00 C", sec.Name)
}

func TestParse_Expired(t *testing.T) {
	actions, _, _, _ := parse(t, export(
		`"01/23/2023","Expired","XYZ 01/20/2023 50.00 C","CALL XYZ CORP $50 EXP 01/20/23","-2","","",""`,
	))

	require.Len(t, actions, 1)
	sell, ok := actions[0].(models.Sell)
	require.True(t, ok)
	assert.Equal(t, "200", sell.Quantity)
	assert.Empty(t, sell.Price)
	assert.Empty(t, sell.Amount)
	assert.Empty(t, sell.Fees)
}

func TestParse_ExpiredStockIsFatal(t *testing.T) {
	_, err := NewParser(logging.NewMockLogger()).Parse(strings.NewReader(export(
		`"01/23/2023","Expired","XYZ","XYZ CORP","10","","",""`,
	)), symbols.NewRegistry(logging.NewMockLogger()))

	var parseErr *parsererror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "Symbol", parseErr.Field)
}

func TestParse_MarginInterest(t *testing.T) {
	actions, reg, _, _ := parse(t, export(
		`"01/16/2023","Margin Interest","","SCHWAB1 INT 12/14-01/12","","","","-$12.34"`,
	))

	require.Len(t, actions, 1)
	assert.Equal(t, models.MarginInterest{
		Date:   date(2023, time.January, 16),
		Memo:   "SCHWAB1 INT 12/14-01/12",
		Amount: "12.34",
	}, actions[0])
	assert.Equal(t, 0, reg.Len())
}

func TestParse_Income(t *testing.T) {
	actions, reg, _, _ := parse(t, export(
		`"03/01/2023","Long Term Cap Gain","ABC","ABC FUND","","","","$3.00"`,
		`"03/01/2023","Short Term Cap Gain","ABC","ABC FUND","","","","$2.00"`,
		`"02/15/2023","Pr Yr Cash Div","XYZ","XYZ CORP","","","","$1.00"`,
		`"02/15/2023","Qualified Dividend","XYZ","XYZ CORP","","","","$4.50"`,
	))

	require.Len(t, actions, 4)
	assert.Equal(t, models.Dividend{Income: models.Income{Date: date(2023, time.February, 15), Symbol: "XYZ", Amount: "4.50"}}, actions[0])
	assert.Equal(t, models.KindDividend, actions[1].Kind())
	assert.Equal(t, models.KindCapGainShort, actions[2].Kind())
	assert.Equal(t, models.KindCapGainLong, actions[3].Kind())
	assert.Equal(t, 2, reg.Len())
}

func TestParse_DividendWithoutSymbolDegrades(t *testing.T) {
	actions, reg, logger, notices := parse(t, export(
		`"02/15/2023","Cash Dividend","","SWEEP FUND","","","","$0.12"`,
	))

	require.Len(t, actions, 1)
	assert.Equal(t, models.KindCashOnly, actions[0].Kind())
	assert.Equal(t, 1, notices)
	assert.Len(t, logger.GetEntriesByLevel("WARN"), 1)
	assert.Equal(t, 0, reg.Len())
}

func TestParse_SpinOff(t *testing.T) {
	actions, reg, _, _ := parse(t, export(
		`"04/03/2023","Spin-off","NEWCO","NEWCO INC","25","","",""`,
	))

	require.Len(t, actions, 1)
	in, ok := actions[0].(models.SharesIn)
	require.True(t, ok)
	assert.Equal(t, "NEWCO", in.Symbol)
	assert.True(t, in.Quantity.Equal(decimal.NewFromInt(25)))

	p, ok := reg.Provenance("NEWCO")
	require.True(t, ok)
	assert.Equal(t, symbols.New, p)
}

func TestParse_CashOnly(t *testing.T) {
	actions, _, _, notices := parse(t, export(
		`"01/05/2023","MoneyLink Transfer","","Tfr BANK OF AMERICA","","","","$1,000.00"`,
	))

	require.Len(t, actions, 1)
	assert.Equal(t, models.CashOnly{
		Date:   date(2023, time.January, 5),
		Payee:  "Tfr BANK OF AMERICA",
		Memo:   "Tfr BANK OF AMERICA",
		Amount: "1,000.00",
	}, actions[0])
	assert.Zero(t, notices)
}

func TestParse_BenignLabels(t *testing.T) {
	for _, label := range []string{"Stock Split", "Name Change", "Journaled Shares"} {
		t.Run(label, func(t *testing.T) {
			actions, _, logger, notices := parse(t, export(
				`"05/01/2023","`+label+`","XYZ","XYZ CORP","10","","",""`,
			))

			assert.Empty(t, actions)
			assert.Equal(t, 1, notices)
			warnings := logger.GetEntriesByLevel("WARN")
			require.Len(t, warnings, 1)
			got, _ := warnings[0].FieldValue(logging.FieldLabel)
			assert.Equal(t, label, got)
		})
	}
}

func TestParse_UnknownLabel(t *testing.T) {
	t.Run("cash only fallback", func(t *testing.T) {
		actions, _, _, notices := parse(t, export(
			`"05/01/2023","Brand New Thing","","SOMETHING","","","","$5.00"`,
		))
		require.Len(t, actions, 1)
		assert.Equal(t, models.KindCashOnly, actions[0].Kind())
		assert.Equal(t, 1, notices)
	})

	t.Run("priced row is fatal", func(t *testing.T) {
		_, err := NewParser(logging.NewMockLogger()).Parse(strings.NewReader(export(
			`"05/02/2023","Buy","XYZ","XYZ CORP","1","$1.00","","-$1.00"`,
			`"05/01/2023","Brand New Thing","XYZ","XYZ CORP","10","$1.00","","$10.00"`,
		)), symbols.NewRegistry(logging.NewMockLogger()))

		var unsupported *parsererror.UnsupportedActionError
		require.True(t, errors.As(err, &unsupported))
		assert.Equal(t, "Brand New Thing", unsupported.Label)
		assert.Equal(t, 2, unsupported.Row)
	})
}

func TestParse_OldestFirst(t *testing.T) {
	actions, _, _, _ := parse(t, export(
		`"01/03/2023","Sell","XYZ","XYZ CORP","10","$55.00","","$550.00"`,
		`"01/02/2023","Buy","XYZ","XYZ CORP","10","$50.00","","-$500.00"`,
		`"01/01/2023","MoneyLink Deposit","","DEPOSIT","","","","$500.00"`,
	))

	require.Len(t, actions, 3)
	assert.Equal(t, models.KindCashOnly, actions[0].Kind())
	assert.Equal(t, models.KindBuy, actions[1].Kind())
	assert.Equal(t, models.KindSell, actions[2].Kind())
	for i := 1; i < len(actions); i++ {
		assert.False(t, actions[i].When().Before(actions[i-1].When()))
	}
}

func TestParse_AsOfDate(t *testing.T) {
	actions, _, _, _ := parse(t, export(
		`"03/08/2023 as of 03/06/2023","Qualified Dividend","XYZ","XYZ CORP","","","","$1.00"`,
	))

	require.Len(t, actions, 1)
	assert.Equal(t, date(2023, time.March, 6), actions[0].When())
}

func TestParse_OptionMismatchIsFatal(t *testing.T) {
	_, err := NewParser(logging.NewMockLogger()).Parse(strings.NewReader(export(
		`"02/01/2023","Buy to Open","XYZ 01/20/2023 50.00 C","PUT XYZ CORP $50 EXP 01/20/23","1","$1.00","","-$100.00"`,
	)), symbols.NewRegistry(logging.NewMockLogger()))

	var mismatch *parsererror.OptionMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "right", mismatch.Field)
}

func TestParse_BadDate(t *testing.T) {
	_, err := NewParser(logging.NewMockLogger()).Parse(strings.NewReader(export(
		`"2023/13/45","Buy","XYZ","XYZ CORP","1","$1.00","","-$1.00"`,
	)), symbols.NewRegistry(logging.NewMockLogger()))

	var parseErr *parsererror.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "Date", parseErr.Field)
}

func TestParse_DataAfterFooter(t *testing.T) {
	input := Header + "\n" +
		`"01/02/2023","Buy","XYZ","XYZ CORP","10","$50.00","","-$500.00"` + "\n" +
		footer + "\n" +
		`"01/01/2023","Buy","XYZ","XYZ CORP","10","$50.00","","-$500.00"` + "\n"

	_, err := NewParser(logging.NewMockLogger()).Parse(strings.NewReader(input), symbols.NewRegistry(logging.NewMockLogger()))
	var resumed *parsererror.FooterResumedError
	assert.True(t, errors.As(err, &resumed))
}

func TestCleanRow(t *testing.T) {
	row := Row{Date: "01/02/2023", Action: "Buy", Price: "$1.00", Fees: "$0.65", Amount: "-$1.65"}
	require.NoError(t, cleanRow(&row))
	assert.Equal(t, "1.00", row.Price)
	assert.Equal(t, "0.65", row.Fees)
	assert.Equal(t, "-1.65", row.Amount)

	summary := Row{Date: "Transactions Total", Amount: "$1.00"}
	assert.Error(t, cleanRow(&summary))
}

func TestHandlerTableCoversDocumentedLabels(t *testing.T) {
	for _, label := range []string{
		"Foreign Tax Paid", "ADR Mgmt Fee", "Cash In Lieu", "MoneyLink Deposit", "Wire Funds",
		"Misc Cash Entry", "Service Fee", "Journal", "Pr Yr Cash Div Adj", "Bank Interest",
		"Non-Qualified Div", "Special Dividend", "Pr Yr Div Reinvest", "Reinvest Dividend",
	} {
		_, ok := handlers[label]
		assert.True(t, ok, label)
	}
}
