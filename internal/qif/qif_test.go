package qif

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/broker-qif/internal/fileutils"
	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/models"
	"fjacquet/broker-qif/internal/parsererror"
	"fjacquet/broker-qif/internal/symbols"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2023, time.January, 3, 0, 0, 0, 0, time.UTC)

func testRegistry() *symbols.Registry {
	reg := symbols.NewRegistry(logging.NewMockLogger())
	reg.EnterIfNotFound("XYZ", "XYZ CORP", models.Stock)
	reg.EnterIfNotFound("ABC", "ABC FUND", models.MutualFund)
	return reg
}

func lines(s ...string) string {
	return strings.Join(s, "\n") + "\n"
}

func TestWriteAction(t *testing.T) {
	trade := models.Trade{Date: day, Symbol: "XYZ", Price: "50.00", Quantity: "10", Amount: "500.00", Fees: "0.65"}

	tests := []struct {
		name   string
		action models.Action
		linked string
		want   string
	}{
		{
			name:   "buy with linked account",
			action: models.Buy{Trade: trade},
			linked: "Brokerage Cash",
			want: lines("D1/3'23", "NBuyX", "YXYZ CORP", "I50.00", "Q10", "U500.00", "T500.00",
				"MXYZ CORP", "O0.65", "L[Brokerage Cash]", "$500.00", "^"),
		},
		{
			name:   "short sell without linked account",
			action: models.ShortSell{Trade: trade},
			want: lines("D1/3'23", "NShtSell", "YXYZ CORP", "I50.00", "Q10", "U500.00", "T500.00",
				"MXYZ CORP", "O0.65", "$500.00", "^"),
		},
		{
			name:   "margin interest",
			action: models.MarginInterest{Date: day, Memo: "SCHWAB1 INT", Amount: "12.34"},
			linked: "Cash",
			want:   lines("D1/3'23", "NMargIntX", "U12.34", "T12.34", "MSCHWAB1 INT", "L[Cash]", "$12.34", "^"),
		},
		{
			name:   "dividend",
			action: models.Dividend{Income: models.Income{Date: day, Symbol: "XYZ", Amount: "4.50"}},
			want:   lines("D1/3'23", "NDiv", "YXYZ CORP", "U4.50", "T4.50", "MXYZ CORP", "$4.50", "^"),
		},
		{
			name:   "long term capital gain",
			action: models.CapGainLong{Income: models.Income{Date: day, Symbol: "ABC", Amount: "3.00"}},
			linked: "Cash",
			want:   lines("D1/3'23", "NCGLongX", "YABC FUND", "U3.00", "T3.00", "MABC FUND", "L[Cash]", "$3.00", "^"),
		},
		{
			name:   "shares in ignores linked account",
			action: models.SharesIn{Date: day, Symbol: "XYZ", Quantity: decimal.NewFromInt(25)},
			linked: "Cash",
			want:   lines("D1/3'23", "NShrsIn", "YXYZ CORP", "Q25", "MXYZ CORP", "^"),
		},
		{
			name:   "cash only",
			action: models.CashOnly{Date: day, Payee: "Wire", Memo: "Wire in", Category: "Transfers", Amount: "100.00"},
			want:   lines("D1/3'23", "U100.00", "T100.00", "PWire", "MWire in", "LTransfers", "^"),
		},
		{
			name:   "cash only without memo or category",
			action: models.CashOnly{Date: day, Payee: "Wire", Amount: "-5.00"},
			want:   lines("D1/3'23", "U-5.00", "T-5.00", "PWire", "^"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteAction(&buf, tt.action, tt.linked, testRegistry()))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteAction_TwoDigitYear(t *testing.T) {
	var buf bytes.Buffer
	a := models.CashOnly{Date: time.Date(2005, time.December, 31, 0, 0, 0, 0, time.UTC), Payee: "x", Amount: "1"}
	require.NoError(t, WriteAction(&buf, a, "", testRegistry()))
	assert.True(t, strings.HasPrefix(buf.String(), "D12/31'05\n"))
}

func TestWriteAction_UnregisteredSymbol(t *testing.T) {
	var buf bytes.Buffer
	err := WriteAction(&buf, models.Sell{Trade: models.Trade{Date: day, Symbol: "NOPE"}}, "", testRegistry())

	var symErr *parsererror.UnregisteredSymbolError
	require.True(t, errors.As(err, &symErr))
	assert.Empty(t, buf.String())
}

func TestWriteSecurity(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSecurity(&buf, models.Security{Symbol: "ABC", Name: "ABC FUND", Type: models.MutualFund}))
	assert.Equal(t, lines("!Type:Security", "NABC FUND", "SABC", "TMutual Fund", "^"), buf.String())
}

func testPaths(t *testing.T) fileutils.OutputPaths {
	t.Helper()
	paths, err := fileutils.DeriveOutputPaths("export.csv", t.TempDir(), models.AccountInvest)
	require.NoError(t, err)
	return paths
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func sampleActions() []models.Action {
	return []models.Action{
		models.CashOnly{Date: day, Payee: "Deposit", Memo: "Deposit", Amount: "500.00"},
		models.Buy{Trade: models.Trade{Date: day, Symbol: "XYZ", Price: "50.00", Quantity: "10", Amount: "500.00"}},
		models.MarginInterest{Date: day, Memo: "INT", Amount: "1.00"},
	}
}

func TestWriteTransactions_LinkedRouting(t *testing.T) {
	paths := testPaths(t)
	logger := logging.NewMockLogger()
	e := NewEmitter(paths, "Brokerage Cash", models.AccountInvest, logger)

	summary, err := e.WriteTransactions(sampleActions(), testRegistry())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Transactions)
	assert.Equal(t, 1, summary.Linked)

	primary := read(t, paths.Primary)
	assert.True(t, strings.HasPrefix(primary, "!Type:Invst\n"))
	assert.Contains(t, primary, "NBuyX\n")
	assert.Contains(t, primary, "NMargIntX\n")
	assert.NotContains(t, primary, "PDeposit")

	linked := read(t, paths.Linked)
	assert.Equal(t, "!Type:Bank\n"+lines("D1/3'23", "U500.00", "T500.00", "PDeposit", "MDeposit", "^"), linked)

	assert.True(t, logger.HasEntry("INFO",
		"1 linked cash transaction(s) found. Import '"+paths.Linked+"' into the linked cash account 'Brokerage Cash'"))
}

func TestWriteTransactions_NoLinkedAccount(t *testing.T) {
	paths := testPaths(t)
	e := NewEmitter(paths, "", models.AccountInvest, logging.NewMockLogger())

	summary, err := e.WriteTransactions(sampleActions(), testRegistry())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Transactions)
	assert.Zero(t, summary.Linked)

	primary := read(t, paths.Primary)
	assert.Contains(t, primary, "PDeposit")
	assert.Contains(t, primary, "NBuy\n")
	assert.NoFileExists(t, paths.Linked)
}

func TestWriteTransactions_OnlyLinked(t *testing.T) {
	paths := testPaths(t)
	e := NewEmitter(paths, "Cash", models.AccountInvest, logging.NewMockLogger())

	_, err := e.WriteTransactions(sampleActions()[:1], testRegistry())
	require.NoError(t, err)
	assert.NoFileExists(t, paths.Primary)
	assert.FileExists(t, paths.Linked)
}

func TestWriteTransactions_BankHeader(t *testing.T) {
	paths, err := fileutils.DeriveOutputPaths("sofi.csv", t.TempDir(), models.AccountBank)
	require.NoError(t, err)
	e := NewEmitter(paths, "", models.AccountBank, logging.NewMockLogger())

	_, err = e.WriteTransactions(sampleActions()[:1], testRegistry())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(read(t, paths.Primary), "!Type:Bank\n"))
	assert.Equal(t, "cash_sofi.qif", filepath.Base(paths.Primary))
}

func TestWriteTransactions_UnregisteredSymbolCreatesNoFile(t *testing.T) {
	paths := testPaths(t)
	e := NewEmitter(paths, "", models.AccountInvest, logging.NewMockLogger())
	actions := append(sampleActions(), models.Dividend{Income: models.Income{Date: day, Symbol: "NOPE", Amount: "1"}})

	_, err := e.WriteTransactions(actions, testRegistry())
	var symErr *parsererror.UnregisteredSymbolError
	require.True(t, errors.As(err, &symErr))
	assert.NoFileExists(t, paths.Primary)
}

func TestWriteTransactions_Empty(t *testing.T) {
	paths := testPaths(t)
	e := NewEmitter(paths, "Cash", models.AccountInvest, logging.NewMockLogger())

	summary, err := e.WriteTransactions(nil, testRegistry())
	require.NoError(t, err)
	assert.Zero(t, summary.Transactions)
	assert.NoFileExists(t, paths.Primary)
	assert.NoFileExists(t, paths.Linked)
}

func TestWriteSecurities(t *testing.T) {
	paths := testPaths(t)
	e := NewEmitter(paths, "", models.AccountInvest, logging.NewMockLogger())

	n, err := e.WriteSecurities(testRegistry())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t,
		lines("!Type:Security", "NABC FUND", "SABC", "TMutual Fund", "^",
			"!Type:Security", "NXYZ CORP", "SXYZ", "TStock", "^"),
		read(t, paths.Securities))
}

func TestWriteSecurities_NoneCreatesNoFile(t *testing.T) {
	paths := testPaths(t)
	logger := logging.NewMockLogger()
	e := NewEmitter(paths, "", models.AccountInvest, logger)

	n, err := e.WriteSecurities(symbols.NewRegistry(logger))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoFileExists(t, paths.Securities)
}

func TestWriteSecurities_CreateFailure(t *testing.T) {
	paths := testPaths(t)
	require.NoError(t, os.MkdirAll(paths.Securities, 0750))
	e := NewEmitter(paths, "", models.AccountInvest, logging.NewMockLogger())

	_, err := e.WriteSecurities(testRegistry())
	require.Error(t, err)
	assert.DirExists(t, paths.Securities, "an existing path that is not ours must be left alone")
}

func TestDiscard(t *testing.T) {
	paths := testPaths(t)
	e := NewEmitter(paths, "Brokerage Cash", models.AccountInvest, logging.NewMockLogger())

	summary, err := e.WriteTransactions(sampleActions(), testRegistry())
	require.NoError(t, err)
	require.FileExists(t, paths.Primary)
	require.FileExists(t, paths.Linked)

	require.NoError(t, e.Discard(summary))
	assert.NoFileExists(t, paths.Primary)
	assert.NoFileExists(t, paths.Linked)

	assert.NoError(t, e.Discard(Summary{Paths: paths}), "nothing written, nothing to remove")
}
