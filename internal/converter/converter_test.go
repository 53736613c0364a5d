package converter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/broker-qif/internal/categorizer"
	"fjacquet/broker-qif/internal/factory"
	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/models"
	"fjacquet/broker-qif/internal/parsererror"
	"fjacquet/broker-qif/internal/schwabparser"
	"fjacquet/broker-qif/internal/sofiparser"
	"fjacquet/broker-qif/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schwabFooter = `"Transactions Total","","","","","","-$496.00"`

func schwabExport(rows ...string) string {
	return `"Transactions  for account XXXX-1234 as of 01/31/2023"` + "\n" +
		schwabparser.Header + "\n" + strings.Join(rows, "\n") + "\n" + schwabFooter + "\n"
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func newConverter(logger logging.Logger, cat *categorizer.Categorizer) *Converter {
	return NewConverter(factory.NewFormatRegistry(logger), cat, logger)
}

func TestConvert_Schwab(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	input := write(t, dir, "brokerage.csv", schwabExport(
		`"01/05/2023","Foreign Tax Paid","XYZ","XYZ CORP FOREIGN TAX","","","","-$0.50"`,
		`"01/04/2023","Qualified Dividend","XYZ","XYZ CORP","","","","$4.50"`,
		`"01/03/2023","Buy","XYZ","XYZ CORP","10","$50.00","","-$500.00"`,
		`"01/03/2023","Stock Split","ABC","ABC FUND","5","","",""`,
	))
	securities := write(t, dir, "securities.qif", "!Type:Security\nNABC FUND\nSABC\nTMutual Fund\n^\n")

	cat := categorizer.NewCategorizer(&store.MockCategoryStore{
		Categories: []models.CategoryConfig{{Name: "Taxes", Keywords: []string{"foreign tax"}}},
	}, logging.NewMockLogger())
	logger := logging.NewMockLogger()

	res, err := newConverter(logger, cat).Convert(Options{
		InputFile:      input,
		SecuritiesFile: securities,
		LinkedAccount:  "Brokerage Cash",
		OutputDir:      outDir,
	})
	require.NoError(t, err)

	assert.Equal(t, "schwab", res.Profile)
	assert.Equal(t, 4, res.Rows)
	assert.Equal(t, 3, res.Actions)
	assert.Equal(t, 1, res.Notices)
	assert.Equal(t, 1, res.Categorized)
	assert.Equal(t, time.Date(2023, time.January, 3, 0, 0, 0, 0, time.UTC), res.First)
	assert.Equal(t, time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC), res.Last)
	assert.Equal(t, 2, res.Summary.Transactions)
	assert.Equal(t, 1, res.Summary.Linked)
	assert.Equal(t, 1, res.Summary.Securities)

	primary := read(t, filepath.Join(outDir, "invest_brokerage.qif"))
	assert.True(t, strings.HasPrefix(primary, "!Type:Invst\n"))
	buy, div := strings.Index(primary, "NBuyX\n"), strings.Index(primary, "NDivX\n")
	require.NotEqual(t, -1, buy)
	require.NotEqual(t, -1, div)
	assert.Less(t, buy, div, "actions are written oldest first")

	linked := read(t, filepath.Join(outDir, "linked_cash_brokerage.qif"))
	assert.True(t, strings.HasPrefix(linked, "!Type:Bank\n"))
	assert.Contains(t, linked, "PXYZ CORP FOREIGN TAX\n")
	assert.Contains(t, linked, "LTaxes\n")

	assert.Equal(t, "!Type:Security\nNXYZ CORP\nSXYZ\nTStock\n^\n",
		read(t, filepath.Join(outDir, "securities_brokerage.qif")))

	assert.True(t, logger.HasEntry("WARN", "Some rows need manual review"))
}

func TestConvert_SoFi(t *testing.T) {
	dir := t.TempDir()
	input := write(t, dir, "checking.csv", sofiparser.Header+"\n"+
		"2023-01-05,Coffee Shop,Withdrawal,-$4.50,$95.50,Posted\n"+
		"2023-01-02,ACME PAYROLL,Deposit,$100.00,$100.00,Posted\n")

	res, err := newConverter(logging.NewMockLogger(), nil).Convert(Options{InputFile: input, OutputDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "sofi", res.Profile)
	assert.Equal(t, 2, res.Summary.Transactions)
	assert.Zero(t, res.Summary.Securities)

	cash := read(t, filepath.Join(dir, "cash_checking.qif"))
	assert.True(t, strings.HasPrefix(cash, "!Type:Bank\n"))
	assert.Less(t, strings.Index(cash, "PACME PAYROLL"), strings.Index(cash, "PCoffee Shop"))
	assert.NoFileExists(t, filepath.Join(dir, "securities_checking.qif"))
}

func TestConvert_NotRecognized(t *testing.T) {
	dir := t.TempDir()
	input := write(t, dir, "other.csv", "Date,Amount\n01/02/2023,1.00\n")

	_, err := newConverter(logging.NewMockLogger(), nil).Convert(Options{InputFile: input, OutputDir: dir})
	var notRecognized *parsererror.FormatNotRecognizedError
	require.True(t, errors.As(err, &notRecognized))
	assert.Equal(t, input, notRecognized.FilePath)
}

func TestConvert_ForcedFormat(t *testing.T) {
	dir := t.TempDir()
	input := write(t, dir, "brokerage.csv", schwabExport(
		`"01/03/2023","Buy","XYZ","XYZ CORP","10","$50.00","","-$500.00"`,
	))
	c := newConverter(logging.NewMockLogger(), nil)

	_, err := c.Convert(Options{InputFile: input, OutputDir: dir, Format: "sofi"})
	var notRecognized *parsererror.FormatNotRecognizedError
	assert.True(t, errors.As(err, &notRecognized))

	_, err = c.Convert(Options{InputFile: input, OutputDir: dir, Format: "fidelity"})
	assert.ErrorContains(t, err, `unknown format "fidelity"`)

	res, err := c.Convert(Options{InputFile: input, OutputDir: dir, Format: "schwab"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Actions)
}

func TestConvert_FatalRowWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := write(t, dir, "brokerage.csv", schwabExport(
		`"01/04/2023","Buy","XYZ","XYZ CORP","10","$50.00","","-$500.00"`,
		`"01/03/2023","Sell to Open","XYZ 01/20/2023 50.00 C","CALL XYZ CORP $55 EXP 01/20/23","2","$1.25","$1.32","$248.68"`,
	))

	_, err := newConverter(logging.NewMockLogger(), nil).Convert(Options{InputFile: input, OutputDir: dir})
	var mismatch *parsererror.OptionMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.NoFileExists(t, filepath.Join(dir, "invest_brokerage.qif"))
	assert.NoFileExists(t, filepath.Join(dir, "securities_brokerage.qif"))
}

func TestConvert_SecuritiesFailureRemovesLedgers(t *testing.T) {
	dir := t.TempDir()
	input := write(t, dir, "brokerage.csv", schwabExport(
		`"01/04/2023","MoneyLink Transfer","","Tfr BANK","","","","$100.00"`,
		`"01/03/2023","Buy","XYZ","XYZ CORP","10","$50.00","","-$500.00"`,
	))
	// A directory in place of the securities file makes its creation fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "securities_brokerage.qif"), 0750))

	_, err := newConverter(logging.NewMockLogger(), nil).Convert(Options{
		InputFile:     input,
		OutputDir:     dir,
		LinkedAccount: "Cash",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "unable to create securities file")
	assert.NoFileExists(t, filepath.Join(dir, "invest_brokerage.qif"))
	assert.NoFileExists(t, filepath.Join(dir, "linked_cash_brokerage.qif"))
}

func TestConvert_MissingSecuritiesFile(t *testing.T) {
	dir := t.TempDir()
	input := write(t, dir, "brokerage.csv", schwabExport(
		`"01/03/2023","Buy","XYZ","XYZ CORP","10","$50.00","","-$500.00"`,
	))

	_, err := newConverter(logging.NewMockLogger(), nil).Convert(Options{
		InputFile:      input,
		SecuritiesFile: filepath.Join(dir, "missing.qif"),
		OutputDir:      dir,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestIdentify(t *testing.T) {
	dir := t.TempDir()
	c := newConverter(logging.NewMockLogger(), nil)

	p, err := c.Identify(write(t, dir, "a.csv", schwabExport()))
	require.NoError(t, err)
	assert.Equal(t, models.AccountInvest, p.Account)

	_, err = c.Identify(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
