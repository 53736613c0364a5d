package qif

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"

	"fjacquet/broker-qif/internal/fileutils"
	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/models"
)

// SecuritySource provides the securities discovered during a run.
type SecuritySource interface {
	NewSecurities() []models.Security
}

// Summary reports what an Emitter wrote.
type Summary struct {
	Transactions int
	Linked       int
	Securities   int
	Paths        fileutils.OutputPaths
}

// Emitter writes the ledger files of one conversion.
type Emitter struct {
	Paths         fileutils.OutputPaths
	LinkedAccount string
	AccountType   models.AccountType
	Logger        logging.Logger
}

// NewEmitter creates an emitter for the given output files.
func NewEmitter(paths fileutils.OutputPaths, linkedAccount string, account models.AccountType, logger logging.Logger) *Emitter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Emitter{
		Paths:         paths,
		LinkedAccount: linkedAccount,
		AccountType:   account,
		Logger:        logger,
	}
}

// lazyFile is an output file created on its first record.
type lazyFile struct {
	path   string
	header string
	f      *os.File
	w      *bufio.Writer
	count  int

	created bool
}

func (l *lazyFile) writer() (*bufio.Writer, error) {
	if l.w != nil {
		return l.w, nil
	}
	f, err := fileutils.CreateFile(l.path)
	if err != nil {
		return nil, err
	}
	l.f = f
	l.w = bufio.NewWriter(f)
	l.created = true
	if l.header == "" {
		return l.w, nil
	}
	if _, err := l.w.WriteString(l.header + "\n"); err != nil {
		return nil, fmt.Errorf("error writing header to %s: %w", l.path, err)
	}
	return l.w, nil
}

// discard closes and deletes the file if it was created.
func (l *lazyFile) discard() error {
	if !l.created {
		return nil
	}
	_ = l.close()
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error removing %s: %w", l.path, err)
	}
	return nil
}

func (l *lazyFile) close() error {
	if l.f == nil {
		return nil
	}
	flushErr := l.w.Flush()
	closeErr := l.f.Close()
	l.f, l.w = nil, nil
	if flushErr != nil {
		return fmt.Errorf("error writing %s: %w", l.path, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("error closing %s: %w", l.path, closeErr)
	}
	return nil
}

// WriteTransactions writes actions in order. Cash-only actions go to the linked
// ledger when a linked account is configured; everything else goes to the primary
// ledger. Every referenced symbol is resolved before any file is created.
func (e *Emitter) WriteTransactions(actions []models.Action, lookup SymbolLookup) (Summary, error) {
	summary := Summary{Paths: e.Paths}

	for _, a := range actions {
		if sa, ok := a.(models.SecurityAction); ok {
			if _, err := lookup.Lookup(sa.SecuritySymbol()); err != nil {
				return summary, err
			}
		}
	}

	primary := &lazyFile{path: e.Paths.Primary, header: e.AccountType.QIFHeader()}
	linked := &lazyFile{path: e.Paths.Linked, header: models.HeaderBank}

	writeAll := func() error {
		for _, a := range actions {
			dest, account := primary, e.LinkedAccount
			if e.LinkedAccount != "" && models.IsLinkable(a) {
				dest, account = linked, ""
			}
			w, err := dest.writer()
			if err != nil {
				return err
			}
			if err := WriteAction(w, a, account, lookup); err != nil {
				return fmt.Errorf("error writing %s: %w", dest.path, err)
			}
			dest.count++
		}
		return nil
	}

	err := writeAll()
	for _, f := range []*lazyFile{primary, linked} {
		if cerr := f.close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		for _, f := range []*lazyFile{primary, linked} {
			if derr := f.discard(); derr != nil {
				e.Logger.WithError(derr).Warn("Failed to remove partial output")
			}
		}
		return summary, err
	}

	summary.Transactions = primary.count
	summary.Linked = linked.count
	e.logTransactionGuidance(summary)
	return summary, nil
}

// WriteSecurities writes the newly discovered securities, sorted by symbol. No
// file is created when there are none.
func (e *Emitter) WriteSecurities(source SecuritySource) (int, error) {
	securities := source.NewSecurities()
	if len(securities) == 0 {
		e.Logger.Info("No new securities found, no securities file generated")
		return 0, nil
	}
	sort.Slice(securities, func(i, j int) bool { return securities[i].Symbol < securities[j].Symbol })

	out := &lazyFile{path: e.Paths.Securities}
	w, err := out.writer()
	if err != nil {
		return 0, err
	}
	for _, sec := range securities {
		if err := WriteSecurity(w, sec); err != nil {
			_ = out.discard()
			return 0, fmt.Errorf("error writing %s: %w", out.path, err)
		}
	}
	if err := out.close(); err != nil {
		_ = out.discard()
		return 0, err
	}

	symbols := make([]string, len(securities))
	for i, sec := range securities {
		symbols[i] = sec.Symbol
	}
	e.Logger.Info("New securities found",
		logging.F(logging.FieldCount, len(securities)),
		logging.F("symbols", symbols))
	e.Logger.Info("Before importing transactions, import the securities file into a non-investment account such as a bank account",
		logging.F(logging.FieldOutputFile, out.path))
	return len(securities), nil
}

// Discard deletes the ledger files WriteTransactions reported in s.
func (e *Emitter) Discard(s Summary) error {
	var errs []error
	if s.Transactions > 0 {
		errs = append(errs, (&lazyFile{path: s.Paths.Primary, created: true}).discard())
	}
	if s.Linked > 0 {
		errs = append(errs, (&lazyFile{path: s.Paths.Linked, created: true}).discard())
	}
	return errors.Join(errs...)
}

func (e *Emitter) logTransactionGuidance(s Summary) {
	if s.Transactions > 0 {
		e.Logger.Info(fmt.Sprintf("%d transaction(s) found. Import '%s' into the appropriate account", s.Transactions, s.Paths.Primary),
			logging.F(logging.FieldCount, s.Transactions),
			logging.F(logging.FieldOutputFile, s.Paths.Primary))
	}
	if s.Linked > 0 {
		e.Logger.Info(fmt.Sprintf("%d linked cash transaction(s) found. Import '%s' into the linked cash account '%s'",
			s.Linked, s.Paths.Linked, e.LinkedAccount),
			logging.F(logging.FieldCount, s.Linked),
			logging.F(logging.FieldOutputFile, s.Paths.Linked),
			logging.F(logging.FieldAccount, e.LinkedAccount))
	}
}
