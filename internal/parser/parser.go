package parser

import (
	"io"

	"fjacquet/broker-qif/internal/models"
	"fjacquet/broker-qif/internal/symbols"
)

// Parser converts one broker's CSV export into ledger actions.
type Parser interface {
	// Parse reads the export from r, which must be positioned at the header line,
	// and returns the actions in chronological order (oldest first). Securities
	// referenced by the actions are entered into registry.
	// Implementations return the typed errors of the parsererror package for
	// fatal conditions; rows that only need manual attention are counted as notices.
	Parse(r io.Reader, registry *symbols.Registry) (Result, error)
}

// Result is the outcome of parsing one export.
type Result struct {
	Actions []models.Action
	Rows    int // decoded rows, footer excluded
	Notices int // rows that were skipped or degraded and need manual review
}
