// Package symbols tracks the securities known to the target ledger and the ones
// discovered while converting a broker export.
package symbols

import (
	"fmt"

	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/models"
	"fjacquet/broker-qif/internal/parsererror"
)

// Provenance records where a registry entry came from.
type Provenance int

const (
	// Base entries were read from the existing securities ledger.
	Base Provenance = iota + 1
	// New entries were discovered during this run.
	New
)

func (p Provenance) String() string {
	switch p {
	case Base:
		return "base"
	case New:
		return "new"
	default:
		return fmt.Sprintf("Provenance(%d)", int(p))
	}
}

type entry struct {
	security   models.Security
	provenance Provenance
}

// Registry maps a symbol to its security. Every symbol has exactly one provenance.
// A Registry is owned by a single conversion run and is not safe for concurrent use.
type Registry struct {
	entries map[string]entry
	logger  logging.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Registry{
		entries: make(map[string]entry),
		logger:  logger,
	}
}

// addBase inserts a security read from the ledger. The first name seen for a
// symbol wins; a later differing name is reported and ignored.
func (r *Registry) addBase(sec models.Security) {
	if existing, ok := r.entries[sec.Symbol]; ok {
		if existing.security.Name != sec.Name {
			r.logger.Warn("Symbol found multiple times in baseline securities file",
				logging.F(logging.FieldSymbol, sec.Symbol),
				logging.F("used_name", existing.security.Name),
				logging.F("ignored_name", sec.Name))
		}
		return
	}
	r.entries[sec.Symbol] = entry{security: sec, provenance: Base}
}

// Lookup returns the security registered under symbol.
func (r *Registry) Lookup(symbol string) (models.Security, error) {
	e, ok := r.entries[symbol]
	if !ok {
		return models.Security{}, &parsererror.UnregisteredSymbolError{Symbol: symbol}
	}
	return e.security, nil
}

// EnterIfNotFound registers a newly discovered security unless the symbol is
// already known. It reports whether an entry was added.
func (r *Registry) EnterIfNotFound(symbol, name string, securityType models.SecurityType) bool {
	if _, ok := r.entries[symbol]; ok {
		return false
	}
	r.entries[symbol] = entry{
		security:   models.Security{Symbol: symbol, Name: name, Type: securityType},
		provenance: New,
	}
	r.logger.Debug("Registered new security",
		logging.F(logging.FieldSymbol, symbol),
		logging.F(logging.FieldName, name))
	return true
}

// NewSecurities returns the securities discovered during this run in no
// particular order.
func (r *Registry) NewSecurities() []models.Security {
	var out []models.Security
	for _, e := range r.entries {
		if e.provenance == New {
			out = append(out, e.security)
		}
	}
	return out
}

// Provenance reports where symbol was registered from.
func (r *Registry) Provenance(symbol string) (Provenance, bool) {
	e, ok := r.entries[symbol]
	return e.provenance, ok
}

// Len returns the number of registered securities.
func (r *Registry) Len() int {
	return len(r.entries)
}
