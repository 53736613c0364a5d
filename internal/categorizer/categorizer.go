// Package categorizer fills the category of cash movements from locally
// configured payee mappings and keyword rules.
package categorizer

import (
	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/models"
)

// Transaction is the part of a cash movement used to pick its category.
type Transaction struct {
	Payee  string
	Memo   string
	Amount string
}

// Categorizer applies its strategies in order: exact payee mapping, then keywords.
type Categorizer struct {
	strategies []CategorizationStrategy
	logger     logging.Logger
}

// NewCategorizer creates a categorizer backed by store.
func NewCategorizer(store CategoryStoreInterface, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Categorizer{
		strategies: []CategorizationStrategy{
			NewDirectMappingStrategy(store, logger),
			NewKeywordStrategy(store, logger),
		},
		logger: logger,
	}
}

// Categorize returns the category of tx, if any strategy finds one.
func (c *Categorizer) Categorize(tx Transaction) (string, bool) {
	for _, s := range c.strategies {
		if category, ok := s.Categorize(tx); ok {
			c.logger.Debug("Categorized transaction",
				logging.F("strategy", s.Name()),
				logging.F(logging.FieldCategory, category),
				logging.F("payee", tx.Payee))
			return category, true
		}
	}
	return "", false
}

// Apply sets the category of every uncategorized cash-only action in place and
// returns how many were categorized.
func (c *Categorizer) Apply(actions []models.Action) int {
	n := 0
	for i, a := range actions {
		cash, ok := a.(models.CashOnly)
		if !ok || cash.Category != "" {
			continue
		}
		category, found := c.Categorize(Transaction{Payee: cash.Payee, Memo: cash.Memo, Amount: cash.Amount})
		if !found {
			continue
		}
		cash.Category = category
		actions[i] = cash
		n++
	}
	return n
}
