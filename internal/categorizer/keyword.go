package categorizer

import (
	"strings"

	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/models"
)

// KeywordStrategy implements categorization using keyword pattern matching
// from category configuration loaded from YAML files.
type KeywordStrategy struct {
	categories []models.CategoryConfig
	logger     logging.Logger
}

// NewKeywordStrategy creates a new KeywordStrategy instance.
func NewKeywordStrategy(store CategoryStoreInterface, logger logging.Logger) *KeywordStrategy {
	s := &KeywordStrategy{logger: logger}
	categories, err := store.LoadCategories()
	if err != nil {
		logger.WithError(err).Warn("Failed to load categories")
		return s
	}
	s.categories = categories
	return s
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize returns the first category with a keyword contained in the payee
// or the memo. Matching is case-insensitive; categories are tried in file order.
func (s *KeywordStrategy) Categorize(tx Transaction) (string, bool) {
	payee := strings.ToUpper(tx.Payee)
	memo := strings.ToUpper(tx.Memo)
	if strings.TrimSpace(payee+memo) == "" {
		return "", false
	}

	for _, category := range s.categories {
		for _, keyword := range category.Keywords {
			k := strings.ToUpper(strings.TrimSpace(keyword))
			if k == "" {
				continue
			}
			if strings.Contains(payee, k) || strings.Contains(memo, k) {
				s.logger.Debug("Transaction categorized using keyword matching",
					logging.F("keyword", keyword),
					logging.F(logging.FieldCategory, category.Name))
				return category.Name, true
			}
		}
	}
	return "", false
}
