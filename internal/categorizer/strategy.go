package categorizer

import "fjacquet/broker-qif/internal/models"

// CategorizationStrategy defines a method for categorizing transactions.
// Strategies are tried in order; the first match wins.
type CategorizationStrategy interface {
	// Categorize returns the category of tx and whether the strategy found one.
	Categorize(tx Transaction) (string, bool)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}

// CategoryStoreInterface defines the interface for category data storage.
type CategoryStoreInterface interface {
	LoadCategories() ([]models.CategoryConfig, error)
	LoadPayeeMappings() (map[string]string, error)
}
