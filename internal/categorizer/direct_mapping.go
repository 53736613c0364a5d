package categorizer

import (
	"strings"

	"fjacquet/broker-qif/internal/logging"
)

// DirectMappingStrategy categorizes by exact, case-insensitive payee match.
type DirectMappingStrategy struct {
	mappings map[string]string
	logger   logging.Logger
}

// NewDirectMappingStrategy loads the payee mappings from store.
func NewDirectMappingStrategy(store CategoryStoreInterface, logger logging.Logger) *DirectMappingStrategy {
	s := &DirectMappingStrategy{mappings: map[string]string{}, logger: logger}
	mappings, err := store.LoadPayeeMappings()
	if err != nil {
		logger.WithError(err).Warn("Failed to load payee mappings")
		return s
	}
	for payee, category := range mappings {
		s.mappings[strings.ToLower(payee)] = category
	}
	return s
}

// Name returns the name of this strategy for logging and debugging.
func (s *DirectMappingStrategy) Name() string {
	return "DirectMapping"
}

// Categorize looks the payee up in the mappings.
func (s *DirectMappingStrategy) Categorize(tx Transaction) (string, bool) {
	payee := strings.ToLower(strings.TrimSpace(tx.Payee))
	if payee == "" {
		return "", false
	}
	category, ok := s.mappings[payee]
	return category, ok
}
