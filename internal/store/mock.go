package store

import (
	"maps"

	"fjacquet/broker-qif/internal/models"
)

// MockCategoryStore serves fixed category data to categorizer tests. A non-nil
// error field makes the matching Load method fail.
type MockCategoryStore struct {
	Categories    []models.CategoryConfig
	PayeeMappings map[string]string

	LoadCategoriesError    error
	LoadPayeeMappingsError error
}

func (m *MockCategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	return m.Categories, nil
}

// LoadPayeeMappings returns a copy so callers cannot alter the fixture.
func (m *MockCategoryStore) LoadPayeeMappings() (map[string]string, error) {
	if m.LoadPayeeMappingsError != nil {
		return nil, m.LoadPayeeMappingsError
	}
	out := make(map[string]string, len(m.PayeeMappings))
	maps.Copy(out, m.PayeeMappings)
	return out, nil
}
