// Package store loads the category data used to fill the category of cash movements.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/broker-qif/internal/fileutils"
	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/models"

	"gopkg.in/yaml.v3"
)

// Default file names looked up when none is configured.
const (
	DefaultCategoriesFile = "categories.yaml"
	DefaultPayeesFile     = "payees.yaml"
)

// CategoryStore loads category data from YAML files
type CategoryStore struct {
	CategoriesFile string
	PayeesFile     string
	logger         logging.Logger
}

// NewCategoryStore creates a new store for category-related data
func NewCategoryStore(categoriesFile, payeesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		PayeesFile:     payeesFile,
		logger:         logger,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "broker-qif", filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// readConfigFile returns the content of filename, or nil when it cannot be found.
func (s *CategoryStore) readConfigFile(filename string) ([]byte, string, error) {
	path, err := s.FindConfigFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("Configuration file not found", logging.F(logging.FieldFile, filename))
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("error resolving %s: %w", filename, err)
	}

	data, err := fileutils.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("error reading %s: %w", path, err)
	}
	return data, path, nil
}

// LoadCategories loads the keyword categories. A missing file yields no categories.
// Both the `categories: [...]` layout and a bare list are accepted.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = DefaultCategoriesFile
	}

	data, path, err := s.readConfigFile(filename)
	if err != nil || data == nil {
		return []models.CategoryConfig{}, err
	}

	var categoriesConfig models.CategoriesConfig
	if err := yaml.Unmarshal(data, &categoriesConfig); err == nil && len(categoriesConfig.Categories) > 0 {
		s.logger.Debug("Loaded categories",
			logging.F(logging.FieldFile, path),
			logging.F(logging.FieldCount, len(categoriesConfig.Categories)))
		return categoriesConfig.Categories, nil
	}

	var categories []models.CategoryConfig
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", path, err)
	}
	s.logger.Debug("Loaded categories",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(categories)))
	return categories, nil
}

// LoadPayeeMappings loads the exact payee to category mappings. Keys are lowercased.
func (s *CategoryStore) LoadPayeeMappings() (map[string]string, error) {
	filename := s.PayeesFile
	if filename == "" {
		filename = DefaultPayeesFile
	}

	data, path, err := s.readConfigFile(filename)
	if err != nil || data == nil {
		return map[string]string{}, err
	}

	var cfg models.PayeesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing payee mappings %s: %w", path, err)
	}

	mappings := make(map[string]string, len(cfg.Payees))
	for payee, category := range cfg.Payees {
		mappings[strings.ToLower(strings.TrimSpace(payee))] = category
	}
	s.logger.Debug("Loaded payee mappings",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(mappings)))
	return mappings, nil
}
