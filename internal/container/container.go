// Package container provides dependency injection for the broker-qif application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/broker-qif/internal/categorizer"
	"fjacquet/broker-qif/internal/config"
	"fjacquet/broker-qif/internal/converter"
	"fjacquet/broker-qif/internal/factory"
	"fjacquet/broker-qif/internal/formatid"
	"fjacquet/broker-qif/internal/logging"
	"fjacquet/broker-qif/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.CategoryStore
	categorizer *categorizer.Categorizer
	formats     *formatid.Registry
	converter   *converter.Converter
}

// NewContainer creates and wires all application dependencies, logging through
// the logger described by cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, cfg.NewLogger())
}

// NewContainerWithLogger wires all application dependencies around the given logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	categoryStore := store.NewCategoryStore(cfg.Categories.File, cfg.Categories.PayeesFile, logger)
	cat := categorizer.NewCategorizer(categoryStore, logger)

	formats := factory.NewFormatRegistry(logger)
	conv := converter.NewConverter(formats, cat, logger)

	logger.Debug("Container initialized successfully",
		logging.F("formats_count", len(formats.Profiles())))

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       categoryStore,
		categorizer: cat,
		formats:     formats,
		converter:   conv,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's category store instance.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetFormats returns the registry of known broker formats.
func (c *Container) GetFormats() *formatid.Registry {
	return c.formats
}

// GetConverter returns the conversion pipeline.
func (c *Container) GetConverter() *converter.Converter {
	return c.converter
}

// DefaultOptions returns conversion options filled from the configuration.
// Callers override the fields their flags set.
func (c *Container) DefaultOptions() converter.Options {
	return converter.Options{
		SecuritiesFile: c.config.Securities.File,
		LinkedAccount:  c.config.Output.LinkedAccount,
		OutputDir:      c.config.Output.Directory,
	}
}
