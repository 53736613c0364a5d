// Package config loads the broker-qif configuration with Viper: built-in
// defaults, then an optional YAML file, then QIF_* environment variables.
// Command-line flags are applied on top by the root command.
package config

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/broker-qif/internal/logging"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. QIF_OUTPUT_DIRECTORY.
const EnvPrefix = "QIF"

// Config holds every setting a conversion can take from outside the command line.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Output struct {
		Directory     string `mapstructure:"directory" yaml:"directory"`
		LinkedAccount string `mapstructure:"linked_account" yaml:"linked_account"`
	} `mapstructure:"output" yaml:"output"`

	Securities struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"securities" yaml:"securities"`

	Categories struct {
		File       string `mapstructure:"file" yaml:"file"`
		PayeesFile string `mapstructure:"payees_file" yaml:"payees_file"`
	} `mapstructure:"categories" yaml:"categories"`

	// File is the configuration file that was read, empty when none was found.
	File string `mapstructure:"-" yaml:"-"`
}

// InitializeConfig builds the configuration. With an empty configFile,
// config.yaml is searched in $HOME/.broker-qif, ./.broker-qif and the current
// directory and may be absent. A configFile given explicitly must exist.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.broker-qif")
		v.AddConfigPath(".broker-qif")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.File = v.ConfigFileUsed()

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatText)

	v.SetDefault("output.directory", ".")
	v.SetDefault("output.linked_account", "")

	v.SetDefault("securities.file", "")

	v.SetDefault("categories.file", "categories.yaml")
	v.SetDefault("categories.payees_file", "payees.yaml")
}

func validateConfig(config *Config) error {
	if _, err := logging.ParseLevel(config.Log.Level); err != nil {
		return err
	}

	if config.Log.Format != logging.FormatText && config.Log.Format != logging.FormatJSON {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if strings.TrimSpace(config.Output.Directory) == "" {
		return fmt.Errorf("output.directory cannot be empty")
	}

	// The linked account is written inside L[...] lines.
	if strings.ContainsAny(config.Output.LinkedAccount, "[]\n") {
		return fmt.Errorf("output.linked_account cannot contain brackets or newlines, got: %q", config.Output.LinkedAccount)
	}

	return nil
}

// NewLogger returns the application logger described by the log section.
func (c *Config) NewLogger() logging.Logger {
	return logging.NewLogrusAdapter(c.Log.Level, c.Log.Format)
}
