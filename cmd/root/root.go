// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/broker-qif/internal/config"
	"fjacquet/broker-qif/internal/container"
	"fjacquet/broker-qif/internal/converter"
	"fjacquet/broker-qif/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input         string
	OutputDir     string
	Securities    string
	LinkedAccount string
	LogLevel      string
	ConfigFile    string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "broker-qif",
		Short: "A CLI tool to convert broker CSV exports to QIF files.",
		Long: `broker-qif converts brokerage and bank CSV exports (Schwab, SoFi) into QIF
files ready to be imported into a personal finance ledger. Securities seen for the
first time are written to a separate securities file.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to broker-qif!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: initialize,
		SilenceUsage:      true,
	}

	// SharedFlags holds the persistent flags accessible to all commands
	SharedFlags = CommonFlags{}

	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Input CSV file")
	flags.StringVarP(&SharedFlags.OutputDir, "outdir", "o", "", "Output directory (default from config, else the current directory)")
	flags.StringVarP(&SharedFlags.Securities, "securities", "c", "", "Current QIF securities list")
	flags.StringVarP(&SharedFlags.LinkedAccount, "linked-account", "l", "", "Cash account receiving linked transfers")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Configuration file (default: config.yaml in $HOME/.broker-qif, .broker-qif or .)")
}

// initialize loads the environment and configuration, applies flag overrides
// and builds the application container.
func initialize(cmd *cobra.Command, args []string) error {
	config.LoadEnv(Log)

	cfg, err := config.InitializeConfig(SharedFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := ApplyFlags(cmd, cfg); err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	appContainer = c
	Log = c.GetLogger()
	if cfg.File != "" {
		Log.Debug("Using configuration file", logging.F(logging.FieldConfigFile, cfg.File))
	}
	return nil
}

// ApplyFlags copies the persistent flags the user set onto cfg.
func ApplyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("outdir") {
		cfg.Output.Directory = SharedFlags.OutputDir
	}
	if flags.Changed("securities") {
		cfg.Securities.File = SharedFlags.Securities
	}
	if flags.Changed("linked-account") {
		cfg.Output.LinkedAccount = SharedFlags.LinkedAccount
	}
	if flags.Changed("log-level") {
		if _, err := logging.ParseLevel(SharedFlags.LogLevel); err != nil {
			return err
		}
		cfg.Log.Level = SharedFlags.LogLevel
	}
	return nil
}

// GetContainer returns the container built before the command ran.
func GetContainer() *container.Container {
	return appContainer
}

// ConvertOptions returns the conversion options for inputFile, combining the
// configuration with the flags the user set.
func ConvertOptions(inputFile string) converter.Options {
	var opts converter.Options
	if appContainer != nil {
		opts = appContainer.DefaultOptions()
	}
	opts.InputFile = inputFile
	return opts
}
