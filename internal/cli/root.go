// Package cli implements the xrbwallet command-line interface.
//
// This package uses global variables to manage CLI state, which is the standard
// pattern for Cobra-based CLI applications. The globals are initialized in
// PersistentPreRunE and released by cleanup.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mrz1836/xrbwallet/internal/config"
	"github.com/mrz1836/xrbwallet/internal/output"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

var (
	// Global flags
	homeDir      string
	outputFormat string
	verbose      bool

	// Global state initialized in PersistentPreRunE
	cfg       *config.Config
	logger    *config.Logger
	formatter *output.Formatter
	cmdCtx    *CommandContext

	helpOnce sync.Once
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "xrbwallet",
	Short: "An offline wallet for xrb_ ledger accounts",
	Long: `xrbwallet keeps password-encrypted wallets for the xrb_ ledger network.

Each wallet holds a 32-byte seed from which account signing keys are
derived. Keys are shown as checksummed xrb_ addresses, and wallets are
stored locked under a password.

Example:
  xrbwallet wallet create main
  xrbwallet account list main
  xrbwallet convert to-xrb 1000000000000000000000000000000`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initGlobals(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command.
func Execute() error {
	helpOnce.Do(func() { walkCommands(rootCmd, enrichParentLong) })

	err := rootCmd.Execute()
	// PostRun hooks are skipped when a command fails.
	cleanup()
	if err != nil {
		format := output.FormatText
		if formatter != nil {
			format = formatter.Format()
		}
		_ = output.FormatError(rootCmd.ErrOrStderr(), err, format)
		return err
	}
	return nil
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	return walleterr.ExitCode(err)
}

// initGlobals loads configuration and sets up the logger, formatter and
// command context.
func initGlobals(cmd *cobra.Command) error {
	home := homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}
	home = config.ExpandPath(home)

	configPath := config.Path(home)
	var err error
	cfg, err = config.Load(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = config.Defaults()
		cfg.Home = home
	case err != nil:
		return walleterr.WithSuggestion(err,
			fmt.Sprintf("fix or remove %s, or recreate it with: xrbwallet config init --force", configPath))
	}

	if err = config.ApplyEnvironment(cfg); err != nil {
		return err
	}

	// Command-line flags win over file and environment.
	if homeDir != "" {
		cfg.Home = homeDir
	}
	if verbose {
		cfg.Output.Verbose = true
		cfg.Logging.Level = config.LogLevelDebug.String()
	}
	if outputFormat != "" && outputFormat != string(output.FormatAuto) {
		if output.ParseFormat(outputFormat) == output.FormatAuto {
			return walleterr.WithSuggestion(
				walleterr.WithDetails(walleterr.ErrInvalidInput, map[string]string{"output": outputFormat}),
				"output format must be text, json or auto",
			)
		}
		cfg.Output.DefaultFormat = outputFormat
	}

	logLevel := config.ParseLogLevel(cfg.GetLoggingLevel())
	if cfg.Logging.JSON {
		logger, err = config.NewLogger(logLevel, cfg.GetLoggingFile())
	} else {
		logger, err = config.NewConsoleFileLogger(logLevel, cfg.GetLoggingFile())
	}
	if err != nil {
		// Logging is best effort.
		logger = config.NullLogger()
	}

	formatter = output.NewFormatter(output.ParseFormat(cfg.GetOutputFormat()), cmd.OutOrStdout())
	cmdCtx = NewCommandContext(cfg, logger, formatter)

	logger.With("cli").Debug("running %s (home %s, backend %s)", cmd.CommandPath(), cfg.GetHome(), cfg.Storage.Backend)
	return nil
}

// cleanup releases resources. Safe to call more than once.
func cleanup() {
	if cmdCtx != nil {
		if err := cmdCtx.Close(); err != nil && logger != nil {
			logger.Error("closing storage: %v", err)
		}
		cmdCtx = nil
	}
	if logger != nil {
		_ = logger.Close()
	}
}

// Config returns the global configuration.
func Config() *config.Config {
	return cfg
}

// Logger returns the global logger.
func Logger() *config.Logger {
	return logger
}

// Formatter returns the global output formatter.
func Formatter() *output.Formatter {
	return formatter
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "xrbwallet data directory (default: ~/.xrbwallet)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: text, json, auto")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
