package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/xrbwallet/internal/config"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify xrbwallet configuration settings.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at <home>/config.yaml.

If a configuration file already exists, this command will not overwrite it
unless --force is specified.

Example:
  xrbwallet config init
  xrbwallet config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the effective configuration: file, environment and flags combined.

Example:
  xrbwallet config show
  xrbwallet config show -o json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by its dotted key.

Examples:
  xrbwallet config get storage.backend
  xrbwallet config get logging.level`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value by its dotted key and save the file.

Examples:
  xrbwallet config set storage.backend badger
  xrbwallet config set output.default_format json`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configGetCmd, configSetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
}

// configField reads and writes one setting as text.
type configField struct {
	get func(c *config.Config) string
	set func(c *config.Config, v string) error
}

//nolint:gochecknoglobals // Static lookup table
var configFields = map[string]configField{
	"home": {
		get: func(c *config.Config) string { return c.Home },
		set: func(c *config.Config, v string) error { c.Home = v; return nil },
	},
	"storage.backend": {
		get: func(c *config.Config) string { return c.Storage.Backend },
		set: func(c *config.Config, v string) error { c.Storage.Backend = v; return nil },
	},
	"storage.path": {
		get: func(c *config.Config) string { return c.Storage.Path },
		set: func(c *config.Config, v string) error { c.Storage.Path = v; return nil },
	},
	"security.min_password_length": {
		get: func(c *config.Config) string { return strconv.Itoa(c.Security.MinPasswordLength) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			c.Security.MinPasswordLength = n
			return err
		},
	},
	"security.memory_lock": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Security.MemoryLock) },
		set: func(c *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			c.Security.MemoryLock = b
			return err
		},
	},
	"output.default_format": {
		get: func(c *config.Config) string { return c.Output.DefaultFormat },
		set: func(c *config.Config, v string) error { c.Output.DefaultFormat = v; return nil },
	},
	"output.verbose": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Output.Verbose) },
		set: func(c *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			c.Output.Verbose = b
			return err
		},
	},
	"logging.level": {
		get: func(c *config.Config) string { return c.Logging.Level },
		set: func(c *config.Config, v string) error { c.Logging.Level = v; return nil },
	},
	"logging.file": {
		get: func(c *config.Config) string { return c.Logging.File },
		set: func(c *config.Config, v string) error { c.Logging.File = v; return nil },
	},
	"logging.json": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Logging.JSON) },
		set: func(c *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			c.Logging.JSON = b
			return err
		},
	},
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	configPath := config.Path(cfg.GetHome())

	if _, err := os.Stat(configPath); err == nil && !configForce {
		return walleterr.WithSuggestion(
			walleterr.ErrGeneral,
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", configPath),
		)
	}

	defaultCfg := config.Defaults()
	defaultCfg.Home = cfg.Home

	if err := config.Save(defaultCfg, configPath); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Configuration initialized at %s\n", configPath)
	outln(w)
	outln(w, "Edit this file to configure:")
	outln(w, "  - storage.backend: file, badger or memory")
	outln(w, "  - security.min_password_length: Shortest accepted wallet password")
	outln(w, "  - output.default_format: Output format (text/json/auto)")
	outln(w, "  - logging.level: Log level (off/error/info/debug)")

	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	return emit(cmd, cfg, func(w io.Writer) {
		displayConfigText(w, cfg)
	})
}

func displayConfigText(w io.Writer, c *config.Config) {
	keys := make([]string, 0, len(configFields))
	for k := range configFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out(w, "Config file: %s\n\n", config.Path(c.GetHome()))
	for _, k := range keys {
		out(w, "%-30s %s\n", k, configFields[k].get(c))
	}
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	value, err := getConfigValue(cfg, args[0])
	if err != nil {
		return err
	}
	outln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	configPath := config.Path(cfg.GetHome())
	fileCfg, err := config.Load(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fileCfg = config.Defaults()
		fileCfg.Home = cfg.Home
	case err != nil:
		return err
	}

	if err = setConfigValue(fileCfg, key, value); err != nil {
		return err
	}
	if err = fileCfg.Validate(); err != nil {
		return err
	}
	if err = config.Save(fileCfg, configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	out(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

// getConfigValue returns the setting at key.
func getConfigValue(c *config.Config, key string) (string, error) {
	field, ok := configFields[key]
	if !ok {
		return "", unknownConfigKey(key)
	}
	return field.get(c), nil
}

// setConfigValue parses value into the setting at key.
func setConfigValue(c *config.Config, key, value string) error {
	field, ok := configFields[key]
	if !ok {
		return unknownConfigKey(key)
	}
	if err := field.set(c, value); err != nil {
		return walleterr.WithDetails(walleterr.ErrInvalidInput, map[string]string{"key": key, "value": value})
	}
	return nil
}

func unknownConfigKey(key string) error {
	return walleterr.WithSuggestion(
		walleterr.WithDetails(walleterr.ErrInvalidInput, map[string]string{"key": key}),
		"run 'xrbwallet config show' to list the keys",
	)
}
