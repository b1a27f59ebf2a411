package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"

	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// EnvPrefix prefixes every environment override, e.g. XRBW_HOME.
const EnvPrefix = "XRBW"

// Environment variable names.
const (
	EnvHome              = EnvPrefix + "_HOME"
	EnvStorageBackend    = EnvPrefix + "_STORAGE_BACKEND"
	EnvStoragePath       = EnvPrefix + "_STORAGE_PATH"
	EnvOutputFormat      = EnvPrefix + "_OUTPUT_FORMAT"
	EnvVerbose           = EnvPrefix + "_VERBOSE"
	EnvLogLevel          = EnvPrefix + "_LOG_LEVEL"
	EnvLogFile           = EnvPrefix + "_LOG_FILE"
	EnvMinPasswordLength = EnvPrefix + "_MIN_PASSWORD_LENGTH"
)

// overrides mirrors the environment. Field names map to variables through
// split_words; explicit envconfig tags are avoided because envconfig then
// also falls back to the unprefixed name (HOME would leak in).
type overrides struct {
	Home              string `split_words:"true"`
	StorageBackend    string `split_words:"true"`
	StoragePath       string `split_words:"true"`
	OutputFormat      string `split_words:"true"`
	Verbose           *bool  `split_words:"true"`
	LogLevel          string `split_words:"true"`
	LogFile           string `split_words:"true"`
	MinPasswordLength *int   `split_words:"true"`
}

// ApplyEnvironment applies environment variable overrides to the
// configuration. Unset variables leave the configuration untouched.
func ApplyEnvironment(cfg *Config) error {
	var env overrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return walleterr.WithCause(walleterr.ErrConfigInvalid, err)
	}

	if env.Home != "" {
		cfg.Home = env.Home
	}
	if env.StorageBackend != "" {
		cfg.Storage.Backend = strings.ToLower(env.StorageBackend)
	}
	if env.StoragePath != "" {
		cfg.Storage.Path = env.StoragePath
	}
	if env.OutputFormat != "" {
		cfg.Output.DefaultFormat = strings.ToLower(env.OutputFormat)
	}
	if env.Verbose != nil {
		cfg.Output.Verbose = *env.Verbose
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = strings.ToLower(env.LogLevel)
	}
	if env.LogFile != "" {
		cfg.Logging.File = env.LogFile
	}
	if env.MinPasswordLength != nil {
		cfg.Security.MinPasswordLength = *env.MinPasswordLength
	}

	return cfg.Validate()
}
