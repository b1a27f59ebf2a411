// Package config provides configuration management for xrbwallet.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/xrbwallet/internal/fileutil"
	"github.com/mrz1836/xrbwallet/internal/storage"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Version  int            `yaml:"version" json:"version"`
	Home     string         `yaml:"home" json:"home"`
	Storage  StorageConfig  `yaml:"storage" json:"storage"`
	Security SecurityConfig `yaml:"security" json:"security"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// StorageConfig selects where encrypted wallets are kept.
type StorageConfig struct {
	// Backend is one of file, badger or memory.
	Backend string `yaml:"backend" json:"backend"`
	// Path is the backend directory. Empty means <home>/wallets.
	Path string `yaml:"path" json:"path"`
}

// SecurityConfig defines security settings.
type SecurityConfig struct {
	MinPasswordLength int  `yaml:"min_password_length" json:"min_password_length"`
	MemoryLock        bool `yaml:"memory_lock" json:"memory_lock"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
	JSON  bool   `yaml:"json" json:"json"`
}

// Load reads configuration from the specified file. Missing keys keep
// their default values.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, walleterr.WithCause(walleterr.ErrConfigInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return fileutil.WriteAtomic(path, data, fileutil.PrivateFilePerm)
}

// Validate rejects settings the rest of the program cannot honor.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case storage.BackendFile, storage.BackendBadger, storage.BackendMemory:
	default:
		return invalidSetting("storage.backend", c.Storage.Backend)
	}

	switch strings.ToLower(c.Output.DefaultFormat) {
	case "auto", "text", "json":
	default:
		return invalidSetting("output.default_format", c.Output.DefaultFormat)
	}

	if c.Security.MinPasswordLength < 0 {
		return invalidSetting("security.min_password_length", fmt.Sprint(c.Security.MinPasswordLength))
	}
	return nil
}

func invalidSetting(key, value string) error {
	return walleterr.WithDetails(walleterr.ErrConfigInvalid, map[string]string{
		"key":   key,
		"value": value,
	})
}

// LogFileName is the log file kept in the home directory by default.
const LogFileName = "xrbwallet.log"

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// GetHome returns the xrbwallet home directory path.
func (c *Config) GetHome() string {
	return ExpandPath(c.Home)
}

// StoragePath returns the directory the storage backend uses.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return ExpandPath(c.Storage.Path)
	}
	return filepath.Join(c.GetHome(), "wallets")
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path. Empty means
// <home>/xrbwallet.log.
func (c *Config) GetLoggingFile() string {
	if c.Logging.File == "" {
		return filepath.Join(c.GetHome(), LogFileName)
	}
	return ExpandPath(c.Logging.File)
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// GetSecurity returns the security configuration.
func (c *Config) GetSecurity() SecurityConfig {
	return c.Security
}

// DefaultHome returns the default xrbwallet home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".xrbwallet"
	}
	return filepath.Join(home, ".xrbwallet")
}

// ExpandPath replaces a leading "~/" with the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
