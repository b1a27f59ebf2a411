package config

import "github.com/mrz1836/xrbwallet/internal/storage"

// DefaultMinPasswordLength is the shortest password accepted when locking
// a wallet from the CLI.
const DefaultMinPasswordLength = 8

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.xrbwallet",
		Storage: StorageConfig{
			Backend: storage.BackendFile,
			Path:    "",
		},
		Security: SecurityConfig{
			MinPasswordLength: DefaultMinPasswordLength,
			MemoryLock:        true,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "",
			JSON:  true,
		},
	}
}
