// Package wallet provides the wallet operations the CLI and any other
// front end call: key derivation, address coding, locking and unlocking,
// and the store-backed wallet lifecycle. Debug logging for those
// operations lives here rather than in the cryptographic core.
package wallet

import (
	"github.com/mrz1836/xrbwallet/internal/config"
	"github.com/mrz1836/xrbwallet/internal/wallet"
)

// ConfigProvider provides access to security configuration.
type ConfigProvider interface {
	GetSecurity() config.SecurityConfig
}

// StorageProvider provides wallet record storage by name.
type StorageProvider interface {
	Put(name string, rec *wallet.EncryptedWallet) error
	Get(name string) (*wallet.EncryptedWallet, error)
	Rename(oldName, newName string) error
	Delete(name string) error
	List() ([]string, error)
	Exists(name string) (bool, error)
}

// LogWriter provides logging capabilities.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}
