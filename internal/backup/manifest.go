// Package backup exports the wallet store to a passphrase-encrypted file
// and imports it back.
package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/mrz1836/xrbwallet/internal/wallet"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// Version is the current backup format version.
const Version = 1

// EncryptionMethod names the payload encryption.
const EncryptionMethod = "age-scrypt"

// Backup is the on-disk backup document.
type Backup struct {
	// Version is the backup format version.
	Version int `json:"version"`

	// Manifest describes the payload without decrypting it.
	Manifest Manifest `json:"manifest"`

	// EncryptedData is the age-encrypted Payload.
	EncryptedData []byte `json:"encrypted_data"`

	// Checksum is the hex SHA-256 of EncryptedData.
	Checksum string `json:"checksum"`
}

// Manifest contains metadata about the backup.
type Manifest struct {
	CreatedAt        time.Time `json:"created_at"`
	Wallets          []string  `json:"wallets"`
	EncryptionMethod string    `json:"encryption_method"`
}

// Payload is the decrypted content: every stored record, still locked
// under its own wallet password.
type Payload struct {
	Wallets map[string]*wallet.EncryptedWallet `json:"wallets"`
}

// NewManifest creates a manifest listing the wallets in records.
func NewManifest(records map[string]*wallet.EncryptedWallet) Manifest {
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)

	return Manifest{
		CreatedAt:        time.Now().UTC(),
		Wallets:          names,
		EncryptionMethod: EncryptionMethod,
	}
}

// NewBackup wraps encrypted data with its manifest and checksum.
func NewBackup(manifest Manifest, encryptedData []byte) *Backup {
	return &Backup{
		Version:       Version,
		Manifest:      manifest,
		EncryptedData: encryptedData,
		Checksum:      CalculateChecksum(encryptedData),
	}
}

// CalculateChecksum computes the hex SHA-256 of data.
func CalculateChecksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Validate checks the document structure and checksum.
func (b *Backup) Validate() error {
	if b.Version != Version {
		return corrupted("unsupported version %d", b.Version)
	}
	if len(b.EncryptedData) == 0 {
		return corrupted("no encrypted data")
	}
	if actual := CalculateChecksum(b.EncryptedData); actual != b.Checksum {
		return walleterr.WithDetails(walleterr.ErrBackupCorrupted, map[string]string{
			"expected": b.Checksum,
			"actual":   actual,
		})
	}
	return nil
}

// check verifies the payload against the manifest.
func (p *Payload) check(m *Manifest) error {
	names := make([]string, 0, len(p.Wallets))
	for name, rec := range p.Wallets {
		if rec == nil {
			return corrupted("empty record for wallet %q", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	if !slices.Equal(names, m.Wallets) {
		return corrupted("wallets do not match manifest")
	}
	return nil
}

func corrupted(format string, args ...any) error {
	return walleterr.WithCause(walleterr.ErrBackupCorrupted, fmt.Errorf(format, args...))
}
