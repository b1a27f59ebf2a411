package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mrz1836/xrbwallet/internal/fileutil"
	"github.com/mrz1836/xrbwallet/internal/wallet"
	"github.com/mrz1836/xrbwallet/internal/walletcrypto"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// Store is the record mapping a backup reads and restores.
type Store interface {
	Export() (map[string]*wallet.EncryptedWallet, error)
	Import(records map[string]*wallet.EncryptedWallet, overwrite bool) ([]string, error)
}

// Service provides backup operations.
type Service struct {
	store Store
}

// NewService creates a new backup service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Export writes every stored wallet record to path, encrypted under
// passphrase.
func (s *Service) Export(path, passphrase string) (*Manifest, error) {
	if passphrase == "" {
		return nil, walleterr.WithSuggestion(walleterr.ErrInvalidInput, "a backup passphrase is required")
	}

	records, err := s.store.Export()
	if err != nil {
		return nil, err
	}

	plaintext, err := json.Marshal(Payload{Wallets: records})
	if err != nil {
		return nil, fmt.Errorf("serializing backup data: %w", err)
	}
	defer walletcrypto.Zero(plaintext)

	encrypted, err := walletcrypto.EncryptBackup(plaintext, passphrase)
	if err != nil {
		return nil, fmt.Errorf("encrypting backup: %w", err)
	}

	b := NewBackup(NewManifest(records), encrypted)
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing backup: %w", err)
	}

	if err := fileutil.WriteAtomic(path, data, fileutil.PrivateFilePerm); err != nil {
		return nil, fmt.Errorf("writing backup file: %w", err)
	}
	return &b.Manifest, nil
}

// Verify checks a backup file's structure and checksum without
// decrypting it.
func (s *Service) Verify(path string) (*Manifest, error) {
	b, err := readBackup(path)
	if err != nil {
		return nil, err
	}
	return &b.Manifest, nil
}

// Import restores the wallets in the backup at path. Wallets that already
// exist are skipped unless overwrite is set. The restored names are
// returned sorted.
func (s *Service) Import(path, passphrase string, overwrite bool) ([]string, error) {
	payload, err := Decrypt(path, passphrase)
	if err != nil {
		return nil, err
	}
	return s.store.Import(payload.Wallets, overwrite)
}

// Decrypt reads, verifies and decrypts the backup at path.
func Decrypt(path, passphrase string) (*Payload, error) {
	b, err := readBackup(path)
	if err != nil {
		return nil, err
	}

	plaintext, err := walletcrypto.DecryptBackup(b.EncryptedData, passphrase)
	if err != nil {
		return nil, err
	}
	defer walletcrypto.Zero(plaintext)

	var payload Payload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, walleterr.WithCause(walleterr.ErrBackupCorrupted, err)
	}
	if err := payload.check(&b.Manifest); err != nil {
		return nil, err
	}
	return &payload, nil
}

func readBackup(path string) (*Backup, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is from user input
	if errors.Is(err, os.ErrNotExist) {
		return nil, walleterr.WithDetails(walleterr.ErrBackupNotFound, map[string]string{"path": path})
	}
	if err != nil {
		return nil, fmt.Errorf("reading backup file: %w", err)
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, walleterr.WithCause(walleterr.ErrBackupCorrupted, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
