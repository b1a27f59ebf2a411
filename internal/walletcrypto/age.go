package walletcrypto

import (
	"bytes"
	"fmt"
	"io"

	"filippo.io/age"

	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// scryptWorkFactor is the log2 scrypt cost used for backup encryption.
// Zero keeps age's default.
//
//nolint:gochecknoglobals // Tunable for tests
var scryptWorkFactor int

// SetScryptWorkFactor overrides the scrypt cost for backups. Tests lower it
// to keep runs fast.
func SetScryptWorkFactor(logN int) {
	scryptWorkFactor = logN
}

// EncryptBackup encrypts plaintext with age using a passphrase recipient.
func EncryptBackup(plaintext []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}
	if scryptWorkFactor > 0 {
		recipient.SetWorkFactor(scryptWorkFactor)
	}

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing encryption: %w", err)
	}

	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing encrypted data: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}

	return buf.Bytes(), nil
}

// DecryptBackup decrypts an age file produced by EncryptBackup.
func DecryptBackup(ciphertext []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}
	if scryptWorkFactor > 0 {
		identity.SetMaxWorkFactor(scryptWorkFactor)
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, walleterr.WithCause(walleterr.ErrWrongPasswordOrCorrupt, err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, walleterr.WithCause(walleterr.ErrBackupCorrupted, err)
	}

	return plaintext, nil
}
