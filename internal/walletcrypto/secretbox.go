// Package walletcrypto holds the primitives that protect wallet state at
// rest: the password-keyed secretbox used for stored wallets, age
// encryption for backups, and helpers for handling secrets in memory.
package walletcrypto

import (
	"crypto/sha512"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"

	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// Sizes of the stored-wallet construction. Changing any of them breaks
// every wallet saved so far.
const (
	SaltSize  = 16
	NonceSize = 24
	KeySize   = 32
)

// DeriveNonceKey computes SHA-512(salt || password) and splits it into the
// secretbox nonce (bytes 0-23) and key (bytes 24-55).
func DeriveNonceKey(salt, password []byte) (*[NonceSize]byte, *[KeySize]byte) {
	h := sha512.New()
	_, _ = h.Write(salt)
	_, _ = h.Write(password)
	digest := h.Sum(nil)
	defer Zero(digest)

	var nonce [NonceSize]byte
	var key [KeySize]byte
	copy(nonce[:], digest[:NonceSize])
	copy(key[:], digest[NonceSize:NonceSize+KeySize])
	return &nonce, &key
}

// Seal encrypts and authenticates plaintext under a key derived from
// password and a freshly generated salt.
func Seal(plaintext, password []byte) (salt, box []byte, err error) {
	salt, err = RandomBytes(SaltSize)
	if err != nil {
		return nil, nil, fmt.Errorf("generating salt: %w", err)
	}

	nonce, key := DeriveNonceKey(salt, password)
	defer Zero(key[:])

	box = secretbox.Seal(nil, plaintext, nonce, key)
	return salt, box, nil
}

// Open verifies and decrypts box. A wrong password and a tampered box are
// indistinguishable and both yield ErrWrongPasswordOrCorrupt.
func Open(salt, box, password []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, walleterr.WithDetails(walleterr.ErrMalformedInput, map[string]string{
			"input":  "salt",
			"length": fmt.Sprint(len(salt)),
		})
	}
	if len(box) < secretbox.Overhead {
		return nil, walleterr.ErrWrongPasswordOrCorrupt
	}

	nonce, key := DeriveNonceKey(salt, password)
	defer Zero(key[:])

	plaintext, ok := secretbox.Open(nil, box, nonce, key)
	if !ok {
		return nil, walleterr.ErrWrongPasswordOrCorrupt
	}
	return plaintext, nil
}
