// Package keys derives per-account signing keys from a wallet seed and
// implements the network's signing scheme: Ed25519 with BLAKE2b-512 in
// place of SHA-512.
package keys

import (
	"encoding/hex"
	"strings"

	"github.com/mrz1836/xrbwallet/internal/walletcrypto"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// SeedSize is the length of a wallet seed in bytes.
const SeedSize = 32

// Seed is the wallet's master entropy. Every account key is derived from it.
type Seed [SeedSize]byte

// GenerateSeed returns a fresh seed from the cryptographically secure source.
func GenerateSeed() (Seed, error) {
	var seed Seed
	b, err := walletcrypto.RandomBytes(SeedSize)
	if err != nil {
		return seed, err
	}
	copy(seed[:], b)
	walletcrypto.Zero(b)
	return seed, nil
}

// ParseSeed decodes a 64-character hex seed. Case is ignored and
// surrounding whitespace trimmed.
func ParseSeed(s string) (Seed, error) {
	var seed Seed
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil || len(raw) != SeedSize {
		return seed, walleterr.ErrInvalidSeed
	}
	copy(seed[:], raw)
	walletcrypto.Zero(raw)
	return seed, nil
}

// SeedFromBytes copies a 32-byte slice into a Seed.
func SeedFromBytes(b []byte) (Seed, error) {
	var seed Seed
	if len(b) != SeedSize {
		return seed, walleterr.ErrInvalidSeed
	}
	copy(seed[:], b)
	return seed, nil
}

// String returns the seed as uppercase hex.
func (s Seed) String() string {
	return strings.ToUpper(hex.EncodeToString(s[:]))
}

// MarshalText implements encoding.TextMarshaler.
func (s Seed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Seed) UnmarshalText(text []byte) error {
	parsed, err := ParseSeed(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Wipe zeroes the seed in place.
func (s *Seed) Wipe() {
	walletcrypto.Zero(s[:])
}
