package walletcrypto

import (
	"crypto/rand"
	"io"
)

// Reader is the cryptographically secure random number generator used for
// seeds and salts. It wraps crypto/rand.Reader and can be replaced in tests.
//
//nolint:gochecknoglobals // Package-level RNG is required for testability
var Reader io.Reader = rand.Reader

// RandomBytes generates n cryptographically secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// SecureRandomBytes generates random bytes in a SecureBytes container.
func SecureRandomBytes(n int) (*SecureBytes, error) {
	sb, err := NewSecureBytes(n)
	if err != nil {
		return nil, err
	}

	if _, err := io.ReadFull(Reader, sb.Bytes()); err != nil {
		sb.Destroy()
		return nil, err
	}

	return sb, nil
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
