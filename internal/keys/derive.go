package keys

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// KeySize is the length of private and public keys in bytes.
const KeySize = 32

// PrivateKey is a 32-byte signing secret.
type PrivateKey [KeySize]byte

// PublicKey is a 32-byte compressed Edwards point.
type PublicKey [KeySize]byte

// KeyPair holds an account's derived keys. It is never persisted; keys are
// rederived from the seed on demand.
type KeyPair struct {
	Private PrivateKey
	Public  PublicKey
}

// Derive computes the private key of account index from seed:
// BLAKE2b-256(seed || uint32be(index)).
func Derive(seed Seed, index uint32) PrivateKey {
	h, err := blake2b.New256(nil)
	if err != nil {
		// New256 only fails for keys longer than 64 bytes.
		panic(err)
	}

	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], index)

	_, _ = h.Write(seed[:])
	_, _ = h.Write(idx[:])

	var key PrivateKey
	copy(key[:], h.Sum(nil))
	return key
}

// DeriveKeyPair derives the private key for index and its public key.
func DeriveKeyPair(seed Seed, index uint32) KeyPair {
	priv := Derive(seed, index)
	return KeyPair{Private: priv, Public: priv.Public()}
}

// String returns the key as uppercase hex.
func (k PrivateKey) String() string {
	return strings.ToUpper(hex.EncodeToString(k[:]))
}

// Wipe zeroes the key in place.
func (k *PrivateKey) Wipe() {
	for i := range k {
		k[i] = 0
	}
}

// String returns the key as uppercase hex.
func (k PublicKey) String() string {
	return strings.ToUpper(hex.EncodeToString(k[:]))
}

// Bytes returns a copy of the key bytes.
func (k PublicKey) Bytes() []byte {
	out := make([]byte, KeySize)
	copy(out, k[:])
	return out
}

// PublicKeyFromBytes copies a 32-byte slice into a PublicKey.
func PublicKeyFromBytes(b []byte) (PublicKey, bool) {
	var pub PublicKey
	if len(b) != KeySize {
		return pub, false
	}
	copy(pub[:], b)
	return pub, true
}
