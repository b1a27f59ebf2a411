package walletcrypto_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/xrbwallet/internal/walletcrypto"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

func TestDeriveNonceKey(t *testing.T) {
	t.Parallel()

	// SHA-512 of the empty string, split at 24 and 56.
	const emptyDigest = "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce" +
		"47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"

	nonce, key := walletcrypto.DeriveNonceKey(nil, nil)
	assert.Equal(t, emptyDigest[:48], hex.EncodeToString(nonce[:]))
	assert.Equal(t, emptyDigest[48:112], hex.EncodeToString(key[:]))
}

func TestDeriveNonceKeyConcatenation(t *testing.T) {
	t.Parallel()

	// Salt and password are hashed as one stream.
	n1, k1 := walletcrypto.DeriveNonceKey([]byte("ab"), []byte("cd"))
	n2, k2 := walletcrypto.DeriveNonceKey([]byte("abc"), []byte("d"))
	assert.Equal(t, n1, n2)
	assert.Equal(t, k1, k2)

	n3, _ := walletcrypto.DeriveNonceKey([]byte("ab"), []byte("ce"))
	assert.NotEqual(t, n1, n3)
}

func TestSealOpen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		plaintext []byte
		password  []byte
	}{
		{"json state", []byte(`{"seed":"00","accounts":[]}`), []byte("hunter2")},
		{"empty plaintext", []byte{}, []byte("pw")},
		{"empty password", []byte("data"), []byte{}},
		{"unicode password", []byte("data"), []byte("pässwörd🔑")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			salt, box, err := walletcrypto.Seal(tc.plaintext, tc.password)
			require.NoError(t, err)
			assert.Len(t, salt, walletcrypto.SaltSize)
			assert.Len(t, box, len(tc.plaintext)+16)

			got, err := walletcrypto.Open(salt, box, tc.password)
			require.NoError(t, err)
			assert.Equal(t, tc.plaintext, got)
		})
	}
}

func TestSealFreshSalt(t *testing.T) {
	t.Parallel()

	s1, b1, err := walletcrypto.Seal([]byte("same"), []byte("pw"))
	require.NoError(t, err)
	s2, b2, err := walletcrypto.Seal([]byte("same"), []byte("pw"))
	require.NoError(t, err)

	assert.NotEqual(t, s1, s2)
	assert.NotEqual(t, b1, b2)
}

func TestOpenFailures(t *testing.T) {
	t.Parallel()

	salt, box, err := walletcrypto.Seal([]byte("secret state"), []byte("right"))
	require.NoError(t, err)

	flip := func(b []byte, i int) []byte {
		out := append([]byte(nil), b...)
		out[i] ^= 0x01
		return out
	}

	tests := []struct {
		name     string
		salt     []byte
		box      []byte
		password []byte
		wantErr  error
	}{
		{"wrong password", salt, box, []byte("wrong"), walleterr.ErrWrongPasswordOrCorrupt},
		{"tampered tag", salt, flip(box, 0), []byte("right"), walleterr.ErrWrongPasswordOrCorrupt},
		{"tampered ciphertext", salt, flip(box, len(box)-1), []byte("right"), walleterr.ErrWrongPasswordOrCorrupt},
		{"tampered salt", flip(salt, 3), box, []byte("right"), walleterr.ErrWrongPasswordOrCorrupt},
		{"truncated box", salt, box[:10], []byte("right"), walleterr.ErrWrongPasswordOrCorrupt},
		{"short salt", salt[:8], box, []byte("right"), walleterr.ErrMalformedInput},
		{"long salt", append(append([]byte(nil), salt...), 0), box, []byte("right"), walleterr.ErrMalformedInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := walletcrypto.Open(tc.salt, tc.box, tc.password)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, got)
		})
	}
}
