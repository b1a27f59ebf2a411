package wallet

import (
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/mrz1836/xrbwallet/internal/walletcrypto"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

func TestLockUnlock(t *testing.T) {
	t.Parallel()

	st := NewState(testSeed(0x42))
	_, err := st.AddAccount("second")
	require.NoError(t, err)

	rec, err := Lock(st, []byte("correct horse"))
	require.NoError(t, err)
	assert.Len(t, rec.Salt, walletcrypto.SaltSize)

	got, err := Unlock(rec, []byte("correct horse"))
	require.NoError(t, err)
	assert.Equal(t, st.Seed, got.Seed)
	assert.Equal(t, st.Accounts, got.Accounts)
	assert.Equal(t, st.Version, got.Version)
}

func TestLock_FreshSaltEachTime(t *testing.T) {
	t.Parallel()

	st := NewState(testSeed(1))
	a, err := Lock(st, []byte("pw"))
	require.NoError(t, err)
	b, err := Lock(st, []byte("pw"))
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.Box, b.Box)
}

func TestUnlock_Failures(t *testing.T) {
	t.Parallel()

	rec, err := Lock(NewState(testSeed(3)), []byte("right"))
	require.NoError(t, err)

	tampered := &EncryptedWallet{Salt: rec.Salt, Box: append([]byte(nil), rec.Box...)}
	tampered.Box[len(tampered.Box)/2] ^= 0xFF

	tests := []struct {
		name     string
		rec      *EncryptedWallet
		password string
		wantErr  error
	}{
		{"wrong password", rec, "wrong", walleterr.ErrWrongPasswordOrCorrupt},
		{"empty password", rec, "", walleterr.ErrWrongPasswordOrCorrupt},
		{"tampered box", tampered, "right", walleterr.ErrWrongPasswordOrCorrupt},
		{"nil record", nil, "right", walleterr.ErrWrongPasswordOrCorrupt},
		{"bad salt length", &EncryptedWallet{Salt: []byte{1, 2}, Box: rec.Box}, "right", walleterr.ErrMalformedInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			st, err := Unlock(tc.rec, []byte(tc.password))
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, st)
		})
	}
}

func TestUnlock_NonStatePlaintext(t *testing.T) {
	t.Parallel()

	salt, box, err := walletcrypto.Seal([]byte("not json"), []byte("pw"))
	require.NoError(t, err)

	_, err = Unlock(&EncryptedWallet{Salt: salt, Box: box}, []byte("pw"))
	require.ErrorIs(t, err, walleterr.ErrWrongPasswordOrCorrupt)
}

func TestUnlock_MissingSeed(t *testing.T) {
	t.Parallel()

	salt := []byte("0123456789abcdef")
	for _, plaintext := range []string{
		`{"accounts":[],"version":1}`,
		`{"seed":null,"accounts":[{"index":0}],"version":1}`,
		`{"seed":"","accounts":[{"index":0}],"version":1}`,
	} {
		t.Run(plaintext, func(t *testing.T) {
			t.Parallel()
			st, err := Unlock(sealRecord(salt, []byte("pw"), []byte(plaintext)), []byte("pw"))
			require.ErrorIs(t, err, walleterr.ErrWrongPasswordOrCorrupt)
			assert.Nil(t, st)
		})
	}
}

func TestUnlock_UnusableStateSuggestion(t *testing.T) {
	t.Parallel()

	salt := []byte("0123456789abcdef")
	rec := sealRecord(salt, []byte("pw"), []byte(`{"seed":"`+strings.Repeat("11", 32)+`","accounts":[]}`))

	_, err := Unlock(rec, []byte("pw"))
	var we *walleterr.WalletError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "WRONG_PASSWORD_OR_CORRUPT", we.Code)
	assert.Contains(t, we.Suggestion, "mnemonic or a backup")

	// A wrong password carries no such hint.
	_, err = Unlock(rec, []byte("other"))
	require.ErrorAs(t, err, &we)
	assert.Empty(t, we.Suggestion)
}

func TestEncryptedWallet_JSONFormat(t *testing.T) {
	t.Parallel()

	rec := &EncryptedWallet{Salt: []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, Box: []byte("box-bytes")}
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	assert.JSONEq(t, `{"salt":"AAECAwQFBgcICQoLDA0ODw==","box":"Ym94LWJ5dGVz"}`, string(data))

	var raw map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	salt, err := base64.StdEncoding.DecodeString(raw["salt"])
	require.NoError(t, err)
	assert.Equal(t, rec.Salt, salt)
}

// sealRecord builds a record straight from the persisted construction:
// SHA-512(salt||password) gives the nonce (bytes 0..24) and key (24..56)
// for a NaCl secretbox.
func sealRecord(salt, password, plaintext []byte) *EncryptedWallet {
	digest := sha512.Sum512(append(append([]byte(nil), salt...), password...))

	var nonce [24]byte
	var key [32]byte
	copy(nonce[:], digest[:24])
	copy(key[:], digest[24:56])

	return &EncryptedWallet{Salt: salt, Box: secretbox.Seal(nil, plaintext, &nonce, &key)}
}

func TestUnlock_ExternallyProducedRecord(t *testing.T) {
	t.Parallel()

	salt := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	seedHex := strings.Repeat("42", 32)
	plaintext := []byte(`{"seed":"` + seedHex + `","accounts":[{"index":0},{"index":3,"label":"cold"}],"version":1}`)
	rec := sealRecord(salt, []byte("correct horse"), plaintext)

	// Through the stored JSON form, as another client would write it.
	doc := `{"salt":"AAECAwQFBgcICQoLDA0ODw==","box":"` + base64.StdEncoding.EncodeToString(rec.Box) + `"}`
	var stored EncryptedWallet
	require.NoError(t, json.Unmarshal([]byte(doc), &stored))

	st, err := Unlock(&stored, []byte("correct horse"))
	require.NoError(t, err)
	assert.Equal(t, testSeed(0x42), st.Seed)
	assert.Equal(t, []AccountEntry{{Index: 0}, {Index: 3, Label: "cold"}}, st.Accounts)

	_, err = Unlock(&stored, []byte("correct horsE"))
	require.ErrorIs(t, err, walleterr.ErrWrongPasswordOrCorrupt)
}

func TestLock_ReadableByRawConstruction(t *testing.T) {
	t.Parallel()

	rec, err := Lock(NewState(testSeed(7)), []byte("pw"))
	require.NoError(t, err)
	require.Len(t, rec.Salt, 16)

	digest := sha512.Sum512(append(append([]byte(nil), rec.Salt...), "pw"...))
	var nonce [24]byte
	var key [32]byte
	copy(nonce[:], digest[:24])
	copy(key[:], digest[24:56])

	plaintext, ok := secretbox.Open(nil, rec.Box, &nonce, &key)
	require.True(t, ok)
	assert.Contains(t, string(plaintext), `"seed":"`+strings.Repeat("07", 32)+`"`)
}
