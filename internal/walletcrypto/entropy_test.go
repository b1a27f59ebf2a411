package walletcrypto

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMockReaderNotConfigured = errors.New("mock reader not configured")

// mockReader implements io.Reader for testing.
type mockReader struct {
	readFunc func(p []byte) (int, error)
}

func (m *mockReader) Read(p []byte) (int, error) {
	if m.readFunc != nil {
		return m.readFunc(p)
	}
	return 0, errMockReaderNotConfigured
}

// withReader swaps the package RNG for the duration of a test.
// Tests using it must not run in parallel.
func withReader(t *testing.T, r *mockReader) {
	t.Helper()
	orig := Reader
	Reader = r
	t.Cleanup(func() { Reader = orig })
}

func TestRandomBytes(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantLen int
	}{
		{name: "zero bytes", n: 0, wantLen: 0},
		{name: "salt size", n: SaltSize, wantLen: SaltSize},
		{name: "32 bytes", n: 32, wantLen: 32},
		{name: "1024 bytes", n: 1024, wantLen: 1024},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := RandomBytes(tc.n)
			require.NoError(t, err)
			assert.Len(t, b, tc.wantLen)
		})
	}
}

func TestRandomBytesUnique(t *testing.T) {
	a, err := RandomBytes(32)
	require.NoError(t, err)
	b, err := RandomBytes(32)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a, b))
}

func TestRandomBytesReaderFailure(t *testing.T) {
	withReader(t, &mockReader{})

	b, err := RandomBytes(16)
	require.ErrorIs(t, err, errMockReaderNotConfigured)
	assert.Nil(t, b)
}

func TestSecureRandomBytes(t *testing.T) {
	withReader(t, &mockReader{readFunc: func(p []byte) (int, error) {
		for i := range p {
			p[i] = 0xAB
		}
		return len(p), nil
	}})

	sb, err := SecureRandomBytes(8)
	require.NoError(t, err)
	defer sb.Destroy()

	assert.Equal(t, bytes.Repeat([]byte{0xAB}, 8), sb.Bytes())
}

func TestSecureRandomBytesReaderFailure(t *testing.T) {
	withReader(t, &mockReader{})

	sb, err := SecureRandomBytes(8)
	require.Error(t, err)
	assert.Nil(t, sb)
}

func TestSealUsesReaderForSalt(t *testing.T) {
	withReader(t, &mockReader{readFunc: func(p []byte) (int, error) {
		for i := range p {
			p[i] = byte(i)
		}
		return len(p), nil
	}})

	salt, _, err := Seal([]byte("state"), []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, salt)
}

func TestSealReaderFailure(t *testing.T) {
	withReader(t, &mockReader{})

	salt, box, err := Seal([]byte("state"), []byte("pw"))
	require.Error(t, err)
	assert.Nil(t, salt)
	assert.Nil(t, box)
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Zero(b)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)

	assert.NotPanics(t, func() { Zero(nil) })
}
