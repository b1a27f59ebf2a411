package codec_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/xrbwallet/internal/codec"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

func TestBytesToNibbles(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []byte{0x0a, 0x0b, 0x00, 0x0f}, codec.BytesToNibbles([]byte{0xab, 0x0f}))
	assert.Empty(t, codec.BytesToNibbles(nil))
}

func TestNibblesToBytes(t *testing.T) {
	t.Parallel()

	t.Run("even length", func(t *testing.T) {
		t.Parallel()
		out, err := codec.NibblesToBytes([]byte{0x0c, 0x00, 0x08, 0x0b})
		require.NoError(t, err)
		assert.Equal(t, []byte{0xc0, 0x8b}, out)
	})

	t.Run("odd length", func(t *testing.T) {
		t.Parallel()
		_, err := codec.NibblesToBytes([]byte{0x01, 0x02, 0x03})
		require.ErrorIs(t, err, walleterr.ErrMalformedInput)
	})

	t.Run("value out of range", func(t *testing.T) {
		t.Parallel()
		_, err := codec.NibblesToBytes([]byte{0x10, 0x00})
		require.ErrorIs(t, err, walleterr.ErrMalformedInput)
	})
}

func TestNibblesToQuintets(t *testing.T) {
	t.Parallel()

	// 0x12345 = 0b0001_0010_0011_0100_0101 -> 00010 01000 11010 00101
	out, err := codec.NibblesToQuintets([]byte{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 8, 26, 5}, out)

	all, err := codec.NibblesToQuintets([]byte{15, 15, 15, 15, 15})
	require.NoError(t, err)
	assert.Equal(t, []byte{31, 31, 31, 31}, all)

	_, err = codec.NibblesToQuintets([]byte{1, 2, 3, 4})
	require.ErrorIs(t, err, walleterr.ErrMalformedInput)
}

func TestQuintetsToNibbles(t *testing.T) {
	t.Parallel()

	out, err := codec.QuintetsToNibbles([]byte{2, 8, 26, 5})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, out)

	_, err = codec.QuintetsToNibbles([]byte{1, 2, 3})
	require.ErrorIs(t, err, walleterr.ErrMalformedInput)

	_, err = codec.QuintetsToNibbles([]byte{32, 0, 0, 0})
	require.ErrorIs(t, err, walleterr.ErrMalformedInput)
}

func TestRepack_RoundTrip(t *testing.T) {
	t.Parallel()

	// Byte lengths that are multiples of 5 produce nibble counts divisible by 5.
	for _, size := range []int{0, 5, 10, 40, 160} {
		data := make([]byte, size)
		_, err := rand.Read(data)
		require.NoError(t, err)

		quintets, err := codec.NibblesToQuintets(codec.BytesToNibbles(data))
		require.NoError(t, err)
		assert.Len(t, quintets, size*2/5*4)

		nibbles, err := codec.QuintetsToNibbles(quintets)
		require.NoError(t, err)

		back, err := codec.NibblesToBytes(nibbles)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(data, back), "size %d", size)
	}
}

func TestAlphabet(t *testing.T) {
	t.Parallel()

	assert.Len(t, codec.Alphabet, 32)
	for _, c := range "02lv" {
		assert.NotContains(t, codec.Alphabet, string(c))
	}

	all := make([]byte, 32)
	for i := range all {
		all[i] = byte(i)
	}
	s, err := codec.EncodeQuintets(all)
	require.NoError(t, err)
	assert.Equal(t, codec.Alphabet, s)

	back, err := codec.DecodeQuintets(s)
	require.NoError(t, err)
	assert.Equal(t, all, back)
}

func TestEncodeQuintets_OutOfRange(t *testing.T) {
	t.Parallel()
	_, err := codec.EncodeQuintets([]byte{0, 32})
	require.ErrorIs(t, err, walleterr.ErrMalformedInput)
}

func TestDecodeQuintets_InvalidCharacter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		position string
	}{
		{"zero", "1340", "3"},
		{"two", "2", "0"},
		{"ell", "abl", "2"},
		{"vee", "v", "0"},
		{"uppercase", "A", "0"},
		{"non ascii", "1\xc3", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := codec.DecodeQuintets(tt.input)
			require.ErrorIs(t, err, walleterr.ErrInvalidCharacter)

			var we *walleterr.WalletError
			require.ErrorAs(t, err, &we)
			assert.Equal(t, tt.position, we.Details["position"])
		})
	}
}

func TestIsAlphabet(t *testing.T) {
	t.Parallel()
	assert.True(t, codec.IsAlphabet("13456789"))
	assert.False(t, codec.IsAlphabet(""))
	assert.False(t, codec.IsAlphabet("1234"))
	assert.False(t, codec.IsAlphabet("abc_"))
}
