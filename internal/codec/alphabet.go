package codec

import (
	"strconv"

	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// Alphabet is the 32-symbol address alphabet. The index of a character is
// the quintet value it encodes. 0, 2, l and v are left out on purpose.
const Alphabet = "13456789abcdefghijkmnopqrstuwxyz"

// reverseAlphabet maps an ASCII byte to its quintet value, or -1.
//
//nolint:gochecknoglobals // Lookup table built once from Alphabet
var reverseAlphabet = func() [256]int8 {
	var table [256]int8
	for i := range table {
		table[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		table[Alphabet[i]] = int8(i) //nolint:gosec // G115: i < 32
	}
	return table
}()

// EncodeQuintets maps each 5-bit value to its alphabet character.
func EncodeQuintets(quintets []byte) (string, error) {
	out := make([]byte, len(quintets))
	for i, q := range quintets {
		if q > 0x1f {
			return "", valueError("quintet", i)
		}
		out[i] = Alphabet[q]
	}
	return string(out), nil
}

// DecodeQuintets maps each alphabet character back to its 5-bit value.
func DecodeQuintets(s string) ([]byte, error) {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		v := reverseAlphabet[s[i]]
		if v < 0 {
			return nil, walleterr.WithDetails(walleterr.ErrInvalidCharacter, map[string]string{
				"character": strconv.QuoteRune(rune(s[i])),
				"position":  strconv.Itoa(i),
			})
		}
		out[i] = byte(v)
	}
	return out, nil
}

// IsAlphabet reports whether s is non-empty and made only of alphabet
// characters.
func IsAlphabet(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if reverseAlphabet[s[i]] < 0 {
			return false
		}
	}
	return true
}
