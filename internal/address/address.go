// Package address converts 32-byte public keys to and from the
// checksummed xrb_ account address format.
//
// An address is the prefix "xrb_" followed by 60 alphabet characters: a
// 52-character key segment (a zero nibble plus the 64 nibbles of the key,
// repacked into quintets) and an 8-character checksum segment (the
// byte-reversed 5-byte BLAKE2b digest of the key).
package address

import (
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/mrz1836/xrbwallet/internal/codec"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

const (
	// Prefix starts every address.
	Prefix = "xrb_"

	// Length is the total length of an address including the prefix.
	Length = len(Prefix) + keySegmentLen + checksumSegmentLen

	keySize            = 32
	checksumSize       = 5
	keySegmentLen      = 52
	checksumSegmentLen = 8
)

// Encode returns the address of a 32-byte public key.
func Encode(publicKey []byte) (string, error) {
	if len(publicKey) != keySize {
		return "", walleterr.WithDetails(walleterr.ErrMalformedInput, map[string]string{
			"input":  "public key",
			"length": strconv.Itoa(len(publicKey)),
		})
	}

	keySeg, err := encodeKey(publicKey)
	if err != nil {
		return "", err
	}
	sumSeg, err := encodeChecksum(publicKey)
	if err != nil {
		return "", err
	}

	return Prefix + keySeg + sumSeg, nil
}

// Decode returns the public key encoded in address. It never returns a
// partial key: any format problem yields ErrInvalidFormat and a checksum
// that does not match the decoded key yields ErrChecksumMismatch.
func Decode(address string) ([]byte, error) {
	if err := checkFormat(address); err != nil {
		return nil, err
	}

	body := address[len(Prefix):]
	keySeg, sumSeg := body[:keySegmentLen], body[keySegmentLen:]

	quintets, err := codec.DecodeQuintets(keySeg)
	if err != nil {
		return nil, walleterr.WithCause(walleterr.ErrInvalidFormat, err)
	}
	nibbles, err := codec.QuintetsToNibbles(quintets)
	if err != nil {
		return nil, walleterr.WithCause(walleterr.ErrInvalidFormat, err)
	}
	// Drop the leading padding nibble; checkFormat guarantees it is zero.
	key, err := codec.NibblesToBytes(nibbles[1:])
	if err != nil {
		return nil, walleterr.WithCause(walleterr.ErrInvalidFormat, err)
	}

	want, err := encodeChecksum(key)
	if err != nil {
		return nil, err
	}
	if want != sumSeg {
		return nil, walleterr.ErrChecksumMismatch
	}

	return key, nil
}

// Validate reports whether address decodes cleanly.
func Validate(address string) error {
	_, err := Decode(address)
	return err
}

// ParseFromText finds the first "xrb_" in text and returns the 64-character
// address starting there if it decodes. Later occurrences are not tried.
func ParseFromText(text string) (string, bool) {
	i := strings.Index(text, Prefix)
	if i < 0 || len(text)-i < Length {
		return "", false
	}

	candidate := text[i : i+Length]
	if _, err := Decode(candidate); err != nil {
		return "", false
	}
	return candidate, true
}

func checkFormat(address string) error {
	if len(address) != Length {
		return walleterr.WithDetails(walleterr.ErrInvalidFormat, map[string]string{
			"length": strconv.Itoa(len(address)),
		})
	}
	if !strings.HasPrefix(address, Prefix) {
		return walleterr.WithDetails(walleterr.ErrInvalidFormat, map[string]string{
			"reason": "missing " + Prefix + " prefix",
		})
	}

	body := address[len(Prefix):]
	if !codec.IsAlphabet(body) {
		return walleterr.WithDetails(walleterr.ErrInvalidFormat, map[string]string{
			"reason": "character outside address alphabet",
		})
	}

	// The first quintet carries the zero padding nibble plus one key bit.
	if body[0] != codec.Alphabet[0] && body[0] != codec.Alphabet[1] {
		return walleterr.WithDetails(walleterr.ErrInvalidFormat, map[string]string{
			"reason": "key segment must start with 1 or 3",
		})
	}

	return nil
}

func encodeKey(publicKey []byte) (string, error) {
	nibbles := make([]byte, 1, 1+2*len(publicKey))
	nibbles = append(nibbles, codec.BytesToNibbles(publicKey)...)

	quintets, err := codec.NibblesToQuintets(nibbles)
	if err != nil {
		return "", err
	}
	return codec.EncodeQuintets(quintets)
}

func encodeChecksum(publicKey []byte) (string, error) {
	sum := checksum(publicKey)
	quintets, err := codec.NibblesToQuintets(codec.BytesToNibbles(sum[:]))
	if err != nil {
		return "", err
	}
	return codec.EncodeQuintets(quintets)
}

// checksum is the 5-byte BLAKE2b digest of key in reverse byte order.
func checksum(key []byte) [checksumSize]byte {
	h, err := blake2b.New(checksumSize, nil)
	if err != nil {
		// Only invalid sizes or oversized keys fail.
		panic(err)
	}
	_, _ = h.Write(key)
	digest := h.Sum(nil)

	var out [checksumSize]byte
	for i := range out {
		out[i] = digest[checksumSize-1-i]
	}
	return out
}
