// Package codec converts byte sequences between 8-bit, 4-bit (nibble) and
// 5-bit (quintet) groupings, and maps quintets onto the 32-symbol address
// alphabet.
//
// Every conversion treats its input as one big-endian bit string, so a run
// of five nibbles (20 bits) always becomes exactly four quintets.
package codec

import (
	"strconv"

	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

const (
	// nibblesPerGroup and quintetsPerGroup describe the 20-bit block shared
	// by both representations.
	nibblesPerGroup  = 5
	quintetsPerGroup = 4
)

// BytesToNibbles splits each byte into two 4-bit values, high nibble first.
func BytesToNibbles(b []byte) []byte {
	nibbles := make([]byte, len(b)*2)
	for i, v := range b {
		nibbles[i*2] = v >> 4
		nibbles[i*2+1] = v & 0x0f
	}
	return nibbles
}

// NibblesToBytes joins pairs of nibbles back into bytes.
func NibblesToBytes(nibbles []byte) ([]byte, error) {
	if len(nibbles)%2 != 0 {
		return nil, lengthError("nibbles", len(nibbles), 2)
	}

	out := make([]byte, len(nibbles)/2)
	for i := range out {
		hi, lo := nibbles[i*2], nibbles[i*2+1]
		if hi > 0x0f || lo > 0x0f {
			return nil, valueError("nibble", i*2)
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

// NibblesToQuintets repacks a nibble stream into 5-bit groups. The input
// length must be a multiple of 5; the output holds len/5*4 quintets.
func NibblesToQuintets(nibbles []byte) ([]byte, error) {
	if len(nibbles)%nibblesPerGroup != 0 {
		return nil, lengthError("nibbles", len(nibbles), nibblesPerGroup)
	}

	out := make([]byte, 0, len(nibbles)/nibblesPerGroup*quintetsPerGroup)
	for g := 0; g < len(nibbles); g += nibblesPerGroup {
		var block uint32
		for i := 0; i < nibblesPerGroup; i++ {
			n := nibbles[g+i]
			if n > 0x0f {
				return nil, valueError("nibble", g+i)
			}
			block = block<<4 | uint32(n)
		}
		out = append(out,
			byte(block>>15&0x1f),
			byte(block>>10&0x1f),
			byte(block>>5&0x1f),
			byte(block&0x1f),
		)
	}
	return out, nil
}

// QuintetsToNibbles is the inverse of NibblesToQuintets. The input length
// must be a multiple of 4; the output holds len/4*5 nibbles.
func QuintetsToNibbles(quintets []byte) ([]byte, error) {
	if len(quintets)%quintetsPerGroup != 0 {
		return nil, lengthError("quintets", len(quintets), quintetsPerGroup)
	}

	out := make([]byte, 0, len(quintets)/quintetsPerGroup*nibblesPerGroup)
	for g := 0; g < len(quintets); g += quintetsPerGroup {
		var block uint32
		for i := 0; i < quintetsPerGroup; i++ {
			q := quintets[g+i]
			if q > 0x1f {
				return nil, valueError("quintet", g+i)
			}
			block = block<<5 | uint32(q)
		}
		out = append(out,
			byte(block>>16&0x0f),
			byte(block>>12&0x0f),
			byte(block>>8&0x0f),
			byte(block>>4&0x0f),
			byte(block&0x0f),
		)
	}
	return out, nil
}

func lengthError(what string, got, multiple int) error {
	return walleterr.WithDetails(walleterr.ErrMalformedInput, map[string]string{
		"input":    what,
		"length":   strconv.Itoa(got),
		"multiple": strconv.Itoa(multiple),
	})
}

func valueError(what string, pos int) error {
	return walleterr.WithDetails(walleterr.ErrMalformedInput, map[string]string{
		"input":    what,
		"position": strconv.Itoa(pos),
	})
}
