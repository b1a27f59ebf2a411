package wallet

import (
	"strings"

	"github.com/mrz1836/xrbwallet/internal/keys"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// InputFormat represents the detected format of restore input.
type InputFormat int

const (
	// FormatUnknown indicates the input format could not be determined.
	FormatUnknown InputFormat = iota
	// FormatMnemonic indicates a 24-word seed phrase.
	FormatMnemonic
	// FormatHexSeed indicates a 64-character hex seed.
	FormatHexSeed
)

// String returns the string representation of the input format.
func (f InputFormat) String() string {
	switch f {
	case FormatMnemonic:
		return "mnemonic"
	case FormatHexSeed:
		return "hex"
	case FormatUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// DetectInputFormat guesses whether input is a seed phrase or a hex seed.
func DetectInputFormat(input string) InputFormat {
	input = strings.TrimSpace(input)
	if input == "" {
		return FormatUnknown
	}

	if isHexSeed(input) {
		return FormatHexSeed
	}

	words := strings.Fields(NormalizeMnemonicInput(input))
	if len(words) != MnemonicWords {
		return FormatUnknown
	}

	// Mostly valid words is enough to treat it as a phrase with typos.
	valid := 0
	for _, w := range words {
		if IsValidWord(w) {
			valid++
		}
	}
	if valid >= len(words)/2 {
		return FormatMnemonic
	}
	return FormatUnknown
}

// ParseRestoreInput turns a seed phrase or hex seed into a Seed. Phrases
// with misspelled words fail with the typo suggestions attached.
func ParseRestoreInput(input string) (keys.Seed, InputFormat, error) {
	format := DetectInputFormat(input)

	switch format {
	case FormatHexSeed:
		seed, err := keys.ParseSeed(strings.TrimPrefix(strings.TrimSpace(input), "0x"))
		return seed, format, err
	case FormatMnemonic:
		seed, err := MnemonicToSeed(input)
		if err != nil {
			if typos := DetectTypos(input); len(typos) > 0 {
				err = walleterr.WithSuggestion(err, FormatTypoSuggestions(typos))
			}
		}
		return seed, format, err
	case FormatUnknown:
	}

	return keys.Seed{}, FormatUnknown, walleterr.WithSuggestion(walleterr.ErrInvalidInput,
		"provide a 24-word seed phrase or a 64-character hex seed")
}

func isHexSeed(input string) bool {
	input = strings.TrimPrefix(input, "0x")
	if len(input) != 2*keys.SeedSize {
		return false
	}
	for _, c := range input {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}
