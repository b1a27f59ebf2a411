package wallet

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tyler-smith/go-bip39"

	"github.com/mrz1836/xrbwallet/internal/keys"
	"github.com/mrz1836/xrbwallet/internal/walletcrypto"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// MnemonicWords is the word count of a seed mnemonic. The 32-byte seed is
// used directly as BIP39 entropy, so the phrase is always 24 words.
const MnemonicWords = 24

var (
	// whitespaceRegex matches one or more whitespace characters.
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// numberedListRegex matches numbered list prefixes like "1." "2)" "3:"
	numberedListRegex = regexp.MustCompile(`(?m)^\s*\d+[\.\)\:]\s*`)

	// bulletListRegex matches bullet prefixes like "- " "* " "• "
	bulletListRegex = regexp.MustCompile(`(?m)^\s*[-*•]\s*`)
)

// SeedToMnemonic encodes the seed as a 24-word phrase.
func SeedToMnemonic(seed keys.Seed) (string, error) {
	return bip39.NewMnemonic(seed[:])
}

// MnemonicToSeed decodes a 24-word phrase back into the seed it encodes.
// No passphrase stretching is applied: the phrase is the seed.
func MnemonicToSeed(mnemonic string) (keys.Seed, error) {
	normalized := NormalizeMnemonicInput(mnemonic)
	if len(strings.Fields(normalized)) != MnemonicWords {
		return keys.Seed{}, walleterr.WithDetails(walleterr.ErrInvalidMnemonic, map[string]string{
			"words": strconv.Itoa(len(strings.Fields(normalized))),
		})
	}

	entropy, err := bip39.EntropyFromMnemonic(normalized)
	if err != nil {
		return keys.Seed{}, walleterr.WithCause(walleterr.ErrInvalidMnemonic, err)
	}
	defer walletcrypto.Zero(entropy)

	seed, err := keys.SeedFromBytes(entropy)
	if err != nil {
		return keys.Seed{}, walleterr.WithCause(walleterr.ErrInvalidMnemonic, err)
	}
	return seed, nil
}

// ValidateMnemonic checks word count, words, and checksum.
func ValidateMnemonic(mnemonic string) error {
	seed, err := MnemonicToSeed(mnemonic)
	seed.Wipe()
	return err
}

// NormalizeMnemonicInput cleans and normalizes mnemonic input by:
// - Converting to lowercase
// - Removing numbered list prefixes (1. 2) 3: etc.)
// - Removing bullet prefixes (- * •)
// - Replacing commas with spaces
// - Collapsing whitespace and trimming
func NormalizeMnemonicInput(input string) string {
	input = strings.ToLower(input)
	input = numberedListRegex.ReplaceAllString(input, " ")
	input = bulletListRegex.ReplaceAllString(input, " ")
	input = strings.ReplaceAll(input, ",", " ")
	input = whitespaceRegex.ReplaceAllString(input, " ")
	return strings.TrimSpace(input)
}

// IsValidWord checks if a word is in the BIP39 word list.
func IsValidWord(word string) bool {
	_, ok := bip39.GetWordIndex(strings.ToLower(word))
	return ok
}

// MaxTypoDistance is the maximum Levenshtein distance to consider a suggestion.
const MaxTypoDistance = 2

// TypoInfo describes a word that is not in the word list.
type TypoInfo struct {
	// Index is the word position in the mnemonic (0-based).
	Index int
	// Word is the original (possibly misspelled) word.
	Word string
	// Suggestion is the closest BIP39 word, or empty if none found.
	Suggestion string
	// Distance is the Levenshtein distance to the suggestion.
	Distance int
}

// SuggestWord finds the closest BIP39 word to the input. Returns empty
// string if no word is within MaxTypoDistance.
func SuggestWord(input string) string {
	input = strings.ToLower(input)

	minDist := math.MaxInt
	var suggestion string
	for _, word := range bip39.GetWordList() {
		dist := levenshtein.ComputeDistance(input, word)
		if dist == 0 {
			return word
		}
		if dist < minDist {
			minDist = dist
			suggestion = word
		}
	}

	if minDist <= MaxTypoDistance {
		return suggestion
	}
	return ""
}

// DetectTypos returns every word of mnemonic that is not in the word list,
// with the closest suggestion when there is one.
func DetectTypos(mnemonic string) []TypoInfo {
	var typos []TypoInfo
	for i, word := range strings.Fields(NormalizeMnemonicInput(mnemonic)) {
		if IsValidWord(word) {
			continue
		}
		info := TypoInfo{Index: i, Word: word, Suggestion: SuggestWord(word)}
		if info.Suggestion != "" {
			info.Distance = levenshtein.ComputeDistance(word, info.Suggestion)
		}
		typos = append(typos, info)
	}
	return typos
}

// FormatTypoSuggestions renders typos one per line for display.
func FormatTypoSuggestions(typos []TypoInfo) string {
	lines := make([]string, 0, len(typos))
	for _, typo := range typos {
		// Word position is 1-indexed for human readability
		line := "Word " + strconv.Itoa(typo.Index+1) + ": '" + typo.Word + "'"
		if typo.Suggestion != "" {
			line += " - did you mean '" + typo.Suggestion + "'?"
		} else {
			line += " is not a valid BIP39 word"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
