package wallet

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzNormalizeMnemonicInput checks that normalization never panics and
// yields trimmed, lowercase, valid UTF-8.
func FuzzNormalizeMnemonicInput(f *testing.F) {
	f.Add("")
	f.Add("abandon")
	f.Add("  abandon  abandon  ")
	f.Add("ABANDON ART")
	f.Add("\t\n\r abandon \t art \n")
	f.Add(zeroSeedMnemonic)
	f.Add(string([]byte{0xFF, 0xFE})) // Invalid UTF-8

	f.Fuzz(func(t *testing.T, input string) {
		result := NormalizeMnemonicInput(input)

		if utf8.ValidString(input) && !utf8.ValidString(result) {
			t.Errorf("invalid UTF-8 output for input %q", input)
		}
		if strings.TrimSpace(result) != result {
			t.Errorf("untrimmed output for input %q", input)
		}
		for _, r := range result {
			if r >= 'A' && r <= 'Z' {
				t.Errorf("uppercase output for input %q", input)
				break
			}
		}
	})
}

// FuzzMnemonicToSeed checks that decoding never panics and that every
// accepted phrase re-encodes to itself.
func FuzzMnemonicToSeed(f *testing.F) {
	f.Add(zeroSeedMnemonic)
	f.Add(sevenFSeedMnemonic)
	f.Add("")
	f.Add("abandon")
	f.Add(strings.Repeat("abandon ", 24))
	f.Add("\x00\x01\x02")

	f.Fuzz(func(t *testing.T, input string) {
		seed, err := MnemonicToSeed(input)
		if err != nil {
			return
		}

		phrase, err := SeedToMnemonic(seed)
		if err != nil {
			t.Fatalf("re-encoding accepted seed: %v", err)
		}
		if phrase != NormalizeMnemonicInput(input) {
			t.Errorf("round trip mismatch: %q != %q", phrase, NormalizeMnemonicInput(input))
		}
	})
}
