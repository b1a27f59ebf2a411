// Package wallet holds the decrypted wallet state, its password-locked
// record form, and the store that persists records by wallet name.
package wallet

import (
	"fmt"
	"regexp"
	"time"

	"github.com/mrz1836/xrbwallet/internal/keys"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

const (
	// StateVersion is the current wallet state format version.
	StateVersion = 1

	// MaxAccounts bounds the number of tracked accounts per wallet.
	MaxAccounts = 100000
)

var (
	// ErrInvalidWalletName indicates the wallet name is invalid.
	ErrInvalidWalletName = walleterr.WithSuggestion(walleterr.ErrInvalidInput,
		"wallet name must be 1-64 alphanumeric characters, underscores, or hyphens")

	// ErrTooManyAccounts indicates the account limit was reached.
	ErrTooManyAccounts = walleterr.WithSuggestion(walleterr.ErrInvalidInput,
		fmt.Sprintf("a wallet tracks at most %d accounts", MaxAccounts))

	// walletNameRegex validates wallet names: alphanumeric + underscore + hyphen, 1-64 chars.
	walletNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
)

// AccountEntry is an account the user added to the wallet. Keys are not
// stored; they are rederived from the seed and index.
type AccountEntry struct {
	Index uint32 `json:"index"`
	Label string `json:"label,omitempty"`
}

// State is the decrypted wallet content serialized into the secretbox.
type State struct {
	// Seed is the master secret every account key derives from.
	Seed keys.Seed `json:"seed"`

	// Accounts lists added accounts in the order they were added.
	Accounts []AccountEntry `json:"accounts"`

	// CreatedAt is the wallet creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// Version is the state format version.
	Version int `json:"version"`
}

// NewState creates a wallet state for seed with account 0 already added.
func NewState(seed keys.Seed) *State {
	return &State{
		Seed:      seed,
		Accounts:  []AccountEntry{{Index: 0}},
		CreatedAt: time.Now().UTC(),
		Version:   StateVersion,
	}
}

// AddAccount appends the next unused account index and returns its entry.
func (s *State) AddAccount(label string) (AccountEntry, error) {
	if len(s.Accounts) >= MaxAccounts {
		return AccountEntry{}, ErrTooManyAccounts
	}

	var next uint32
	for _, a := range s.Accounts {
		if a.Index >= next {
			next = a.Index + 1
		}
	}

	entry := AccountEntry{Index: next, Label: label}
	s.Accounts = append(s.Accounts, entry)
	return entry, nil
}

// Account returns the entry at position pos in the account list.
func (s *State) Account(pos int) (AccountEntry, bool) {
	if pos < 0 || pos >= len(s.Accounts) {
		return AccountEntry{}, false
	}
	return s.Accounts[pos], true
}

// HasIndex reports whether an account with the derivation index was added.
func (s *State) HasIndex(index uint32) bool {
	for _, a := range s.Accounts {
		if a.Index == index {
			return true
		}
	}
	return false
}

// Validate checks the invariants of a decoded state.
func (s *State) Validate() error {
	if s.Version < 1 || s.Version > StateVersion {
		return walleterr.WithDetails(walleterr.ErrInvalidInput, map[string]string{
			"version": fmt.Sprint(s.Version),
		})
	}
	if len(s.Accounts) > MaxAccounts {
		return ErrTooManyAccounts
	}

	seen := make(map[uint32]struct{}, len(s.Accounts))
	for _, a := range s.Accounts {
		if _, dup := seen[a.Index]; dup {
			return walleterr.WithDetails(walleterr.ErrInvalidInput, map[string]string{
				"duplicate_account": fmt.Sprint(a.Index),
			})
		}
		seen[a.Index] = struct{}{}
	}
	return nil
}

// Wipe zeroes the seed held by the state.
func (s *State) Wipe() {
	s.Seed.Wipe()
}

// ValidateWalletName checks if a wallet name is valid for creation from
// the CLI. Stored records may carry any name.
func ValidateWalletName(name string) error {
	if !walletNameRegex.MatchString(name) {
		return ErrInvalidWalletName
	}
	return nil
}
