package wallet

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/mrz1836/xrbwallet/internal/keys"
	"github.com/mrz1836/xrbwallet/internal/wallet"
	"github.com/mrz1836/xrbwallet/internal/walletcrypto"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// Session is the single decrypted wallet a front end works with. The seed
// is kept in locked memory and wiped by Close.
type Session struct {
	mu        sync.Mutex
	name      string
	seed      *walletcrypto.SecureBytes
	accounts  []wallet.AccountEntry
	createdAt time.Time
	selected  int
}

func newSession(name string, state *wallet.State) (*Session, error) {
	seed, err := walletcrypto.SecureBytesFromSlice(state.Seed[:])
	if err != nil {
		return nil, err
	}
	return &Session{
		name:      name,
		seed:      seed,
		accounts:  append([]wallet.AccountEntry(nil), state.Accounts...),
		createdAt: state.CreatedAt,
	}, nil
}

// Name returns the wallet name the session was opened under.
func (s *Session) Name() string {
	return s.name
}

// CreatedAt returns when the wallet was created.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Accounts returns a copy of the tracked accounts.
func (s *Session) Accounts() []wallet.AccountEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]wallet.AccountEntry(nil), s.accounts...)
}

// Selected returns the position of the selected account.
func (s *Session) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Select makes the account at position pos the selected one.
func (s *Session) Select(pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pos < 0 || pos >= len(s.accounts) {
		return positionError(pos, len(s.accounts))
	}
	s.selected = pos
	return nil
}

// Account derives the account at position pos of the account list.
func (s *Session) Account(pos int) (*wallet.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos < 0 || pos >= len(s.accounts) {
		return nil, positionError(pos, len(s.accounts))
	}
	return s.deriveLocked(s.accounts[pos].Index)
}

// SelectedAccount derives the selected account.
func (s *Session) SelectedAccount() (*wallet.Account, error) {
	return s.Account(s.Selected())
}

// AddAccount tracks the next account index and derives it. The change is
// in memory until the session is saved.
func (s *Session) AddAccount(label string) (*wallet.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := &wallet.State{Accounts: append([]wallet.AccountEntry(nil), s.accounts...)}
	entry, err := state.AddAccount(label)
	if err != nil {
		return nil, err
	}

	acct, err := s.deriveLocked(entry.Index)
	if err != nil {
		return nil, err
	}
	s.accounts = state.Accounts
	return acct, nil
}

// Sign signs msg with the key of the account at position pos.
func (s *Session) Sign(pos int, msg []byte) ([keys.SignatureSize]byte, *wallet.Account, error) {
	acct, err := s.Account(pos)
	if err != nil {
		return [keys.SignatureSize]byte{}, nil, err
	}
	defer acct.Wipe()

	return keys.Sign(acct.PrivateKey, msg), acct, nil
}

// State rebuilds the full wallet state, seed included, for saving. The
// caller must Wipe it.
func (s *Session) State() (*wallet.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed, err := s.seedLocked()
	if err != nil {
		return nil, err
	}
	return &wallet.State{
		Seed:      seed,
		Accounts:  append([]wallet.AccountEntry(nil), s.accounts...),
		CreatedAt: s.createdAt,
		Version:   wallet.StateVersion,
	}, nil
}

// Mnemonic returns the seed phrase of the wallet.
func (s *Session) Mnemonic() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed, err := s.seedLocked()
	if err != nil {
		return "", err
	}
	defer seed.Wipe()
	return wallet.SeedToMnemonic(seed)
}

// Close wipes the seed. Further key operations fail with ErrSessionClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed.Destroy()
}

func (s *Session) deriveLocked(index uint32) (*wallet.Account, error) {
	seed, err := s.seedLocked()
	if err != nil {
		return nil, err
	}
	defer seed.Wipe()
	return wallet.DeriveAccount(seed, index)
}

func (s *Session) seedLocked() (keys.Seed, error) {
	b := s.seed.Bytes()
	if b == nil {
		return keys.Seed{}, walleterr.ErrSessionClosed
	}
	return keys.SeedFromBytes(b)
}

func positionError(pos, count int) error {
	return walleterr.WithDetails(walleterr.ErrInvalidInput, map[string]string{
		"account":  strconv.Itoa(pos),
		"accounts": fmt.Sprint(count),
	})
}
