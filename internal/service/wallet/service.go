package wallet

import (
	"errors"
	"fmt"
	"time"

	"github.com/mrz1836/xrbwallet/internal/address"
	"github.com/mrz1836/xrbwallet/internal/keys"
	"github.com/mrz1836/xrbwallet/internal/wallet"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// Service provides wallet operations without CLI dependencies.
type Service struct {
	storage  StorageProvider
	config   ConfigProvider
	logger   LogWriter
	throttle *unlockThrottle
}

// Config contains dependencies for creating a wallet service.
type Config struct {
	Storage StorageProvider
	Config  ConfigProvider
	Logger  LogWriter

	// UnlockBurst failed unlocks of one wallet are allowed before further
	// attempts are refused; one attempt comes back every UnlockInterval.
	// Zero values select DefaultUnlockBurst and DefaultUnlockInterval.
	UnlockBurst    int
	UnlockInterval time.Duration
}

// NewService creates a new wallet service instance.
func NewService(cfg *Config) *Service {
	return &Service{
		storage:  cfg.Storage,
		config:   cfg.Config,
		logger:   cfg.Logger,
		throttle: newUnlockThrottle(cfg.UnlockInterval, cfg.UnlockBurst),
	}
}

// DeriveAccount derives the keys and address of account index.
func (s *Service) DeriveAccount(seed keys.Seed, index uint32) (*wallet.Account, error) {
	return wallet.DeriveAccount(seed, index)
}

// Encode returns the address of a 32-byte public key.
func (s *Service) Encode(publicKey []byte) (string, error) {
	return address.Encode(publicKey)
}

// Decode returns the public key encoded in addr.
func (s *Service) Decode(addr string) ([]byte, error) {
	return address.Decode(addr)
}

// Lock seals state under password.
func (s *Service) Lock(state *wallet.State, password []byte) (*wallet.EncryptedWallet, error) {
	return wallet.Lock(state, password)
}

// Unlock opens rec with password.
func (s *Service) Unlock(rec *wallet.EncryptedWallet, password []byte) (*wallet.State, error) {
	return wallet.Unlock(rec, password)
}

// ValidateExists checks if a wallet exists in storage.
// Returns an error with helpful suggestion if wallet is not found.
func (s *Service) ValidateExists(name string) error {
	exists, err := s.storage.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return walleterr.WithSuggestion(
			walleterr.WithDetails(walleterr.ErrWalletNotFound, map[string]string{"name": name}),
			fmt.Sprintf("wallet '%s' not found. List wallets with: xrbwallet wallet list", name),
		)
	}
	return nil
}

// Create stores a new wallet for seed under name. An existing wallet of
// that name is replaced only when force is set.
func (s *Service) Create(name string, seed keys.Seed, password []byte, force bool) (*Session, error) {
	if !force {
		exists, err := s.storage.Exists(name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, walleterr.WithSuggestion(
				walleterr.WithDetails(walleterr.ErrWalletExists, map[string]string{"name": name}),
				"choose another name or pass --force to replace it",
			)
		}
	}

	state := wallet.NewState(seed)
	defer state.Wipe()

	if err := s.Save(name, state, password); err != nil {
		return nil, err
	}
	return newSession(name, state)
}

// Save locks state under password and stores it under name, replacing any
// previous record of that name.
func (s *Service) Save(name string, state *wallet.State, password []byte) error {
	if err := s.checkPassword(password); err != nil {
		return err
	}

	rec, err := wallet.Lock(state, password)
	if err != nil {
		return err
	}
	if err := s.storage.Put(name, rec); err != nil {
		s.logError("saving wallet %q: %v", name, err)
		return err
	}

	s.logDebug("saved wallet %q (%d accounts)", name, len(state.Accounts))
	return nil
}

// SaveSession persists the session's current state under its name.
func (s *Service) SaveSession(sess *Session, password []byte) error {
	state, err := sess.State()
	if err != nil {
		return err
	}
	defer state.Wipe()
	return s.Save(sess.Name(), state, password)
}

// Open unlocks the wallet stored under name and returns it as the active
// session.
func (s *Service) Open(name string, password []byte) (*Session, error) {
	state, err := s.unlockStored(name, password)
	if err != nil {
		return nil, err
	}
	defer state.Wipe()

	sess, err := newSession(name, state)
	if err != nil {
		return nil, err
	}

	if s.config != nil && s.config.GetSecurity().MemoryLock && !sess.seed.IsLocked() {
		s.logDebug("seed memory for wallet %q could not be locked", name)
	}
	s.logDebug("opened wallet %q", name)
	return sess, nil
}

// Rename moves the wallet at oldName to newName, replacing any wallet
// already there.
func (s *Service) Rename(oldName, newName string) error {
	if err := s.storage.Rename(oldName, newName); err != nil {
		return err
	}
	s.logDebug("renamed wallet %q to %q", oldName, newName)
	return nil
}

// Delete removes the wallet stored under name.
func (s *Service) Delete(name string) error {
	if err := s.storage.Delete(name); err != nil {
		return err
	}
	s.logDebug("deleted wallet %q", name)
	return nil
}

// List returns all wallet names.
func (s *Service) List() ([]string, error) {
	return s.storage.List()
}

// ChangePassword re-locks the wallet under newPassword with a fresh salt.
func (s *Service) ChangePassword(name string, oldPassword, newPassword []byte) error {
	state, err := s.unlockStored(name, oldPassword)
	if err != nil {
		return err
	}
	defer state.Wipe()

	return s.Save(name, state, newPassword)
}

// unlockStored loads and unlocks the wallet under name, refusing while too
// many recent attempts have failed.
func (s *Service) unlockStored(name string, password []byte) (*wallet.State, error) {
	if s.throttle.blocked(name) {
		s.logError("unlock of wallet %q refused after repeated failures", name)
		return nil, walleterr.WithDetails(walleterr.ErrTooManyAttempts, map[string]string{"name": name})
	}

	rec, err := s.storage.Get(name)
	if err != nil {
		return nil, err
	}

	state, err := wallet.Unlock(rec, password)
	if errors.Is(err, walleterr.ErrWrongPasswordOrCorrupt) {
		s.throttle.fail(name)
	}
	if err != nil {
		s.logDebug("unlock of wallet %q failed: %s", name, walleterr.Code(err))
		return nil, err
	}

	s.throttle.reset(name)
	return state, nil
}

// MinPasswordLength returns the configured minimum, or zero without config.
func (s *Service) MinPasswordLength() int {
	if s.config == nil {
		return 0
	}
	return s.config.GetSecurity().MinPasswordLength
}

func (s *Service) checkPassword(password []byte) error {
	if minLen := s.MinPasswordLength(); len(password) < minLen {
		return walleterr.WithSuggestion(walleterr.ErrInvalidInput,
			fmt.Sprintf("password must be at least %d characters", minLen))
	}
	return nil
}

func (s *Service) logDebug(format string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(format, args...)
	}
}

func (s *Service) logError(format string, args ...any) {
	if s.logger != nil {
		s.logger.Error(format, args...)
	}
}
