package wallet

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/mrz1836/xrbwallet/internal/storage"
	walleterr "github.com/mrz1836/xrbwallet/pkg/errors"
)

// StorageKey is the key the name-to-record mapping is stored under.
const StorageKey = "xrb_wallets"

// Store persists encrypted wallets by name. The whole mapping is one JSON
// object under StorageKey, read and rewritten on every change. Writes are
// serialized within the process only.
type Store struct {
	mu sync.Mutex
	db storage.DB
}

// NewStore creates a Store backed by db.
func NewStore(db storage.DB) *Store {
	return &Store{db: db}
}

// Put stores rec under name, replacing any existing record.
func (s *Store) Put(name string, rec *EncryptedWallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallets, err := s.read()
	if err != nil {
		return err
	}
	wallets[name] = rec
	return s.write(wallets)
}

// Get returns the record stored under name.
func (s *Store) Get(name string) (*EncryptedWallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallets, err := s.read()
	if err != nil {
		return nil, err
	}
	rec, ok := wallets[name]
	if !ok {
		return nil, notFound(name)
	}
	return rec, nil
}

// Rename moves the record at oldName to newName, replacing any record
// already at newName.
func (s *Store) Rename(oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallets, err := s.read()
	if err != nil {
		return err
	}
	rec, ok := wallets[oldName]
	if !ok {
		return notFound(oldName)
	}
	if oldName == newName {
		return nil
	}

	wallets[newName] = rec
	delete(wallets, oldName)
	return s.write(wallets)
}

// Delete removes the record stored under name.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallets, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := wallets[name]; !ok {
		return notFound(name)
	}
	delete(wallets, name)
	return s.write(wallets)
}

// List returns all wallet names in sorted order.
func (s *Store) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallets, err := s.read()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(wallets))
	for name := range wallets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether a record is stored under name.
func (s *Store) Exists(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallets, err := s.read()
	if err != nil {
		return false, err
	}
	_, ok := wallets[name]
	return ok, nil
}

// Save locks state under password and stores it under name.
func (s *Store) Save(name string, state *State, password []byte) error {
	rec, err := Lock(state, password)
	if err != nil {
		return err
	}
	return s.Put(name, rec)
}

// Load fetches the record stored under name and unlocks it.
func (s *Store) Load(name string, password []byte) (*State, error) {
	rec, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return Unlock(rec, password)
}

// Export returns a copy of the full mapping.
func (s *Store) Export() (map[string]*EncryptedWallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Import merges records into the mapping in one write. Existing names are
// kept unless overwrite is set; the names that were written are returned
// sorted.
func (s *Store) Import(records map[string]*EncryptedWallet, overwrite bool) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallets, err := s.read()
	if err != nil {
		return nil, err
	}

	var written []string
	for name, rec := range records {
		if _, exists := wallets[name]; exists && !overwrite {
			continue
		}
		wallets[name] = rec
		written = append(written, name)
	}
	if len(written) == 0 {
		return nil, nil
	}
	sort.Strings(written)
	return written, s.write(wallets)
}

// read loads the mapping. A missing key is an empty mapping.
func (s *Store) read() (map[string]*EncryptedWallet, error) {
	data, err := s.db.Get([]byte(StorageKey))
	if errors.Is(err, storage.ErrNotFound) {
		return make(map[string]*EncryptedWallet), nil
	}
	if err != nil {
		return nil, walleterr.WithCause(walleterr.ErrStorage, err)
	}

	wallets := make(map[string]*EncryptedWallet)
	if err := json.Unmarshal(data, &wallets); err != nil {
		return nil, walleterr.WithCause(walleterr.ErrStorage, err)
	}
	return wallets, nil
}

func (s *Store) write(wallets map[string]*EncryptedWallet) error {
	data, err := json.Marshal(wallets)
	if err != nil {
		return walleterr.WithCause(walleterr.ErrStorage, err)
	}
	if err := s.db.Put([]byte(StorageKey), data); err != nil {
		return walleterr.WithCause(walleterr.ErrStorage, err)
	}
	return nil
}

func notFound(name string) error {
	return walleterr.WithDetails(walleterr.ErrWalletNotFound, map[string]string{"name": name})
}
