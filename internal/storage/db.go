// Package storage provides the key-value capability wallet records are
// persisted through. Callers receive a DB and never know which medium
// backs it.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendBadger = "badger"
)

var (
	// ErrNotFound is returned by Get for a missing key.
	ErrNotFound = errors.New("key not found")

	// ErrInvalidKey is returned for keys a backend cannot store.
	ErrInvalidKey = errors.New("invalid storage key")

	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// DB is the interface for key-value storage.
type DB interface {
	// Get returns a copy of the value, or ErrNotFound.
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key []byte) error
	Has(key []byte) (bool, error)
	Close() error
}

// Open returns the DB for backend rooted at path. The memory backend
// ignores path.
func Open(backend, path string) (DB, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		return NewDir(path)
	case BackendBadger:
		return NewBadger(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
