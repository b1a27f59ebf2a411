package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/mrz1836/xrbwallet/internal/fileutil"
)

// dirKeyRegex limits keys to names that are safe as file names.
//
//nolint:gochecknoglobals // Compiled once
var dirKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,128}$`)

// DirDB implements DB as one file per key inside a directory. Each value
// is replaced atomically, so a crash mid-write leaves the previous value.
type DirDB struct {
	root string
}

// NewDir creates a DirDB rooted at path, creating the directory if needed.
func NewDir(path string) (*DirDB, error) {
	if err := fileutil.EnsureDir(path); err != nil {
		return nil, err
	}
	return &DirDB{root: path}, nil
}

// Get retrieves a value by key.
func (d *DirDB) Get(key []byte) ([]byte, error) {
	path, err := d.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: key validated by dirKeyRegex
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("dir get: %w", err)
	}
	return data, nil
}

// Put stores a key-value pair.
func (d *DirDB) Put(key, value []byte) error {
	path, err := d.path(key)
	if err != nil {
		return err
	}
	if err := fileutil.WriteAtomic(path, value, fileutil.PrivateFilePerm); err != nil {
		return fmt.Errorf("dir put: %w", err)
	}
	return nil
}

// Delete removes a key.
func (d *DirDB) Delete(key []byte) error {
	path, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("dir delete: %w", err)
	}
	return nil
}

// Has checks if a key exists.
func (d *DirDB) Has(key []byte) (bool, error) {
	path, err := d.path(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("dir has: %w", err)
	}
	return true, nil
}

// Close is a no-op.
func (d *DirDB) Close() error {
	return nil
}

func (d *DirDB) path(key []byte) (string, error) {
	if !dirKeyRegex.Match(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(d.root, string(key)+".json"), nil
}
