// Package fileutil provides filesystem helpers for the wallet data
// directory: atomic replacement of files and private directory creation.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Permission modes for wallet data.
const (
	PrivateFilePerm = 0o600
	PrivateDirPerm  = 0o700
)

// ErrEmptyPath indicates an empty file path was provided.
var ErrEmptyPath = errors.New("path is empty")

// EnsureDir creates path and any missing parents with PrivateDirPerm.
func EnsureDir(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := os.MkdirAll(path, PrivateDirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// WriteAtomic replaces path with data. Readers see either the old content
// or the new content, never a partial write. The temp file lives in the
// same directory so the final rename stays on one filesystem.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return ErrEmptyPath
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// Removing tmpPath after a successful rename is a no-op.
	defer func() { _ = os.Remove(tmpPath) }()

	if err := writeAndSync(tmp, data, perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil { //nolint:gosec // G703: path comes from the configured data directory
		return fmt.Errorf("renaming temp file: %w", err)
	}

	syncDir(dir)
	return nil
}

// ReadIfExists returns the file content, or nil and no error when path
// does not exist.
func ReadIfExists(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the configured data directory
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func writeAndSync(f *os.File, data []byte, perm os.FileMode) error {
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Chmod(perm); err != nil {
		return fmt.Errorf("setting temp file permissions: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	return nil
}

// syncDir makes the rename durable where the platform allows it.
func syncDir(dir string) {
	d, err := os.Open(dir) //nolint:gosec // G304: dir is derived from a validated path
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
